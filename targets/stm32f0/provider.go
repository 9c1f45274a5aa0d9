//go:build tinygo

package stm32f0

import (
	"device/stm32"

	"stm32go/core"
)

// provider publishes the peripheral instances an STM32F042-class chip
// actually has: USART1, USART2 and ADC1.
type provider struct {
	usart  [core.UsartCount]*mmio
	adc    [core.AdcCount]*mmio
	common *mmio
	osc    *mmio
}

func newProvider() *provider {
	p := &provider{
		common: newMMIO(adcCommonBase + adcOffCCR),
		osc:    newMMIO(rccBase + rccOffCR2),
	}
	p.usart[core.USART1] = newUsartBlock(usart1Base)
	p.usart[core.USART2] = newUsartBlock(usart2Base)
	p.adc[core.ADC1] = newAdcBlock(adc1Base)
	return p
}

func (p *provider) UsartRegs(id core.UsartID) (core.RegBlock, core.IRQ, bool) {
	if int(id) >= len(p.usart) || p.usart[id] == nil {
		return nil, 0, false
	}
	irq := core.IRQ(stm32.IRQ_USART1)
	if id == core.USART2 {
		irq = core.IRQ(stm32.IRQ_USART2)
	}
	return p.usart[id], irq, true
}

func (p *provider) AdcRegs(id core.AdcID) (core.RegBlock, core.IRQ, bool) {
	if int(id) >= len(p.adc) || p.adc[id] == nil {
		return nil, 0, false
	}
	return p.adc[id], core.IRQ(stm32.IRQ_ADC_COMP), true
}

func (p *provider) AdcCommon() core.RegBlock { return p.common }

func (p *provider) OscRegs() core.RegBlock { return p.osc }
