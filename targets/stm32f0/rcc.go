//go:build tinygo

package stm32f0

import (
	"runtime/volatile"

	"stm32go/core"
	"stm32go/errcode"
)

// RCC enable bits (RM0091 section 6.4).
const (
	apb2USART1EN = 1 << 14
	apb2ADC1EN   = 1 << 9
	apb1USART2EN = 1 << 17

	ahbGPIOAEN = 1 << 17 // ports A..F follow in consecutive bits
)

// clockGate drives the RCC enable registers for the peripherals the core
// state machines manage. Requests for instances the chip does not have
// fail with ClockGate so the caller rolls back.
type clockGate struct {
	ahbenr  *volatile.Register32
	apb1enr *volatile.Register32
	apb2enr *volatile.Register32
}

func newClockGate() *clockGate {
	return &clockGate{
		ahbenr:  reg32(rccBase + rccOffAHBENR),
		apb1enr: reg32(rccBase + rccOffAPB1ENR),
		apb2enr: reg32(rccBase + rccOffAPB2ENR),
	}
}

func (g *clockGate) bitFor(per core.RccPeripheral) (*volatile.Register32, uint32, bool) {
	switch per {
	case core.RccUSART1:
		return g.apb2enr, apb2USART1EN, true
	case core.RccUSART2:
		return g.apb1enr, apb1USART2EN, true
	case core.RccADC1:
		return g.apb2enr, apb2ADC1EN, true
	}
	return nil, 0, false
}

func (g *clockGate) Enable(per core.RccPeripheral) error {
	reg, bit, ok := g.bitFor(per)
	if !ok {
		return errcode.ClockGate
	}
	reg.SetBits(bit)
	return nil
}

func (g *clockGate) Disable(per core.RccPeripheral) error {
	reg, bit, ok := g.bitFor(per)
	if !ok {
		return errcode.ClockGate
	}
	reg.ClearBits(bit)
	return nil
}

// enablePort gates a GPIO bank clock on. The GPIO driver calls this
// before touching any port register.
func (g *clockGate) enablePort(port core.GPIOPort) error {
	if port > core.PortF {
		return errcode.PortGate
	}
	g.ahbenr.SetBits(ahbGPIOAEN << uint(port))
	return nil
}

func (g *clockGate) DisablePort(port core.GPIOPort) error {
	if port > core.PortF {
		return errcode.PortGate
	}
	g.ahbenr.ClearBits(ahbGPIOAEN << uint(port))
	return nil
}
