//go:build tinygo

package stm32f0

import (
	"runtime/volatile"
	"unsafe"

	"stm32go/core"
)

// STM32F0 peripheral memory map (RM0091).
const (
	usart1Base = 0x40013800
	usart2Base = 0x40004400

	adc1Base      = 0x40012400
	adcCommonBase = 0x40012700

	rccBase  = 0x40021000
	gpioBase = 0x48000000
	gpioStep = 0x0400
)

// Register byte offsets within the peripherals.
const (
	usartOffCR1 = 0x00
	usartOffBRR = 0x0C
	usartOffISR = 0x1C
	usartOffRDR = 0x24
	usartOffTDR = 0x28

	adcOffISR    = 0x00
	adcOffIER    = 0x04
	adcOffCR     = 0x08
	adcOffCFGR1  = 0x0C
	adcOffCFGR2  = 0x10
	adcOffSMPR   = 0x14
	adcOffCHSELR = 0x28
	adcOffDR     = 0x40

	adcOffCCR = 0x08 // within the common block

	rccOffAHBENR  = 0x14
	rccOffAPB2ENR = 0x18
	rccOffAPB1ENR = 0x1C
	rccOffCR2     = 0x34
)

// mmio implements core.RegBlock over absolute register addresses, indexed
// by the core's named offsets.
type mmio struct {
	regs []*volatile.Register32
}

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// newMMIO builds a block whose i-th entry backs core.RegOffset(i).
func newMMIO(addrs ...uintptr) *mmio {
	m := &mmio{regs: make([]*volatile.Register32, len(addrs))}
	for i, a := range addrs {
		m.regs[i] = reg32(a)
	}
	return m
}

func (m *mmio) Read(off core.RegOffset) uint32 {
	return m.regs[off].Get()
}

func (m *mmio) Write(off core.RegOffset, v uint32) {
	m.regs[off].Set(v)
}

func (m *mmio) SetBits(off core.RegOffset, mask uint32) {
	m.regs[off].SetBits(mask)
}

func (m *mmio) ClearBits(off core.RegOffset, mask uint32) {
	m.regs[off].ClearBits(mask)
}

// newUsartBlock lays out a USART instance in core register order.
func newUsartBlock(base uintptr) *mmio {
	return newMMIO(
		base+usartOffCR1, // RegUartCR1
		base+usartOffBRR, // RegUartBRR
		base+usartOffISR, // RegUartStatus
		base+usartOffRDR, // RegUartRx
		base+usartOffTDR, // RegUartTx
	)
}

// newAdcBlock lays out an ADC instance in core register order.
func newAdcBlock(base uintptr) *mmio {
	return newMMIO(
		base+adcOffISR,
		base+adcOffIER,
		base+adcOffCR,
		base+adcOffCFGR1,
		base+adcOffCFGR2,
		base+adcOffSMPR,
		base+adcOffCHSELR,
		base+adcOffDR,
	)
}
