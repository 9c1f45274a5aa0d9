//go:build tinygo

package stm32f0

import (
	"device/arm"

	"stm32go/core"
)

// nvic implements core.InterruptController over the Cortex-M0 NVIC.
type nvic struct{}

func (nvic) Enable(irq core.IRQ) {
	arm.EnableIRQ(uint32(irq))
}

func (nvic) Disable(irq core.IRQ) {
	arm.DisableIRQ(uint32(irq))
}

func (nvic) SetPriority(irq core.IRQ, prio uint8) {
	// M0 implements two priority bits in the top of the byte.
	arm.SetPriority(uint32(irq), uint32(prio)<<6)
}
