//go:build tinygo

package stm32f0

import (
	"device/stm32"
	"runtime/interrupt"

	"stm32go/core"
)

// SysClockHz is the peripheral clock after the tinygo runtime has set up
// the F0 clock tree.
const SysClockHz = 48_000_000

// Board bundles the device tables for one chip. Construct exactly one
// with NewBoard before unmasking any peripheral interrupt.
type Board struct {
	USART *core.USART
	ADC   *core.ADC
	GPIO  core.GPIODriver
}

// board backs the interrupt trampolines. TinyGo interrupt handlers must
// be package-level functions, so the single Board instance is reached
// through this variable.
var board *Board

// NewBoard wires the F0 register maps into the core device tables and
// registers the interrupt vectors. Vectors stay masked until the first
// Start call on the matching device.
func NewBoard() *Board {
	prov := newProvider()
	gate := newClockGate()
	gpio := newGPIODriver(gate)

	b := &Board{
		USART: core.NewUSART(core.UartLayoutF0, core.USARTDeps{
			Provider:   prov,
			Gate:       gate,
			GPIO:       gpio,
			IRQs:       nvic{},
			SysClockHz: SysClockHz,
		}),
		ADC: core.NewADC(core.AdcLayoutF0, core.ADCDeps{
			Provider: prov,
			Gate:     gate,
			GPIO:     gpio,
			IRQs:     nvic{},
			Ticks:    msTicker{},
		}),
		GPIO: gpio,
	}
	board = b

	interrupt.New(stm32.IRQ_USART1, handleUSART1)
	interrupt.New(stm32.IRQ_USART2, handleUSART2)
	interrupt.New(stm32.IRQ_ADC_COMP, handleADC)
	return b
}

func handleUSART1(interrupt.Interrupt) { board.USART.IRQ(core.USART1) }
func handleUSART2(interrupt.Interrupt) { board.USART.IRQ(core.USART2) }
func handleADC(interrupt.Interrupt)    { board.ADC.IRQ(core.ADC1) }
