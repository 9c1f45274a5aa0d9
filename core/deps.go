// Collaborator contracts consumed by the device state machines.
// Targets implement these against real hardware; tests supply fakes.
package core

// GPIOPort identifies a GPIO port (bank) on the chip.
type GPIOPort uint8

const (
	PortA GPIOPort = iota
	PortB
	PortC
	PortD
	PortE
	PortF
)

// GPIOPull selects the pin pull resistor mode.
type GPIOPull uint8

const (
	PullNone GPIOPull = iota
	PullUp
	PullDown
)

// GPIODrive selects the output driver mode.
type GPIODrive uint8

const (
	PushPull GPIODrive = iota
	OpenDrain
)

// GPIOSpeed selects the output slew rate.
type GPIOSpeed uint8

const (
	SpeedLow GPIOSpeed = iota
	SpeedMedium
	SpeedHigh
)

// RccPeripheral is a clock-gate token for a peripheral instance.
type RccPeripheral uint8

const (
	RccUSART1 RccPeripheral = iota
	RccUSART2
	RccUSART3
	RccUSART4
	RccUSART5
	RccUSART6
	RccADC1
	RccADC2
	RccADC3
)

// ClockGate enables and disables peripheral and port clock gating.
// Any failure is treated by the callers as a rollback trigger for the
// enclosing operation.
type ClockGate interface {
	Enable(per RccPeripheral) error
	Disable(per RccPeripheral) error
	DisablePort(port GPIOPort) error
}

// GPIODriver claims pins for peripheral use.
type GPIODriver interface {
	// SetAltFunction connects a pin to a peripheral signal via the
	// given alternate-function index.
	SetAltFunction(port GPIOPort, pin uint8, af uint8) error

	// SetOutputParameters configures pull, drive and speed for a pin.
	SetOutputParameters(port GPIOPort, pin uint8, pull GPIOPull, drive GPIODrive, speed GPIOSpeed) error

	// SetAnalog switches a pin to analog mode for ADC use.
	SetAnalog(port GPIOPort, pin uint8) error

	// SetOutput configures a pin as a plain digital output.
	SetOutput(port GPIOPort, pin uint8, pull GPIOPull) error

	// Write drives a digital output pin high or low.
	Write(port GPIOPort, pin uint8, high bool) error
}

// IRQ is an interrupt vector number at the interrupt controller.
type IRQ uint8

// InterruptController unmasks, masks and prioritizes vectors.
type InterruptController interface {
	Enable(irq IRQ)
	Disable(irq IRQ)
	SetPriority(irq IRQ, prio uint8)
}

// Ticker is the monotonic tick source used for all bounded waits.
// Ticks advance at a fixed known rate (milliseconds on hardware targets).
type Ticker interface {
	Now() uint32
}

// DMACallbacks are the completion handlers for a buffered transfer.
type DMACallbacks struct {
	Half  func()
	Full  func()
	Error func()
}

// DMAStream is the narrow contract for the buffered-transfer mode.
// The stream itself lives below the device-table abstraction.
type DMAStream interface {
	// ConfigureCircular sets up a circular transfer from a peripheral
	// data register into buf.
	ConfigureCircular(channel uint8, src RegBlock, srcOff RegOffset, buf []uint16, cbs DMACallbacks) error
	Start(channel uint8) error
	Abort(channel uint8) error
}

// UartProvider exposes the USART instances that physically exist on the
// compiled-for chip.
type UartProvider interface {
	// UsartRegs returns the register block and interrupt vector for an
	// instance, or ok=false when the chip does not have it.
	UsartRegs(id UsartID) (regs RegBlock, irq IRQ, ok bool)
}

// AdcProvider exposes the ADC instances and the shared control blocks.
type AdcProvider interface {
	AdcRegs(id AdcID) (regs RegBlock, irq IRQ, ok bool)

	// AdcCommon returns the control block shared by all ADC instances
	// (internal-channel analog switches).
	AdcCommon() RegBlock

	// OscRegs returns the oscillator control block used to start the
	// asynchronous ADC sample clock.
	OscRegs() RegBlock
}
