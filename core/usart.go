// USART (serial port) support.
// One device table per process, one record per hardware instance, each
// guarded by an active/inactive state machine. Register access goes
// through the RegBlock abstraction so the logic is testable off-hardware.
package core

import (
	"stm32go/errcode"
)

// UsartID selects one hardware USART instance. Used only as a table index.
type UsartID uint8

const (
	USART1 UsartID = iota
	USART2
	USART3
	USART4
	USART5
	USART6

	UsartCount = 6
)

// Fixed receive-interrupt priority; not configurable.
const uartIRQPriority = 1

// UartCallback receives bytes from interrupt context. It must not block.
type UartCallback func(b byte)

// PinSpec names one GPIO pin claim: port, pin index and alternate function.
type PinSpec struct {
	Port GPIOPort
	Pin  uint8
	AF   uint8
}

// uartDevice is one device-table record.
type uartDevice struct {
	regs    RegBlock
	irq     IRQ
	present bool

	active bool

	// Routing fields, set once at start time.
	tx, rx   PinSpec
	baudrate uint32
	per      RccPeripheral

	callback UartCallback
}

// USARTDeps are the collaborators a USART table needs.
type USARTDeps struct {
	Provider UartProvider
	Gate     ClockGate
	GPIO     GPIODriver
	IRQs     InterruptController

	// SysClockHz is the peripheral clock feeding the baud generator.
	SysClockHz uint32
}

// USART is the device table and state machine for one USART family.
// Construct one per process with NewUSART and share it between main-line
// code and the interrupt handlers.
type USART struct {
	deps    USARTDeps
	layout  UartLayout
	devices [UsartCount]uartDevice
	inited  bool
}

// NewUSART builds an empty device table. No hardware is touched until the
// first operation; records spring into existence on first lookup.
func NewUSART(layout UartLayout, deps USARTDeps) *USART {
	return &USART{deps: deps, layout: layout}
}

// device returns the table record for id, building the table on first use.
// Table construction must finish before any owning interrupt is unmasked;
// Start guarantees that by enabling the vector last.
func (u *USART) device(id UsartID) *uartDevice {
	if id >= UsartCount {
		panic("usart: device id out of range")
	}
	if !u.inited {
		for i := range u.devices {
			regs, irq, ok := u.deps.Provider.UsartRegs(UsartID(i))
			u.devices[i] = uartDevice{regs: regs, irq: irq, present: ok}
		}
		u.inited = true
	}
	return &u.devices[id]
}

// packDivisor computes the combined mantissa/fraction baud divisor.
// The divisor is computed in 32 bits and rejected when it does not fit
// the family's baud-rate register.
func (u *USART) packDivisor(baudrate uint32) (uint32, error) {
	if baudrate == 0 {
		return 0, errcode.InvalidParams
	}
	div := u.deps.SysClockHz / baudrate
	if div > u.layout.MaxDivisor {
		return 0, errcode.InvalidParams
	}
	return (div/16)<<u.layout.MantissaPos | (div%16)<<u.layout.FractionPos, nil
}

// Start claims the TX/RX pins and the peripheral clock, programs the baud
// divisor, enables transmit/receive and the receive interrupt, and stores
// the callback. Idempotent: a second call on an active device succeeds
// without touching hardware. On any claim failure the already-claimed
// port gating is released before returning.
func (u *USART) Start(id UsartID, tx, rx PinSpec, baudrate uint32, cb UartCallback) error {
	if tx.Pin > 15 || rx.Pin > 15 {
		return errcode.InvalidParams
	}
	if tx.AF > 7 || rx.AF > 7 {
		return errcode.InvalidParams
	}
	brr, err := u.packDivisor(baudrate)
	if err != nil {
		return err
	}

	dev := u.device(id)
	if !dev.present {
		return errcode.NoDevice
	}
	if dev.active {
		return nil
	}

	// Claim TX as alternate-function push-pull high-speed output.
	if err := u.deps.GPIO.SetAltFunction(tx.Port, tx.Pin, tx.AF); err != nil {
		u.deps.Gate.DisablePort(tx.Port)
		return errcode.Wrap(errcode.PinClaim, "usart start", err)
	}
	if err := u.deps.GPIO.SetOutputParameters(tx.Port, tx.Pin, PullUp, PushPull, SpeedHigh); err != nil {
		u.deps.Gate.DisablePort(tx.Port)
		return errcode.Wrap(errcode.PinClaim, "usart start", err)
	}

	// Claim RX likewise.
	if err := u.deps.GPIO.SetAltFunction(rx.Port, rx.Pin, rx.AF); err != nil {
		u.deps.Gate.DisablePort(tx.Port)
		u.deps.Gate.DisablePort(rx.Port)
		return errcode.Wrap(errcode.PinClaim, "usart start", err)
	}
	if err := u.deps.GPIO.SetOutputParameters(rx.Port, rx.Pin, PullUp, PushPull, SpeedHigh); err != nil {
		u.deps.Gate.DisablePort(tx.Port)
		u.deps.Gate.DisablePort(rx.Port)
		return errcode.Wrap(errcode.PinClaim, "usart start", err)
	}

	// Enable the peripheral clock. Hardware absence shows up here.
	per := usartClockToken(id)
	if err := u.deps.Gate.Enable(per); err != nil {
		u.deps.Gate.DisablePort(tx.Port)
		u.deps.Gate.DisablePort(rx.Port)
		return errcode.Wrap(errcode.ClockGate, "usart start", err)
	}

	dev.active = true

	dev.regs.Write(RegUartBRR, brr)
	dev.regs.SetBits(RegUartCR1, u.layout.CR1Enable)

	dev.tx = tx
	dev.rx = rx
	dev.baudrate = baudrate
	dev.per = per
	dev.callback = cb

	// Unmask the receive interrupt last: the table and record are fully
	// built by now, so dispatch can never observe a half-initialized entry.
	u.deps.IRQs.SetPriority(dev.irq, uartIRQPriority)
	u.deps.IRQs.Enable(dev.irq)

	return nil
}

// Send writes one byte into the transmit-data register. Fire-and-forget:
// it does not wait for transmit-complete, so back-to-back callers must
// respect the hardware's own buffering or risk overrun.
func (u *USART) Send(id UsartID, b byte) error {
	dev := u.device(id)
	if !dev.active {
		return errcode.NotActive
	}
	dev.regs.Write(RegUartTx, uint32(b))
	return nil
}

// Stop masks the receive interrupt, disables the peripheral and releases
// the clock and port gates. The record is marked inactive before the gate
// releases run, so a release failure leaves active=false with gating
// possibly still claimed; the returned code flags the peripheral as suspect.
func (u *USART) Stop(id UsartID) error {
	dev := u.device(id)
	if !dev.active {
		return errcode.NotActive
	}

	dev.regs.ClearBits(RegUartCR1, u.layout.CR1RxInt)
	u.deps.IRQs.Disable(dev.irq)

	dev.regs.ClearBits(RegUartCR1, u.layout.CR1Enable)
	dev.active = false

	if err := u.deps.Gate.Disable(dev.per); err != nil {
		return errcode.Wrap(errcode.ClockGate, "usart stop", err)
	}
	if err := u.deps.Gate.DisablePort(dev.tx.Port); err != nil {
		return errcode.Wrap(errcode.PortGate, "usart stop", err)
	}
	if err := u.deps.Gate.DisablePort(dev.rx.Port); err != nil {
		return errcode.Wrap(errcode.PortGate, "usart stop", err)
	}

	return nil
}

// Active reports whether the instance currently holds its hardware claim.
func (u *USART) Active(id UsartID) bool {
	return u.device(id).active
}

// IRQ is the receive interrupt entry point for one instance. On
// receive-not-empty it reads the byte and hands it to the stored callback.
// No queueing: a slow callback risks overrun at the hardware level.
func (u *USART) IRQ(id UsartID) {
	dev := u.device(id)
	if dev.regs == nil {
		return
	}
	if dev.regs.Read(RegUartStatus)&u.layout.RxNotEmpty == 0 {
		return
	}

	// Instance-1 diagnostic echo on families that declare it.
	if u.layout.EchoByte != 0 && id == USART1 {
		dev.regs.Write(RegUartTx, uint32(u.layout.EchoByte))
	}

	b := byte(dev.regs.Read(RegUartRx))
	if dev.callback != nil {
		dev.callback(b)
	}
}

func usartClockToken(id UsartID) RccPeripheral {
	switch id {
	case USART1:
		return RccUSART1
	case USART2:
		return RccUSART2
	case USART3:
		return RccUSART3
	case USART4:
		return RccUSART4
	case USART5:
		return RccUSART5
	default:
		return RccUSART6
	}
}
