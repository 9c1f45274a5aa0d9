//go:build tinygo

package stm32f0

import (
	"runtime/volatile"

	"stm32go/core"
	"stm32go/errcode"
)

// GPIO register byte offsets (RM0091 section 8.4).
const (
	gpioOffMODER   = 0x00
	gpioOffOTYPER  = 0x04
	gpioOffOSPEEDR = 0x08
	gpioOffPUPDR   = 0x0C
	gpioOffAFRL    = 0x20
	gpioOffAFRH    = 0x24
	gpioOffBSRR    = 0x18
)

// Pin mode field values for MODER.
const (
	modeInput  = 0b00
	modeOutput = 0b01
	modeAF     = 0b10
	modeAnalog = 0b11
)

// gpioDriver implements core.GPIODriver against the F0 GPIO banks.
// Every claim enables the bank clock first; the banks stay gated on for
// the life of the process.
type gpioDriver struct {
	gate *clockGate
}

func newGPIODriver(gate *clockGate) *gpioDriver {
	return &gpioDriver{gate: gate}
}

func portReg(port core.GPIOPort, off uintptr) *volatile.Register32 {
	return reg32(gpioBase + uintptr(port)*gpioStep + off)
}

func (d *gpioDriver) check(port core.GPIOPort, pin uint8) error {
	if port > core.PortF || pin > 15 {
		return errcode.PinClaim
	}
	return d.gate.enablePort(port)
}

// setField2 replaces the 2-bit field for pin in a 2-bit-per-pin register.
func setField2(reg *volatile.Register32, pin uint8, val uint32) {
	reg.ReplaceBits(val, 0b11, pin*2)
}

func (d *gpioDriver) SetAltFunction(port core.GPIOPort, pin uint8, af uint8) error {
	if af > 15 {
		return errcode.PinClaim
	}
	if err := d.check(port, pin); err != nil {
		return err
	}
	afr := portReg(port, gpioOffAFRL)
	slot := pin
	if pin >= 8 {
		afr = portReg(port, gpioOffAFRH)
		slot = pin - 8
	}
	afr.ReplaceBits(uint32(af), 0b1111, slot*4)
	setField2(portReg(port, gpioOffMODER), pin, modeAF)
	return nil
}

func (d *gpioDriver) SetOutputParameters(port core.GPIOPort, pin uint8, pull core.GPIOPull, drive core.GPIODrive, speed core.GPIOSpeed) error {
	if err := d.check(port, pin); err != nil {
		return err
	}
	setField2(portReg(port, gpioOffPUPDR), pin, uint32(pull))
	setField2(portReg(port, gpioOffOSPEEDR), pin, uint32(speed))
	otyper := portReg(port, gpioOffOTYPER)
	if drive == core.OpenDrain {
		otyper.SetBits(1 << uint(pin))
	} else {
		otyper.ClearBits(1 << uint(pin))
	}
	return nil
}

func (d *gpioDriver) SetAnalog(port core.GPIOPort, pin uint8) error {
	if err := d.check(port, pin); err != nil {
		return err
	}
	setField2(portReg(port, gpioOffPUPDR), pin, uint32(core.PullNone))
	setField2(portReg(port, gpioOffMODER), pin, modeAnalog)
	return nil
}

func (d *gpioDriver) SetOutput(port core.GPIOPort, pin uint8, pull core.GPIOPull) error {
	if err := d.check(port, pin); err != nil {
		return err
	}
	setField2(portReg(port, gpioOffPUPDR), pin, uint32(pull))
	setField2(portReg(port, gpioOffMODER), pin, modeOutput)
	return nil
}

func (d *gpioDriver) Write(port core.GPIOPort, pin uint8, high bool) error {
	if port > core.PortF || pin > 15 {
		return errcode.PinClaim
	}
	// BSRR: low half sets, high half resets. Atomic, no RMW.
	bit := uint32(1) << uint(pin)
	if !high {
		bit <<= 16
	}
	portReg(port, gpioOffBSRR).Set(bit)
	return nil
}
