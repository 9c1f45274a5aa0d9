// ADC (analog-to-digital converter) support.
// Per-instance state machine: Uncalibrated -> Calibrated -> Active(Idle)
// <-> Active(Sampling). Every hardware wait is a busy-poll bounded by a
// fixed tick budget against the injected Ticker; timeouts can leave the
// record partially transitioned (documented per operation) and mark the
// peripheral as suspect rather than silently rolling back.
package core

import (
	"stm32go/errcode"
)

// AdcID selects one hardware ADC instance. Used only as a table index.
type AdcID uint8

const (
	ADC1 AdcID = iota
	ADC2
	ADC3

	AdcCount = 3
)

// AdcMode selects single or continuous conversion.
type AdcMode uint8

const (
	AdcModeSingle AdcMode = iota
	AdcModeContinuous
)

// AdcInternal names the internal analog sources.
type AdcInternal uint8

const (
	AdcVsense  AdcInternal = iota // temperature sensor
	AdcVrefint                    // internal reference voltage
	AdcVbat                       // battery voltage sense
)

// Bounded-wait budget in ticks for every hardware poll.
const adcDefaultTimeout = 400

// Fixed ADC interrupt priority; not configurable.
const adcIRQPriority = 0

// AdcCallbacks are the per-source interrupt handlers. Handlers run in
// interrupt context and must not block. A nil entry leaves that source
// alone when enabling interrupts.
type AdcCallbacks struct {
	Watchdog        func()
	Overrun         func()
	EndOfSequence   func()
	EndOfConversion func()
	EndOfSampling   func()
	Ready           func()
}

// adcDevice is one device-table record.
type adcDevice struct {
	regs    RegBlock
	irq     IRQ
	present bool

	active     bool
	calibrated bool
	sampling   bool

	per RccPeripheral
	cbs AdcCallbacks
}

// ADCDeps are the collaborators an ADC table needs.
type ADCDeps struct {
	Provider AdcProvider
	Gate     ClockGate
	GPIO     GPIODriver
	IRQs     InterruptController
	Ticks    Ticker

	// DMA backs the optional buffered-transfer mode; nil disables it.
	DMA DMAStream
}

// ADC is the device table and state machine for one ADC family.
type ADC struct {
	deps    ADCDeps
	layout  AdcLayout
	timeout uint32
	devices [AdcCount]adcDevice
	inited  bool
}

// NewADC builds an empty device table with the default wait budget.
func NewADC(layout AdcLayout, deps ADCDeps) *ADC {
	return &ADC{deps: deps, layout: layout, timeout: adcDefaultTimeout}
}

// device returns the table record for id, building the table on first use.
func (a *ADC) device(id AdcID) *adcDevice {
	if id >= AdcCount {
		panic("adc: device id out of range")
	}
	if !a.inited {
		for i := range a.devices {
			regs, irq, ok := a.deps.Provider.AdcRegs(AdcID(i))
			a.devices[i] = adcDevice{regs: regs, irq: irq, present: ok}
		}
		a.inited = true
	}
	return &a.devices[id]
}

// waitSet busy-polls until mask reads nonzero, bounded by the tick budget.
func (a *ADC) waitSet(rb RegBlock, off RegOffset, mask uint32) error {
	start := a.deps.Ticks.Now()
	for rb.Read(off)&mask == 0 {
		if a.deps.Ticks.Now()-start > a.timeout || a.timeout == 0 {
			return errcode.Timeout
		}
	}
	return nil
}

// waitClear busy-polls until mask reads zero, bounded by the tick budget.
func (a *ADC) waitClear(rb RegBlock, off RegOffset, mask uint32) error {
	start := a.deps.Ticks.Now()
	for rb.Read(off)&mask != 0 {
		if a.deps.Ticks.Now()-start > a.timeout || a.timeout == 0 {
			return errcode.Timeout
		}
	}
	return nil
}

// Calibrate runs the one-time hardware self-measurement sequence: disable
// the converter if enabled, wait for the disable to take, clear DMA, set
// the calibration-start bit and wait for hardware to clear it. On timeout
// the calibrated flag stays false.
func (a *ADC) Calibrate(id AdcID) error {
	dev := a.device(id)
	if !dev.present {
		return errcode.NoDevice
	}

	if dev.regs.Read(RegAdcCR)&a.layout.Enable != 0 {
		dev.regs.SetBits(RegAdcCR, a.layout.Disable)
	}
	if err := a.waitClear(dev.regs, RegAdcCR, a.layout.Enable); err != nil {
		return errcode.Wrap(errcode.Of(err), "adc calibrate", err)
	}

	dev.regs.ClearBits(RegAdcCFGR1, a.layout.DMAEnable)

	// Hardware clears the bit again once calibration completes.
	dev.regs.SetBits(RegAdcCR, a.layout.Calibrate)
	if err := a.waitClear(dev.regs, RegAdcCR, a.layout.Calibrate); err != nil {
		return errcode.Wrap(errcode.Of(err), "adc calibrate", err)
	}

	dev.calibrated = true
	return nil
}

// Configure performs basic setup: calibrate if needed, claim the
// peripheral clock, start the asynchronous sample clock and wait for its
// ready flag, then select single or continuous conversion. Idempotent
// no-op success once active.
func (a *ADC) Configure(id AdcID, mode AdcMode) error {
	dev := a.device(id)
	if !dev.present {
		return errcode.NoDevice
	}
	if dev.active {
		return nil
	}
	if !dev.calibrated {
		if err := a.Calibrate(id); err != nil {
			return err
		}
	}

	per := adcClockToken(id)
	if err := a.deps.Gate.Enable(per); err != nil {
		return errcode.Wrap(errcode.ClockGate, "adc configure", err)
	}
	dev.per = per

	// Select the asynchronous sample clock and wait for its oscillator.
	dev.regs.ClearBits(RegAdcCFGR2, a.layout.ClockModeMask)
	osc := a.deps.Provider.OscRegs()
	osc.SetBits(RegOscCR2, a.layout.OscOn)
	if err := a.waitSet(osc, RegOscCR2, a.layout.OscReady); err != nil {
		return errcode.Wrap(errcode.Of(err), "adc configure", err)
	}

	if mode == AdcModeSingle {
		dev.regs.ClearBits(RegAdcCFGR1, a.layout.Continuous)
	} else {
		dev.regs.SetBits(RegAdcCFGR1, a.layout.Continuous)
	}

	dev.active = true
	return nil
}

// Channel selects an external analog pin channel. Forbidden while a
// conversion is in flight. The pin is switched to analog mode, its
// channel-select bit set and the shared sample time programmed.
func (a *ADC) Channel(id AdcID, channel uint8, port GPIOPort, pin uint8, sampleTime uint8) error {
	dev := a.device(id)
	if !dev.present {
		return errcode.NoDevice
	}
	if dev.sampling {
		return errcode.Sampling
	}
	if channel > a.layout.MaxChannel {
		return errcode.InvalidParams
	}
	if sampleTime > a.layout.MaxSampleTime {
		return errcode.InvalidParams
	}

	if err := a.deps.GPIO.SetAnalog(port, pin); err != nil {
		return errcode.Wrap(errcode.PinClaim, "adc channel", err)
	}

	dev.regs.SetBits(RegAdcCHSELR, 1<<channel)
	dev.regs.Write(RegAdcSMPR, uint32(sampleTime))
	return nil
}

// ChannelInternal selects one of the internal sources. Each source needs
// its analog switch enabled in the shared control register before the
// channel bit is set. Temperature sampling additionally needs a sample
// time long enough for the sensor's settling time; only the bit-width
// ceiling is enforced here, the minimum is the caller's responsibility.
func (a *ADC) ChannelInternal(id AdcID, channel AdcInternal, sampleTime uint8) error {
	dev := a.device(id)
	if !dev.present {
		return errcode.NoDevice
	}
	if dev.sampling {
		return errcode.Sampling
	}
	if sampleTime > a.layout.MaxSampleTime {
		return errcode.InvalidParams
	}

	common := a.deps.Provider.AdcCommon()
	switch channel {
	case AdcVsense:
		common.SetBits(RegAdcCCR, a.layout.TempSwitch)
		// Settling floor for the sensor; the explicit sample time below
		// still wins, matching the shared-SMPR register behavior.
		dev.regs.SetBits(RegAdcSMPR, uint32(a.layout.MaxSampleTime))
		dev.regs.SetBits(RegAdcCHSELR, 1<<a.layout.TempChannel)
	case AdcVrefint:
		common.SetBits(RegAdcCCR, a.layout.VrefSwitch)
		dev.regs.SetBits(RegAdcCHSELR, 1<<a.layout.VrefChannel)
	case AdcVbat:
		common.SetBits(RegAdcCCR, a.layout.VbatSwitch)
		dev.regs.SetBits(RegAdcCHSELR, 1<<a.layout.VbatChannel)
	default:
		return errcode.InvalidParams
	}

	dev.regs.Write(RegAdcSMPR, uint32(sampleTime))
	return nil
}

// EnableInterrupt enables the interrupt sources that have a callback in
// cbs, stores the callback set and unmasks the vector. Forbidden while
// sampling.
func (a *ADC) EnableInterrupt(id AdcID, cbs AdcCallbacks) error {
	dev := a.device(id)
	if !dev.present {
		return errcode.NoDevice
	}
	if dev.sampling {
		return errcode.Sampling
	}

	var ier uint32
	if cbs.Watchdog != nil {
		ier |= a.layout.Watchdog
	}
	if cbs.Overrun != nil {
		ier |= a.layout.Overrun
	}
	if cbs.EndOfSequence != nil {
		ier |= a.layout.EndSeq
	}
	if cbs.EndOfConversion != nil {
		ier |= a.layout.EndConv
	}
	if cbs.EndOfSampling != nil {
		ier |= a.layout.EndSample
	}
	if cbs.Ready != nil {
		ier |= a.layout.Ready
	}
	dev.regs.SetBits(RegAdcIER, ier)

	// The callback set is read from interrupt context; swap it with the
	// vector masked.
	state := maskIRQ()
	dev.cbs = cbs
	unmaskIRQ(state)

	a.deps.IRQs.Enable(dev.irq)
	a.deps.IRQs.SetPriority(dev.irq, adcIRQPriority)
	return nil
}

// DisableInterrupts masks the vector and clears every enabled source.
// Forbidden while sampling.
func (a *ADC) DisableInterrupts(id AdcID) error {
	dev := a.device(id)
	if !dev.present {
		return errcode.NoDevice
	}
	if dev.sampling {
		return errcode.Sampling
	}

	a.deps.IRQs.Disable(dev.irq)
	dev.regs.Write(RegAdcIER, 0)
	return nil
}

// Start enables the converter: clears any stale ready flag, sets the
// enable bit and waits for ready. Requires a configured, calibrated device.
func (a *ADC) Start(id AdcID) error {
	dev := a.device(id)
	if !dev.active {
		return errcode.NotActive
	}
	if !dev.calibrated {
		return errcode.NotCalibrated
	}

	// Status flags are write-1-to-clear; drop any stale ready flag first.
	// Only the flag's own bit is written, so other pending flags survive.
	if dev.regs.Read(RegAdcISR)&a.layout.Ready != 0 {
		dev.regs.Write(RegAdcISR, a.layout.Ready)
	}

	dev.regs.SetBits(RegAdcCR, a.layout.Enable)
	if err := a.waitSet(dev.regs, RegAdcISR, a.layout.Ready); err != nil {
		return errcode.Wrap(errcode.Of(err), "adc start", err)
	}
	return nil
}

// StartSampling sets the start-conversion bit and marks the record as
// sampling. Non-blocking by design: exactly one cycle may be outstanding.
func (a *ADC) StartSampling(id AdcID) error {
	dev := a.device(id)
	if !dev.active {
		return errcode.NotActive
	}
	if !dev.calibrated {
		return errcode.NotCalibrated
	}

	dev.regs.SetBits(RegAdcCR, a.layout.StartConv)

	state := maskIRQ()
	dev.sampling = true
	unmaskIRQ(state)
	return nil
}

// GetValue waits (bounded) for end-of-conversion and reads the data
// register. On timeout the sampling flag is deliberately left set: the
// cycle is still outstanding and the peripheral is suspect.
func (a *ADC) GetValue(id AdcID) (uint16, error) {
	dev := a.device(id)
	if !dev.active {
		return 0, errcode.NotActive
	}
	if !dev.sampling {
		return 0, errcode.NotSampling
	}

	if err := a.waitSet(dev.regs, RegAdcISR, a.layout.EndConv); err != nil {
		return 0, errcode.Wrap(errcode.Of(err), "adc get value", err)
	}

	val := uint16(dev.regs.Read(RegAdcDR))

	state := maskIRQ()
	dev.sampling = false
	unmaskIRQ(state)
	return val, nil
}

// Stop halts conversion and disables the converter, waiting (bounded) for
// each to take, then drops the record to inactive and releases the clock
// gate. A timeout leaves the hardware possibly half-stopped; that state
// is reported, not masked.
func (a *ADC) Stop(id AdcID) error {
	dev := a.device(id)
	if !dev.active {
		return errcode.NotActive
	}
	if !dev.calibrated {
		return errcode.NotCalibrated
	}

	dev.regs.SetBits(RegAdcCR, a.layout.StopConv)
	if err := a.waitClear(dev.regs, RegAdcCR, a.layout.StopConv); err != nil {
		return errcode.Wrap(errcode.Of(err), "adc stop", err)
	}

	dev.regs.SetBits(RegAdcCR, a.layout.Disable)
	if err := a.waitClear(dev.regs, RegAdcCR, a.layout.Enable); err != nil {
		return errcode.Wrap(errcode.Of(err), "adc stop", err)
	}

	dev.active = false
	if err := a.deps.Gate.Disable(dev.per); err != nil {
		return errcode.Wrap(errcode.ClockGate, "adc stop", err)
	}
	return nil
}

// ConfigureDMA sets up a circular buffered transfer from the conversion
// data register into buf, invoking cbs as the transfer progresses.
// Present only when a DMA stream was injected.
func (a *ADC) ConfigureDMA(id AdcID, buf []uint16, cbs DMACallbacks) error {
	dev := a.device(id)
	if a.deps.DMA == nil {
		return errcode.Unsupported
	}
	if !dev.active {
		return errcode.NotActive
	}
	if !dev.calibrated {
		return errcode.NotCalibrated
	}

	dev.regs.SetBits(RegAdcCFGR1, a.layout.DMAEnable|a.layout.DMACirc)

	if err := a.deps.DMA.ConfigureCircular(1, dev.regs, RegAdcDR, buf, cbs); err != nil {
		return errcode.Wrap(errcode.Error, "adc configure dma", err)
	}
	if err := a.deps.DMA.Start(1); err != nil {
		return errcode.Wrap(errcode.Error, "adc configure dma", err)
	}
	return nil
}

// StopDMA disables the transfer-enable bit and aborts the in-flight
// transfer.
func (a *ADC) StopDMA(id AdcID) error {
	dev := a.device(id)
	if a.deps.DMA == nil {
		return errcode.Unsupported
	}
	if !dev.active {
		return errcode.NotActive
	}

	dev.regs.ClearBits(RegAdcCFGR1, a.layout.DMAEnable)
	if err := a.deps.DMA.Abort(1); err != nil {
		return errcode.Wrap(errcode.Error, "adc stop dma", err)
	}
	return nil
}

// Active reports whether the instance holds its hardware claim.
func (a *ADC) Active(id AdcID) bool { return a.device(id).active }

// Calibrated reports whether the one-time calibration has completed.
func (a *ADC) Calibrated(id AdcID) bool { return a.device(id).calibrated }

// Sampling reports whether a conversion cycle is outstanding.
func (a *ADC) Sampling(id AdcID) bool { return a.device(id).sampling }

// IRQ is the interrupt entry point for one instance. Status flags are
// inspected in fixed priority order - watchdog, overrun, end-of-sequence,
// end-of-conversion, end-of-sampling, ready - and exactly one matching
// callback fires per invocation, its flag cleared. Two flags set at once
// therefore produce two vector entries, not one.
func (a *ADC) IRQ(id AdcID) {
	dev := a.device(id)
	if dev.regs == nil {
		return
	}

	// Flag clears write only the matched bit (write-1-to-clear); a
	// read-modify-write here would wipe every pending flag at once.
	isr := dev.regs.Read(RegAdcISR)
	switch {
	case isr&a.layout.Watchdog != 0:
		if cb := dev.cbs.Watchdog; cb != nil {
			cb()
		}
		dev.regs.Write(RegAdcISR, a.layout.Watchdog)
	case isr&a.layout.Overrun != 0:
		if cb := dev.cbs.Overrun; cb != nil {
			cb()
		}
		dev.regs.Write(RegAdcISR, a.layout.Overrun)
	case isr&a.layout.EndSeq != 0:
		if cb := dev.cbs.EndOfSequence; cb != nil {
			cb()
		}
		dev.regs.Write(RegAdcISR, a.layout.EndSeq)
	case isr&a.layout.EndConv != 0:
		if cb := dev.cbs.EndOfConversion; cb != nil {
			cb()
		}
		// Reading the data register already clears the flag; only clear
		// it by hand if the callback left it set.
		if dev.regs.Read(RegAdcISR)&a.layout.EndConv != 0 {
			dev.regs.Write(RegAdcISR, a.layout.EndConv)
		}
	case isr&a.layout.EndSample != 0:
		if cb := dev.cbs.EndOfSampling; cb != nil {
			cb()
		}
		dev.regs.Write(RegAdcISR, a.layout.EndSample)
	case isr&a.layout.Ready != 0:
		if cb := dev.cbs.Ready; cb != nil {
			cb()
		}
		dev.regs.Write(RegAdcISR, a.layout.Ready)
	}
}

func adcClockToken(id AdcID) RccPeripheral {
	switch id {
	case ADC1:
		return RccADC1
	case ADC2:
		return RccADC2
	default:
		return RccADC3
	}
}
