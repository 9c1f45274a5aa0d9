package core

// In-memory collaborator fakes for the device-table tests. The register
// fake can model write-1-to-clear status registers and run a transform on
// writes so tests can script hardware behavior (self-clearing bits, flags
// raised in response to control writes).

type regWrite struct {
	off RegOffset
	val uint32
}

type fakeRegs struct {
	vals map[RegOffset]uint32

	// w1c holds the write-1-to-clear bit mask per offset.
	w1c map[RegOffset]uint32

	// transform rewrites a value as the hardware would before it lands.
	transform func(off RegOffset, v uint32) uint32

	// onRead observes register reads (e.g. data-register side effects).
	onRead func(off RegOffset)

	writes []regWrite
}

func newFakeRegs() *fakeRegs {
	return &fakeRegs{
		vals: make(map[RegOffset]uint32),
		w1c:  make(map[RegOffset]uint32),
	}
}

func (f *fakeRegs) Read(off RegOffset) uint32 {
	if f.onRead != nil {
		f.onRead(off)
	}
	return f.vals[off]
}

func (f *fakeRegs) Write(off RegOffset, v uint32) {
	f.writes = append(f.writes, regWrite{off, v})
	if m := f.w1c[off]; m != 0 {
		f.vals[off] &^= v & m
		return
	}
	if f.transform != nil {
		v = f.transform(off, v)
	}
	f.vals[off] = v
}

func (f *fakeRegs) SetBits(off RegOffset, mask uint32) {
	f.Write(off, f.vals[off]|mask)
}

func (f *fakeRegs) ClearBits(off RegOffset, mask uint32) {
	f.Write(off, f.vals[off]&^mask)
}

// wroteBits reports whether any write to off carried all bits of mask.
func (f *fakeRegs) wroteBits(off RegOffset, mask uint32) bool {
	for _, w := range f.writes {
		if w.off == off && w.val&mask == mask {
			return true
		}
	}
	return false
}

type fakeGate struct {
	enabled      []RccPeripheral
	disabled     []RccPeripheral
	portDisabled []GPIOPort

	failEnable  bool
	failDisable bool
	failPort    bool
}

type gateErr struct{}

func (gateErr) Error() string { return "gate failure" }

func (g *fakeGate) Enable(per RccPeripheral) error {
	if g.failEnable {
		return gateErr{}
	}
	g.enabled = append(g.enabled, per)
	return nil
}

func (g *fakeGate) Disable(per RccPeripheral) error {
	if g.failDisable {
		return gateErr{}
	}
	g.disabled = append(g.disabled, per)
	return nil
}

func (g *fakeGate) DisablePort(port GPIOPort) error {
	g.portDisabled = append(g.portDisabled, port)
	if g.failPort {
		return gateErr{}
	}
	return nil
}

func (g *fakeGate) portDisableCount(port GPIOPort) int {
	n := 0
	for _, p := range g.portDisabled {
		if p == port {
			n++
		}
	}
	return n
}

type gpioCall struct {
	op   string
	port GPIOPort
	pin  uint8
}

type fakeGPIO struct {
	calls []gpioCall

	// failAFPin makes SetAltFunction fail for one pin index.
	failAFPin   uint8
	failAF      bool
	failAnalog  bool
	failOutputs bool
}

type gpioErr struct{}

func (gpioErr) Error() string { return "gpio failure" }

func (g *fakeGPIO) SetAltFunction(port GPIOPort, pin uint8, af uint8) error {
	if g.failAF && pin == g.failAFPin {
		return gpioErr{}
	}
	g.calls = append(g.calls, gpioCall{"af", port, pin})
	return nil
}

func (g *fakeGPIO) SetOutputParameters(port GPIOPort, pin uint8, pull GPIOPull, drive GPIODrive, speed GPIOSpeed) error {
	if g.failOutputs {
		return gpioErr{}
	}
	g.calls = append(g.calls, gpioCall{"outparams", port, pin})
	return nil
}

func (g *fakeGPIO) SetAnalog(port GPIOPort, pin uint8) error {
	if g.failAnalog {
		return gpioErr{}
	}
	g.calls = append(g.calls, gpioCall{"analog", port, pin})
	return nil
}

func (g *fakeGPIO) SetOutput(port GPIOPort, pin uint8, pull GPIOPull) error {
	g.calls = append(g.calls, gpioCall{"output", port, pin})
	return nil
}

func (g *fakeGPIO) Write(port GPIOPort, pin uint8, high bool) error {
	g.calls = append(g.calls, gpioCall{"write", port, pin})
	return nil
}

type fakeNVIC struct {
	enabled map[IRQ]bool
	prio    map[IRQ]uint8
}

func newFakeNVIC() *fakeNVIC {
	return &fakeNVIC{enabled: make(map[IRQ]bool), prio: make(map[IRQ]uint8)}
}

func (n *fakeNVIC) Enable(irq IRQ)  { n.enabled[irq] = true }
func (n *fakeNVIC) Disable(irq IRQ) { n.enabled[irq] = false }
func (n *fakeNVIC) SetPriority(irq IRQ, prio uint8) {
	n.prio[irq] = prio
}

// fakeTicker advances by step on every Now call, so bounded waits always
// terminate without real delays.
type fakeTicker struct {
	now  uint32
	step uint32
}

func (t *fakeTicker) Now() uint32 {
	t.now += t.step
	return t.now
}

type dmaCall struct {
	op      string
	channel uint8
}

type fakeDMA struct {
	calls []dmaCall
	buf   []uint16
}

func (d *fakeDMA) ConfigureCircular(channel uint8, src RegBlock, srcOff RegOffset, buf []uint16, cbs DMACallbacks) error {
	d.calls = append(d.calls, dmaCall{"configure", channel})
	d.buf = buf
	return nil
}

func (d *fakeDMA) Start(channel uint8) error {
	d.calls = append(d.calls, dmaCall{"start", channel})
	return nil
}

func (d *fakeDMA) Abort(channel uint8) error {
	d.calls = append(d.calls, dmaCall{"abort", channel})
	return nil
}

type fakeUartProvider struct {
	regs    [UsartCount]*fakeRegs
	present [UsartCount]bool
}

func (p *fakeUartProvider) UsartRegs(id UsartID) (RegBlock, IRQ, bool) {
	if !p.present[id] {
		return nil, 0, false
	}
	return p.regs[id], IRQ(27 + uint8(id)), true
}

type fakeAdcProvider struct {
	regs    [AdcCount]*fakeRegs
	present [AdcCount]bool
	common  *fakeRegs
	osc     *fakeRegs
}

func (p *fakeAdcProvider) AdcRegs(id AdcID) (RegBlock, IRQ, bool) {
	if !p.present[id] {
		return nil, 0, false
	}
	return p.regs[id], IRQ(12 + uint8(id)), true
}

func (p *fakeAdcProvider) AdcCommon() RegBlock { return p.common }
func (p *fakeAdcProvider) OscRegs() RegBlock   { return p.osc }
