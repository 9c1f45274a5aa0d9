package ads1115

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*fakeI2C)(nil)

// fakeI2C models the register file of one ADS1115 on the bus.
type fakeI2C struct {
	regs    [4]uint16
	pointer uint8
	fail    bool
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.fail {
		return errors.New("nack")
	}
	if len(w) > 0 {
		f.pointer = w[0]
		if len(w) == 3 {
			f.regs[f.pointer&0x3] = uint16(w[1])<<8 | uint16(w[2])
		}
	}
	if len(r) == 2 {
		v := f.regs[f.pointer&0x3]
		r[0] = byte(v >> 8)
		r[1] = byte(v)
	}
	return nil
}

func TestConfigure(t *testing.T) {
	bus := &fakeI2C{}
	dev := New(bus, DefaultAddress)

	if err := dev.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	// Single-ended AIN0, 2.048 V, single shot, 128 SPS, comparator off.
	want := uint16(0xC483)
	if bus.regs[regConfig] != want {
		t.Errorf("config = %#x, want %#x", bus.regs[regConfig], want)
	}
}

func TestConfigAccessors(t *testing.T) {
	bus := &fakeI2C{}
	dev := New(bus, 0)
	if err := dev.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	if err := dev.SetMode(ModeContinuous); err != nil {
		t.Fatalf("SetMode failed: %v", err)
	}
	mode, err := dev.Mode()
	if err != nil || mode != ModeContinuous {
		t.Errorf("Mode = %d, %v; want continuous", mode, err)
	}

	if err := dev.SetMultiplexer(MuxSingle2); err != nil {
		t.Fatalf("SetMultiplexer failed: %v", err)
	}
	mux, err := dev.Multiplexer()
	if err != nil || mux != MuxSingle2 {
		t.Errorf("Multiplexer = %d, %v; want %d", mux, err, MuxSingle2)
	}

	if err := dev.SetRate(Rate860); err != nil {
		t.Fatalf("SetRate failed: %v", err)
	}
	rate, err := dev.Rate()
	if err != nil || rate != Rate860 {
		t.Errorf("Rate = %d, %v; want %d", rate, err, Rate860)
	}

	// Field updates must not disturb neighboring fields.
	gain, err := dev.Gain()
	if err != nil || gain != Gain2048 {
		t.Errorf("Gain = %d, %v; want %d after unrelated updates", gain, err, Gain2048)
	}
}

func TestReadConversion(t *testing.T) {
	bus := &fakeI2C{}
	dev := New(bus, 0)

	bus.regs[regConversion] = 0x1234
	raw, err := dev.ReadConversion()
	if err != nil {
		t.Fatalf("ReadConversion failed: %v", err)
	}
	if raw != 0x1234 {
		t.Errorf("raw = %#x, want 0x1234", raw)
	}

	// Negative readings come back sign-extended.
	bus.regs[regConversion] = 0x8000
	raw, err = dev.ReadConversion()
	if err != nil {
		t.Fatalf("ReadConversion failed: %v", err)
	}
	if raw != -32768 {
		t.Errorf("raw = %d, want -32768", raw)
	}
}

func TestVoltage(t *testing.T) {
	bus := &fakeI2C{}
	dev := New(bus, 0)
	if err := dev.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	// Full scale at the default 2.048 V gain.
	bus.regs[regConversion] = 0x7FFF
	mv, err := dev.Voltage()
	if err != nil {
		t.Fatalf("Voltage failed: %v", err)
	}
	if mv != 2047 {
		t.Errorf("mv = %d, want 2047", mv)
	}

	bus.regs[regConversion] = 0x4000 // half scale
	mv, err = dev.Voltage()
	if err != nil {
		t.Fatalf("Voltage failed: %v", err)
	}
	if mv != 1024 {
		t.Errorf("mv = %d, want 1024", mv)
	}
}

func TestSingleShot(t *testing.T) {
	bus := &fakeI2C{}
	dev := New(bus, 0)
	if err := dev.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	if err := dev.StartSingle(); err != nil {
		t.Fatalf("StartSingle failed: %v", err)
	}
	if bus.regs[regConfig]&cfgOS == 0 {
		t.Error("OS bit not set by StartSingle")
	}

	busy, err := dev.Busy()
	if err != nil {
		t.Fatalf("Busy failed: %v", err)
	}
	if busy {
		t.Error("device busy with OS bit set")
	}
}

func TestBusError(t *testing.T) {
	bus := &fakeI2C{fail: true}
	dev := New(bus, 0)

	if dev.Connected() {
		t.Error("Connected true on a dead bus")
	}
	if err := dev.Configure(); err == nil {
		t.Error("Configure succeeded on a dead bus")
	}
	if _, err := dev.ReadConversion(); err == nil {
		t.Error("ReadConversion succeeded on a dead bus")
	}
}
