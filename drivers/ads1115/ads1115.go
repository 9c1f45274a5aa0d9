// Package ads1115 drives the Texas Instruments ADS1115 16-bit I2C ADC.
// The device works against any bus implementing the drivers.I2C contract,
// so it runs unchanged on hardware and against a fake bus in tests.
package ads1115

import (
	"tinygo.org/x/drivers"
)

// Device represents one ADS1115 on an I2C bus.
type Device struct {
	bus  drivers.I2C
	addr uint16
	gain uint16
}

// New creates a handle for a device at addr. No bus traffic happens until
// Configure.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = DefaultAddress
	}
	return &Device{bus: bus, addr: addr, gain: Gain2048}
}

// Configure programs the configuration the examples rely on: single-ended
// AIN0, +/-2.048 V gain, continuous conversion, 128 SPS, comparator
// disabled, conversion started.
func (d *Device) Configure() error {
	cfg := cfgOS |
		uint16(MuxSingle0)<<cfgMuxShift |
		uint16(Gain2048)<<cfgPgaShift |
		uint16(ModeContinuous)<<cfgModeShift |
		uint16(Rate128)<<cfgRateShift |
		uint16(CompQueueDisable)
	d.gain = Gain2048
	return d.writeRegister(regConfig, cfg)
}

// Connected reports whether the device answers on the bus.
func (d *Device) Connected() bool {
	_, err := d.readRegister(regConfig)
	return err == nil
}

// ReadConversion returns the latest raw conversion result.
func (d *Device) ReadConversion() (int16, error) {
	raw, err := d.readRegister(regConversion)
	if err != nil {
		return 0, err
	}
	return int16(raw), nil
}

// Voltage returns the latest conversion scaled to millivolts using the
// configured gain.
func (d *Device) Voltage() (int32, error) {
	raw, err := d.ReadConversion()
	if err != nil {
		return 0, err
	}
	return int32(raw) * fullScaleMilliVolts[d.gain&0x7] / 32768, nil
}

// SetMultiplexer selects the input pair (Mux* constants).
func (d *Device) SetMultiplexer(mux uint16) error {
	return d.updateConfig(cfgMuxMask, mux<<cfgMuxShift)
}

// Multiplexer reads back the input selection.
func (d *Device) Multiplexer() (uint16, error) {
	return d.configField(cfgMuxMask, cfgMuxShift)
}

// SetGain selects the programmable gain (Gain* constants).
func (d *Device) SetGain(gain uint16) error {
	if err := d.updateConfig(cfgPgaMask, gain<<cfgPgaShift); err != nil {
		return err
	}
	d.gain = gain & 0x7
	return nil
}

// Gain reads back the gain setting.
func (d *Device) Gain() (uint16, error) {
	return d.configField(cfgPgaMask, cfgPgaShift)
}

// SetMode switches between continuous and single-shot conversion.
func (d *Device) SetMode(mode uint16) error {
	return d.updateConfig(cfgModeMask, mode<<cfgModeShift)
}

// Mode reads back the operating mode.
func (d *Device) Mode() (uint16, error) {
	return d.configField(cfgModeMask, cfgModeShift)
}

// SetRate selects the data rate (Rate* constants).
func (d *Device) SetRate(rate uint16) error {
	return d.updateConfig(cfgRateMask, rate<<cfgRateShift)
}

// Rate reads back the data rate.
func (d *Device) Rate() (uint16, error) {
	return d.configField(cfgRateMask, cfgRateShift)
}

// SetComparatorQueue configures how many readings beyond threshold assert
// the ALERT pin (CompQueue* constants).
func (d *Device) SetComparatorQueue(que uint16) error {
	return d.updateConfig(cfgCompQueMask, que)
}

// StartSingle triggers one conversion in single-shot mode.
func (d *Device) StartSingle() error {
	cfg, err := d.readRegister(regConfig)
	if err != nil {
		return err
	}
	return d.writeRegister(regConfig, cfg|cfgOS)
}

// Busy reports whether a single-shot conversion is still running.
func (d *Device) Busy() (bool, error) {
	cfg, err := d.readRegister(regConfig)
	if err != nil {
		return false, err
	}
	return cfg&cfgOS == 0, nil
}

func (d *Device) configField(mask, shift uint16) (uint16, error) {
	cfg, err := d.readRegister(regConfig)
	if err != nil {
		return 0, err
	}
	return (cfg & mask) >> shift, nil
}

func (d *Device) updateConfig(mask, value uint16) error {
	cfg, err := d.readRegister(regConfig)
	if err != nil {
		return err
	}
	cfg = cfg&^mask | value&mask
	return d.writeRegister(regConfig, cfg)
}

func (d *Device) readRegister(reg uint8) (uint16, error) {
	var buf [2]byte
	if err := d.bus.Tx(d.addr, []byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func (d *Device) writeRegister(reg uint8, val uint16) error {
	return d.bus.Tx(d.addr, []byte{reg, byte(val >> 8), byte(val)}, nil)
}
