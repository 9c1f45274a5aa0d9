package ads1115

// Register map and config-register fields of the TI ADS1113/4/5
// (datasheet SBAS444B). All registers are 16 bits wide.

// I2C addresses, selected by the ADDR pin strapping.
const (
	AddressGND = 0x48 // ADDR tied to ground (default)
	AddressVDD = 0x49
	AddressSDA = 0x4A
	AddressSCL = 0x4B

	DefaultAddress = AddressGND
)

// Register pointers.
const (
	regConversion = 0x00
	regConfig     = 0x01
	regLoThresh   = 0x02
	regHiThresh   = 0x03
)

// Config register fields: OS[15] MUX[14:12] PGA[11:9] MODE[8] DR[7:5]
// COMP_MODE[4] COMP_POL[3] COMP_LAT[2] COMP_QUE[1:0].
const (
	cfgOS = 1 << 15

	cfgMuxShift = 12
	cfgMuxMask  = 0x7 << cfgMuxShift

	cfgPgaShift = 9
	cfgPgaMask  = 0x7 << cfgPgaShift

	cfgModeShift = 8
	cfgModeMask  = 1 << cfgModeShift

	cfgRateShift = 5
	cfgRateMask  = 0x7 << cfgRateShift

	cfgCompModeShift = 4
	cfgCompPolShift  = 3
	cfgCompLatShift  = 2

	cfgCompQueMask = 0x3
)

// Multiplexer settings.
const (
	MuxDiff01 = 0x0 // AIN0 - AIN1 (power-up default)
	MuxDiff03 = 0x1
	MuxDiff13 = 0x2
	MuxDiff23 = 0x3
	MuxSingle0 = 0x4 // AIN0 - GND
	MuxSingle1 = 0x5
	MuxSingle2 = 0x6
	MuxSingle3 = 0x7
)

// Programmable gain settings.
const (
	Gain6144 = 0x0 // +/- 6.144 V
	Gain4096 = 0x1
	Gain2048 = 0x2 // power-up default
	Gain1024 = 0x3
	Gain512  = 0x4
	Gain256  = 0x5
)

// fullScaleMilliVolts maps a gain setting to its full-scale range in mV.
var fullScaleMilliVolts = [...]int32{6144, 4096, 2048, 1024, 512, 256, 256, 256}

// Operating mode.
const (
	ModeContinuous = 0x0
	ModeSingleShot = 0x1 // power-up default
)

// Data rates, samples per second.
const (
	Rate8   = 0x0
	Rate16  = 0x1
	Rate32  = 0x2
	Rate64  = 0x3
	Rate128 = 0x4 // power-up default
	Rate250 = 0x5
	Rate475 = 0x6
	Rate860 = 0x7
)

// Comparator queue settings.
const (
	CompQueue1       = 0x0
	CompQueue2       = 0x1
	CompQueue4       = 0x2
	CompQueueDisable = 0x3 // power-up default
)
