package core

// UartLayout carries the per-family register bit layout for the USART
// state machine. The machine itself is written once; families differ only
// in where the status/data registers live and how the baud divisor packs.
type UartLayout struct {
	// CR1 control bits: RE | TE | UE | RXNEIE combined, and the receive
	// interrupt bit alone (cleared first during stop).
	CR1Enable uint32
	CR1RxInt  uint32

	// RXNE mask in the status register.
	RxNotEmpty uint32

	// Baud-rate register packing.
	MantissaPos uint8
	FractionPos uint8
	MaxDivisor  uint32 // largest combined divisor the register holds

	// EchoByte, when nonzero, is pre-loaded into the transmit register by
	// the instance-1 receive handler before the callback runs. Diagnostic
	// quirk of the F0/F7 handlers.
	EchoByte byte
}

// UartLayoutF0 covers the F0/F7 register layout (ISR/RDR/TDR).
var UartLayoutF0 = UartLayout{
	CR1Enable:   uartCR1RE | uartCR1TE | uartCR1UE | uartCR1RXNEIE,
	CR1RxInt:    uartCR1RXNEIE,
	RxNotEmpty:  1 << 5,
	MantissaPos: 4,
	FractionPos: 0,
	MaxDivisor:  0xFFFF,
	EchoByte:    'h',
}

// UartLayoutF4 covers the F4 register layout (SR/DR). No echo quirk.
var UartLayoutF4 = UartLayout{
	CR1Enable:   uartCR1RE | uartCR1TE | uartCR1UEF4 | uartCR1RXNEIE,
	CR1RxInt:    uartCR1RXNEIE,
	RxNotEmpty:  1 << 5,
	MantissaPos: 4,
	FractionPos: 0,
	MaxDivisor:  0xFFFF,
}

const (
	uartCR1UE     = 1 << 0 // F0/F7 peripheral enable
	uartCR1RE     = 1 << 2
	uartCR1TE     = 1 << 3
	uartCR1RXNEIE = 1 << 5
	uartCR1UEF4   = 1 << 13 // F4 peripheral enable
)

// AdcLayout carries the register bit layout for the ADC state machine.
// Values below follow the F0 reference manual; other families plug in
// their own instance.
type AdcLayout struct {
	// ISR/IER flag masks, shared bit positions between the two registers.
	Ready     uint32 // ADRDY
	EndSample uint32 // EOSMP
	EndConv   uint32 // EOC
	EndSeq    uint32 // EOS
	Overrun   uint32 // OVR
	Watchdog  uint32 // AWD

	// CR bits.
	Enable    uint32 // ADEN
	Disable   uint32 // ADDIS
	StartConv uint32 // ADSTART
	StopConv  uint32 // ADSTP
	Calibrate uint32 // ADCAL

	// CFGR1 bits.
	Continuous uint32 // CONT
	DMAEnable  uint32 // DMAEN
	DMACirc    uint32 // DMACFG

	// CFGR2 bits.
	ClockModeMask uint32 // CKMODE

	// CCR analog-switch bits for the internal channels.
	TempSwitch uint32 // TSEN
	VrefSwitch uint32 // VREFEN
	VbatSwitch uint32 // VBATEN

	// Oscillator control bits for the asynchronous sample clock.
	OscOn    uint32 // HSI14ON
	OscReady uint32 // HSI14RDY

	// Channel numbers of the internal sources, and the highest channel
	// the family exposes.
	TempChannel uint8
	VrefChannel uint8
	VbatChannel uint8
	MaxChannel  uint8

	// Widest sample-time value the SMPR field holds.
	MaxSampleTime uint8
}

// AdcLayoutF0 is the F0 family layout (RM0091).
var AdcLayoutF0 = AdcLayout{
	Ready:     1 << 0,
	EndSample: 1 << 1,
	EndConv:   1 << 2,
	EndSeq:    1 << 3,
	Overrun:   1 << 4,
	Watchdog:  1 << 7,

	Enable:    1 << 0,
	Disable:   1 << 1,
	StartConv: 1 << 2,
	StopConv:  1 << 4,
	Calibrate: 1 << 31,

	Continuous: 1 << 13,
	DMAEnable:  1 << 0,
	DMACirc:    1 << 1,

	ClockModeMask: 3 << 30,

	VrefSwitch: 1 << 22,
	TempSwitch: 1 << 23,
	VbatSwitch: 1 << 24,

	OscOn:    1 << 0,
	OscReady: 1 << 1,

	TempChannel: 16,
	VrefChannel: 17,
	VbatChannel: 18,
	MaxChannel:  18,

	MaxSampleTime: 7,
}
