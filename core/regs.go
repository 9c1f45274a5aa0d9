// Peripheral register access abstraction.
// The state machines in this package never touch memory-mapped registers
// directly; they go through a RegBlock so the same logic runs against real
// hardware (targets/) and against in-memory fakes (tests).
package core

// RegOffset names a register within a peripheral's register block.
// The mapping from offset to bus address is owned by the target.
type RegOffset uint8

// USART registers.
const (
	RegUartCR1 RegOffset = iota
	RegUartBRR
	RegUartStatus // ISR on F0/F7, SR on F4
	RegUartRx     // RDR on F0/F7, DR on F4
	RegUartTx     // TDR on F0/F7, DR on F4
	uartRegCount
)

// ADC registers.
const (
	RegAdcISR RegOffset = iota
	RegAdcIER
	RegAdcCR
	RegAdcCFGR1
	RegAdcCFGR2
	RegAdcSMPR
	RegAdcCHSELR
	RegAdcDR
	adcRegCount
)

// ADC common (shared between instances) registers.
const (
	RegAdcCCR RegOffset = iota
)

// Oscillator control registers (RCC side).
const (
	RegOscCR2 RegOffset = iota
)

// RegBlock is the narrow register access contract used by the device
// state machines.
type RegBlock interface {
	Read(off RegOffset) uint32
	Write(off RegOffset, v uint32)
	SetBits(off RegOffset, mask uint32)
	ClearBits(off RegOffset, mask uint32)
}
