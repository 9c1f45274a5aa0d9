//go:build !tinygo

package core

// irqState is a placeholder for the saved interrupt mask on regular Go.
type irqState uintptr

// maskIRQ is a no-op on regular Go (tests run single threaded).
func maskIRQ() irqState {
	return 0
}

// unmaskIRQ restores the interrupt mask saved by maskIRQ.
func unmaskIRQ(state irqState) {
}
