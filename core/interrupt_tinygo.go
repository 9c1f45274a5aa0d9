//go:build tinygo

package core

import "runtime/interrupt"

type irqState = interrupt.State

// maskIRQ disables interrupts and returns the previous state.
func maskIRQ() irqState {
	return interrupt.Disable()
}

// unmaskIRQ restores the interrupt state returned by maskIRQ.
func unmaskIRQ(state irqState) {
	interrupt.Restore(state)
}
