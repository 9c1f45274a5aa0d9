//go:build tinygo

package stm32f0

import (
	"time"

	"stm32go/core"
)

// msTicker implements core.Ticker with a millisecond tick derived from
// the runtime clock. All bounded waits in the core count these ticks.
type msTicker struct{}

func (msTicker) Now() uint32 {
	return uint32(time.Now().UnixNano() / int64(time.Millisecond))
}

var _ core.Ticker = msTicker{}

// SleepTicks blocks for n ticker ticks. Examples use it for pacing.
func SleepTicks(n uint32) {
	time.Sleep(time.Duration(n) * time.Millisecond)
}
