package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is the package time source for ProcessedAt stamps. Production uses
// the real clock; tests freeze it via SetClock for deterministic results.
var clock = clockwork.NewRealClock()

// Now returns the current time from the injectable clock.
func Now() time.Time { return clock.Now() }

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
