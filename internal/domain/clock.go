package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps composed map documents and run timings. Tests freeze it with SetClock
// so rendered artifacts are byte-for-byte reproducible.
var clock = clockwork.NewRealClock()

// SetClock replaces the time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}
