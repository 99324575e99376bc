package llm

import "github.com/jonboulle/clockwork"

// clock paces the pause between submission attempts.
var clock = clockwork.NewRealClock()

// SetClock swaps the package clock, for tests. Passing nil restores the
// real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
