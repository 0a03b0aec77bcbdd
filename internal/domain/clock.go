package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for record stamping. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Clock returns the injected time source.
func Clock() clockwork.Clock { return clock }

// Stamp sets ProcessedAt from the injected clock and returns the record.
func Stamp(rec IncidentRecord) IncidentRecord {
	rec.ProcessedAt = clock.Now()
	return rec
}
