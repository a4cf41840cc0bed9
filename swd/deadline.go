package swd

import "time"

// Deadline is the monotonic-clock abstraction [Port] consults for the
// WAIT/FAULT retry budget in LowAccess. Injectable so tests (and the
// in-process simulator) don't have to burn real wall-clock time to
// exercise a 250ms timeout; see SPEC_FULL.md §9.
type Deadline interface {
	Expired() bool
}

// NewDeadlineFunc constructs a [Deadline] that expires after d.
type NewDeadlineFunc func(d time.Duration) Deadline

// wallClockDeadline is the default, real-time [Deadline] implementation.
type wallClockDeadline struct {
	deadline time.Time
}

func (d wallClockDeadline) Expired() bool {
	return time.Now().After(d.deadline)
}

// WallClock returns a [NewDeadlineFunc] backed by the real monotonic clock.
func WallClock() NewDeadlineFunc {
	return func(d time.Duration) Deadline {
		return wallClockDeadline{deadline: time.Now().Add(d)}
	}
}
