package booking

import "time"

type Status int

const (
	StatusScheduled Status = iota
	StatusActive
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	default:
		return "Scheduled"
	}
}

// StatusOf derives the lifecycle state of a booking at the given
// instant. It is recomputed on every use; the result depends on the
// clock and must never be stored on the booking itself.
func StatusOf(b Booking, now time.Time) Status {
	if !now.Before(b.From) && now.Before(b.To) {
		return StatusActive
	}
	if b.From.After(now) {
		return StatusScheduled
	}
	return StatusCompleted
}
