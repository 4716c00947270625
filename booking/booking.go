package booking

import (
	"sort"
	"time"
)

const (
	KindNormal   = "normal"
	KindTraining = "training"
	KindEvent    = "event"
	KindExam     = "exam"
)

type Booking struct {
	ID       string    `json:"id"`
	Position string    `json:"position"`
	VID      string    `json:"vid"`
	From     time.Time `json:"fromDate"`
	To       time.Time `json:"toDate"`
	Kind     string    `json:"kind,omitempty"`
}

// Draft is a booking payload without a server-assigned id, used as the
// body of create and update requests.
type Draft struct {
	Position string    `json:"position"`
	VID      string    `json:"vid"`
	From     time.Time `json:"fromDate"`
	To       time.Time `json:"toDate"`
	Kind     string    `json:"kind,omitempty"`
}

func (b Booking) Duration() time.Duration {
	return b.To.Sub(b.From)
}

func (b Booking) DurationMinutes() int {
	return int(b.Duration().Minutes())
}

func ValidKind(kind string) bool {
	switch kind {
	case KindNormal, KindTraining, KindEvent, KindExam:
		return true
	}
	return false
}

// Less orders bookings by position, then chronologically by start.
func Less(a, b Booking) bool {
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	return a.From.Before(b.From)
}

func sortBookings(bookings []Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return Less(bookings[i], bookings[j])
	})
}
