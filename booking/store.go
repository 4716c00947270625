package booking

import (
	"sort"
	"sync"
	"time"
)

// Store is the client-side cache of the booking list. Mutations keep
// the list sorted by (position, start); entries are only ever
// created, replaced or removed after the remote API has confirmed the
// corresponding change.
type Store struct {
	mu          sync.Mutex
	bookings    []Booking
	loading     bool
	err         error
	lastUpdated time.Time

	now func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewStoreWithClock injects the clock used for the lastUpdated stamp.
func NewStoreWithClock(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.loading = false
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}

// SetAll replaces the full list, clears the error and loading flags
// and stamps lastUpdated.
func (s *Store) SetAll(bookings []Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append([]Booking(nil), bookings...)
	sortBookings(s.bookings)
	s.err = nil
	s.loading = false
	s.lastUpdated = s.now()
}

// Add appends a confirmed booking and re-sorts; clears any error.
func (s *Store) Add(b Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, b)
	sortBookings(s.bookings)
	s.err = nil
}

// Update replaces the entry whose id matches and re-sorts; clears any
// error. Returns false when no entry matches.
func (s *Store) Update(b Booking) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for i := range s.bookings {
		if s.bookings[i].ID == b.ID {
			s.bookings[i] = b
			sortBookings(s.bookings)
			return true
		}
	}
	return false
}

// Put replaces the entry whose id matches, or appends when there is
// none, and re-sorts; clears any error. Used after a confirmed update
// so the result lands in the cache even when the entry was never
// fetched into it.
func (s *Store) Put(b Booking) {
	if s.Update(b) {
		return
	}
	s.Add(b)
}

// Remove deletes the entry with the given id; clears any error.
// Returns false when no entry matches.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current list in store order.
func (s *Store) Snapshot() []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Booking(nil), s.bookings...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}

func (s *Store) Get(id string) (Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return Booking{}, false
}

// Upcoming is the "all" view: bookings starting on or after the
// current UTC day, in store order.
func (s *Store) Upcoming(now time.Time) []Booking {
	day := StartOfDay(now)
	out := []Booking{}
	for _, b := range s.Snapshot() {
		if !b.From.Before(day) {
			out = append(out, b)
		}
	}
	return out
}

// OnDate is the "by date" view: bookings starting on the given UTC
// calendar day. A zero date yields an empty list.
func (s *Store) OnDate(date time.Time) []Booking {
	if date.IsZero() {
		return []Booking{}
	}
	out := []Booking{}
	for _, b := range s.Snapshot() {
		if SameDay(b.From, date) {
			out = append(out, b)
		}
	}
	return out
}

// Mine is the "my bookings" view: bookings owned by the given VID
// starting at or after now, chronologically by start.
func (s *Store) Mine(vid string, now time.Time) []Booking {
	out := []Booking{}
	for _, b := range s.Snapshot() {
		if b.VID == vid && !b.From.Before(now) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].From.Before(out[j].From)
	})
	return out
}
