// Package timer issues one-shot wake-ups for timeline entries.
package timer

import (
	"sync"
	"time"

	"github.com/drake/clockwidget/clock"
)

// Event is sent when a wake-up fires.
type Event struct {
	ID int
	At time.Time // the instant the wake-up was scheduled for
}

// Service owns wake-up IDs, scheduling and cancellation.
// A fired event waits for the receiver until the service is closed.
type Service struct {
	events chan<- Event
	clock  clock.Clock
	timers map[int]func() bool // time.Timer.Stop
	nextID int
	mu     sync.Mutex

	stop     chan struct{}
	stopOnce sync.Once
}

// NewService creates a service that sends fired events to events.
// A nil clock uses the system clock.
func NewService(events chan<- Event, c clock.Clock) *Service {
	if c == nil {
		c = clock.Real{}
	}
	return &Service{
		events: events,
		clock:  c,
		timers: make(map[int]func() bool),
		stop:   make(chan struct{}),
	}
}

// At schedules a wake-up at t. Instants in the past fire immediately.
func (s *Service) At(t time.Time) int {
	d := t.Sub(s.clock.Now())
	if d < 0 {
		d = 0
	}
	return s.schedule(d, t)
}

// After schedules a wake-up after d.
func (s *Service) After(d time.Duration) int {
	return s.schedule(d, s.clock.Now().Add(d))
}

func (s *Service) schedule(d time.Duration, at time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID

	t := time.AfterFunc(d, func() {
		s.fire(id, at)
	})
	s.timers[id] = t.Stop

	return id
}

func (s *Service) fire(id int, at time.Time) {
	s.mu.Lock()
	if _, ok := s.timers[id]; !ok {
		s.mu.Unlock()
		return // Cancelled before firing
	}
	delete(s.timers, id)
	s.mu.Unlock()

	select {
	case s.events <- Event{ID: id, At: at}:
	case <-s.stop:
	}
}

// Cancel stops a pending wake-up.
func (s *Service) Cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stop, ok := s.timers[id]; ok {
		stop()
		delete(s.timers, id)
	}
}

// CancelAll stops every pending wake-up.
func (s *Service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stop := range s.timers {
		stop()
	}
	s.timers = make(map[int]func() bool)
}

// Pending returns the number of wake-ups not yet fired or cancelled.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close cancels every pending wake-up and releases events still waiting
// for a receiver. The service must not be used afterwards.
func (s *Service) Close() {
	s.CancelAll()
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}
