package cbtimeout

import (
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/corebft/corebft/cbround"
)

// Scheduler tracks the increase count for each timeout kind within a
// height and starts clock timers that invoke a callback with the
// matching cbround.Timeout once elapsed. It is the reference
// implementation of the external timer owner described in spec §5; a
// production host may replace it with one wired to real goroutines and
// cancellation, but tests use this one with a clock.Mock for determinism.
type Scheduler struct {
	cfg   Config
	clock clock.Clock

	mu       sync.Mutex
	counts   map[cbround.TimeoutKind]int
	cancels  map[cbround.Timeout]func()
	OnElapse func(cbround.Timeout)
}

// NewScheduler builds a Scheduler using cfg's duration rule and c as the
// time source. Pass clock.New() for production use, or clock.NewMock()
// in tests.
func NewScheduler(cfg Config, c clock.Clock) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		clock:   c,
		counts:  make(map[cbround.TimeoutKind]int),
		cancels: make(map[cbround.Timeout]func()),
	}
}

// Schedule starts a timer for t, using the current increase count for
// t.Kind; that count is bumped when the timer fires, not when it is
// cancelled or replaced. Scheduling the same (kind, round) twice replaces
// the previous timer.
func (s *Scheduler) Schedule(t cbround.Timeout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[t]; ok {
		cancel()
	}

	k := s.counts[t.Kind]
	d := s.cfg.Duration(t.Kind, k)

	timer := s.clock.Timer(d)
	stopped := false
	cancel := func() {
		if !stopped {
			stopped = true
			timer.Stop()
		}
	}
	s.cancels[t] = cancel

	go func() {
		<-timer.C
		s.mu.Lock()
		delete(s.cancels, t)
		s.counts[t.Kind]++
		cb := s.OnElapse
		s.mu.Unlock()
		if cb != nil {
			cb(t)
		}
	}()
}

// CancelRound cancels every pending timer whose Timeout.Round is at or
// below r.Round, matching spec §5's cancellation contract: when the
// Driver advances past round r, all timeouts scheduled for rounds ≤ r
// become moot.
func (s *Scheduler) CancelRound(r cbround.Timeout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, cancel := range s.cancels {
		if t.Round <= r.Round {
			cancel()
			delete(s.cancels, t)
		}
	}
}

// ResetHeight clears every increase count, for use when the Driver moves
// to a new height.
func (s *Scheduler) ResetHeight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, cancel := range s.cancels {
		cancel()
		delete(s.cancels, t)
	}
	s.counts = make(map[cbround.TimeoutKind]int)
}
