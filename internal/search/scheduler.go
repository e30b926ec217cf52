package search

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was stopped.
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealScheduler uses runtime timers. Callbacks run on their own goroutine.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// VirtualScheduler is a manually advanced scheduler for tests. Callbacks
// run synchronously inside Advance, in due order.
type VirtualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*virtualTimer
}

type virtualTimer struct {
	s       *VirtualScheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{}
}

func (s *VirtualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &virtualTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (t *virtualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves virtual time forward by d, firing every timer that comes
// due, including timers scheduled by callbacks along the way.
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()

		next.fn()
	}
}

func (s *VirtualScheduler) nextDueLocked(target time.Duration) *virtualTimer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live

	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	if len(live) == 0 || live[0].at > target {
		return nil
	}
	return live[0]
}

// Pending returns the number of scheduled, unfired timers.
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
