// Package search coalesces rapid search-box edits into a single delayed
// navigation to the matching task view.
package search

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/taskpulse/internal/query"
)

const (
	DefaultDelay  = 300 * time.Millisecond
	DefaultSettle = 150 * time.Millisecond
)

// State is the dispatcher's position in its timer lifecycle.
type State int

const (
	StateIdle State = iota
	StatePending
	StateDispatching
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDispatching:
		return "dispatching"
	default:
		return "idle"
	}
}

// Navigation is what a dispatch hands to the navigator: the search term
// and the predicate set to load for it.
type Navigation struct {
	Term  string
	Query query.Set
}

// Navigator receives dispatched searches.
type Navigator interface {
	Navigate(Navigation)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Navigation)

func (f NavigatorFunc) Navigate(n Navigation) { f(n) }

// Options configures a Dispatcher. Zero values fall back to defaults.
type Options struct {
	Delay     time.Duration
	Settle    time.Duration
	Scheduler Scheduler
	// Initial is the term already shown by the navigation target, so
	// requesting it again does nothing.
	Initial string
	Logger  zerolog.Logger
}

// Dispatcher debounces search requests. It is safe for concurrent use;
// the navigator is always called without internal locks held.
type Dispatcher struct {
	userID string
	nav    Navigator
	sched  Scheduler
	delay  time.Duration
	settle time.Duration
	log    zerolog.Logger

	mu           sync.Mutex
	state        State
	closed       bool
	last         string
	pendingValue string
	pending      Timer
	gen          int
	settling     bool
	settleTimer  Timer
	settleGen    int
}

// NewDispatcher validates userID up front so dispatches cannot fail later.
func NewDispatcher(userID string, nav Navigator, opts Options) (*Dispatcher, error) {
	if _, err := query.SearchTasks(userID, ""); err != nil {
		return nil, err
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	return &Dispatcher{
		userID: userID,
		nav:    nav,
		sched:  opts.Scheduler,
		delay:  opts.Delay,
		settle: opts.Settle,
		log:    opts.Logger,
		last:   opts.Initial,
	}, nil
}

// Request records the latest search input. See the package tests for the
// exact coalescing rules.
func (d *Dispatcher) Request(value string) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}

	if value == d.last {
		// Input is back at what is already shown.
		d.cancelLocked()
		d.mu.Unlock()
		return
	}
	if d.pending != nil && value == d.pendingValue {
		d.mu.Unlock()
		return
	}

	d.cancelLocked()

	if value == "" {
		nav, ok := d.beginLocked(value)
		d.mu.Unlock()
		if ok {
			d.navigate(nav)
		}
		return
	}

	d.gen++
	gen := d.gen
	d.pendingValue = value
	d.state = StatePending
	d.pending = d.sched.AfterFunc(d.delay, func() { d.fire(gen) })
	d.log.Debug().Str("term", value).Dur("delay", d.delay).Msg("search scheduled")
	d.mu.Unlock()
}

func (d *Dispatcher) fire(gen int) {
	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	value := d.pendingValue
	d.pending = nil
	d.pendingValue = ""
	nav, ok := d.beginLocked(value)
	d.mu.Unlock()
	if ok {
		d.navigate(nav)
	}
}

// beginLocked moves to dispatching and records value as the new baseline.
func (d *Dispatcher) beginLocked(value string) (Navigation, bool) {
	set, err := query.SearchTasks(d.userID, value)
	if err != nil {
		d.log.Error().Err(err).Str("term", value).Msg("build search query")
		d.state = StateIdle
		return Navigation{}, false
	}
	d.last = value
	d.state = StateDispatching
	d.gen++

	if d.settleTimer != nil {
		d.settleTimer.Stop()
	}
	d.settleGen++
	sg := d.settleGen
	d.settling = true
	d.settleTimer = d.sched.AfterFunc(d.settle, func() { d.endSettle(sg) })

	return Navigation{Term: value, Query: set}, true
}

func (d *Dispatcher) navigate(n Navigation) {
	d.log.Debug().Str("term", n.Term).Msg("search dispatched")
	d.nav.Navigate(n)

	d.mu.Lock()
	if d.state == StateDispatching {
		d.state = StateIdle
	}
	d.mu.Unlock()
}

func (d *Dispatcher) endSettle(gen int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.settleGen {
		return
	}
	d.settling = false
	d.settleTimer = nil
}

func (d *Dispatcher) cancelLocked() {
	if d.pending == nil {
		return
	}
	d.pending.Stop()
	d.pending = nil
	d.pendingValue = ""
	d.gen++
	if d.state == StatePending {
		d.state = StateIdle
	}
}

// Pending reports whether a delayed dispatch is scheduled.
func (d *Dispatcher) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Settling reports whether a dispatch happened within the settle window.
// It is independent of Pending.
func (d *Dispatcher) Settling() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settling
}

func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// LastDispatched returns the baseline term.
func (d *Dispatcher) LastDispatched() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Close cancels all timers. No dispatch starts once Close returns.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.cancelLocked()
	if d.settleTimer != nil {
		d.settleTimer.Stop()
		d.settleTimer = nil
	}
	d.settleGen++
	d.settling = false
	d.state = StateIdle
}
