package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/taskpulse/internal/query"
)

type recorder struct {
	mu   sync.Mutex
	navs []Navigation
}

func (r *recorder) Navigate(n Navigation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navs = append(r.navs, n)
}

func (r *recorder) terms() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.navs))
	for i, n := range r.navs {
		out[i] = n.Term
	}
	return out
}

func newTestDispatcher(t *testing.T, initial string) (*Dispatcher, *recorder, *VirtualScheduler) {
	t.Helper()
	rec := &recorder{}
	sched := NewVirtualScheduler()
	d, err := NewDispatcher("u1", rec, Options{
		Delay:     300 * time.Millisecond,
		Settle:    100 * time.Millisecond,
		Scheduler: sched,
		Initial:   initial,
	})
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d, rec, sched
}

// ============================================================
// Coalescing
// ============================================================

func TestRequestDispatchesAfterDelay(t *testing.T) {
	d, rec, sched := newTestDispatcher(t, "")

	d.Request("milk")
	assert.True(t, d.Pending())
	assert.Equal(t, StatePending, d.State())

	sched.Advance(299 * time.Millisecond)
	assert.Empty(t, rec.terms(), "nothing fires before the quiet period")

	sched.Advance(time.Millisecond)
	assert.Equal(t, []string{"milk"}, rec.terms())
	assert.False(t, d.Pending())
	assert.Equal(t, StateIdle, d.State())
	assert.Equal(t, "milk", d.LastDispatched())

	want, err := query.SearchTasks("u1", "milk")
	require.NoError(t, err)
	assert.Equal(t, want, rec.navs[0].Query)
}

func TestSameValueTwiceDispatchesOnce(t *testing.T) {
	d, rec, sched := newTestDispatcher(t, "")

	d.Request("x")
	d.Request("x")
	assert.Equal(t, 1, sched.Pending(), "one dispatch scheduled")

	sched.Advance(time.Second)
	assert.Equal(t, []string{"x"}, rec.terms())

	d.Request("x")
	sched.Advance(time.Second)
	assert.Equal(t, []string{"x"}, rec.terms(), "re-submitting the dispatched value is a no-op")
}

func TestLastWriteWins(t *testing.T) {
	d, rec, sched := newTestDispatcher(t, "")

	d.Request("a")
	sched.Advance(200 * time.Millisecond)
	d.Request("ab")
	sched.Advance(200 * time.Millisecond)
	d.Request("b")

	sched.Advance(299 * time.Millisecond)
	assert.Empty(t, rec.terms())
	sched.Advance(time.Millisecond)
	assert.Equal(t, []string{"b"}, rec.terms())
}

func TestEmptyDispatchesImmediately(t *testing.T) {
	d, rec, sched := newTestDispatcher(t, "milk")

	d.Request("mil")
	d.Request("")

	assert.Equal(t, []string{""}, rec.terms(), "clearing dispatches without delay")
	assert.False(t, d.Pending(), "pending request was cancelled")

	want, err := query.SearchTasks("u1", "")
	require.NoError(t, err)
	assert.Equal(t, want, rec.navs[0].Query, "unfiltered view")

	sched.Advance(time.Second)
	assert.Equal(t, []string{""}, rec.terms(), "cancelled timer never fires")
}

func TestEmptyWhenAlreadyUnfiltered(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, "")
	d.Request("")
	assert.Empty(t, rec.terms())
}

func TestReturnToBaselineCancelsPending(t *testing.T) {
	d, rec, sched := newTestDispatcher(t, "milk")

	d.Request("milks")
	require.True(t, d.Pending())
	d.Request("milk")
	assert.False(t, d.Pending())

	sched.Advance(time.Second)
	assert.Empty(t, rec.terms())
}

// ============================================================
// Flags and lifecycle
// ============================================================

func TestSettlingIsIndependentOfPending(t *testing.T) {
	d, _, sched := newTestDispatcher(t, "")

	d.Request("a")
	sched.Advance(300 * time.Millisecond)
	assert.True(t, d.Settling())
	assert.False(t, d.Pending())

	d.Request("b")
	assert.True(t, d.Settling(), "both flags can be raised at once")
	assert.True(t, d.Pending())

	sched.Advance(100 * time.Millisecond)
	assert.False(t, d.Settling())
	assert.True(t, d.Pending())
}

func TestSettleWindowRestartsOnEachDispatch(t *testing.T) {
	d, _, sched := newTestDispatcher(t, "x")

	d.Request("")
	sched.Advance(80 * time.Millisecond)
	d.Request("y")
	sched.Advance(300 * time.Millisecond) // dispatch y at t=380
	sched.Advance(50 * time.Millisecond)
	assert.True(t, d.Settling(), "settle window runs from the latest dispatch")
	sched.Advance(50 * time.Millisecond)
	assert.False(t, d.Settling())
}

func TestCloseStopsEverything(t *testing.T) {
	d, rec, sched := newTestDispatcher(t, "")

	d.Request("late")
	d.Close()
	assert.False(t, d.Pending())
	assert.Equal(t, StateIdle, d.State())

	sched.Advance(time.Second)
	assert.Empty(t, rec.terms(), "no dispatch into a closed target")

	d.Request("")
	d.Request("more")
	sched.Advance(time.Second)
	assert.Empty(t, rec.terms())
	assert.Equal(t, 0, sched.Pending())

	d.Close()
}

func TestNewDispatcherValidatesUser(t *testing.T) {
	_, err := NewDispatcher("", &recorder{}, Options{})
	assert.ErrorIs(t, err, query.ErrInvalidArgument)
}

func TestNavigatorMayReenter(t *testing.T) {
	sched := NewVirtualScheduler()
	var d *Dispatcher
	var seen []string
	d, err := NewDispatcher("u1", NavigatorFunc(func(n Navigation) {
		seen = append(seen, n.Term)
		assert.Equal(t, StateDispatching, d.State())
		if n.Term == "a" {
			d.Request("b")
		}
	}), Options{Scheduler: sched})
	require.NoError(t, err)
	defer d.Close()

	d.Request("a")
	sched.Advance(time.Second)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestRealSchedulerDispatches(t *testing.T) {
	done := make(chan Navigation, 1)
	d, err := NewDispatcher("u1", NavigatorFunc(func(n Navigation) { done <- n }), Options{
		Delay: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	defer d.Close()

	d.Request("real")
	select {
	case n := <-done:
		assert.Equal(t, "real", n.Term)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch never happened")
	}
}

func TestVirtualSchedulerOrdering(t *testing.T) {
	s := NewVirtualScheduler()
	var order []int
	s.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })
	s.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	stopped := s.AfterFunc(15*time.Millisecond, func() { order = append(order, 99) })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	s.Advance(30 * time.Millisecond)
	assert.Equal(t, []int{1, 2}, order)
}
