package host

import (
	"math"

	"github.com/gnashcore/avm1/internal/value"
)

// HostTimers is the host-provided setInterval/setTimeout collaborator
// (spec 6). The core never runs a timer callback itself — firing a
// timer means enqueuing its Function onto the action queue (component
// I) at the host's next synchronization point; HostTimers only tracks
// which timers exist and their due times.
type HostTimers interface {
	// SetInterval registers fn(args...) to fire every ms milliseconds
	// (or once, if repeat is false) and returns an id clearInterval can
	// cancel. A negative or non-finite ms is rejected (id 0, ok false).
	SetInterval(ms float64, fn value.ObjectID, args []value.Value, repeat bool) (id int, ok bool)

	// ClearInterval cancels the timer with the given id. Clearing an
	// unknown or already-fired one-shot id is a silent no-op.
	ClearInterval(id int)

	// Now returns the current reading of the host's movie clock in
	// milliseconds, for ActionGetTime.
	Now() float64
}

// timer is one registered SetInterval/setTimeout entry.
type timer struct {
	id      int
	ms      float64
	fn      value.ObjectID
	args    []value.Value
	repeat  bool
	dueAt   float64 // host clock reading at which this timer next fires
	cleared bool
}

// MemoryTimers is an in-memory HostTimers: it tracks registrations and
// due times but never advances a clock on its own. A host (or test)
// calls Tick to advance the simulated clock and collect the timers due
// to fire, enqueuing each onto the action queue itself.
type MemoryTimers struct {
	clock   float64
	nextID  int
	timers  map[int]*timer
}

// NewMemoryTimers returns an empty timer registry with its clock at 0.
func NewMemoryTimers() *MemoryTimers {
	return &MemoryTimers{timers: map[int]*timer{}}
}

func (t *MemoryTimers) SetInterval(ms float64, fn value.ObjectID, args []value.Value, repeat bool) (int, bool) {
	if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, false
	}
	t.nextID++
	id := t.nextID
	t.timers[id] = &timer{id: id, ms: ms, fn: fn, args: args, repeat: repeat, dueAt: t.clock + ms}
	return id, true
}

func (t *MemoryTimers) ClearInterval(id int) {
	if tm, ok := t.timers[id]; ok {
		tm.cleared = true
		delete(t.timers, id)
	}
}

func (t *MemoryTimers) Now() float64 { return t.clock }

// Due is one timer that has reached its fire time.
type Due struct {
	ID   int
	Fn   value.ObjectID
	Args []value.Value
}

// Tick advances the simulated clock by deltaMS and returns every timer
// due to fire, in ascending id order. A repeating timer is
// rescheduled; a one-shot timer is removed after firing.
func (t *MemoryTimers) Tick(deltaMS float64) []Due {
	t.clock += deltaMS
	var due []Due
	for id := 1; id <= t.nextID; id++ {
		tm, ok := t.timers[id]
		if !ok || tm.cleared || tm.dueAt > t.clock {
			continue
		}
		due = append(due, Due{ID: tm.id, Fn: tm.fn, Args: tm.args})
		if tm.repeat {
			tm.dueAt += tm.ms
		} else {
			delete(t.timers, id)
		}
	}
	return due
}
