// Package queue is component I: the cooperative ActionQueue that
// serializes event-driven code across frame steps (spec 4.7, 5). There
// is no concurrency here — the host drives everything by calling Drain
// at well-defined synchronization points (after a frame step, after a
// user-input event that traversed a script handler); the "scheduling"
// this package does is purely about ORDER, not about running anything
// off the calling goroutine.
package queue

import (
	"github.com/gnashcore/avm1/internal/diag"
	"github.com/gnashcore/avm1/internal/value"
)

// Band is one of the four priority classes a queue entry is filed
// under. Lower bands drain first within one round (spec 4.7 "INIT <
// CONSTRUCT < DOACTION < ENTERFRAME").
type Band int

const (
	BandInit Band = iota
	BandConstruct
	BandDoAction
	BandEnterFrame

	numBands
)

func (b Band) String() string {
	switch b {
	case BandInit:
		return "INIT"
	case BandConstruct:
		return "CONSTRUCT"
	case BandDoAction:
		return "DOACTION"
	case BandEnterFrame:
		return "ENTERFRAME"
	default:
		return "UNKNOWN"
	}
}

// DisplayChecker is the narrow capability Drain needs to implement
// cancellation (spec 5 "a queue entry whose target display node is
// destroyed is silently discarded at dispatch time"). internal/host's
// DisplayGraph satisfies this with zero adaptation.
type DisplayChecker interface {
	ResolveDisplay(ref value.DisplayRef) (obj value.ObjectID, isMovieClip bool, ok bool)
}

// Entry is one deferred unit of work: a code buffer slice, a function
// call, or a closure over a host callback, all erased to a single Run
// thunk by whoever constructs the Entry (this package never builds the
// closure itself, so it stays free of any dependency on the
// interpreter or the object graph). Receiver is the display node the
// entry is conceptually running "on", checked for destruction
// immediately before Run is invoked; HasReceiver is false for entries
// with no natural receiver (a bare host-callback timer, say), which
// can never be cancelled this way.
type Entry struct {
	Band        Band
	Receiver    value.DisplayRef
	HasReceiver bool
	Run         func()

	// Roots lists any value.ObjectID the Run closure captured (the
	// callback Function, its bound arguments, its `this`). A queued
	// entry is not reachable from any Environment's operand stack or
	// call frames, so without this the GC root set (component K) would
	// see nothing keeping those objects alive between enqueue and
	// drain; GCRoots folds every entry's Roots into the mark phase.
	Roots []value.ObjectID
}

// Queue is a priority FIFO over the four bands. The zero value is not
// usable; construct with New.
type Queue struct {
	bands   [numBands][]Entry
	display DisplayChecker
	diag    diag.Sink

	executing bool
}

// New returns an empty Queue. display may be nil, in which case no
// entry is ever cancelled for a destroyed receiver (HasReceiver is
// simply ignored). sink may be nil, in which case diag.Default is used.
func New(display DisplayChecker, sink diag.Sink) *Queue {
	if sink == nil {
		sink = diag.Default
	}
	return &Queue{display: display, diag: sink}
}

// Push files entry under its own Band, at the back of that band's FIFO.
func (q *Queue) Push(entry Entry) {
	q.bands[entry.Band] = append(q.bands[entry.Band], entry)
}

// PushFunc is a convenience wrapper for the common case of an entry
// with no natural receiver (a host timer callback, a loadVariables
// completion) to cancel against.
func (q *Queue) PushFunc(band Band, run func()) {
	q.Push(Entry{Band: band, Run: run})
}

// Len reports how many entries remain queued across every band.
func (q *Queue) Len() int {
	n := 0
	for _, b := range q.bands {
		n += len(b)
	}
	return n
}

// Drain repeatedly pops the lowest non-empty band until every band is
// empty (spec 4.7). An entry Run invokes may itself Push more entries;
// those are appended to the same round and observed by Drain's own loop
// rather than deferred to a later call, since nextBand always
// re-scans from BandInit.
//
// executing guards against Drain being re-entered from inside an
// entry's own Run (an ENTERFRAME handler that somehow triggers another
// Drain call) — spec 4.8 uses the same guard shape for Trigger
// recursion; here it simply no-ops the inner call rather than
// interleaving two drains over the same band slices.
func (q *Queue) Drain() {
	if q.executing {
		return
	}
	q.executing = true
	defer func() { q.executing = false }()

	for {
		band, ok := q.nextBand()
		if !ok {
			return
		}
		entry := q.bands[band][0]
		q.bands[band] = q.bands[band][1:]

		if entry.HasReceiver && q.display != nil {
			if _, _, ok := q.display.ResolveDisplay(entry.Receiver); !ok {
				q.diag.Emit(diag.ASCoding, "queue: discarding %s entry for destroyed receiver %q", band, entry.Receiver.Path)
				continue
			}
		}
		if entry.Run != nil {
			entry.Run()
		}
	}
}

// GCRoots returns the Roots of every entry still queued across all
// bands, so a mark phase run between frames sees objects a pending
// entry depends on as reachable even though nothing on any call stack
// references them yet.
func (q *Queue) GCRoots() []value.ObjectID {
	var roots []value.ObjectID
	for _, band := range q.bands {
		for _, entry := range band {
			roots = append(roots, entry.Roots...)
		}
	}
	return roots
}

func (q *Queue) nextBand() (Band, bool) {
	for b := Band(0); b < numBands; b++ {
		if len(q.bands[b]) > 0 {
			return b, true
		}
	}
	return 0, false
}
