// Package suggest provides suggestion computation and the dispatcher that
// moves it off the interactive goroutine.
//
// The Dispatcher is the only way suggestion work reaches the worker queue:
// it snapshots the current pointer trace at dispatch time, submits a task,
// and guarantees the result callback fires at most once, on the worker
// goroutine, in dispatch order.
package suggest

import (
	"time"

	"github.com/vanderheijden86/glidetype/pkg/metrics"
	"github.com/vanderheijden86/glidetype/pkg/trace"
	"github.com/vanderheijden86/glidetype/pkg/workqueue"
)

// Session ids distinguish the kind of suggestion request.
const (
	// SessionTyping is a request driven by discrete key taps.
	SessionTyping = iota
	// SessionGesture is a request driven by a continuous gesture trace.
	SessionGesture
)

// List is an ordered sequence of ranked word candidates. May be empty.
type List []string

// Empty reports whether the list holds no candidates.
func (l List) Empty() bool {
	return len(l) == 0
}

// Top returns the highest-ranked candidate.
func (l List) Top() (string, bool) {
	if len(l) == 0 {
		return "", false
	}
	return l[0], true
}

// Callback receives a computed suggestion list on the worker goroutine.
type Callback func(List)

// Request describes one suggestion computation. Immutable once enqueued;
// the worker owns it exclusively after Submit.
type Request struct {
	SessionID      int
	SequenceNumber int
	Callback       Callback
}

// Suggester computes ranked suggestions for a trace. Implementations are
// called synchronously on the worker goroutine and may be slow.
type Suggester interface {
	Suggest(sessionID int, tr trace.Trace) List
}

// SuggesterFunc adapts a function to the Suggester interface.
type SuggesterFunc func(sessionID int, tr trace.Trace) List

func (f SuggesterFunc) Suggest(sessionID int, tr trace.Trace) List {
	return f(sessionID, tr)
}

// TraceSource supplies the pointer trace snapshot for a request.
// Snapshot must return a copy the worker can own (no aliasing of live state).
type TraceSource interface {
	Snapshot() trace.Trace
}

// Dispatcher translates suggestion requests into worker-queue tasks.
type Dispatcher struct {
	queue     *workqueue.Queue
	suggester Suggester
	source    TraceSource
}

// NewDispatcher creates a Dispatcher bound to a worker queue.
func NewDispatcher(q *workqueue.Queue, s Suggester, src TraceSource) *Dispatcher {
	return &Dispatcher{queue: q, suggester: s, source: src}
}

// RequestSuggestions enqueues a suggestion computation and returns
// immediately. The trace is snapshotted now, on the calling goroutine, so a
// later mutation of composition state cannot race the worker. The callback
// runs on the worker goroutine, at most once; it is never invoked if the
// queue has shut down.
func (d *Dispatcher) RequestSuggestions(sessionID, sequenceNumber int, cb Callback) {
	if cb == nil {
		return
	}
	tr := d.source.Snapshot()
	req := Request{SessionID: sessionID, SequenceNumber: sequenceNumber, Callback: cb}
	dispatchedAt := time.Now()

	d.queue.Submit(func() {
		metrics.DispatchLatency.Record(time.Since(dispatchedAt))

		stop := metrics.Timer(metrics.SuggestCompute)
		list := d.suggester.Suggest(req.SessionID, tr)
		stop()

		req.Callback(list)
	})
}
