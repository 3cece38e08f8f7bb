// Package gesture coordinates batch (gesture) input between the interactive
// goroutine and the suggestion worker.
//
// The coordinator guarantees three things at once: suggestion computation
// never runs on the interactive goroutine, the interactive goroutine never
// blocks waiting for results, and a cancel racing an in-flight computation
// cannot surface a stale commit.
package gesture

import (
	"sync"
	"sync/atomic"

	"github.com/vanderheijden86/glidetype/pkg/suggest"
	"github.com/vanderheijden86/glidetype/pkg/trace"
	"github.com/vanderheijden86/glidetype/pkg/workqueue"
)

// Coordinator is the operation surface for batch input. Call sites select a
// live or inert implementation at construction time and never need a nil
// check.
type Coordinator interface {
	// StartBatchInput marks a batch interaction as active.
	StartBatchInput()
	// UpdateBatchInput records the pointers accumulated so far and fetches
	// updated suggestions. Ignored while no interaction is active.
	UpdateBatchInput(tr trace.Trace, sequenceNumber int)
	// CancelBatchInput ends the interaction immediately, without fetching
	// suggestions. Synchronous with the caller.
	CancelBatchInput()
	// EndBatchInput records the final pointers, fetches suggestions, and
	// finalizes the interaction once the result arrives.
	EndBatchInput(tr trace.Trace, sequenceNumber int)
	// GetSuggestedWords fetches suggestions on the worker goroutine and
	// invokes cb there. At most one invocation per call.
	GetSuggestedWords(sessionID, sequenceNumber int, cb suggest.Callback)
	// Destroy stops the worker after draining in-flight requests. Every
	// operation afterwards is a no-op.
	Destroy()
}

// Config configures a live coordinator.
type Config struct {
	// Suggester computes ranked words for a trace. Required.
	Suggester suggest.Suggester

	// Display updates the suggestion strip and gesture preview. Invoked on
	// the worker goroutine with (suggestions, dismissPreview); dismissPreview
	// is true for the final update of an interaction. Implementations that
	// need UI affinity must hand off themselves (a message send suffices).
	Display func(words suggest.List, dismissPreview bool)

	// Finalize commits the completed interaction. Delivered through Schedule
	// once per completed, non-canceled interaction.
	Finalize func(words suggest.List)

	// Schedule runs fn on the UI-affine context. Nil runs fn inline on the
	// worker goroutine, which is only appropriate when Finalize itself is a
	// message send.
	Schedule func(fn func())

	// CommitAfterCancel controls the race between a cancel and an in-flight
	// end: when true the end still finalizes (the upstream behavior), when
	// false the finalize is suppressed.
	CommitAfterCancel bool
}

// CompositionState holds the pointer trace of the interaction in progress.
// Written under the coordinator's update path and snapshotted at dispatch
// time, so the worker never aliases live state.
type CompositionState struct {
	mu sync.Mutex
	tr trace.Trace
}

// SetTrace stores a copy of the supplied trace.
func (c *CompositionState) SetTrace(tr trace.Trace) {
	clone := tr.Clone()
	c.mu.Lock()
	c.tr = clone
	c.mu.Unlock()
}

// Snapshot returns a copy the caller can own.
func (c *CompositionState) Snapshot() trace.Trace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr.Clone()
}

// Reset clears the recorded trace.
func (c *CompositionState) Reset() {
	c.mu.Lock()
	c.tr = nil
	c.mu.Unlock()
}

// BatchCoordinator is the live Coordinator implementation.
type BatchCoordinator struct {
	cfg        Config
	queue      *workqueue.Queue
	dispatcher *suggest.Dispatcher
	compose    *CompositionState

	mu              sync.Mutex
	inBatchInput    bool         // guarded by mu
	lastSuggestions suggest.List // most recent non-empty result, guarded by mu

	destroyed atomic.Bool
}

// New creates a live coordinator with its own worker queue.
func New(cfg Config) *BatchCoordinator {
	c := &BatchCoordinator{
		cfg:     cfg,
		queue:   workqueue.New(workqueue.WithName("gesture_worker")),
		compose: &CompositionState{},
	}
	c.dispatcher = suggest.NewDispatcher(c.queue, cfg.Suggester, c.compose)
	logEvent(levelInfo, "coordinator_start", nil)
	return c
}

// StartBatchInput implements Coordinator.
func (c *BatchCoordinator) StartBatchInput() {
	if c.destroyed.Load() {
		return
	}
	c.mu.Lock()
	c.inBatchInput = true
	c.mu.Unlock()
	c.compose.Reset()
	logEvent(levelDebug, "batch_start", nil)
}

// UpdateBatchInput implements Coordinator.
func (c *BatchCoordinator) UpdateBatchInput(tr trace.Trace, sequenceNumber int) {
	c.updateBatchInput(tr, sequenceNumber, false)
}

// EndBatchInput implements Coordinator.
//
// The transition back to idle is deferred until the dispatched request's
// callback runs on the worker goroutine; only CancelBatchInput is
// synchronous with the caller.
func (c *BatchCoordinator) EndBatchInput(tr trace.Trace, sequenceNumber int) {
	c.updateBatchInput(tr, sequenceNumber, true)
}

// CancelBatchInput implements Coordinator.
//
// As opposed to EndBatchInput, the flag is cleared immediately on the calling
// goroutine: canceling does not need the long operation of pulling
// suggestions. An already-dispatched request is not retracted; its callback
// observes the cleared flag and treats its result as stale.
func (c *BatchCoordinator) CancelBatchInput() {
	if c.destroyed.Load() {
		return
	}
	c.mu.Lock()
	c.inBatchInput = false
	c.mu.Unlock()
	logEvent(levelDebug, "batch_cancel", nil)
}

// updateBatchInput can be called from any goroutine. It records the pointers
// and sends the request to the worker queue; the inlined callback runs on
// the worker goroutine no matter where the call originated. For forEnd the
// callback additionally schedules the finalize on the UI-affine context.
func (c *BatchCoordinator) updateBatchInput(tr trace.Trace, sequenceNumber int, forEnd bool) {
	if c.destroyed.Load() {
		return
	}

	c.mu.Lock()
	if !c.inBatchInput {
		// Batch input has ended or was canceled while this call was in
		// flight. Not an error; drop it.
		c.mu.Unlock()
		logEvent(levelDebug, "batch_update_ignored", map[string]any{
			"seq":     sequenceNumber,
			"for_end": forEnd,
		})
		return
	}
	c.compose.SetTrace(tr)
	c.dispatcher.RequestSuggestions(suggest.SessionGesture, sequenceNumber, func(words suggest.List) {
		c.onSuggestions(words, forEnd)
	})
	c.mu.Unlock()
	// Dispatch only enqueued; the lock was never held across any waiting.

	logEvent(levelDebug, "suggest_dispatch", map[string]any{
		"seq":     sequenceNumber,
		"for_end": forEnd,
		"samples": len(tr),
	})
}

// onSuggestions runs on the worker goroutine once the computation completes.
func (c *BatchCoordinator) onSuggestions(words suggest.List, forEnd bool) {
	c.mu.Lock()
	if words.Empty() {
		// Use the previous suggestions if we don't have any new ones, so the
		// strip doesn't flash empty mid-gesture.
		words = c.lastSuggestions
	} else {
		c.lastSuggestions = words
	}
	c.mu.Unlock()

	if c.cfg.Display != nil {
		c.cfg.Display(words, forEnd)
	}

	if !forEnd {
		return
	}

	c.mu.Lock()
	wasActive := c.inBatchInput
	c.inBatchInput = false
	c.mu.Unlock()

	if !wasActive && !c.cfg.CommitAfterCancel {
		// A cancel landed while this end was computing; the result is stale
		// for commit purposes.
		logEvent(levelInfo, "batch_end_stale", nil)
		return
	}

	logEvent(levelInfo, "batch_end_commit", map[string]any{
		"words": len(words),
	})
	c.schedule(func() {
		if c.cfg.Finalize != nil {
			c.cfg.Finalize(words)
		}
	})
}

func (c *BatchCoordinator) schedule(fn func()) {
	if c.cfg.Schedule != nil {
		c.cfg.Schedule(fn)
		return
	}
	fn()
}

// GetSuggestedWords implements Coordinator.
func (c *BatchCoordinator) GetSuggestedWords(sessionID, sequenceNumber int, cb suggest.Callback) {
	if c.destroyed.Load() {
		return
	}
	c.dispatcher.RequestSuggestions(sessionID, sequenceNumber, cb)
}

// InBatchInput reports whether a batch interaction is currently active.
func (c *BatchCoordinator) InBatchInput() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inBatchInput
}

// LastSuggestions returns the most recent non-empty result.
func (c *BatchCoordinator) LastSuggestions() suggest.List {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSuggestions
}

// Destroy implements Coordinator. Drains in-flight requests, then stops the
// worker. Idempotent; every later operation behaves like the inert fallback.
func (c *BatchCoordinator) Destroy() {
	if c.destroyed.Swap(true) {
		return
	}
	// Drain before clearing the flag: an end already accepted by the queue
	// still deserves its finalize.
	c.queue.Shutdown()

	c.mu.Lock()
	c.inBatchInput = false
	c.mu.Unlock()
	logEvent(levelInfo, "coordinator_stop", nil)
}
