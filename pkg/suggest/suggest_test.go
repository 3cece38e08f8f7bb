package suggest

import (
	"sync"
	"testing"
	"time"

	"github.com/vanderheijden86/glidetype/pkg/trace"
	"github.com/vanderheijden86/glidetype/pkg/workqueue"
)

type stubSource struct {
	mu sync.Mutex
	tr trace.Trace
}

func (s *stubSource) set(tr trace.Trace) {
	s.mu.Lock()
	s.tr = tr
	s.mu.Unlock()
}

func (s *stubSource) Snapshot() trace.Trace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tr.Clone()
}

func TestDispatcher_CallbackOnWorker(t *testing.T) {
	q := workqueue.New()
	defer q.Shutdown()

	src := &stubSource{}
	src.set(trace.Trace{{X: 1, Y: 2}})

	var calls int
	done := make(chan List, 1)
	d := NewDispatcher(q, SuggesterFunc(func(sessionID int, tr trace.Trace) List {
		if sessionID != SessionGesture {
			t.Errorf("sessionID = %d, want SessionGesture", sessionID)
		}
		if len(tr) != 1 || tr[0].X != 1 {
			t.Errorf("worker saw trace %v", tr)
		}
		return List{"hello"}
	}), src)

	d.RequestSuggestions(SessionGesture, 1, func(l List) {
		calls++
		done <- l
	})

	select {
	case got := <-done:
		if len(got) != 1 || got[0] != "hello" {
			t.Errorf("callback received %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
	if calls != 1 {
		t.Errorf("callback fired %d times, want exactly once", calls)
	}
}

func TestDispatcher_ResultsInDispatchOrder(t *testing.T) {
	q := workqueue.New()
	src := &stubSource{}
	d := NewDispatcher(q, SuggesterFunc(func(int, trace.Trace) List {
		return nil
	}), src)

	var mu sync.Mutex
	var order []int
	for i := 0; i < 20; i++ {
		i := i
		d.RequestSuggestions(SessionGesture, i, func(List) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}

	q.Shutdown()
	<-q.Done()

	if len(order) != 20 {
		t.Fatalf("got %d callbacks, want 20", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d: callbacks out of dispatch order", i, v)
		}
	}
}

func TestDispatcher_SnapshotNotAliased(t *testing.T) {
	q := workqueue.New()
	defer q.Shutdown()

	src := &stubSource{}
	src.set(trace.Trace{{X: 1}})

	seen := make(chan float64, 1)
	gate := make(chan struct{})
	d := NewDispatcher(q, SuggesterFunc(func(_ int, tr trace.Trace) List {
		<-gate
		seen <- tr[0].X
		return nil
	}), src)

	d.RequestSuggestions(SessionGesture, 1, func(List) {})
	// Mutate the source after dispatch but before the worker runs.
	src.set(trace.Trace{{X: 99}})
	close(gate)

	select {
	case x := <-seen:
		if x != 1 {
			t.Errorf("worker saw X=%v, want the snapshot taken at dispatch (1)", x)
		}
	case <-time.After(time.Second):
		t.Fatal("worker never ran")
	}
}

func TestDispatcher_AfterShutdownCallbackNeverFires(t *testing.T) {
	q := workqueue.New()
	q.Shutdown()
	<-q.Done()

	src := &stubSource{}
	d := NewDispatcher(q, SuggesterFunc(func(int, trace.Trace) List { return List{"x"} }), src)

	fired := false
	d.RequestSuggestions(SessionGesture, 1, func(List) { fired = true })

	time.Sleep(20 * time.Millisecond)
	if fired {
		t.Error("callback fired after queue shutdown")
	}
}

func TestList_Helpers(t *testing.T) {
	if !(List{}).Empty() {
		t.Error("empty list should report Empty")
	}
	if _, ok := (List{}).Top(); ok {
		t.Error("Top of empty list should report !ok")
	}
	if top, ok := (List{"a", "b"}).Top(); !ok || top != "a" {
		t.Errorf("Top = %q, %v", top, ok)
	}
}
