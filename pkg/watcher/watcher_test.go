package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.jsonl")
	writeFile(t, path, "one\n")

	w, err := New(path, WithDebounceDuration(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// Brief pause so the write lands after the watch is established.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, path, "one\ntwo\n")

	select {
	case <-w.Changed():
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification after write")
	}
}

func TestWatcherPollingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.jsonl")
	writeFile(t, path, "one\n")

	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounceDuration(10*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("forced poll mode not active")
	}

	// Size change guarantees detection even on coarse mtime clocks.
	time.Sleep(30 * time.Millisecond)
	writeFile(t, path, "one\ntwo\nthree\n")

	select {
	case <-w.Changed():
	case <-time.After(3 * time.Second):
		t.Fatal("polling watcher missed the write")
	}
}

func TestWatcherForcePollEnv(t *testing.T) {
	t.Setenv("GT_FORCE_POLL", "1")

	path := filepath.Join(t.TempDir(), "dict.jsonl")
	writeFile(t, path, "x\n")

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("GT_FORCE_POLL did not force polling mode")
	}
}

func TestWatcherStartTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.jsonl")
	writeFile(t, path, "x\n")

	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestWatcherOnChangeCallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.jsonl")
	writeFile(t, path, "x\n")

	var fired atomic.Int32
	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounceDuration(10*time.Millisecond),
		WithOnChange(func() { fired.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(30 * time.Millisecond)
	writeFile(t, path, "x\ny\n")

	deadline := time.Now().Add(3 * time.Second)
	for fired.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("OnChange never fired")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.jsonl")
	writeFile(t, path, "x\n")

	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
	if w.IsStarted() {
		t.Error("IsStarted true after Stop")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	var fired atomic.Int32
	b := NewDebouncer(30 * time.Millisecond)
	for i := 0; i < 10; i++ {
		b.Trigger(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("debouncer fired %d times for one burst, want 1", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var fired atomic.Int32
	b := NewDebouncer(20 * time.Millisecond)
	b.Trigger(func() { fired.Add(1) })
	b.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("canceled trigger still fired %d times", got)
	}
}
