package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestTimingMetric_Record(t *testing.T) {
	m := newTimingMetric("test_op")

	m.Record(10 * time.Millisecond)
	m.Record(30 * time.Millisecond)
	m.Record(20 * time.Millisecond)

	if got := m.Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if got := m.MaxNs(); got != (30 * time.Millisecond).Nanoseconds() {
		t.Errorf("MaxNs = %d, want 30ms", got)
	}
	if got := m.MinNs(); got != (10 * time.Millisecond).Nanoseconds() {
		t.Errorf("MinNs = %d, want 10ms", got)
	}
	if got := m.AvgNs(); got != (20 * time.Millisecond).Nanoseconds() {
		t.Errorf("AvgNs = %d, want 20ms", got)
	}
}

func TestTimingMetric_Reset(t *testing.T) {
	m := newTimingMetric("test_reset")
	m.Record(time.Millisecond)
	m.Reset()

	if got := m.Count(); got != 0 {
		t.Errorf("Count after Reset = %d, want 0", got)
	}
	if got := m.AvgNs(); got != 0 {
		t.Errorf("AvgNs after Reset = %d, want 0", got)
	}
}

func TestTimingMetric_Concurrent(t *testing.T) {
	m := newTimingMetric("test_concurrent")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Record(time.Microsecond)
			}
		}()
	}
	wg.Wait()

	if got := m.Count(); got != 1000 {
		t.Errorf("Count = %d, want 1000", got)
	}
}

func TestTimer(t *testing.T) {
	m := newTimingMetric("test_timer")

	done := Timer(m)
	time.Sleep(time.Millisecond)
	done()

	if got := m.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	if m.TotalNs() < time.Millisecond.Nanoseconds() {
		t.Errorf("TotalNs = %d, want >= 1ms", m.TotalNs())
	}
}

func TestAllTimingStats_OnlyWithData(t *testing.T) {
	ResetAll()
	SuggestCompute.Record(5 * time.Millisecond)

	stats := AllTimingStats()
	if len(stats) != 1 {
		t.Fatalf("AllTimingStats returned %d entries, want 1", len(stats))
	}
	if stats[0].Name != "suggest_compute" {
		t.Errorf("stats[0].Name = %q, want suggest_compute", stats[0].Name)
	}
	ResetAll()
}
