// Package trace holds pointer trace types for gesture input.
//
// A Trace is the ordered sequence of pointer samples accumulated during a
// batch (gesture) interaction. Traces are treated as value snapshots: every
// consumer that crosses a goroutine boundary must work on a Clone, never on
// the caller's backing array.
package trace

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Sample is a single pointer event in keyboard coordinate space.
type Sample struct {
	X       float64
	Y       float64
	T       time.Duration // offset from the start of the interaction
	Pointer int           // pointer id for multi-touch surfaces; 0 for single
}

// Trace is an append-only ordered sequence of pointer samples.
type Trace []Sample

// Clone returns a copy of the trace with its own backing array.
func (t Trace) Clone() Trace {
	if len(t) == 0 {
		return nil
	}
	out := make(Trace, len(t))
	copy(out, t)
	return out
}

// Duration returns the time span covered by the trace.
func (t Trace) Duration() time.Duration {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].T - t[0].T
}

// PathLength returns the total euclidean length of the trace path.
func (t Trace) PathLength() float64 {
	if len(t) < 2 {
		return 0
	}
	segs := make([]float64, len(t)-1)
	for i := 1; i < len(t); i++ {
		segs[i-1] = math.Hypot(t[i].X-t[i-1].X, t[i].Y-t[i-1].Y)
	}
	return floats.Sum(segs)
}

// Bounds returns the bounding box of the trace.
// Returns zeros for an empty trace.
func (t Trace) Bounds() (minX, minY, maxX, maxY float64) {
	if len(t) == 0 {
		return 0, 0, 0, 0
	}
	xs := make([]float64, len(t))
	ys := make([]float64, len(t))
	for i, s := range t {
		xs[i] = s.X
		ys[i] = s.Y
	}
	return floats.Min(xs), floats.Min(ys), floats.Max(xs), floats.Max(ys)
}

// Resample returns n samples evenly spaced along the trace path.
// The first and last samples are always preserved. For n < 2 or a trace
// shorter than two samples, a clone of the original is returned.
func (t Trace) Resample(n int) Trace {
	if n < 2 || len(t) < 2 {
		return t.Clone()
	}

	total := t.PathLength()
	if total == 0 {
		// Degenerate path (all samples at one point): repeat the endpoint.
		out := make(Trace, n)
		for i := range out {
			out[i] = t[len(t)-1]
		}
		return out
	}

	step := total / float64(n-1)
	out := make(Trace, 0, n)
	out = append(out, t[0])

	walked := 0.0
	target := step
	for i := 1; i < len(t) && len(out) < n-1; i++ {
		seg := math.Hypot(t[i].X-t[i-1].X, t[i].Y-t[i-1].Y)
		for walked+seg >= target && len(out) < n-1 {
			frac := (target - walked) / seg
			out = append(out, Sample{
				X:       t[i-1].X + frac*(t[i].X-t[i-1].X),
				Y:       t[i-1].Y + frac*(t[i].Y-t[i-1].Y),
				T:       t[i-1].T + time.Duration(frac*float64(t[i].T-t[i-1].T)),
				Pointer: t[i-1].Pointer,
			})
			target += step
		}
		walked += seg
	}

	out = append(out, t[len(t)-1])
	return out
}

// MeanSpeed returns the average speed along the path in units per second.
// Returns 0 when the trace covers no time.
func (t Trace) MeanSpeed() float64 {
	d := t.Duration()
	if d <= 0 {
		return 0
	}
	return t.PathLength() / d.Seconds()
}
