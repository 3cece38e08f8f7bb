package suggest

import "math"

// Key is a single key on the layout, positioned by its center in key units.
type Key struct {
	R rune
	X float64
	Y float64
}

// Layout is a keyboard geometry used to map pointer samples to letters.
type Layout struct {
	Keys []Key
}

// Qwerty returns the standard three-row QWERTY letter layout.
// Key centers use one unit per key column; rows are staggered the way
// physical keyboards are.
func Qwerty() Layout {
	rows := []struct {
		letters string
		offset  float64
	}{
		{"qwertyuiop", 0.0},
		{"asdfghjkl", 0.25},
		{"zxcvbnm", 0.75},
	}

	var keys []Key
	for row, r := range rows {
		for i, ch := range r.letters {
			keys = append(keys, Key{
				R: ch,
				X: r.offset + float64(i) + 0.5,
				Y: float64(row) + 0.5,
			})
		}
	}
	return Layout{Keys: keys}
}

// Width returns the layout width in key units.
func (l Layout) Width() float64 {
	max := 0.0
	for _, k := range l.Keys {
		if k.X+0.5 > max {
			max = k.X + 0.5
		}
	}
	return max
}

// Height returns the layout height in key units.
func (l Layout) Height() float64 {
	max := 0.0
	for _, k := range l.Keys {
		if k.Y+0.5 > max {
			max = k.Y + 0.5
		}
	}
	return max
}

// NearestKey returns the key whose center is closest to (x, y).
// ok is false for an empty layout.
func (l Layout) NearestKey(x, y float64) (Key, bool) {
	if len(l.Keys) == 0 {
		return Key{}, false
	}
	best := l.Keys[0]
	bestDist := math.Inf(1)
	for _, k := range l.Keys {
		d := math.Hypot(k.X-x, k.Y-y)
		if d < bestDist {
			best = k
			bestDist = d
		}
	}
	return best, true
}

// KeyCenter returns the center of the key for rune r.
func (l Layout) KeyCenter(r rune) (x, y float64, ok bool) {
	for _, k := range l.Keys {
		if k.R == r {
			return k.X, k.Y, true
		}
	}
	return 0, 0, false
}
