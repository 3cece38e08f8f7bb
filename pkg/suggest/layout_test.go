package suggest

import "testing"

func TestQwerty_AllLetters(t *testing.T) {
	layout := Qwerty()
	if len(layout.Keys) != 26 {
		t.Fatalf("Qwerty has %d keys, want 26", len(layout.Keys))
	}
	for r := 'a'; r <= 'z'; r++ {
		if _, _, ok := layout.KeyCenter(r); !ok {
			t.Errorf("no key center for %q", r)
		}
	}
}

func TestNearestKey(t *testing.T) {
	layout := Qwerty()

	// Exact centers map to themselves.
	for _, want := range []rune{'q', 'p', 'a', 'm'} {
		x, y, _ := layout.KeyCenter(want)
		k, ok := layout.NearestKey(x, y)
		if !ok || k.R != want {
			t.Errorf("NearestKey(center of %q) = %q", want, k.R)
		}
	}

	// A point just off a center still maps to that key.
	x, y, _ := layout.KeyCenter('g')
	k, ok := layout.NearestKey(x+0.2, y-0.2)
	if !ok || k.R != 'g' {
		t.Errorf("NearestKey near g = %q", k.R)
	}

	if _, ok := (Layout{}).NearestKey(0, 0); ok {
		t.Error("empty layout should report no nearest key")
	}
}

func TestLayoutDimensions(t *testing.T) {
	layout := Qwerty()
	if w := layout.Width(); w != 10 {
		t.Errorf("Width = %v, want 10", w)
	}
	if h := layout.Height(); h != 3 {
		t.Errorf("Height = %v, want 3", h)
	}
}
