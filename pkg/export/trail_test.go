package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/glidetype/pkg/suggest"
	"github.com/vanderheijden86/glidetype/pkg/trace"
)

func testTrace() trace.Trace {
	// A rough sweep across the home row.
	return trace.Trace{
		{X: 0.75, Y: 1.5, T: 0},
		{X: 2.0, Y: 1.4, T: 40 * time.Millisecond},
		{X: 4.0, Y: 1.6, T: 90 * time.Millisecond},
		{X: 6.5, Y: 1.5, T: 150 * time.Millisecond},
		{X: 8.75, Y: 1.5, T: 210 * time.Millisecond},
	}
}

func TestSaveTrailSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.svg")
	err := SaveTrail(TrailOptions{
		Path:   path,
		Trace:  testTrace(),
		Layout: suggest.Qwerty(),
		Words:  suggest.List{"ask", "all"},
	})
	if err != nil {
		t.Fatalf("SaveTrail: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)
	for _, want := range []string{"<svg", "polyline", "suggested: ask, all", "Gesture Trail"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}

func TestSaveTrailPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.png")
	err := SaveTrail(TrailOptions{
		Path:   path,
		Title:  "session 42",
		Trace:  testTrace(),
		Layout: suggest.Qwerty(),
	})
	if err != nil {
		t.Fatalf("SaveTrail: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() < 480 {
		t.Errorf("PNG width %d below minimum canvas", img.Bounds().Dx())
	}
}

func TestSaveTrailInfersFormat(t *testing.T) {
	dir := t.TempDir()

	// Bare path with no extension defaults to SVG and gains the suffix.
	base := filepath.Join(dir, "trail")
	if err := SaveTrail(TrailOptions{
		Path:   base,
		Trace:  testTrace(),
		Layout: suggest.Qwerty(),
	}); err != nil {
		t.Fatalf("SaveTrail: %v", err)
	}
	if _, err := os.Stat(base + ".svg"); err != nil {
		t.Errorf("default format did not produce %s.svg: %v", base, err)
	}
}

func TestSaveTrailRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	if err := SaveTrail(TrailOptions{
		Path:   filepath.Join(dir, "x.svg"),
		Layout: suggest.Qwerty(),
	}); err == nil {
		t.Error("empty trace accepted")
	}

	if err := SaveTrail(TrailOptions{
		Path:  filepath.Join(dir, "x.svg"),
		Trace: testTrace(),
	}); err == nil {
		t.Error("empty layout accepted")
	}

	if err := SaveTrail(TrailOptions{
		Path:   filepath.Join(dir, "x.bmp"),
		Format: "bmp",
		Trace:  testTrace(),
		Layout: suggest.Qwerty(),
	}); err == nil {
		t.Error("unsupported format accepted")
	}
}
