package ui

import (
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/glidetype/pkg/suggest"
	"github.com/vanderheijden86/glidetype/pkg/trace"
)

// fakeCoordinator records calls in order.
type fakeCoordinator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeCoordinator) record(s string) {
	f.mu.Lock()
	f.calls = append(f.calls, s)
	f.mu.Unlock()
}

func (f *fakeCoordinator) StartBatchInput() { f.record("start") }
func (f *fakeCoordinator) UpdateBatchInput(tr trace.Trace, seq int) {
	f.record("update")
}
func (f *fakeCoordinator) CancelBatchInput() { f.record("cancel") }
func (f *fakeCoordinator) EndBatchInput(tr trace.Trace, seq int) {
	f.record("end")
}
func (f *fakeCoordinator) GetSuggestedWords(sessionID, seq int, cb suggest.Callback) {
	f.record("get")
}
func (f *fakeCoordinator) Destroy() { f.record("destroy") }

func (f *fakeCoordinator) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestModel(fc *fakeCoordinator) Model {
	return NewModel(ModelConfig{
		Coordinator: fc,
		Bridge:      NewBridge(4),
		Layout:      suggest.Qwerty(),
	})
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestSweepDrivesCoordinator(t *testing.T) {
	fc := &fakeCoordinator{}
	m := newTestModel(fc)

	m = press(m, "space", "right", "right", "space")

	want := []string{"start", "update", "update", "end"}
	got := fc.recorded()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}
	if m.sweeping {
		t.Error("still sweeping after second space")
	}
	if len(m.lastTrace) == 0 {
		t.Error("completed sweep left no trace for export")
	}
}

func TestEscCancelsSweep(t *testing.T) {
	fc := &fakeCoordinator{}
	m := newTestModel(fc)

	m = press(m, "space", "right", "esc")

	got := fc.recorded()
	if got[len(got)-1] != "cancel" {
		t.Errorf("calls = %v, want trailing cancel", got)
	}
	if m.sweeping {
		t.Error("still sweeping after esc")
	}
}

func TestEscWhileIdleDoesNothing(t *testing.T) {
	fc := &fakeCoordinator{}
	m := newTestModel(fc)

	press(m, "esc")
	if got := fc.recorded(); len(got) != 0 {
		t.Errorf("idle esc reached the coordinator: %v", got)
	}
}

func TestDisplayAndFinalizeMessages(t *testing.T) {
	fc := &fakeCoordinator{}
	m := newTestModel(fc)

	next, cmd := m.Update(DisplayMsg{Words: suggest.List{"cat", "can"}})
	m = next.(Model)
	if cmd == nil {
		t.Error("display update did not re-arm the bridge wait")
	}
	if !m.preview {
		t.Error("intermediate display did not enable the preview")
	}
	if len(m.suggestions) != 2 {
		t.Fatalf("suggestions = %v", m.suggestions)
	}

	next, _ = m.Update(DisplayMsg{Words: suggest.List{"cats"}, DismissPreview: true})
	m = next.(Model)
	if m.preview {
		t.Error("dismissing display left the preview on")
	}

	next, _ = m.Update(FinalizeMsg{Words: suggest.List{"cats"}})
	m = next.(Model)
	if got := m.committedText(); got != "cats" {
		t.Errorf("committed = %q, want cats", got)
	}
	if len(m.suggestions) != 0 {
		t.Error("commit did not clear the suggestion strip")
	}
}

func TestShowPreviewDisabled(t *testing.T) {
	off := false
	m := NewModel(ModelConfig{
		Coordinator: &fakeCoordinator{},
		Bridge:      NewBridge(4),
		Layout:      suggest.Qwerty(),
		ShowPreview: &off,
	})

	next, _ := m.Update(DisplayMsg{Words: suggest.List{"cat", "can"}})
	m = next.(Model)
	if m.preview {
		t.Error("preview shown with the setting off")
	}
	if len(m.suggestions) != 2 {
		t.Fatalf("suggestion strip lost the words: %v", m.suggestions)
	}

	// The committed line must not carry the inline preview either:
	// the top word should appear only once, in the suggestion strip.
	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	m.committed = []string{"hello"}
	if n := strings.Count(m.View(), "cat"); n != 1 {
		t.Errorf("top word rendered %d times, want 1 (strip only)", n)
	}
}

func TestPickCommitsNumberedSuggestion(t *testing.T) {
	fc := &fakeCoordinator{}
	m := newTestModel(fc)

	next, _ := m.Update(DisplayMsg{Words: suggest.List{"cat", "can", "cab"}})
	m = next.(Model)
	m = press(m, "2")
	if got := m.committedText(); got != "can" {
		t.Errorf("committed = %q, want can", got)
	}

	// Picking past the end is ignored.
	m = press(m, "5")
	if got := m.committedText(); got != "can" {
		t.Errorf("out-of-range pick changed text to %q", got)
	}
}

func TestQuitKey(t *testing.T) {
	fc := &fakeCoordinator{}
	m := newTestModel(fc)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("q produced %v, want tea.Quit", msg)
	}
}

func TestViewRendersBoard(t *testing.T) {
	fc := &fakeCoordinator{}
	m := newTestModel(fc)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	next, _ = m.Update(DisplayMsg{Words: suggest.List{"hello"}})
	m = next.(Model)

	out := m.View()
	for _, want := range []string{"glidetype playground", "1:hello", "q"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	fc := &fakeCoordinator{}
	m := newTestModel(fc)

	m = press(m, "?")
	if !m.showHelp {
		t.Fatal("? did not open help")
	}
	if !strings.Contains(m.View(), "Sweep") {
		t.Error("help overlay missing content")
	}

	m = press(m, "x")
	if m.showHelp {
		t.Error("keypress did not dismiss help")
	}
}
