// Package ui is the interactive gesture playground. The keyboard grid
// is driven with arrow keys, a sweep is recorded between two presses
// of space, and suggestion updates stream in from the coordinator's
// worker through a Bridge.
package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glidetype/pkg/export"
	"github.com/vanderheijden86/glidetype/pkg/gesture"
	"github.com/vanderheijden86/glidetype/pkg/metrics"
	"github.com/vanderheijden86/glidetype/pkg/suggest"
	"github.com/vanderheijden86/glidetype/pkg/trace"
)

// ModelConfig wires the playground model to its collaborators.
type ModelConfig struct {
	Coordinator    gesture.Coordinator
	Bridge         *Bridge
	Layout         suggest.Layout
	Theme          *Theme
	ShowPreview    *bool  // inline top-suggestion preview while sweeping (nil = on)
	MaxSuggestions int    // suggestions shown in the strip (default 5)
	ExportDir      string // where trail exports land (default cwd)
}

// Model is the main Bubble Tea model for gt.
type Model struct {
	coordinator gesture.Coordinator
	bridge      *Bridge
	layout      suggest.Layout
	theme       Theme
	keys        KeyMap
	help        help.Model

	width  int
	height int

	cursor rune
	seq    int

	sweeping   bool
	sweepStart time.Time
	liveTrace  trace.Trace
	swept      map[rune]bool

	suggestions suggest.List
	preview     bool
	showPreview bool
	committed   []string

	lastTrace trace.Trace
	lastWords suggest.List
	exportDir string

	maxSuggestions int
	status         string

	showHelp bool
	helpText string
}

// NewModel creates the playground model.
func NewModel(cfg ModelConfig) Model {
	theme := DefaultTheme()
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = 5
	}
	showPreview := true
	if cfg.ShowPreview != nil {
		showPreview = *cfg.ShowPreview
	}

	cursor := 'g'
	if _, _, ok := cfg.Layout.KeyCenter(cursor); !ok && len(cfg.Layout.Keys) > 0 {
		cursor = cfg.Layout.Keys[0].R
	}

	return Model{
		coordinator:    cfg.Coordinator,
		bridge:         cfg.Bridge,
		layout:         cfg.Layout,
		theme:          theme,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		cursor:         cursor,
		showPreview:    showPreview,
		swept:          map[rune]bool{},
		exportDir:      cfg.ExportDir,
		maxSuggestions: cfg.MaxSuggestions,
		status:         "space to sweep, ? for help",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return WaitForMsgCmd(m.bridge)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case DisplayMsg:
		m.suggestions = msg.Words
		m.preview = m.showPreview && !msg.DismissPreview
		return m, WaitForMsgCmd(m.bridge)

	case FinalizeMsg:
		if top, ok := msg.Words.Top(); ok {
			m.commit(top)
		}
		return m, WaitForMsgCmd(m.bridge)

	case DictionaryReloadedMsg:
		m.status = fmt.Sprintf("dictionary reloaded (%d words)", msg.Words)
		return m, WaitForMsgCmd(m.bridge)

	case DictionaryErrorMsg:
		m.status = "dictionary reload failed: " + msg.Err.Error()
		return m, WaitForMsgCmd(m.bridge)

	case StatusMsg:
		m.status = msg.Text
		return m, WaitForMsgCmd(m.bridge)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		if m.helpText == "" {
			m.helpText = renderHelp(m.width)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveTo(moveCursor(m.layout, m.cursor, 0, -1)), nil
	case key.Matches(msg, m.keys.Down):
		return m.moveTo(moveCursor(m.layout, m.cursor, 0, 1)), nil
	case key.Matches(msg, m.keys.Left):
		return m.moveTo(moveCursor(m.layout, m.cursor, -1, 0)), nil
	case key.Matches(msg, m.keys.Right):
		return m.moveTo(moveCursor(m.layout, m.cursor, 1, 0)), nil

	case key.Matches(msg, m.keys.Sweep):
		return m.toggleSweep(), nil

	case key.Matches(msg, m.keys.Cancel):
		if m.sweeping {
			m.coordinator.CancelBatchInput()
			m.sweeping = false
			m.swept = map[rune]bool{}
			m.liveTrace = nil
			m.preview = false
			m.status = "sweep canceled"
		}
		return m, nil

	case key.Matches(msg, m.keys.Pick1):
		return m.pick(0), nil
	case key.Matches(msg, m.keys.Pick2):
		return m.pick(1), nil
	case key.Matches(msg, m.keys.Pick3):
		return m.pick(2), nil
	case key.Matches(msg, m.keys.Pick4):
		return m.pick(3), nil
	case key.Matches(msg, m.keys.Pick5):
		return m.pick(4), nil

	case key.Matches(msg, m.keys.Copy):
		text := m.committedText()
		if text == "" {
			m.status = "nothing to copy"
			return m, nil
		}
		if err := clipboard.WriteAll(text); err != nil {
			m.status = "clipboard: " + err.Error()
		} else {
			m.status = "copied to clipboard"
		}
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m.exportTrail(), nil
	}

	return m, nil
}

func (m Model) moveTo(r rune) Model {
	m.cursor = r
	if m.sweeping {
		m.appendSample()
		m.seq++
		m.coordinator.UpdateBatchInput(m.liveTrace, m.seq)
	}
	return m
}

func (m Model) toggleSweep() Model {
	if !m.sweeping {
		m.sweeping = true
		m.sweepStart = time.Now()
		m.liveTrace = nil
		m.swept = map[rune]bool{}
		m.appendSample()
		m.coordinator.StartBatchInput()
		m.status = "sweeping"
		return m
	}

	m.appendSample()
	m.seq++
	m.coordinator.EndBatchInput(m.liveTrace, m.seq)
	m.lastTrace = m.liveTrace.Clone()
	m.sweeping = false
	m.swept = map[rune]bool{}
	m.liveTrace = nil
	m.status = "sweep complete"
	return m
}

// appendSample records the cursor's key center into the live trace.
func (m *Model) appendSample() {
	x, y, ok := m.layout.KeyCenter(m.cursor)
	if !ok {
		return
	}
	m.liveTrace = append(m.liveTrace, trace.Sample{
		X: x,
		Y: y,
		T: time.Since(m.sweepStart),
	})
	m.swept[m.cursor] = true
}

func (m Model) pick(i int) Model {
	if i >= len(m.suggestions) {
		return m
	}
	m.commit(m.suggestions[i])
	return m
}

func (m *Model) commit(word string) {
	m.committed = append(m.committed, word)
	m.lastWords = m.suggestions
	m.suggestions = nil
	m.preview = false
	m.status = "committed " + word
}

func (m Model) exportTrail() Model {
	if len(m.lastTrace) == 0 {
		m.status = "no completed sweep to export"
		return m
	}
	path := filepath.Join(m.exportDir, fmt.Sprintf("trail-%s.svg", time.Now().Format("20060102-150405")))
	err := export.SaveTrail(export.TrailOptions{
		Path:   path,
		Trace:  m.lastTrace,
		Layout: m.layout,
		Words:  m.lastWords,
	})
	if err != nil {
		m.status = "export failed: " + err.Error()
		return m
	}
	m.status = "exported " + path
	return m
}

func (m Model) committedText() string {
	out := ""
	for i, w := range m.committed {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	if m.showHelp {
		return m.helpText
	}

	title := m.theme.Title.Render("glidetype playground")

	text := m.theme.Committed.Render(m.committedText())
	if m.preview {
		if top, ok := m.suggestions.Top(); ok {
			if text != "" {
				text += " "
			}
			text += m.theme.Preview.Render(top)
		}
	}
	if text == "" {
		text = m.theme.StatusBar.Render("(nothing committed yet)")
	}

	bar := renderSuggestionBar(m.theme, m.suggestions, m.maxSuggestions, m.width)
	board := renderKeyboard(m.theme, m.layout, m.cursor, m.swept)
	status := m.theme.StatusBar.Render(m.status)
	short := m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		text,
		"",
		bar,
		"",
		board,
		"",
		status,
		short,
	)
}

const helpMarkdown = `# glidetype playground

Sweep a word the way you would on a phone keyboard.

## Sweeping

* Move the cursor with the arrow keys (or hjkl).
* Press **space** to start a sweep, glide across the letters of a
  word, then press **space** again to end it. The best suggestion is
  committed automatically.
* Press **esc** mid-sweep to throw the gesture away.

## Suggestions

* Intermediate suggestions appear in the strip as you glide.
* Press **1**-**5** to commit a specific suggestion instead of the
  top pick.

## Other

* **y** copies the committed text to the clipboard.
* **e** exports the last completed sweep as an SVG trail.
* **q** quits.
`

func renderHelp(width int) string {
	if width <= 0 {
		width = 72
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width, 80)),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
