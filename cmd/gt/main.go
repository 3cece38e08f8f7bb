package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vanderheijden86/glidetype/internal/prefstore"
	"github.com/vanderheijden86/glidetype/pkg/config"
	"github.com/vanderheijden86/glidetype/pkg/debug"
	"github.com/vanderheijden86/glidetype/pkg/gesture"
	"github.com/vanderheijden86/glidetype/pkg/suggest"
	"github.com/vanderheijden86/glidetype/pkg/ui"
	"github.com/vanderheijden86/glidetype/pkg/version"
	"github.com/vanderheijden86/glidetype/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dictPath := flag.String("dict", "", "Path to a JSONL frequency dictionary (overrides config)")
	exportTrail := flag.String("export-trail", "", "Render an ideal trail for WORD and exit")
	exportOut := flag.String("out", "", "Output path for --export-trail (default trail-WORD.svg)")
	settingsFlag := flag.Bool("settings", false, "Open the interactive settings form and exit")
	gestureOn := flag.Bool("gesture", false, "Enable gesture input for this run")
	gestureOff := flag.Bool("no-gesture", false, "Disable gesture input for this run")
	flag.Parse()

	if *help {
		fmt.Println("Usage: gt [options]")
		fmt.Println("\nA gesture-typing playground.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("gt %s\n", version.Version)
		os.Exit(0)
	}

	if *gestureOn && *gestureOff {
		fmt.Fprintln(os.Stderr, "Error: --gesture and --no-gesture are mutually exclusive")
		os.Exit(2)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		cfg = config.DefaultConfig()
	}
	if *dictPath != "" {
		cfg.Dictionary.Path = *dictPath
	}

	// Dictionary load and preference store open are independent; do
	// them in parallel.
	var (
		dict  *suggest.Dictionary
		store *prefstore.Store
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		dict, err = loadDictionary(cfg)
		return err
	})
	g.Go(func() error {
		if err := os.MkdirAll(config.StateDir(), 0o755); err != nil {
			return fmt.Errorf("creating state dir: %w", err)
		}
		var err error
		store, err = prefstore.Open(prefsPath())
		return err
	})
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting gt: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	installID, err := store.ReadOrCreateID()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading installation id: %v\n", err)
		os.Exit(1)
	}
	debug.Log("installation id %s, dictionary %d words", installID, dict.Len())

	layout := suggest.Qwerty()
	suggester := suggest.NewDictionarySuggester(dict, layout, cfg.UI.MaxSuggestions)

	if *exportTrail != "" {
		if err := runExportTrail(*exportTrail, *exportOut, layout, suggester); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *settingsFlag {
		if err := runSettingsForm(store, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Settings error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "gt needs an interactive terminal (use --export-trail for headless output)")
		os.Exit(1)
	}

	gestureEnabled := resolveGestureFlag(store, *gestureOn, *gestureOff)

	bridge := ui.NewBridge(0)

	var coordinator gesture.Coordinator
	if gestureEnabled {
		coordinator = gesture.New(gesture.Config{
			Suggester:         suggester,
			Display:           bridge.Display,
			Finalize:          bridge.Finalize,
			CommitAfterCancel: cfg.CommitAfterCancel(),
		})
	} else {
		coordinator = gesture.NewNoop()
		debug.Log("gesture input disabled, using inert coordinator")
	}
	// Close the bridge before draining the coordinator so worker
	// callbacks racing shutdown release instead of waiting on a UI
	// that has already exited.
	defer coordinator.Destroy()
	defer bridge.Close()

	// Hot-reload the dictionary while the playground runs.
	if cfg.Dictionary.Path != "" && cfg.WatchFile() {
		fw, err := watcher.New(cfg.Dictionary.Path,
			watcher.WithOnChange(func() {
				opts := suggest.LoadOptions{MaxWords: cfg.Dictionary.MaxWords}
				if err := dict.Reload(cfg.Dictionary.Path, opts); err != nil {
					bridge.Send(ui.DictionaryErrorMsg{Err: err})
					return
				}
				bridge.Send(ui.DictionaryReloadedMsg{Words: dict.Len()})
			}),
			watcher.WithOnError(func(err error) {
				bridge.Send(ui.DictionaryErrorMsg{Err: err})
			}),
		)
		if err == nil {
			if err := fw.Start(); err == nil {
				defer fw.Stop()
			}
		}
	}

	theme := ui.NamedTheme(cfg.UI.Theme)
	showPreview := cfg.ShowPreview()
	m := ui.NewModel(ui.ModelConfig{
		Coordinator:    coordinator,
		Bridge:         bridge,
		Layout:         layout,
		Theme:          &theme,
		ShowPreview:    &showPreview,
		MaxSuggestions: cfg.UI.MaxSuggestions,
		ExportDir:      ".",
	})

	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running gt: %v\n", err)
		os.Exit(1)
	}
}

func prefsPath() string {
	return config.StateDir() + string(os.PathSeparator) + "prefs.db"
}

func loadDictionary(cfg config.Config) (*suggest.Dictionary, error) {
	start := time.Now()
	defer func() { debug.LogTiming("dictionary load", time.Since(start)) }()

	opts := suggest.LoadOptions{
		MaxWords: cfg.Dictionary.MaxWords,
		WarningHandler: func(msg string) {
			debug.Log("dictionary: %s", msg)
		},
	}
	if cfg.Dictionary.Path == "" {
		return embeddedDictionary(opts)
	}
	return suggest.LoadDictionary(cfg.Dictionary.Path, opts)
}

// resolveGestureFlag layers the CLI flags over the GT_GESTURE env var
// over the persisted preference.
func resolveGestureFlag(store *prefstore.Store, on, off bool) bool {
	if on {
		return true
	}
	if off {
		return false
	}
	if v, ok := os.LookupEnv("GT_GESTURE"); ok && strings.TrimSpace(v) != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		default:
			return false
		}
	}
	enabled, err := store.GestureInputEnabled()
	if err != nil {
		debug.Log("reading gesture preference: %v", err)
		return false
	}
	return enabled
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set GT_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("GT_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
