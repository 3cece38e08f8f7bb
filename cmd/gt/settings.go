package main

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/vanderheijden86/glidetype/internal/prefstore"
	"github.com/vanderheijden86/glidetype/pkg/config"
)

// runSettingsForm edits the persisted gesture preference and the
// config file interactively.
func runSettingsForm(store *prefstore.Store, cfg *config.Config) error {
	gestureEnabled, err := store.GestureInputEnabled()
	if err != nil {
		return err
	}
	commitAfterCancel := cfg.CommitAfterCancel()
	showPreview := cfg.ShowPreview()
	theme := cfg.UI.Theme
	if theme == "" {
		theme = "dark"
	}
	dictPath := cfg.Dictionary.Path

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable gesture input?").
				Description("When off, sweeps are ignored and only tap typing works.").
				Value(&gestureEnabled),
			huh.NewConfirm().
				Title("Show floating preview?").
				Description("Shows the current top suggestion inline while sweeping.").
				Value(&showPreview),
			huh.NewSelect[string]().
				Title("Theme").
				Description("dark adapts to the terminal background, light pins the light palette.").
				Options(huh.NewOptions("dark", "light")...).
				Value(&theme),
			huh.NewConfirm().
				Title("Commit after cancel?").
				Description("Experimental: let an in-flight sweep commit even after esc.").
				Value(&commitAfterCancel),
			huh.NewInput().
				Title("Dictionary path").
				Description("JSONL frequency dictionary. Empty uses the built-in word list.").
				Value(&dictPath),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}

	if err := store.SetGestureInputEnabled(gestureEnabled); err != nil {
		return err
	}

	cfg.UI.ShowPreview = &showPreview
	cfg.UI.Theme = theme
	cfg.Experimental.CommitAfterCancel = &commitAfterCancel
	cfg.Dictionary.Path = dictPath
	if err := config.Save(*cfg); err != nil {
		return err
	}

	fmt.Println("Settings saved.")
	return nil
}
