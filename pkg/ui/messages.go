package ui

import (
	"github.com/vanderheijden86/glidetype/pkg/suggest"
)

// DisplayMsg carries an intermediate suggestion update from the
// coordinator's worker. DismissPreview is true for the final update of
// a gesture, telling the view to drop the floating preview.
type DisplayMsg struct {
	Words          suggest.List
	DismissPreview bool
}

// FinalizeMsg commits the best word of a completed gesture.
type FinalizeMsg struct {
	Words suggest.List
}

// DictionaryReloadedMsg is sent after a watched dictionary file was
// reloaded from disk.
type DictionaryReloadedMsg struct {
	Words int
}

// DictionaryErrorMsg reports a failed dictionary reload. The previous
// dictionary stays in effect.
type DictionaryErrorMsg struct {
	Err error
}

// StatusMsg sets a transient status-line note.
type StatusMsg struct {
	Text string
}
