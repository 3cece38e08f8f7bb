package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanderheijden86/glidetype/pkg/debug"
	"github.com/vanderheijden86/glidetype/pkg/export"
	"github.com/vanderheijden86/glidetype/pkg/suggest"
	"github.com/vanderheijden86/glidetype/pkg/trace"
)

// idealTrace builds the trace a perfect sweep of word would produce:
// straight lines through each letter's key center at a steady pace.
func idealTrace(word string, layout suggest.Layout) (trace.Trace, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) < 2 {
		return nil, fmt.Errorf("need a word of at least two letters, got %q", word)
	}

	const perKey = 60 * time.Millisecond
	var tr trace.Trace
	for i, r := range word {
		x, y, ok := layout.KeyCenter(r)
		if !ok {
			return nil, fmt.Errorf("letter %q is not on the layout", r)
		}
		tr = append(tr, trace.Sample{X: x, Y: y, T: time.Duration(i) * perKey})
	}
	return tr, nil
}

// runExportTrail renders the ideal trail for word, annotated with what
// the suggester would propose for it.
func runExportTrail(word, out string, layout suggest.Layout, suggester suggest.Suggester) error {
	defer debug.LogEnterExit("runExportTrail")()

	tr, err := idealTrace(word, layout)
	if err != nil {
		return err
	}

	words := suggester.Suggest(suggest.SessionGesture, tr)

	if out == "" {
		out = fmt.Sprintf("trail-%s.svg", strings.ToLower(strings.TrimSpace(word)))
	}
	if err := export.SaveTrail(export.TrailOptions{
		Path:   out,
		Title:  fmt.Sprintf("ideal sweep: %s", word),
		Trace:  tr,
		Layout: layout,
		Words:  words,
	}); err != nil {
		return err
	}

	fmt.Printf("Wrote %s", out)
	if !words.Empty() {
		fmt.Printf(" (suggested: %s)", strings.Join(words, ", "))
	}
	fmt.Println()
	return nil
}
