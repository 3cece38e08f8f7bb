package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/glidetype/pkg/suggest"
)

// maxSuggestionCell is the widest a single suggestion renders before
// truncation.
const maxSuggestionCell = 16

// renderSuggestionBar renders the numbered suggestion strip. The first
// entry is the pick the next finalize would commit. Styling happens per
// cell so truncation never cuts through an escape sequence.
func renderSuggestionBar(t Theme, words suggest.List, limit, width int) string {
	if words.Empty() {
		return t.StatusBar.Render("no suggestions")
	}
	if limit <= 0 || limit > len(words) {
		limit = len(words)
	}

	var cells []string
	used := 0
	for i, w := range words[:limit] {
		label := fmt.Sprintf("%d:%s", i+1, truncate(w, maxSuggestionCell))
		cellWidth := len(label) + 3 // padding plus separator
		if width > 0 && used+cellWidth > width && len(cells) > 0 {
			break
		}
		used += cellWidth
		if i == 0 {
			cells = append(cells, t.TopPick.Render(label))
		} else {
			cells = append(cells, t.Suggestion.Render(label))
		}
	}

	return strings.Join(cells, " ")
}
