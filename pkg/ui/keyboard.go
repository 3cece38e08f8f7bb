package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glidetype/pkg/suggest"
)

// renderKeyboard draws the layout as rows of key caps. The cursor key
// and the keys already swept in the active gesture get their own
// styles.
func renderKeyboard(t Theme, layout suggest.Layout, cursor rune, swept map[rune]bool) string {
	rows := keysByRow(layout)

	var rendered []string
	for _, row := range rows {
		var caps []string
		for _, k := range row {
			style := t.KeyCap
			switch {
			case k.R == cursor:
				style = t.KeyCursor
			case swept[k.R]:
				style = t.KeySwept
			}
			caps = append(caps, style.Render(string(k.R)))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, caps...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// keysByRow groups layout keys into rows ordered top to bottom, each
// row sorted left to right.
func keysByRow(layout suggest.Layout) [][]suggest.Key {
	byY := make(map[float64][]suggest.Key)
	var ys []float64
	for _, k := range layout.Keys {
		if _, seen := byY[k.Y]; !seen {
			ys = append(ys, k.Y)
		}
		byY[k.Y] = append(byY[k.Y], k)
	}
	sort.Float64s(ys)

	rows := make([][]suggest.Key, 0, len(ys))
	for _, y := range ys {
		row := byY[y]
		sort.Slice(row, func(i, j int) bool { return row[i].X < row[j].X })
		rows = append(rows, row)
	}
	return rows
}

// moveCursor returns the key reached by moving one step from cur in
// the given direction. It returns cur unchanged at the edges.
func moveCursor(layout suggest.Layout, cur rune, dx, dy int) rune {
	curX, curY, ok := layout.KeyCenter(cur)
	if !ok {
		if len(layout.Keys) == 0 {
			return cur
		}
		return layout.Keys[0].R
	}

	best := cur
	bestDist := -1.0
	for _, k := range layout.Keys {
		if k.R == cur {
			continue
		}
		switch {
		case dx < 0 && (k.Y != curY || k.X >= curX):
			continue
		case dx > 0 && (k.Y != curY || k.X <= curX):
			continue
		case dy < 0 && k.Y >= curY:
			continue
		case dy > 0 && k.Y <= curY:
			continue
		}
		d := abs(k.X-curX) + 3*abs(k.Y-curY)
		if bestDist < 0 || d < bestDist {
			best = k.R
			bestDist = d
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
