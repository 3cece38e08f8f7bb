// Package export renders gesture trails to static images. A trail
// snapshot shows the keyboard grid, the swept path, and the suggestions
// the path produced, which makes decoder behaviour reviewable without
// replaying the session.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/glidetype/pkg/metrics"
	"github.com/vanderheijden86/glidetype/pkg/suggest"
	"github.com/vanderheijden86/glidetype/pkg/trace"
)

// TrailOptions controls trail export behaviour.
type TrailOptions struct {
	Path   string         // Output path; format inferred from extension when Format empty
	Format string         // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title  string         // Optional title rendered in the header
	Trace  trace.Trace    // The gesture to draw
	Layout suggest.Layout // Keyboard geometry the gesture was swept over
	Words  suggest.List   // Suggestions produced for the gesture, best first
}

// SaveTrail renders a static trail snapshot (SVG or PNG).
func SaveTrail(opts TrailOptions) error {
	defer metrics.Timer(metrics.TrailExport)()

	if len(opts.Trace) == 0 {
		return fmt.Errorf("no trace to export")
	}
	if len(opts.Layout.Keys) == 0 {
		return fmt.Errorf("a keyboard layout is required for trail export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	layout := buildTrailLayout(opts)

	switch format {
	case "svg":
		return renderTrailSVG(opts.Path, layout)
	case "png":
		return renderTrailPNG(opts.Path, layout)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// --- layout computation ----------------------------------------------------

const (
	keySize      = 56.0 // pixels per key unit
	trailPadding = 24.0
	headerHeight = 72.0
)

type trailLayout struct {
	Width   int
	Height  int
	Title   string
	Words   suggest.List
	Keys    []keyBox
	Points  []point // trail in pixel space, sample order
	Summary string
}

type keyBox struct {
	Letter string
	X, Y   float64 // top-left, pixels
	Size   float64
}

type point struct {
	X, Y float64
}

func buildTrailLayout(opts TrailOptions) trailLayout {
	boardW := opts.Layout.Width() * keySize
	boardH := opts.Layout.Height() * keySize

	width := int(trailPadding*2 + boardW)
	if width < 480 {
		width = 480
	}
	height := int(trailPadding*2 + headerHeight + boardH)

	var keys []keyBox
	for _, k := range opts.Layout.Keys {
		keys = append(keys, keyBox{
			Letter: string(k.R),
			X:      trailPadding + (k.X-0.5)*keySize,
			Y:      trailPadding + headerHeight + (k.Y-0.5)*keySize,
			Size:   keySize,
		})
	}

	var points []point
	for _, s := range opts.Trace {
		points = append(points, point{
			X: trailPadding + s.X*keySize,
			Y: trailPadding + headerHeight + s.Y*keySize,
		})
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Gesture Trail"
	}

	summary := fmt.Sprintf("samples: %d  duration: %s  path: %.2f keys",
		len(opts.Trace), opts.Trace.Duration().Round(time.Millisecond), opts.Trace.PathLength())

	return trailLayout{
		Width:   width,
		Height:  height,
		Title:   title,
		Words:   opts.Words,
		Keys:    keys,
		Points:  points,
		Summary: summary,
	}
}

// --- rendering -------------------------------------------------------------

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorKeyFill  = color.RGBA{0xee, 0xf1, 0xf4, 0xff}
	colorKeyEdge  = color.RGBA{0xb8, 0xc2, 0xcc, 0xff}
	colorTrail    = color.RGBA{0x3b, 0x6e, 0xd6, 0xff}
	colorStart    = color.RGBA{0x2e, 0x9e, 0x5b, 0xff}
	colorEnd      = color.RGBA{0xd6, 0x45, 0x3b, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
)

func renderTrailSVG(path string, layout trailLayout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	return renderTrailSVGToWriter(f, layout)
}

func renderTrailSVGToWriter(w io.Writer, layout trailLayout) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	canvas.Text(int(trailPadding), 32, layout.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(int(trailPadding), 52, layout.Summary,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	if !layout.Words.Empty() {
		canvas.Text(int(trailPadding), 68, "suggested: "+strings.Join(layout.Words, ", "),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	}

	for _, k := range layout.Keys {
		canvas.Roundrect(int(k.X)+2, int(k.Y)+2, int(k.Size)-4, int(k.Size)-4, 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorKeyFill), css(colorKeyEdge)))
		canvas.Text(int(k.X+k.Size/2)-4, int(k.Y+k.Size/2)+5, k.Letter,
			fmt.Sprintf("fill:%s;font-size:14px;font-family:monospace", css(colorText)))
	}

	if len(layout.Points) > 1 {
		xs := make([]int, len(layout.Points))
		ys := make([]int, len(layout.Points))
		for i, p := range layout.Points {
			xs[i] = int(p.X)
			ys[i] = int(p.Y)
		}
		canvas.Polyline(xs, ys,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:3;stroke-linecap:round;stroke-linejoin:round", css(colorTrail)))
	}

	first := layout.Points[0]
	last := layout.Points[len(layout.Points)-1]
	canvas.Circle(int(first.X), int(first.Y), 6, fmt.Sprintf("fill:%s", css(colorStart)))
	canvas.Circle(int(last.X), int(last.Y), 6, fmt.Sprintf("fill:%s", css(colorEnd)))

	canvas.End()
	return nil
}

func renderTrailPNG(path string, layout trailLayout) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawString(layout.Title, trailPadding, 32)
	dc.SetColor(colorSubtle)
	dc.DrawString(layout.Summary, trailPadding, 52)
	if !layout.Words.Empty() {
		dc.DrawString("suggested: "+strings.Join(layout.Words, ", "), trailPadding, 68)
	}

	for _, k := range layout.Keys {
		dc.SetColor(colorKeyFill)
		dc.DrawRoundedRectangle(k.X+2, k.Y+2, k.Size-4, k.Size-4, 6)
		dc.FillPreserve()
		dc.SetColor(colorKeyEdge)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(k.Letter, k.X+k.Size/2, k.Y+k.Size/2, 0.5, 0.5)
	}

	if len(layout.Points) > 1 {
		dc.SetColor(colorTrail)
		dc.SetLineWidth(3)
		dc.MoveTo(layout.Points[0].X, layout.Points[0].Y)
		for _, p := range layout.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	}

	first := layout.Points[0]
	last := layout.Points[len(layout.Points)-1]
	dc.SetColor(colorStart)
	dc.DrawCircle(first.X, first.Y, 6)
	dc.Fill()
	dc.SetColor(colorEnd)
	dc.DrawCircle(last.X, last.Y, 6)
	dc.Fill()

	return dc.SavePNG(path)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
