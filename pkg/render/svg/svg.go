package svg

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/DaveyUS/gridkit/pkg/grid"
	"github.com/DaveyUS/gridkit/pkg/layout"
)

// Palette cycled per item, keyed by the item's stable index in the sorted
// ID order so colors survive reordering edits.
var itemFills = []string{
	"#4e79a7", "#f28e2b", "#59a14f", "#e15759",
	"#76b7b2", "#edc948", "#b07aa1", "#9c755f",
}

const (
	strokeColor = "#1f2430"
	gridColor   = "#d5d9e0"
	textColor   = "#ffffff"
	frameFill   = "#f4f5f7"
)

type Option func(*renderer)

type renderer struct {
	cellLines bool
	labels    bool
	scale     float64
	padding   int
}

// WithCellLines draws the cell grid behind the items.
func WithCellLines() Option { return func(r *renderer) { r.cellLines = true } }

// WithoutLabels suppresses the item labels drawn by default.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithScale multiplies all pixel geometry by factor. Values at or below
// zero are ignored.
func WithScale(factor float64) Option {
	return func(r *renderer) {
		if factor > 0 {
			r.scale = factor
		}
	}
}

// WithPadding adds a uniform pixel margin around the grid frame.
func WithPadding(px int) Option {
	return func(r *renderer) {
		if px >= 0 {
			r.padding = px
		}
	}
}

// RenderSVG draws a layout document as a standalone SVG image. Cell geometry
// comes from the document; documents without a positive cell size cannot be
// drawn and return [grid.ErrNotReady]. Items render in sorted ID order so
// identical documents always produce identical bytes.
func RenderSVG(l *layout.Layout, opts ...Option) ([]byte, error) {
	r := renderer{labels: true, scale: 1, padding: 16}
	for _, opt := range opts {
		opt(&r)
	}

	p := l.Params()
	if !p.Ready() {
		return nil, grid.ErrNotReady
	}

	cols, rows := frameExtent(l)
	frameW := float64(grid.UnitsToPixels(cols, p.Cell.W, p.Gap)) * r.scale
	frameH := float64(grid.UnitsToPixels(rows, p.Cell.H, p.Gap)) * r.scale
	pad := float64(r.padding)
	totalW := frameW + 2*pad
	totalH := frameH + 2*pad

	items := slices.Clone(l.Items)
	slices.SortFunc(items, func(a, b layout.Item) int {
		return cmp.Compare(a.ID, b.ID)
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalW, totalH, totalW, totalH)
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		pad, pad, frameW, frameH, frameFill)

	if r.cellLines {
		renderCellLines(&buf, &r, p, cols, rows, pad)
	}
	for i, it := range items {
		renderItem(&buf, &r, p, it, i, pad)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// frameExtent picks the drawn grid dimensions: declared bounds when present,
// otherwise the tight bounding box of the items (at least one cell).
func frameExtent(l *layout.Layout) (cols, rows int) {
	cols, rows = l.Cols, l.Rows
	for _, it := range l.Items {
		if l.Cols == 0 && it.X+it.W > cols {
			cols = it.X + it.W
		}
		if l.Rows == 0 && it.Y+it.H > rows {
			rows = it.Y + it.H
		}
	}
	return max(cols, 1), max(rows, 1)
}

func renderCellLines(buf *bytes.Buffer, r *renderer, p grid.Params, cols, rows int, pad float64) {
	cell := grid.Item{W: 1, H: 1}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell.X, cell.Y = x, y
			rect := grid.ItemPixelRect(cell, p.Cell, p.Gap)
			fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
				pad+float64(rect.Left)*r.scale, pad+float64(rect.Top)*r.scale,
				float64(rect.Width)*r.scale, float64(rect.Height)*r.scale, gridColor)
		}
	}
}

func renderItem(buf *bytes.Buffer, r *renderer, p grid.Params, it layout.Item, idx int, pad float64) {
	rect := grid.ItemPixelRect(grid.Item{X: it.X, Y: it.Y, W: it.W, H: it.H}, p.Cell, p.Gap)
	x := pad + float64(rect.Left)*r.scale
	y := pad + float64(rect.Top)*r.scale
	w := float64(rect.Width) * r.scale
	h := float64(rect.Height) * r.scale
	fill := itemFills[idx%len(itemFills)]

	fmt.Fprintf(buf, `  <rect id="item-%s" class="item" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		escape(it.ID), x, y, w, h, fill, strokeColor)

	if !r.labels {
		return
	}
	label := it.Label
	if label == "" {
		label = it.ID
	}
	fontSize := 14.0 * r.scale
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		x+w/2, y+h/2, fontSize, textColor, escape(label))
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
