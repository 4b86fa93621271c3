package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DaveyUS/gridkit/pkg/grid"
)

var (
	// ErrInvalidLayout is returned by [Validate] when a layout document
	// violates a structural constraint: duplicate IDs, degenerate geometry,
	// items outside the declared bounds, or overlapping items in a mode
	// that forbids overlap.
	ErrInvalidLayout = errors.New("invalid layout")
)

// Layout is the serialized form of a grid: its dimensions, cell geometry,
// collision mode and items. It is the document format the CLI reads, writes
// and renders, and round-trips losslessly through [ReadLayout] and
// [WriteLayout].
type Layout struct {
	Cols      int    `json:"cols,omitempty"`
	Rows      int    `json:"rows,omitempty"`
	CellW     int    `json:"cell_w,omitempty"`
	CellH     int    `json:"cell_h,omitempty"`
	Gap       int    `json:"gap,omitempty"`
	Collision string `json:"collision,omitempty"`
	Items     []Item `json:"items"`
}

// Item is the serialized form of one grid item. Movable and Resizable are
// pointers so that an absent field defaults to true rather than false.
type Item struct {
	ID        string `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	W         int    `json:"w"`
	H         int    `json:"h"`
	MinW      int    `json:"min_w,omitempty"`
	MinH      int    `json:"min_h,omitempty"`
	MaxW      int    `json:"max_w,omitempty"`
	MaxH      int    `json:"max_h,omitempty"`
	Movable   *bool  `json:"movable,omitempty"`
	Resizable *bool  `json:"resizable,omitempty"`
	Label     string `json:"label,omitempty"`
}

// ReadLayout decodes a layout document from r.
//
// The input must be a JSON object with an "items" array:
//
//	{
//	  "cols": 12,
//	  "cell_w": 100,
//	  "cell_h": 100,
//	  "gap": 10,
//	  "collision": "push",
//	  "items": [{"id": "a", "x": 0, "y": 0, "w": 2, "h": 1}]
//	}
//
// Decoding performs no validation beyond JSON well-formedness; call
// [Validate] to check structural constraints. ReadLayout does not close r.
func ReadLayout(r io.Reader) (*Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &l, nil
}

// WriteLayout encodes a layout document as indented JSON and writes it to w.
// The output can be re-read with [ReadLayout] for round-trip processing.
func WriteLayout(l *Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportFile reads a layout document from the JSON file at path.
func ImportFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}

// ExportFile writes a layout document to a JSON file at path.
func ExportFile(l *Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(l, f)
}

// Validate checks the structural constraints of a layout document: the
// collision mode must parse, item IDs must be unique and non-blank, item
// geometry must be positive and inside the declared column/row bounds, and
// in push and compress modes no two items may overlap. Errors wrap
// [ErrInvalidLayout] with context naming the offending item.
func Validate(l *Layout) error {
	mode, err := grid.ParseCollisionMode(l.Collision)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if l.Cols < 0 || l.Rows < 0 || l.CellW < 0 || l.CellH < 0 || l.Gap < 0 {
		return fmt.Errorf("%w: negative grid dimension", ErrInvalidLayout)
	}

	seen := make(map[string]bool, len(l.Items))
	items := make([]grid.Item, 0, len(l.Items))
	for _, it := range l.Items {
		if it.ID == "" {
			return fmt.Errorf("%w: item with blank id", ErrInvalidLayout)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidLayout, it.ID)
		}
		seen[it.ID] = true

		if it.X < 0 || it.Y < 0 || it.W < 1 || it.H < 1 {
			return fmt.Errorf("%w: item %q has invalid geometry", ErrInvalidLayout, it.ID)
		}
		if l.Cols > 0 && it.X+it.W > l.Cols {
			return fmt.Errorf("%w: item %q exceeds column bound %d", ErrInvalidLayout, it.ID, l.Cols)
		}
		if l.Rows > 0 && it.Y+it.H > l.Rows {
			return fmt.Errorf("%w: item %q exceeds row bound %d", ErrInvalidLayout, it.ID, l.Rows)
		}
		if it.MaxW > 0 && it.MaxW < max(it.MinW, 1) || it.MaxH > 0 && it.MaxH < max(it.MinH, 1) {
			return fmt.Errorf("%w: item %q has max size below min size", ErrInvalidLayout, it.ID)
		}
		items = append(items, it.toGrid())
	}

	if mode != grid.CollisionNone {
		for i := range items {
			for _, other := range grid.Collisions(items[i], items[i+1:]) {
				return fmt.Errorf("%w: items %q and %q overlap", ErrInvalidLayout, items[i].ID, other.ID)
			}
		}
	}
	return nil
}

// Params converts the layout's grid context to engine parameters.
func (l *Layout) Params() grid.Params {
	mode, err := grid.ParseCollisionMode(l.Collision)
	if err != nil {
		mode = grid.CollisionPush
	}
	return grid.Params{
		Cell:      grid.Size{W: l.CellW, H: l.CellH},
		Gap:       l.Gap,
		MaxCols:   l.Cols,
		MaxRows:   l.Rows,
		Collision: mode,
	}
}

// Controller builds a layout controller seeded with the document's items.
// The document should be validated first; registration errors surface the
// first invalid item.
func (l *Layout) Controller() (*grid.Controller, error) {
	c := grid.NewController(l.Params())
	for _, it := range l.Items {
		if _, err := c.Register(it.toGrid()); err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
	}
	return c, nil
}

// FromController snapshots a controller's items back into a layout document,
// preserving registration order. Labels from prev (matched by ID) carry
// over, so render annotations survive a load-edit-save cycle.
func FromController(c *grid.Controller, prev *Layout) *Layout {
	p := c.Params()
	l := &Layout{
		Cols:      p.MaxCols,
		Rows:      p.MaxRows,
		CellW:     p.Cell.W,
		CellH:     p.Cell.H,
		Gap:       p.Gap,
		Collision: string(p.Collision),
	}

	labels := make(map[string]string)
	if prev != nil {
		for _, it := range prev.Items {
			if it.Label != "" {
				labels[it.ID] = it.Label
			}
		}
	}

	for _, it := range c.Items() {
		out := Item{
			ID:    it.ID,
			X:     it.X,
			Y:     it.Y,
			W:     it.W,
			H:     it.H,
			MinW:  it.Min.W,
			MinH:  it.Min.H,
			Label: labels[it.ID],
		}
		if it.Max != nil {
			out.MaxW, out.MaxH = it.Max.W, it.Max.H
		}
		if !it.Movable {
			out.Movable = boolPtr(false)
		}
		if !it.Resizable {
			out.Resizable = boolPtr(false)
		}
		l.Items = append(l.Items, out)
	}
	return l
}

func (it Item) toGrid() grid.Item {
	g := grid.Item{
		ID:        it.ID,
		X:         it.X,
		Y:         it.Y,
		W:         it.W,
		H:         it.H,
		Min:       grid.Size{W: it.MinW, H: it.MinH},
		Movable:   it.Movable == nil || *it.Movable,
		Resizable: it.Resizable == nil || *it.Resizable,
	}
	if it.MaxW > 0 || it.MaxH > 0 {
		g.Max = &grid.Size{W: it.MaxW, H: it.MaxH}
	}
	return g
}

func boolPtr(b bool) *bool { return &b }
