package layout

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/DaveyUS/gridkit/pkg/grid"
)

func validLayout() *Layout {
	return &Layout{
		Cols:      4,
		CellW:     100,
		CellH:     100,
		Gap:       10,
		Collision: "push",
		Items: []Item{
			{ID: "a", X: 0, Y: 0, W: 2, H: 1, Label: "Chart"},
			{ID: "b", X: 2, Y: 0, W: 2, H: 1},
		},
	}
}

func TestReadLayout(t *testing.T) {
	in := `{
	  "cols": 4,
	  "cell_w": 100,
	  "cell_h": 100,
	  "collision": "compress",
	  "items": [
	    {"id": "a", "x": 0, "y": 0, "w": 2, "h": 1, "movable": false}
	  ]
	}`
	l, err := ReadLayout(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if l.Cols != 4 || l.Collision != "compress" {
		t.Errorf("header = cols %d, collision %q", l.Cols, l.Collision)
	}
	if len(l.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(l.Items))
	}
	it := l.Items[0]
	if it.Movable == nil || *it.Movable {
		t.Error("movable: false not decoded")
	}
	if it.Resizable != nil {
		t.Error("absent resizable should decode as nil")
	}
}

func TestReadLayoutMalformed(t *testing.T) {
	if _, err := ReadLayout(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestWriteLayoutRoundTrip(t *testing.T) {
	in := validLayout()
	in.Items[1].Movable = boolPtr(false)

	var buf bytes.Buffer
	if err := WriteLayout(in, &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	out, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}

	if out.Cols != in.Cols || out.Gap != in.Gap || out.Collision != in.Collision {
		t.Errorf("header mismatch: %+v", out)
	}
	if len(out.Items) != len(in.Items) {
		t.Fatalf("items = %d, want %d", len(out.Items), len(in.Items))
	}
	if out.Items[0].Label != "Chart" {
		t.Errorf("label = %q", out.Items[0].Label)
	}
	if out.Items[1].Movable == nil || *out.Items[1].Movable {
		t.Error("movable: false lost in round trip")
	}
}

func TestImportExportFile(t *testing.T) {
	path := t.TempDir() + "/layout.json"
	if err := ExportFile(validLayout(), path); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	l, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(l.Items) != 2 {
		t.Errorf("items = %d, want 2", len(l.Items))
	}

	if _, err := ImportFile(t.TempDir() + "/missing.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layout)
		wantOK bool
	}{
		{name: "Valid", mutate: func(*Layout) {}, wantOK: true},
		{name: "EmptyItems", mutate: func(l *Layout) { l.Items = nil }, wantOK: true},
		{name: "UnknownMode", mutate: func(l *Layout) { l.Collision = "bounce" }},
		{name: "BlankID", mutate: func(l *Layout) { l.Items[0].ID = "" }},
		{name: "DuplicateID", mutate: func(l *Layout) { l.Items[1].ID = "a" }},
		{name: "ZeroWidth", mutate: func(l *Layout) { l.Items[0].W = 0 }},
		{name: "NegativePosition", mutate: func(l *Layout) { l.Items[0].Y = -1 }},
		{name: "ExceedsCols", mutate: func(l *Layout) { l.Items[1].W = 3 }},
		{name: "ExceedsRows", mutate: func(l *Layout) { l.Rows = 1; l.Items[0].H = 2 }},
		{name: "MaxBelowMin", mutate: func(l *Layout) { l.Items[0].MinW = 3; l.Items[0].MaxW = 2 }},
		{name: "OverlapInPush", mutate: func(l *Layout) { l.Items[1].X = 1 }},
		{name: "OverlapInNone", mutate: func(l *Layout) { l.Items[1].X = 1; l.Collision = "none" }, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLayout()
			tt.mutate(l)
			err := Validate(l)
			if tt.wantOK {
				if err != nil {
					t.Errorf("Validate = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("Validate = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestLayoutParams(t *testing.T) {
	p := validLayout().Params()
	want := grid.Params{
		Cell:      grid.Size{W: 100, H: 100},
		Gap:       10,
		MaxCols:   4,
		Collision: grid.CollisionPush,
	}
	if p != want {
		t.Errorf("Params = %+v, want %+v", p, want)
	}
}

func TestControllerSeedsItems(t *testing.T) {
	l := validLayout()
	l.Items[0].Movable = boolPtr(false)
	l.Items[1].MinW, l.Items[1].MaxW, l.Items[1].MaxH = 1, 3, 2

	c, err := l.Controller()
	if err != nil {
		t.Fatalf("Controller: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	a, _ := c.Item("a")
	if a.Movable {
		t.Error("a should not be movable")
	}
	if !a.Resizable {
		t.Error("absent resizable should default to true")
	}
	b, _ := c.Item("b")
	if b.Max == nil || *b.Max != (grid.Size{W: 3, H: 2}) {
		t.Errorf("b.Max = %v, want {3 2}", b.Max)
	}
}

func TestControllerRejectsInvalidItem(t *testing.T) {
	l := validLayout()
	l.Items[1].X = 3 // right edge 5 exceeds 4 columns
	if _, err := l.Controller(); err == nil {
		t.Fatal("expected registration error")
	}
}

func TestFromControllerRoundTrip(t *testing.T) {
	orig := validLayout()
	c, err := orig.Controller()
	if err != nil {
		t.Fatalf("Controller: %v", err)
	}

	// Edit through the controller: move a into b, which displaces b.
	if err := c.UpdatePosition("a", 1, 0); err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}

	out := FromController(c, orig)
	if out.Cols != 4 || out.Collision != "push" {
		t.Errorf("header = %+v", out)
	}
	if out.Items[0].X != 1 || out.Items[0].Label != "Chart" {
		t.Errorf("a = %+v, want moved with label intact", out.Items[0])
	}
	if out.Items[1].Y != 1 {
		t.Errorf("b = %+v, want displaced to the next row", out.Items[1])
	}
	if err := Validate(out); err != nil {
		t.Errorf("Validate after edit: %v", err)
	}
}
