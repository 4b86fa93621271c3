package grid_test

import (
	"fmt"

	"github.com/DaveyUS/gridkit/pkg/grid"
)

func ExampleController_basic() {
	// A 4-column dashboard with push resolution
	c := grid.NewController(grid.Params{
		Cell:      grid.Size{W: 100, H: 100},
		Gap:       10,
		MaxCols:   4,
		Collision: grid.CollisionPush,
	})
	_, _ = c.Register(grid.Item{ID: "chart", X: 0, Y: 0, W: 2, H: 1})
	_, _ = c.Register(grid.Item{ID: "table", X: 2, Y: 0, W: 2, H: 1})

	// Moving chart into table's cells pushes table to the next free slot
	_ = c.UpdatePosition("chart", 1, 0)

	table, _ := c.Item("table")
	fmt.Println("table:", table.X, table.Y)
	// Output:
	// table: 0 1
}

func ExampleController_events() {
	c := grid.NewController(grid.Params{
		Cell:      grid.Size{W: 80, H: 80},
		Collision: grid.CollisionPush,
	})
	_, _ = c.Register(grid.Item{ID: "a", X: 0, Y: 0, W: 1, H: 1})

	// Listeners observe committed mutations only
	unsub := c.Subscribe(func(e grid.Event) {
		if e.Kind == grid.EventItemChanged {
			fmt.Println("moved:", e.Item.ID)
		}
	})
	defer unsub()

	_ = c.UpdatePosition("a", 3, 0)
	// Output:
	// moved: a
}

func ExampleSession_move() {
	c := grid.NewController(grid.Params{
		Cell:      grid.Size{W: 100, H: 100},
		Gap:       10,
		Collision: grid.CollisionPush,
	})
	_, _ = c.Register(grid.Item{ID: "widget", X: 0, Y: 0, W: 1, H: 1, Movable: true})

	// An interactive drag: begin, feed pixel positions, commit
	s, _ := c.BeginMove("widget")
	preview, _ := s.MoveTo(225, 110) // snaps to the nearest cell
	fmt.Println("preview:", preview.X, preview.Y)

	_ = s.Commit()
	widget, _ := c.Item("widget")
	fmt.Println("committed:", widget.X, widget.Y)
	// Output:
	// preview: 2 1
	// committed: 2 1
}

func ExampleController_compress() {
	// Compress mode keeps every column packed against the top edge
	c := grid.NewController(grid.Params{
		Cell:      grid.Size{W: 50, H: 50},
		Collision: grid.CollisionCompress,
	})
	_, _ = c.Register(grid.Item{ID: "header", X: 0, Y: 0, W: 2, H: 2})
	_, _ = c.Register(grid.Item{ID: "footer", X: 0, Y: 6, W: 2, H: 1})

	// Removing the header lets the footer slide to the top
	_ = c.Unregister("header")

	footer, _ := c.Item("footer")
	fmt.Println("footer:", footer.X, footer.Y)
	// Output:
	// footer: 0 0
}

func ExampleItemPixelRect() {
	it := grid.Item{ID: "panel", X: 2, Y: 1, W: 3, H: 2}
	rect := grid.ItemPixelRect(it, grid.Size{W: 100, H: 100}, 10)
	fmt.Println("left:", rect.Left, "top:", rect.Top)
	fmt.Println("size:", rect.Width, "x", rect.Height)
	// Output:
	// left: 220 top: 110
	// size: 320 x 210
}
