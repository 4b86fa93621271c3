package grid

// FindFreePosition searches for the nearest unoccupied position where item
// fits with its current size, scanning rows top to bottom and columns left
// to right. The row-major scan gives a deterministic, top-left-biased
// placement: ties break toward lower Y, then lower X.
//
// maxCols and maxRows bound the grid; zero means unbounded on that axis.
// On an unbounded axis the scan is capped at the far edge of the existing
// items plus the item's own size, which always contains a free slot.
//
// The second return value is false only when the grid is bounded and no
// slot exists. That is an expected outcome on small grids, not an error;
// the caller decides the fallback (typically leaving the item at its last
// valid position).
func FindFreePosition(item Item, items []Item, maxCols, maxRows int) (Position, bool) {
	cols := maxCols
	rows := maxRows

	if cols == 0 || rows == 0 {
		right, bottom := item.W, item.H
		for _, it := range items {
			if it.ID == item.ID {
				continue
			}
			if r := it.Right(); r > right {
				right = r
			}
			if b := it.Bottom(); b > bottom {
				bottom = b
			}
		}
		// One extra band past the far edge of the placed items is always free.
		if cols == 0 {
			cols = right + item.W
		}
		if rows == 0 {
			rows = bottom + item.H
		}
	}

	for y := 0; y+item.H <= rows; y++ {
		for x := 0; x+item.W <= cols; x++ {
			probe := item
			probe.X, probe.Y = x, y
			if !HasCollisions(probe, items) {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}
