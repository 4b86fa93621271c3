package grid

import "math"

// PixelRect is an item's geometry in pixel space, as consumed by a renderer.
type PixelRect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// UnitsToPixels converts n grid units to pixels for the given cell size and
// gap. Each unit spans one cell; interior gaps (n-1 of them) are included,
// so a 2-unit span covers two cells plus one gap.
func UnitsToPixels(n, cell, gap int) int {
	gaps := n - 1
	if gaps < 0 {
		gaps = 0
	}
	return n*cell + gaps*gap
}

// PixelsToUnits converts a pixel length back to a grid unit count, rounding
// to the nearest number of cells that fit. The result is floored at min
// (typically 1 for sizes and 0 for positions).
//
// Rounding to nearest, rather than flooring, is what makes interactive
// snapping feel natural: the value flips as the pointer crosses half a cell.
func PixelsToUnits(px, cell, gap, min int) int {
	n := int(math.Round(float64(px+gap) / float64(cell+gap)))
	if n < min {
		n = min
	}
	return n
}

// ItemPixelRect maps an item's grid rectangle to pixel geometry.
// The left/top offsets advance by a full cell-plus-gap stride per unit,
// while width/height only include interior gaps.
func ItemPixelRect(it Item, cell Size, gap int) PixelRect {
	return PixelRect{
		Left:   it.X * (cell.W + gap),
		Top:    it.Y * (cell.H + gap),
		Width:  UnitsToPixels(it.W, cell.W, gap),
		Height: UnitsToPixels(it.H, cell.H, gap),
	}
}
