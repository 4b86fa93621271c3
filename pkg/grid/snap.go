package grid

// Params is the read-only grid context consumed by the placement algorithm.
// It is owned by the surrounding application; the engine never mutates it.
type Params struct {
	// Cell is the pixel size of one grid cell. It is typically derived from
	// the container width and the column count. Pixel-space operations
	// (sessions, snapping) require both dimensions to be positive.
	Cell Size

	// Gap is the pixel spacing between adjacent cells.
	Gap int

	// MaxCols and MaxRows bound the grid. Zero means unbounded.
	MaxCols int
	MaxRows int

	// Collision selects the resolution strategy for move/resize operations.
	Collision CollisionMode

	// Bounds optionally clamps in-progress pixel positions during an
	// interaction, keeping the dragged rectangle inside a pixel region.
	Bounds *PixelRect
}

// Ready reports whether pixel-space geometry can be computed. Interactions
// attempted while the grid is not ready fail with ErrNotReady rather than
// silently computing with a zero cell size.
func (p Params) Ready() bool {
	return p.Cell.W > 0 && p.Cell.H > 0
}

// SnapOnMove converts an in-progress pixel top-left corner to the nearest
// grid position. The result is not clamped to the grid bounds here; bounds
// are enforced earlier, during pixel-space clamping against Params.Bounds.
func SnapOnMove(leftPx, topPx int, p Params) Position {
	return Position{
		X: PixelsToUnits(leftPx, p.Cell.W, p.Gap, 0),
		Y: PixelsToUnits(topPx, p.Cell.H, p.Gap, 0),
	}
}

// SnapOnResize converts an in-progress pixel size to the nearest grid size,
// with a floor of one unit per axis. Min/max clamping against the item's
// own constraints is applied by the caller.
func SnapOnResize(widthPx, heightPx int, p Params) Size {
	return Size{
		W: PixelsToUnits(widthPx, p.Cell.W, p.Gap, 1),
		H: PixelsToUnits(heightPx, p.Cell.H, p.Gap, 1),
	}
}
