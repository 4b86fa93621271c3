package grid

import "errors"

var (
	// ErrInvalidItemID is returned by [Controller.Register] when an explicit
	// item ID contains characters that cannot be used as a stable identifier.
	ErrInvalidItemID = errors.New("item ID must not contain whitespace or control characters")

	// ErrDuplicateItemID is returned by [Controller.Register] when an item
	// with the same ID is already registered. Item IDs must be unique.
	ErrDuplicateItemID = errors.New("duplicate item ID")

	// ErrUnknownItem is returned by controller operations when the referenced
	// item is not registered.
	ErrUnknownItem = errors.New("unknown item")

	// ErrInvalidGeometry is returned by [Controller.Register] when an item's
	// position is negative, its size is below 1x1, or it violates the grid
	// bounds or its own min/max constraints.
	ErrInvalidGeometry = errors.New("invalid item geometry")

	// ErrNotReady is returned when a pixel-space interaction is attempted
	// before the cell size has been configured. Computing with a zero cell
	// size would produce bogus geometry, so the operation is refused.
	ErrNotReady = errors.New("grid not ready: cell size not configured")

	// ErrItemNotMovable is returned by [Controller.BeginMove] for items
	// registered with Movable set to false.
	ErrItemNotMovable = errors.New("item is not movable")

	// ErrItemNotResizable is returned by [Controller.BeginResize] for items
	// registered with Resizable set to false.
	ErrItemNotResizable = errors.New("item is not resizable")

	// ErrSessionActive is returned by [Controller.BeginMove] and
	// [Controller.BeginResize] while another interaction session is open.
	// Sessions are strictly sequential; the previous session must be
	// committed or cancelled first.
	ErrSessionActive = errors.New("an interaction session is already active")

	// ErrSessionClosed is returned by session operations after Commit or
	// Cancel has been called.
	ErrSessionClosed = errors.New("interaction session is closed")
)

// Size is a width/height pair in grid units.
type Size struct {
	W int
	H int
}

// Position is a column/row pair in grid units.
type Position struct {
	X int
	Y int
}

// Item is a rectangular entity placed on the grid. Its rectangle occupies
// the half-open cell range [X, X+W) x [Y, Y+H): two items sharing only an
// edge do not overlap.
//
// The zero value is not usable - W and H must be at least 1 before the item
// is registered with a [Controller].
type Item struct {
	ID string // Unique identifier, stable for the item's lifetime

	X int // Column of the top-left corner (>= 0)
	Y int // Row of the top-left corner (>= 0)
	W int // Width in grid units (>= 1)
	H int // Height in grid units (>= 1)

	// Min is the lower bound for W and H. A zero field means 1.
	Min Size
	// Max is the upper bound for W and H. Nil means unbounded.
	Max *Size

	// Movable and Resizable gate interaction eligibility: the controller
	// refuses to open a move or resize session for items that opt out.
	// The placement algorithm itself is geometry-agnostic to these flags.
	Movable   bool
	Resizable bool
}

// Right returns the first column to the right of the item.
func (it Item) Right() int { return it.X + it.W }

// Bottom returns the first row below the item.
func (it Item) Bottom() int { return it.Y + it.H }

// Pos returns the item's top-left corner.
func (it Item) Pos() Position { return Position{X: it.X, Y: it.Y} }

// Size returns the item's dimensions.
func (it Item) Size() Size { return Size{W: it.W, H: it.H} }

// Overlaps reports whether the two items' grid rectangles intersect.
// Rectangles that share only an edge do not overlap (half-open semantics).
func (it Item) Overlaps(other Item) bool {
	return it.X < other.Right() && other.X < it.Right() &&
		it.Y < other.Bottom() && other.Y < it.Bottom()
}

// MinSize returns the effective minimum size, defaulting zero fields to 1.
func (it Item) MinSize() Size {
	m := it.Min
	if m.W < 1 {
		m.W = 1
	}
	if m.H < 1 {
		m.H = 1
	}
	return m
}

// ClampSize restricts w and h to the item's min/max constraints.
// Requested sizes outside the constraints are resolved locally by clamping;
// a constraint conflict is never surfaced as an error.
func (it Item) ClampSize(w, h int) (int, int) {
	m := it.MinSize()
	if w < m.W {
		w = m.W
	}
	if h < m.H {
		h = m.H
	}
	if it.Max != nil {
		if it.Max.W > 0 && w > it.Max.W {
			w = it.Max.W
		}
		if it.Max.H > 0 && h > it.Max.H {
			h = it.Max.H
		}
	}
	return w, h
}
