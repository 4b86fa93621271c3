package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandle is returned by [ParseHandle] for handle tokens other
	// than se, sw, ne and nw.
	ErrInvalidHandle = errors.New("invalid resize handle")

	// ErrSessionKind is returned when MoveTo is called on a resize session
	// or ResizeTo on a move session.
	ErrSessionKind = errors.New("operation does not match session kind")
)

// Handle names the resize grip being dragged, which determines the corner
// that stays fixed: dragging se keeps the top-left corner in place, nw keeps
// the bottom-right, and so on.
type Handle string

const (
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
)

// ParseHandle validates a resize-handle token. The empty string defaults
// to se.
func ParseHandle(s string) (Handle, error) {
	switch Handle(s) {
	case "":
		return HandleSE, nil
	case HandleSE, HandleSW, HandleNE, HandleNW:
		return Handle(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidHandle, s)
}

type sessionKind int

const (
	sessionMove sessionKind = iota
	sessionResize
)

// Session is one interactive move or resize, with explicit begin, update
// and end instead of ambient global listeners. It maintains a transient,
// non-authoritative preview item; only Commit writes the preview back
// through the resolver. Cancel discards the preview with no committed side
// effects in none and push modes. In compress mode, move updates eagerly
// compact sibling items so the live layout matches the preview; those
// sibling moves are committed as they happen and are not rolled back by
// Cancel. That asymmetry is deliberate.
type Session struct {
	c       *Controller
	kind    sessionKind
	handle  Handle
	id      string
	origin  Item // authoritative state when the session began
	preview Item
	closed  bool
}

// BeginMove opens a move session for the item. It fails with ErrNotReady
// before the cell size is configured, ErrItemNotMovable for items that opt
// out of moving, and ErrSessionActive while another session is open.
func (c *Controller) BeginMove(id string) (*Session, error) {
	it, err := c.beginSession(id)
	if err != nil {
		return nil, err
	}
	if !it.Movable {
		return nil, ErrItemNotMovable
	}
	s := &Session{c: c, kind: sessionMove, id: id, origin: it, preview: it}
	c.session = s
	return s, nil
}

// BeginResize opens a resize session for the item. The handle determines
// which corner stays fixed; the zero value defaults to se.
func (c *Controller) BeginResize(id string, handle Handle) (*Session, error) {
	h, err := ParseHandle(string(handle))
	if err != nil {
		return nil, err
	}
	it, err := c.beginSession(id)
	if err != nil {
		return nil, err
	}
	if !it.Resizable {
		return nil, ErrItemNotResizable
	}
	s := &Session{c: c, kind: sessionResize, handle: h, id: id, origin: it, preview: it}
	c.session = s
	return s, nil
}

func (c *Controller) beginSession(id string) (Item, error) {
	if !c.params.Ready() {
		return Item{}, ErrNotReady
	}
	it, ok := c.items[id]
	if !ok {
		return Item{}, ErrUnknownItem
	}
	if c.session != nil {
		return Item{}, ErrSessionActive
	}
	return *it, nil
}

// Preview returns the current candidate placement.
func (s *Session) Preview() Item { return s.preview }

// Active reports whether the session is still open.
func (s *Session) Active() bool { return !s.closed }

// MoveTo feeds an in-progress pixel top-left corner into the session. The
// position is clamped against the pixel bounds region, snapped to the
// nearest grid cell and clamped to the grid bounds; the resulting candidate
// becomes the preview. In compress mode the candidate is additionally
// settled by move-time compression, which may eagerly shift sibling items.
// Returns the updated preview.
func (s *Session) MoveTo(leftPx, topPx int) (Item, error) {
	if s.closed {
		return Item{}, ErrSessionClosed
	}
	if s.kind != sessionMove {
		return Item{}, ErrSessionKind
	}

	p := s.c.params
	leftPx, topPx = s.clampToBounds(leftPx, topPx)

	r := s.c.resolver()
	prev := s.preview
	pos := r.clampPosition(SnapOnMove(leftPx, topPx, p), s.preview.Size())
	s.preview.X, s.preview.Y = pos.X, pos.Y

	if p.Collision == CollisionCompress {
		var res Result
		y, ok := r.compressMoveTime(s.preview, s.c.working(), &res)
		if !ok {
			// The candidate cannot settle inside the row bound; the
			// preview stays where it last settled.
			s.preview = prev
			return s.preview, nil
		}
		s.preview.Y = y
		if len(res.Moved) > 0 {
			s.c.publish(res)
		}
	}
	return s.preview, nil
}

// ResizeTo feeds an in-progress pixel size into the session. The size is
// snapped to grid units, clamped against the item's min/max constraints and
// the grid bounds, and the preview's corner position is adjusted according
// to the resize handle (sw/nw move the left edge, ne/nw move the top edge).
// Returns the updated preview.
func (s *Session) ResizeTo(widthPx, heightPx int) (Item, error) {
	if s.closed {
		return Item{}, ErrSessionClosed
	}
	if s.kind != sessionResize {
		return Item{}, ErrSessionKind
	}

	p := s.c.params
	size := SnapOnResize(widthPx, heightPx, p)
	size.W, size.H = s.origin.ClampSize(size.W, size.H)

	cand := s.origin
	switch s.handle {
	case HandleSW:
		cand.X = s.origin.X + s.origin.W - size.W
	case HandleNE:
		cand.Y = s.origin.Y + s.origin.H - size.H
	case HandleNW:
		cand.X = s.origin.X + s.origin.W - size.W
		cand.Y = s.origin.Y + s.origin.H - size.H
	}
	if cand.X < 0 {
		cand.X = 0
	}
	if cand.Y < 0 {
		cand.Y = 0
	}
	cand.W, cand.H = size.W, size.H

	r := s.c.resolver()
	sz := r.clampSize(cand.Pos(), cand.Size())
	cand.W, cand.H = sz.W, sz.H
	s.preview = cand
	return s.preview, nil
}

// Commit writes the preview back through the collision resolver, making it
// the authoritative placement, and closes the session.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.close()

	var res Result
	switch s.kind {
	case sessionMove:
		res = s.c.resolver().Move(s.id, s.preview.Pos(), s.c.working())
	case sessionResize:
		res = s.c.resolver().ResizeAt(s.id, s.preview.Pos(), s.preview.Size(), s.c.working())
	}
	s.c.publish(res)
	return nil
}

// Cancel discards the preview and closes the session. Nothing is committed:
// in none and push modes the authoritative set is exactly as it was at
// Begin. Sibling compaction already performed by compress-mode move updates
// remains in place.
func (s *Session) Cancel() {
	if s.closed {
		return
	}
	s.close()
}

func (s *Session) close() {
	s.closed = true
	if s.c.session == s {
		s.c.session = nil
	}
}

// clampToBounds keeps the dragged rectangle's pixel position inside the
// configured bounds region, if any.
func (s *Session) clampToBounds(leftPx, topPx int) (int, int) {
	b := s.c.params.Bounds
	if b == nil {
		return leftPx, topPx
	}
	rect := ItemPixelRect(s.preview, s.c.params.Cell, s.c.params.Gap)

	maxLeft := b.Left + b.Width - rect.Width
	maxTop := b.Top + b.Height - rect.Height
	if leftPx > maxLeft {
		leftPx = maxLeft
	}
	if topPx > maxTop {
		topPx = maxTop
	}
	if leftPx < b.Left {
		leftPx = b.Left
	}
	if topPx < b.Top {
		topPx = b.Top
	}
	return leftPx, topPx
}
