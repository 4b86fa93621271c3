package grid

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// EventKind distinguishes the notifications a controller emits.
type EventKind int

const (
	// EventItemChanged fires once per item whose committed coordinates
	// changed, carrying the updated item.
	EventItemChanged EventKind = iota

	// EventRelayout fires once after every resolve, signalling that derived
	// pixel geometry should be recomputed. Unplaced carries the IDs the
	// resolver could not place within the grid bounds.
	EventRelayout
)

// Event is a mutation notification. Events fire only after committed
// mutations, never during speculative preview computation.
type Event struct {
	Kind     EventKind
	Item     Item     // populated for EventItemChanged
	Unplaced []string // populated for EventRelayout
}

// ListenerFunc receives controller events.
type ListenerFunc func(Event)

// Controller owns the authoritative item set and is the only path through
// which item coordinates mutate. The surrounding UI reads item state, sends
// intents (grid targets or pixel deltas), and receives new authoritative
// state through events: strictly unidirectional flow, with no callbacks
// embedded in the item records themselves.
//
// A Controller is single-threaded by contract: all calls happen
// synchronously inside one interaction-update callback. It is not safe for
// concurrent use without external synchronization.
type Controller struct {
	params   Params
	order    []string
	items    map[string]*Item
	listener map[int]ListenerFunc
	nextSub  int
	session  *Session
}

// NewController creates a controller with the given grid context.
func NewController(p Params) *Controller {
	if p.Collision == "" {
		p.Collision = CollisionPush
	}
	return &Controller{
		params:   p,
		items:    make(map[string]*Item),
		listener: make(map[int]ListenerFunc),
	}
}

// Params returns the current grid context.
func (c *Controller) Params() Params { return c.params }

// SetCellSize updates the pixel size of one cell, typically after the
// container width or column count changed. It emits a relayout event so
// consumers re-derive pixel geometry.
func (c *Controller) SetCellSize(cell Size) {
	c.params.Cell = cell
	c.notifyRelayout(nil)
}

// SetBounds updates the optional pixel clamp region used during sessions.
func (c *Controller) SetBounds(b *PixelRect) { c.params.Bounds = b }

// SetCollisionMode switches the resolution strategy for subsequent
// operations. Existing overlaps are not retroactively resolved.
func (c *Controller) SetCollisionMode(m CollisionMode) { c.params.Collision = m }

// Register adds an item to the authoritative set and returns the stored
// copy. A blank ID is assigned a generated UUID. The item's geometry must
// be valid for the grid: non-negative position, size of at least 1x1
// respecting its own min/max, and inside MaxCols/MaxRows when bounded.
func (c *Controller) Register(it Item) (Item, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	} else if !validItemID(it.ID) {
		return Item{}, ErrInvalidItemID
	}
	if _, exists := c.items[it.ID]; exists {
		return Item{}, ErrDuplicateItemID
	}
	if err := c.checkGeometry(it); err != nil {
		return Item{}, err
	}

	stored := it
	c.items[it.ID] = &stored
	c.order = append(c.order, it.ID)
	return stored, nil
}

// Unregister removes an item from the authoritative set. In compress mode
// the vacated cells are reclaimed by a global compaction pass.
func (c *Controller) Unregister(id string) error {
	if _, ok := c.items[id]; !ok {
		return ErrUnknownItem
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	if c.params.Collision == CollisionCompress {
		res := c.resolver().Compact(c.working())
		c.publish(res)
		return nil
	}
	c.notifyRelayout(nil)
	return nil
}

// Item returns a copy of the item with the given ID.
func (c *Controller) Item(id string) (Item, bool) {
	it, ok := c.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Items returns a snapshot of all items in registration order.
func (c *Controller) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Len returns the number of registered items.
func (c *Controller) Len() int { return len(c.items) }

// PixelRect maps an item's current grid rectangle to pixel geometry using
// the controller's cell size and gap.
func (c *Controller) PixelRect(id string) (PixelRect, error) {
	it, ok := c.items[id]
	if !ok {
		return PixelRect{}, ErrUnknownItem
	}
	if !c.params.Ready() {
		return PixelRect{}, ErrNotReady
	}
	return ItemPixelRect(*it, c.params.Cell, c.params.Gap), nil
}

// Subscribe registers a listener for mutation events and returns a function
// that removes it.
func (c *Controller) Subscribe(fn ListenerFunc) (unsubscribe func()) {
	id := c.nextSub
	c.nextSub++
	c.listener[id] = fn
	return func() { delete(c.listener, id) }
}

// UpdatePosition moves an item to a target grid position, running the
// collision resolver and committing the accepted placement. The position is
// clamped to the grid bounds first.
func (c *Controller) UpdatePosition(id string, x, y int) error {
	if _, ok := c.items[id]; !ok {
		return ErrUnknownItem
	}
	res := c.resolver().Move(id, Position{X: x, Y: y}, c.working())
	c.publish(res)
	return nil
}

// UpdateSize resizes an item to a target grid size, running the collision
// resolver and committing the accepted placement. The size is clamped to
// the item's min/max constraints and the grid bounds first.
func (c *Controller) UpdateSize(id string, w, h int) error {
	if _, ok := c.items[id]; !ok {
		return ErrUnknownItem
	}
	res := c.resolver().Resize(id, Size{W: w, H: h}, c.working())
	c.publish(res)
	return nil
}

// Compact runs the global compaction pass over the whole item set,
// independent of the collision mode.
func (c *Controller) Compact() {
	res := c.resolver().Compact(c.working())
	c.publish(res)
}

func (c *Controller) resolver() Resolver {
	return Resolver{
		Mode:    c.params.Collision,
		MaxCols: c.params.MaxCols,
		MaxRows: c.params.MaxRows,
	}
}

// working returns the live item pointers in registration order, the
// document order all resolver tie-breaks derive from.
func (c *Controller) working() []*Item {
	out := make([]*Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// publish emits one item-changed event per mutated item, then a single
// relayout event for the resolve.
func (c *Controller) publish(res Result) {
	for _, id := range res.Moved {
		if it, ok := c.items[id]; ok {
			c.emit(Event{Kind: EventItemChanged, Item: *it})
		}
	}
	c.notifyRelayout(res.Unplaced)
}

func (c *Controller) notifyRelayout(unplaced []string) {
	c.emit(Event{Kind: EventRelayout, Unplaced: unplaced})
}

func (c *Controller) emit(e Event) {
	for _, fn := range c.listener {
		fn(e)
	}
}

func (c *Controller) checkGeometry(it Item) error {
	if it.X < 0 || it.Y < 0 || it.W < 1 || it.H < 1 {
		return ErrInvalidGeometry
	}
	m := it.MinSize()
	if it.W < m.W || it.H < m.H {
		return ErrInvalidGeometry
	}
	if it.Max != nil && ((it.Max.W > 0 && it.W > it.Max.W) || (it.Max.H > 0 && it.H > it.Max.H)) {
		return ErrInvalidGeometry
	}
	if c.params.MaxCols > 0 && it.Right() > c.params.MaxCols {
		return ErrInvalidGeometry
	}
	if c.params.MaxRows > 0 && it.Bottom() > c.params.MaxRows {
		return ErrInvalidGeometry
	}
	return nil
}

func validItemID(id string) bool {
	if strings.TrimSpace(id) != id || id == "" {
		return false
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
