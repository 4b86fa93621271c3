package grid

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidCollisionMode is returned by [ParseCollisionMode] for modes
// other than "push", "compress" and "none".
var ErrInvalidCollisionMode = errors.New("invalid collision mode")

// CollisionMode selects how the resolver reacts when a candidate placement
// overlaps other items.
type CollisionMode string

const (
	// CollisionNone accepts every candidate unconditionally. Overlaps are
	// permitted and never resolved; no collision check runs before commit.
	CollisionNone CollisionMode = "none"

	// CollisionPush displaces each colliding item to the nearest free slot.
	CollisionPush CollisionMode = "push"

	// CollisionCompress removes vertical gaps by sliding items toward
	// occupied space, gravity-style.
	CollisionCompress CollisionMode = "compress"
)

// ParseCollisionMode validates and normalizes a collision mode string.
// The empty string defaults to push.
func ParseCollisionMode(s string) (CollisionMode, error) {
	switch CollisionMode(s) {
	case "":
		return CollisionPush, nil
	case CollisionNone, CollisionPush, CollisionCompress:
		return CollisionMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCollisionMode, s)
}

// Resolver applies candidate placements to a working item set, resolving
// collisions according to its mode. It mutates only the grid coordinates of
// the items it is handed; everything else is read-only.
//
// Resolution is sequential, not a simultaneous constraint-satisfaction pass:
// when several items collide with a candidate, they are displaced one at a
// time in the order Collisions reports them. That ordering is the
// deterministic tie-break for the whole algorithm.
type Resolver struct {
	Mode CollisionMode

	// MaxCols and MaxRows bound the grid. Zero means unbounded.
	MaxCols int
	MaxRows int
}

// Result reports the outcome of one resolve pass.
type Result struct {
	// Moved lists the IDs of items whose coordinates changed, the resolve
	// target included. Each ID appears at most once.
	Moved []string

	// Unplaced lists items for which no valid slot existed within the grid
	// bounds. They keep their last valid position; this is a recoverable,
	// expected outcome on small bounded grids, not an error.
	Unplaced []string
}

func (res *Result) markMoved(id string) {
	if !slices.Contains(res.Moved, id) {
		res.Moved = append(res.Moved, id)
	}
}

// Move resolves a candidate position change for the item with the given ID.
// The position is clamped to the grid bounds before any collision check.
// Returns an empty result if the ID is not in the working set.
func (r Resolver) Move(id string, pos Position, items []*Item) Result {
	var res Result
	target := findItem(items, id)
	if target == nil {
		return res
	}

	pos = r.clampPosition(pos, target.Size())
	cand := *target
	cand.X, cand.Y = pos.X, pos.Y

	switch r.Mode {
	case CollisionCompress:
		y, ok := r.compressMoveTime(cand, items, &res)
		if ok {
			cand.Y = y
		} else {
			// No in-bounds row below the blocker: the move target keeps
			// its last valid position.
			cand = *target
			res.Unplaced = append(res.Unplaced, cand.ID)
		}
		r.commit(target, cand, &res)
		r.compressItems(*target, items, &res)
	case CollisionPush:
		r.resolvePush(cand, target, items, &res)
	default: // CollisionNone
		r.commit(target, cand, &res)
	}
	return res
}

// Resize resolves a candidate size change for the item with the given ID,
// keeping its top-left corner fixed.
func (r Resolver) Resize(id string, size Size, items []*Item) Result {
	if target := findItem(items, id); target != nil {
		return r.ResizeAt(id, target.Pos(), size, items)
	}
	return Result{}
}

// ResizeAt resolves a combined position and size change, as produced by
// resize handles that move the top or left edge (sw, ne, nw). The size is
// clamped against the item's min/max constraints, then position and size
// against the grid bounds, before any collision check.
func (r Resolver) ResizeAt(id string, pos Position, size Size, items []*Item) Result {
	var res Result
	target := findItem(items, id)
	if target == nil {
		return res
	}

	size.W, size.H = target.ClampSize(size.W, size.H)
	pos = r.clampPosition(pos, size)
	size = r.clampSize(pos, size)
	cand := *target
	cand.X, cand.Y = pos.X, pos.Y
	cand.W, cand.H = size.W, size.H

	switch r.Mode {
	case CollisionCompress:
		oldBottom := target.Bottom()
		delta := cand.Bottom() - oldBottom
		r.commit(target, cand, &res)
		var shifted map[string]int
		if delta != 0 {
			// Items fully below the resized bottom edge follow it.
			shifted = make(map[string]int)
			for _, it := range items {
				if it.ID == cand.ID || it.Y < oldBottom {
					continue
				}
				shifted[it.ID] = it.Y
				it.Y += delta
				res.markMoved(it.ID)
			}
		}
		r.compressItems(*target, items, &res)
		// A shifted item that ran out of rows falls back to where it stood
		// before the shift; the shifted spot is outside the grid.
		for _, uid := range res.Unplaced {
			y, wasShifted := shifted[uid]
			if !wasShifted {
				continue
			}
			if it := findItem(items, uid); it != nil && it.Y != y {
				it.Y = y
				res.Moved = slices.DeleteFunc(res.Moved, func(m string) bool { return m == uid })
			}
		}
	case CollisionPush:
		r.resolvePush(cand, target, items, &res)
	default: // CollisionNone
		r.commit(target, cand, &res)
	}
	return res
}

// Compact runs the global compaction pass with no settled candidate,
// sliding every item as far up as it can go. Used after an item leaves the
// grid in compress mode, and exposed for layout validation tooling.
func (r Resolver) Compact(items []*Item) Result {
	var res Result
	r.compressItems(Item{ID: "", W: 0, H: 0}, items, &res)
	return res
}

// commit writes the candidate's final attributes into the authoritative
// item, recording the change.
func (r Resolver) commit(target *Item, cand Item, res *Result) {
	if target.X != cand.X || target.Y != cand.Y || target.W != cand.W || target.H != cand.H {
		res.markMoved(target.ID)
	}
	*target = cand
}

// resolvePush commits the candidate, then relocates every collider to the
// nearest free slot. Each collider is searched against a temporary set
// holding everything except the collider itself: the committed candidate,
// previously relocated colliders at their new positions, and not-yet-handled
// colliders at their old ones.
func (r Resolver) resolvePush(cand Item, target *Item, items []*Item, res *Result) {
	coll := Collisions(cand, snapshot(items))
	r.commit(target, cand, res)

	for _, c := range coll {
		p := findItem(items, c.ID)
		if p == nil {
			continue
		}
		temp := snapshotExcept(items, c.ID)
		pos, ok := FindFreePosition(*p, temp, r.MaxCols, r.MaxRows)
		if !ok {
			res.Unplaced = append(res.Unplaced, c.ID)
			continue
		}
		if pos != p.Pos() {
			p.X, p.Y = pos.X, pos.Y
			res.markMoved(p.ID)
		}
	}
}

// compressMoveTime finds the row the candidate settles on in compress mode,
// probing upward from the requested row toward 0. When the probe collides,
// colliders whose vertical center sits at or above the candidate's block it:
// the candidate settles just below the lowest such collider, and the
// remaining items are offered a slide upward by the candidate's height
// wherever that introduces no new collision. Colliders centered below the
// candidate do not block; the probe keeps climbing past them. If the probe
// reaches row 0 unblocked, the candidate settles there.
//
// On a row-bounded grid the settled row must leave room for the candidate
// itself: when the blocker's bottom edge presses the candidate past MaxRows,
// there is no valid row and the second return is false. Nothing is mutated
// in that case.
//
// The sibling slide mutates the working set eagerly. That is deliberate:
// compress mode removes gaps live during a drag so the preview matches the
// final layout.
func (r Resolver) compressMoveTime(cand Item, items []*Item, res *Result) (int, bool) {
	others := snapshotExcept(items, cand.ID)

	for y := cand.Y; y >= 0; y-- {
		probe := cand
		probe.Y = y
		coll := Collisions(probe, others)
		if len(coll) == 0 {
			continue
		}

		// Blocking colliders: candidate center at or below collider center.
		// Compared as 2*y+h to stay in integers.
		blocking := make(map[string]bool, len(coll))
		settled := -1
		for _, c := range coll {
			if 2*probe.Y+probe.H >= 2*c.Y+c.H {
				blocking[c.ID] = true
				if c.Bottom() > settled {
					settled = c.Bottom()
				}
			}
		}
		if settled < 0 {
			continue
		}
		if r.MaxRows > 0 && settled+cand.H > r.MaxRows {
			return 0, false
		}

		r.slideSiblingsUp(cand, settled, blocking, items, res)
		return settled, true
	}
	return 0, true
}

// slideSiblingsUp offers every item outside the blocking set a shift upward
// by the candidate's height, keeping each shift only if it lands on free
// cells. The candidate is checked at its settled row.
func (r Resolver) slideSiblingsUp(cand Item, settledY int, blocking map[string]bool, items []*Item, res *Result) {
	settledCand := cand
	settledCand.Y = settledY

	for _, s := range items {
		if s.ID == cand.ID || blocking[s.ID] {
			continue
		}
		ny := s.Y - cand.H
		if ny < 0 {
			continue
		}
		probe := *s
		probe.Y = ny

		set := snapshotExcept(items, cand.ID)
		set = append(set, settledCand)
		if !HasCollisions(probe, set) {
			s.Y = ny
			res.markMoved(s.ID)
		}
	}
}

// compressItems is the global compaction pass: every item except the settled
// candidate is folded, in ascending row order, into an accumulating settled
// set. Items overlapping the candidate first take the minimal downward shift
// that clears it, then every item slides upward as far as the settled set
// allows. Because each item is checked only against already-settled items,
// the pass is monotonic and terminates after one sweep; running it again is
// a fixed point.
func (r Resolver) compressItems(cand Item, items []*Item, res *Result) {
	others := make([]*Item, 0, len(items))
	for _, it := range items {
		if it.ID == cand.ID {
			continue
		}
		others = append(others, it)
	}
	slices.SortStableFunc(others, func(a, b *Item) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	settled := make([]Item, 0, len(items))
	if cand.W > 0 && cand.H > 0 {
		settled = append(settled, cand)
	}

	for _, p := range others {
		n := *p
		if cand.W > 0 && cand.H > 0 && n.Overlaps(cand) {
			n.Y = cand.Bottom()
		}
		for n.Y > 0 {
			probe := n
			probe.Y--
			if HasCollisions(probe, settled) {
				break
			}
			n.Y = probe.Y
		}

		if r.MaxRows > 0 && n.Bottom() > r.MaxRows {
			// The clearing shift ran out of rows: keep the last valid
			// position and report it.
			res.Unplaced = append(res.Unplaced, p.ID)
			settled = append(settled, *p)
			continue
		}
		if n.Y != p.Y {
			p.Y = n.Y
			res.markMoved(p.ID)
		}
		settled = append(settled, *p)
	}
}

// clampPosition keeps a candidate top-left corner inside the grid bounds.
func (r Resolver) clampPosition(pos Position, size Size) Position {
	if r.MaxCols > 0 && pos.X+size.W > r.MaxCols {
		pos.X = r.MaxCols - size.W
	}
	if r.MaxRows > 0 && pos.Y+size.H > r.MaxRows {
		pos.Y = r.MaxRows - size.H
	}
	if pos.X < 0 {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = 0
	}
	return pos
}

// clampSize keeps a candidate size from crossing the grid's far edges.
func (r Resolver) clampSize(pos Position, size Size) Size {
	if r.MaxCols > 0 && pos.X+size.W > r.MaxCols {
		size.W = r.MaxCols - pos.X
	}
	if r.MaxRows > 0 && pos.Y+size.H > r.MaxRows {
		size.H = r.MaxRows - pos.Y
	}
	if size.W < 1 {
		size.W = 1
	}
	if size.H < 1 {
		size.H = 1
	}
	return size
}

func findItem(items []*Item, id string) *Item {
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func snapshot(items []*Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}

func snapshotExcept(items []*Item, id string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == id {
			continue
		}
		out = append(out, *it)
	}
	return out
}
