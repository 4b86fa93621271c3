// Package grid implements a collision-aware layout engine for rectangular
// items on an integer column/row grid.
//
// The engine has five cooperating parts, leaf first:
//
//   - Coordinate mapping between grid units and pixel geometry
//     (UnitsToPixels, PixelsToUnits, ItemPixelRect)
//   - Collision detection over half-open grid rectangles
//     (Item.Overlaps, HasCollisions, Collisions)
//   - Free-slot search with a deterministic row-major scan
//     (FindFreePosition)
//   - Snapping of in-progress pixel deltas to candidate grid placements
//     (SnapOnMove, SnapOnResize)
//   - The collision Resolver, which accepts, displaces (push) or compacts
//     (compress) on every candidate update
//
// A Controller ties them together: it owns the authoritative item set,
// exposes UpdatePosition/UpdateSize for programmatic changes and
// BeginMove/BeginResize sessions for pixel-driven interactions, and emits
// change events after every committed mutation.
//
// # Collision modes
//
// push displaces every item a candidate overlaps to the nearest free slot,
// scanning rows top to bottom. compress removes vertical gaps instead,
// sliding items toward occupied space like gravity. none permits overlap
// and never resolves anything.
//
// In push and compress modes the engine maintains the no-overlap invariant:
// after every committed operation, no two items' rectangles intersect.
//
// # Concurrency
//
// The engine is single-threaded by design: every call completes
// synchronously and mutation is confined to one resolve call. A Controller
// is not safe for concurrent use without external synchronization.
package grid
