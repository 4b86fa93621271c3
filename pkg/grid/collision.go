package grid

// HasCollisions reports whether candidate overlaps any item in items.
// Items sharing the candidate's ID are skipped, so a candidate can be
// checked against a set that still contains its own previous placement.
func HasCollisions(candidate Item, items []Item) bool {
	for _, it := range items {
		if it.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(it) {
			return true
		}
	}
	return false
}

// Collisions returns all items overlapping candidate, excluding any item
// with the candidate's own ID. The result preserves the order of items:
// resolution strategies depend on this stable, document-order tie-break.
func Collisions(candidate Item, items []Item) []Item {
	var out []Item
	for _, it := range items {
		if it.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(it) {
			out = append(out, it)
		}
	}
	return out
}
