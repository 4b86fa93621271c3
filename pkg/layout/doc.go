// Package layout provides the JSON document format for grids.
//
// # Overview
//
// A [Layout] captures everything needed to reconstruct a grid: the column
// and row bounds, the cell pixel geometry, the collision mode and the item
// list. The format is designed for:
//
//   - Persisting dashboards and editor state between runs
//   - Feeding the render and check commands from files or pipes
//   - Round-trip preservation: load, edit through a controller, save
//
// # JSON Format
//
// The document is a single object with an "items" array:
//
//	{
//	  "cols": 12,
//	  "cell_w": 100,
//	  "cell_h": 100,
//	  "gap": 10,
//	  "collision": "push",
//	  "items": [
//	    {"id": "chart", "x": 0, "y": 0, "w": 4, "h": 2, "label": "Chart"},
//	    {"id": "table", "x": 4, "y": 0, "w": 8, "h": 2}
//	  ]
//	}
//
// Item fields beyond id and geometry are optional: min_w/min_h and
// max_w/max_h bound resizing, movable and resizable default to true when
// absent, and label annotates rendered output.
//
// # Validation
//
// [ReadLayout] decodes without validating; [Validate] checks structural
// constraints separately so that callers can load a broken document, inspect
// it and report every problem. Validation enforces unique non-blank IDs,
// positive sizes, containment within declared bounds, and pairwise
// non-overlap in push and compress modes.
//
// # Engine Bridging
//
// [Layout.Controller] seeds a live controller from a document, and
// [FromController] snapshots a controller back, preserving labels from the
// previous document by ID.
package layout
