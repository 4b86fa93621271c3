// Package pkg provides the core libraries for Gridkit layout management.
//
// # Overview
//
// Gridkit places rectangular items on a discrete grid and keeps them from
// overlapping while the user drags, resizes, inserts, and removes them. The
// pkg directory is organized into five main areas:
//
//  1. [grid] - The layout engine (collision resolution, snapping, sessions)
//  2. [layout] - Layout document serialization and validation
//  3. [render] - SVG rendering and format conversion
//  4. [cache] - Render artifact caching (file and Redis backends)
//  5. [errors] - Coded errors shared by the CLI and HTTP server
//
// # Architecture
//
// The typical data flow through Gridkit:
//
//	Layout document (JSON)
//	         ↓
//	    [layout] package (parse + validate)
//	         ↓
//	    [grid] package (controller, collision resolution, drag sessions)
//	         ↓
//	    [render/svg] package (visualization)
//	         ↓
//	    SVG/PDF/PNG output
//
// # Quick Start
//
// Build a controller, place items, and render the result:
//
//	import (
//	    "github.com/DaveyUS/gridkit/pkg/grid"
//	    "github.com/DaveyUS/gridkit/pkg/layout"
//	    "github.com/DaveyUS/gridkit/pkg/render/svg"
//	)
//
//	// 1. Configure the grid
//	c := grid.NewController(grid.Params{
//	    Cell:    grid.Size{W: 100, H: 100},
//	    Gap:     10,
//	    MaxCols: 12,
//	})
//
//	// 2. Register items; colliding siblings are pushed aside
//	c.Register(grid.Item{ID: "chart", X: 0, Y: 0, W: 4, H: 2})
//	c.Register(grid.Item{ID: "table", X: 0, Y: 0, W: 4, H: 3})
//
//	// 3. Serialize and render
//	doc := layout.FromController(c, nil)
//	img, _ := svg.RenderSVG(doc)
//
// # Main Packages
//
// [grid] - The engine. A [grid.Controller] owns the authoritative item set
// and resolves collisions in push, compress, or none mode. A [grid.Session]
// tracks one pixel-space drag or resize gesture, snapping it to cells as it
// moves. Geometry helpers map grid units to pixels and back.
//
// [layout] - The JSON document format. Import, validate, and export layout
// files, and convert between documents and live controllers.
//
// [render] - Format conversion (SVG to PDF/PNG via librsvg). The
// [render/svg] subpackage renders a layout document to SVG.
//
// [cache] - Content-addressed artifact cache keyed by document hash plus
// render options. File backend for the CLI, Redis for shared deployments,
// and a null backend for tests.
//
// [errors] - Error codes and input validation shared across entry points.
//
// [observability] - Optional hooks for metrics and tracing, registered at
// startup and called from the render path and the layout server.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/grid/...     # Specific package
//	go test -run Example       # Examples only
//
// [grid]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/grid
// [grid.Controller]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/grid#Controller
// [grid.Session]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/grid#Session
// [layout]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/layout
// [render]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/render/svg
// [cache]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/cache
// [errors]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/DaveyUS/gridkit/pkg/buildinfo
package pkg
