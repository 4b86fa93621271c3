// Package svg renders layout documents as standalone SVG images.
//
// The renderer is deterministic: items draw in sorted ID order and all
// geometry derives from the document, so identical documents produce
// identical bytes. That property makes the output safe to cache and diff.
//
// Output is a plain static image. Appearance is controlled through
// functional options: [WithCellLines] draws the background grid,
// [WithoutLabels] suppresses item labels, [WithScale] and [WithPadding]
// adjust the frame geometry.
package svg
