// Package render provides output-format conversion for rendered layouts.
//
// The SVG produced by the [svg] subpackage is the canonical artifact; the
// conversion helpers here shell out to rsvg-convert to derive raster and
// print formats from it.
//
// [svg]: github.com/DaveyUS/gridkit/pkg/render/svg
package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Formats lists the supported output formats.
var Formats = []string{"svg", "pdf", "png"}

// Convert derives the requested format from SVG bytes. "svg" returns the
// input unchanged; the scale factor only applies to raster output.
func Convert(svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case "svg", "":
		return svg, nil
	case "pdf":
		return ToPDF(svg)
	case "png":
		return ToPNG(svg, scale)
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: svg, pdf, png)", format)
	}
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
