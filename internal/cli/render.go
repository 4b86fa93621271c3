package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DaveyUS/gridkit/pkg/cache"
	apperrors "github.com/DaveyUS/gridkit/pkg/errors"
	"github.com/DaveyUS/gridkit/pkg/layout"
	"github.com/DaveyUS/gridkit/pkg/observability"
	"github.com/DaveyUS/gridkit/pkg/render"
	"github.com/DaveyUS/gridkit/pkg/render/svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path ("-" for stdout)
	format    string  // output format: svg, pdf, or png
	cellLines bool    // draw the background cell grid
	noLabels  bool    // suppress item labels
	scale     float64 // pixel scale factor
	padding   int     // frame margin in pixels
	noCache   bool    // bypass the artifact cache
}

// renderCommand creates the render command for generating SVG images from
// layout documents. Rendered artifacts are cached by content hash, so
// re-rendering an unchanged document is a cache hit.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a layout document to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags not set explicitly fall back to config defaults.
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.Config.Render.Scale
			}
			if !cmd.Flags().Changed("padding") {
				opts.padding = c.Config.Render.Padding
			}
			if !cmd.Flags().Changed("cell-lines") {
				opts.cellLines = c.Config.Render.CellLines
			}
			if !cmd.Flags().Changed("no-labels") {
				opts.noLabels = !c.Config.Render.Labels
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (default: input name with the format extension, "-" for stdout)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg, pdf, or png (pdf and png require librsvg)")
	cmd.Flags().BoolVar(&opts.cellLines, "cell-lines", false, "draw the background cell grid")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "suppress item labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "pixel scale factor")
	cmd.Flags().IntVar(&opts.padding, "padding", 16, "frame margin in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts *renderOpts) error {
	prog := newProgress(c.Logger)

	l, err := layout.ImportFile(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "load layout %s", path)
	}
	c.Config.Grid.applyGridDefaults(l)
	if err := layout.Validate(l); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidLayout, err, "layout %s", path)
	}

	store, err := c.newCache(opts.noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, rendering fresh", "err", err)
		store = cache.NewNullCache()
	}
	defer store.Close()

	data, cached, err := renderCached(ctx, store, l, opts, time.Duration(c.Config.Cache.TTL))
	if err != nil {
		return err
	}

	// The cache holds the canonical SVG; other formats derive from it.
	if opts.format != "svg" {
		data, err = render.Convert(data, opts.format, opts.scale)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeUnsupported, err, "convert to %s", opts.format)
		}
	}

	out := opts.output
	if out == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
		prog.done("Rendered layout")
		return nil
	}
	if out == "" {
		out = outputName(path, opts.format)
	}
	if err := apperrors.ValidateOutputPath(out); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write %s", out)
	}

	prog.done("Rendered layout")
	printSuccess("Rendered %s", path)
	printFile(out)
	printStats(len(l.Items), l.Cols, l.Rows, cached)
	return nil
}

// renderCached renders through the artifact cache: the key hashes the
// normalized document plus render options, so any change to either misses.
func renderCached(ctx context.Context, store cache.Cache, l *layout.Layout, opts *renderOpts, ttl time.Duration) (data []byte, cached bool, err error) {
	var doc bytes.Buffer
	if err := json.NewEncoder(&doc).Encode(l); err != nil {
		return nil, false, err
	}
	key := cache.RenderKey(doc.Bytes(), cache.RenderKeyOpts{
		CellLines: opts.cellLines,
		Labels:    !opts.noLabels,
		Scale:     opts.scale,
		Padding:   opts.padding,
	})

	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	start := time.Now()
	observability.Render().OnRenderStart(ctx, "svg", len(l.Items))
	data, err = svg.RenderSVG(l, renderOptions(opts)...)
	observability.Render().OnRenderComplete(ctx, "svg", len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, data, ttl); err != nil {
		loggerFromContext(ctx).Debug("cache store failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}

func renderOptions(opts *renderOpts) []svg.Option {
	out := []svg.Option{
		svg.WithScale(opts.scale),
		svg.WithPadding(opts.padding),
	}
	if opts.cellLines {
		out = append(out, svg.WithCellLines())
	}
	if opts.noLabels {
		out = append(out, svg.WithoutLabels())
	}
	return out
}

// outputName derives the default output path from the input path, replacing
// the extension with the output format's.
func outputName(path, format string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i] + "." + format
		}
	}
	return path + "." + format
}
