package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DaveyUS/gridkit/pkg/cache"
	"github.com/DaveyUS/gridkit/pkg/layout"
	"github.com/DaveyUS/gridkit/pkg/observability"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		path   string
		format string
		want   string
	}{
		{"dashboard.json", "svg", "dashboard.svg"},
		{"dashboard.json", "png", "dashboard.png"},
		{"layouts/home.layout.json", "svg", "layouts/home.layout.svg"},
		{"noext", "svg", "noext.svg"},
		{"dir.v2/noext", "pdf", "dir.v2/noext.pdf"},
	}

	for _, tt := range tests {
		if got := outputName(tt.path, tt.format); got != tt.want {
			t.Errorf("outputName(%q, %q) = %q, want %q", tt.path, tt.format, got, tt.want)
		}
	}
}

func TestRenderCached(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer store.Close()

	l := &layout.Layout{
		Cols:  4,
		CellW: 100, CellH: 100, Gap: 10,
		Items: []layout.Item{{ID: "a", W: 2, H: 1}},
	}
	opts := &renderOpts{scale: 1, padding: 16}
	ctx := context.Background()

	first, cached, err := renderCached(ctx, store, l, opts, time.Hour)
	if err != nil {
		t.Fatalf("renderCached: %v", err)
	}
	if cached {
		t.Error("first render should miss")
	}

	second, cached, err := renderCached(ctx, store, l, opts, time.Hour)
	if err != nil {
		t.Fatalf("renderCached (cached): %v", err)
	}
	if !cached {
		t.Error("second render should hit")
	}
	if !bytes.Equal(first, second) {
		t.Error("cached artifact differs from fresh render")
	}

	// Changing a render option changes the key.
	_, cached, err = renderCached(ctx, store, l, &renderOpts{scale: 2, padding: 16}, time.Hour)
	if err != nil {
		t.Fatalf("renderCached (scale 2): %v", err)
	}
	if cached {
		t.Error("different options should miss")
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestRenderCachedReportsToHooks(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer store.Close()

	l := &layout.Layout{
		CellW: 100, CellH: 100,
		Items: []layout.Item{{ID: "a", W: 1, H: 1}},
	}
	opts := &renderOpts{scale: 1}
	ctx := context.Background()

	if _, _, err := renderCached(ctx, store, l, opts, time.Hour); err != nil {
		t.Fatalf("renderCached: %v", err)
	}
	if _, _, err := renderCached(ctx, store, l, opts, time.Hour); err != nil {
		t.Fatalf("renderCached: %v", err)
	}

	if hooks.misses != 1 || hooks.sets != 1 || hooks.hits != 1 {
		t.Errorf("hooks = %+v, want 1 miss, 1 set, 1 hit", hooks)
	}
}

func TestRenderCachedNullCache(t *testing.T) {
	l := &layout.Layout{
		CellW: 100, CellH: 100,
		Items: []layout.Item{{ID: "a", W: 1, H: 1}},
	}
	opts := &renderOpts{scale: 1}

	data, cached, err := renderCached(context.Background(), cache.NewNullCache(), l, opts, time.Hour)
	if err != nil {
		t.Fatalf("renderCached: %v", err)
	}
	if cached {
		t.Error("null cache can never hit")
	}
	if len(data) == 0 {
		t.Error("expected SVG output")
	}
}
