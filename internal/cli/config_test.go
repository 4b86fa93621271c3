package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DaveyUS/gridkit/pkg/layout"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridkit.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Cols != 12 {
		t.Errorf("Grid.Cols = %d, want 12", cfg.Grid.Cols)
	}
	if cfg.Grid.Collision != "push" {
		t.Errorf("Grid.Collision = %q, want push", cfg.Grid.Collision)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if time.Duration(cfg.Cache.TTL) != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", time.Duration(cfg.Cache.TTL))
	}
	if cfg.Server.Addr == "" {
		t.Error("Server.Addr should have a default")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
[grid]
cols = 6
cell_w = 80
cell_h = 60
collision = "compress"

[server]
addr = "0.0.0.0:9000"
read_timeout = "15s"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "1h"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Grid.Cols != 6 || cfg.Grid.CellW != 80 || cfg.Grid.Collision != "compress" {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	// Unset fields keep their defaults
	if cfg.Grid.Gap != 10 {
		t.Errorf("Grid.Gap = %d, want default 10", cfg.Grid.Gap)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 15*time.Second {
		t.Errorf("ReadTimeout = %v", time.Duration(cfg.Server.ReadTimeout))
	}
	if cfg.Cache.Backend != "redis" || time.Duration(cfg.Cache.TTL) != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfigFile(t, `
[grid]
colls = 6
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "colls") {
		t.Errorf("error should name the unknown key: %v", err)
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `
[cache]
ttl = "soon"
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestApplyGridDefaults(t *testing.T) {
	g := GridConfig{Cols: 12, CellW: 100, CellH: 100, Gap: 10, Collision: "push"}

	t.Run("FillsZeroFields", func(t *testing.T) {
		l := &layout.Layout{}
		g.applyGridDefaults(l)
		if l.Cols != 12 || l.CellW != 100 || l.Gap != 10 || l.Collision != "push" {
			t.Errorf("layout = %+v", l)
		}
	})

	t.Run("KeepsDocumentValues", func(t *testing.T) {
		l := &layout.Layout{Cols: 4, CellW: 50, Collision: "none"}
		g.applyGridDefaults(l)
		if l.Cols != 4 || l.CellW != 50 || l.Collision != "none" {
			t.Errorf("layout = %+v", l)
		}
		// Fields the document left at zero still fill in
		if l.CellH != 100 {
			t.Errorf("CellH = %d, want 100", l.CellH)
		}
	})
}

func TestCacheConfigOpen(t *testing.T) {
	t.Run("None", func(t *testing.T) {
		c, err := CacheConfig{Backend: "none"}.open()
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		defer c.Close()
	})

	t.Run("FileWithDir", func(t *testing.T) {
		c, err := CacheConfig{Backend: "file", Dir: t.TempDir()}.open()
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		defer c.Close()
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, err := (CacheConfig{Backend: "memcached"}).open(); err == nil {
			t.Fatal("expected error for unknown backend")
		}
	})
}
