package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/DaveyUS/gridkit/pkg/cache"
	"github.com/DaveyUS/gridkit/pkg/layout"
)

// Config holds the TOML configuration shared by all commands. Flags override
// config values, which override built-in defaults.
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// GridConfig sets the grid context applied to documents that omit it.
type GridConfig struct {
	Cols      int    `toml:"cols"`
	Rows      int    `toml:"rows"`
	CellW     int    `toml:"cell_w"`
	CellH     int    `toml:"cell_h"`
	Gap       int    `toml:"gap"`
	Collision string `toml:"collision"`
}

// RenderConfig sets SVG output defaults.
type RenderConfig struct {
	CellLines bool    `toml:"cell_lines"`
	Labels    bool    `toml:"labels"`
	Scale     float64 `toml:"scale"`
	Padding   int     `toml:"padding"`
}

// ServerConfig sets HTTP server defaults for the serve command.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     duration `toml:"read_timeout"`
	WriteTimeout    duration `toml:"write_timeout"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis" or "none".
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           duration `toml:"ttl"`
}

// duration wraps time.Duration so TTLs read as "24h" or "90s" in TOML.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// DefaultConfig returns the built-in defaults: a 12-column push grid with
// 100px cells, file-backed caching for a day, and a localhost server.
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Cols:      12,
			CellW:     100,
			CellH:     100,
			Gap:       10,
			Collision: "push",
		},
		Render: RenderConfig{
			Labels:  true,
			Scale:   1,
			Padding: 16,
		},
		Server: ServerConfig{
			Addr:            "localhost:8401",
			ReadTimeout:     duration(10 * time.Second),
			WriteTimeout:    duration(30 * time.Second),
			ShutdownTimeout: duration(5 * time.Second),
		},
		Cache: CacheConfig{
			Backend: "file",
			TTL:     duration(24 * time.Hour),
		},
	}
}

// LoadConfig reads the TOML config from path, or from the default locations
// when path is empty: ./gridkit.toml first, then
// $XDG_CONFIG_HOME/gridkit/config.toml. A missing default file is not an
// error; a missing explicit path is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if explicit && os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// findConfig probes the default config locations.
func findConfig() string {
	if _, err := os.Stat("gridkit.toml"); err == nil {
		return "gridkit.toml"
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	path := filepath.Join(dir, appName, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// applyGridDefaults fills grid fields a document leaves at zero from the
// configured defaults, so bare item lists stay renderable.
func (g GridConfig) applyGridDefaults(l *layout.Layout) {
	if l.Cols == 0 {
		l.Cols = g.Cols
	}
	if l.Rows == 0 {
		l.Rows = g.Rows
	}
	if l.CellW == 0 {
		l.CellW = g.CellW
	}
	if l.CellH == 0 {
		l.CellH = g.CellH
	}
	if l.Gap == 0 {
		l.Gap = g.Gap
	}
	if l.Collision == "" {
		l.Collision = g.Collision
	}
}

// open builds the cache backend described by the configuration.
func (cc CacheConfig) open() (cache.Cache, error) {
	switch cc.Backend {
	case "", "file":
		dir := cc.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		ctx, cancel := redisDialContext()
		defer cancel()
		return cache.NewRedisCache(ctx, cc.RedisAddr, cc.RedisPassword, cc.RedisDB)
	case "none":
		return cache.NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cc.Backend)
}

// redisDialContext bounds the initial Redis connection attempt.
func redisDialContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
