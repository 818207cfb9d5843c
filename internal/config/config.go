package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration, read from a TOML file.
type Config struct {
	World   WorldConfig   `toml:"world"`
	Atlas   AtlasConfig   `toml:"atlas"`
	Meshing MeshingConfig `toml:"meshing"`
	Log     LogConfig     `toml:"log"`
	Window  WindowConfig  `toml:"window"`
	// Blocks replaces the default block set when non-empty.
	Blocks []BlockConfig `toml:"blocks"`
}

// AtlasConfig sets the atlas grid. Zero columns and rows size it to fit
// the registered textures.
type AtlasConfig struct {
	// Path points at a PNG atlas; empty draws one procedurally.
	Path     string `toml:"path"`
	Columns  int    `toml:"columns"`
	Rows     int    `toml:"rows"`
	CellSize int    `toml:"cell_size"`
}

// MeshingConfig holds the meshing worker pool settings
type MeshingConfig struct {
	Workers   int    `toml:"workers"`
	QueueSize int    `toml:"queue_size"`
	Space     string `toml:"space"`
	// PerVoxel selects one mesh per voxel instead of one per chunk.
	PerVoxel bool `toml:"per_voxel"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// WindowConfig holds viewer window settings
type WindowConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Title  string  `toml:"title"`
	FOV    float32 `toml:"fov"`
	// FPSLimit caps the frame rate; zero leaves pacing to vsync.
	FPSLimit int `toml:"fps_limit"`
}

// Default returns a configuration that runs without a file.
func Default() Config {
	return Config{
		World: defaultWorld(),
		Meshing: MeshingConfig{
			Workers:   4,
			QueueSize: 64,
			Space:     "world",
		},
		Atlas: AtlasConfig{CellSize: 16},
		Log: LogConfig{
			Level: "info",
		},
		Window: WindowConfig{
			Width:  900,
			Height: 600,
			Title:  "mini-voxel",
			FOV:    60,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting, each wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	errs = append(errs, c.World.validate()...)

	if c.Atlas.Columns < 0 || c.Atlas.Rows < 0 {
		bad("atlas %dx%d: negative size", c.Atlas.Columns, c.Atlas.Rows)
	}
	if (c.Atlas.Columns == 0) != (c.Atlas.Rows == 0) {
		bad("atlas %dx%d: set both columns and rows or neither", c.Atlas.Columns, c.Atlas.Rows)
	}
	if c.Atlas.CellSize <= 0 {
		bad("atlas cell_size %d must be positive", c.Atlas.CellSize)
	}

	if c.Meshing.Workers < 1 {
		bad("meshing workers %d must be at least 1", c.Meshing.Workers)
	}
	if c.Meshing.QueueSize < 0 {
		bad("meshing queue_size %d is negative", c.Meshing.QueueSize)
	}
	if _, err := ParseSpace(c.Meshing.Space); err != nil {
		errs = append(errs, err)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.FOV <= 0 || c.Window.FOV >= 180 {
		bad("window fov %v out of (0,180)", c.Window.FOV)
	}
	if c.Window.FPSLimit < 0 {
		bad("window fps_limit %d is negative", c.Window.FPSLimit)
	}

	seen := make(map[string]bool, len(c.Blocks))
	for i, b := range c.Blocks {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			bad("blocks[%d]: empty name", i)
			continue
		}
		if seen[name] {
			bad("blocks[%d]: duplicate name %q", i, name)
		}
		seen[name] = true
		if b.Texture == "" && b.TextureTop == "" {
			bad("blocks[%d] %q: no texture", i, name)
		}
	}

	return errors.Join(errs...)
}
