package config

import (
	"fmt"
	"strings"

	"mini-voxel/internal/meshing"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"go.uber.org/zap/zapcore"
)

// BlockConfig is one [[blocks]] entry. Texture sets every face; the per-face
// keys override it.
type BlockConfig struct {
	ID            uint16 `toml:"id"`
	Name          string `toml:"name"`
	Texture       string `toml:"texture"`
	TextureTop    string `toml:"texture_top"`
	TextureSide   string `toml:"texture_side"`
	TextureBottom string `toml:"texture_bottom"`
	Opaque        bool   `toml:"opaque"`
	Transparent   bool   `toml:"transparent"`
}

func (b BlockConfig) definition() registry.BlockDefinition {
	top := b.TextureTop
	if top == "" {
		top = b.Texture
	}
	side := b.TextureSide
	if side == "" {
		side = b.Texture
	}
	bot := b.TextureBottom
	if bot == "" {
		bot = b.Texture
	}
	return registry.BlockDefinition{
		ID:            world.BlockType(b.ID),
		Name:          strings.TrimSpace(b.Name),
		TextureTop:    top,
		TextureSide:   side,
		TextureBot:    bot,
		IsOpaque:      b.Opaque,
		IsTransparent: b.Transparent,
	}
}

// Registry builds the block registry: the default set, or the configured
// blocks when any are listed.
func (c Config) Registry() (*registry.Registry, error) {
	if len(c.Blocks) == 0 {
		return registry.Default(), nil
	}
	defs := make([]registry.BlockDefinition, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		defs = append(defs, b.definition())
	}
	reg, err := registry.FromDefinitions(defs)
	if err != nil {
		return nil, fmt.Errorf("%w: blocks: %w", ErrInvalidConfig, err)
	}
	return reg, nil
}

// NewAtlas returns the configured atlas layout, or one sized to fit reg.
func (c Config) NewAtlas(reg *registry.Registry) (registry.Atlas, error) {
	if c.Atlas.Columns == 0 && c.Atlas.Rows == 0 {
		return registry.AtlasFor(reg), nil
	}
	a, err := registry.NewAtlas(c.Atlas.Columns, c.Atlas.Rows)
	if err != nil {
		return registry.Atlas{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if a.Cells() < reg.CellCount() {
		return registry.Atlas{}, fmt.Errorf("%w: atlas %dx%d holds %d cells, %d textures registered",
			ErrInvalidConfig, a.Columns, a.Rows, a.Cells(), reg.CellCount())
	}
	return a, nil
}

// ParseSpace maps a [meshing].space value to a mesher coordinate frame.
func ParseSpace(s string) (meshing.Space, error) {
	switch strings.ToLower(s) {
	case "", "local":
		return meshing.SpaceLocal, nil
	case "world":
		return meshing.SpaceWorld, nil
	default:
		return 0, fmt.Errorf("%w: meshing space %q", ErrInvalidConfig, s)
	}
}

// ParseLevel maps a [log].level value to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}
	return l, nil
}
