package config

import (
	"fmt"
	"strings"

	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

// WorldConfig holds world generation configuration
type WorldConfig struct {
	// Size is the chunk extent in cells.
	Size Extent `toml:"size"`
	// ChunksMin and ChunksMax bound the generated chunk coordinates, inclusive.
	ChunksMin  Extent      `toml:"chunks_min"`
	ChunksMax  Extent      `toml:"chunks_max"`
	Generator  string      `toml:"generator"`
	Seed       int64       `toml:"seed"`
	FlatHeight int         `toml:"flat_height"`
	FillBlock  string      `toml:"fill_block"`
	Noise      NoiseConfig `toml:"noise"`
}

// Extent is an integer triple written as an inline table.
type Extent struct {
	X int `toml:"x"`
	Y int `toml:"y"`
	Z int `toml:"z"`
}

// NoiseConfig tunes the noise generator
type NoiseConfig struct {
	Alpha      float64 `toml:"alpha"`
	Beta       float64 `toml:"beta"`
	Octaves    int32   `toml:"octaves"`
	Scale      float64 `toml:"scale"`
	BaseHeight int     `toml:"base_height"`
	Amplitude  float64 `toml:"amplitude"`
	SeaLevel   int     `toml:"sea_level"`
	DirtDepth  int     `toml:"dirt_depth"`
}

// Generator names accepted in [world].generator.
const (
	GeneratorNoise = "noise"
	GeneratorFlat  = "flat"
	GeneratorFill  = "fill"
)

func defaultWorld() WorldConfig {
	p := world.DefaultNoiseParams
	return WorldConfig{
		Size:       Extent{X: world.ChunkSizeX, Y: world.ChunkSizeY, Z: world.ChunkSizeZ},
		ChunksMin:  Extent{X: -1, Y: 0, Z: -1},
		ChunksMax:  Extent{X: 1, Y: 0, Z: 1},
		Generator:  GeneratorNoise,
		Seed:       1337,
		FlatHeight: 4,
		FillBlock:  "stone",
		Noise: NoiseConfig{
			Alpha:      p.Alpha,
			Beta:       p.Beta,
			Octaves:    p.Octaves,
			Scale:      p.Scale,
			BaseHeight: p.BaseHeight,
			Amplitude:  p.Amplitude,
			SeaLevel:   p.SeaLevel,
			DirtDepth:  p.DirtDepth,
		},
	}
}

func (w WorldConfig) validate() []error {
	var errs []error
	if err := w.Dimensions().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: world size: %w", ErrInvalidConfig, err))
	}
	if w.ChunksMin.X > w.ChunksMax.X || w.ChunksMin.Y > w.ChunksMax.Y || w.ChunksMin.Z > w.ChunksMax.Z {
		errs = append(errs, fmt.Errorf("%w: world chunks_min %v exceeds chunks_max %v", ErrInvalidConfig, w.ChunksMin, w.ChunksMax))
	}
	switch strings.ToLower(w.Generator) {
	case GeneratorNoise:
		if w.Noise.Octaves < 1 {
			errs = append(errs, fmt.Errorf("%w: noise octaves %d must be at least 1", ErrInvalidConfig, w.Noise.Octaves))
		}
		if w.Noise.Scale <= 0 {
			errs = append(errs, fmt.Errorf("%w: noise scale %v must be positive", ErrInvalidConfig, w.Noise.Scale))
		}
	case GeneratorFlat:
		if w.FlatHeight < 0 {
			errs = append(errs, fmt.Errorf("%w: flat_height %d is negative", ErrInvalidConfig, w.FlatHeight))
		}
	case GeneratorFill:
		if w.FillBlock == "" {
			errs = append(errs, fmt.Errorf("%w: fill generator needs fill_block", ErrInvalidConfig))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown generator %q", ErrInvalidConfig, w.Generator))
	}
	return errs
}

// Dimensions returns the configured chunk size.
func (w WorldConfig) Dimensions() world.Dimensions {
	return world.Dimensions{X: w.Size.X, Y: w.Size.Y, Z: w.Size.Z}
}

// Coords lists every chunk coordinate to generate.
func (w WorldConfig) Coords() []world.ChunkCoord {
	lo := world.ChunkCoord{X: w.ChunksMin.X, Y: w.ChunksMin.Y, Z: w.ChunksMin.Z}
	hi := world.ChunkCoord{X: w.ChunksMax.X, Y: w.ChunksMax.Y, Z: w.ChunksMax.Z}
	return world.CoordsInBox(lo, hi)
}

// NoiseParams converts the noise section to generator parameters.
func (w WorldConfig) NoiseParams() world.NoiseParams {
	return world.NoiseParams{
		Alpha:      w.Noise.Alpha,
		Beta:       w.Noise.Beta,
		Octaves:    w.Noise.Octaves,
		Scale:      w.Noise.Scale,
		BaseHeight: w.Noise.BaseHeight,
		Amplitude:  w.Noise.Amplitude,
		SeaLevel:   w.Noise.SeaLevel,
		DirtDepth:  w.Noise.DirtDepth,
	}
}

// NewGenerator builds the configured terrain generator. The fill block is
// resolved by name through reg.
func (w WorldConfig) NewGenerator(reg *registry.Registry) (world.TerrainGenerator, error) {
	switch strings.ToLower(w.Generator) {
	case GeneratorNoise:
		return world.NewNoiseGenerator(w.Seed, w.NoiseParams()), nil
	case GeneratorFlat:
		return world.NewFlatGenerator(w.FlatHeight), nil
	case GeneratorFill:
		t, err := reg.ByName(w.FillBlock)
		if err != nil {
			return nil, fmt.Errorf("fill_block: %w", err)
		}
		return world.NewConstantGenerator(t), nil
	default:
		return nil, fmt.Errorf("%w: unknown generator %q", ErrInvalidConfig, w.Generator)
	}
}
