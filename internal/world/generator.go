package world

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// Opacity tells generators whether a block type hides its neighbours.
type Opacity interface {
	IsOpaque(t BlockType) bool
}

// OpacityFunc adapts a plain function to Opacity.
type OpacityFunc func(t BlockType) bool

func (f OpacityFunc) IsOpaque(t BlockType) bool { return f(t) }

// TerrainGenerator fills chunks with voxels.
type TerrainGenerator interface {
	PopulateChunk(c *Chunk, o Opacity) error
}

// Heightmap is implemented by generators with a single surface per column.
type Heightmap interface {
	// HeightAt returns the surface block Y at world X,Z.
	HeightAt(worldX, worldZ int) int
}

// FillRule picks the block type of a world-space cell. Air leaves the cell absent.
type FillRule func(p Position) BlockType

// FillGenerator applies a FillRule to every cell of a chunk.
type FillGenerator struct {
	Rule FillRule
}

// NewFillGenerator creates a generator driven by a per-cell rule.
func NewFillGenerator(rule FillRule) *FillGenerator {
	return &FillGenerator{Rule: rule}
}

// NewConstantGenerator fills every cell with t.
func NewConstantGenerator(t BlockType) *FillGenerator {
	return NewFillGenerator(func(Position) BlockType { return t })
}

// PopulateChunk evaluates the rule for every cell in the chunk.
func (g *FillGenerator) PopulateChunk(c *Chunk, o Opacity) error {
	d := c.Dimensions()
	origin := c.Origin()
	for lx := 0; lx < d.X; lx++ {
		for ly := 0; ly < d.Y; ly++ {
			for lz := 0; lz < d.Z; lz++ {
				local := Pos(lx, ly, lz)
				if err := place(c, local, g.Rule(origin.Add(local)), o); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// FlatGenerator builds a flat world: bedrock at y=0, dirt, grass on top.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a flat terrain whose grass layer is at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.height
}

func (g *FlatGenerator) PopulateChunk(c *Chunk, o Opacity) error {
	return populateColumns(c, o, g.HeightAt, func(worldY, height int) BlockType {
		switch {
		case worldY == 0:
			return BlockTypeBedrock
		case worldY < height:
			return BlockTypeDirt
		default:
			return BlockTypeGrass
		}
	})
}

// NoiseParams tunes the Perlin heightmap.
type NoiseParams struct {
	Alpha      float64
	Beta       float64
	Octaves    int32
	Scale      float64
	BaseHeight int
	Amplitude  float64
	SeaLevel   int
	DirtDepth  int
}

// DefaultNoiseParams matches the rolling hills the demo shipped with.
var DefaultNoiseParams = NoiseParams{
	Alpha:      2,
	Beta:       2,
	Octaves:    3,
	Scale:      1.0 / 32.0,
	BaseHeight: 32,
	Amplitude:  16,
	SeaLevel:   28,
	DirtDepth:  3,
}

// NoiseGenerator handles heightmap terrain generation.
type NoiseGenerator struct {
	seed   int64
	params NoiseParams
	noise  *perlin.Perlin
}

// NewNoiseGenerator creates a deterministic heightmap generator for seed.
func NewNoiseGenerator(seed int64, params NoiseParams) *NoiseGenerator {
	return &NoiseGenerator{
		seed:   seed,
		params: params,
		noise:  perlin.NewPerlin(params.Alpha, params.Beta, params.Octaves, seed),
	}
}

// Seed returns the seed the generator was built with.
func (g *NoiseGenerator) Seed() int64 {
	return g.seed
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *NoiseGenerator) HeightAt(worldX, worldZ int) int {
	n := g.noise.Noise2D(float64(worldX)*g.params.Scale, float64(worldZ)*g.params.Scale)
	height := float64(g.params.BaseHeight) + n*g.params.Amplitude
	if height < 0 {
		height = 0
	}
	return int(math.Floor(height))
}

// PopulateChunk fills a chunk using noise heightmap.
func (g *NoiseGenerator) PopulateChunk(c *Chunk, o Opacity) error {
	p := g.params
	return populateColumns(c, o, g.HeightAt, func(worldY, height int) BlockType {
		switch {
		case worldY == 0:
			return BlockTypeBedrock
		case worldY < height-p.DirtDepth:
			return BlockTypeStone
		case height <= p.SeaLevel:
			return BlockTypeSand
		case worldY < height:
			return BlockTypeDirt
		default:
			return BlockTypeGrass
		}
	})
}

// populateColumns fills every column of c from world y=0 up to the surface
// height, asking pick for the type of each cell.
func populateColumns(c *Chunk, o Opacity, heightAt func(x, z int) int, pick func(worldY, height int) BlockType) error {
	d := c.Dimensions()
	origin := c.Origin()
	for lx := 0; lx < d.X; lx++ {
		for lz := 0; lz < d.Z; lz++ {
			worldX := origin.X + lx
			worldZ := origin.Z + lz
			height := heightAt(worldX, worldZ)

			top := min(height-origin.Y, d.Y-1)
			bottom := max(-origin.Y, 0)
			for ly := bottom; ly <= top; ly++ {
				if err := place(c, Pos(lx, ly, lz), pick(origin.Y+ly, height), o); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func place(c *Chunk, local Position, t BlockType, o Opacity) error {
	if t.IsEmpty() {
		return nil
	}
	return c.Set(local, NewVoxel(t, o.IsOpaque(t)))
}
