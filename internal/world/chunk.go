package world

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16
)

var (
	ErrOutOfBounds       = errors.New("position outside chunk bounds")
	ErrInvalidDimensions = errors.New("chunk dimensions must be positive")
	ErrChunkMismatch     = errors.New("chunk does not match store layout")
)

// Dimensions is the cell extent of a chunk along each axis.
type Dimensions struct {
	X, Y, Z int
}

// DefaultDimensions is the classic 16x256x16 column.
var DefaultDimensions = Dimensions{X: ChunkSizeX, Y: ChunkSizeY, Z: ChunkSizeZ}

// Validate reports ErrInvalidDimensions unless every axis is positive.
func (d Dimensions) Validate() error {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return fmt.Errorf("%w: got %dx%dx%d", ErrInvalidDimensions, d.X, d.Y, d.Z)
	}
	return nil
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

// Volume returns the number of cells.
func (d Dimensions) Volume() int {
	return d.X * d.Y * d.Z
}

// Contains reports whether local position p lies in [0,dim) on every axis.
func (d Dimensions) Contains(p Position) bool {
	return p.X >= 0 && p.X < d.X &&
		p.Y >= 0 && p.Y < d.Y &&
		p.Z >= 0 && p.Z < d.Z
}

// Chunk is a fixed-size region of voxels keyed by local position.
// Cells that were never set are absent; absence and an explicit Air voxel
// both leave a neighbouring face visible.
type Chunk struct {
	origin Position
	dims   Dimensions
	voxels map[Position]Voxel
	dirty  bool
}

// NewChunk creates an empty chunk whose (0,0,0) cell sits at origin.
func NewChunk(origin Position, dims Dimensions) (*Chunk, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &Chunk{
		origin: origin,
		dims:   dims,
		voxels: make(map[Position]Voxel),
		dirty:  true,
	}, nil
}

// Origin returns the world-space position of the chunk's local (0,0,0).
func (c *Chunk) Origin() Position {
	return c.origin
}

// Dimensions returns the chunk extent.
func (c *Chunk) Dimensions() Dimensions {
	return c.dims
}

// Contains reports whether local lies inside the chunk.
func (c *Chunk) Contains(local Position) bool {
	return c.dims.Contains(local)
}

// Get returns the voxel stored at local, if any.
func (c *Chunk) Get(local Position) (Voxel, bool) {
	v, ok := c.voxels[local]
	return v, ok
}

// Set stores v at local. The stored voxel gets its Local and World
// positions from the chunk, and Air is never stored as opaque.
func (c *Chunk) Set(local Position, v Voxel) error {
	if !c.dims.Contains(local) {
		return fmt.Errorf("set %v in %dx%dx%d chunk: %w", local, c.dims.X, c.dims.Y, c.dims.Z, ErrOutOfBounds)
	}
	v.Local = local
	v.World = c.origin.Add(local)
	if v.IsEmpty() {
		v.Opaque = false
	}
	c.voxels[local] = v
	c.dirty = true
	return nil
}

// Remove clears the cell at local so it becomes absent.
func (c *Chunk) Remove(local Position) error {
	if !c.dims.Contains(local) {
		return fmt.Errorf("remove %v in %dx%dx%d chunk: %w", local, c.dims.X, c.dims.Y, c.dims.Z, ErrOutOfBounds)
	}
	if _, ok := c.voxels[local]; ok {
		delete(c.voxels, local)
		c.dirty = true
	}
	return nil
}

// Len returns the number of stored cells, including explicit Air.
func (c *Chunk) Len() int {
	return len(c.voxels)
}

// Positions returns every stored local position in X, Y, Z order.
func (c *Chunk) Positions() []Position {
	out := make([]Position, 0, len(c.voxels))
	for p := range c.voxels {
		out = append(out, p)
	}
	slices.SortFunc(out, Position.Compare)
	return out
}

// IsDirty returns whether the chunk has been modified since last render
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as clean (not modified)
func (c *Chunk) SetClean() {
	c.dirty = false
}
