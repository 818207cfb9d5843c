package world

import (
	"fmt"
	"slices"
	"sync"

	"mini-voxel/internal/profiling"
)

// ChunkStore manages the storage and retrieval of chunks.
type ChunkStore struct {
	dims Dimensions

	// Map of chunks indexed by their coordinates
	chunks map[ChunkCoord]*Chunk
	mu     sync.RWMutex
}

// ChunkWithCoord pairs a chunk with its store key.
type ChunkWithCoord struct {
	Coord ChunkCoord
	Chunk *Chunk
}

// NewChunkStore creates a new chunk store whose chunks all share dims.
func NewChunkStore(dims Dimensions) (*ChunkStore, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &ChunkStore{
		dims:   dims,
		chunks: make(map[ChunkCoord]*Chunk),
	}, nil
}

// Dimensions returns the extent shared by every chunk in the store.
func (cs *ChunkStore) Dimensions() Dimensions {
	return cs.dims
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, it will be created (but NOT populated).
func (cs *ChunkStore) GetChunk(coord ChunkCoord, create bool) *Chunk {
	cs.mu.RLock()
	chunk, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	if exists || !create {
		return chunk
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	// Another goroutine might have created it while we were waiting for the lock
	if existing, ok := cs.chunks[coord]; ok {
		return existing
	}
	// dims were validated by NewChunkStore
	chunk, _ = NewChunk(coord.Origin(cs.dims), cs.dims)
	cs.chunks[coord] = chunk
	return chunk
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// AddChunk adds a pre-generated chunk to the store. The chunk must have the
// store's dimensions and the origin implied by coord.
func (cs *ChunkStore) AddChunk(coord ChunkCoord, chunk *Chunk) error {
	if chunk.Dimensions() != cs.dims {
		return fmt.Errorf("add %v: dimensions %v, store uses %v: %w", coord, chunk.Dimensions(), cs.dims, ErrChunkMismatch)
	}
	if want := coord.Origin(cs.dims); chunk.Origin() != want {
		return fmt.Errorf("add %v: origin %v, expected %v: %w", coord, chunk.Origin(), want, ErrChunkMismatch)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.chunks[coord] = chunk
	return nil
}

// Get returns the voxel at the specified world position.
func (cs *ChunkStore) Get(p Position) (Voxel, bool) {
	chunk := cs.GetChunk(ChunkCoordFor(p, cs.dims), false)
	if chunk == nil {
		return Voxel{}, false
	}
	return chunk.Get(cs.toLocal(p))
}

// Set stores v at the specified world position, creating the owning chunk if needed.
func (cs *ChunkStore) Set(p Position, v Voxel) error {
	chunk := cs.GetChunk(ChunkCoordFor(p, cs.dims), true)
	return chunk.Set(cs.toLocal(p), v)
}

func (cs *ChunkStore) toLocal(p Position) Position {
	return Position{
		X: mod(p.X, cs.dims.X),
		Y: mod(p.Y, cs.dims.Y),
		Z: mod(p.Z, cs.dims.Z),
	}
}

// Len returns the number of chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// AllChunks returns every chunk ordered by coordinate.
func (cs *ChunkStore) AllChunks() []ChunkWithCoord {
	cs.mu.RLock()
	chunks := make([]ChunkWithCoord, 0, len(cs.chunks))
	for coord, chunk := range cs.chunks {
		chunks = append(chunks, ChunkWithCoord{Chunk: chunk, Coord: coord})
	}
	cs.mu.RUnlock()

	slices.SortFunc(chunks, func(a, b ChunkWithCoord) int {
		return a.Coord.Compare(b.Coord)
	})
	return chunks
}

// DirtyChunks returns the chunks modified since their last successful mesh.
func (cs *ChunkStore) DirtyChunks() []ChunkWithCoord {
	all := cs.AllChunks()
	dirty := all[:0]
	for _, cc := range all {
		if cc.Chunk.IsDirty() {
			dirty = append(dirty, cc)
		}
	}
	return dirty
}

// Generate creates (or reuses) the chunks at coords and fills them with gen.
func (cs *ChunkStore) Generate(gen TerrainGenerator, opacity Opacity, coords ...ChunkCoord) error {
	defer profiling.Track("world.Generate")()
	for _, coord := range coords {
		chunk := cs.GetChunk(coord, true)
		if err := gen.PopulateChunk(chunk, opacity); err != nil {
			return fmt.Errorf("populate %v: %w", coord, err)
		}
	}
	return nil
}

// CoordsInBox lists chunk coordinates from lo to hi inclusive, in store order.
func CoordsInBox(lo, hi ChunkCoord) []ChunkCoord {
	var coords []ChunkCoord
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				coords = append(coords, ChunkCoord{X: x, Y: y, Z: z})
			}
		}
	}
	return coords
}
