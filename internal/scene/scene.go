// Package scene builds the voxel world and its meshes from a configuration.
package scene

import (
	"context"
	"fmt"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"go.uber.org/zap"
)

// Scene holds everything the viewer needs to draw the world.
type Scene struct {
	Registry *registry.Registry
	Atlas    registry.Atlas
	Store    *world.ChunkStore
	Mesher   *meshing.Mesher
	Pool     *meshing.WorkerPool
	Space    meshing.Space
	Meshes   map[world.ChunkCoord]*meshing.Mesh
	Stats    Stats
}

// Stats summarises one build.
type Stats struct {
	Chunks   int
	Voxels   int
	Faces    int
	Vertices int
	Generate time.Duration
	Mesh     time.Duration
}

// Build generates the configured chunks and meshes them on a worker pool.
// The caller owns the returned scene and must Close it.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Scene, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	atlas, err := cfg.NewAtlas(reg)
	if err != nil {
		return nil, err
	}
	space, err := config.ParseSpace(cfg.Meshing.Space)
	if err != nil {
		return nil, err
	}
	gen, err := cfg.World.NewGenerator(reg)
	if err != nil {
		return nil, err
	}
	store, err := world.NewChunkStore(cfg.World.Dimensions())
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Registry: reg,
		Atlas:    atlas,
		Store:    store,
		Space:    space,
	}

	start := time.Now()
	coords := cfg.World.Coords()
	if err := store.Generate(gen, reg, coords...); err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}
	s.Stats.Generate = time.Since(start)
	logger.Info("world generated",
		zap.String("generator", cfg.World.Generator),
		zap.Int64("seed", cfg.World.Seed),
		zap.Int("chunks", len(coords)),
		zap.Stringer("chunk_size", store.Dimensions()),
		zap.Duration("elapsed", s.Stats.Generate))

	s.Mesher = meshing.NewMesher(reg,
		meshing.WithAtlas(atlas),
		meshing.WithSpace(space),
		meshing.WithLogger(logger.Named("mesher")),
	)
	s.Pool = meshing.NewWorkerPool(s.Mesher, cfg.Meshing.Workers, cfg.Meshing.QueueSize)

	if cfg.Meshing.PerVoxel {
		err = s.buildPerVoxel()
	} else {
		err = s.Rebuild(ctx)
	}
	if err != nil {
		s.Close()
		return nil, err
	}

	logger.Info("world meshed",
		zap.Int("chunks", s.Stats.Chunks),
		zap.Int("voxels", s.Stats.Voxels),
		zap.Int("faces", s.Stats.Faces),
		zap.Int("vertices", s.Stats.Vertices),
		zap.Bool("per_voxel", cfg.Meshing.PerVoxel),
		zap.Duration("elapsed", s.Stats.Mesh))
	return s, nil
}

// Rebuild re-meshes the dirty chunks and merges them into Meshes.
func (s *Scene) Rebuild(ctx context.Context) error {
	start := time.Now()
	meshes, err := s.Pool.RebuildDirty(ctx, s.Store)
	if err != nil {
		return fmt.Errorf("mesh world: %w", err)
	}
	if s.Meshes == nil {
		s.Meshes = make(map[world.ChunkCoord]*meshing.Mesh, len(meshes))
	}
	for coord, m := range meshes {
		s.Meshes[coord] = m
	}
	s.Stats.Mesh = time.Since(start)
	s.refreshCounts()
	return nil
}

// buildPerVoxel meshes every chunk one voxel at a time and concatenates the
// results, so the viewer still uploads one buffer per chunk.
func (s *Scene) buildPerVoxel() error {
	start := time.Now()
	s.Meshes = make(map[world.ChunkCoord]*meshing.Mesh)
	for _, cc := range s.Store.AllChunks() {
		per, err := s.Mesher.BuildPerVoxel(cc.Chunk)
		if err != nil {
			return fmt.Errorf("mesh %v: %w", cc.Coord, err)
		}
		s.Meshes[cc.Coord] = meshing.Concat(per)
		cc.Chunk.SetClean()
	}
	s.Stats.Mesh = time.Since(start)
	s.refreshCounts()
	return nil
}

func (s *Scene) refreshCounts() {
	s.Stats.Chunks = len(s.Meshes)
	s.Stats.Faces, s.Stats.Vertices, s.Stats.Voxels = 0, 0, 0
	for _, m := range s.Meshes {
		s.Stats.Faces += m.FaceCount()
		s.Stats.Vertices += m.VertexCount()
	}
	for _, cc := range s.Store.AllChunks() {
		s.Stats.Voxels += cc.Chunk.Len()
	}
}

// Offset returns the translation the renderer applies to a chunk mesh.
func (s *Scene) Offset(coord world.ChunkCoord) world.Position {
	if s.Space == meshing.SpaceWorld {
		return world.Position{}
	}
	return coord.Origin(s.Store.Dimensions())
}

// SetTexture attaches h to every mesh built so far.
func (s *Scene) SetTexture(h meshing.TextureHandle) {
	for _, m := range s.Meshes {
		m.Texture = h
	}
}

// Close stops the meshing workers.
func (s *Scene) Close() {
	if s.Pool != nil {
		s.Pool.Shutdown()
	}
}
