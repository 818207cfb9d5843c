package scene

import (
	"context"
	"testing"

	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// smallConfig generates two 4x8x4 chunks of flat terrain three cells deep.
func smallConfig() config.Config {
	cfg := config.Default()
	cfg.World.Size = config.Extent{X: 4, Y: 8, Z: 4}
	cfg.World.ChunksMin = config.Extent{}
	cfg.World.ChunksMax = config.Extent{X: 1}
	cfg.World.Generator = config.GeneratorFlat
	cfg.World.FlatHeight = 2
	cfg.Meshing.Workers = 2
	return cfg
}

func build(t *testing.T, cfg config.Config) *Scene {
	t.Helper()
	s, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestBuildMeshesEveryChunk(t *testing.T) {
	s := build(t, smallConfig())

	require.Len(t, s.Meshes, 2)
	assert.Equal(t, 2, s.Stats.Chunks)
	assert.Equal(t, 96, s.Stats.Voxels)
	// each chunk is a solid 4x3x4 box
	assert.Equal(t, 160, s.Stats.Faces)
	assert.Equal(t, 160*meshing.VerticesPerFace, s.Stats.Vertices)
	assert.Empty(t, s.Store.DirtyChunks())

	for coord, m := range s.Meshes {
		assert.NoError(t, m.Validate(), "chunk %v", coord)
	}
}

func TestPerVoxelMatchesChunkMeshing(t *testing.T) {
	whole := build(t, smallConfig())

	cfg := smallConfig()
	cfg.Meshing.PerVoxel = true
	per := build(t, cfg)

	assert.Equal(t, whole.Stats.Faces, per.Stats.Faces)
	for coord, m := range whole.Meshes {
		assert.Equal(t, m.Positions, per.Meshes[coord].Positions, "chunk %v", coord)
	}
	assert.Empty(t, per.Store.DirtyChunks())
}

func TestRebuildOnlyTouchesDirtyChunks(t *testing.T) {
	s := build(t, smallConfig())
	untouched := s.Meshes[world.ChunkCoord{X: 1}]

	require.NoError(t, s.Store.Set(world.Pos(0, 6, 0), world.NewVoxel(world.BlockTypeStone, true)))
	require.NoError(t, s.Rebuild(context.Background()))

	assert.Equal(t, 86, s.Meshes[world.ChunkCoord{}].FaceCount())
	assert.Same(t, untouched, s.Meshes[world.ChunkCoord{X: 1}])
	assert.Equal(t, 166, s.Stats.Faces)
}

func TestOffsetFollowsSpace(t *testing.T) {
	coord := world.ChunkCoord{X: 1}

	s := build(t, smallConfig())
	assert.Equal(t, world.Position{}, s.Offset(coord))

	cfg := smallConfig()
	cfg.Meshing.Space = "local"
	local := build(t, cfg)
	assert.Equal(t, world.Pos(4, 0, 0), local.Offset(coord))
}

func TestSetTexture(t *testing.T) {
	s := build(t, smallConfig())
	s.SetTexture(7)
	for _, m := range s.Meshes {
		assert.Equal(t, meshing.TextureHandle(7), m.Texture)
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Meshing.Space = "screen"
	_, err := Build(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = smallConfig()
	cfg.Atlas.Columns, cfg.Atlas.Rows = 1, 1
	_, err = Build(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = smallConfig()
	cfg.World.Generator = config.GeneratorFill
	cfg.World.FillBlock = "unobtainium"
	_, err = Build(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, registry.ErrUnknownBlockType)
}
