package registry

import (
	"testing"

	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	types := r.Types()
	require.Len(t, types, len(DefaultBlocks)+1)
	for i, bt := range types {
		assert.Equal(t, world.BlockType(i), bt)
	}
	assert.Equal(t, 12, r.CellCount())

	grass, err := r.Lookup(world.BlockTypeGrass)
	require.NoError(t, err)
	assert.Equal(t, ShapeCube, grass.Shape)
	assert.True(t, grass.Opaque)
	assert.Equal(t, 0, grass.Cell(world.FaceTop))
	assert.Equal(t, 1, grass.Cell(world.FaceNorth))
	assert.Equal(t, 2, grass.Cell(world.FaceBottom))

	dirt, err := r.Lookup(world.BlockTypeDirt)
	require.NoError(t, err)
	for _, face := range world.AllFaces {
		assert.Equal(t, 2, dirt.Cell(face), "dirt reuses the grass bottom texture")
	}

	water, err := r.Lookup(world.BlockTypeWater)
	require.NoError(t, err)
	assert.False(t, water.Opaque)
	assert.True(t, water.Transparent)
	assert.Equal(t, water.Cell(world.FaceTop), water.Cell(world.FaceBottom))
	assert.NotEqual(t, water.Cell(world.FaceTop), water.Cell(world.FaceEast))
}

func TestAirIsPreRegistered(t *testing.T) {
	r := New()
	air, err := r.Lookup(world.BlockTypeAir)
	require.NoError(t, err)
	assert.Equal(t, ShapeNone, air.Shape)
	assert.False(t, air.Opaque)
	assert.False(t, r.IsOpaque(world.BlockTypeAir))

	at, err := r.ByName("air")
	require.NoError(t, err)
	assert.Equal(t, world.BlockTypeAir, at)
}

func TestLookupUnknown(t *testing.T) {
	r := Default()
	_, err := r.Lookup(world.BlockType(999))
	assert.ErrorIs(t, err, ErrUnknownBlockType)
	assert.False(t, r.IsOpaque(world.BlockType(999)))

	_, err = r.ByName("obsidian")
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestRegisterDuplicate(t *testing.T) {
	r := Default()
	err := r.Register(BlockDefinition{ID: world.BlockTypeStone, Name: "granite", TextureTop: "granite.png"})
	assert.ErrorIs(t, err, ErrDuplicateBlockType)

	err = r.Register(BlockDefinition{ID: 200, Name: "stone", TextureTop: "granite.png"})
	assert.ErrorIs(t, err, ErrDuplicateBlockType)

	_, err = FromDefinitions(append(DefaultBlocks, DefaultBlocks[0]))
	assert.ErrorIs(t, err, ErrDuplicateBlockType)
}

func TestNoGeometryAssignsNoCells(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(BlockDefinition{ID: 42, Name: "barrier", TextureTop: "barrier.png", IsOpaque: true, NoGeometry: true}))

	m, err := r.Lookup(42)
	require.NoError(t, err)
	assert.Equal(t, ShapeNone, m.Shape)
	assert.False(t, m.Opaque)
	assert.Zero(t, r.CellCount())
}

func TestTextureNamesIsACopy(t *testing.T) {
	r := Default()
	names := r.TextureNames()
	require.NotEmpty(t, names)
	assert.Equal(t, "grass_top.png", names[0])
	names[0] = "changed"
	assert.Equal(t, "grass_top.png", r.TextureNames()[0])
}

func TestUniform(t *testing.T) {
	u := NewUniform()

	m, err := u.Lookup(world.BlockTypeSand)
	require.NoError(t, err)
	assert.Equal(t, world.BlockTypeSand, m.ID)
	assert.Equal(t, ShapeCube, m.Shape)
	assert.True(t, u.IsOpaque(world.BlockTypeSand))

	air, err := u.Lookup(world.BlockTypeAir)
	require.NoError(t, err)
	assert.Equal(t, ShapeNone, air.Shape)
	assert.False(t, u.IsOpaque(world.BlockTypeAir))
}
