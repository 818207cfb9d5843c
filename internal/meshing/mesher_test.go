package meshing

import (
	"testing"

	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stone() world.Voxel {
	return world.NewVoxel(world.BlockTypeStone, true)
}

func glass() world.Voxel {
	return world.NewVoxel(world.BlockTypeGlass, false)
}

func newChunk(t testing.TB, x, y, z int) *world.Chunk {
	t.Helper()
	c, err := world.NewChunk(world.Position{}, world.Dimensions{X: x, Y: y, Z: z})
	require.NoError(t, err)
	return c
}

func fillChunk(t testing.TB, c *world.Chunk, v world.Voxel) {
	t.Helper()
	d := c.Dimensions()
	for x := 0; x < d.X; x++ {
		for y := 0; y < d.Y; y++ {
			for z := 0; z < d.Z; z++ {
				require.NoError(t, c.Set(world.Pos(x, y, z), v))
			}
		}
	}
}

func build(t *testing.T, m *Mesher, c *world.Chunk) *Mesh {
	t.Helper()
	mesh, err := m.BuildChunk(c)
	require.NoError(t, err)
	require.NoError(t, mesh.Validate())
	return mesh
}

func TestFullChunkEmitsOnlyBoundaryFaces(t *testing.T) {
	cases := []world.Dimensions{
		{X: 1, Y: 1, Z: 1},
		{X: 2, Y: 2, Z: 2},
		{X: 3, Y: 1, Z: 2},
		{X: 4, Y: 5, Z: 6},
		world.DefaultDimensions,
	}
	m := NewMesher(registry.Default())
	for _, d := range cases {
		t.Run(d.String(), func(t *testing.T) {
			c := newChunk(t, d.X, d.Y, d.Z)
			fillChunk(t, c, stone())
			mesh := build(t, m, c)

			want := 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
			assert.Equal(t, want, mesh.FaceCount())
			assert.Equal(t, want*VerticesPerFace, mesh.VertexCount())
			assert.Len(t, mesh.Indices, want*IndicesPerFace)
		})
	}
}

func TestEmptyChunkIsValidEmptyMesh(t *testing.T) {
	c := newChunk(t, 4, 4, 4)
	mesh := build(t, NewMesher(registry.Default()), c)
	assert.True(t, mesh.IsEmpty())
	assert.Zero(t, mesh.VertexCount())
	assert.Empty(t, mesh.Indices)
}

func TestAirOnlyChunkIsEmpty(t *testing.T) {
	c := newChunk(t, 2, 2, 2)
	fillChunk(t, c, world.NewVoxel(world.BlockTypeAir, true))
	mesh := build(t, NewMesher(registry.Default()), c)
	assert.True(t, mesh.IsEmpty())
}

func TestSingleVoxel(t *testing.T) {
	c := newChunk(t, 2, 2, 2)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))

	mesh := build(t, NewMesher(registry.Default()), c)
	assert.Equal(t, 6, mesh.FaceCount())
	assert.Equal(t, 24, mesh.VertexCount())
	assert.Len(t, mesh.Indices, 36)
}

func TestSingleVoxelSurroundedByAir(t *testing.T) {
	c := newChunk(t, 3, 3, 3)
	fillChunk(t, c, world.NewVoxel(world.BlockTypeAir, false))
	require.NoError(t, c.Set(world.Pos(1, 1, 1), stone()))

	mesh := build(t, NewMesher(registry.Default()), c)
	assert.Equal(t, 6, mesh.FaceCount())
}

func TestAdjacentOpaqueVoxelsCullSharedFace(t *testing.T) {
	c := newChunk(t, 2, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))
	require.NoError(t, c.Set(world.Pos(1, 0, 0), stone()))

	m := NewMesher(registry.Default())
	mesh := build(t, m, c)
	assert.Equal(t, 10, mesh.FaceCount())

	left, err := m.VisibleFaces(c, world.Pos(0, 0, 0))
	require.NoError(t, err)
	right, err := m.VisibleFaces(c, world.Pos(1, 0, 0))
	require.NoError(t, err)
	assert.False(t, left.Has(world.FaceEast))
	assert.False(t, right.Has(world.FaceWest))
	assert.Equal(t, 5, left.Count())
	assert.Equal(t, 5, right.Count())
}

func TestTransparentNeighborDoesNotCull(t *testing.T) {
	c := newChunk(t, 2, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))
	require.NoError(t, c.Set(world.Pos(1, 0, 0), glass()))

	m := NewMesher(registry.Default())
	stoneFaces, err := m.VisibleFaces(c, world.Pos(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, AllFaceSet, stoneFaces)

	// Stone still hides the glass face that touches it.
	glassFaces, err := m.VisibleFaces(c, world.Pos(1, 0, 0))
	require.NoError(t, err)
	assert.False(t, glassFaces.Has(world.FaceWest))

	mesh := build(t, m, c)
	assert.Equal(t, 11, mesh.FaceCount())
}

func TestHiddenNeighborStillCulls(t *testing.T) {
	c := newChunk(t, 2, 1, 1)
	hidden := stone()
	hidden.Visible = false
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))
	require.NoError(t, c.Set(world.Pos(1, 0, 0), hidden))

	m := NewMesher(registry.Default())
	faces, err := m.VisibleFaces(c, world.Pos(0, 0, 0))
	require.NoError(t, err)
	assert.False(t, faces.Has(world.FaceEast))

	mesh := build(t, m, c)
	assert.Equal(t, 5, mesh.FaceCount(), "hidden voxel emits nothing but still occludes")
}

func TestHiddenVoxelEmitsNothing(t *testing.T) {
	c := newChunk(t, 1, 1, 1)
	v := stone()
	v.Visible = false
	require.NoError(t, c.Set(world.Pos(0, 0, 0), v))

	m := NewMesher(registry.Default())
	assert.True(t, build(t, m, c).IsEmpty())

	faces, err := m.VisibleFaces(c, world.Pos(0, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, faces.Count())
}

func TestUnknownTypeFailsWithInvalidBlockType(t *testing.T) {
	c := newChunk(t, 1, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))

	m := NewMesher(registry.New())
	_, err := m.BuildChunk(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBlockType)
	assert.ErrorIs(t, err, registry.ErrUnknownBlockType)

	_, err = m.BuildPerVoxel(c)
	assert.ErrorIs(t, err, ErrInvalidBlockType)

	_, err = m.VisibleFaces(c, world.Pos(0, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidBlockType)
}

func TestShapelessTypeFailsWithInvalidBlockType(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register(registry.BlockDefinition{
		ID:         world.BlockTypeStone,
		Name:       "marker",
		IsOpaque:   true,
		NoGeometry: true,
	}))
	c := newChunk(t, 1, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))

	_, err := NewMesher(r).BuildChunk(c)
	assert.ErrorIs(t, err, ErrInvalidBlockType)
}

func TestFaceCountBound(t *testing.T) {
	c := newChunk(t, 4, 4, 4)
	visible := 0
	for _, p := range []world.Position{world.Pos(0, 0, 0), world.Pos(1, 0, 0), world.Pos(2, 2, 2), world.Pos(3, 3, 3), world.Pos(3, 2, 3)} {
		require.NoError(t, c.Set(p, stone()))
		visible++
	}
	mesh := build(t, NewMesher(registry.Default()), c)
	assert.Less(t, mesh.FaceCount(), 6*visible)
}

// Every triangle must wind counter-clockwise around its face normal when
// seen from outside, and sit on the outer side of the voxel.
func TestWindingIsOutward(t *testing.T) {
	c := newChunk(t, 1, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))
	mesh := build(t, NewMesher(registry.Default()), c)
	require.Equal(t, 6, mesh.FaceCount())

	for tri := 0; tri < len(mesh.Indices); tri += 3 {
		a := mesh.Positions[mesh.Indices[tri]]
		b := mesh.Positions[mesh.Indices[tri+1]]
		cc := mesh.Positions[mesh.Indices[tri+2]]
		n := mesh.Normals[mesh.Indices[tri]]

		cross := b.Sub(a).Cross(cc.Sub(a))
		assert.Greater(t, cross.Dot(n), float32(0), "triangle %d winds clockwise", tri/3)
		assert.InDelta(t, 0.5, a.Dot(n), 1e-6, "triangle %d not on the outer face", tri/3)
	}
}

func TestFaceOrderAndNormals(t *testing.T) {
	c := newChunk(t, 1, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))
	mesh := build(t, NewMesher(registry.Default()), c)

	for i, face := range world.AllFaces {
		for k := 0; k < VerticesPerFace; k++ {
			n := mesh.Normals[i*VerticesPerFace+k]
			assert.Equal(t, face.Normal(), n, "face %v", face)
			assert.InDelta(t, 1, n.Len(), 1e-6)
		}
	}
	assert.Equal(t, []uint32{0, 3, 1, 1, 3, 2}, mesh.Indices[:IndicesPerFace])
	assert.Equal(t, []uint32{4, 7, 5, 5, 7, 6}, mesh.Indices[IndicesPerFace:2*IndicesPerFace])
}

func TestFixedQuadUVs(t *testing.T) {
	c := newChunk(t, 1, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))
	mesh := build(t, NewMesher(registry.Default()), c)

	assert.Equal(t, []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, mesh.UVs[:4])
}

func TestAtlasRemapsFaceUVs(t *testing.T) {
	reg := registry.Default()
	atlas := registry.AtlasFor(reg)
	require.Equal(t, 4, atlas.Columns)

	c := newChunk(t, 1, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), world.NewVoxel(world.BlockTypeGrass, true)))
	mesh := build(t, NewMesher(reg, WithAtlas(atlas)), c)

	grass, err := reg.Lookup(world.BlockTypeGrass)
	require.NoError(t, err)

	for i, face := range world.AllFaces {
		lo, hi, err := atlas.CellUV(grass.Cell(face))
		require.NoError(t, err)
		uvs := mesh.UVs[i*VerticesPerFace : (i+1)*VerticesPerFace]
		assert.InDelta(t, lo.X(), uvs[0].X(), 1e-6, "face %v", face)
		assert.InDelta(t, lo.Y(), uvs[0].Y(), 1e-6, "face %v", face)
		assert.InDelta(t, hi.X(), uvs[2].X(), 1e-6, "face %v", face)
		assert.InDelta(t, hi.Y(), uvs[2].Y(), 1e-6, "face %v", face)
	}

	// grass_top is cell 0, grass_side cell 1.
	top := mesh.UVs[2*VerticesPerFace]
	east := mesh.UVs[0]
	assert.InDelta(t, 0, top.X(), 1e-6)
	assert.InDelta(t, 0.25, east.X(), 1e-6)
}

func TestAtlasTooSmallFails(t *testing.T) {
	small, err := registry.NewAtlas(1, 1)
	require.NoError(t, err)
	c := newChunk(t, 1, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))

	_, err = NewMesher(registry.Default(), WithAtlas(small)).BuildChunk(c)
	assert.ErrorIs(t, err, registry.ErrCellOutOfRange)
}

func TestWorldSpaceOffsetsByOrigin(t *testing.T) {
	origin := world.Pos(16, 0, 32)
	c, err := world.NewChunk(origin, world.Dimensions{X: 4, Y: 4, Z: 4})
	require.NoError(t, err)
	require.NoError(t, c.Set(world.Pos(1, 2, 3), stone()))

	local := build(t, NewMesher(registry.Default()), c)
	global := build(t, NewMesher(registry.Default(), WithSpace(SpaceWorld)), c)

	assert.Equal(t, mgl32.Vec3{1.5, 2.5, 3.5}, local.Positions[0])
	assert.Equal(t, mgl32.Vec3{17.5, 2.5, 35.5}, global.Positions[0])
	for i := range local.Positions {
		assert.Equal(t, local.Positions[i].Add(mgl32.Vec3{16, 0, 32}), global.Positions[i])
	}
}

func TestTextureHandleAttached(t *testing.T) {
	c := newChunk(t, 1, 1, 1)
	mesh := build(t, NewMesher(registry.Default(), WithTexture(7)), c)
	assert.Equal(t, TextureHandle(7), mesh.Texture)
}

func TestBuildIsDeterministic(t *testing.T) {
	positions := []world.Position{world.Pos(0, 0, 0), world.Pos(1, 0, 0), world.Pos(1, 1, 0), world.Pos(2, 1, 1), world.Pos(3, 3, 3), world.Pos(0, 3, 2)}

	forward := newChunk(t, 4, 4, 4)
	for _, p := range positions {
		require.NoError(t, forward.Set(p, stone()))
	}
	backward := newChunk(t, 4, 4, 4)
	for i := len(positions) - 1; i >= 0; i-- {
		require.NoError(t, backward.Set(positions[i], stone()))
	}

	m := NewMesher(registry.Default())
	first := build(t, m, forward)
	second := build(t, m, forward)
	other := build(t, m, backward)

	assert.Equal(t, first, second)
	assert.Equal(t, first, other)
	assert.Equal(t, first.Interleave(), other.Interleave())
}

func TestBuildPerVoxel(t *testing.T) {
	c := newChunk(t, 3, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), stone()))
	require.NoError(t, c.Set(world.Pos(1, 0, 0), stone()))
	require.NoError(t, c.Set(world.Pos(2, 0, 0), world.NewVoxel(world.BlockTypeAir, false)))

	m := NewMesher(registry.Default())
	per, err := m.BuildPerVoxel(c)
	require.NoError(t, err)
	require.Len(t, per, 2)

	assert.Equal(t, world.Pos(0, 0, 0), per[0].Position)
	assert.Equal(t, world.Pos(1, 0, 0), per[1].Position)

	total := 0
	for _, vm := range per {
		require.NoError(t, vm.Mesh.Validate())
		assert.Equal(t, 5, vm.Mesh.FaceCount())
		total += vm.Mesh.FaceCount()
	}
	assert.Equal(t, build(t, m, c).FaceCount(), total)
}

func TestBuildPerVoxelSkipsFullyHidden(t *testing.T) {
	c := newChunk(t, 3, 3, 3)
	fillChunk(t, c, stone())

	per, err := NewMesher(registry.Default()).BuildPerVoxel(c)
	require.NoError(t, err)
	assert.Len(t, per, 26)
	for _, vm := range per {
		assert.NotEqual(t, world.Pos(1, 1, 1), vm.Position)
	}
}

func TestUniformMaterials(t *testing.T) {
	c := newChunk(t, 2, 1, 1)
	require.NoError(t, c.Set(world.Pos(0, 0, 0), world.NewVoxel(world.BlockType(99), true)))
	require.NoError(t, c.Set(world.Pos(1, 0, 0), stone()))

	mesh := build(t, NewMesher(registry.NewUniform()), c)
	assert.Equal(t, 10, mesh.FaceCount())
}

func TestVisibleFacesOfAbsentVoxel(t *testing.T) {
	c := newChunk(t, 2, 2, 2)
	faces, err := NewMesher(registry.Default()).VisibleFaces(c, world.Pos(1, 1, 1))
	require.NoError(t, err)
	assert.Zero(t, faces.Count())
	assert.Empty(t, faces.Faces())
}
