package meshing

import (
	"errors"
	"fmt"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrInvalidBlockType is returned when a voxel's type has no geometry the
// mesher can emit.
var ErrInvalidBlockType = errors.New("invalid block type")

// Materials resolves block types to their visual description.
type Materials interface {
	Lookup(t world.BlockType) (registry.Material, error)
}

// Space selects the coordinate frame of emitted positions.
type Space int

const (
	// SpaceLocal emits positions relative to the chunk origin.
	SpaceLocal Space = iota
	// SpaceWorld offsets every position by the chunk origin.
	SpaceWorld
)

func (s Space) String() string {
	if s == SpaceWorld {
		return "world"
	}
	return "local"
}

// Mesher turns chunk contents into visible-face geometry. It holds no
// per-chunk state and is safe for concurrent use.
type Mesher struct {
	materials Materials
	atlas     *registry.Atlas
	space     Space
	texture   TextureHandle
	logger    *zap.Logger
}

// Option configures a Mesher.
type Option func(*Mesher)

// WithAtlas remaps face UVs into the material's atlas cells.
func WithAtlas(a registry.Atlas) Option {
	return func(m *Mesher) { m.atlas = &a }
}

func WithSpace(s Space) Option {
	return func(m *Mesher) { m.space = s }
}

// WithTexture attaches a renderer texture handle to every emitted mesh.
func WithTexture(h TextureHandle) Option {
	return func(m *Mesher) { m.texture = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Mesher) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMesher creates a mesher over materials.
func NewMesher(materials Materials, opts ...Option) *Mesher {
	m := &Mesher{
		materials: materials,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Space returns the coordinate frame of emitted positions.
func (m *Mesher) Space() Space {
	return m.space
}

// BuildChunk emits one mesh holding every visible face of c. An empty chunk
// yields an empty mesh.
func (m *Mesher) BuildChunk(c *world.Chunk) (*Mesh, error) {
	defer profiling.Track("meshing.BuildChunk")()

	positions := c.Positions()
	mesh := newMesh(len(positions), m.texture)
	for _, p := range positions {
		if err := m.emitVoxel(mesh, c, p); err != nil {
			return nil, err
		}
	}

	m.logger.Debug("chunk meshed",
		zap.Stringer("origin", c.Origin()),
		zap.Int("voxels", len(positions)),
		zap.Int("faces", mesh.FaceCount()),
		zap.Int("vertices", mesh.VertexCount()))
	return mesh, nil
}

// BuildPerVoxel emits one mesh per voxel that has at least one visible
// face, in position order.
func (m *Mesher) BuildPerVoxel(c *world.Chunk) ([]VoxelMesh, error) {
	defer profiling.Track("meshing.BuildPerVoxel")()

	var out []VoxelMesh
	for _, p := range c.Positions() {
		mesh := newMesh(world.NumFaces, m.texture)
		if err := m.emitVoxel(mesh, c, p); err != nil {
			return nil, err
		}
		if mesh.IsEmpty() {
			continue
		}
		out = append(out, VoxelMesh{Position: p, Mesh: mesh})
	}
	return out, nil
}

// VisibleFaces returns the faces of the voxel at local that would be
// emitted. Absent, empty and hidden voxels have none.
func (m *Mesher) VisibleFaces(c *world.Chunk, local world.Position) (FaceSet, error) {
	v, ok := c.Get(local)
	if !ok || !participates(v) {
		return 0, nil
	}
	if _, err := m.material(v, local); err != nil {
		return 0, err
	}
	return visibleFaces(c, local), nil
}

func (m *Mesher) emitVoxel(mesh *Mesh, c *world.Chunk, local world.Position) error {
	v, ok := c.Get(local)
	if !ok || !participates(v) {
		return nil
	}
	mat, err := m.material(v, local)
	if err != nil {
		return err
	}

	faces := visibleFaces(c, local)
	if faces == 0 {
		return nil
	}

	p := local
	if m.space == SpaceWorld {
		p = v.World
	}
	center := mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}

	for _, face := range world.AllFaces {
		if !faces.Has(face) {
			continue
		}
		uvs, err := m.faceUVs(mat, face)
		if err != nil {
			return fmt.Errorf("voxel %v face %v: %w", local, face, err)
		}
		mesh.appendFace(center, face, uvs)
	}
	return nil
}

func (m *Mesher) material(v world.Voxel, local world.Position) (registry.Material, error) {
	mat, err := m.materials.Lookup(v.Type)
	if err != nil {
		return registry.Material{}, fmt.Errorf("voxel %v type %v: %w: %w", local, v.Type, ErrInvalidBlockType, err)
	}
	if mat.Shape == registry.ShapeNone {
		return registry.Material{}, fmt.Errorf("voxel %v type %v has no geometry: %w", local, v.Type, ErrInvalidBlockType)
	}
	return mat, nil
}

func (m *Mesher) faceUVs(mat registry.Material, face world.BlockFace) ([4]mgl32.Vec2, error) {
	if m.atlas == nil {
		return quadUVs, nil
	}
	var out [4]mgl32.Vec2
	for i, uv := range quadUVs {
		r, err := m.atlas.Remap(mat.Cell(face), uv)
		if err != nil {
			return out, err
		}
		out[i] = r
	}
	return out, nil
}

// participates reports whether v contributes geometry at all.
func participates(v world.Voxel) bool {
	return !v.Type.IsEmpty() && v.Visible
}

// visibleFaces applies the culling rule: a face is hidden only by a present,
// opaque neighbour. Neighbour visibility is ignored.
func visibleFaces(c *world.Chunk, local world.Position) FaceSet {
	var set FaceSet
	for _, face := range world.AllFaces {
		n, ok := c.Get(local.Neighbor(face))
		if !ok || !n.Occludes() {
			set = set.With(face)
		}
	}
	return set
}
