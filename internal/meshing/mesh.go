package meshing

import (
	"fmt"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv.xy)
const VertexStride = 8

// TextureHandle is an opaque reference to a texture owned by the renderer.
type TextureHandle uint32

// Mesh holds the visible-face geometry of one meshing pass. Positions,
// Normals and UVs are parallel; every face owns 4 vertices and 6 indices.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Texture   TextureHandle
}

// VoxelMesh is the geometry of a single voxel.
type VoxelMesh struct {
	Position world.Position
	Mesh     *Mesh
}

func newMesh(faceHint int, tex TextureHandle) *Mesh {
	return &Mesh{
		Positions: make([]mgl32.Vec3, 0, faceHint*VerticesPerFace),
		Normals:   make([]mgl32.Vec3, 0, faceHint*VerticesPerFace),
		UVs:       make([]mgl32.Vec2, 0, faceHint*VerticesPerFace),
		Indices:   make([]uint32, 0, faceHint*IndicesPerFace),
		Texture:   tex,
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// FaceCount returns the number of emitted quads.
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / IndicesPerFace
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0 && len(m.Indices) == 0
}

// Validate checks the buffer invariants the renderer relies on.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != n || len(m.UVs) != n {
		return fmt.Errorf("mesh buffers differ: %d positions, %d normals, %d uvs", n, len(m.Normals), len(m.UVs))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh has %d indices, not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range for %d vertices", idx, i, n)
		}
	}
	return nil
}

// Interleave packs the vertex attributes as pos.xyz, normal.xyz, uv.xy for upload.
func (m *Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		n := m.Normals[i]
		uv := m.UVs[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// appendFace adds the 4 corners of face around center plus its 6 indices.
func (m *Mesh) appendFace(center mgl32.Vec3, face world.BlockFace, uvs [4]mgl32.Vec2) {
	base := uint32(len(m.Positions))
	normal := face.Normal()
	for i, corner := range faceCorners[face] {
		m.Positions = append(m.Positions, center.Add(corner))
		m.Normals = append(m.Normals, normal)
		m.UVs = append(m.UVs, uvs[i])
	}
	for _, idx := range quadIndices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Concat joins per-voxel meshes into one, rebasing indices. The texture of
// the first mesh is kept.
func Concat(parts []VoxelMesh) *Mesh {
	faces := 0
	for _, p := range parts {
		faces += p.Mesh.FaceCount()
	}
	var tex TextureHandle
	if len(parts) > 0 {
		tex = parts[0].Mesh.Texture
	}
	out := newMesh(faces, tex)
	for _, p := range parts {
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, p.Mesh.Positions...)
		out.Normals = append(out.Normals, p.Mesh.Normals...)
		out.UVs = append(out.UVs, p.Mesh.UVs...)
		for _, idx := range p.Mesh.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out
}
