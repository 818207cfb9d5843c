package world

// Voxel is the content of one grid cell.
//
// Opaque controls whether the voxel hides the faces of its neighbours.
// Visible controls whether the voxel itself is meshed; it has no effect on
// neighbour culling. Local is the chunk-relative key and World is the chunk
// origin plus Local. Both are filled in by Chunk.Set.
type Voxel struct {
	Type    BlockType
	Opaque  bool
	Visible bool
	Local   Position
	World   Position
}

// NewVoxel returns a visible voxel of the given type.
func NewVoxel(t BlockType, opaque bool) Voxel {
	return Voxel{
		Type:    t,
		Opaque:  opaque && !t.IsEmpty(),
		Visible: true,
	}
}

// IsEmpty reports whether the voxel holds Air.
func (v Voxel) IsEmpty() bool {
	return v.Type.IsEmpty()
}

// Occludes reports whether v hides an adjacent face.
func (v Voxel) Occludes() bool {
	return v.Opaque && !v.IsEmpty()
}
