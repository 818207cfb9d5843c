package meshing

import (
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Face corners of a unit cube centred on the voxel position. Each quad is
// listed top-left, top-right, bottom-right, bottom-left as seen from outside
// the cube, so quadIndices wind counter-clockwise around the outward normal.
var faceCorners = [world.NumFaces][4]mgl32.Vec3{
	// EAST (+X)
	world.FaceEast: {
		{0.5, 0.5, 0.5},
		{0.5, 0.5, -0.5},
		{0.5, -0.5, -0.5},
		{0.5, -0.5, 0.5},
	},
	// WEST (-X)
	world.FaceWest: {
		{-0.5, 0.5, -0.5},
		{-0.5, 0.5, 0.5},
		{-0.5, -0.5, 0.5},
		{-0.5, -0.5, -0.5},
	},
	// TOP (+Y)
	world.FaceTop: {
		{-0.5, 0.5, -0.5},
		{0.5, 0.5, -0.5},
		{0.5, 0.5, 0.5},
		{-0.5, 0.5, 0.5},
	},
	// BOTTOM (-Y)
	world.FaceBottom: {
		{-0.5, -0.5, 0.5},
		{0.5, -0.5, 0.5},
		{0.5, -0.5, -0.5},
		{-0.5, -0.5, -0.5},
	},
	// NORTH (+Z)
	world.FaceNorth: {
		{-0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{0.5, -0.5, 0.5},
		{-0.5, -0.5, 0.5},
	},
	// SOUTH (-Z)
	world.FaceSouth: {
		{0.5, 0.5, -0.5},
		{-0.5, 0.5, -0.5},
		{-0.5, -0.5, -0.5},
		{0.5, -0.5, -0.5},
	},
}

// quadUVs matches the corner order of faceCorners; V grows downwards.
var quadUVs = [4]mgl32.Vec2{
	{0, 0},
	{1, 0},
	{1, 1},
	{0, 1},
}

// quadIndices splits a quad into two triangles over its 4 local vertices.
var quadIndices = [6]uint32{0, 3, 1, 1, 3, 2}

const (
	VerticesPerFace = 4
	IndicesPerFace  = 6
)

// FaceSet is a bit set of world.BlockFace values.
type FaceSet uint8

// AllFaceSet has every face.
const AllFaceSet FaceSet = 1<<world.NumFaces - 1

func (s FaceSet) With(face world.BlockFace) FaceSet {
	return s | 1<<face
}

func (s FaceSet) Has(face world.BlockFace) bool {
	return s&(1<<face) != 0
}

// Count returns the number of faces in the set.
func (s FaceSet) Count() int {
	n := 0
	for _, face := range world.AllFaces {
		if s.Has(face) {
			n++
		}
	}
	return n
}

// Faces lists the members in emission order.
func (s FaceSet) Faces() []world.BlockFace {
	out := make([]world.BlockFace, 0, world.NumFaces)
	for _, face := range world.AllFaces {
		if s.Has(face) {
			out = append(out, face)
		}
	}
	return out
}
