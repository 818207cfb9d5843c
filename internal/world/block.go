package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint16

const (
	// BlockTypeAir is the empty cell: no geometry, never occludes.
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeCobblestone
	BlockTypeBedrock
	BlockTypeSand
	BlockTypePlanks
	BlockTypeGlass
	BlockTypeWater
	BlockTypeLeaves
)

var blockTypeNames = map[BlockType]string{
	BlockTypeAir:         "air",
	BlockTypeGrass:       "grass",
	BlockTypeDirt:        "dirt",
	BlockTypeStone:       "stone",
	BlockTypeCobblestone: "cobblestone",
	BlockTypeBedrock:     "bedrock",
	BlockTypeSand:        "sand",
	BlockTypePlanks:      "planks",
	BlockTypeGlass:       "glass",
	BlockTypeWater:       "water",
	BlockTypeLeaves:      "leaves",
}

// IsEmpty reports whether t is the Air sentinel.
func (t BlockType) IsEmpty() bool {
	return t == BlockTypeAir
}

func (t BlockType) String() string {
	if name, ok := blockTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("block(%d)", uint16(t))
}

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceEast   BlockFace = iota // +X
	FaceWest                    // -X
	FaceTop                     // +Y
	FaceBottom                  // -Y
	FaceNorth                   // +Z
	FaceSouth                   // -Z
)

// NumFaces is the number of faces of a cube.
const NumFaces = 6

// AllFaces lists every face in emission order.
var AllFaces = [NumFaces]BlockFace{FaceEast, FaceWest, FaceTop, FaceBottom, FaceNorth, FaceSouth}

var faceOffsets = [NumFaces]Position{
	FaceEast:   {X: 1},
	FaceWest:   {X: -1},
	FaceTop:    {Y: 1},
	FaceBottom: {Y: -1},
	FaceNorth:  {Z: 1},
	FaceSouth:  {Z: -1},
}

var faceNames = [NumFaces]string{"east", "west", "top", "bottom", "north", "south"}

// Offset returns the unit lattice step across the face.
func (f BlockFace) Offset() Position {
	return faceOffsets[f]
}

// Normal returns the outward unit normal of the face.
func (f BlockFace) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o.X), float32(o.Y), float32(o.Z)}
}

// Opposite returns the face pointing the other way.
func (f BlockFace) Opposite() BlockFace {
	// Faces come in +/- pairs.
	return f ^ 1
}

func (f BlockFace) String() string {
	if f < 0 || int(f) >= NumFaces {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}
