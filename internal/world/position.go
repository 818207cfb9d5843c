package world

import "fmt"

// Position is an integer lattice coordinate. It identifies a voxel cell,
// either chunk-local or in world space depending on context.
type Position struct {
	X, Y, Z int
}

// Pos is shorthand for Position{x, y, z}.
func Pos(x, y, z int) Position {
	return Position{X: x, Y: y, Z: z}
}

// Add returns p + o component-wise.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Sub returns p - o component-wise.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Neighbor returns the adjacent cell across the given face.
func (p Position) Neighbor(face BlockFace) Position {
	return p.Add(face.Offset())
}

// Compare orders positions by X, then Y, then Z.
func (p Position) Compare(o Position) int {
	switch {
	case p.X != o.X:
		return cmpInt(p.X, o.X)
	case p.Y != o.Y:
		return cmpInt(p.Y, o.Y)
	default:
		return cmpInt(p.Z, o.Z)
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// ChunkCoord identifies a chunk at chunk-size granularity.
type ChunkCoord struct {
	X, Y, Z int
}

// Origin returns the world-space lattice position of the chunk's (0,0,0) cell.
func (c ChunkCoord) Origin(d Dimensions) Position {
	return Position{X: c.X * d.X, Y: c.Y * d.Y, Z: c.Z * d.Z}
}

// Compare orders chunk coordinates the same way Position does.
func (c ChunkCoord) Compare(o ChunkCoord) int {
	return Position(c).Compare(Position(o))
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("chunk(%d,%d,%d)", c.X, c.Y, c.Z)
}

// ChunkCoordFor returns the coordinate of the chunk holding world position p.
func ChunkCoordFor(p Position, d Dimensions) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(p.X, d.X),
		Y: floorDiv(p.Y, d.Y),
		Z: floorDiv(p.Z, d.Z),
	}
}

// floorDiv rounds toward negative infinity so -1 lands in chunk -1, not 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
