package registry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrCellOutOfRange = errors.New("atlas cell out of range")

// Atlas is a grid of equally sized texture cells, row-major from the top-left.
type Atlas struct {
	Columns int
	Rows    int
}

// NewAtlas creates an atlas layout of cols x rows cells.
func NewAtlas(cols, rows int) (Atlas, error) {
	if cols <= 0 || rows <= 0 {
		return Atlas{}, fmt.Errorf("atlas %dx%d: dimensions must be positive", cols, rows)
	}
	return Atlas{Columns: cols, Rows: rows}, nil
}

// AtlasFor returns the smallest square atlas with room for every texture in r.
func AtlasFor(r *Registry) Atlas {
	side := 1
	for side*side < r.CellCount() {
		side++
	}
	return Atlas{Columns: side, Rows: side}
}

// Cells returns how many cells the atlas holds.
func (a Atlas) Cells() int {
	return a.Columns * a.Rows
}

// CellUV returns the UV rectangle of cell, with V growing downwards.
func (a Atlas) CellUV(cell int) (lo, hi mgl32.Vec2, err error) {
	if cell < 0 || cell >= a.Cells() {
		return lo, hi, fmt.Errorf("cell %d in %dx%d atlas: %w", cell, a.Columns, a.Rows, ErrCellOutOfRange)
	}
	w := 1 / float32(a.Columns)
	h := 1 / float32(a.Rows)
	col := cell % a.Columns
	row := cell / a.Columns
	lo = mgl32.Vec2{float32(col) * w, float32(row) * h}
	hi = mgl32.Vec2{float32(col+1) * w, float32(row+1) * h}
	return lo, hi, nil
}

// Remap maps a [0,1] quad coordinate into cell.
func (a Atlas) Remap(cell int, uv mgl32.Vec2) (mgl32.Vec2, error) {
	lo, hi, err := a.CellUV(cell)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	return mgl32.Vec2{
		lo.X() + uv.X()*(hi.X()-lo.X()),
		lo.Y() + uv.Y()*(hi.Y()-lo.Y()),
	}, nil
}
