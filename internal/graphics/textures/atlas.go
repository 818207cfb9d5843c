// Package textures draws the block atlas when no texture file is supplied.
package textures

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"strings"

	"mini-voxel/internal/registry"
)

// palette maps texture name keywords to base colours. First match wins.
var palette = []struct {
	keyword string
	c       color.RGBA
}{
	{"grass_side", color.RGBA{134, 96, 67, 255}},
	{"grass", color.RGBA{95, 159, 53, 255}},
	{"dirt", color.RGBA{134, 96, 67, 255}},
	{"cobblestone", color.RGBA{110, 110, 110, 255}},
	{"bedrock", color.RGBA{60, 60, 60, 255}},
	{"stone", color.RGBA{128, 128, 128, 255}},
	{"sand", color.RGBA{219, 207, 163, 255}},
	{"planks", color.RGBA{162, 130, 78, 255}},
	{"glass", color.RGBA{200, 230, 240, 90}},
	{"water", color.RGBA{48, 82, 200, 170}},
	{"leaves", color.RGBA{48, 110, 30, 220}},
}

// grassFringe is the number of green rows drawn along the top of grass sides.
const grassFringe = 3

// BaseColor returns the colour a texture name is drawn with.
func BaseColor(name string) color.RGBA {
	lower := strings.ToLower(name)
	for _, p := range palette {
		if strings.Contains(lower, p.keyword) {
			return p.c
		}
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	return color.RGBA{uint8(sum), uint8(sum >> 8), uint8(sum >> 16), 255}
}

// AtlasImage draws one cellSize x cellSize tile per name, laid out
// row-major like registry.Atlas. Unused cells stay transparent.
func AtlasImage(a registry.Atlas, names []string, cellSize int) (*image.RGBA, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("atlas cell size %d must be positive", cellSize)
	}
	if len(names) > a.Cells() {
		return nil, fmt.Errorf("%d textures do not fit a %dx%d atlas: %w", len(names), a.Columns, a.Rows, registry.ErrCellOutOfRange)
	}

	img := image.NewRGBA(image.Rect(0, 0, a.Columns*cellSize, a.Rows*cellSize))
	for cell, name := range names {
		x0 := (cell % a.Columns) * cellSize
		y0 := (cell / a.Columns) * cellSize
		drawTile(img, x0, y0, cellSize, name)
	}
	return img, nil
}

func drawTile(img *image.RGBA, x0, y0, size int, name string) {
	base := BaseColor(name)
	fringe := strings.Contains(strings.ToLower(name), "grass_side")
	green := BaseColor("grass")

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := base
			if fringe && y < grassFringe {
				c = green
			}
			img.SetRGBA(x0+x, y0+y, speckle(c, name, x, y))
		}
	}
}

// speckle darkens or brightens c by a small amount hashed from the pixel.
func speckle(c color.RGBA, name string, x, y int) color.RGBA {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%d:%d", name, x, y)
	delta := int(h.Sum32()%25) - 12
	return color.RGBA{
		R: clampByte(int(c.R) + delta),
		G: clampByte(int(c.G) + delta),
		B: clampByte(int(c.B) + delta),
		A: c.A,
	}
}

func clampByte(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
