package graphics

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"

	"mini-voxel/internal/graphics/textures"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/registry"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// LoadTexture loads a 2D texture from a file
func LoadTexture(path string) (meshing.TextureHandle, int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, image.Point{0, 0}, draw.Src)

	return UploadRGBA(rgba), rgba.Rect.Size().X, rgba.Rect.Size().Y, nil
}

// NewAtlasTexture draws the procedural atlas for names and uploads it.
func NewAtlasTexture(a registry.Atlas, names []string, cellSize int) (meshing.TextureHandle, error) {
	img, err := textures.AtlasImage(a, names, cellSize)
	if err != nil {
		return 0, err
	}
	return UploadRGBA(img), nil
}

// UploadRGBA creates a nearest-filtered texture from rgba.
func UploadRGBA(rgba *image.RGBA) meshing.TextureHandle {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(rgba.Rect.Size().X),
		int32(rgba.Rect.Size().Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return meshing.TextureHandle(texture)
}

// DeleteTexture releases a texture created by this package.
func DeleteTexture(h meshing.TextureHandle) {
	tex := uint32(h)
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}
