package graphics

import (
	"mini-voxel/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GPUMesh is a chunk mesh uploaded to a VAO with its vertex and index buffers.
type GPUMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	texture       uint32
}

// Upload copies m into new GPU buffers. An empty mesh yields a GPUMesh that
// draws nothing.
func Upload(m *meshing.Mesh) *GPUMesh {
	g := &GPUMesh{
		indexCount: int32(len(m.Indices)),
		texture:    uint32(m.Texture),
	}
	if m.IsEmpty() {
		return g
	}

	data := m.Interleave()
	stride := int32(meshing.VertexStride * 4)

	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.GenBuffers(1, &g.ebo)

	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	// position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// uv
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return g
}

// Draw issues the indexed draw call. The caller binds the shader.
func (g *GPUMesh) Draw() {
	if g.vao == 0 || g.indexCount == 0 {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, g.texture)
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete frees the GPU buffers. The texture is owned by the renderer.
func (g *GPUMesh) Delete() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	g.vao, g.vbo, g.ebo = 0, 0, 0
}
