package graphics

import (
	"mini-voxel/internal/graphics/camera"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer draws uploaded chunk meshes with the chunk shader.
type Renderer struct {
	shader   *Shader
	meshes   map[world.ChunkCoord]*GPUMesh
	lightDir mgl32.Vec3
	// offsets translate local-space meshes to their chunk origin.
	offsets map[world.ChunkCoord]mgl32.Vec3
}

// NewRenderer configures GL state and compiles the shader. It must run on
// the thread owning the GL context, after gl.Init.
func NewRenderer() (*Renderer, error) {
	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	// Enable back-face culling (meshing emits CCW front faces)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)

	shader, err := NewChunkShader()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		shader:   shader,
		meshes:   make(map[world.ChunkCoord]*GPUMesh),
		offsets:  make(map[world.ChunkCoord]mgl32.Vec3),
		lightDir: mgl32.Vec3{-0.4, -1, -0.3},
	}, nil
}

// SetChunk uploads m for coord, replacing any previous mesh. offset is added
// to every vertex; pass the chunk origin for local-space meshes.
func (r *Renderer) SetChunk(coord world.ChunkCoord, m *meshing.Mesh, offset mgl32.Vec3) {
	if old, ok := r.meshes[coord]; ok {
		old.Delete()
	}
	r.meshes[coord] = Upload(m)
	r.offsets[coord] = offset
}

// ChunkCount returns the number of uploaded chunk meshes.
func (r *Renderer) ChunkCount() int {
	return len(r.meshes)
}

// Render clears the frame and draws every chunk from cam.
func (r *Renderer) Render(cam *camera.OrbitCamera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.shader.Use()
	r.shader.SetMatrix4("projection", cam.ProjectionMatrix())
	r.shader.SetMatrix4("view", cam.ViewMatrix())
	r.shader.SetVector3("lightDir", r.lightDir)
	r.shader.SetInt("atlas", 0)

	for coord, m := range r.meshes {
		r.shader.SetVector3("offset", r.offsets[coord])
		m.Draw()
	}
}

// Delete frees every mesh and the shader.
func (r *Renderer) Delete() {
	for coord, m := range r.meshes {
		m.Delete()
		delete(r.meshes, coord)
	}
	r.shader.Delete()
}
