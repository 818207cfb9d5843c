package main

import (
	"time"

	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/camera"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

const (
	// degrees per second
	orbitSpeed = 90
	// world units per second
	zoomSpeed = 40
)

// Viewer owns the render loop state
type Viewer struct {
	window   *glfw.Window
	renderer *graphics.Renderer
	camera   *camera.OrbitCamera
	scene    *scene.Scene
	texture  meshing.TextureHandle
	logger   *zap.Logger

	wireframe  bool
	fpsLimiter *FPSLimiter

	// Timing
	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

// NewViewer creates a viewer over an uploaded scene
func NewViewer(window *glfw.Window, r *graphics.Renderer, cam *camera.OrbitCamera, s *scene.Scene, tex meshing.TextureHandle, fpsLimit int, logger *zap.Logger) *Viewer {
	return &Viewer{
		window:           window,
		renderer:         r,
		camera:           cam,
		scene:            s,
		texture:          tex,
		logger:           logger,
		fpsLimiter:       NewFPSLimiter(fpsLimit),
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
}

// Run draws frames until the window is closed
func (v *Viewer) Run() {
	for !v.window.ShouldClose() {
		v.tick()
	}
}

func (v *Viewer) tick() {
	now := time.Now()
	dt := float32(now.Sub(v.lastTime).Seconds())
	v.lastTime = now

	v.handleHeldKeys(dt)

	func() {
		defer profiling.Track("render.Frame")()
		v.renderer.Render(v.camera)
	}()
	v.frames++

	if time.Since(v.lastFPSCheckTime) >= time.Second {
		v.logger.Debug("frame stats",
			zap.Int("fps", v.frames),
			zap.String("top", profiling.TopN(3)))
		v.frames = 0
		v.lastFPSCheckTime = time.Now()
		profiling.Reset()
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); v.window.SwapBuffers() }()
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	v.fpsLimiter.Wait()
}

func (v *Viewer) handleHeldKeys(dt float32) {
	pressed := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if v.window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}

	var yaw, pitch float32
	if pressed(glfw.KeyA, glfw.KeyLeft) {
		yaw -= orbitSpeed * dt
	}
	if pressed(glfw.KeyD, glfw.KeyRight) {
		yaw += orbitSpeed * dt
	}
	if pressed(glfw.KeyW, glfw.KeyUp) {
		pitch += orbitSpeed * dt
	}
	if pressed(glfw.KeyS, glfw.KeyDown) {
		pitch -= orbitSpeed * dt
	}
	if yaw != 0 || pitch != 0 {
		v.camera.Orbit(yaw, pitch)
	}

	if pressed(glfw.KeyQ) {
		v.camera.Zoom(-zoomSpeed * dt)
	}
	if pressed(glfw.KeyE) {
		v.camera.Zoom(zoomSpeed * dt)
	}
}

// ToggleWireframe switches between filled and line polygons.
func (v *Viewer) ToggleWireframe() {
	v.wireframe = !v.wireframe
	if v.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Delete releases GPU resources.
func (v *Viewer) Delete() {
	v.renderer.Delete()
	graphics.DeleteTexture(v.texture)
}

func (v *Viewer) logStats() {
	st := v.scene.Stats
	v.logger.Info("scene stats",
		zap.Int("chunks", st.Chunks),
		zap.Int("voxels", st.Voxels),
		zap.Int("faces", st.Faces),
		zap.Int("vertices", st.Vertices),
		zap.Duration("generate", st.Generate),
		zap.Duration("mesh", st.Mesh),
		zap.Float32("yaw", v.camera.Yaw),
		zap.Float32("pitch", v.camera.Pitch),
		zap.Float32("distance", v.camera.Distance))
}
