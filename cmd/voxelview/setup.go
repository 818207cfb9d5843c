package main

import (
	"fmt"

	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/camera"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/scene"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func setupWindow(wc config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}

	// Leave pacing to the limiter when one is configured
	if wc.FPSLimit > 0 {
		glfw.SwapInterval(0)
	} else {
		glfw.SwapInterval(1)
	}
	return window, nil
}

// setupViewer uploads the scene to the GPU and points a camera at its centre.
func setupViewer(window *glfw.Window, cfg config.Config, s *scene.Scene, logger *zap.Logger) (*Viewer, error) {
	r, err := graphics.NewRenderer()
	if err != nil {
		return nil, err
	}

	tex, err := loadAtlasTexture(cfg.Atlas, s)
	if err != nil {
		r.Delete()
		return nil, err
	}
	s.SetTexture(tex)

	for coord, m := range s.Meshes {
		r.SetChunk(coord, m, toVec3(s.Offset(coord)))
	}
	logger.Info("meshes uploaded", zap.Int("chunks", r.ChunkCount()))

	w, h := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	center, radius := worldBounds(cfg.World)
	cam := camera.NewOrbitCamera(center, radius*1.5, w, h)
	cam.FOV = cfg.Window.FOV
	cam.FarPlane = max(cam.FarPlane, radius*4)

	return NewViewer(window, r, cam, s, tex, cfg.Window.FPSLimit, logger), nil
}

func loadAtlasTexture(ac config.AtlasConfig, s *scene.Scene) (meshing.TextureHandle, error) {
	if ac.Path == "" {
		return graphics.NewAtlasTexture(s.Atlas, s.Registry.TextureNames(), ac.CellSize)
	}
	tex, w, h, err := graphics.LoadTexture(ac.Path)
	if err != nil {
		return 0, err
	}
	if w%s.Atlas.Columns != 0 || h%s.Atlas.Rows != 0 {
		graphics.DeleteTexture(tex)
		return 0, fmt.Errorf("atlas %s is %dx%d, not a %dx%d grid", ac.Path, w, h, s.Atlas.Columns, s.Atlas.Rows)
	}
	return tex, nil
}

// worldBounds returns the centre of the generated chunk box and the radius
// of a sphere around it.
func worldBounds(wc config.WorldConfig) (mgl32.Vec3, float32) {
	d := wc.Dimensions()
	lo := mgl32.Vec3{
		float32(wc.ChunksMin.X * d.X),
		float32(wc.ChunksMin.Y * d.Y),
		float32(wc.ChunksMin.Z * d.Z),
	}
	hi := mgl32.Vec3{
		float32((wc.ChunksMax.X + 1) * d.X),
		float32((wc.ChunksMax.Y + 1) * d.Y),
		float32((wc.ChunksMax.Z + 1) * d.Z),
	}
	center := lo.Add(hi).Mul(0.5)
	if wc.Generator != config.GeneratorFill {
		// terrain rarely reaches the top of tall columns
		center[1] = min(center[1], float32(wc.Noise.BaseHeight))
	}
	return center, hi.Sub(lo).Len() * 0.5
}

func toVec3(p world.Position) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
}
