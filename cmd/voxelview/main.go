package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"mini-voxel/internal/config"
	"mini-voxel/internal/logging"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	headless := flag.Bool("headless", false, "generate and mesh the world, print stats and exit")
	flag.Parse()

	if err := run(*configPath, *headless); err != nil {
		fmt.Fprintln(os.Stderr, "voxelview:", err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := scene.Build(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info("profile", zap.String("top", profiling.TopN(5)))
	if headless {
		return nil
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	// Window setup
	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	v, err := setupViewer(window, cfg, s, logger)
	if err != nil {
		return err
	}
	defer v.Delete()

	setupInputHandlers(window, v)
	v.Run()
	return nil
}
