package logging

import (
	"fmt"

	"mini-voxel/internal/config"

	"go.uber.org/zap"
)

// New builds the application logger. Development mode writes coloured
// console output; otherwise entries are JSON on stderr.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
