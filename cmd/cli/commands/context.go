package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/circle-teams/internal/config"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	// ConfigPath is the --config flag, empty to search the default locations
	ConfigPath string
	Cfg        *config.Config
	Logger     *zap.Logger
	Ctx        context.Context
}

// LoadConfig loads the configuration once and keeps it on the context
func (a *AppContext) LoadConfig() (*config.Config, error) {
	if a.Cfg != nil {
		return a.Cfg, nil
	}

	var (
		cfg *config.Config
		err error
	)
	if a.ConfigPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(a.ConfigPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a.Logger.Debug("Configuration loaded successfully",
		zap.Int("categories", len(cfg.Categories)),
		zap.Int("subteams", cfg.SubteamCount))
	a.Cfg = cfg
	return cfg, nil
}
