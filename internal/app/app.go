package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/rules"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	loader   *rules.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and a sealed
// registry. Without modules the core modules are installed. Logs go to logW,
// reports to outW.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger, err := ctxlog.New(logW, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	reg.Seal()
	logger.Debug("All Go modules registered.", "count", len(modules))

	// Validate the integrity of the registry.
	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error (a module registered something unusable), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		loader:   rules.NewLoader(reg, rules.WithWorkers(cfg.Workers)),
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Load loads and validates the configured rule set.
func (a *App) Load(ctx context.Context) (*rules.Catalog, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	catalog, err := a.loader.Load(ctx, a.config.RulesPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	return catalog, nil
}
