package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/opreg/internal/config"
	"github.com/specialistvlad/opreg/internal/ctxlog"
	"github.com/specialistvlad/opreg/internal/registrar"
	"github.com/specialistvlad/opreg/internal/registry"
)

// App encapsulates the application's logger, configuration and the
// populated, frozen registry.
type App struct {
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
}

// NewApp builds the logger, lets every module register, ingests the
// configured manifests and freezes the registry. With no modules given it
// uses CoreModules.
func NewApp(ctx context.Context, logW io.Writer, cfg *Config, loader config.Loader, modules ...registrar.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	policy, err := registry.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	if len(modules) == 0 {
		modules = CoreModules
	}
	r := registrar.New(ctx)
	r.Load(modules...)

	if len(cfg.ManifestPaths) > 0 {
		model, err := loader.Load(ctx, cfg.ManifestPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifests: %w", err)
		}
		r.AddModel(model)
		logger.Debug("External manifests loaded.", "natives", len(model.Natives))
	}

	b := registry.NewBuilder(ctx, registry.WithDuplicatePolicy(policy))
	if err := r.Populate(b); err != nil {
		return nil, err
	}
	reg := b.Build()

	logger.Info("Operation registry ready.",
		"call_operations", reg.Len(registry.Call),
		"guard_operations", reg.Len(registry.Guard),
		"duplicate_policy", policy.String(),
	)

	return &App{
		logger:   logger,
		config:   cfg,
		registry: reg,
	}, nil
}

// Registry returns the frozen registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
