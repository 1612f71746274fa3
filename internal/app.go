// Package internal provides application configuration and assembly.
package internal

import (
	"fmt"
	"log/slog"

	"github.com/starford/cascade/internal/artifact"
	"github.com/starford/cascade/internal/catalog"
	"github.com/starford/cascade/internal/compiler"
	"github.com/starford/cascade/internal/pathmap"
	"github.com/starford/cascade/internal/pipeline"
)

// App wires the configured components into a ready pipeline. The effective
// configuration is resolved once here and stays fixed for the lifetime of
// the App; hosts that change settings build a new App.
type App struct {
	config   *Config
	logger   *slog.Logger
	compiler compiler.Compiler

	effective EffectiveConfig
	pipeline  *pipeline.Pipeline
}

// New assembles the application from options. A config is required; the
// compiler comes either from WithCompiler or from the configured external
// command.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	a.effective = a.config.Effective()
	eff := a.effective

	a.logger.Info("Configuration resolved",
		slog.String("environment", eff.Environment),
		slog.String("source_path", eff.SourcePath),
		slog.String("output_root", eff.OutputRoot),
		slog.String("destination_path", eff.DestinationPath),
		slog.Bool("compression", eff.Compression),
		slog.Bool("header", eff.Header),
		slog.Bool("page_cache", eff.PageCache))

	cat, err := catalog.New(eff.SourcePath, eff.SourceExtensions)
	if err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	if a.compiler == nil {
		if len(a.config.Compiler.Command) == 0 {
			return nil, fmt.Errorf("no compiler: set compiler.command or inject one")
		}
		cmd, err := compiler.NewCommand(a.config.Compiler.Command)
		if err != nil {
			return nil, fmt.Errorf("init compiler: %w", err)
		}
		a.compiler = cmd
	}

	writer, err := artifact.NewWriter(eff.OutputRoot)
	if err != nil {
		return nil, fmt.Errorf("init writer: %w", err)
	}

	mapper := pathmap.New(cat.Root(), eff.DestinationPath, eff.SourceExtensions)

	a.pipeline = pipeline.New(cat, mapper, a.compiler, writer, artifact.RenderOptions{
		Compression: eff.Compression,
		Header:      eff.Header,
	}, a.logger)

	return a, nil
}

// Pipeline returns the assembled build pipeline.
func (a *App) Pipeline() *pipeline.Pipeline {
	return a.pipeline
}

// Effective returns the resolved configuration the App was built with.
func (a *App) Effective() EffectiveConfig {
	return a.effective
}

// PageCachePermitted reports whether the host may cache generated pages.
// False under a restricted filesystem deployment regardless of overrides.
func (a *App) PageCachePermitted() bool {
	return a.effective.PageCache
}
