package internal

import (
	"log/slog"

	"github.com/starford/cascade/internal/compiler"
)

// Option is a functional option for assembling the application.
type Option func(*App)

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithCompiler injects an in-process compiler, overriding the external
// command configured in the config file. Hosts embedding the pipeline use
// this to supply their own compile function.
func WithCompiler(c compiler.Compiler) Option {
	return func(a *App) {
		a.compiler = c
	}
}

// WithLogger sets the logger used by the pipeline.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}
