package internal

import (
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Deployment environments with distinct default sets. Any other environment
// name resolves to the production defaults.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config represents the application configuration. Render overrides are
// pointers: nil means "use the environment default".
type Config struct {
	App          ApplicationConfig `yaml:"app"`
	Environment  string            `yaml:"environment"`
	RestrictedFS bool              `yaml:"restricted_fs"`
	Source       SourceConfig      `yaml:"source"`
	Output       OutputConfig      `yaml:"output"`
	Render       RenderConfig      `yaml:"render"`
	Compiler     CompilerConfig    `yaml:"compiler"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Environment == "" {
		c.Environment = EnvProduction
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// SourceConfig locates the stylesheet sources.
type SourceConfig struct {
	Path       string   `yaml:"path"`
	Extensions []string `yaml:"extensions"`
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Extensions, validation.Required, validation.Each(validation.By(extensionRule))),
	)
}

func extensionRule(value any) error {
	ext, _ := value.(string)
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return validation.NewError("validation_extension", "must start with a dot and name an extension")
	}
	return nil
}

// OutputConfig locates the artifact tree. Path is the directory under Root
// that artifacts are written to; nil falls back to the environment default.
type OutputConfig struct {
	Root string  `yaml:"root"`
	Path *string `yaml:"path"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
	)
}

// RenderConfig holds post-processing overrides.
type RenderConfig struct {
	Compression *bool `yaml:"compression"`
	Header      *bool `yaml:"header"`
	PageCache   *bool `yaml:"page_cache"`
}

// CompilerConfig names the external compiler command. The source is piped
// to its stdin and the CSS is read from its stdout.
type CompilerConfig struct {
	Command []string `yaml:"command"`
}

// envDefaults is one row of the environment default table.
type envDefaults struct {
	compression     bool
	header          bool
	pageCache       bool
	destinationPath string
}

var defaultsByEnv = map[string]envDefaults{
	EnvProduction:  {compression: true, header: false, pageCache: true, destinationPath: "stylesheets"},
	EnvDevelopment: {compression: false, header: true, pageCache: true, destinationPath: "stylesheets"},
}

func defaultsFor(env string) envDefaults {
	if d, ok := defaultsByEnv[env]; ok {
		return d
	}
	return defaultsByEnv[EnvProduction]
}

// EffectiveConfig is the fully resolved configuration: every field carries
// its final value after merging overrides with the environment defaults.
// It is computed once when the pipeline is assembled and treated as
// immutable for the duration of a pass.
type EffectiveConfig struct {
	Environment      string
	Compression      bool
	Header           bool
	PageCache        bool
	SourcePath       string
	SourceExtensions []string
	OutputRoot       string
	DestinationPath  string
}

// Effective resolves the configuration against the environment default
// table. Page-cache permission is forced off under a restricted filesystem
// deployment, where written artifacts would not persist.
func (c *Config) Effective() EffectiveConfig {
	d := defaultsFor(c.Environment)

	eff := EffectiveConfig{
		Environment:      c.Environment,
		Compression:      d.compression,
		Header:           d.header,
		PageCache:        d.pageCache,
		SourcePath:       c.Source.Path,
		SourceExtensions: c.Source.Extensions,
		OutputRoot:       c.Output.Root,
		DestinationPath:  d.destinationPath,
	}
	if c.Render.Compression != nil {
		eff.Compression = *c.Render.Compression
	}
	if c.Render.Header != nil {
		eff.Header = *c.Render.Header
	}
	if c.Render.PageCache != nil {
		eff.PageCache = *c.Render.PageCache
	}
	if c.Output.Path != nil {
		eff.DestinationPath = *c.Output.Path
	}
	if c.RestrictedFS {
		eff.PageCache = false
	}
	return eff
}

// SetCompression overrides the compression default.
func (c *Config) SetCompression(v bool) { c.Render.Compression = &v }

// SetHeader overrides the provenance-header default.
func (c *Config) SetHeader(v bool) { c.Render.Header = &v }

// SetPageCache overrides the page-cache permission default. The override
// still loses to a restricted filesystem deployment.
func (c *Config) SetPageCache(v bool) { c.Render.PageCache = &v }

// SetDestinationPath overrides the artifact directory under the output root.
func (c *Config) SetDestinationPath(p string) { c.Output.Path = &p }

// SetSourcePath sets the source root.
func (c *Config) SetSourcePath(p string) { c.Source.Path = p }

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Environment: EnvDevelopment,
		Source: SourceConfig{
			Path:       "./styles",
			Extensions: []string{".less", ".lss"},
		},
		Output: OutputConfig{
			Root: ".",
		},
	}
}
