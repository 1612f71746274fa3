package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/cascade/internal"
	"github.com/starford/cascade/internal/models"
	pkgconfig "github.com/starford/cascade/pkg/config"
)

// setup loads configuration, applies CLI overrides, and assembles the app.
func setup(cmd *cli.Command) (*internal.App, error) {
	cfg := internal.NewDefaultConfig()

	configPath := cmd.String("config")
	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if _, err := pkgconfig.LoadIfExists(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if env := cmd.String("env"); env != "" {
		cfg.Environment = env
	}
	if cmd.Bool("restricted-fs") {
		cfg.RestrictedFS = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Logs go to stderr so `render` can print CSS on stdout.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	return internal.New(
		internal.WithConfig(cfg),
		internal.WithLogger(logger),
	)
}

func buildAction(ctx context.Context, cmd *cli.Command) error {
	app, err := setup(cmd)
	if err != nil {
		return err
	}
	return app.Pipeline().GenerateAll(ctx)
}

func cleanAction(_ context.Context, cmd *cli.Command) error {
	app, err := setup(cmd)
	if err != nil {
		return err
	}
	return app.Pipeline().Clean()
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.Args().First()
	if arg == "" {
		return fmt.Errorf("render: a slug argument is required")
	}
	app, err := setup(cmd)
	if err != nil {
		return err
	}
	css, err := app.Pipeline().GenerateOne(ctx, models.ParseSlug(arg))
	if err != nil {
		return err
	}
	fmt.Print(css)
	return nil
}

func statusAction(_ context.Context, cmd *cli.Command) error {
	app, err := setup(cmd)
	if err != nil {
		return err
	}
	entries, err := app.Pipeline().Status()
	if err != nil {
		return err
	}
	for _, e := range entries {
		state := "missing"
		if e.Present {
			state = "present"
		}
		fmt.Printf("%s\t%s -> %s\t%s\n", e.Slug, e.Source, e.Destination, state)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "cascade",
		Usage: "Compile a tree of stylesheet sources into plain CSS artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("CASCADE_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Deployment environment (production, development)",
				Sources: cli.EnvVars("CASCADE_ENV"),
			},
			&cli.BoolFlag{
				Name:    "restricted-fs",
				Usage:   "Mark the deployment filesystem as ephemeral (disables page-cache permission)",
				Sources: cli.EnvVars("CASCADE_RESTRICTED_FS"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Compile every source and write its artifact",
				Action: buildAction,
			},
			{
				Name:   "clean",
				Usage:  "Remove every generated artifact",
				Action: cleanAction,
			},
			{
				Name:      "render",
				Usage:     "Compile one slug and print the CSS to stdout",
				ArgsUsage: "<slug>",
				Action:    renderAction,
			},
			{
				Name:   "status",
				Usage:  "List compilable slugs and artifact state",
				Action: statusAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
