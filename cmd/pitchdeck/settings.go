package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	pitchdeck "github.com/alnah/go-pitchdeck"
	"github.com/alnah/go-pitchdeck/internal/config"
	"github.com/alnah/go-pitchdeck/internal/fileutil"
	"github.com/alnah/go-pitchdeck/internal/hints"
	"github.com/alnah/go-pitchdeck/internal/logger"
)

// resolveConfig builds the effective configuration.
// Precedence: flags > PITCHDECK_* environment > config file > defaults.
// Flags are applied by the caller through apply, before validation.
func resolveConfig(common *commonFlags, env *Environment, apply func(*config.Config)) (*config.Config, error) {
	envCfg, err := loadEnvConfig(env)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
	}

	applyEnvConfig(envCfg, cfg)
	if apply != nil {
		apply(cfg)
	}
	if common.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyGenerationFlags copies set generation flags into cfg.
func applyGenerationFlags(f *generationFlags, cfg *config.Config) {
	setString(&cfg.Generation.Provider, f.provider)
	setString(&cfg.Generation.Model, f.model)
	setString(&cfg.Generation.BaseURL, f.baseURL)
	if f.timeout > 0 {
		cfg.Generation.Timeout = f.timeout
	}
}

// applyExportFlags copies set export flags into cfg.
func applyExportFlags(f *exportFlags, cfg *config.Config) {
	setString(&cfg.Branding.Footer, f.footer)
	setString(&cfg.Assets.BasePath, f.assetPath)
	if f.timeout > 0 {
		cfg.Export.Timeout = f.timeout
	}
}

// cliLogger returns the logger for one-shot commands. Quiet keeps errors only.
func cliLogger(env *Environment, cfg *config.Config, quiet bool) *slog.Logger {
	level := cfg.Logging.Level
	if quiet {
		level = "error"
	}
	return logger.New(env.Stderr, level, cfg.Logging.Format)
}

// newClient creates the generation client named by cfg.
// The API key comes from the environment only.
func newClient(ctx context.Context, env *Environment, cfg *config.Config, log *slog.Logger) (*pitchdeck.Client, error) {
	provider := cfg.Generation.Provider
	backend, err := env.NewBackend(ctx, pitchdeck.BackendConfig{
		Provider: provider,
		APIKey:   apiKeyFor(env, provider),
		Model:    cfg.Generation.Model,
		BaseURL:  cfg.Generation.BaseURL,
	})
	if err != nil {
		if errors.Is(err, pitchdeck.ErrMissingAPIKey) {
			return nil, fmt.Errorf("%w%s", err, hints.ForMissingAPIKey(provider))
		}
		return nil, err
	}

	opts := []pitchdeck.ClientOption{pitchdeck.WithClientLogger(log)}
	if cfg.Generation.Timeout > 0 {
		opts = append(opts, pitchdeck.WithGenerationTimeout(cfg.Generation.Timeout))
	}
	return pitchdeck.NewClient(backend, opts...), nil
}

// rendererOptions returns the renderer options named by cfg.
func rendererOptions(cfg *config.Config) []pitchdeck.RendererOption {
	return []pitchdeck.RendererOption{
		pitchdeck.WithBrand(cfg.Branding.Footer),
		pitchdeck.WithAssetPath(cfg.Assets.BasePath),
	}
}

// exporterOptions returns the exporter options named by cfg.
func exporterOptions(cfg *config.Config, log *slog.Logger) []pitchdeck.ExporterOption {
	opts := []pitchdeck.ExporterOption{
		pitchdeck.WithRendererOptions(rendererOptions(cfg)...),
		pitchdeck.WithLogger(log),
	}
	if cfg.Export.Timeout > 0 {
		opts = append(opts, pitchdeck.WithTimeout(cfg.Export.Timeout))
	}
	return opts
}

// withHint appends the hint matching a generation or export failure.
func withHint(err error) error {
	switch {
	case errors.Is(err, pitchdeck.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, pitchdeck.ErrGeneration):
		return fmt.Errorf("%w%s", err, hints.ForGeneration())
	case errors.Is(err, pitchdeck.ErrTemplateNotFound):
		return fmt.Errorf("%w%s", err, hints.ForTemplateNotFound(templateNames))
	}
	return err
}

// templateNames lists the overridable slide templates.
var templateNames = []string{"cover.html", "slide.html", "buffer.html", "app.html"}

// exportToFile exports deck and writes the PDF to output.
// An empty output uses the deck filename in the working directory;
// an existing directory receives the deck filename inside it.
func exportToFile(ctx context.Context, env *Environment, deck *pitchdeck.GeneratedDeck, output string, opts []pitchdeck.ExporterOption) (string, *pitchdeck.Document, error) {
	exp, err := env.NewExporter(opts...)
	if err != nil {
		return "", nil, withHint(err)
	}
	defer func() { _ = exp.Close() }()

	doc, err := exp.ExportDeck(ctx, deck)
	if err != nil {
		return "", nil, withHint(err)
	}

	path := resolveOutputPath(output, doc.Filename)
	if err := writeFile(path, doc.PDF); err != nil {
		return "", nil, err
	}
	return path, doc, nil
}

// resolveOutputPath picks where a document named filename is written.
func resolveOutputPath(output, filename string) string {
	switch {
	case output == "":
		return filename
	case fileutil.IsDir(output):
		return filepath.Join(output, filename)
	default:
		return output
	}
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	return nil
}
