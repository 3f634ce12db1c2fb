package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-pitchdeck/internal/fileutil"
	"github.com/alnah/go-pitchdeck/internal/logger"
	"github.com/alnah/go-pitchdeck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxAddrLength     = 256
	MaxProviderLength = 20
	MaxModelLength    = 100
	MaxURLLength      = 2048
	MaxFooterLength   = 200
	MaxPathLength     = 4096
	MaxWorkers        = 32
)

// Defaults applied by DefaultConfig.
const (
	DefaultAddr              = ":8080"
	DefaultSessionTTL        = 2 * time.Hour
	DefaultProvider          = "gemini"
	DefaultGenerationTimeout = 60 * time.Second
	DefaultExportTimeout     = 60 * time.Second
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
)

// AppDirName is the directory searched under the user config dir.
const AppDirName = "go-pitchdeck"

// Config holds all settings for the server and the CLI.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Export     ExportConfig     `yaml:"export"`
	Branding   BrandingConfig   `yaml:"branding"`
	Assets     AssetsConfig     `yaml:"assets"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig defines the web server.
type ServerConfig struct {
	Addr       string        `yaml:"addr"`
	SessionTTL time.Duration `yaml:"sessionTTL"` // idle sessions are dropped after this
}

// GenerationConfig selects the hosted model. API keys never live here;
// they come from the environment.
type GenerationConfig struct {
	Provider string        `yaml:"provider"` // "gemini" or "openai"
	Model    string        `yaml:"model"`    // empty = provider default
	BaseURL  string        `yaml:"baseURL"`  // empty = provider endpoint
	Timeout  time.Duration `yaml:"timeout"`
}

// ExportConfig defines PDF export.
type ExportConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Workers int           `yaml:"workers"` // 0 = auto
}

// BrandingConfig defines the footer brand drawn on every slide.
type BrandingConfig struct {
	Footer string `yaml:"footer"` // empty = built-in brand
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets
}

// LoggingConfig defines log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Validate checks every field. Called by LoadConfig, and by callers that
// build or override a Config themselves.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"generation.provider", c.Generation.Provider, MaxProviderLength},
		{"generation.model", c.Generation.Model, MaxModelLength},
		{"generation.baseURL", c.Generation.BaseURL, MaxURLLength},
		{"branding.footer", c.Branding.Footer, MaxFooterLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, ch := range checks {
		if err := validateFieldLength(ch.field, ch.value, ch.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Generation.Provider) {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("%w: generation.provider %q (must be gemini or openai)", ErrInvalidValue, c.Generation.Provider)
	}

	if c.Generation.BaseURL != "" {
		u, err := url.Parse(c.Generation.BaseURL)
		if err != nil || !fileutil.IsURL(c.Generation.BaseURL) || u.Host == "" {
			return fmt.Errorf("%w: generation.baseURL %q (must be an http(s) URL)", ErrInvalidValue, c.Generation.BaseURL)
		}
	}

	durations := []struct {
		field string
		value time.Duration
	}{
		{"server.sessionTTL", c.Server.SessionTTL},
		{"generation.timeout", c.Generation.Timeout},
		{"export.timeout", c.Export.Timeout},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidValue, d.field, d.value)
		}
	}

	if c.Export.Workers < 0 || c.Export.Workers > MaxWorkers {
		return fmt.Errorf("%w: export.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Export.Workers)
	}

	if !logger.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q (must be debug, info, warn or error)", ErrInvalidValue, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: logging.format %q (must be text or json)", ErrInvalidValue, c.Logging.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Server:     ServerConfig{Addr: DefaultAddr, SessionTTL: DefaultSessionTTL},
		Generation: GenerationConfig{Provider: DefaultProvider, Timeout: DefaultGenerationTimeout},
		Export:     ExportConfig{Timeout: DefaultExportTimeout},
		Logging:    LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
