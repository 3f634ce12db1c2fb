package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-pitchdeck/internal/config"
)

const envPrefix = "PITCHDECK_"

// envConfig holds PITCHDECK_* overrides.
type envConfig struct {
	ConfigPath    string        // PITCHDECK_CONFIG
	Addr          string        // PITCHDECK_ADDR
	Provider      string        // PITCHDECK_PROVIDER
	Model         string        // PITCHDECK_MODEL
	BaseURL       string        // PITCHDECK_BASE_URL
	Timeout       time.Duration // PITCHDECK_TIMEOUT: generation timeout
	ExportTimeout time.Duration // PITCHDECK_EXPORT_TIMEOUT
	Workers       int           // PITCHDECK_WORKERS
	Footer        string        // PITCHDECK_FOOTER
	AssetPath     string        // PITCHDECK_ASSET_PATH
	LogLevel      string        // PITCHDECK_LOG_LEVEL
	LogFormat     string        // PITCHDECK_LOG_FORMAT
}

// knownEnvVars lists valid PITCHDECK_* variables, for typo warnings.
var knownEnvVars = map[string]bool{
	"PITCHDECK_CONFIG":         true,
	"PITCHDECK_ADDR":           true,
	"PITCHDECK_PROVIDER":       true,
	"PITCHDECK_MODEL":          true,
	"PITCHDECK_BASE_URL":       true,
	"PITCHDECK_TIMEOUT":        true,
	"PITCHDECK_EXPORT_TIMEOUT": true,
	"PITCHDECK_WORKERS":        true,
	"PITCHDECK_FOOTER":         true,
	"PITCHDECK_ASSET_PATH":     true,
	"PITCHDECK_LOG_LEVEL":      true,
	"PITCHDECK_LOG_FORMAT":     true,
}

// loadEnvConfig reads PITCHDECK_* variables. Unparseable durations and
// counts are reported as errors rather than ignored.
func loadEnvConfig(env *Environment) (*envConfig, error) {
	c := &envConfig{
		ConfigPath: env.Getenv("PITCHDECK_CONFIG"),
		Addr:       env.Getenv("PITCHDECK_ADDR"),
		Provider:   env.Getenv("PITCHDECK_PROVIDER"),
		Model:      env.Getenv("PITCHDECK_MODEL"),
		BaseURL:    env.Getenv("PITCHDECK_BASE_URL"),
		Footer:     env.Getenv("PITCHDECK_FOOTER"),
		AssetPath:  env.Getenv("PITCHDECK_ASSET_PATH"),
		LogLevel:   env.Getenv("PITCHDECK_LOG_LEVEL"),
		LogFormat:  env.Getenv("PITCHDECK_LOG_FORMAT"),
	}

	var err error
	if c.Timeout, err = envDuration(env, "PITCHDECK_TIMEOUT"); err != nil {
		return nil, err
	}
	if c.ExportTimeout, err = envDuration(env, "PITCHDECK_EXPORT_TIMEOUT"); err != nil {
		return nil, err
	}
	if v := env.Getenv("PITCHDECK_WORKERS"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 {
			return nil, fmt.Errorf("%w: PITCHDECK_WORKERS=%q", ErrInvalidEnv, v)
		}
		c.Workers = n
	}
	return c, nil
}

func envDuration(env *Environment, key string) (time.Duration, error) {
	v := env.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q (want a positive duration like 45s)", ErrInvalidEnv, key, v)
	}
	return d, nil
}

// warnUnknownEnvVars reports PITCHDECK_* variables that are not recognized.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config values with set variables.
// Precedence: flags > environment > config file > defaults.
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	setString(&cfg.Server.Addr, e.Addr)
	setString(&cfg.Generation.Provider, e.Provider)
	setString(&cfg.Generation.Model, e.Model)
	setString(&cfg.Generation.BaseURL, e.BaseURL)
	setString(&cfg.Branding.Footer, e.Footer)
	setString(&cfg.Assets.BasePath, e.AssetPath)
	setString(&cfg.Logging.Level, e.LogLevel)
	setString(&cfg.Logging.Format, e.LogFormat)
	if e.Timeout > 0 {
		cfg.Generation.Timeout = e.Timeout
	}
	if e.ExportTimeout > 0 {
		cfg.Export.Timeout = e.ExportTimeout
	}
	if e.Workers > 0 {
		cfg.Export.Workers = e.Workers
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// apiKeyFor returns the API key for provider from the environment.
// Gemini accepts GEMINI_API_KEY, then API_KEY.
func apiKeyFor(env *Environment, provider string) string {
	if strings.EqualFold(provider, "openai") {
		return env.Getenv("OPENAI_API_KEY")
	}
	if k := env.Getenv("GEMINI_API_KEY"); k != "" {
		return k
	}
	return env.Getenv("API_KEY")
}
