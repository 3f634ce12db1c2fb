package main

import (
	"context"
	"io"
	"os"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/joho/godotenv"

	pitchdeck "github.com/alnah/go-pitchdeck"
)

// deckExporter is the subset of *pitchdeck.Exporter the CLI uses.
type deckExporter interface {
	ExportDeck(ctx context.Context, deck *pitchdeck.GeneratedDeck) (*pitchdeck.Document, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv reads process variables; values loaded from .env fill gaps.
	LookupEnv func(string) (string, bool)
	Environ   func() []string
	dotenv    map[string]string

	NewBackend  func(ctx context.Context, cfg pitchdeck.BackendConfig) (pitchdeck.Backend, error)
	NewExporter func(opts ...pitchdeck.ExporterOption) (deckExporter, error)
	LookChrome  func() (string, bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LookupEnv:  os.LookupEnv,
		Environ:    os.Environ,
		NewBackend: pitchdeck.NewBackend,
		NewExporter: func(opts ...pitchdeck.ExporterOption) (deckExporter, error) {
			return pitchdeck.NewExporter(opts...)
		},
		LookChrome: launcher.LookPath,
	}
}

// Getenv returns the process value of key, or the .env value if unset.
func (e *Environment) Getenv(key string) string {
	if v, ok := e.LookupEnv(key); ok {
		return v
	}
	return e.dotenv[key]
}

// loadDotEnv reads path if it exists. Process variables keep priority.
func (e *Environment) loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	e.dotenv = vals
	return nil
}
