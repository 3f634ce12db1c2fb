package main

import (
	"context"
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	pitchdeck "github.com/alnah/go-pitchdeck"
	"github.com/alnah/go-pitchdeck/internal/config"
)

// Exit codes for the pitchdeck CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0   // Success
	ExitGeneral    = 1   // General/unexpected error
	ExitUsage      = 2   // Invalid flags, config, input or deck
	ExitIO         = 3   // File not found, permission denied, write failure
	ExitBrowser    = 4   // Browser/Chrome errors
	ExitGeneration = 5   // Hosted model call failed
	ExitInterrupt  = 130 // Canceled by signal
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if errors.Is(err, pitchdeck.ErrBrowserConnect) ||
		errors.Is(err, pitchdeck.ErrPageCreate) ||
		errors.Is(err, pitchdeck.ErrPageLoad) ||
		errors.Is(err, pitchdeck.ErrRasterize) {
		return ExitBrowser
	}

	if errors.Is(err, pitchdeck.ErrGeneration) {
		return ExitGeneration
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrFormat) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, pitchdeck.ErrMissingField) ||
		errors.Is(err, pitchdeck.ErrFieldTooLong) ||
		errors.Is(err, pitchdeck.ErrInvalidDeck) ||
		errors.Is(err, pitchdeck.ErrMissingAPIKey) ||
		errors.Is(err, pitchdeck.ErrUnknownBackend) ||
		errors.Is(err, pitchdeck.ErrTemplateNotFound) ||
		errors.Is(err, pitchdeck.ErrIncompleteTemplateSet) ||
		errors.Is(err, pitchdeck.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
