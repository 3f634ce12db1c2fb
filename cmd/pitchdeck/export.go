package main

import (
	"context"
	"fmt"

	pitchdeck "github.com/alnah/go-pitchdeck"
	"github.com/alnah/go-pitchdeck/internal/config"
	"github.com/alnah/go-pitchdeck/internal/hints"
	"github.com/alnah/go-pitchdeck/internal/yamlutil"
)

// runExport reads a deck file (YAML or JSON) and writes its PDF.
func runExport(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: export needs a deck file (or - for stdin)", ErrNoInput)
	}
	if len(positional) > 1 {
		return usageErrorf("export takes one deck file, got %d", len(positional))
	}

	cfg, err := resolveConfig(&f.common, env, func(cfg *config.Config) {
		applyExportFlags(&f.export, cfg)
	})
	if err != nil {
		return err
	}
	log := cliLogger(env, cfg, f.common.quiet)

	deck, err := readDeck(positional[0])
	if err != nil {
		return err
	}

	path, doc, err := exportToFile(ctx, env, deck, f.output, exporterOptions(cfg, log))
	if err != nil {
		return err
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s (%d pages)\n", path, doc.Pages)
	}
	return nil
}

// readDeck loads and validates a deck file. JSON is a subset of YAML, so
// one decoder serves both.
func readDeck(path string) (*pitchdeck.GeneratedDeck, error) {
	var deck pitchdeck.GeneratedDeck
	if err := yamlutil.ReadFile(path, &deck); err != nil {
		return nil, fmt.Errorf("%w: %s: %w%s", ErrReadInput, path, err, hints.ForDeckFile())
	}
	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForDeckFile())
	}
	return &deck, nil
}
