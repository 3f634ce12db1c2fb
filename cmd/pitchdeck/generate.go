package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	pitchdeck "github.com/alnah/go-pitchdeck"
	"github.com/alnah/go-pitchdeck/internal/config"
	"github.com/alnah/go-pitchdeck/internal/yamlutil"
)

// Deck file formats.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// runGenerate reads a pitch input file, generates a deck and writes it as
// YAML or JSON. With --pdf the deck is also exported.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: generate needs a pitch input file (or - for stdin)", ErrNoInput)
	}
	if len(positional) > 1 {
		return usageErrorf("generate takes one input file, got %d", len(positional))
	}

	format, err := deckFormat(f.format, f.output)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(&f.common, env, func(cfg *config.Config) {
		applyGenerationFlags(&f.generation, cfg)
		applyExportFlags(&f.export, cfg)
	})
	if err != nil {
		return err
	}
	log := cliLogger(env, cfg, f.common.quiet)

	var in pitchdeck.PitchInput
	if err := yamlutil.ReadFile(positional[0], &in); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadInput, positional[0], err)
	}
	if err := in.Validate(); err != nil {
		return err
	}

	client, err := newClient(ctx, env, cfg, log)
	if err != nil {
		return err
	}

	if !f.common.quiet && f.output != "" {
		fmt.Fprintf(env.Stderr, "Generating deck for %s with %s...\n", in.StartupName, client.Backend())
	}
	deck, err := client.GenerateDeck(ctx, in)
	if err != nil {
		return withHint(err)
	}

	data, err := encodeDeck(deck, format)
	if err != nil {
		return err
	}
	if f.output == "" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
	} else {
		if err := writeFile(f.output, data); err != nil {
			return err
		}
		if !f.common.quiet {
			fmt.Fprintf(env.Stderr, "Created %s (%d slides)\n", f.output, deck.Len())
		}
	}

	if f.pdf == "" {
		return nil
	}
	path, doc, err := exportToFile(ctx, env, deck, f.pdf, exporterOptions(cfg, log))
	if err != nil {
		return err
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s (%d pages)\n", path, doc.Pages)
	}
	return nil
}

// deckFormat returns the output format from the flag, else from the output
// extension, else YAML.
func deckFormat(flagValue, output string) (string, error) {
	if flagValue != "" {
		switch v := strings.ToLower(flagValue); v {
		case formatYAML, "yml":
			return formatYAML, nil
		case formatJSON:
			return formatJSON, nil
		default:
			return "", fmt.Errorf("%w: %q (use yaml or json)", ErrFormat, flagValue)
		}
	}
	if strings.EqualFold(filepath.Ext(output), ".json") {
		return formatJSON, nil
	}
	return formatYAML, nil
}

// encodeDeck serializes deck in format.
func encodeDeck(deck *pitchdeck.GeneratedDeck, format string) ([]byte, error) {
	if format == formatJSON {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(deck); err != nil {
			return nil, fmt.Errorf("encoding deck: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yamlutil.Marshal(deck)
	if err != nil {
		return nil, fmt.Errorf("encoding deck: %w", err)
	}
	return data, nil
}
