package main

import (
	"errors"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// generationFlags select and tune the hosted model.
type generationFlags struct {
	provider string
	model    string
	baseURL  string
	timeout  time.Duration
}

// exportFlags tune PDF export and slide rendering.
type exportFlags struct {
	timeout   time.Duration
	footer    string
	assetPath string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common     commonFlags
	generation generationFlags
	export     exportFlags
	addr       string
	workers    int
	logFormat  string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common     commonFlags
	generation generationFlags
	export     exportFlags
	output     string
	format     string
	pdf        string
}

// exportCmdFlags holds all flags for the export command.
type exportCmdFlags struct {
	common commonFlags
	export exportFlags
	output string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
}

func addGenerationFlags(fs *flag.FlagSet, f *generationFlags) {
	fs.StringVar(&f.provider, "provider", "", "generation provider: gemini, openai")
	fs.StringVar(&f.model, "model", "", "model name (default: provider default)")
	fs.StringVar(&f.baseURL, "base-url", "", "API base URL override")
	fs.DurationVar(&f.timeout, "gen-timeout", 0, "generation timeout (e.g. 45s)")
}

func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "PDF export timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.footer, "footer", "", "footer brand drawn on every slide")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseArgs parses args, reporting bad flags as usage errors.
func parseArgs(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return usageErrorf("%v", err)
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	fs := newFlagSet("serve", printServeUsage, stderr)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "export browsers (0 = auto)")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	addCommonFlags(fs, &f.common)
	addGenerationFlags(fs, &f.generation)
	addExportFlags(fs, &f.export)

	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, usageErrorf("serve takes no arguments, got %q", fs.Arg(0))
	}
	return f, nil
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	fs := newFlagSet("generate", printGenerateUsage, stderr)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "deck output file (default: stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "deck format: yaml, json (default: from extension, else yaml)")
	fs.StringVar(&f.pdf, "pdf", "", "also export the deck to this PDF file or directory")
	addCommonFlags(fs, &f.common)
	addGenerationFlags(fs, &f.generation)
	addExportFlags(fs, &f.export)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, stderr io.Writer) (*exportCmdFlags, []string, error) {
	fs := newFlagSet("export", printExportUsage, stderr)
	f := &exportCmdFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "PDF output file or directory")
	addCommonFlags(fs, &f.common)
	addExportFlags(fs, &f.export)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
