package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pitchdeck <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the web app (form, slide preview, PDF download)")
	fmt.Fprintln(w, "  generate   Generate a deck from a pitch input file")
	fmt.Fprintln(w, "  export     Export a deck file to PDF")
	fmt.Fprintln(w, "  doctor     Check Chrome and API key setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pitchdeck help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
	fmt.Fprintln(w)
}

func printGenerationUsage(w io.Writer) {
	fmt.Fprintln(w, "Generation:")
	fmt.Fprintln(w, "      --provider <s>        Provider: gemini, openai")
	fmt.Fprintln(w, "      --model <s>           Model name (default: provider default)")
	fmt.Fprintln(w, "      --base-url <url>      API base URL override")
	fmt.Fprintln(w, "      --gen-timeout <d>     Generation timeout (e.g. 45s)")
	fmt.Fprintln(w)
}

func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pitchdeck export <deck> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a deck file (YAML or JSON) to a landscape PDF, one page per slide.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  deck    Deck file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       PDF file or directory (default: <Name>_Pitch_Deck.pdf)")
	fmt.Fprintln(w)
	printExportFlagsUsage(w)
	printCommonUsage(w)
}

func printExportFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Export:")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF export timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "      --footer <s>          Footer brand on every slide")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates and styles directory")
	fmt.Fprintln(w)
}

func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pitchdeck generate <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate ten slides of pitch copy from a pitch input file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input   Pitch input YAML or JSON, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Deck file (default: stdout)")
	fmt.Fprintln(w, "  -f, --format <s>          Deck format: yaml, json (default: from extension)")
	fmt.Fprintln(w, "      --pdf <path>          Also export the deck to PDF")
	fmt.Fprintln(w)
	printGenerationUsage(w)
	printExportFlagsUsage(w)
	printCommonUsage(w)
	fmt.Fprintln(w, "API keys are read from GEMINI_API_KEY (or API_KEY) and OPENAI_API_KEY,")
	fmt.Fprintln(w, "or from a .env file in the working directory.")
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pitchdeck serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the web app: pitch form, slide preview and PDF download.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -w, --workers <n>         Export browsers (0 = auto)")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w)
	printGenerationUsage(w)
	printExportFlagsUsage(w)
	printCommonUsage(w)
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pitchdeck doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, API key and environment setup.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Machine-readable output")
	fmt.Fprintln(w, "      --provider <s>        Provider whose API key is checked")
}

// commandUsage maps command names to their usage printers.
var commandUsage = map[string]func(io.Writer){
	"serve":    printServeUsage,
	"generate": printGenerateUsage,
	"export":   printExportUsage,
	"doctor":   printDoctorUsage,
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	usage, ok := commandUsage[args[0]]
	if !ok {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	usage(env.Stdout)
	return ExitSuccess
}
