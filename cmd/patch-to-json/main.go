package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/tui-diff/internal/input"
	"github.com/pstuifzand/tui-diff/internal/patch"
	"github.com/pstuifzand/tui-diff/internal/ui"
)

func main() {
	format := flag.String("format", "json", "Output format: json or jsonl")
	fields := flag.String("fields", "", "Comma-separated record fields to emit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: patch-to-json [options] <input.patch> [output.json]

Parses a unified diff file and emits its records as JSON.

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Arguments:
  input.patch  Path to the unified diff file to convert
  output.json  Path to write the JSON output (optional)
               If not provided, writes to stdout

Examples:
  # Convert and print to stdout
  patch-to-json changes.patch

  # One JSON object per record, for streaming tools
  patch-to-json -format jsonl changes.patch | jq 'select(.kind != "unchanged")'

  # Pick the emitted fields
  patch-to-json -fields kind,new_line,text changes.patch records.json
`)
	}

	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath := args[0]
	outputPath := ""
	if len(args) > 1 {
		outputPath = args[1]
	}

	doc, err := input.Load(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	pf, err := patch.Parse(doc.Text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing patch: %v\n", err)
		os.Exit(1)
	}

	outputFormat, err := ui.ParseFormatFlag(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if outputFormat != ui.OutputFormatJSON && outputFormat != ui.OutputFormatJSONL {
		fmt.Fprintf(os.Stderr, "Error: format must be json or jsonl\n")
		os.Exit(1)
	}

	out, err := ui.FormatRecords(pf.Records, outputFormat, ui.ParseFieldsFlag(*fields))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting records: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		fmt.Println(out)
		return
	}

	outDir := filepath.Dir(outputPath)
	if outDir != "." && outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(outputPath, []byte(out+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Successfully converted: %s → %s (%d records)\n", inputPath, outputPath, len(pf.Records))
}
