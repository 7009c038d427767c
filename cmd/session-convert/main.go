package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-diff/internal/storage"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: session-convert <input> [output]

Converts a saved comparison session between the .tdiff text format and
JSON. The input codec is picked from the input extension; the output
codec from the output extension, or the opposite of the input when
writing to stdout.

Arguments:
  input   Session file to convert (.tdiff or .json)
  output  Path to write the converted session (optional)
          If not provided, writes to stdout

Examples:
  # Print a JSON session in the text format
  session-convert session.json

  # Convert a text session to JSON
  session-convert session.tdiff session.json

  # Convert all JSON sessions in a directory
  for f in *.json; do session-convert "$f" "${f%%.json}.tdiff"; done
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

	sess, err := storage.NewStoreFor(inputPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		// Emit the opposite of the input format
		if strings.EqualFold(filepath.Ext(inputPath), ".json") {
			if err := storage.EncodeTextFormat(sess, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding session: %v\n", err)
				os.Exit(1)
			}
			return
		}
		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	if err := storage.NewStoreFor(outputPath).Save(sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Successfully converted: %s → %s\n", inputPath, outputPath)
}
