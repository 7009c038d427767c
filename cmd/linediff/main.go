package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/input"
	"github.com/pstuifzand/tui-diff/internal/ui"
)

func main() {
	format := flag.String("format", "text", "Output format: text, fields, json or jsonl")
	fields := flag.String("fields", "", "Comma-separated fields for fields/json/jsonl output")
	statsOnly := flag.Bool("stats", false, "Print the change summary only")
	marks := flag.Bool("marks", false, "Mark changed segments inline")
	context := flag.Int("context", -1, "Fold unchanged runs down to N context lines")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: linediff [options] <old> <new>

Compares two text files line by line and prints the differences with a
dual line-number gutter.

Options:
  -format string   Output format: text, fields, json or jsonl (default "text")
  -fields string   Comma-separated fields for fields/json/jsonl output
                   (kind, old_line, new_line, text, old_text, new_text,
                   changed, segments)
  -stats           Print the change summary only
  -marks           Mark changed segments inline ([-old-] and {+new+})
  -context N       Fold unchanged runs down to N context lines (text format)

Exit status:
  0  the files match
  1  the files differ
  2  an error occurred

Examples:
  # Plain text diff with line numbers
  linediff old.txt new.txt

  # Only changed lines with three lines of context
  linediff -context 3 old.txt new.txt

  # Machine-readable change stream
  linediff -format jsonl -fields kind,new_line,text old.txt new.txt

  # Just the summary
  linediff -stats old.txt new.txt
`)
	}

	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}

	oldDoc, err := input.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading old file: %v\n", err)
		os.Exit(2)
	}
	newDoc, err := input.Load(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading new file: %v\n", err)
		os.Exit(2)
	}

	result := diff.Compare(oldDoc.Text, newDoc.Text)

	if *statsOnly {
		fmt.Println(diff.FormatStats(result.Stats))
		exitForStats(result.Stats)
	}

	outputFormat, err := ui.ParseFormatFlag(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var out string
	if outputFormat == ui.OutputFormatText {
		out = diff.FormatRecordsContext(result.Records, *marks, *context)
	} else {
		out, err = ui.FormatRecords(result.Records, outputFormat, ui.ParseFieldsFlag(*fields))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}
	if out != "" {
		fmt.Print(out)
		if out[len(out)-1] != '\n' {
			fmt.Println()
		}
	}

	exitForStats(result.Stats)
}

// exitForStats exits 1 when the comparison found differences, 0 otherwise
func exitForStats(s diff.Stats) {
	if s.Added > 0 || s.Changed > 0 || s.Removed > 0 {
		os.Exit(1)
	}
	os.Exit(0)
}
