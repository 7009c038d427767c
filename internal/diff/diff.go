package diff

import "strings"

// SplitLines splits text into lines on "\n". An empty string has no lines,
// and one trailing newline does not open a final empty line, so "a\n" is
// one line while "a\n\n" is two.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Compare computes the line-level difference between two texts and returns
// the assembled records with per-kind counts
// This is the main entry point for comparing pane contents
func Compare(oldText, newText string) *Result {
	oldLines := SplitLines(oldText)
	newLines := SplitLines(newText)

	ops := lineDiff(oldLines, newLines)
	records := assembleRecords(ops, oldLines, newLines)

	// Two empty texts have no lines to pair, but callers still expect a
	// row to show; give them one empty unchanged line.
	if len(records) == 0 && oldText == newText {
		records = append(records, DiffRecord{
			Kind:    RecordUnchanged,
			OldLine: 1,
			NewLine: 1,
		})
	}

	return &Result{
		Records: records,
		Stats:   CountStats(records),
	}
}

// CountStats tallies records by kind, also used by the UI to recount
// filtered subsets
func CountStats(records []DiffRecord) Stats {
	var s Stats
	for i := range records {
		switch records[i].Kind {
		case RecordUnchanged:
			s.Unchanged++
		case RecordAdded:
			s.Added++
		case RecordDeleted:
			s.Removed++
		case RecordReplaced:
			s.Changed++
		}
	}
	return s
}
