package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRecords renders records as plain text with a dual line-number
// gutter and a marker column
// This is suitable for both CLI output and file export
//
// Unchanged rows carry both numbers and a blank marker, added rows "+",
// removed rows "-". Replaced records print two rows marked "~", the old
// side then the new side; with marked set their changed segments are
// wrapped in [-...-] and {+...+}.
func FormatRecords(records []DiffRecord, marked bool) string {
	width := gutterWidth(records)
	var b strings.Builder
	for i := range records {
		writeRecord(&b, width, &records[i], marked)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, width int, r *DiffRecord, marked bool) {
	switch r.Kind {
	case RecordUnchanged:
		writeRow(b, width, r.OldLine, r.NewLine, ' ', r.Text)
	case RecordAdded:
		writeRow(b, width, 0, r.NewLine, '+', r.Text)
	case RecordDeleted:
		writeRow(b, width, r.OldLine, 0, '-', r.Text)
	case RecordReplaced:
		writeRow(b, width, r.OldLine, 0, '~', sideText(r.OldSegments, marked, "[-", "-]"))
		writeRow(b, width, 0, r.NewLine, '~', sideText(r.NewSegments, marked, "{+", "+}"))
	}
}

// FormatRecordsContext renders records like FormatRecords, but folds
// each run of unchanged rows down to context lines around the nearest
// change. The hidden middle prints as a single "..." row with a count.
// A negative context disables folding.
func FormatRecordsContext(records []DiffRecord, marked bool, context int) string {
	if context < 0 {
		return FormatRecords(records, marked)
	}

	keep := make([]bool, len(records))
	for i := range records {
		if records[i].Kind == RecordUnchanged {
			continue
		}
		lo := i - context
		if lo < 0 {
			lo = 0
		}
		hi := i + context
		if hi > len(records)-1 {
			hi = len(records) - 1
		}
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	width := gutterWidth(records)
	indent := strings.Repeat(" ", 2*width+2)
	var b strings.Builder
	hidden := 0
	for i := range records {
		if !keep[i] {
			hidden++
			continue
		}
		if hidden > 0 {
			fmt.Fprintf(&b, "%s... %d unchanged lines ...\n", indent, hidden)
			hidden = 0
		}
		writeRecord(&b, width, &records[i], marked)
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "%s... %d unchanged lines ...\n", indent, hidden)
	}
	return b.String()
}

// FormatStats renders counts as the compact "+added ~changed -removed"
// summary used in status bars and selectors
func FormatStats(s Stats) string {
	return fmt.Sprintf("+%d ~%d -%d", s.Added, s.Changed, s.Removed)
}

func writeRow(b *strings.Builder, width, oldLine, newLine int, marker byte, text string) {
	b.WriteString(gutterCell(oldLine, width))
	b.WriteByte(' ')
	b.WriteString(gutterCell(newLine, width))
	b.WriteByte(' ')
	b.WriteByte(marker)
	b.WriteByte(' ')
	b.WriteString(text)
	b.WriteByte('\n')
}

// gutterCell renders one line number right-aligned, or blanks for 0
func gutterCell(line, width int) string {
	if line == 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, line)
}

// gutterWidth returns the digit width of the largest line number present
func gutterWidth(records []DiffRecord) int {
	maxLine := 1
	for i := range records {
		if records[i].OldLine > maxLine {
			maxLine = records[i].OldLine
		}
		if records[i].NewLine > maxLine {
			maxLine = records[i].NewLine
		}
	}
	return len(strconv.Itoa(maxLine))
}

// sideText joins one side's segments, wrapping changed runs in the given
// marks when asked
func sideText(segments []CharSegment, marked bool, openMark, closeMark string) string {
	if !marked {
		return joinSegments(segments)
	}
	var b strings.Builder
	for _, seg := range segments {
		if seg.Changed {
			b.WriteString(openMark)
			b.WriteString(seg.Text)
			b.WriteString(closeMark)
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
