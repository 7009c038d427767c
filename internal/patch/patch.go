// Package patch reads unified diff files into record streams
package patch

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// PatchFile is a parsed unified diff, viewable but not editable
type PatchFile struct {
	OldName string
	NewName string
	Records []diff.DiffRecord
}

// Stats counts the parsed records by kind
func (p *PatchFile) Stats() diff.Stats {
	return diff.CountStats(p.Records)
}

var hunkPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse reads unified diff text into a PatchFile. Hunk headers seed the
// per-side line counters, a delete directly followed by an insert pairs
// into one replaced record like the differ's own output, and "\ No newline
// at end of file" markers are dropped. Lines between hunks are header
// noise and skipped; an unrecognized line inside a hunk is an error.
func Parse(content string) (*PatchFile, error) {
	pf := &PatchFile{}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		oldLine, newLine     int
		oldRemain, newRemain int
		pending              *diff.DiffRecord
		lineNo               int
		sawHunk              bool
	)

	flush := func() {
		if pending != nil {
			pf.Records = append(pf.Records, *pending)
			pending = nil
		}
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if oldRemain <= 0 && newRemain <= 0 {
			// between hunks
			flush()
			switch {
			case strings.HasPrefix(line, "--- "):
				if pf.OldName == "" {
					pf.OldName = parseName(line, "--- ", "a/")
				}
			case strings.HasPrefix(line, "+++ "):
				if pf.NewName == "" {
					pf.NewName = parseName(line, "+++ ", "b/")
				}
			case strings.HasPrefix(line, "@@"):
				m := hunkPattern.FindStringSubmatch(line)
				if m == nil {
					return nil, fmt.Errorf("line %d: malformed hunk header %q", lineNo, line)
				}
				oldLine = atoiDefault(m[1], 1)
				oldRemain = atoiDefault(m[2], 1)
				newLine = atoiDefault(m[3], 1)
				newRemain = atoiDefault(m[4], 1)
				sawHunk = true
			}
			continue
		}

		switch {
		case line == `\ No newline at end of file`:
			continue

		case strings.HasPrefix(line, " ") || line == "":
			flush()
			pf.Records = append(pf.Records, diff.DiffRecord{
				Kind:    diff.RecordUnchanged,
				OldLine: oldLine,
				NewLine: newLine,
				Text:    strings.TrimPrefix(line, " "),
			})
			oldLine++
			newLine++
			oldRemain--
			newRemain--

		case strings.HasPrefix(line, "-"):
			flush()
			pending = &diff.DiffRecord{
				Kind:    diff.RecordDeleted,
				OldLine: oldLine,
				Text:    line[1:],
			}
			oldLine++
			oldRemain--

		case strings.HasPrefix(line, "+"):
			if pending != nil {
				oldSegs, newSegs := diff.CharDiff(pending.Text, line[1:])
				pf.Records = append(pf.Records, diff.DiffRecord{
					Kind:        diff.RecordReplaced,
					OldLine:     pending.OldLine,
					NewLine:     newLine,
					OldSegments: oldSegs,
					NewSegments: newSegs,
				})
				pending = nil
			} else {
				pf.Records = append(pf.Records, diff.DiffRecord{
					Kind:    diff.RecordAdded,
					NewLine: newLine,
					Text:    line[1:],
				})
			}
			newLine++
			newRemain--

		default:
			return nil, fmt.Errorf("line %d: unexpected %q inside hunk", lineNo, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawHunk {
		return nil, fmt.Errorf("no hunks found: not a unified diff")
	}
	return pf, nil
}

// parseName extracts a file name from a "---" or "+++" header line,
// dropping the timestamp column and the conventional a/ or b/ prefix
func parseName(line, prefix, strip string) string {
	name := strings.TrimPrefix(line, prefix)
	if i := strings.IndexByte(name, '\t'); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, strip)
	if name == "/dev/null" {
		return ""
	}
	return name
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
