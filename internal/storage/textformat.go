package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/session"
)

// The .tdiff format stores a session as line-oriented sections so saved
// sessions diff cleanly under version control:
//
//   [SESSION]
//   id: sess_20250823150405_ab12cd
//   created: 2025-08-23T15:04:05.123456789Z
//   modified: 2025-08-23T15:06:11.42Z
//   old-name: old
//   old-path: /tmp/a.txt
//   old-loaded: 2025-08-23T15:04:05Z
//   old-final-newline: true
//   new-name: new
//   ...
//
//   [OLD TEXT]
//   1: escaped line content
//   2: escaped line content
//
//   [NEW TEXT]
//   1: escaped line content
//
// Text escaping:
//   - \ (backslash) is encoded as \\
//   - newline is encoded as \n
//
// Pane text is stored one numbered entry per line. Whether the text ended
// with a trailing newline is kept in the final-newline meta keys, so
// decoding reproduces the original bytes exactly.

// EncodeTextFormat writes a session in the .tdiff format
func EncodeTextFormat(sess *session.Session, w io.Writer) error {
	writer := bufio.NewWriter(w)

	if _, err := writer.WriteString("[SESSION]\n"); err != nil {
		return err
	}

	meta := []metaEntry{
		{"id", sess.ID},
		{"created", sess.Created.Format(time.RFC3339Nano)},
		{"modified", sess.Modified.Format(time.RFC3339Nano)},
	}
	meta = append(meta, paneMeta("old", sess.Old)...)
	meta = append(meta, paneMeta("new", sess.New)...)

	for _, m := range meta {
		if m.value == "" {
			continue
		}
		if _, err := writer.WriteString(fmt.Sprintf("%s: %s\n", m.key, m.value)); err != nil {
			return err
		}
	}

	if err := writeTextSection(writer, "[OLD TEXT]", sess.Old.Text); err != nil {
		return err
	}
	if err := writeTextSection(writer, "[NEW TEXT]", sess.New.Text); err != nil {
		return err
	}

	return writer.Flush()
}

type metaEntry struct {
	key   string
	value string
}

// paneMeta builds the SESSION section entries for one pane
func paneMeta(prefix string, pane *session.Pane) []metaEntry {
	entries := []metaEntry{
		{prefix + "-name", encodeTextValue(pane.Name)},
		{prefix + "-path", pane.Path},
	}
	if !pane.LoadedAt.IsZero() {
		entries = append(entries, metaEntry{prefix + "-loaded", pane.LoadedAt.Format(time.RFC3339Nano)})
	}
	final := strconv.FormatBool(strings.HasSuffix(pane.Text, "\n"))
	entries = append(entries, metaEntry{prefix + "-final-newline", final})
	return entries
}

// writeTextSection writes one pane text as numbered, escaped lines
func writeTextSection(writer *bufio.Writer, header, text string) error {
	if _, err := writer.WriteString("\n" + header + "\n"); err != nil {
		return err
	}
	for i, line := range diff.SplitLines(text) {
		entry := fmt.Sprintf("%d: %s\n", i+1, encodeTextValue(line))
		if _, err := writer.WriteString(entry); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTextFormat reads a session from the .tdiff format
func DecodeTextFormat(r io.Reader) (*session.Session, error) {
	scanner := bufio.NewScanner(r)
	// Session lines can exceed bufio's default 64K token limit
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	sess := session.NewSession()
	meta := make(map[string]string)
	var oldLines, newLines []string

	var bufferedLine *string // Store a section header for the next iteration

	readMeta := func() error {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(line, "[") {
				bufferedLine = &line
				return nil
			}
			if line == "" {
				continue
			}
			key, value, err := parseMetaLine(line)
			if err != nil {
				return err
			}
			meta[key] = value
		}
		return scanner.Err()
	}

	readText := func(lines *[]string) error {
		for scanner.Scan() {
			// A trailing CR belongs to the file's line ending, not the content
			raw := strings.TrimSuffix(scanner.Text(), "\r")
			line := strings.TrimSpace(raw)
			if strings.HasPrefix(line, "[") {
				bufferedLine = &line
				return nil
			}
			if line == "" {
				continue
			}
			content, err := parseNumberedLine(raw)
			if err != nil {
				return err
			}
			*lines = append(*lines, content)
		}
		return scanner.Err()
	}

	for {
		var line string
		if bufferedLine != nil {
			line = *bufferedLine
			bufferedLine = nil
		} else {
			if !scanner.Scan() {
				break
			}
			line = strings.TrimSpace(scanner.Text())
		}

		switch line {
		case "[SESSION]":
			if err := readMeta(); err != nil {
				return nil, fmt.Errorf("error reading SESSION section: %w", err)
			}
		case "[OLD TEXT]":
			if err := readText(&oldLines); err != nil {
				return nil, fmt.Errorf("error reading OLD TEXT section: %w", err)
			}
		case "[NEW TEXT]":
			if err := readText(&newLines); err != nil {
				return nil, fmt.Errorf("error reading NEW TEXT section: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	applySessionMeta(sess, meta)
	sess.Old.Text = joinLines(oldLines, metaBool(meta, "old-final-newline", true))
	sess.New.Text = joinLines(newLines, metaBool(meta, "new-final-newline", true))
	sess.Old.Modified = false
	sess.New.Modified = false

	return sess, nil
}

// applySessionMeta copies parsed SESSION entries onto the session,
// keeping the fresh-session defaults for anything missing
func applySessionMeta(sess *session.Session, meta map[string]string) {
	if id, ok := meta["id"]; ok && id != "" {
		sess.ID = id
	}
	if t, err := time.Parse(time.RFC3339Nano, meta["created"]); err == nil {
		sess.Created = t
	}
	if t, err := time.Parse(time.RFC3339Nano, meta["modified"]); err == nil {
		sess.Modified = t
	}
	applyPaneMeta(sess.Old, "old", meta)
	applyPaneMeta(sess.New, "new", meta)
}

func applyPaneMeta(pane *session.Pane, prefix string, meta map[string]string) {
	if name, ok := meta[prefix+"-name"]; ok && name != "" {
		pane.Name = decodeTextValue(name)
	}
	if path, ok := meta[prefix+"-path"]; ok {
		pane.Path = path
	}
	if t, err := time.Parse(time.RFC3339Nano, meta[prefix+"-loaded"]); err == nil {
		pane.LoadedAt = t
	}
}

// metaBool reads a true/false meta value, returning fallback when the key
// is absent
func metaBool(meta map[string]string, key string, fallback bool) bool {
	value, ok := meta[key]
	if !ok {
		return fallback
	}
	return value == "true"
}

// joinLines rebuilds pane text from decoded lines and the recorded
// trailing-newline state
func joinLines(lines []string, finalNewline bool) string {
	if len(lines) == 0 {
		return ""
	}
	text := strings.Join(lines, "\n")
	if finalNewline {
		text += "\n"
	}
	return text
}

// parseMetaLine parses a line from the SESSION section
// Format: key: value
func parseMetaLine(line string) (key, value string, err error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid session line format: %s", line)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// parseNumberedLine parses a content line from a text section.
// Format: N: escaped content. Only the single separator space is stripped,
// so leading and trailing whitespace in the content survives the round trip.
func parseNumberedLine(raw string) (string, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid text line format: %s", raw)
	}
	if _, err := strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return "", fmt.Errorf("invalid text line number: %s", raw)
	}
	content := strings.TrimPrefix(parts[1], " ")
	return decodeTextValue(content), nil
}

// encodeTextValue encodes a text value with proper escape sequence handling
// Backslashes are escaped first, then newlines
func encodeTextValue(text string) string {
	var result strings.Builder
	for _, ch := range text {
		switch ch {
		case '\\':
			result.WriteString("\\\\")
		case '\n':
			result.WriteString("\\n")
		default:
			result.WriteRune(ch)
		}
	}
	return result.String()
}

// decodeTextValue decodes a text value with proper escape sequence parsing
// Reads character by character to handle \n and \\ correctly
func decodeTextValue(text string) string {
	var result strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			next := text[i+1]
			if next == 'n' {
				result.WriteRune('\n')
				i++ // Skip the 'n'
			} else if next == '\\' {
				result.WriteRune('\\')
				i++ // Skip the second backslash
			} else {
				// Unrecognized escape sequence, treat as literal
				result.WriteByte('\\')
			}
		} else {
			result.WriteByte(text[i])
		}
	}
	return result.String()
}
