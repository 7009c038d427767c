package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Display width helpers. All widths are screen columns, not bytes:
// wide runes (CJK, emoji) take two columns, combining marks take none.

// RuneWidth returns the display width of a single rune
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// StringWidthUpTo measures s until maxWidth columns are filled and
// returns the width consumed and the byte length that fits
func StringWidthUpTo(s string, maxWidth int) (width int, byteLen int) {
	if maxWidth <= 0 {
		return 0, 0
	}
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return width, i
		}
		width += rw
	}
	return width, len(s)
}

// TruncateToWidth truncates a string to fit within maxWidth columns
// without splitting a rune
func TruncateToWidth(s string, maxWidth int) string {
	_, byteLen := StringWidthUpTo(s, maxWidth)
	return s[:byteLen]
}

// TruncateToWidthWithEllipsis truncates with a trailing "..." when the
// string does not fit
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	return TruncateToWidth(s, maxWidth-3) + "..."
}

// PadStringToWidth pads a string with spaces to a display width. A
// wider string is returned unchanged
func PadStringToWidth(s string, width int) string {
	current := StringWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}

// ExpandTabs replaces each tab with spaces up to the next tab stop
func ExpandTabs(s string, tabWidth int) string {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		b.WriteRune(r)
		col += RuneWidth(r)
	}
	return b.String()
}

// WrapToWidth breaks a line into pieces of at most maxWidth columns,
// preferring to break after spaces. A line that fits wraps to itself
func WrapToWidth(s string, maxWidth int) []string {
	if maxWidth <= 0 || StringWidth(s) <= maxWidth {
		return []string{s}
	}

	var lines []string
	rest := s
	for StringWidth(rest) > maxWidth {
		_, byteLen := StringWidthUpTo(rest, maxWidth)
		cut := byteLen
		if idx := strings.LastIndexByte(rest[:byteLen], ' '); idx > 0 {
			cut = idx
		}
		if cut == 0 {
			// A rune wider than the window still has to advance
			_, size := utf8.DecodeRuneInString(rest)
			cut = size
		}
		lines = append(lines, rest[:cut])
		rest = strings.TrimLeft(rest[cut:], " ")
		if rest == "" {
			return lines
		}
	}
	return append(lines, rest)
}
