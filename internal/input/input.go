// Package input loads files into comparison panes
package input

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Kind classifies what a path should open as
type Kind int

const (
	KindText Kind = iota
	KindPatch
	KindSession
)

// Document is the loaded content of one file
type Document struct {
	Path    string
	Name    string
	Text    string
	Size    int64
	ModTime time.Time
}

// binarySniffLen bounds how much of a file the NUL check inspects
const binarySniffLen = 8192

// DetectKind classifies a path by extension: patch files open in the
// patch reader, saved sessions restore both panes, everything else loads
// as plain text.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".patch", ".diff":
		return KindPatch
	case ".tdiff", ".json":
		return KindSession
	}
	return KindText
}

// Load reads a file for a pane. The text comes back normalized to LF line
// endings with any UTF-8 BOM removed; binary content is rejected.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if isBinary(data) {
		return nil, fmt.Errorf("%s looks like a binary file", path)
	}

	return &Document{
		Path:    path,
		Name:    filepath.Base(path),
		Text:    Normalize(data),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Normalize strips a UTF-8 BOM and converts CRLF and lone CR endings to LF
func Normalize(data []byte) string {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	return string(data)
}

// isBinary reports whether the first chunk contains a NUL byte
func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
