package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-diff/internal/session"
)

// Store persists sessions to disk
type Store interface {
	Load() (*session.Session, error)
	Save(*session.Session) error
	FileExists() bool
	Path() string
	ReadOnly() bool
}

// NewStoreFor picks a store by file extension: .json gets the JSON codec,
// everything else the .tdiff text format
func NewStoreFor(path string) Store {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return NewTextStore(path)
}

// TextStore handles .tdiff file persistence
type TextStore struct {
	FilePath string
	readOnly bool
}

// NewTextStore creates a text format store for the given file path
func NewTextStore(filePath string) *TextStore {
	return &TextStore{
		FilePath: filePath,
		readOnly: isReadOnlyPath(filePath),
	}
}

// Load reads a session from the .tdiff file
func (s *TextStore) Load() (*session.Session, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	s.readOnly = isReadOnlyPath(s.FilePath)

	sess, err := DecodeTextFormat(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(s.FilePath), err)
	}
	return sess, nil
}

// Save writes the session to the .tdiff file
func (s *TextStore) Save(sess *session.Session) error {
	if s.readOnly {
		return fmt.Errorf("%s is read-only", s.FilePath)
	}
	if err := ensureDir(s.FilePath); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := EncodeTextFormat(sess, &buf); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.FilePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileExists checks if the session file exists
func (s *TextStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// Path returns the file path this store reads and writes
func (s *TextStore) Path() string {
	return s.FilePath
}

// ReadOnly reports whether saving to this file is blocked
func (s *TextStore) ReadOnly() bool {
	return s.readOnly
}

// ensureDir creates the parent directory of path if needed
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// isReadOnlyPath reports whether path should be treated as read-only.
// Snapshot files always are, and so is any existing file whose owner
// write bit is clear.
func isReadOnlyPath(path string) bool {
	if path == "" {
		return false
	}
	if IsSnapshotFile(path) {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0200 == 0
}
