package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pstuifzand/tui-diff/internal/session"
)

// JSONStore handles JSON file persistence
type JSONStore struct {
	FilePath string
	readOnly bool
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
		readOnly: isReadOnlyPath(filePath),
	}
}

// Load loads a session from a JSON file
func (s *JSONStore) Load() (*session.Session, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	s.readOnly = isReadOnlyPath(s.FilePath)

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	// Restore state that is not persisted after deserialization
	restoreDerivedState(&sess)

	return &sess, nil
}

// Save saves a session to a JSON file
func (s *JSONStore) Save(sess *session.Session) error {
	if s.readOnly {
		return fmt.Errorf("%s is read-only", s.FilePath)
	}
	if err := ensureDir(s.FilePath); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the session file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// Path returns the file path this store reads and writes
func (s *JSONStore) Path() string {
	return s.FilePath
}

// ReadOnly reports whether saving to this file is blocked
func (s *JSONStore) ReadOnly() bool {
	return s.readOnly
}

// restoreDerivedState fills in fields the JSON codec does not carry: panes
// are never nil and start clean after a load
func restoreDerivedState(sess *session.Session) {
	if sess.Old == nil {
		sess.Old = &session.Pane{Name: "old"}
	}
	if sess.New == nil {
		sess.New = &session.Pane{Name: "new"}
	}
	sess.Old.Modified = false
	sess.New.Modified = false
}
