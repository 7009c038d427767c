// Package session contains the model for a comparison session
package session

import (
	"math/rand"
	"time"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// Side selects one of the two panes
type Side int

const (
	SideOld Side = iota
	SideNew
)

func (s Side) String() string {
	if s == SideOld {
		return "old"
	}
	return "new"
}

// Other returns the opposite side
func (s Side) Other() Side {
	if s == SideOld {
		return SideNew
	}
	return SideOld
}

// Pane is one side of a comparison
type Pane struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Text     string    `json:"text"`
	LoadedAt time.Time `json:"loaded_at"`
	Modified bool      `json:"-"` // UI state: unsaved edits, not persisted
}

// LineCount returns the number of lines in the pane as the differ counts
// them, so pane headers always agree with diff output
func (p *Pane) LineCount() int {
	return len(diff.SplitLines(p.Text))
}

// Session represents the compared pair of panes
type Session struct {
	ID       string    `json:"id"`
	Old      *Pane     `json:"old"`
	New      *Pane     `json:"new"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// NewSession creates an empty session with default pane names
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:       generateID(),
		Old:      &Pane{Name: "old", LoadedAt: now},
		New:      &Pane{Name: "new", LoadedAt: now},
		Created:  now,
		Modified: now,
	}
}

// Pane returns the pane for the given side
func (s *Session) Pane(side Side) *Pane {
	if side == SideOld {
		return s.Old
	}
	return s.New
}

// SetText replaces a pane's content, marks it dirty and records the
// change time
func (s *Session) SetText(side Side, text string) {
	p := s.Pane(side)
	p.Text = text
	p.Modified = true
	s.Modified = time.Now()
}

// SetFile replaces a pane with freshly loaded file content. The pane
// starts clean: nothing differs from what is on disk yet.
func (s *Session) SetFile(side Side, path, name, text string) {
	p := s.Pane(side)
	p.Name = name
	p.Path = path
	p.Text = text
	p.LoadedAt = time.Now()
	p.Modified = false
	s.Modified = time.Now()
}

// Dirty reports whether either pane has unsaved edits
func (s *Session) Dirty() bool {
	return s.Old.Modified || s.New.Modified
}

// MarkSaved clears both dirty flags after a successful write
func (s *Session) MarkSaved() {
	s.Old.Modified = false
	s.New.Modified = false
}

// Label returns the pane pair label shown in the status bar
func (s *Session) Label() string {
	return s.Old.Name + " | " + s.New.Name
}

func generateID() string {
	return "sess_" + time.Now().Format("20060102150405") + "_" + randomString(6)
}

func randomString(length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = chars[rand.Intn(len(chars))]
	}
	return string(result)
}
