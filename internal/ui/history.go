package ui

import (
	"github.com/pstuifzand/tui-diff/internal/history"
)

// History holds previous command and filter inputs and supports
// shell-style up/down navigation through them
type History struct {
	entries        []string
	currentIndex   int // -1 when not navigating
	maxEntries     int
	temporaryInput string // input typed before navigation started
	manager        *history.Manager
	filename       string
}

// NewHistory creates a history capped at maxEntries, without persistence
func NewHistory(maxEntries int) *History {
	return &History{
		entries:      []string{},
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// NewHistoryWithManager creates a history backed by a file and loads
// any previously saved entries
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := &History{
		entries:      []string{},
		currentIndex: -1,
		maxEntries:   maxEntries,
		manager:      manager,
		filename:     filename,
	}

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}

	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	h.entries = entries
	return h, nil
}

// Add appends an entry, skipping empties and consecutive duplicates.
// The oldest entries fall off past the cap. Saves when persistent
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}

	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)

	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	h.currentIndex = -1
	h.temporaryInput = ""

	if h.manager != nil && h.filename != "" {
		h.Save()
	}
}

// Save persists the current entries to file
func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Previous steps backward through history. The first call starts at
// the most recent entry
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	if h.currentIndex < 0 {
		h.currentIndex = len(h.entries) - 1
	} else if h.currentIndex > 0 {
		h.currentIndex--
	}

	return h.entries[h.currentIndex], true
}

// Next steps forward through history. Stepping past the newest entry
// restores the input stored with SetTemporary and ends navigation
func (h *History) Next() (string, bool) {
	if len(h.entries) == 0 || h.currentIndex < 0 {
		return "", false
	}

	h.currentIndex++

	if h.currentIndex >= len(h.entries) {
		h.currentIndex = -1
		temp := h.temporaryInput
		h.temporaryInput = ""
		return temp, true
	}

	return h.entries[h.currentIndex], true
}

// Reset ends navigation, for when the input mode is entered or left
func (h *History) Reset() {
	h.currentIndex = -1
	h.temporaryInput = ""
}

// SetTemporary stores the in-progress input so stepping forward past
// the end can bring it back
func (h *History) SetTemporary(input string) {
	h.temporaryInput = input
}

// GetAll returns a copy of all history entries
func (h *History) GetAll() []string {
	entries := make([]string, len(h.entries))
	copy(entries, h.entries)
	return entries
}

// Clear removes all history entries
func (h *History) Clear() {
	h.entries = nil
	h.currentIndex = -1
	h.temporaryInput = ""
}

// Len returns the number of entries in history
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating returns true while stepping through history
func (h *History) IsNavigating() bool {
	return h.currentIndex >= 0
}
