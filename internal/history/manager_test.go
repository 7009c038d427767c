package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	manager, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt failed: %v", err)
	}

	entries := []string{":open a.txt", ":set context 5", ":w"}
	if err := manager.Save("command.toml", entries); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := manager.Load("command.toml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(loaded))
	}
	for i, want := range entries {
		if loaded[i] != want {
			t.Errorf("entry %d: expected %q, got %q", i, want, loaded[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	manager, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt failed: %v", err)
	}

	entries, err := manager.Load("never-written.toml")
	if err != nil {
		t.Fatalf("Load of missing file should not fail: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}
}

func TestLoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManagerAt(dir)
	if err != nil {
		t.Fatalf("NewManagerAt failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "filter.toml"), []byte("entries = [broken"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	entries, err := manager.Load("filter.toml")
	if err != nil {
		t.Fatalf("Load of corrupted file should not fail: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history for corrupted file, got %d entries", len(entries))
	}
}

func TestSeparateHistories(t *testing.T) {
	manager, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt failed: %v", err)
	}

	if err := manager.Save("command.toml", []string{":w"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := manager.Save("filter.toml", []string{"k:added"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	commands, _ := manager.Load("command.toml")
	filters, _ := manager.Load("filter.toml")

	if len(commands) != 1 || commands[0] != ":w" {
		t.Errorf("command history = %v", commands)
	}
	if len(filters) != 1 || filters[0] != "k:added" {
		t.Errorf("filter history = %v", filters)
	}
}
