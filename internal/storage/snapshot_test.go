package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotFilenameFormat(t *testing.T) {
	ts := time.Unix(1724371200, 0)

	tests := []struct {
		name     string
		original string
		expected string
	}{
		{
			name:     "With extension",
			original: "notes.tdiff",
			expected: "notes.snap-abc12345-1724371200.tdiff",
		},
		{
			name:     "JSON session",
			original: "notes.json",
			expected: "notes.snap-abc12345-1724371200.json",
		},
		{
			name:     "No extension",
			original: "notes",
			expected: "notes.snap-abc12345-1724371200",
		},
		{
			name:     "Dotted base name",
			original: "my.notes.tdiff",
			expected: "my.notes.snap-abc12345-1724371200.tdiff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snapshotFilename(tt.original, "abc12345", ts)
			if got != tt.expected {
				t.Errorf("snapshotFilename(%q) = %q, want %q", tt.original, got, tt.expected)
			}
		})
	}
}

func TestParseSnapshotFilename(t *testing.T) {
	info, err := parseSnapshotFilename("my.notes.snap-a1b2c3d4-1724371200.tdiff", "/dir/my.notes.snap-a1b2c3d4-1724371200.tdiff")
	if err != nil {
		t.Fatalf("parseSnapshotFilename failed: %v", err)
	}

	if info.OriginalName != "my.notes.tdiff" {
		t.Errorf("OriginalName = %q, want %q", info.OriginalName, "my.notes.tdiff")
	}
	if info.SessionID != "a1b2c3d4" {
		t.Errorf("SessionID = %q, want %q", info.SessionID, "a1b2c3d4")
	}
	if !info.Timestamp.Equal(time.Unix(1724371200, 0)) {
		t.Errorf("Timestamp = %v, want %v", info.Timestamp, time.Unix(1724371200, 0))
	}
	if info.FilePath != "/dir/my.notes.snap-a1b2c3d4-1724371200.tdiff" {
		t.Errorf("FilePath = %q", info.FilePath)
	}
}

func TestParseSnapshotFilenameRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"Plain session file", "notes.tdiff"},
		{"Short session id", "notes.snap-abc-1724371200.tdiff"},
		{"Missing timestamp", "notes.snap-abc12345-.tdiff"},
		{"Different scheme", "20251103_150405_abc12345.tuo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSnapshotFilename(tt.filename, tt.filename); err == nil {
				t.Errorf("parseSnapshotFilename(%q) should fail", tt.filename)
			}
		})
	}
}

func TestIsSnapshotFileDetection(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "Empty path",
			path:     "",
			expected: false,
		},
		{
			name:     "Regular file",
			path:     "/tmp/notes.tdiff",
			expected: false,
		},
		{
			name:     "Snapshot in the snapshot dir",
			path:     filepath.Join(defaultSnapshotDir(), "notes.snap-abc12345-1724371200.tdiff"),
			expected: true,
		},
		{
			name:     "Snapshot copied elsewhere",
			path:     "/tmp/notes.snap-abc12345-1724371200.tdiff",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsSnapshotFile(tt.path)
			if result != tt.expected {
				t.Errorf("IsSnapshotFile(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestCreateSnapshot(t *testing.T) {
	dir := t.TempDir()
	sm, err := NewSnapshotManagerAt(filepath.Join(dir, "snapshots"))
	if err != nil {
		t.Fatalf("Failed to create snapshot manager: %v", err)
	}

	sourcePath := filepath.Join(dir, "notes.tdiff")
	content := []byte("[SESSION]\nid: sess_x\n\n[OLD TEXT]\n1: alpha\n\n[NEW TEXT]\n1: beta\n")
	if err := os.WriteFile(sourcePath, content, 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}

	snapshotPath, err := sm.CreateSnapshot(sourcePath, "run5678a")
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}

	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	if string(data) != string(content) {
		t.Error("Snapshot content differs from source")
	}

	if !IsSnapshotFile(snapshotPath) {
		t.Errorf("Snapshot file not detected as one: %s", snapshotPath)
	}

	info, err := parseSnapshotFilename(filepath.Base(snapshotPath), snapshotPath)
	if err != nil {
		t.Fatalf("Snapshot filename does not parse: %v", err)
	}
	if info.OriginalName != "notes.tdiff" {
		t.Errorf("OriginalName = %q, want %q", info.OriginalName, "notes.tdiff")
	}
	if info.SessionID != "run5678a" {
		t.Errorf("SessionID = %q, want %q", info.SessionID, "run5678a")
	}
}

func TestCreateSnapshotMissingSource(t *testing.T) {
	sm, err := NewSnapshotManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create snapshot manager: %v", err)
	}

	if _, err := sm.CreateSnapshot("/nonexistent/notes.tdiff", "run5678a"); err == nil {
		t.Error("expected error for missing source file")
	}
}

// writeSnapshotFixture drops a crafted snapshot file into the manager's
// directory, avoiding the second resolution of real timestamps
func writeSnapshotFixture(t *testing.T, sm *SnapshotManager, original, sessionID string, unix int64) string {
	t.Helper()
	name := snapshotFilename(original, sessionID, time.Unix(unix, 0))
	path := filepath.Join(sm.Dir(), name)
	if err := os.WriteFile(path, []byte("snapshot of "+original), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestFindSnapshotsNewestFirst(t *testing.T) {
	sm, err := NewSnapshotManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create snapshot manager: %v", err)
	}

	writeSnapshotFixture(t, sm, "notes.tdiff", "run5678a", 1000)
	writeSnapshotFixture(t, sm, "notes.tdiff", "run5678a", 3000)
	writeSnapshotFixture(t, sm, "notes.tdiff", "other12b", 2000)
	writeSnapshotFixture(t, sm, "config.json", "run5678a", 2500)

	snapshots, err := sm.FindSnapshotsForFile("/some/dir/notes.tdiff")
	if err != nil {
		t.Fatalf("FindSnapshotsForFile failed: %v", err)
	}

	if len(snapshots) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", len(snapshots))
	}
	wantOrder := []int64{3000, 2000, 1000}
	for i, want := range wantOrder {
		if got := snapshots[i].Timestamp.Unix(); got != want {
			t.Errorf("snapshots[%d].Timestamp = %d, want %d", i, got, want)
		}
	}

	all, err := sm.FindAllSnapshots()
	if err != nil {
		t.Fatalf("FindAllSnapshots failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 snapshots in total, got %d", len(all))
	}
	if all[0].Timestamp.Unix() != 3000 {
		t.Errorf("Newest snapshot first, got %d", all[0].Timestamp.Unix())
	}
}

func TestFindSnapshotsIgnoresOtherFiles(t *testing.T) {
	sm, err := NewSnapshotManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create snapshot manager: %v", err)
	}

	writeSnapshotFixture(t, sm, "notes.tdiff", "run5678a", 1000)
	if err := os.WriteFile(filepath.Join(sm.Dir(), "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write stray file: %v", err)
	}

	all, err := sm.FindAllSnapshots()
	if err != nil {
		t.Fatalf("FindAllSnapshots failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 snapshot, got %d", len(all))
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	sm, err := NewSnapshotManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create snapshot manager: %v", err)
	}

	for _, unix := range []int64{1000, 2000, 3000, 4000} {
		writeSnapshotFixture(t, sm, "notes.tdiff", "run5678a", unix)
	}
	keptOther := writeSnapshotFixture(t, sm, "config.json", "run5678a", 500)

	if err := sm.Prune("notes.tdiff", 2); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	snapshots, err := sm.FindSnapshotsForFile("notes.tdiff")
	if err != nil {
		t.Fatalf("FindSnapshotsForFile failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots after prune, got %d", len(snapshots))
	}
	if snapshots[0].Timestamp.Unix() != 4000 || snapshots[1].Timestamp.Unix() != 3000 {
		t.Errorf("Prune removed the wrong snapshots: %d, %d",
			snapshots[0].Timestamp.Unix(), snapshots[1].Timestamp.Unix())
	}

	// Other files are untouched
	if _, err := os.Stat(keptOther); err != nil {
		t.Errorf("Prune should not touch other files: %v", err)
	}
}

func TestPruneUnderCap(t *testing.T) {
	sm, err := NewSnapshotManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create snapshot manager: %v", err)
	}

	writeSnapshotFixture(t, sm, "notes.tdiff", "run5678a", 1000)

	if err := sm.Prune("notes.tdiff", 5); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if err := sm.Prune("notes.tdiff", 0); err != nil {
		t.Fatalf("Prune with zero cap failed: %v", err)
	}

	snapshots, err := sm.FindSnapshotsForFile("notes.tdiff")
	if err != nil {
		t.Fatalf("FindSnapshotsForFile failed: %v", err)
	}
	if len(snapshots) != 1 {
		t.Errorf("Expected the snapshot to survive, got %d", len(snapshots))
	}
}
