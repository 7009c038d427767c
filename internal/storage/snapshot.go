package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// SnapshotManager keeps timestamped copies of session files
type SnapshotManager struct {
	snapshotDir string
}

// NewSnapshotManager creates a manager rooted at the default snapshot
// directory
func NewSnapshotManager() (*SnapshotManager, error) {
	return NewSnapshotManagerAt(defaultSnapshotDir())
}

// NewSnapshotManagerAt creates a manager rooted at dir, creating the
// directory if needed. The snapshot-dir setting points saves somewhere
// other than the default.
func NewSnapshotManagerAt(dir string) (*SnapshotManager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &SnapshotManager{snapshotDir: dir}, nil
}

// Dir returns the snapshot directory
func (sm *SnapshotManager) Dir() string {
	return sm.snapshotDir
}

// defaultSnapshotDir returns the path to the snapshot directory
func defaultSnapshotDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to /tmp if home directory cannot be determined
		return filepath.Join("/tmp", ".tui-diff", "snapshots")
	}
	return filepath.Join(homeDir, ".local", "share", "tui-diff", "snapshots")
}

// SnapshotInfo holds parsed information about a snapshot file
type SnapshotInfo struct {
	FilePath     string    // Full path to snapshot file
	OriginalName string    // Base name of the file the snapshot was taken from
	SessionID    string    // 8-character id of the app run that wrote it
	Timestamp    time.Time // Parsed from the filename
}

// Snapshot filenames look like notes.snap-a1b2c3d4-1724371200.tdiff: the
// original base name, the writing run's session id, the unix time of the
// copy, and the original extension
var snapshotNamePattern = regexp.MustCompile(`^(.+)\.snap-([a-zA-Z0-9]{8})-([0-9]+)(\.[^.]+)?$`)

// CreateSnapshot copies the session file at sourcePath into the snapshot
// directory and returns the path of the copy
func (sm *SnapshotManager) CreateSnapshot(sourcePath, sessionID string) (string, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	filename := snapshotFilename(filepath.Base(sourcePath), sessionID, time.Now())
	snapshotPath := filepath.Join(sm.snapshotDir, filename)

	if err := os.WriteFile(snapshotPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return snapshotPath, nil
}

// snapshotFilename builds the snapshot name for a copy of originalName
func snapshotFilename(originalName, sessionID string, ts time.Time) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(originalName, ext)
	return fmt.Sprintf("%s.snap-%s-%d%s", base, sessionID, ts.Unix(), ext)
}

// parseSnapshotFilename extracts metadata from a snapshot filename
func parseSnapshotFilename(filename, fullPath string) (SnapshotInfo, error) {
	m := snapshotNamePattern.FindStringSubmatch(filename)
	if m == nil {
		return SnapshotInfo{}, fmt.Errorf("not a snapshot filename: %s", filename)
	}

	unix, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("invalid snapshot timestamp: %w", err)
	}

	return SnapshotInfo{
		FilePath:     fullPath,
		OriginalName: m[1] + m[4],
		SessionID:    m[2],
		Timestamp:    time.Unix(unix, 0),
	}, nil
}

// IsSnapshotFile reports whether path names a snapshot copy. Snapshots are
// opened read-only so browsing history never overwrites it.
func IsSnapshotFile(path string) bool {
	if path == "" {
		return false
	}
	return snapshotNamePattern.MatchString(filepath.Base(path))
}

// FindSnapshotsForFile returns all snapshots taken from the named file,
// newest first
func (sm *SnapshotManager) FindSnapshotsForFile(originalPath string) ([]SnapshotInfo, error) {
	return sm.find(filepath.Base(originalPath))
}

// FindAllSnapshots returns every snapshot in the directory, newest first
func (sm *SnapshotManager) FindAllSnapshots() ([]SnapshotInfo, error) {
	return sm.find("")
}

func (sm *SnapshotManager) find(originalName string) ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(sm.snapshotDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := parseSnapshotFilename(entry.Name(), filepath.Join(sm.snapshotDir, entry.Name()))
		if err != nil {
			continue // Skip files that don't look like snapshots
		}
		if originalName != "" && info.OriginalName != originalName {
			continue
		}
		snapshots = append(snapshots, info)
	}

	sortSnapshotsByTimestamp(snapshots)
	return snapshots, nil
}

// sortSnapshotsByTimestamp sorts snapshots newest first, ties broken by
// filename so the order is stable across runs
func sortSnapshotsByTimestamp(snapshots []SnapshotInfo) {
	slices.SortFunc(snapshots, func(a, b SnapshotInfo) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.FilePath, b.FilePath)
	})
}

// Prune deletes the oldest snapshots of the named file beyond keep
func (sm *SnapshotManager) Prune(originalPath string, keep int) error {
	if keep < 1 {
		return nil
	}
	snapshots, err := sm.FindSnapshotsForFile(originalPath)
	if err != nil {
		return err
	}
	if len(snapshots) <= keep {
		return nil
	}
	for _, info := range snapshots[keep:] {
		if err := os.Remove(info.FilePath); err != nil {
			return fmt.Errorf("failed to remove snapshot: %w", err)
		}
	}
	return nil
}
