package app

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/pstuifzand/tui-diff/internal/session"
	"github.com/pstuifzand/tui-diff/internal/storage"
)

const sessionIDCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// snapshotKeep caps how many snapshots are kept per session file
const snapshotKeep = 50

// generateSessionID creates the 8-character id grouping the snapshots
// taken during one run
func generateSessionID() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = sessionIDCharset[rand.Intn(len(sessionIDCharset))]
	}
	return string(b)
}

// saveSnapshot copies the freshly saved session file into the snapshot
// directory and prunes old entries. Failures are logged, never fatal:
// a snapshot problem must not block saving
func (a *App) saveSnapshot() {
	if a.store == nil || a.snapshots == nil {
		return
	}
	path, err := a.snapshots.CreateSnapshot(a.store.Path(), a.sessionID)
	if err != nil {
		log.Printf("Failed to create snapshot: %v", err)
		return
	}
	log.Printf("Snapshot created: %s", path)
	if err := a.snapshots.Prune(a.store.Path(), snapshotKeep); err != nil {
		log.Printf("Failed to prune snapshots: %v", err)
	}
}

// handleSnapshotCommand implements :snapshot. A dirty session is saved
// first (which snapshots on its own); a clean one is copied as-is
func (a *App) handleSnapshotCommand() {
	if a.store == nil {
		a.SetStatus("No session file to snapshot (use :w <path> first)")
		return
	}
	if a.snapshots == nil {
		a.SetStatus("Snapshots are unavailable")
		return
	}
	if a.session.Dirty() {
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
			return
		}
		a.SetStatus("Saved and snapshotted " + a.store.Path())
		return
	}
	if _, err := a.snapshots.CreateSnapshot(a.store.Path(), a.sessionID); err != nil {
		a.SetStatus("Snapshot failed: " + err.Error())
		return
	}
	if err := a.snapshots.Prune(a.store.Path(), snapshotKeep); err != nil {
		log.Printf("Failed to prune snapshots: %v", err)
	}
	a.SetStatus("Snapshot created")
}

// openSnapshotSelector shows the snapshot browser for the current
// session file
func (a *App) openSnapshotSelector() {
	if a.store == nil {
		a.SetStatus("No session file (snapshots are taken on save)")
		return
	}
	if a.snapshots == nil {
		a.SetStatus("Snapshots are unavailable")
		return
	}
	snapshots, err := a.snapshots.FindSnapshotsForFile(a.store.Path())
	if err != nil {
		a.SetStatus("Failed to list snapshots: " + err.Error())
		return
	}
	if len(snapshots) == 0 {
		a.SetStatus("No snapshots yet (snapshots are taken on save)")
		return
	}
	a.snapshotSelector.Show(snapshots, a.session.New.Text)
}

// snapshotList returns the current file's snapshots oldest first, the
// order the stepping keys walk them in
func (a *App) snapshotList() []storage.SnapshotInfo {
	if a.store == nil || a.snapshots == nil {
		return nil
	}
	snapshots, err := a.snapshots.FindSnapshotsForFile(a.store.Path())
	if err != nil {
		log.Printf("Failed to list snapshots: %v", err)
		return nil
	}
	// FindSnapshotsForFile returns newest first
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}
	return snapshots
}

// currentSnapshotIndex finds the snapshot being viewed in the list, or
// -1 when the live session is showing
func (a *App) currentSnapshotIndex(snapshots []storage.SnapshotInfo) int {
	for i, s := range snapshots {
		if s.FilePath == a.currentSnapshotPath {
			return i
		}
	}
	return -1
}

// handlePrevSnapshotSameSession steps to the previous snapshot sharing
// the viewed snapshot's session id. From the live session it jumps to
// the newest snapshot taken by this run
func (a *App) handlePrevSnapshotSameSession() {
	snapshots := a.snapshotList()
	if len(snapshots) == 0 {
		a.SetStatus("No snapshots for this file")
		return
	}

	currentIdx := a.currentSnapshotIndex(snapshots)
	if currentIdx == -1 {
		for i := len(snapshots) - 1; i >= 0; i-- {
			if snapshots[i].SessionID == a.sessionID {
				a.loadSnapshot(snapshots[i])
				return
			}
		}
		a.SetStatus("No snapshots from this session")
		return
	}

	want := snapshots[currentIdx].SessionID
	for i := currentIdx - 1; i >= 0; i-- {
		if snapshots[i].SessionID == want {
			a.loadSnapshot(snapshots[i])
			return
		}
	}
	a.SetStatus("At the oldest snapshot of this session")
}

// handleNextSnapshotSameSession steps forward within the viewed
// snapshot's session; past the newest it returns to the live session
func (a *App) handleNextSnapshotSameSession() {
	snapshots := a.snapshotList()
	if len(snapshots) == 0 {
		a.SetStatus("No snapshots for this file")
		return
	}

	currentIdx := a.currentSnapshotIndex(snapshots)
	if currentIdx == -1 {
		a.SetStatus("Not viewing a snapshot (use [ to open the previous one)")
		return
	}

	want := snapshots[currentIdx].SessionID
	for i := currentIdx + 1; i < len(snapshots); i++ {
		if snapshots[i].SessionID == want {
			a.loadSnapshot(snapshots[i])
			return
		}
	}
	a.returnToLiveSession()
}

// handlePrevSnapshotAnySession steps to the previous snapshot
// regardless of session id. From the live session it starts at the
// newest snapshot
func (a *App) handlePrevSnapshotAnySession() {
	snapshots := a.snapshotList()
	if len(snapshots) == 0 {
		a.SetStatus("No snapshots for this file")
		return
	}

	currentIdx := a.currentSnapshotIndex(snapshots)
	switch {
	case currentIdx == -1:
		a.loadSnapshot(snapshots[len(snapshots)-1])
	case currentIdx > 0:
		a.loadSnapshot(snapshots[currentIdx-1])
	default:
		a.SetStatus("At the oldest snapshot")
	}
}

// handleNextSnapshotAnySession steps forward through all snapshots;
// past the newest it returns to the live session
func (a *App) handleNextSnapshotAnySession() {
	snapshots := a.snapshotList()
	if len(snapshots) == 0 {
		a.SetStatus("No snapshots for this file")
		return
	}

	currentIdx := a.currentSnapshotIndex(snapshots)
	if currentIdx == -1 {
		a.SetStatus("Not viewing a snapshot (use { to open the previous one)")
		return
	}
	if currentIdx < len(snapshots)-1 {
		a.loadSnapshot(snapshots[currentIdx+1])
		return
	}
	a.returnToLiveSession()
}

// loadSnapshot replaces the visible session with a snapshot's content.
// The live session is stashed on the first step so walking past the
// newest snapshot restores it untouched
func (a *App) loadSnapshot(info storage.SnapshotInfo) {
	store := storage.NewStoreFor(info.FilePath)
	sess, err := store.Load()
	if err != nil {
		a.SetStatus("Failed to load snapshot: " + err.Error())
		return
	}

	if a.currentSnapshotPath == "" {
		a.liveSession = a.session
	}
	a.currentSnapshotPath = info.FilePath
	a.session = sess
	a.requestCompare()
	a.SetStatus(fmt.Sprintf("Snapshot: %s (%s)",
		info.Timestamp.Format("2006-01-02 15:04:05"), info.SessionID))
}

// returnToLiveSession swaps the stashed live session back in
func (a *App) returnToLiveSession() {
	if a.currentSnapshotPath == "" {
		return
	}
	a.currentSnapshotPath = ""
	if a.liveSession != nil {
		a.session = a.liveSession
		a.liveSession = nil
	}
	a.requestCompare()
	a.SetStatus("Back to current session")
}

// restoreSnapshotSession makes a selector-chosen snapshot the working
// session. The panes are marked modified: the restore only reaches disk
// through an explicit :w
func (a *App) restoreSnapshotSession(info storage.SnapshotInfo, sess *session.Session) {
	a.session = sess
	a.session.Old.Modified = true
	a.session.New.Modified = true
	a.liveSession = nil
	a.currentSnapshotPath = ""
	a.requestCompare()
	a.SetStatus(fmt.Sprintf("Restored snapshot from %s (:w to keep it)",
		info.Timestamp.Format("2006-01-02 15:04:05")))
}

// loadSnapshotIntoPane puts a snapshot's content into one pane of the
// live session, for comparing the current text against an older version
func (a *App) loadSnapshotIntoPane(side session.Side, info storage.SnapshotInfo, sess *session.Session) {
	a.session.SetText(side, sess.New.Text)
	a.session.Pane(side).Name = fmt.Sprintf("%s @ %s",
		sess.New.Name, info.Timestamp.Format("2006-01-02 15:04"))
	a.requestCompare()
	a.SetStatus(fmt.Sprintf("Loaded snapshot into %s pane", side))
}
