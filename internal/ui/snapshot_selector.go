package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/session"
	"github.com/pstuifzand/tui-diff/internal/storage"
)

// snapshotEntry is one selectable snapshot with its decoded session and
// the precomputed diff against the current text
type snapshotEntry struct {
	info    storage.SnapshotInfo
	sess    *session.Session
	loadErr string
	result  *diff.Result
}

// previewRow is one rendered line of the right-hand preview
type previewRow struct {
	text string
	kind diff.RecordKind
}

// SnapshotSelector is the two-panel snapshot browser: the list on the
// left, a preview of the selected snapshot on the right. The preview
// shows either the line diff against the current text or the raw
// snapshot text
type SnapshotSelector struct {
	visible       bool
	allEntries    []*snapshotEntry
	entries       []*snapshotEntry
	selectedIndex int
	scrollOffset  int
	listHeight    int
	previewHeight int

	currentText string

	onRestore  func(info storage.SnapshotInfo, sess *session.Session)
	onLoadSide func(side session.Side, info storage.SnapshotInfo, sess *session.Session)

	previewRows   []previewRow
	rawLines      []string
	previewScroll int
	rawMode       bool

	visualMode      bool
	selectionStart  int
	selectedIndices map[int]bool

	reversed bool

	calendar        *SnapshotCalendar
	calendarVisible bool
	dayFilter       *time.Time
}

// NewSnapshotSelector creates a hidden selector
func NewSnapshotSelector() *SnapshotSelector {
	return &SnapshotSelector{
		listHeight:      10,
		previewHeight:   10,
		selectedIndices: make(map[int]bool),
	}
}

// SetOnRestore sets the callback for restoring a snapshot session
func (ss *SnapshotSelector) SetOnRestore(onRestore func(info storage.SnapshotInfo, sess *session.Session)) {
	ss.onRestore = onRestore
}

// SetOnLoadSide sets the callback for loading a snapshot's text into one
// pane
func (ss *SnapshotSelector) SetOnLoadSide(onLoadSide func(side session.Side, info storage.SnapshotInfo, sess *session.Session)) {
	ss.onLoadSide = onLoadSide
}

// SetCalendar attaches the calendar used to filter the list by day
func (ss *SnapshotSelector) SetCalendar(cal *SnapshotCalendar) {
	ss.calendar = cal
	if cal != nil {
		cal.SetOnDaySelected(func(day time.Time) {
			ss.calendarVisible = false
			ss.setDayFilter(day)
		})
	}
}

// Show opens the selector over the given snapshots. Every snapshot is
// decoded and diffed against currentText up front so moving through the
// list never waits on disk
func (ss *SnapshotSelector) Show(snapshots []storage.SnapshotInfo, currentText string) {
	if len(snapshots) == 0 {
		return
	}

	ss.currentText = currentText
	ss.allEntries = make([]*snapshotEntry, 0, len(snapshots))
	for _, info := range snapshots {
		entry := &snapshotEntry{info: info}
		ss.loadEntry(entry)
		ss.allEntries = append(ss.allEntries, entry)
	}

	ss.entries = ss.allEntries
	ss.dayFilter = nil
	ss.selectedIndex = 0
	ss.scrollOffset = 0
	ss.reversed = false
	ss.rawMode = false
	ss.visualMode = false
	ss.selectedIndices = make(map[int]bool)
	ss.calendarVisible = false
	ss.visible = true
	ss.updatePreview()
}

// Hide closes the selector
func (ss *SnapshotSelector) Hide() {
	ss.visible = false
}

// IsVisible returns whether the selector is open
func (ss *SnapshotSelector) IsVisible() bool {
	return ss.visible
}

func (ss *SnapshotSelector) loadEntry(entry *snapshotEntry) {
	store := storage.NewStoreFor(entry.info.FilePath)
	sess, err := store.Load()
	if err != nil {
		entry.loadErr = err.Error()
		return
	}
	entry.sess = sess
	// Current to snapshot: the records show what restoring would change
	entry.result = diff.Compare(ss.currentText, sess.New.Text)
}

// actualIndex converts a display index to an index into entries based on
// the R order toggle
func (ss *SnapshotSelector) actualIndex(displayIdx int) int {
	if ss.reversed {
		return len(ss.entries) - 1 - displayIdx
	}
	return displayIdx
}

func (ss *SnapshotSelector) selectedEntry() *snapshotEntry {
	if ss.selectedIndex < 0 || ss.selectedIndex >= len(ss.entries) {
		return nil
	}
	return ss.entries[ss.actualIndex(ss.selectedIndex)]
}

// buildPreviewRows renders records as unified rows, changed records only
func buildPreviewRows(records []diff.DiffRecord) []previewRow {
	width := recordNumberWidth(records)
	var rows []previewRow
	for i := range records {
		rec := &records[i]
		switch rec.Kind {
		case diff.RecordReplaced:
			rows = append(rows,
				previewRow{fmt.Sprintf("%s %s ~ %s", numberCell(rec.OldLine, width), numberCell(0, width), rec.OldText()), rec.Kind},
				previewRow{fmt.Sprintf("%s %s ~ %s", numberCell(0, width), numberCell(rec.NewLine, width), rec.NewText()), rec.Kind})
		case diff.RecordAdded:
			rows = append(rows, previewRow{fmt.Sprintf("%s %s + %s", numberCell(0, width), numberCell(rec.NewLine, width), rec.Text), rec.Kind})
		case diff.RecordDeleted:
			rows = append(rows, previewRow{fmt.Sprintf("%s %s - %s", numberCell(rec.OldLine, width), numberCell(0, width), rec.Text), rec.Kind})
		}
	}
	return rows
}

// updatePreview rebuilds both preview forms for the current selection
func (ss *SnapshotSelector) updatePreview() {
	ss.previewScroll = 0
	ss.previewRows = nil
	ss.rawLines = nil

	if ss.visualMode && len(ss.selectedIndices) > 1 {
		ss.updateRangePreview()
		return
	}

	entry := ss.selectedEntry()
	if entry == nil {
		return
	}
	if entry.loadErr != "" {
		ss.previewRows = []previewRow{{text: "cannot load snapshot: " + entry.loadErr, kind: diff.RecordDeleted}}
		return
	}
	ss.previewRows = buildPreviewRows(entry.result.Records)
	ss.rawLines = diff.SplitLines(entry.sess.New.Text)
}

// updateRangePreview diffs the two endpoints of the visual selection
func (ss *SnapshotSelector) updateRangePreview() {
	start, end := ss.selectionStart, ss.selectedIndex
	if start > end {
		start, end = end, start
	}
	first := ss.entries[ss.actualIndex(start)]
	last := ss.entries[ss.actualIndex(end)]
	if first.sess == nil || last.sess == nil {
		ss.previewRows = []previewRow{{text: "cannot compare: snapshot unreadable", kind: diff.RecordDeleted}}
		return
	}

	result := diff.Compare(first.sess.New.Text, last.sess.New.Text)
	ss.previewRows = buildPreviewRows(result.Records)
	ss.rawLines = diff.SplitLines(last.sess.New.Text)
}

func (ss *SnapshotSelector) moveTo(idx int) {
	if len(ss.entries) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ss.entries) {
		idx = len(ss.entries) - 1
	}
	if idx == ss.selectedIndex {
		return
	}
	ss.selectedIndex = idx
	ss.ensureSelected()
	if ss.visualMode {
		ss.updateSelection()
	}
	ss.updatePreview()
}

// ensureSelected keeps the selected row inside the list viewport
func (ss *SnapshotSelector) ensureSelected() {
	if ss.selectedIndex < ss.scrollOffset {
		ss.scrollOffset = ss.selectedIndex
	} else if ss.selectedIndex >= ss.scrollOffset+ss.listHeight {
		ss.scrollOffset = ss.selectedIndex - ss.listHeight + 1
	}
}

// updateSelection marks the contiguous visual range
func (ss *SnapshotSelector) updateSelection() {
	ss.selectedIndices = make(map[int]bool)
	start, end := ss.selectionStart, ss.selectedIndex
	if start > end {
		start, end = end, start
	}
	for i := start; i <= end; i++ {
		ss.selectedIndices[i] = true
	}
}

func (ss *SnapshotSelector) scrollPreview(delta int) {
	total := len(ss.previewRows)
	if ss.rawMode {
		total = len(ss.rawLines)
	}
	maxScroll := total - ss.previewHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	ss.previewScroll += delta
	if ss.previewScroll > maxScroll {
		ss.previewScroll = maxScroll
	}
	if ss.previewScroll < 0 {
		ss.previewScroll = 0
	}
}

func (ss *SnapshotSelector) loadIntoSide(side session.Side) {
	entry := ss.selectedEntry()
	if entry == nil || entry.sess == nil {
		return
	}
	ss.Hide()
	if ss.onLoadSide != nil {
		ss.onLoadSide(side, entry.info, entry.sess)
	}
}

func (ss *SnapshotSelector) openCalendar() {
	if ss.calendar == nil {
		return
	}
	marks := make([]time.Time, 0, len(ss.allEntries))
	for _, e := range ss.allEntries {
		marks = append(marks, e.info.Timestamp)
	}
	ss.calendar.ShowWithMarks(marks)
	ss.calendarVisible = true
}

func (ss *SnapshotSelector) setDayFilter(day time.Time) {
	d := day
	ss.dayFilter = &d
	ss.applyDayFilter()
}

func (ss *SnapshotSelector) applyDayFilter() {
	if ss.dayFilter == nil {
		ss.entries = ss.allEntries
	} else {
		y, m, d := ss.dayFilter.Date()
		var filtered []*snapshotEntry
		for _, e := range ss.allEntries {
			ey, em, ed := e.info.Timestamp.Date()
			if ey == y && em == m && ed == d {
				filtered = append(filtered, e)
			}
		}
		ss.entries = filtered
	}
	ss.selectedIndex = 0
	ss.scrollOffset = 0
	ss.visualMode = false
	ss.selectedIndices = make(map[int]bool)
	ss.updatePreview()
}

// HandleKey processes keyboard input while the selector is open
func (ss *SnapshotSelector) HandleKey(ev *tcell.EventKey) bool {
	if !ss.visible {
		return false
	}

	if ss.calendarVisible && ss.calendar != nil {
		if ss.calendar.HandleKey(ev) {
			if !ss.calendar.IsVisible() {
				ss.calendarVisible = false
			}
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ss.Hide()
		return true
	case tcell.KeyUp:
		ss.moveTo(ss.selectedIndex - 1)
		return true
	case tcell.KeyDown:
		ss.moveTo(ss.selectedIndex + 1)
		return true
	case tcell.KeyHome:
		ss.moveTo(0)
		return true
	case tcell.KeyEnd:
		ss.moveTo(len(ss.entries) - 1)
		return true
	case tcell.KeyPgUp:
		ss.scrollPreview(-ss.previewHeight / 2)
		return true
	case tcell.KeyPgDn:
		ss.scrollPreview(ss.previewHeight / 2)
		return true
	case tcell.KeyEnter:
		entry := ss.selectedEntry()
		if entry != nil && entry.sess != nil {
			ss.Hide()
			if ss.onRestore != nil {
				ss.onRestore(entry.info, entry.sess)
			}
		}
		return true
	}

	switch ev.Rune() {
	case 'j':
		ss.moveTo(ss.selectedIndex + 1)
	case 'k':
		ss.moveTo(ss.selectedIndex - 1)
	case 'g':
		ss.moveTo(0)
	case 'G':
		ss.moveTo(len(ss.entries) - 1)
	case 'T':
		ss.rawMode = !ss.rawMode
		ss.previewScroll = 0
	case 'R':
		ss.reversed = !ss.reversed
		ss.visualMode = false
		ss.selectedIndices = make(map[int]bool)
		ss.selectedIndex = 0
		ss.scrollOffset = 0
		ss.updatePreview()
	case 'V':
		if ss.visualMode {
			ss.visualMode = false
			ss.selectedIndices = make(map[int]bool)
		} else {
			ss.visualMode = true
			ss.selectionStart = ss.selectedIndex
			ss.selectedIndices = map[int]bool{ss.selectedIndex: true}
		}
		ss.updatePreview()
	case 'O':
		ss.loadIntoSide(session.SideOld)
	case 'N':
		ss.loadIntoSide(session.SideNew)
	case 'c':
		ss.openCalendar()
	case 'a':
		if ss.dayFilter != nil {
			ss.dayFilter = nil
			ss.applyDayFilter()
		}
	}
	return true
}

// HandleMouse routes clicks to the calendar while it is open
func (ss *SnapshotSelector) HandleMouse(x, y int) bool {
	if !ss.visible || !ss.calendarVisible || ss.calendar == nil {
		return false
	}
	return ss.calendar.HandleMouse(x, y)
}

// formatAge shows how long ago a snapshot was taken
func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours())/24)
}

// Render draws the selector panels side by side
func (ss *SnapshotSelector) Render(screen *Screen) {
	if !ss.visible || len(ss.allEntries) == 0 {
		return
	}

	width := screen.GetWidth()
	height := screen.GetHeight()

	boxHeight := height - 4
	leftWidth := width / 2
	rightWidth := width - leftWidth
	if leftWidth < 20 || rightWidth < 20 || boxHeight < 6 {
		return
	}

	startY := 2
	ss.renderListPanel(screen, 1, startY, leftWidth-1, boxHeight)
	ss.renderPreviewPanel(screen, leftWidth+1, startY, rightWidth-2, boxHeight)

	if ss.calendarVisible && ss.calendar != nil {
		ss.calendar.Render(screen)
	}
}

// panelFrame draws the box with header and footer text embedded in the
// top and bottom border rows
func panelFrame(screen *Screen, x, y, width, height int, header, footer string) {
	drawBox(screen, x, y, width, height, screen.BorderStyle())

	headerStyle := screen.HeaderStyle()
	screen.DrawStringLimited(x+1, y, header, width-2, headerStyle)
	for col := StringWidth(header); col < width-2; col++ {
		screen.SetCell(x+1+col, y, ' ', headerStyle)
	}

	footerStyle := screen.BorderStyle()
	screen.DrawStringLimited(x+1, y+height-1, footer, width-2, footerStyle)
}

func (ss *SnapshotSelector) renderListPanel(screen *Screen, x, y, width, height int) {
	header := fmt.Sprintf(" Snapshots (%d) ", len(ss.entries))
	if ss.dayFilter != nil {
		header = fmt.Sprintf(" Snapshots %s (%d) ", ss.dayFilter.Format("2006-01-02"), len(ss.entries))
	}
	footer := " j/k: select | Enter: restore | O/N: load side | Esc: close "
	panelFrame(screen, x, y, width, height, header, footer)

	contentX := x + 1
	contentY := y + 2
	contentWidth := width - 2
	ss.listHeight = height - 4

	if len(ss.entries) == 0 {
		screen.DrawStringLimited(contentX, contentY, "(no snapshots on this day, a shows all)", contentWidth, screen.TextStyle())
		for i := 1; i < ss.listHeight; i++ {
			fillRow(screen, contentX, contentY+i, contentWidth, screen.TextStyle())
		}
		return
	}

	for row := 0; row < ss.listHeight; row++ {
		displayIdx := ss.scrollOffset + row
		if displayIdx >= len(ss.entries) {
			fillRow(screen, contentX, contentY+row, contentWidth, screen.TextStyle())
			continue
		}
		ss.renderListLine(screen, contentX, contentY+row, contentWidth, displayIdx)
	}

	drawScrollbar(screen, contentX+contentWidth-1, contentY, ss.listHeight, ss.scrollOffset, len(ss.entries), screen.SelectedStyle())
}

func fillRow(screen *Screen, x, y, width int, style tcell.Style) {
	for col := 0; col < width; col++ {
		screen.SetCell(x+col, y, ' ', style)
	}
}

func (ss *SnapshotSelector) renderListLine(screen *Screen, x, y, width, displayIdx int) {
	entry := ss.entries[ss.actualIndex(displayIdx)]

	isSelected := displayIdx == ss.selectedIndex
	isRangeSelected := ss.visualMode && ss.selectedIndices[displayIdx]

	baseStyle := screen.TextStyle()
	prefix := "  "
	if isSelected {
		baseStyle = screen.SelectedStyle()
		prefix = "> "
	} else if isRangeSelected {
		baseStyle = screen.HeaderStyle()
		prefix = "* "
	}

	line := prefix + entry.info.Timestamp.Format("2006-01-02 15:04:05") + "  " + formatAge(entry.info.Timestamp)
	if entry.loadErr != "" {
		line += " (unreadable)"
	}
	screen.DrawStringLimited(x, y, line, width, baseStyle)

	// Colored per-kind counts after the fixed part, on the row background
	xPos := x + StringWidth(line)
	if entry.result != nil {
		stats := entry.result.Stats
		_, bg, _ := baseStyle.Decompose()
		for _, part := range []struct {
			count int
			text  string
			from  tcell.Style
		}{
			{stats.Added, " +%d", screen.AddedSegmentStyle()},
			{stats.Changed, " ~%d", screen.ChangedLineStyle()},
			{stats.Removed, " -%d", screen.RemovedSegmentStyle()},
		} {
			if part.count == 0 {
				continue
			}
			fg, _, _ := part.from.Decompose()
			statStyle := tcell.StyleDefault.Foreground(fg).Background(bg)
			text := fmt.Sprintf(part.text, part.count)
			for i, ch := range text {
				if xPos+i >= x+width {
					break
				}
				screen.SetCell(xPos+i, y, ch, statStyle)
			}
			xPos += len(text)
		}
	}

	for xPos < x+width {
		screen.SetCell(xPos, y, ' ', baseStyle)
		xPos++
	}
}

func (ss *SnapshotSelector) renderPreviewPanel(screen *Screen, x, y, width, height int) {
	header := " [Diff vs current] "
	if ss.rawMode {
		header = " [Raw] "
	}
	if ss.visualMode && len(ss.selectedIndices) > 1 {
		header = " [Range diff] "
	} else if entry := ss.selectedEntry(); entry != nil {
		header += entry.info.Timestamp.Format("2006-01-02 15:04:05") + " "
	}
	footer := " T: raw/diff | R: reverse | V: range | c: calendar | PgUp/PgDn "
	panelFrame(screen, x, y, width, height, header, footer)

	contentX := x + 1
	contentY := y + 2
	contentWidth := width - 2
	ss.previewHeight = height - 4

	if ss.rawMode {
		ss.renderRawPreview(screen, contentX, contentY, contentWidth)
		return
	}
	ss.renderDiffPreview(screen, contentX, contentY, contentWidth)
}

func (ss *SnapshotSelector) renderDiffPreview(screen *Screen, x, y, width int) {
	if len(ss.previewRows) == 0 {
		screen.DrawStringLimited(x, y, "(no changes)", width, screen.TextStyle())
		for i := 1; i < ss.previewHeight; i++ {
			fillRow(screen, x, y+i, width, screen.TextStyle())
		}
		return
	}

	for row := 0; row < ss.previewHeight; row++ {
		idx := ss.previewScroll + row
		if idx >= len(ss.previewRows) {
			fillRow(screen, x, y+row, width, screen.TextStyle())
			continue
		}
		pr := ss.previewRows[idx]
		style := previewRowStyle(screen, pr.kind)
		screen.DrawStringLimited(x, y+row, pr.text, width, style)
		for col := StringWidth(pr.text); col < width; col++ {
			screen.SetCell(x+col, y+row, ' ', style)
		}
	}

	drawScrollbar(screen, x+width-1, y, ss.previewHeight, ss.previewScroll, len(ss.previewRows), screen.SelectedStyle())
}

func (ss *SnapshotSelector) renderRawPreview(screen *Screen, x, y, width int) {
	if len(ss.rawLines) == 0 {
		screen.DrawStringLimited(x, y, "(empty)", width, screen.TextStyle())
		for i := 1; i < ss.previewHeight; i++ {
			fillRow(screen, x, y+i, width, screen.TextStyle())
		}
		return
	}

	numWidth := len(fmt.Sprint(len(ss.rawLines)))
	for row := 0; row < ss.previewHeight; row++ {
		idx := ss.previewScroll + row
		if idx >= len(ss.rawLines) {
			fillRow(screen, x, y+row, width, screen.TextStyle())
			continue
		}
		line := fmt.Sprintf("%*d  %s", numWidth, idx+1, ss.rawLines[idx])
		screen.DrawStringLimited(x, y+row, line, width, screen.TextStyle())
		for col := StringWidth(line); col < width; col++ {
			screen.SetCell(x+col, y+row, ' ', screen.TextStyle())
		}
	}

	drawScrollbar(screen, x+width-1, y, ss.previewHeight, ss.previewScroll, len(ss.rawLines), screen.SelectedStyle())
}

func previewRowStyle(screen *Screen, kind diff.RecordKind) tcell.Style {
	switch kind {
	case diff.RecordAdded:
		return screen.AddedLineStyle()
	case diff.RecordDeleted:
		return screen.RemovedLineStyle()
	case diff.RecordReplaced:
		return screen.ChangedLineStyle()
	}
	return screen.TextStyle()
}
