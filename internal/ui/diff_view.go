package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/filter"
)

// rowKind discriminates the two kinds of display rows
type rowKind int

const (
	rowRecord rowKind = iota
	rowFold
)

// displayRow is one renderable line of the view. A record row points into
// the visible records; in unified mode a replaced record occupies two rows
// and renderNew marks the one showing the new side. A fold row stands in
// for the hidden middle of an unchanged run: foldStart is the run's first
// visible-record index and foldCount the number of hidden records.
type displayRow struct {
	kind      rowKind
	rec       int
	renderNew bool
	foldStart int
	foldCount int
}

// DiffView is the main widget: a viewport-scrolled list of diff records
// with collapsible unchanged runs and a unified or side-by-side layout.
// Display rows are rebuilt whenever the records, the filter, the fold
// state or the view mode change.
type DiffView struct {
	all     []diff.DiffRecord
	visible []diff.DiffRecord

	filterExpr     filter.FilterExpr
	highlightTerms []string

	rows         []displayRow
	rowByRec     []int
	changeRows   []int
	foldableRuns []int
	expanded     map[int]bool

	selectedIdx    int
	viewportOffset int
	viewportHeight int

	sideBySide bool
	context    int
	tabWidth   int
	numWidth   int
}

// NewDiffView creates an empty view with default fold context and tab
// width
func NewDiffView() *DiffView {
	return &DiffView{
		context:        3,
		tabWidth:       4,
		viewportHeight: 20,
		expanded:       make(map[int]bool),
	}
}

// SetRecords replaces the record list, reapplies the filter and moves the
// cursor to the record nearest the previously selected line numbers, so
// the view holds its place across recompares
func (dv *DiffView) SetRecords(records []diff.DiffRecord) {
	oldLine, newLine := 0, 0
	if rec := dv.SelectedRecord(); rec != nil {
		oldLine, newLine = rec.OldLine, rec.NewLine
	}
	dv.all = records
	dv.visible = filter.Apply(dv.filterExpr, dv.all)
	dv.expanded = make(map[int]bool)
	dv.buildRows()
	dv.selectRecordNear(oldLine, newLine)
}

// SetFilter installs a filter expression; nil shows all records
func (dv *DiffView) SetFilter(expr filter.FilterExpr) {
	dv.filterExpr = expr
	dv.visible = filter.Apply(dv.filterExpr, dv.all)
	dv.expanded = make(map[int]bool)
	dv.selectedIdx = 0
	dv.viewportOffset = 0
	dv.buildRows()
}

// SetHighlightTerms sets the substrings highlighted inside row text
func (dv *DiffView) SetHighlightTerms(terms []string) {
	dv.highlightTerms = terms
}

// SetContext sets the number of unchanged lines kept visible around each
// fold
func (dv *DiffView) SetContext(n int) {
	if n < 0 {
		n = 0
	}
	dv.context = n
	dv.rebuild()
}

// SetTabWidth sets the tab stop distance used when drawing row text
func (dv *DiffView) SetTabWidth(n int) {
	if n < 1 {
		n = 1
	}
	dv.tabWidth = n
}

// ToggleViewMode switches between unified and side-by-side layout
func (dv *DiffView) ToggleViewMode() {
	dv.sideBySide = !dv.sideBySide
	dv.rebuild()
}

// SideBySide reports whether the view is in side-by-side layout
func (dv *DiffView) SideBySide() bool {
	return dv.sideBySide
}

// VisibleRecords returns the records that pass the current filter
func (dv *DiffView) VisibleRecords() []diff.DiffRecord {
	return dv.visible
}

// VisibleCount returns the number of records passing the filter
func (dv *DiffView) VisibleCount() int {
	return len(dv.visible)
}

// TotalCount returns the number of records before filtering
func (dv *DiffView) TotalCount() int {
	return len(dv.all)
}

// SelectedRecord returns the record under the cursor, or nil on a fold
// row or an empty view
func (dv *DiffView) SelectedRecord() *diff.DiffRecord {
	if dv.selectedIdx < 0 || dv.selectedIdx >= len(dv.rows) {
		return nil
	}
	row := dv.rows[dv.selectedIdx]
	if row.kind != rowRecord {
		return nil
	}
	return &dv.visible[row.rec]
}

// SelectedRecordIndex returns the visible-record index under the cursor,
// or -1 on a fold row or an empty view
func (dv *DiffView) SelectedRecordIndex() int {
	if dv.selectedIdx < 0 || dv.selectedIdx >= len(dv.rows) {
		return -1
	}
	row := dv.rows[dv.selectedIdx]
	if row.kind != rowRecord {
		return -1
	}
	return row.rec
}

// SelectRecord moves the cursor to the given visible record, expanding
// the fold hiding it if needed
func (dv *DiffView) SelectRecord(idx int) {
	if idx < 0 || idx >= len(dv.visible) {
		return
	}
	if dv.rowByRec[idx] < 0 {
		start := idx
		for start > 0 && dv.visible[start-1].Kind == diff.RecordUnchanged {
			start--
		}
		dv.expanded[start] = true
		dv.rebuild()
	}
	if dv.rowByRec[idx] >= 0 {
		dv.selectedIdx = dv.rowByRec[idx]
	}
}

// SelectNext moves the cursor one row down
func (dv *DiffView) SelectNext() {
	if dv.selectedIdx < len(dv.rows)-1 {
		dv.selectedIdx++
	}
}

// SelectPrev moves the cursor one row up
func (dv *DiffView) SelectPrev() {
	if dv.selectedIdx > 0 {
		dv.selectedIdx--
	}
}

// SelectFirst moves the cursor to the first row
func (dv *DiffView) SelectFirst() {
	dv.selectedIdx = 0
	dv.viewportOffset = 0
}

// SelectLast moves the cursor to the last row
func (dv *DiffView) SelectLast() {
	if len(dv.rows) > 0 {
		dv.selectedIdx = len(dv.rows) - 1
	}
}

// ScrollPageDown moves the cursor half a viewport down
func (dv *DiffView) ScrollPageDown() {
	step := dv.viewportHeight / 2
	if step < 1 {
		step = 1
	}
	dv.selectedIdx += step
	if dv.selectedIdx >= len(dv.rows) {
		dv.selectedIdx = len(dv.rows) - 1
	}
	if dv.selectedIdx < 0 {
		dv.selectedIdx = 0
	}
}

// ScrollPageUp moves the cursor half a viewport up
func (dv *DiffView) ScrollPageUp() {
	step := dv.viewportHeight / 2
	if step < 1 {
		step = 1
	}
	dv.selectedIdx -= step
	if dv.selectedIdx < 0 {
		dv.selectedIdx = 0
	}
}

// ScrollBy moves the viewport without keeping the cursor fixed; the
// cursor is dragged along so the next render does not snap the viewport
// back. Used for mouse wheel scrolling.
func (dv *DiffView) ScrollBy(delta int) {
	dv.viewportOffset += delta
	maxOffset := len(dv.rows) - dv.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if dv.viewportOffset > maxOffset {
		dv.viewportOffset = maxOffset
	}
	if dv.viewportOffset < 0 {
		dv.viewportOffset = 0
	}
	if dv.selectedIdx < dv.viewportOffset {
		dv.selectedIdx = dv.viewportOffset
	} else if dv.selectedIdx >= dv.viewportOffset+dv.viewportHeight {
		dv.selectedIdx = dv.viewportOffset + dv.viewportHeight - 1
	}
	if dv.selectedIdx >= len(dv.rows) {
		dv.selectedIdx = len(dv.rows) - 1
	}
	if dv.selectedIdx < 0 {
		dv.selectedIdx = 0
	}
}

// NextChange moves the cursor to the first record of the next run of
// non-unchanged records
func (dv *DiffView) NextChange() {
	for _, row := range dv.changeRows {
		if row > dv.selectedIdx {
			dv.selectedIdx = row
			return
		}
	}
}

// PrevChange moves the cursor to the first record of the previous run of
// non-unchanged records
func (dv *DiffView) PrevChange() {
	for i := len(dv.changeRows) - 1; i >= 0; i-- {
		if dv.changeRows[i] < dv.selectedIdx {
			dv.selectedIdx = dv.changeRows[i]
			return
		}
	}
}

// ToggleFold expands the fold under the cursor, or collapses the
// unchanged run the cursor is inside
func (dv *DiffView) ToggleFold() {
	if dv.selectedIdx < 0 || dv.selectedIdx >= len(dv.rows) {
		return
	}
	row := dv.rows[dv.selectedIdx]
	switch row.kind {
	case rowFold:
		dv.expanded[row.foldStart] = true
		dv.rebuild()
		first := row.foldStart + dv.context
		if first < len(dv.rowByRec) && dv.rowByRec[first] >= 0 {
			dv.selectedIdx = dv.rowByRec[first]
		}
	case rowRecord:
		if dv.visible[row.rec].Kind != diff.RecordUnchanged {
			return
		}
		start := row.rec
		for start > 0 && dv.visible[start-1].Kind == diff.RecordUnchanged {
			start--
		}
		end := row.rec
		for end < len(dv.visible) && dv.visible[end].Kind == diff.RecordUnchanged {
			end++
		}
		if end-start <= 2*dv.context+1 {
			return
		}
		delete(dv.expanded, start)
		sel := row.rec
		dv.rebuild()
		if dv.rowByRec[sel] < 0 {
			for i, r := range dv.rows {
				if r.kind == rowFold && r.foldStart == start {
					dv.selectedIdx = i
					break
				}
			}
		}
	}
}

// ToggleAllFolds expands every fold if any is collapsed, otherwise
// collapses them all
func (dv *DiffView) ToggleAllFolds() {
	if len(dv.foldableRuns) == 0 {
		return
	}
	anyCollapsed := false
	for _, start := range dv.foldableRuns {
		if !dv.expanded[start] {
			anyCollapsed = true
			break
		}
	}
	if anyCollapsed {
		for _, start := range dv.foldableRuns {
			dv.expanded[start] = true
		}
	} else {
		dv.expanded = make(map[int]bool)
	}
	dv.rebuild()
}

// rebuild recomputes the display rows, keeping the cursor on the same
// record when it still has a row
func (dv *DiffView) rebuild() {
	keep := -1
	if dv.selectedIdx >= 0 && dv.selectedIdx < len(dv.rows) {
		if row := dv.rows[dv.selectedIdx]; row.kind == rowRecord {
			keep = row.rec
		}
	}
	dv.buildRows()
	if keep >= 0 && keep < len(dv.rowByRec) && dv.rowByRec[keep] >= 0 {
		dv.selectedIdx = dv.rowByRec[keep]
	}
	if dv.selectedIdx >= len(dv.rows) {
		dv.selectedIdx = len(dv.rows) - 1
	}
	if dv.selectedIdx < 0 {
		dv.selectedIdx = 0
	}
}

// buildRows lays the visible records out as display rows. Unchanged runs
// longer than 2*context+1 collapse to a fold row with context records
// kept on both edges, unless the run has been expanded.
func (dv *DiffView) buildRows() {
	dv.rows = dv.rows[:0]
	dv.rowByRec = make([]int, len(dv.visible))
	dv.changeRows = dv.changeRows[:0]
	dv.foldableRuns = dv.foldableRuns[:0]

	threshold := 2*dv.context + 1
	i := 0
	for i < len(dv.visible) {
		if dv.visible[i].Kind != diff.RecordUnchanged {
			if i == 0 || dv.visible[i-1].Kind == diff.RecordUnchanged {
				dv.changeRows = append(dv.changeRows, len(dv.rows))
			}
			dv.appendRecordRows(i)
			i++
			continue
		}
		end := i
		for end < len(dv.visible) && dv.visible[end].Kind == diff.RecordUnchanged {
			end++
		}
		runLen := end - i
		if runLen > threshold {
			dv.foldableRuns = append(dv.foldableRuns, i)
		}
		if runLen > threshold && !dv.expanded[i] {
			for k := i; k < i+dv.context; k++ {
				dv.appendRecordRows(k)
			}
			for k := i + dv.context; k < end-dv.context; k++ {
				dv.rowByRec[k] = -1
			}
			dv.rows = append(dv.rows, displayRow{
				kind:      rowFold,
				foldStart: i,
				foldCount: runLen - 2*dv.context,
			})
			for k := end - dv.context; k < end; k++ {
				dv.appendRecordRows(k)
			}
		} else {
			for k := i; k < end; k++ {
				dv.appendRecordRows(k)
			}
		}
		i = end
	}
	dv.numWidth = recordNumberWidth(dv.visible)
}

// appendRecordRows adds the display rows for one record. Replaced records
// take two rows in unified mode, old side first.
func (dv *DiffView) appendRecordRows(idx int) {
	dv.rowByRec[idx] = len(dv.rows)
	if !dv.sideBySide && dv.visible[idx].Kind == diff.RecordReplaced {
		dv.rows = append(dv.rows,
			displayRow{kind: rowRecord, rec: idx},
			displayRow{kind: rowRecord, rec: idx, renderNew: true})
		return
	}
	dv.rows = append(dv.rows, displayRow{kind: rowRecord, rec: idx})
}

// selectRecordNear puts the cursor on the record closest to the given
// line numbers, landing on the covering fold row when the record is
// hidden. Used to hold the cursor position across recompares.
func (dv *DiffView) selectRecordNear(oldLine, newLine int) {
	dv.selectedIdx = 0
	if oldLine == 0 && newLine == 0 {
		return
	}
	best, bestDist := -1, 0
	for i := range dv.visible {
		d := lineDistance(&dv.visible[i], oldLine, newLine)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return
	}
	if dv.rowByRec[best] >= 0 {
		dv.selectedIdx = dv.rowByRec[best]
		return
	}
	for i, row := range dv.rows {
		if row.kind == rowFold && best >= row.foldStart && best < row.foldStart+dv.context+row.foldCount {
			dv.selectedIdx = i
			return
		}
	}
}

// lineDistance measures how far a record is from the given line numbers,
// preferring the old side
func lineDistance(rec *diff.DiffRecord, oldLine, newLine int) int {
	if oldLine > 0 && rec.OldLine > 0 {
		return absInt(rec.OldLine - oldLine)
	}
	if newLine > 0 && rec.NewLine > 0 {
		return absInt(rec.NewLine - newLine)
	}
	return 1 << 30
}

// Render draws the view from startY down, reserving the bottom screen
// line for the status bar, and keeps the selected row inside the viewport
func (dv *DiffView) Render(screen *Screen, startY int) {
	screenWidth := screen.GetWidth()
	screenHeight := screen.GetHeight()
	viewportHeight := screenHeight - startY - 1
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	dv.viewportHeight = viewportHeight

	if dv.selectedIdx >= len(dv.rows) {
		dv.selectedIdx = len(dv.rows) - 1
	}
	if dv.selectedIdx < 0 {
		dv.selectedIdx = 0
	}

	if dv.selectedIdx < dv.viewportOffset {
		dv.viewportOffset = dv.selectedIdx
	} else if dv.selectedIdx >= dv.viewportOffset+viewportHeight {
		dv.viewportOffset = dv.selectedIdx - viewportHeight + 1
	}
	maxOffset := len(dv.rows) - viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if dv.viewportOffset > maxOffset {
		dv.viewportOffset = maxOffset
	}
	if dv.viewportOffset < 0 {
		dv.viewportOffset = 0
	}

	screenY := startY
	for i := dv.viewportOffset; i < len(dv.rows) && screenY < screenHeight-1; i++ {
		dv.renderRow(screen, screenY, screenWidth, i)
		screenY++
	}
	bg := screen.BackgroundStyle()
	for ; screenY < screenHeight-1; screenY++ {
		for x := 0; x < screenWidth; x++ {
			screen.SetCell(x, screenY, ' ', bg)
		}
	}
}

func (dv *DiffView) renderRow(screen *Screen, y, width, rowIdx int) {
	if dv.rows[rowIdx].kind == rowFold {
		dv.renderFoldRow(screen, y, width, rowIdx)
		return
	}
	if dv.sideBySide {
		dv.renderSplitRow(screen, y, width, rowIdx)
	} else {
		dv.renderUnifiedRow(screen, y, width, rowIdx)
	}
}

func (dv *DiffView) renderFoldRow(screen *Screen, y, width, rowIdx int) {
	row := dv.rows[rowIdx]
	style := screen.FoldStyle()
	fill := screen.BackgroundStyle()
	if rowIdx == dv.selectedIdx {
		style = screen.SelectedStyle()
		fill = style
	}
	for x := 0; x < width; x++ {
		screen.SetCell(x, y, ' ', fill)
	}
	label := fmt.Sprintf("··· %d unchanged lines ···", row.foldCount)
	x := (width - StringWidth(label)) / 2
	if x < 0 {
		x = 0
	}
	screen.DrawStringLimited(x, y, label, width-x, style)
}

// renderUnifiedRow draws one row in unified layout: both line numbers, a
// marker column, then the text. Replaced rows show one side each, with
// only the changed segments tinted.
func (dv *DiffView) renderUnifiedRow(screen *Screen, y, width, rowIdx int) {
	row := dv.rows[rowIdx]
	rec := &dv.visible[row.rec]
	selected := rowIdx == dv.selectedIdx

	oldNum, newNum := 0, 0
	marker := byte(' ')
	gutter := screen.GutterStyle()
	fill := screen.BackgroundStyle()
	var spans []textSpan

	switch rec.Kind {
	case diff.RecordUnchanged:
		oldNum, newNum = rec.OldLine, rec.NewLine
		spans = []textSpan{{rec.Text, screen.TextStyle()}}
	case diff.RecordAdded:
		newNum = rec.NewLine
		marker = '+'
		fill = screen.AddedLineStyle()
		spans = []textSpan{{rec.Text, fill}}
	case diff.RecordDeleted:
		oldNum = rec.OldLine
		marker = '-'
		fill = screen.RemovedLineStyle()
		spans = []textSpan{{rec.Text, fill}}
	case diff.RecordReplaced:
		marker = '~'
		gutter = screen.ChangedLineStyle()
		if row.renderNew {
			newNum = rec.NewLine
			spans = segmentSpans(rec.NewSegments, rec.NewText(), screen.TextStyle(), screen.AddedSegmentStyle())
		} else {
			oldNum = rec.OldLine
			spans = segmentSpans(rec.OldSegments, rec.OldText(), screen.TextStyle(), screen.RemovedSegmentStyle())
		}
	}

	if selected {
		sel := screen.SelectedStyle()
		gutter, fill = sel, sel
		for i := range spans {
			spans[i].style = sel
		}
	}
	spans = splitHighlights(spans, dv.highlightTerms, screen.SearchMatchStyle())

	prefix := fmt.Sprintf("%s %s %c ", numberCell(oldNum, dv.numWidth), numberCell(newNum, dv.numWidth), marker)
	screen.DrawString(0, y, prefix, gutter)
	textX := len(prefix)
	used := dv.drawSpans(screen, textX, y, width-textX, spans)
	for x := textX + used; x < width; x++ {
		screen.SetCell(x, y, ' ', fill)
	}
}

// renderSplitRow draws one row in side-by-side layout: old side left, new
// side right, divided at half width
func (dv *DiffView) renderSplitRow(screen *Screen, y, width, rowIdx int) {
	row := dv.rows[rowIdx]
	rec := &dv.visible[row.rec]
	selected := rowIdx == dv.selectedIdx

	leftWidth := width / 2
	rightWidth := width - leftWidth - 1
	dv.renderSplitSide(screen, 0, y, leftWidth, rec, selected, false)
	screen.SetCell(leftWidth, y, '│', screen.BorderStyle())
	dv.renderSplitSide(screen, leftWidth+1, y, rightWidth, rec, selected, true)
}

// renderSplitSide draws one half of a side-by-side row; an absent side
// renders a blank gutter and an empty line
func (dv *DiffView) renderSplitSide(screen *Screen, x, y, width int, rec *diff.DiffRecord, selected, newSide bool) {
	gutter := screen.GutterStyle()
	fill := screen.BackgroundStyle()
	num := 0
	var spans []textSpan

	switch {
	case newSide && rec.HasNewSide():
		num = rec.NewLine
		switch rec.Kind {
		case diff.RecordAdded:
			fill = screen.AddedLineStyle()
			spans = []textSpan{{rec.Text, fill}}
		case diff.RecordReplaced:
			gutter = screen.ChangedLineStyle()
			spans = segmentSpans(rec.NewSegments, rec.NewText(), screen.TextStyle(), screen.AddedSegmentStyle())
		default:
			spans = []textSpan{{rec.Text, screen.TextStyle()}}
		}
	case !newSide && rec.HasOldSide():
		num = rec.OldLine
		switch rec.Kind {
		case diff.RecordDeleted:
			fill = screen.RemovedLineStyle()
			spans = []textSpan{{rec.Text, fill}}
		case diff.RecordReplaced:
			gutter = screen.ChangedLineStyle()
			spans = segmentSpans(rec.OldSegments, rec.OldText(), screen.TextStyle(), screen.RemovedSegmentStyle())
		default:
			spans = []textSpan{{rec.Text, screen.TextStyle()}}
		}
	}

	if selected {
		sel := screen.SelectedStyle()
		gutter, fill = sel, sel
		for i := range spans {
			spans[i].style = sel
		}
	}
	spans = splitHighlights(spans, dv.highlightTerms, screen.SearchMatchStyle())

	prefix := numberCell(num, dv.numWidth) + " "
	screen.DrawString(x, y, prefix, gutter)
	used := dv.drawSpans(screen, x+len(prefix), y, width-len(prefix), spans)
	for cx := len(prefix) + used; cx < width; cx++ {
		screen.SetCell(x+cx, y, ' ', fill)
	}
}

// drawSpans draws styled text runs left to right, expanding tabs against
// the text origin and clipping at maxWidth. Returns the columns used.
func (dv *DiffView) drawSpans(screen *Screen, x, y, maxWidth int, spans []textSpan) int {
	col := 0
	for _, span := range spans {
		for _, r := range span.text {
			if col >= maxWidth {
				return col
			}
			if r == '\t' {
				pad := dv.tabWidth - col%dv.tabWidth
				for i := 0; i < pad && col < maxWidth; i++ {
					screen.SetCell(x+col, y, ' ', span.style)
					col++
				}
				continue
			}
			w := RuneWidth(r)
			if w == 0 {
				continue
			}
			if col+w > maxWidth {
				return col
			}
			screen.SetCell(x+col, y, r, span.style)
			col += w
		}
	}
	return col
}

// textSpan is a run of text drawn in one style
type textSpan struct {
	text  string
	style tcell.Style
}

// segmentSpans converts one side's segments into styled spans, falling
// back to the plain text when no segments were computed
func segmentSpans(segments []diff.CharSegment, fallback string, base, changed tcell.Style) []textSpan {
	if len(segments) == 0 {
		return []textSpan{{fallback, base}}
	}
	spans := make([]textSpan, 0, len(segments))
	for _, seg := range segments {
		style := base
		if seg.Changed {
			style = changed
		}
		spans = append(spans, textSpan{seg.Text, style})
	}
	return spans
}

// splitHighlights recuts spans so that occurrences of the given terms are
// drawn in the highlight style. Matching is case-insensitive and a match
// may cross span boundaries.
func splitHighlights(spans []textSpan, terms []string, highlight tcell.Style) []textSpan {
	if len(terms) == 0 {
		return spans
	}
	var full strings.Builder
	for _, span := range spans {
		full.WriteString(span.text)
	}
	ranges := matchRanges(full.String(), terms)
	if len(ranges) == 0 {
		return spans
	}

	var out []textSpan
	offset := 0
	ri := 0
	for _, span := range spans {
		start, end := offset, offset+len(span.text)
		pos := start
		for pos < end {
			for ri < len(ranges) && ranges[ri][1] <= pos {
				ri++
			}
			if ri >= len(ranges) || ranges[ri][0] >= end {
				out = append(out, textSpan{span.text[pos-start:], span.style})
				break
			}
			r := ranges[ri]
			if r[0] > pos {
				out = append(out, textSpan{span.text[pos-start : r[0]-start], span.style})
				pos = r[0]
			}
			hlEnd := r[1]
			if hlEnd > end {
				hlEnd = end
			}
			out = append(out, textSpan{span.text[pos-start : hlEnd-start], highlight})
			pos = hlEnd
		}
		offset = end
	}
	return out
}

// matchRanges returns merged, sorted byte ranges of case-insensitive term
// occurrences in text
func matchRanges(text string, terms []string) [][2]int {
	lower := strings.ToLower(text)
	var ranges [][2]int
	for _, term := range terms {
		if term == "" {
			continue
		}
		t := strings.ToLower(term)
		from := 0
		for {
			idx := strings.Index(lower[from:], t)
			if idx < 0 {
				break
			}
			start := from + idx
			ranges = append(ranges, [2]int{start, start + len(t)})
			from = start + len(t)
		}
	}
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r[0] <= last[1] {
			if r[1] > last[1] {
				last[1] = r[1]
			}
		} else {
			merged = append(merged, r)
		}
	}
	return merged
}

// numberCell renders one line number right-aligned, or blanks for 0
func numberCell(line, width int) string {
	if line == 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, line)
}

// recordNumberWidth returns the digit width of the largest line number
func recordNumberWidth(records []diff.DiffRecord) int {
	maxLine := 1
	for i := range records {
		if records[i].OldLine > maxLine {
			maxLine = records[i].OldLine
		}
		if records[i].NewLine > maxLine {
			maxLine = records[i].NewLine
		}
	}
	return len(strconv.Itoa(maxLine))
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
