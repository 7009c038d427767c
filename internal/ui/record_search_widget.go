package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// RecordSearchWidget is the fuzzy record finder. Matching runs over the
// record text, the kind word and the line numbers, so "added 12" or
// "chng colour" both work
type RecordSearchWidget struct {
	visible     bool
	input       *InputLine
	records     []diff.DiffRecord
	matches     []int
	selectedIdx int
	maxResults  int
	onJump      func(recordIdx int)
	onFilter    func(query string)
}

func NewRecordSearchWidget() *RecordSearchWidget {
	return &RecordSearchWidget{
		input:      NewInputLine(),
		maxResults: 10,
	}
}

// SetRecords sets the records the search runs over. Indices reported by
// onJump refer to this slice
func (w *RecordSearchWidget) SetRecords(records []diff.DiffRecord) {
	w.records = records
	w.updateMatches()
}

func (w *RecordSearchWidget) SetOnJump(onJump func(recordIdx int)) {
	w.onJump = onJump
}

func (w *RecordSearchWidget) SetOnFilter(onFilter func(query string)) {
	w.onFilter = onFilter
}

func (w *RecordSearchWidget) Show() {
	w.visible = true
	w.input.Clear()
	w.selectedIdx = 0
	w.updateMatches()
}

func (w *RecordSearchWidget) Hide() {
	w.visible = false
}

func (w *RecordSearchWidget) IsVisible() bool {
	return w.visible
}

// updateMatches recomputes the fuzzy matches for the current query
func (w *RecordSearchWidget) updateMatches() {
	w.matches = nil
	w.selectedIdx = 0

	query := w.input.GetText()
	if query == "" {
		return
	}

	for i := range w.records {
		if fuzzy.MatchFold(query, recordSearchText(&w.records[i])) {
			w.matches = append(w.matches, i)
			if len(w.matches) >= w.maxResults {
				break
			}
		}
	}
}

// recordSearchText builds the haystack a record is matched against
func recordSearchText(rec *diff.DiffRecord) string {
	parts := []string{rec.Kind.KindName()}
	if rec.OldLine > 0 {
		parts = append(parts, strconv.Itoa(rec.OldLine))
	}
	if rec.NewLine > 0 {
		parts = append(parts, strconv.Itoa(rec.NewLine))
	}
	if rec.Kind == diff.RecordReplaced {
		parts = append(parts, rec.OldText(), rec.NewText())
	} else {
		parts = append(parts, rec.Text)
	}
	return strings.Join(parts, " ")
}

// recordDisplayText is the one-line result label for a record
func recordDisplayText(rec *diff.DiffRecord) string {
	if rec.Kind == diff.RecordReplaced {
		return rec.OldText() + " → " + rec.NewText()
	}
	return rec.Text
}

func (w *RecordSearchWidget) HandleKey(ev *tcell.EventKey) bool {
	if !w.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		w.Hide()
		return true

	case tcell.KeyEnter:
		if len(w.matches) == 0 || w.selectedIdx >= len(w.matches) {
			return true
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			// Alt+Enter: install the query as the view filter
			query := w.input.GetText()
			w.Hide()
			if w.onFilter != nil {
				w.onFilter(query)
			}
		} else {
			selected := w.matches[w.selectedIdx]
			w.Hide()
			if w.onJump != nil {
				w.onJump(selected)
			}
		}
		return true

	case tcell.KeyCtrlN:
		if len(w.matches) > 0 {
			w.selectedIdx++
			if w.selectedIdx >= len(w.matches) {
				w.selectedIdx = 0
			}
		}
		return true

	case tcell.KeyCtrlP:
		if len(w.matches) > 0 {
			w.selectedIdx--
			if w.selectedIdx < 0 {
				w.selectedIdx = len(w.matches) - 1
			}
		}
		return true
	}

	if w.input.HandleKey(ev) {
		w.updateMatches()
		return true
	}
	return true
}

func (w *RecordSearchWidget) Render(screen *Screen) {
	if !w.visible {
		return
	}

	width := screen.GetWidth()
	height := screen.GetHeight()

	boxWidth := (width * 2) / 3
	if boxWidth > width-4 {
		boxWidth = width - 4
	}
	if boxWidth < 20 {
		return
	}
	boxStartX := (width - boxWidth) / 2

	// 1 title + 1 input + maxResults rows + 1 footer inside the border
	boxHeight := w.maxResults + 5
	boxStartY := (height - boxHeight) / 2
	if boxStartY < 0 {
		boxStartY = 0
	}

	borderStyle := screen.BorderStyle()
	bgStyle := screen.BackgroundStyle()
	textStyle := screen.TextStyle()
	selectedStyle := screen.SelectedStyle()

	for y := boxStartY; y < boxStartY+boxHeight && y < height; y++ {
		for x := boxStartX; x < boxStartX+boxWidth && x < width; x++ {
			screen.SetCell(x, y, ' ', bgStyle)
		}
	}
	drawBox(screen, boxStartX, boxStartY, boxWidth, boxHeight, borderStyle)

	innerX := boxStartX + 2
	innerWidth := boxWidth - 4

	screen.DrawStringLimited(innerX, boxStartY+1, "Search Records", innerWidth, borderStyle)

	inputY := boxStartY + 2
	screen.DrawString(innerX, inputY, "Query: ", textStyle)
	w.input.Render(screen, innerX+7, inputY, innerWidth-7, textStyle, StyleReverse(textStyle))

	resultsY := boxStartY + 3
	for i, recIdx := range w.matches {
		if i >= w.maxResults {
			break
		}
		rec := &w.records[recIdx]
		prefix := "   "
		style := textStyle
		if i == w.selectedIdx {
			prefix = " > "
			style = selectedStyle
		}
		line := fmt.Sprintf("%s%s %s %s",
			prefix,
			numberCell(rec.OldLine, 4),
			numberCell(rec.NewLine, 4),
			recordDisplayText(rec))
		screen.DrawStringLimited(innerX, resultsY+i, line, innerWidth, style)
	}

	footerY := boxStartY + boxHeight - 2
	footer := fmt.Sprintf(" %d of %d records | Enter: jump, Alt+Enter: filter, Esc: close",
		len(w.matches), len(w.records))
	screen.DrawStringLimited(innerX, footerY, footer, innerWidth, borderStyle)
}
