package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-diff/internal/filter"
	"github.com/pstuifzand/tui-diff/internal/history"
)

// FilterBar manages the record filter (`/`). While the bar is open the
// typed query is applied live; Enter installs it, Escape restores the
// previously installed one
type FilterBar struct {
	active     bool
	input      string
	cursorPos  int
	installed  string // query applied when the bar is closed
	expr       filter.FilterExpr
	parseError string
	matchCount int
	totalCount int
	history    *History
}

// NewFilterBar creates a new FilterBar without history persistence
func NewFilterBar(historySize int) *FilterBar {
	f := &FilterBar{
		history: NewHistory(historySize),
	}
	f.expr, _ = filter.ParseQuery("")
	return f
}

// NewFilterBarWithHistory creates a new FilterBar with history persistence
func NewFilterBarWithHistory(historySize int, manager *history.Manager) (*FilterBar, error) {
	h, err := NewHistoryWithManager(historySize, manager, "filter.toml")
	if err != nil {
		// If history loading fails, continue with empty history
		h = NewHistory(historySize)
	}

	f := &FilterBar{
		history: h,
	}
	f.expr, _ = filter.ParseQuery("")
	return f, nil
}

// Start opens the bar for editing, prefilled with the installed query
// so the view does not jump while refining it
func (f *FilterBar) Start() {
	f.active = true
	f.input = f.installed
	f.cursorPos = len(f.input)
	f.history.Reset()
	f.updateExpr()
}

// Stop closes the bar
func (f *FilterBar) Stop() {
	f.active = false
	f.history.Reset()
}

// IsActive returns whether the bar is open
func (f *FilterBar) IsActive() bool {
	return f.active
}

// HandleKey processes a key press while the bar is open. Returns true
// when the bar closed (install or cancel)
func (f *FilterBar) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		f.input = f.installed
		f.updateExpr()
		f.Stop()
		return true
	case tcell.KeyEnter:
		f.installed = f.input
		f.history.Add(f.installed)
		f.updateExpr()
		f.Stop()
		return true
	case tcell.KeyUp:
		if !f.history.IsNavigating() {
			f.history.SetTemporary(f.input)
		}
		if prev, ok := f.history.Previous(); ok {
			f.input = prev
			f.cursorPos = len(f.input)
			f.updateExpr()
		}
	case tcell.KeyDown:
		if next, ok := f.history.Next(); ok {
			f.input = next
			f.cursorPos = len(f.input)
			f.updateExpr()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(f.input[:f.cursorPos])
			f.input = f.input[:f.cursorPos-size] + f.input[f.cursorPos:]
			f.cursorPos -= size
			f.updateExpr()
		}
	case tcell.KeyDelete:
		if f.cursorPos < len(f.input) {
			_, size := utf8.DecodeRuneInString(f.input[f.cursorPos:])
			f.input = f.input[:f.cursorPos] + f.input[f.cursorPos+size:]
			f.updateExpr()
		}
	case tcell.KeyLeft:
		if f.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(f.input[:f.cursorPos])
			f.cursorPos -= size
		}
	case tcell.KeyRight:
		if f.cursorPos < len(f.input) {
			_, size := utf8.DecodeRuneInString(f.input[f.cursorPos:])
			f.cursorPos += size
		}
	case tcell.KeyHome:
		f.cursorPos = 0
	case tcell.KeyEnd:
		f.cursorPos = len(f.input)
	case tcell.KeyCtrlU:
		f.input = f.input[f.cursorPos:]
		f.cursorPos = 0
		f.updateExpr()
	case tcell.KeyCtrlK:
		f.input = f.input[:f.cursorPos]
		f.updateExpr()
	default:
		ch := ev.Rune()
		if ch > 0 {
			s := string(ch)
			f.input = f.input[:f.cursorPos] + s + f.input[f.cursorPos:]
			f.cursorPos += len(s)
			f.updateExpr()
		}
	}
	return false
}

// updateExpr reparses the current input
func (f *FilterBar) updateExpr() {
	f.parseError = ""
	expr, err := filter.ParseQuery(f.input)
	if err != nil {
		f.parseError = err.Error()
		f.expr = nil
		return
	}
	f.expr = expr
}

// Install applies a query directly, for the :filter command
func (f *FilterBar) Install(query string) error {
	expr, err := filter.ParseQuery(query)
	if err != nil {
		return err
	}
	f.installed = query
	f.input = query
	f.cursorPos = len(query)
	f.expr = expr
	f.parseError = ""
	return nil
}

// ClearFilter removes the installed filter
func (f *FilterBar) ClearFilter() {
	f.installed = ""
	f.input = ""
	f.cursorPos = 0
	f.updateExpr()
}

// Expr returns the effective filter expression. It is nil while the
// typed query does not parse
func (f *FilterBar) Expr() filter.FilterExpr {
	return f.expr
}

// ParseError returns the last parse error, if any
func (f *FilterBar) ParseError() string {
	return f.parseError
}

// InstalledQuery returns the query applied when the bar is closed
func (f *FilterBar) InstalledQuery() string {
	return f.installed
}

// HasFilter returns true when a non-empty filter is installed
func (f *FilterBar) HasFilter() bool {
	return f.installed != ""
}

// SetMatchInfo records how many rows the filter kept, for the bar's
// right-hand count
func (f *FilterBar) SetMatchInfo(matched, total int) {
	f.matchCount = matched
	f.totalCount = total
}

// Render renders the filter bar
func (f *FilterBar) Render(screen *Screen, y int) {
	if !f.active {
		return
	}

	labelStyle := screen.FilterLabelStyle()
	textStyle := screen.FilterTextStyle()
	cursorStyle := screen.FilterCursorStyle()
	countStyle := screen.FilterCountStyle()
	screenWidth := screen.GetWidth()

	label := "Filter: "
	screen.DrawString(0, y, label, labelStyle)
	x := StringWidth(label)

	col := x
	for byteIdx, r := range f.input {
		if col >= screenWidth {
			break
		}
		charStyle := textStyle
		if byteIdx == f.cursorPos {
			charStyle = cursorStyle
		}
		screen.SetCell(col, y, r, charStyle)
		col += RuneWidth(r)
	}

	if f.cursorPos >= len(f.input) && col < screenWidth {
		screen.SetCell(col, y, ' ', cursorStyle)
		col++
	}

	for col < screenWidth {
		screen.SetCell(col, y, ' ', textStyle)
		col++
	}

	var info string
	switch {
	case f.parseError != "":
		info = " (error: " + f.parseError + ")"
	case f.matchCount == 0:
		info = " (no rows)"
	default:
		info = fmt.Sprintf(" (%d of %d rows)", f.matchCount, f.totalCount)
	}
	if StringWidth(info) > screenWidth/2 {
		info = " (error: syntax)"
	}
	screen.DrawString(screenWidth-StringWidth(info), y, info, countStyle)
}
