package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// SnapshotCalendar is a month-grid overlay for narrowing the snapshot list
// down to a single day. Days that have at least one snapshot are marked
// with a filled circle.
type SnapshotCalendar struct {
	visible       bool
	currentMonth  time.Time
	selectedDate  time.Time
	marked        map[string]bool
	onDaySelected func(time.Time)
	weekStart     int // 0=Sunday, 1=Monday, etc.

	// Cached bounds for mouse handling
	boxStartX, boxStartY int
	boxWidth, boxHeight  int
}

// NewSnapshotCalendar creates a hidden calendar positioned on the current month
func NewSnapshotCalendar() *SnapshotCalendar {
	return &SnapshotCalendar{
		currentMonth: time.Now(),
		selectedDate: time.Now(),
		marked:       make(map[string]bool),
	}
}

// ShowWithMarks opens the calendar with the given snapshot timestamps marked
func (w *SnapshotCalendar) ShowWithMarks(marks []time.Time) {
	w.visible = true
	w.currentMonth = time.Now()
	w.selectedDate = time.Now()
	w.marked = make(map[string]bool, len(marks))
	for _, ts := range marks {
		w.marked[dayKey(ts)] = true
	}
}

// Hide closes the calendar
func (w *SnapshotCalendar) Hide() {
	w.visible = false
}

// IsVisible returns whether the calendar is currently shown
func (w *SnapshotCalendar) IsVisible() bool {
	return w.visible
}

// SetOnDaySelected sets the callback fired when a day is confirmed with Enter
func (w *SnapshotCalendar) SetOnDaySelected(fn func(time.Time)) {
	w.onDaySelected = fn
}

// SetWeekStart sets the day the week starts on (0=Sunday ... 6=Saturday)
func (w *SnapshotCalendar) SetWeekStart(day int) {
	if day < 0 || day > 6 {
		return
	}
	w.weekStart = day
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (w *SnapshotCalendar) hasSnapshotsOn(date time.Time) bool {
	return w.marked[dayKey(date)]
}

// shiftDay moves the selected day and drags the displayed month along when
// the selection leaves it
func (w *SnapshotCalendar) shiftDay(days int) {
	w.selectedDate = w.selectedDate.AddDate(0, 0, days)

	firstDay := time.Date(w.currentMonth.Year(), w.currentMonth.Month(), 1, 0, 0, 0, 0, time.Local)
	lastDay := firstDay.AddDate(0, 1, -1)
	if w.selectedDate.Before(firstDay) {
		w.currentMonth = w.selectedDate
		return
	}
	if w.selectedDate.After(time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, time.Local)) {
		w.currentMonth = w.selectedDate
	}
}

// HandleKey processes keyboard input while the calendar is open. Unhandled
// keys fall through to the hosting widget.
func (w *SnapshotCalendar) HandleKey(ev *tcell.EventKey) bool {
	if !w.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		w.Hide()
		return true
	case tcell.KeyEnter:
		if w.onDaySelected != nil {
			w.onDaySelected(w.selectedDate)
		}
		w.Hide()
		return true
	case tcell.KeyLeft:
		w.shiftDay(-1)
		return true
	case tcell.KeyRight:
		w.shiftDay(1)
		return true
	case tcell.KeyUp:
		w.shiftDay(-7)
		return true
	case tcell.KeyDown:
		w.shiftDay(7)
		return true
	}

	switch ev.Rune() {
	case 'h':
		w.shiftDay(-1)
		return true
	case 'l':
		w.shiftDay(1)
		return true
	case 'j':
		w.shiftDay(7)
		return true
	case 'k':
		w.shiftDay(-7)
		return true
	case 'J': // next month
		w.currentMonth = w.currentMonth.AddDate(0, 1, 0)
		return true
	case 'K': // previous month
		w.currentMonth = w.currentMonth.AddDate(0, -1, 0)
		return true
	case 'H': // previous year
		w.currentMonth = w.currentMonth.AddDate(-1, 0, 0)
		return true
	case 'L': // next year
		w.currentMonth = w.currentMonth.AddDate(1, 0, 0)
		return true
	case 't':
		w.selectedDate = time.Now()
		w.currentMonth = time.Now()
		return true
	}

	return false
}

// HandleMouse processes a click at screen coordinates. Clicks inside the
// box are always consumed so they never reach the widgets underneath.
func (w *SnapshotCalendar) HandleMouse(x, y int) bool {
	if !w.visible || !w.containsPoint(x, y) {
		return false
	}

	// Navigation arrows live on the title row: << <  Month YYYY  > >>
	if y == w.boxStartY+1 {
		switch {
		case x >= w.boxStartX+2 && x < w.boxStartX+5:
			w.currentMonth = w.currentMonth.AddDate(-1, 0, 0)
			return true
		case x >= w.boxStartX+6 && x < w.boxStartX+8:
			w.currentMonth = w.currentMonth.AddDate(0, -1, 0)
			return true
		case x >= w.boxStartX+w.boxWidth-8 && x < w.boxStartX+w.boxWidth-6:
			w.currentMonth = w.currentMonth.AddDate(0, 1, 0)
			return true
		case x >= w.boxStartX+w.boxWidth-5 && x < w.boxStartX+w.boxWidth-2:
			w.currentMonth = w.currentMonth.AddDate(1, 0, 0)
			return true
		}
	}

	if date := w.dateAtPosition(x, y); date != nil {
		w.selectedDate = *date
	}
	return true
}

func (w *SnapshotCalendar) containsPoint(x, y int) bool {
	return x >= w.boxStartX && x < w.boxStartX+w.boxWidth &&
		y >= w.boxStartY && y < w.boxStartY+w.boxHeight
}

// dateAtPosition maps screen coordinates to the day cell under them, or nil
// when the point is outside the grid or on a padding cell
func (w *SnapshotCalendar) dateAtPosition(x, y int) *time.Time {
	gridX := w.boxStartX + 4
	gridY := w.boxStartY + 5

	// 7 columns of 8 cells, 6 rows of 2
	if x < gridX || x >= gridX+56 || y < gridY || y >= gridY+12 {
		return nil
	}
	col := (x - gridX) / 8
	row := (y - gridY) / 2

	firstDay := time.Date(w.currentMonth.Year(), w.currentMonth.Month(), 1, 0, 0, 0, 0, time.Local)
	lastDay := firstDay.AddDate(0, 1, -1)
	startCol := (int(firstDay.Weekday()) - w.weekStart + 7) % 7

	dayNum := row*7 + col - startCol + 1
	if dayNum < 1 || dayNum > lastDay.Day() {
		return nil
	}

	date := time.Date(w.currentMonth.Year(), w.currentMonth.Month(), dayNum, 0, 0, 0, 0, time.Local)
	return &date
}

// Render draws the calendar centered over the current screen contents
func (w *SnapshotCalendar) Render(screen *Screen) {
	if !w.visible {
		return
	}

	width := screen.GetWidth()
	height := screen.GetHeight()

	w.boxWidth = 60
	w.boxHeight = 20
	w.boxStartX = (width - w.boxWidth) / 2
	w.boxStartY = (height - w.boxHeight) / 2
	if w.boxStartX < 0 {
		w.boxStartX = 0
	}
	if w.boxStartY < 0 {
		w.boxStartY = 0
	}

	borderStyle := screen.BorderStyle()
	bgStyle := screen.BackgroundStyle()

	for y := w.boxStartY; y < w.boxStartY+w.boxHeight && y < height; y++ {
		for x := w.boxStartX; x < w.boxStartX+w.boxWidth && x < width; x++ {
			screen.SetCell(x, y, ' ', bgStyle)
		}
	}
	drawBox(screen, w.boxStartX, w.boxStartY, w.boxWidth, w.boxHeight, borderStyle)

	w.renderTitle(screen, borderStyle)
	w.renderWeekdayHeader(screen, borderStyle)
	w.renderGrid(screen)

	footer := "h/l:day j/k:week J/K:month H/L:year | Enter:show day"
	screen.DrawString(w.boxStartX+2, w.boxStartY+w.boxHeight-2, footer, StyleDim(borderStyle))
}

// renderTitle draws the month name with the mouse navigation arrows. The
// arrow positions must stay in step with the click zones in HandleMouse.
func (w *SnapshotCalendar) renderTitle(screen *Screen, style tcell.Style) {
	y := w.boxStartY + 1
	screen.DrawString(w.boxStartX+2, y, "<<", style)
	screen.DrawString(w.boxStartX+6, y, "<", style)

	title := w.currentMonth.Format("January 2006")
	screen.DrawString(w.boxStartX+(w.boxWidth-len(title))/2, y, title, StyleBold(style))

	screen.DrawString(w.boxStartX+w.boxWidth-8, y, ">", style)
	screen.DrawString(w.boxStartX+w.boxWidth-5, y, ">>", style)
}

func (w *SnapshotCalendar) renderWeekdayHeader(screen *Screen, style tcell.Style) {
	allWeekdays := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	y := w.boxStartY + 3
	for i := 0; i < 7; i++ {
		name := allWeekdays[(i+w.weekStart)%7]
		screen.DrawString(w.boxStartX+4+i*8, y, name, StyleBold(style))
	}
}

func (w *SnapshotCalendar) renderGrid(screen *Screen) {
	firstDay := time.Date(w.currentMonth.Year(), w.currentMonth.Month(), 1, 0, 0, 0, 0, time.Local)
	lastDay := firstDay.AddDate(0, 1, -1)
	startCol := (int(firstDay.Weekday()) - w.weekStart + 7) % 7

	gridX := w.boxStartX + 4
	gridY := w.boxStartY + 5

	dayStyle := screen.TextStyle()
	inactiveStyle := StyleDim(dayStyle)
	selectedStyle := screen.SelectedStyle()

	// Mark dot and today's date reuse the added-text color on the day
	// cell background
	_, dayBg, _ := dayStyle.Decompose()
	markFg, _, _ := screen.AddedSegmentStyle().Decompose()
	markStyle := tcell.StyleDefault.Foreground(markFg).Background(dayBg)
	todayStyle := StyleBold(markStyle)

	today := time.Now()

	// Backgrounds for the full 6x7 grid, dimmed outside the month
	for row := 0; row < 6; row++ {
		for col := 0; col < 7; col++ {
			dayNum := row*7 + col - startCol + 1
			cellStyle := dayStyle
			if dayNum < 1 || dayNum > lastDay.Day() {
				cellStyle = inactiveStyle
			}
			x := gridX + col*8
			y := gridY + row*2
			for dx := 0; dx < 6; dx++ {
				screen.SetCell(x+dx, y, ' ', cellStyle)
			}
		}
	}

	for day := 1; day <= lastDay.Day(); day++ {
		date := time.Date(w.currentMonth.Year(), w.currentMonth.Month(), day, 0, 0, 0, 0, time.Local)
		col := (startCol + day - 1) % 7
		row := (startCol + day - 1) / 7
		x := gridX + col*8
		y := gridY + row*2

		style := dayStyle
		dotStyle := markStyle
		switch {
		case sameDay(date, w.selectedDate):
			style = selectedStyle
			dotStyle = selectedStyle
			for dx := 0; dx < 6; dx++ {
				screen.SetCell(x+dx, y, ' ', selectedStyle)
			}
		case sameDay(date, today):
			style = todayStyle
		}

		screen.DrawString(x, y, fmt.Sprintf("%3d", day), style)
		if w.hasSnapshotsOn(date) {
			screen.SetCell(x+4, y, '●', dotStyle)
		}
	}
}
