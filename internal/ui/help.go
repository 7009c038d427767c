package ui

import "github.com/gdamore/tcell/v2"

// HelpScreen shows the key reference in a scrollable modal box. The app
// fills the content from its keybinding table.
type HelpScreen struct {
	visible      bool
	lines        []string
	scrollOffset int
	pageSize     int
}

// NewHelpScreen creates a hidden help screen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{pageSize: 10}
}

// SetContent sets the lines to display
func (h *HelpScreen) SetContent(lines []string) {
	h.lines = lines
}

// Toggle flips visibility, resetting the scroll position on open
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
	if h.visible {
		h.scrollOffset = 0
	}
}

// Hide closes the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is open
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// HandleKey processes a key while the help screen is open. All keys are
// consumed; Escape, q and ? close.
func (h *HelpScreen) HandleKey(ev *tcell.EventKey) bool {
	if !h.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		h.Hide()
		return true
	case tcell.KeyUp:
		h.scroll(-1)
		return true
	case tcell.KeyDown:
		h.scroll(1)
		return true
	case tcell.KeyPgUp, tcell.KeyCtrlU:
		h.scroll(-h.pageSize)
		return true
	case tcell.KeyPgDn, tcell.KeyCtrlD:
		h.scroll(h.pageSize)
		return true
	case tcell.KeyHome:
		h.scrollOffset = 0
		return true
	case tcell.KeyEnd:
		h.scroll(len(h.lines))
		return true
	}

	switch ev.Rune() {
	case 'q', '?':
		h.Hide()
	case 'k':
		h.scroll(-1)
	case 'j':
		h.scroll(1)
	case 'g':
		h.scrollOffset = 0
	case 'G':
		h.scroll(len(h.lines))
	}
	return true
}

func (h *HelpScreen) scroll(delta int) {
	h.scrollOffset += delta
	maxOffset := len(h.lines) - h.pageSize
	if maxOffset < 0 {
		maxOffset = 0
	}
	if h.scrollOffset > maxOffset {
		h.scrollOffset = maxOffset
	}
	if h.scrollOffset < 0 {
		h.scrollOffset = 0
	}
}

// Render draws the help box over a dimmed full-screen background
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	for y := 0; y < screen.GetHeight(); y++ {
		for x := 0; x < screen.GetWidth(); x++ {
			screen.SetCell(x, y, ' ', contentStyle)
		}
	}

	startX := 5
	startY := 2
	boxWidth := screen.GetWidth() - 10
	boxHeight := screen.GetHeight() - 4
	if boxWidth < 20 || boxHeight < 6 {
		return
	}

	drawBox(screen, startX, startY, boxWidth, boxHeight, borderStyle)
	screen.DrawStringLimited(startX+2, startY+1, " Key Reference (? to close) ", boxWidth-4, titleStyle)
	screen.SetCell(startX, startY+2, '├', borderStyle)
	for i := 1; i < boxWidth-1; i++ {
		screen.SetCell(startX+i, startY+2, '─', borderStyle)
	}
	screen.SetCell(startX+boxWidth-1, startY+2, '┤', borderStyle)

	contentY := startY + 3
	contentHeight := boxHeight - 4
	h.pageSize = contentHeight
	h.scroll(0)

	for i := 0; i < contentHeight; i++ {
		lineIdx := h.scrollOffset + i
		if lineIdx >= len(h.lines) {
			break
		}
		screen.DrawStringLimited(startX+2, contentY+i, h.lines[lineIdx], boxWidth-4, contentStyle)
	}

	drawScrollbar(screen, startX+boxWidth-1, contentY, contentHeight, h.scrollOffset, len(h.lines), titleStyle)
}

// drawBox draws a box border
func drawBox(screen *Screen, x, y, width, height int, style tcell.Style) {
	screen.SetCell(x, y, '┌', style)
	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y, '─', style)
	}
	screen.SetCell(x+width-1, y, '┐', style)

	screen.SetCell(x, y+height-1, '└', style)
	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y+height-1, '─', style)
	}
	screen.SetCell(x+width-1, y+height-1, '┘', style)

	for i := 1; i < height-1; i++ {
		screen.SetCell(x, y+i, '│', style)
		screen.SetCell(x+width-1, y+i, '│', style)
	}
}

// drawScrollbar draws a single-cell thumb marking the scroll position
// inside a column of the given height
func drawScrollbar(screen *Screen, x, y, height, offset, total int, style tcell.Style) {
	if total <= height || total <= 0 {
		return
	}
	thumbY := y + offset*height/total
	if thumbY >= y+height {
		thumbY = y + height - 1
	}
	screen.SetCell(x, thumbY, '█', style)
}
