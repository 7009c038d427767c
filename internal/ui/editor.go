package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// InputLine is a single-line text input used by the modal widgets.
// The cursor position is a byte offset into the text
type InputLine struct {
	text      string
	cursorPos int
}

// NewInputLine creates an empty input line
func NewInputLine() *InputLine {
	return &InputLine{}
}

// GetText returns the current text
func (e *InputLine) GetText() string {
	return e.text
}

// SetText sets the text and moves the cursor to the end
func (e *InputLine) SetText(text string) {
	e.text = text
	e.cursorPos = len(text)
}

// GetCursorPos returns the cursor byte offset
func (e *InputLine) GetCursorPos() int {
	return e.cursorPos
}

// Clear empties the input
func (e *InputLine) Clear() {
	e.text = ""
	e.cursorPos = 0
}

// HandleKey processes editing keys and reports whether the key was
// consumed. Enter and Escape are left for the owning widget
func (e *InputLine) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(e.text[:e.cursorPos])
			e.text = e.text[:e.cursorPos-size] + e.text[e.cursorPos:]
			e.cursorPos -= size
		}
		return true
	case tcell.KeyDelete:
		if e.cursorPos < len(e.text) {
			_, size := utf8.DecodeRuneInString(e.text[e.cursorPos:])
			e.text = e.text[:e.cursorPos] + e.text[e.cursorPos+size:]
		}
		return true
	case tcell.KeyLeft:
		if e.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(e.text[:e.cursorPos])
			e.cursorPos -= size
		}
		return true
	case tcell.KeyRight:
		if e.cursorPos < len(e.text) {
			_, size := utf8.DecodeRuneInString(e.text[e.cursorPos:])
			e.cursorPos += size
		}
		return true
	case tcell.KeyHome, tcell.KeyCtrlA:
		e.cursorPos = 0
		return true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		e.cursorPos = len(e.text)
		return true
	case tcell.KeyCtrlU:
		e.text = e.text[e.cursorPos:]
		e.cursorPos = 0
		return true
	case tcell.KeyCtrlK:
		e.text = e.text[:e.cursorPos]
		return true
	case tcell.KeyCtrlW:
		e.deleteWordBackwards()
		return true
	default:
		ch := ev.Rune()
		if ch > 0 && ev.Key() == tcell.KeyRune {
			s := string(ch)
			e.text = e.text[:e.cursorPos] + s + e.text[e.cursorPos:]
			e.cursorPos += len(s)
			return true
		}
	}
	return false
}

// deleteWordBackwards deletes the word before the cursor
func (e *InputLine) deleteWordBackwards() {
	if e.cursorPos == 0 {
		return
	}

	pos := e.cursorPos - 1
	for pos >= 0 && e.text[pos] == ' ' {
		pos--
	}
	for pos >= 0 && e.text[pos] != ' ' {
		pos--
	}

	deleteStart := pos + 1
	e.text = e.text[:deleteStart] + e.text[e.cursorPos:]
	e.cursorPos = deleteStart
}

// Render draws the text with a block cursor, clearing the rest of the
// field
func (e *InputLine) Render(screen *Screen, x, y, maxWidth int, textStyle, cursorStyle tcell.Style) {
	if maxWidth <= 0 {
		return
	}

	col := 0
	for byteIdx, r := range e.text {
		if col >= maxWidth {
			break
		}
		style := textStyle
		if byteIdx == e.cursorPos {
			style = cursorStyle
		}
		screen.SetCell(x+col, y, r, style)
		col += RuneWidth(r)
	}

	if e.cursorPos >= len(e.text) && col < maxWidth {
		screen.SetCell(x+col, y, ' ', cursorStyle)
		col++
	}

	for col < maxWidth {
		screen.SetCell(x+col, y, ' ', textStyle)
		col++
	}
}
