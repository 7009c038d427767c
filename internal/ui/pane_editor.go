package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// editorState represents a single undo/redo state
type editorState struct {
	text      string
	cursorPos int
}

// PaneEditor edits one pane's full text in place. The cursor is an
// absolute byte offset; lines are word-wrapped to the render width and a
// vertical viewport follows the cursor. The app drains WasTextChanged
// after every key to push the text into the session and recompare.
type PaneEditor struct {
	text      string
	cursorPos int
	active    bool

	escapePressed bool
	textChanged   bool

	maxWidth         int
	tabWidth         int
	wrappedLines     []string
	lineStartOffsets []int
	scrollOffset     int
	lastHeight       int

	undoStack     []editorState
	redoStack     []editorState
	maxUndoLevels int
}

// NewPaneEditor creates an inactive editor
func NewPaneEditor() *PaneEditor {
	pe := &PaneEditor{
		maxWidth:      80,
		tabWidth:      4,
		lastHeight:    20,
		maxUndoLevels: 50,
	}
	pe.calculateWrappedLines()
	return pe
}

// Start begins editing the given text with the cursor at the top
func (pe *PaneEditor) Start(text string) {
	pe.active = true
	pe.text = text
	pe.cursorPos = 0
	pe.scrollOffset = 0
	pe.undoStack = nil
	pe.redoStack = nil
	pe.calculateWrappedLines()
}

// Stop ends editing and returns the final text
func (pe *PaneEditor) Stop() string {
	pe.active = false
	return pe.text
}

// IsActive returns whether the editor is active
func (pe *PaneEditor) IsActive() bool {
	return pe.active
}

// GetText returns the current text
func (pe *PaneEditor) GetText() string {
	return pe.text
}

// SetText replaces the text, clamping the cursor
func (pe *PaneEditor) SetText(text string) {
	pe.text = text
	if pe.cursorPos > len(pe.text) {
		pe.cursorPos = len(pe.text)
	}
	pe.calculateWrappedLines()
}

// GetCursorPos returns the cursor position as a byte offset
func (pe *PaneEditor) GetCursorPos() int {
	return pe.cursorPos
}

// SetTabWidth sets the tab stop distance used when drawing
func (pe *PaneEditor) SetTabWidth(n int) {
	if n < 1 {
		n = 1
	}
	pe.tabWidth = n
}

// SetMaxWidth sets the wrap width and recalculates wrapped lines
func (pe *PaneEditor) SetMaxWidth(width int) {
	if width < 0 {
		width = 0
	}
	if pe.maxWidth != width {
		pe.maxWidth = width
		pe.calculateWrappedLines()
	}
}

// WasEscapePressed returns whether Escape was pressed and resets the flag
func (pe *PaneEditor) WasEscapePressed() bool {
	pressed := pe.escapePressed
	pe.escapePressed = false
	return pressed
}

// WasTextChanged returns whether the text changed since the last call and
// resets the flag
func (pe *PaneEditor) WasTextChanged() bool {
	changed := pe.textChanged
	pe.textChanged = false
	return changed
}

// calculateWrappedLines splits the text into wrapped lines and tracks the
// byte offset each wrapped line starts at
func (pe *PaneEditor) calculateWrappedLines() {
	if pe.maxWidth <= 0 {
		pe.wrappedLines = strings.Split(pe.text, "\n")
		pe.lineStartOffsets = make([]int, len(pe.wrappedLines))
		offset := 0
		for i := range pe.wrappedLines {
			pe.lineStartOffsets[i] = offset
			offset += len(pe.wrappedLines[i]) + 1
		}
		return
	}

	hardLines := strings.Split(pe.text, "\n")
	pe.wrappedLines = pe.wrappedLines[:0]
	pe.lineStartOffsets = pe.lineStartOffsets[:0]

	offset := 0
	for _, hardLine := range hardLines {
		parts := WrapToWidth(hardLine, pe.maxWidth)

		// Wrapping drops the spaces between parts; track the position
		// inside the hard line to keep the offsets exact
		searchPos := 0
		for _, part := range parts {
			partIdx := strings.Index(hardLine[searchPos:], part)
			if partIdx >= 0 {
				searchPos += partIdx
			}
			pe.lineStartOffsets = append(pe.lineStartOffsets, offset+searchPos)
			pe.wrappedLines = append(pe.wrappedLines, part)
			searchPos += len(part)
			for searchPos < len(hardLine) && hardLine[searchPos] == ' ' {
				searchPos++
			}
		}
		offset += len(hardLine) + 1
	}
}

// getCursorVisualPosition returns the (row, col) of the cursor in the
// wrapped lines, or (-1, -1) when the cursor is out of bounds
func (pe *PaneEditor) getCursorVisualPosition() (row int, col int) {
	if pe.cursorPos < 0 || pe.cursorPos > len(pe.text) {
		return -1, -1
	}

	for lineIdx, startOffset := range pe.lineStartOffsets {
		lineEnd := startOffset + len(pe.wrappedLines[lineIdx])
		if lineIdx < len(pe.lineStartOffsets)-1 {
			nextLineStart := pe.lineStartOffsets[lineIdx+1]
			if pe.cursorPos >= startOffset && pe.cursorPos <= lineEnd {
				return lineIdx, pe.cursorPos - startOffset
			}
			// Between this line and the next: the cursor sits on a
			// dropped space or the newline, show it at the line end
			if pe.cursorPos > lineEnd && pe.cursorPos < nextLineStart {
				return lineIdx, len(pe.wrappedLines[lineIdx])
			}
		} else {
			if pe.cursorPos >= startOffset {
				return lineIdx, pe.cursorPos - startOffset
			}
		}
	}

	if len(pe.wrappedLines) > 0 {
		lastIdx := len(pe.wrappedLines) - 1
		return lastIdx, len(pe.wrappedLines[lastIdx])
	}
	return 0, 0
}

// getCursorTextOffset converts a visual position back to a byte offset,
// or -1 when the position is invalid
func (pe *PaneEditor) getCursorTextOffset(row int, col int) int {
	if row < 0 || row >= len(pe.wrappedLines) {
		return -1
	}
	if col < 0 || col > len(pe.wrappedLines[row]) {
		return -1
	}
	return pe.lineStartOffsets[row] + col
}

// lineBounds returns the byte range of the hard line under the cursor
func (pe *PaneEditor) lineBounds() (start, end int) {
	start = strings.LastIndexByte(pe.text[:pe.cursorPos], '\n') + 1
	end = strings.IndexByte(pe.text[pe.cursorPos:], '\n')
	if end < 0 {
		end = len(pe.text)
	} else {
		end += pe.cursorPos
	}
	return start, end
}

// HandleKey handles a key press during editing. Returns false for keys
// the app should act on instead, after checking WasEscapePressed.
func (pe *PaneEditor) HandleKey(ev *tcell.EventKey) bool {
	if !pe.active {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		pe.escapePressed = true
		return false
	case tcell.KeyCtrlZ:
		pe.undo()
		return true
	case tcell.KeyCtrlY:
		pe.redo()
		return true
	case tcell.KeyCtrlW:
		pe.saveUndoState()
		pe.deleteWordBackwards()
		pe.markChanged()
		return true
	case tcell.KeyEnter:
		pe.saveUndoState()
		pe.text = pe.text[:pe.cursorPos] + "\n" + pe.text[pe.cursorPos:]
		pe.cursorPos++
		pe.markChanged()
		return true
	case tcell.KeyTab:
		pe.saveUndoState()
		pe.text = pe.text[:pe.cursorPos] + "\t" + pe.text[pe.cursorPos:]
		pe.cursorPos++
		pe.markChanged()
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if pe.cursorPos > 0 {
			pe.saveUndoState()
			_, size := utf8.DecodeLastRuneInString(pe.text[:pe.cursorPos])
			pe.text = pe.text[:pe.cursorPos-size] + pe.text[pe.cursorPos:]
			pe.cursorPos -= size
			pe.markChanged()
		}
		return true
	case tcell.KeyDelete:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			pe.saveUndoState()
			pe.deleteWordForward()
			pe.markChanged()
		} else if pe.cursorPos < len(pe.text) {
			pe.saveUndoState()
			_, size := utf8.DecodeRuneInString(pe.text[pe.cursorPos:])
			pe.text = pe.text[:pe.cursorPos] + pe.text[pe.cursorPos+size:]
			pe.markChanged()
		}
		return true
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			pe.jumpWordBackward()
		} else if pe.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(pe.text[:pe.cursorPos])
			pe.cursorPos -= size
		}
		return true
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			pe.jumpWordForward()
		} else if pe.cursorPos < len(pe.text) {
			_, size := utf8.DecodeRuneInString(pe.text[pe.cursorPos:])
			pe.cursorPos += size
		}
		return true
	case tcell.KeyUp:
		pe.moveVisualRows(-1)
		return true
	case tcell.KeyDown:
		pe.moveVisualRows(1)
		return true
	case tcell.KeyPgUp:
		pe.moveVisualRows(-(pe.lastHeight - 1))
		return true
	case tcell.KeyPgDn:
		pe.moveVisualRows(pe.lastHeight - 1)
		return true
	case tcell.KeyHome:
		row, _ := pe.getCursorVisualPosition()
		if row >= 0 {
			pe.cursorPos = pe.lineStartOffsets[row]
		}
		return true
	case tcell.KeyEnd:
		row, _ := pe.getCursorVisualPosition()
		if row >= 0 {
			pe.cursorPos = pe.lineStartOffsets[row] + len(pe.wrappedLines[row])
		}
		return true
	case tcell.KeyCtrlA:
		pe.cursorPos = 0
		return true
	case tcell.KeyCtrlE:
		pe.cursorPos = len(pe.text)
		return true
	case tcell.KeyCtrlU:
		start, _ := pe.lineBounds()
		if start < pe.cursorPos {
			pe.saveUndoState()
			pe.text = pe.text[:start] + pe.text[pe.cursorPos:]
			pe.cursorPos = start
			pe.markChanged()
		}
		return true
	case tcell.KeyCtrlK:
		_, end := pe.lineBounds()
		if pe.cursorPos < end {
			pe.saveUndoState()
			pe.text = pe.text[:pe.cursorPos] + pe.text[end:]
			pe.markChanged()
		}
		return true
	default:
		if ev.Key() == tcell.KeyRune {
			ch := ev.Rune()
			pe.saveUndoState()
			s := string(ch)
			pe.text = pe.text[:pe.cursorPos] + s + pe.text[pe.cursorPos:]
			pe.cursorPos += len(s)
			pe.markChanged()
		}
		return true
	}
}

// markChanged recalculates wrapping and raises the change flag
func (pe *PaneEditor) markChanged() {
	pe.calculateWrappedLines()
	pe.textChanged = true
}

// moveVisualRows moves the cursor up or down by wrapped rows, keeping the
// column where the target row allows it
func (pe *PaneEditor) moveVisualRows(delta int) {
	row, col := pe.getCursorVisualPosition()
	if row < 0 || len(pe.wrappedLines) == 0 {
		return
	}
	target := row + delta
	if target < 0 {
		target = 0
	}
	if target > len(pe.wrappedLines)-1 {
		target = len(pe.wrappedLines) - 1
	}
	if target == row {
		return
	}
	offset := pe.getCursorTextOffset(target, col)
	if offset < 0 {
		offset = pe.getCursorTextOffset(target, len(pe.wrappedLines[target]))
	}
	if offset >= 0 {
		pe.cursorPos = offset
	}
}

// deleteWordBackwards deletes the word before the cursor
func (pe *PaneEditor) deleteWordBackwards() {
	if pe.cursorPos == 0 {
		return
	}

	pos := pe.cursorPos - 1
	for pos > 0 && pe.text[pos] == ' ' {
		pos--
	}
	for pos > 0 && pe.text[pos] != ' ' && pe.text[pos] != '\n' {
		pos--
	}
	if pos > 0 && (pe.text[pos] == ' ' || pe.text[pos] == '\n') {
		pos++
	}

	pe.text = pe.text[:pos] + pe.text[pe.cursorPos:]
	pe.cursorPos = pos
}

// deleteWordForward deletes the word after the cursor
func (pe *PaneEditor) deleteWordForward() {
	if pe.cursorPos >= len(pe.text) {
		return
	}

	pos := pe.cursorPos
	for pos < len(pe.text) && pe.text[pos] != ' ' && pe.text[pos] != '\n' {
		pos++
	}
	for pos < len(pe.text) && pe.text[pos] == ' ' {
		pos++
	}

	pe.text = pe.text[:pe.cursorPos] + pe.text[pos:]
}

// jumpWordBackward moves the cursor to the start of the previous word
func (pe *PaneEditor) jumpWordBackward() {
	if pe.cursorPos == 0 {
		return
	}

	pos := pe.cursorPos - 1
	for pos > 0 && pe.text[pos] == ' ' {
		pos--
	}
	for pos > 0 && pe.text[pos] != ' ' && pe.text[pos] != '\n' {
		pos--
	}
	if pos > 0 && (pe.text[pos] == ' ' || pe.text[pos] == '\n') {
		pos++
	}
	pe.cursorPos = pos
}

// jumpWordForward moves the cursor to the start of the next word
func (pe *PaneEditor) jumpWordForward() {
	if pe.cursorPos >= len(pe.text) {
		return
	}

	pos := pe.cursorPos
	for pos < len(pe.text) && pe.text[pos] != ' ' && pe.text[pos] != '\n' {
		pos++
	}
	for pos < len(pe.text) && pe.text[pos] == ' ' {
		pos++
	}
	pe.cursorPos = pos
}

// saveUndoState pushes the current state onto the undo stack and clears
// the redo stack
func (pe *PaneEditor) saveUndoState() {
	pe.undoStack = append(pe.undoStack, editorState{
		text:      pe.text,
		cursorPos: pe.cursorPos,
	})
	if len(pe.undoStack) > pe.maxUndoLevels {
		pe.undoStack = pe.undoStack[1:]
	}
	pe.redoStack = nil
}

// undo reverts to the previous state
func (pe *PaneEditor) undo() {
	if len(pe.undoStack) == 0 {
		return
	}
	pe.redoStack = append(pe.redoStack, editorState{
		text:      pe.text,
		cursorPos: pe.cursorPos,
	})
	lastIdx := len(pe.undoStack) - 1
	previous := pe.undoStack[lastIdx]
	pe.undoStack = pe.undoStack[:lastIdx]

	pe.text = previous.text
	pe.cursorPos = previous.cursorPos
	pe.markChanged()
}

// redo restores the next state
func (pe *PaneEditor) redo() {
	if len(pe.redoStack) == 0 {
		return
	}
	pe.undoStack = append(pe.undoStack, editorState{
		text:      pe.text,
		cursorPos: pe.cursorPos,
	})
	lastIdx := len(pe.redoStack) - 1
	next := pe.redoStack[lastIdx]
	pe.redoStack = pe.redoStack[:lastIdx]

	pe.text = next.text
	pe.cursorPos = next.cursorPos
	pe.markChanged()
}

// ensureCursorVisible scrolls the viewport so the cursor row is on screen
func (pe *PaneEditor) ensureCursorVisible(height int) {
	if height < 1 {
		height = 1
	}
	row, _ := pe.getCursorVisualPosition()
	if row < 0 {
		return
	}
	if row < pe.scrollOffset {
		pe.scrollOffset = row
	} else if row >= pe.scrollOffset+height {
		pe.scrollOffset = row - height + 1
	}
	maxOffset := len(pe.wrappedLines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if pe.scrollOffset > maxOffset {
		pe.scrollOffset = maxOffset
	}
	if pe.scrollOffset < 0 {
		pe.scrollOffset = 0
	}
}

// Render draws the visible wrapped lines with the cursor cell in the
// cursor style, then clears the rest of the area
func (pe *PaneEditor) Render(screen *Screen, x, y, width, height int) {
	pe.SetMaxWidth(width)
	pe.ensureCursorVisible(height)
	pe.lastHeight = height

	textStyle := screen.EditorStyle()
	cursorStyle := screen.EditorCursorStyle()
	screenWidth := screen.GetWidth()
	cursorRow, cursorCol := pe.getCursorVisualPosition()

	for rowIdx := 0; rowIdx < height; rowIdx++ {
		lineIdx := pe.scrollOffset + rowIdx
		screenY := y + rowIdx
		if screenY >= screen.GetHeight() {
			break
		}
		if lineIdx >= len(pe.wrappedLines) {
			for i := 0; i < width && x+i < screenWidth; i++ {
				screen.SetCell(x+i, screenY, ' ', textStyle)
			}
			continue
		}

		line := pe.wrappedLines[lineIdx]
		screenCol := 0
		for byteIdx, r := range line {
			if x+screenCol >= screenWidth || screenCol >= width {
				break
			}
			charStyle := textStyle
			if lineIdx == cursorRow && byteIdx == cursorCol {
				charStyle = cursorStyle
			}
			if r == '\t' {
				pad := pe.tabWidth - screenCol%pe.tabWidth
				for i := 0; i < pad && screenCol < width && x+screenCol < screenWidth; i++ {
					screen.SetCell(x+screenCol, screenY, ' ', charStyle)
					screenCol++
					charStyle = textStyle
				}
				continue
			}
			screen.SetCell(x+screenCol, screenY, r, charStyle)
			screenCol += RuneWidth(r)
		}

		cursorAtEnd := lineIdx == cursorRow && cursorCol == len(line)
		if cursorAtEnd && screenCol < width && x+screenCol < screenWidth {
			screen.SetCell(x+screenCol, screenY, ' ', cursorStyle)
			screenCol++
		}
		for i := screenCol; i < width && x+i < screenWidth; i++ {
			screen.SetCell(x+i, screenY, ' ', textStyle)
		}
	}
}
