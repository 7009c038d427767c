package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// fileEntry is one row of the picker listing
type fileEntry struct {
	name  string
	isDir bool
}

// FilePicker is the modal file chooser. The input holds a path; the part
// after the last slash filters the directory listing as a substring.
// Dot-files stay hidden until the filter starts with a dot or Ctrl+D
// toggles them on
type FilePicker struct {
	visible     bool
	input       *InputLine
	target      string
	dir         string
	entries     []fileEntry
	matches     []fileEntry
	selectedIdx int
	showHidden  bool
	errMsg      string
	onSelect    func(path string)
}

func NewFilePicker() *FilePicker {
	return &FilePicker{
		input: NewInputLine(),
	}
}

// SetOnSelect sets the callback invoked with the chosen path
func (w *FilePicker) SetOnSelect(onSelect func(path string)) {
	w.onSelect = onSelect
}

// SetTarget sets the pane label shown in the title
func (w *FilePicker) SetTarget(target string) {
	w.target = target
}

// Show opens the picker rooted at the given path prefix
func (w *FilePicker) Show(prefix string) {
	w.visible = true
	w.showHidden = false
	w.dir = ""
	w.input.SetText(prefix)
	w.refresh()
}

func (w *FilePicker) Hide() {
	w.visible = false
}

func (w *FilePicker) IsVisible() bool {
	return w.visible
}

// splitPathQuery splits the input into the directory to list and the
// filter applied to its entries
func splitPathQuery(text string) (string, string) {
	idx := strings.LastIndexByte(text, '/')
	if idx < 0 {
		return ".", text
	}
	return text[:idx+1], text[idx+1:]
}

func (w *FilePicker) joinPath(name string) string {
	if w.dir == "." {
		return name
	}
	return w.dir + name
}

func (w *FilePicker) refresh() {
	dir, base := splitPathQuery(w.input.GetText())
	if dir != w.dir {
		w.dir = dir
		w.loadDir()
	}
	w.filterEntries(base)
}

func (w *FilePicker) loadDir() {
	w.entries = nil
	w.errMsg = ""

	list, err := os.ReadDir(w.dir)
	if err != nil {
		w.errMsg = err.Error()
		return
	}

	// Directories first, both halves keep ReadDir's name order
	var dirs, files []fileEntry
	for _, de := range list {
		entry := fileEntry{name: de.Name(), isDir: de.IsDir()}
		if entry.isDir {
			dirs = append(dirs, entry)
		} else {
			files = append(files, entry)
		}
	}
	w.entries = append(dirs, files...)
}

func (w *FilePicker) filterEntries(base string) {
	w.matches = nil
	w.selectedIdx = 0

	baseLower := strings.ToLower(base)
	withDots := w.showHidden || strings.HasPrefix(base, ".")
	for _, entry := range w.entries {
		if !withDots && strings.HasPrefix(entry.name, ".") {
			continue
		}
		if base != "" && !strings.Contains(strings.ToLower(entry.name), baseLower) {
			continue
		}
		w.matches = append(w.matches, entry)
	}
}

// complete replaces the filter part of the input with the selected entry,
// descending into directories
func (w *FilePicker) complete(entry fileEntry) {
	if entry.isDir {
		w.input.SetText(w.joinPath(entry.name) + "/")
	} else {
		w.input.SetText(w.joinPath(entry.name))
	}
	w.refresh()
}

func (w *FilePicker) moveSelection(delta int) {
	if len(w.matches) == 0 {
		return
	}
	w.selectedIdx += delta
	if w.selectedIdx >= len(w.matches) {
		w.selectedIdx = 0
	}
	if w.selectedIdx < 0 {
		w.selectedIdx = len(w.matches) - 1
	}
}

func (w *FilePicker) HandleKey(ev *tcell.EventKey) bool {
	if !w.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		w.Hide()
		return true

	case tcell.KeyEnter:
		if len(w.matches) > 0 && w.selectedIdx < len(w.matches) {
			entry := w.matches[w.selectedIdx]
			if entry.isDir {
				w.complete(entry)
				return true
			}
			path := w.joinPath(entry.name)
			w.Hide()
			if w.onSelect != nil {
				w.onSelect(path)
			}
			return true
		}
		// No match: hand the typed path to the app as-is
		if text := w.input.GetText(); text != "" {
			w.Hide()
			if w.onSelect != nil {
				w.onSelect(text)
			}
		}
		return true

	case tcell.KeyTab:
		if len(w.matches) > 0 && w.selectedIdx < len(w.matches) {
			w.complete(w.matches[w.selectedIdx])
		}
		return true

	case tcell.KeyCtrlN, tcell.KeyDown:
		w.moveSelection(1)
		return true

	case tcell.KeyCtrlP, tcell.KeyUp:
		w.moveSelection(-1)
		return true

	case tcell.KeyCtrlD:
		w.showHidden = !w.showHidden
		w.refresh()
		return true
	}

	if w.input.HandleKey(ev) {
		w.refresh()
	}
	return true
}

func (w *FilePicker) Render(screen *Screen) {
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

	boxHeight := 16
	if boxHeight > height-2 {
		boxHeight = height - 2
	}
	if boxHeight < 7 {
		return
	}
	boxStartY := (height - boxHeight) / 2

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

	title := "Open File"
	if w.target != "" {
		title = fmt.Sprintf("Open File into %s pane", w.target)
	}
	screen.DrawStringLimited(innerX, boxStartY+1, title, innerWidth, borderStyle)

	inputY := boxStartY + 2
	screen.DrawString(innerX, inputY, "Path: ", textStyle)
	w.input.Render(screen, innerX+6, inputY, innerWidth-6, textStyle, StyleReverse(textStyle))

	resultsY := boxStartY + 3
	maxDisplay := boxHeight - 5

	if w.errMsg != "" {
		screen.DrawStringLimited(innerX, resultsY, w.errMsg, innerWidth, screen.StatusWarningStyle())
	} else {
		// Keep the selection inside the visible window
		displayStart := 0
		if w.selectedIdx >= maxDisplay {
			displayStart = w.selectedIdx - maxDisplay + 1
		}
		for i := 0; i < maxDisplay; i++ {
			matchIdx := displayStart + i
			if matchIdx >= len(w.matches) {
				break
			}
			entry := w.matches[matchIdx]
			name := entry.name
			if entry.isDir {
				name += "/"
			}
			prefix := "   "
			style := textStyle
			if matchIdx == w.selectedIdx {
				prefix = " > "
				style = selectedStyle
			}
			screen.DrawStringLimited(innerX, resultsY+i, prefix+name, innerWidth, style)
		}
		drawScrollbar(screen, boxStartX+boxWidth-1, resultsY, maxDisplay, displayStart, len(w.matches), borderStyle)
	}

	footerY := boxStartY + boxHeight - 2
	footer := fmt.Sprintf(" %d of %d | Enter: open, Tab: complete, Ctrl+D: dot-files, Esc: cancel",
		len(w.matches), len(w.entries))
	screen.DrawStringLimited(innerX, footerY, footer, innerWidth, borderStyle)
}
