package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// segmentRow is one row of the inspector's segment table
type segmentRow struct {
	side  string
	index int
	seg   diff.CharSegment
}

// RecordInspector is the full-screen modal showing every field of the
// selected record, including the per-side character segments. The r key
// switches to a raw structure dump
type RecordInspector struct {
	visible     bool
	record      *diff.DiffRecord
	segments    []segmentRow
	selectedIdx int
	rawMode     bool
	rawLines    []string
	rawOffset   int
	pageSize    int
}

// NewRecordInspector creates a hidden inspector
func NewRecordInspector() *RecordInspector {
	return &RecordInspector{pageSize: 10}
}

// Show opens the inspector on the given record
func (ir *RecordInspector) Show(rec *diff.DiffRecord) {
	if rec == nil {
		return
	}
	ir.record = rec
	ir.visible = true
	ir.rawMode = false
	ir.rawLines = nil
	ir.rawOffset = 0
	ir.selectedIdx = 0

	ir.segments = nil
	for i, seg := range rec.OldSegments {
		ir.segments = append(ir.segments, segmentRow{side: "old", index: i, seg: seg})
	}
	for i, seg := range rec.NewSegments {
		ir.segments = append(ir.segments, segmentRow{side: "new", index: i, seg: seg})
	}
}

// Hide closes the inspector
func (ir *RecordInspector) Hide() {
	ir.visible = false
	ir.record = nil
}

// IsVisible returns whether the inspector is open
func (ir *RecordInspector) IsVisible() bool {
	return ir.visible
}

// segmentKindWord names what a segment contributes to its side
func segmentKindWord(row segmentRow) string {
	if !row.seg.Changed {
		return "kept"
	}
	if row.side == "old" {
		return "removed"
	}
	return "added"
}

// HandleKey processes a key while the inspector is open. All keys are
// consumed; Escape, q and i close
func (ir *RecordInspector) HandleKey(ev *tcell.EventKey) bool {
	if !ir.visible {
		return false
	}

	if ev.Key() == tcell.KeyEscape {
		ir.Hide()
		return true
	}

	switch ev.Rune() {
	case 'q', 'i':
		ir.Hide()
	case 'r':
		ir.rawMode = !ir.rawMode
		ir.rawOffset = 0
		if ir.rawMode && ir.rawLines == nil {
			dump := strings.TrimRight(spew.Sdump(*ir.record), "\n")
			ir.rawLines = strings.Split(dump, "\n")
		}
	case 'j':
		if ir.rawMode {
			ir.scrollRaw(1)
		} else if ir.selectedIdx < len(ir.segments)-1 {
			ir.selectedIdx++
		}
	case 'k':
		if ir.rawMode {
			ir.scrollRaw(-1)
		} else if ir.selectedIdx > 0 {
			ir.selectedIdx--
		}
	case 'g':
		if ir.rawMode {
			ir.rawOffset = 0
		} else {
			ir.selectedIdx = 0
		}
	case 'G':
		if ir.rawMode {
			ir.scrollRaw(len(ir.rawLines))
		} else if len(ir.segments) > 0 {
			ir.selectedIdx = len(ir.segments) - 1
		}
	}
	return true
}

func (ir *RecordInspector) scrollRaw(delta int) {
	ir.rawOffset += delta
	maxOffset := len(ir.rawLines) - ir.pageSize
	if maxOffset < 0 {
		maxOffset = 0
	}
	if ir.rawOffset > maxOffset {
		ir.rawOffset = maxOffset
	}
	if ir.rawOffset < 0 {
		ir.rawOffset = 0
	}
}

// lineNumberLabel shows absent sides as a dash
func lineNumberLabel(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

// Render draws the inspector over a full-screen background
func (ir *RecordInspector) Render(screen *Screen) {
	if !ir.visible || ir.record == nil {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()
	selectedStyle := screen.SelectedStyle()

	for y := 0; y < screen.GetHeight(); y++ {
		for x := 0; x < screen.GetWidth(); x++ {
			screen.SetCell(x, y, ' ', contentStyle)
		}
	}

	startX := 3
	startY := 1
	boxWidth := screen.GetWidth() - 6
	boxHeight := screen.GetHeight() - 3
	if boxWidth < 20 || boxHeight < 10 {
		return
	}

	drawBox(screen, startX, startY, boxWidth, boxHeight, borderStyle)
	screen.DrawStringLimited(startX+2, startY+1, " Record Inspector ", boxWidth-4, titleStyle)
	screen.SetCell(startX, startY+2, '├', borderStyle)
	for i := 1; i < boxWidth-1; i++ {
		screen.SetCell(startX+i, startY+2, '─', borderStyle)
	}
	screen.SetCell(startX+boxWidth-1, startY+2, '┤', borderStyle)

	// Status divider and row sit just above the bottom border
	statusDividerY := startY + boxHeight - 3
	statusY := startY + boxHeight - 2
	screen.SetCell(startX, statusDividerY, '├', borderStyle)
	for i := 1; i < boxWidth-1; i++ {
		screen.SetCell(startX+i, statusDividerY, '─', borderStyle)
	}
	screen.SetCell(startX+boxWidth-1, statusDividerY, '┤', borderStyle)

	contentTop := startY + 3
	contentBottom := statusDividerY - 1
	ir.pageSize = contentBottom - contentTop + 1

	status := ""
	if ir.rawMode {
		ir.renderRaw(screen, startX, contentTop, boxWidth, contentBottom, contentStyle, borderStyle)
		status = " [j/k]Scroll [g/G]Top/Bottom [r]Table [q]Close"
	} else {
		ir.renderTable(screen, startX, contentTop, boxWidth, contentBottom, contentStyle, selectedStyle)
		status = " [j/k]Select segment [r]Raw [q]Close"
	}

	screen.DrawStringLimited(startX+1, statusY, status, boxWidth-2, contentStyle)
}

func (ir *RecordInspector) renderTable(screen *Screen, startX, contentTop, boxWidth, contentBottom int, contentStyle, selectedStyle tcell.Style) {
	rec := ir.record
	innerWidth := boxWidth - 2
	y := contentTop

	draw := func(text string, style tcell.Style) {
		if y > contentBottom {
			return
		}
		screen.DrawStringLimited(startX+1, y, text, innerWidth, style)
		y++
	}

	draw(" Kind: "+rec.Kind.KindName(), contentStyle)
	draw(fmt.Sprintf(" Old line: %s   New line: %s",
		lineNumberLabel(rec.OldLine), lineNumberLabel(rec.NewLine)), contentStyle)
	if rec.Kind == diff.RecordReplaced {
		draw(" Old text: "+rec.OldText(), contentStyle)
		draw(" New text: "+rec.NewText(), contentStyle)
	} else {
		draw(" Text: "+rec.Text, contentStyle)
	}
	draw("", contentStyle)
	draw(" Segments:", contentStyle)

	// Last two rows hold the unescaped text of the selected segment
	tableBottom := contentBottom - 2
	tableHeight := tableBottom - y + 1

	if len(ir.segments) == 0 {
		draw("   (no segments)", contentStyle)
	} else if tableHeight > 0 {
		displayStart := 0
		if ir.selectedIdx >= tableHeight {
			displayStart = ir.selectedIdx - tableHeight + 1
		}
		for i := 0; i < tableHeight; i++ {
			idx := displayStart + i
			if idx >= len(ir.segments) {
				break
			}
			row := ir.segments[idx]
			prefix := "   "
			style := contentStyle
			if idx == ir.selectedIdx {
				prefix = " > "
				style = selectedStyle
			}
			draw(fmt.Sprintf("%s%s[%d]  %-7s %q", prefix, row.side, row.index, segmentKindWord(row), row.seg.Text), style)
		}
		drawScrollbar(screen, startX+boxWidth-1, contentTop+6, tableHeight, displayStart, len(ir.segments), contentStyle)
	}

	if ir.selectedIdx < len(ir.segments) {
		detail := " Selected: " + ir.segments[ir.selectedIdx].seg.Text
		screen.DrawStringLimited(startX+1, contentBottom, detail, innerWidth, contentStyle)
	}
}

func (ir *RecordInspector) renderRaw(screen *Screen, startX, contentTop, boxWidth, contentBottom int, contentStyle, borderStyle tcell.Style) {
	height := contentBottom - contentTop + 1
	for i := 0; i < height; i++ {
		lineIdx := ir.rawOffset + i
		if lineIdx >= len(ir.rawLines) {
			break
		}
		screen.DrawStringLimited(startX+1, contentTop+i, " "+ir.rawLines[lineIdx], boxWidth-2, contentStyle)
	}
	drawScrollbar(screen, startX+boxWidth-1, contentTop, height, ir.rawOffset, len(ir.rawLines), borderStyle)
}
