package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

func TestRecordInspectorBuildsSegmentTable(t *testing.T) {
	rec := &diff.DiffRecord{
		Kind:    diff.RecordReplaced,
		OldLine: 2,
		NewLine: 2,
		OldSegments: []diff.CharSegment{
			{Text: "colo", Changed: false},
			{Text: "u", Changed: true},
			{Text: "r", Changed: false},
		},
		NewSegments: []diff.CharSegment{
			{Text: "colo", Changed: false},
			{Text: "r", Changed: false},
		},
	}

	ir := NewRecordInspector()
	ir.Show(rec)

	if len(ir.segments) != 5 {
		t.Fatalf("got %d segment rows, want 5", len(ir.segments))
	}
	if ir.segments[0].side != "old" || ir.segments[3].side != "new" {
		t.Errorf("segment sides = %q, %q, want old, new", ir.segments[0].side, ir.segments[3].side)
	}

	words := make([]string, len(ir.segments))
	for i, row := range ir.segments {
		words[i] = segmentKindWord(row)
	}
	want := []string{"kept", "removed", "kept", "kept", "kept"}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("segmentKindWord[%d] = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestRecordInspectorSelectionAndRawToggle(t *testing.T) {
	rec := &diff.DiffRecord{
		Kind:        diff.RecordReplaced,
		OldLine:     1,
		NewLine:     1,
		OldSegments: []diff.CharSegment{{Text: "a", Changed: true}},
		NewSegments: []diff.CharSegment{{Text: "b", Changed: true}},
	}

	ir := NewRecordInspector()
	ir.Show(rec)

	ir.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone))
	if ir.selectedIdx != 1 {
		t.Errorf("selectedIdx = %d, want 1", ir.selectedIdx)
	}
	ir.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone))
	if ir.selectedIdx != 1 {
		t.Errorf("selection should clamp at the last row, got %d", ir.selectedIdx)
	}

	ir.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if !ir.rawMode {
		t.Fatal("r should switch to the raw dump")
	}
	if len(ir.rawLines) == 0 {
		t.Fatal("raw dump should not be empty")
	}
	if !strings.Contains(strings.Join(ir.rawLines, "\n"), "DiffRecord") {
		t.Error("raw dump should name the record type")
	}

	ir.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if ir.rawMode {
		t.Error("second r should switch back to the table")
	}

	ir.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if ir.IsVisible() {
		t.Error("q should close the inspector")
	}
}

func TestRecordInspectorIgnoresNilRecord(t *testing.T) {
	ir := NewRecordInspector()
	ir.Show(nil)
	if ir.IsVisible() {
		t.Error("Show(nil) should not open the inspector")
	}
}
