package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

func typeQuery(w *RecordSearchWidget, s string) {
	for _, r := range s {
		w.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func searchRecords() []diff.DiffRecord {
	return []diff.DiffRecord{
		{Kind: diff.RecordUnchanged, OldLine: 1, NewLine: 1, Text: "alpha"},
		{Kind: diff.RecordAdded, NewLine: 2, Text: "beta"},
		{
			Kind:        diff.RecordReplaced,
			OldLine:     3,
			NewLine:     3,
			OldSegments: []diff.CharSegment{{Text: "gamma", Changed: true}},
			NewSegments: []diff.CharSegment{{Text: "delta", Changed: true}},
		},
	}
}

func TestRecordSearchMatchesKindTextAndLineNumbers(t *testing.T) {
	w := NewRecordSearchWidget()
	w.SetRecords(searchRecords())
	w.Show()

	tests := []struct {
		query string
		want  []int
	}{
		{"added", []int{1}},
		{"bta", []int{1}},
		{"3", []int{2}},
		{"delta", []int{2}},
		{"a", []int{0, 1, 2}},
	}

	for _, tt := range tests {
		w.Show()
		typeQuery(w, tt.query)
		if len(w.matches) != len(tt.want) {
			t.Errorf("query %q: got %d matches, want %d", tt.query, len(w.matches), len(tt.want))
			continue
		}
		for i, idx := range tt.want {
			if w.matches[i] != idx {
				t.Errorf("query %q: matches[%d] = %d, want %d", tt.query, i, w.matches[i], idx)
			}
		}
	}
}

func TestRecordSearchEmptyQueryHasNoMatches(t *testing.T) {
	w := NewRecordSearchWidget()
	w.SetRecords(searchRecords())
	w.Show()

	if len(w.matches) != 0 {
		t.Errorf("empty query: got %d matches, want 0", len(w.matches))
	}

	// Enter with no match does nothing but stays consumed
	jumped := false
	w.SetOnJump(func(int) { jumped = true })
	if !w.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Error("Enter should be consumed while the widget is open")
	}
	if jumped {
		t.Error("Enter with no matches should not jump")
	}
	if !w.IsVisible() {
		t.Error("widget should stay open after Enter with no matches")
	}
}

func TestRecordSearchSelectionWraps(t *testing.T) {
	w := NewRecordSearchWidget()
	w.SetRecords(searchRecords())
	w.Show()
	typeQuery(w, "a")

	if w.selectedIdx != 0 {
		t.Fatalf("selectedIdx = %d, want 0", w.selectedIdx)
	}

	next := tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModNone)
	prev := tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModNone)

	w.HandleKey(next)
	w.HandleKey(next)
	if w.selectedIdx != 2 {
		t.Errorf("after two Ctrl+N: selectedIdx = %d, want 2", w.selectedIdx)
	}
	w.HandleKey(next)
	if w.selectedIdx != 0 {
		t.Errorf("Ctrl+N should wrap to top: selectedIdx = %d, want 0", w.selectedIdx)
	}
	w.HandleKey(prev)
	if w.selectedIdx != 2 {
		t.Errorf("Ctrl+P should wrap to bottom: selectedIdx = %d, want 2", w.selectedIdx)
	}
}

func TestRecordSearchEnterJumpsAltEnterFilters(t *testing.T) {
	w := NewRecordSearchWidget()
	w.SetRecords(searchRecords())

	jumpedTo := -1
	filterQuery := ""
	w.SetOnJump(func(idx int) { jumpedTo = idx })
	w.SetOnFilter(func(q string) { filterQuery = q })

	w.Show()
	typeQuery(w, "beta")
	w.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if jumpedTo != 1 {
		t.Errorf("jumpedTo = %d, want 1", jumpedTo)
	}
	if w.IsVisible() {
		t.Error("widget should close after jumping")
	}

	w.Show()
	typeQuery(w, "added")
	w.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModAlt))
	if filterQuery != "added" {
		t.Errorf("filterQuery = %q, want %q", filterQuery, "added")
	}
	if w.IsVisible() {
		t.Error("widget should close after installing a filter")
	}
}
