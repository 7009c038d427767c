package ui

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/filter"
)

func unchangedRecords(startLine, n int) []diff.DiffRecord {
	records := make([]diff.DiffRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, diff.DiffRecord{
			Kind:    diff.RecordUnchanged,
			OldLine: startLine + i,
			NewLine: startLine + i,
			Text:    fmt.Sprintf("line %d", startLine+i),
		})
	}
	return records
}

func TestBuildRowsFoldsLongUnchangedRuns(t *testing.T) {
	dv := NewDiffView()
	dv.SetContext(2)
	records := unchangedRecords(1, 10)
	records = append(records, diff.DiffRecord{Kind: diff.RecordAdded, NewLine: 11, Text: "new line"})
	dv.SetRecords(records)

	// two context rows, the fold, two context rows, the added record
	if len(dv.rows) != 6 {
		t.Fatalf("len(rows) = %d, want 6", len(dv.rows))
	}
	fold := dv.rows[2]
	if fold.kind != rowFold {
		t.Fatalf("rows[2].kind = %v, want rowFold", fold.kind)
	}
	if fold.foldStart != 0 {
		t.Errorf("foldStart = %d, want 0", fold.foldStart)
	}
	if fold.foldCount != 6 {
		t.Errorf("foldCount = %d, want 6", fold.foldCount)
	}
	if dv.rows[5].kind != rowRecord || dv.rows[5].rec != 10 {
		t.Errorf("rows[5] = %+v, want record row for record 10", dv.rows[5])
	}
}

func TestShortUnchangedRunsStayExpanded(t *testing.T) {
	dv := NewDiffView()
	dv.SetContext(2)
	dv.SetRecords(unchangedRecords(1, 5))

	// run length equals the threshold, so nothing folds
	if len(dv.rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(dv.rows))
	}
	for i, row := range dv.rows {
		if row.kind != rowRecord || row.rec != i {
			t.Errorf("rows[%d] = %+v, want record row %d", i, row, i)
		}
	}
}

func TestToggleFoldExpandsAndCollapses(t *testing.T) {
	dv := NewDiffView()
	dv.SetContext(2)
	dv.SetRecords(unchangedRecords(1, 10))
	if len(dv.rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(dv.rows))
	}

	dv.selectedIdx = 2
	dv.ToggleFold()
	if len(dv.rows) != 10 {
		t.Fatalf("after expand len(rows) = %d, want 10", len(dv.rows))
	}
	if got := dv.SelectedRecordIndex(); got != 2 {
		t.Errorf("cursor after expand = record %d, want 2", got)
	}

	dv.ToggleFold()
	if len(dv.rows) != 5 {
		t.Fatalf("after collapse len(rows) = %d, want 5", len(dv.rows))
	}
	if dv.rows[dv.selectedIdx].kind != rowFold {
		t.Errorf("cursor after collapse is not on the fold row")
	}
}

func TestToggleAllFolds(t *testing.T) {
	dv := NewDiffView()
	dv.SetContext(1)
	records := unchangedRecords(1, 6)
	records = append(records, diff.DiffRecord{Kind: diff.RecordDeleted, OldLine: 7, Text: "gone"})
	records = append(records, unchangedRecords(8, 6)...)
	dv.SetRecords(records)

	// each run: one context row, the fold, one context row
	if len(dv.rows) != 7 {
		t.Fatalf("len(rows) = %d, want 7", len(dv.rows))
	}
	dv.ToggleAllFolds()
	if len(dv.rows) != 13 {
		t.Fatalf("after unfold all len(rows) = %d, want 13", len(dv.rows))
	}
	dv.ToggleAllFolds()
	if len(dv.rows) != 7 {
		t.Fatalf("after fold all len(rows) = %d, want 7", len(dv.rows))
	}
}

func TestNextPrevChange(t *testing.T) {
	records := unchangedRecords(1, 3)
	records = append(records,
		diff.DiffRecord{Kind: diff.RecordAdded, NewLine: 4, Text: "first added"},
		diff.DiffRecord{Kind: diff.RecordAdded, NewLine: 5, Text: "second added"},
	)
	records = append(records, unchangedRecords(6, 3)...)
	records = append(records, diff.DiffRecord{Kind: diff.RecordDeleted, OldLine: 9, Text: "gone"})

	dv := NewDiffView()
	dv.SetRecords(records)
	dv.SelectFirst()

	dv.NextChange()
	if got := dv.SelectedRecordIndex(); got != 3 {
		t.Errorf("first NextChange = record %d, want 3", got)
	}
	dv.NextChange()
	if got := dv.SelectedRecordIndex(); got != 8 {
		t.Errorf("second NextChange = record %d, want 8", got)
	}
	dv.NextChange()
	if got := dv.SelectedRecordIndex(); got != 8 {
		t.Errorf("NextChange past the last change = record %d, want 8", got)
	}
	dv.PrevChange()
	if got := dv.SelectedRecordIndex(); got != 3 {
		t.Errorf("PrevChange = record %d, want 3", got)
	}
	dv.PrevChange()
	if got := dv.SelectedRecordIndex(); got != 3 {
		t.Errorf("PrevChange before the first change = record %d, want 3", got)
	}
}

func TestReplacedRecordRowsPerViewMode(t *testing.T) {
	records := []diff.DiffRecord{{
		Kind:    diff.RecordReplaced,
		OldLine: 1,
		NewLine: 1,
		OldSegments: []diff.CharSegment{
			{Text: "al"}, {Text: "pha", Changed: true},
		},
		NewSegments: []diff.CharSegment{
			{Text: "al"}, {Text: "to", Changed: true},
		},
	}}
	dv := NewDiffView()
	dv.SetRecords(records)

	if len(dv.rows) != 2 {
		t.Fatalf("unified len(rows) = %d, want 2", len(dv.rows))
	}
	if dv.rows[0].renderNew {
		t.Errorf("first replaced row should show the old side")
	}
	if !dv.rows[1].renderNew {
		t.Errorf("second replaced row should show the new side")
	}

	dv.ToggleViewMode()
	if !dv.SideBySide() {
		t.Fatalf("SideBySide() = false after toggle")
	}
	if len(dv.rows) != 1 {
		t.Fatalf("side-by-side len(rows) = %d, want 1", len(dv.rows))
	}
}

func TestFilterRestrictsVisibleRecords(t *testing.T) {
	records := unchangedRecords(1, 3)
	records = append(records, diff.DiffRecord{Kind: diff.RecordAdded, NewLine: 4, Text: "fresh"})
	dv := NewDiffView()
	dv.SetRecords(records)

	expr, err := filter.ParseQuery("k:added")
	if err != nil {
		t.Fatalf("ParseQuery failed: %v", err)
	}
	dv.SetFilter(expr)
	if dv.VisibleCount() != 1 {
		t.Errorf("VisibleCount() = %d, want 1", dv.VisibleCount())
	}
	if dv.TotalCount() != 4 {
		t.Errorf("TotalCount() = %d, want 4", dv.TotalCount())
	}
	rec := dv.SelectedRecord()
	if rec == nil || rec.Kind != diff.RecordAdded {
		t.Errorf("SelectedRecord() = %+v, want the added record", rec)
	}

	dv.SetFilter(nil)
	if dv.VisibleCount() != 4 {
		t.Errorf("after clearing VisibleCount() = %d, want 4", dv.VisibleCount())
	}
}

func TestSelectRecordExpandsCoveringFold(t *testing.T) {
	dv := NewDiffView()
	dv.SetContext(1)
	dv.SetRecords(unchangedRecords(1, 9))
	if len(dv.rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(dv.rows))
	}

	dv.SelectRecord(4)
	if got := dv.SelectedRecordIndex(); got != 4 {
		t.Errorf("SelectedRecordIndex() = %d, want 4", got)
	}
	if len(dv.rows) != 9 {
		t.Errorf("len(rows) = %d after expanding, want 9", len(dv.rows))
	}
}

func TestCursorFollowsLineAcrossRecompare(t *testing.T) {
	first := unchangedRecords(1, 4)
	first = append(first, diff.DiffRecord{Kind: diff.RecordDeleted, OldLine: 5, Text: "gone"})
	dv := NewDiffView()
	dv.SetRecords(first)
	dv.SelectLast()
	if rec := dv.SelectedRecord(); rec == nil || rec.OldLine != 5 {
		t.Fatalf("precondition: cursor not on old line 5")
	}

	second := unchangedRecords(1, 4)
	second = append(second, diff.DiffRecord{
		Kind:    diff.RecordReplaced,
		OldLine: 5,
		NewLine: 5,
		OldSegments: []diff.CharSegment{
			{Text: "gone", Changed: true},
		},
		NewSegments: []diff.CharSegment{
			{Text: "kept", Changed: true},
		},
	})
	dv.SetRecords(second)
	rec := dv.SelectedRecord()
	if rec == nil || rec.OldLine != 5 {
		t.Errorf("cursor after recompare = %+v, want record on old line 5", rec)
	}
}

func TestScrollClamps(t *testing.T) {
	records := make([]diff.DiffRecord, 0, 50)
	for i := 0; i < 50; i++ {
		records = append(records, diff.DiffRecord{
			Kind:    diff.RecordAdded,
			NewLine: i + 1,
			Text:    fmt.Sprintf("line %d", i+1),
		})
	}
	dv := NewDiffView()
	dv.SetRecords(records)

	dv.ScrollPageDown()
	if dv.selectedIdx != 10 {
		t.Errorf("after ScrollPageDown selectedIdx = %d, want 10", dv.selectedIdx)
	}
	dv.ScrollPageUp()
	if dv.selectedIdx != 0 {
		t.Errorf("after ScrollPageUp selectedIdx = %d, want 0", dv.selectedIdx)
	}

	dv.SelectLast()
	dv.ScrollPageDown()
	if dv.selectedIdx != 49 {
		t.Errorf("ScrollPageDown at the end selectedIdx = %d, want 49", dv.selectedIdx)
	}

	dv.ScrollBy(1000)
	if dv.viewportOffset != 30 {
		t.Errorf("ScrollBy(1000) viewportOffset = %d, want 30", dv.viewportOffset)
	}
	dv.ScrollBy(-1000)
	if dv.viewportOffset != 0 {
		t.Errorf("ScrollBy(-1000) viewportOffset = %d, want 0", dv.viewportOffset)
	}
	if dv.selectedIdx != 19 {
		t.Errorf("selection not dragged into view, selectedIdx = %d, want 19", dv.selectedIdx)
	}
}

func TestSplitHighlights(t *testing.T) {
	base := tcell.StyleDefault
	other := tcell.StyleDefault.Bold(true)
	hl := tcell.StyleDefault.Reverse(true)

	tests := []struct {
		name  string
		spans []textSpan
		terms []string
		want  []textSpan
	}{
		{
			name:  "no terms returns spans unchanged",
			spans: []textSpan{{"hello", base}},
			terms: nil,
			want:  []textSpan{{"hello", base}},
		},
		{
			name:  "no matches returns spans unchanged",
			spans: []textSpan{{"hello", base}},
			terms: []string{"zzz"},
			want:  []textSpan{{"hello", base}},
		},
		{
			name:  "single match inside one span",
			spans: []textSpan{{"hello world", base}},
			terms: []string{"world"},
			want:  []textSpan{{"hello ", base}, {"world", hl}},
		},
		{
			name:  "match crossing a span boundary",
			spans: []textSpan{{"abc", base}, {"def", other}},
			terms: []string{"cd"},
			want:  []textSpan{{"ab", base}, {"c", hl}, {"d", hl}, {"ef", other}},
		},
		{
			name:  "case insensitive",
			spans: []textSpan{{"Hello World", base}},
			terms: []string{"hello"},
			want:  []textSpan{{"Hello", hl}, {" World", base}},
		},
		{
			name:  "overlapping terms merge",
			spans: []textSpan{{"abcde", base}},
			terms: []string{"abc", "bcd"},
			want:  []textSpan{{"abcd", hl}, {"e", base}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitHighlights(tt.spans, tt.terms, hl)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitHighlights() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumberCell(t *testing.T) {
	if got := numberCell(0, 3); got != "   " {
		t.Errorf("numberCell(0, 3) = %q, want three spaces", got)
	}
	if got := numberCell(7, 3); got != "  7" {
		t.Errorf("numberCell(7, 3) = %q, want %q", got, "  7")
	}
	if got := numberCell(123, 3); got != "123" {
		t.Errorf("numberCell(123, 3) = %q, want %q", got, "123")
	}
}

func TestRecordNumberWidth(t *testing.T) {
	if got := recordNumberWidth(nil); got != 1 {
		t.Errorf("recordNumberWidth(nil) = %d, want 1", got)
	}
	records := []diff.DiffRecord{
		{Kind: diff.RecordUnchanged, OldLine: 7, NewLine: 102},
	}
	if got := recordNumberWidth(records); got != 3 {
		t.Errorf("recordNumberWidth = %d, want 3", got)
	}
}
