package diff

import "testing"

func segsEqual(a, b []CharSegment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Empty", "", nil},
		{"ASCII", "abc", []string{"a", "b", "c"}},
		{"Combining accent", "café", []string{"c", "a", "f", "é"}},
		{"Emoji with modifier", "\U0001F44D\U0001F3FD!", []string{"\U0001F44D\U0001F3FD", "!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graphemes(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("graphemes(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cluster %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCharDiff(t *testing.T) {
	tests := []struct {
		name    string
		oldText string
		newText string
		wantOld []CharSegment
		wantNew []CharSegment
	}{
		{
			name:    "Both empty",
			oldText: "",
			newText: "",
			wantOld: nil,
			wantNew: nil,
		},
		{
			name:    "Old empty",
			oldText: "",
			newText: "abc",
			wantOld: nil,
			wantNew: []CharSegment{{Text: "abc", Changed: true}},
		},
		{
			name:    "New empty",
			oldText: "abc",
			newText: "",
			wantOld: []CharSegment{{Text: "abc", Changed: true}},
			wantNew: nil,
		},
		{
			name:    "Tail change",
			oldText: "abc",
			newText: "abd",
			wantOld: []CharSegment{{Text: "ab"}, {Text: "c", Changed: true}},
			wantNew: []CharSegment{{Text: "ab"}, {Text: "d", Changed: true}},
		},
		{
			name:    "Nothing shared",
			oldText: "abc",
			newText: "xyz",
			wantOld: []CharSegment{{Text: "abc", Changed: true}},
			wantNew: []CharSegment{{Text: "xyz", Changed: true}},
		},
		{
			// The common subsequence keeps the "r" shared by "world" and
			// "there", so each side splits into four runs.
			name:    "Shared characters inside the changed word",
			oldText: "hello world",
			newText: "hello there",
			wantOld: []CharSegment{
				{Text: "hello "},
				{Text: "wo", Changed: true},
				{Text: "r"},
				{Text: "ld", Changed: true},
			},
			wantNew: []CharSegment{
				{Text: "hello "},
				{Text: "the", Changed: true},
				{Text: "r"},
				{Text: "e", Changed: true},
			},
		},
		{
			name:    "Accent cluster changes as one unit",
			oldText: "café",
			newText: "cafe",
			wantOld: []CharSegment{{Text: "caf"}, {Text: "é", Changed: true}},
			wantNew: []CharSegment{{Text: "caf"}, {Text: "e", Changed: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOld, gotNew := CharDiff(tt.oldText, tt.newText)
			if !segsEqual(gotOld, tt.wantOld) {
				t.Errorf("old segments = %v, want %v", gotOld, tt.wantOld)
			}
			if !segsEqual(gotNew, tt.wantNew) {
				t.Errorf("new segments = %v, want %v", gotNew, tt.wantNew)
			}
		})
	}
}

// TestCharDiffReconstruction checks that concatenating each side's
// segments reproduces the input exactly and that runs alternate flags.
func TestCharDiffReconstruction(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"same", "same"},
		{"kitten", "sitting"},
		{"hello world", "hello there"},
		{"a", "aaaa"},
		{"tab\tand space", "tab and space"},
	}

	for _, pair := range pairs {
		oldSegs, newSegs := CharDiff(pair[0], pair[1])

		if got := joinSegments(oldSegs); got != pair[0] {
			t.Errorf("old reconstruction of (%q, %q) = %q", pair[0], pair[1], got)
		}
		if got := joinSegments(newSegs); got != pair[1] {
			t.Errorf("new reconstruction of (%q, %q) = %q", pair[0], pair[1], got)
		}

		for _, segs := range [][]CharSegment{oldSegs, newSegs} {
			for i := 1; i < len(segs); i++ {
				if segs[i].Changed == segs[i-1].Changed {
					t.Errorf("segments %d and %d of %v share a flag", i-1, i, segs)
				}
			}
			for _, seg := range segs {
				if seg.Text == "" {
					t.Errorf("empty segment in %v", segs)
				}
			}
		}
	}
}
