package diff

import "testing"

func TestFormatRecords(t *testing.T) {
	tests := []struct {
		name    string
		oldText string
		newText string
		marked  bool
		want    string
	}{
		{
			name:    "Replacement plain",
			oldText: textOf("a", "b", "c"),
			newText: textOf("a", "x", "c"),
			marked:  false,
			want:    "1 1   a\n2   ~ b\n  2 ~ x\n3 3   c\n",
		},
		{
			name:    "Replacement with inline marks",
			oldText: textOf("a", "b", "c"),
			newText: textOf("a", "x", "c"),
			marked:  true,
			want:    "1 1   a\n2   ~ [-b-]\n  2 ~ {+x+}\n3 3   c\n",
		},
		{
			name:    "Partially marked segments",
			oldText: textOf("hello world"),
			newText: textOf("hello there"),
			marked:  true,
			want:    "1   ~ hello [-wo-]r[-ld-]\n  1 ~ hello {+the+}r{+e+}\n",
		},
		{
			name:    "Removed lines",
			oldText: textOf("a", "b"),
			newText: "",
			marked:  false,
			want:    "1   - a\n2   - b\n",
		},
		{
			name:    "Added line",
			oldText: "",
			newText: textOf("n"),
			marked:  false,
			want:    "  1 + n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compare(tt.oldText, tt.newText)
			got := FormatRecords(result.Records, tt.marked)
			if got != tt.want {
				t.Errorf("FormatRecords:\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatRecordsWideGutter(t *testing.T) {
	var oldLines []string
	for i := 0; i < 10; i++ {
		oldLines = append(oldLines, "line")
	}
	result := Compare(textOf(oldLines...), textOf(oldLines...))
	got := FormatRecords(result.Records, false)

	// Ten lines need a two-digit gutter; the first row pads its numbers.
	wantFirst := " 1  1   line\n"
	if len(got) < len(wantFirst) || got[:len(wantFirst)] != wantFirst {
		t.Errorf("first row = %q, want %q", got[:min(len(got), len(wantFirst))], wantFirst)
	}
	wantLast := "10 10   line\n"
	if len(got) < len(wantLast) || got[len(got)-len(wantLast):] != wantLast {
		t.Errorf("last row does not match %q:\n%s", wantLast, got)
	}
}

func TestFormatRecordsContext(t *testing.T) {
	oldText := textOf("a", "b", "c", "d", "e", "f", "g")
	newText := textOf("a", "b", "c", "X", "e", "f", "g")
	result := Compare(oldText, newText)

	tests := []struct {
		name    string
		context int
		want    string
	}{
		{
			name:    "One line of context",
			context: 1,
			want: "    ... 2 unchanged lines ...\n" +
				"3 3   c\n" +
				"4   ~ d\n" +
				"  4 ~ X\n" +
				"5 5   e\n" +
				"    ... 2 unchanged lines ...\n",
		},
		{
			name:    "Changes only",
			context: 0,
			want: "    ... 3 unchanged lines ...\n" +
				"4   ~ d\n" +
				"  4 ~ X\n" +
				"    ... 3 unchanged lines ...\n",
		},
		{
			name:    "Negative context disables folding",
			context: -1,
			want:    FormatRecords(result.Records, false),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRecordsContext(result.Records, false, tt.context)
			if got != tt.want {
				t.Errorf("FormatRecordsContext(%d):\ngot:\n%s\nwant:\n%s", tt.context, got, tt.want)
			}
		})
	}
}

func TestFormatRecordsContextAllUnchanged(t *testing.T) {
	result := Compare(textOf("a", "b", "c"), textOf("a", "b", "c"))
	got := FormatRecordsContext(result.Records, false, 1)
	want := "    ... 3 unchanged lines ...\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatStats(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  string
	}{
		{"Mixed", Stats{Added: 2, Changed: 1, Removed: 3}, "+2 ~1 -3"},
		{"Empty", Stats{}, "+0 ~0 -0"},
		{"Unchanged only", Stats{Unchanged: 9}, "+0 ~0 -0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatStats(tt.stats); got != tt.want {
				t.Errorf("FormatStats(%+v) = %q, want %q", tt.stats, got, tt.want)
			}
		})
	}
}
