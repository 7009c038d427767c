package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

func formatterRecords() []diff.DiffRecord {
	return []diff.DiffRecord{
		{Kind: diff.RecordUnchanged, OldLine: 1, NewLine: 1, Text: "alpha"},
		{Kind: diff.RecordDeleted, OldLine: 2, Text: "beta"},
		{Kind: diff.RecordReplaced, OldLine: 3, NewLine: 2,
			OldSegments: []diff.CharSegment{{Text: "colou", Changed: false}, {Text: "r", Changed: true}},
			NewSegments: []diff.CharSegment{{Text: "colou", Changed: false}, {Text: "rs", Changed: true}}},
		{Kind: diff.RecordAdded, NewLine: 3, Text: "delta"},
	}
}

func TestParseFormatFlag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  OutputFormat
		shouldErr bool
	}{
		{"text format", "text", OutputFormatText, false},
		{"fields format", "fields", OutputFormatFields, false},
		{"json format", "json", OutputFormatJSON, false},
		{"jsonl format", "jsonl", OutputFormatJSONL, false},
		{"invalid format", "xml", OutputFormatText, true},
		{"case insensitive", "TEXT", OutputFormatText, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseFormatFlag(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Errorf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestParseFieldsFlag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single field", "kind", []string{"kind"}},
		{"multiple fields", "kind,old_line,text", []string{"kind", "old_line", "text"}},
		{"fields with spaces", "kind, old_line, text", []string{"kind", "old_line", "text"}},
		{"empty string", "", []string(nil)},
		{"single field with spaces", "  kind  ", []string{"kind"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseFieldsFlag(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("expected %d fields, got %d", len(tt.expected), len(result))
				return
			}
			for i, field := range result {
				if field != tt.expected[i] {
					t.Errorf("field %d: expected %q, got %q", i, tt.expected[i], field)
				}
			}
		})
	}
}

func TestFormatRecordFields(t *testing.T) {
	records := formatterRecords()

	tests := []struct {
		name          string
		fields        []string
		shouldContain []string
	}{
		{
			name:          "default fields",
			fields:        nil,
			shouldContain: []string{"same\t1\t1\talpha", "removed\t2\t0\tbeta", "changed\t3\t2\tcolours", "added\t0\t3\tdelta"},
		},
		{
			name:          "custom fields",
			fields:        []string{"kind", "text"},
			shouldContain: []string{"removed\tbeta", "added\tdelta"},
		},
		{
			name:          "segment notation",
			fields:        []string{"kind", "segments"},
			shouldContain: []string{"changed\t=colou -r +rs"},
		},
		{
			name:          "old and new side",
			fields:        []string{"old_text", "new_text"},
			shouldContain: []string{"colour\tcolours", "beta\t", "\tdelta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FormatRecords(records, OutputFormatFields, tt.fields)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lines := strings.Split(result, "\n"); len(lines) != len(records) {
				t.Errorf("expected %d lines, got %d", len(records), len(lines))
			}
			for _, expected := range tt.shouldContain {
				if !strings.Contains(result, expected) {
					t.Errorf("expected output to contain %q, got:\n%s", expected, result)
				}
			}
		})
	}
}

func TestFormatRecordsJSON(t *testing.T) {
	result, err := FormatRecords(formatterRecords(), OutputFormatJSON, []string{"kind", "changed", "segments"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(strings.TrimSpace(result), "[") {
		t.Errorf("expected JSON array format")
	}

	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(parsed) != 4 {
		t.Fatalf("expected 4 objects, got %d", len(parsed))
	}
	if parsed[0]["changed"] != false || parsed[2]["changed"] != true {
		t.Errorf("changed flags wrong: %v / %v", parsed[0]["changed"], parsed[2]["changed"])
	}
	if !strings.Contains(result, "\"=colou\"") || !strings.Contains(result, "\"+rs\"") {
		t.Errorf("expected segment notation in output, got:\n%s", result)
	}
	// Records without segments export an empty list, not null
	if strings.Contains(result, "null") {
		t.Errorf("expected empty segment lists, got:\n%s", result)
	}
}

func TestFormatRecordsJSONL(t *testing.T) {
	result, err := FormatRecords(formatterRecords(), OutputFormatJSONL, []string{"kind", "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if !json.Valid([]byte(line)) {
			t.Errorf("line %d is not valid JSON: %s", i, line)
		}
	}
	if !strings.Contains(lines[2], "colours") {
		t.Errorf("changed record should carry its new text, got %s", lines[2])
	}
}

func TestFormatRecordsRejectsTextFormat(t *testing.T) {
	if _, err := FormatRecords(formatterRecords(), OutputFormatText, nil); err == nil {
		t.Error("text format should be rejected")
	}

	result, err := FormatRecords(nil, OutputFormatJSON, nil)
	if err != nil || result != "" {
		t.Errorf("no records should format to nothing, got %q, %v", result, err)
	}
}

func TestRecordFieldValue(t *testing.T) {
	records := formatterRecords()
	replaced := &records[2]

	tests := []struct {
		field    string
		expected interface{}
	}{
		{"kind", "changed"},
		{"old_line", 3},
		{"new_line", 2},
		{"text", "colours"},
		{"old_text", "colour"},
		{"new_text", "colours"},
		{"changed", true},
		{"bogus", ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			result := recordFieldValue(replaced, tt.field)
			if result != tt.expected {
				t.Errorf("field %q: expected %v, got %v", tt.field, tt.expected, result)
			}
		})
	}
}
