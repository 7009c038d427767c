package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// OutputFormat specifies how diff records are formatted for export
type OutputFormat int

const (
	OutputFormatText OutputFormat = iota
	OutputFormatFields
	OutputFormatJSON
	OutputFormatJSONL
)

// DefaultRecordFields is the field set used when none is given
var DefaultRecordFields = []string{"kind", "old_line", "new_line", "text"}

// FormatRecords renders records in the requested machine format. The text
// format is rendered by the diff engine and is rejected here.
func FormatRecords(records []diff.DiffRecord, format OutputFormat, fields []string) (string, error) {
	if len(records) == 0 {
		return "", nil
	}
	if len(fields) == 0 {
		fields = DefaultRecordFields
	}

	switch format {
	case OutputFormatFields:
		return formatRecordFields(records, fields), nil
	case OutputFormatJSON:
		return formatRecordsJSON(records, fields)
	case OutputFormatJSONL:
		return formatRecordsJSONL(records, fields)
	}
	return "", fmt.Errorf("text format is rendered by the diff engine, not the record formatter")
}

// formatRecordFields renders one tab-separated line per record
func formatRecordFields(records []diff.DiffRecord, fields []string) string {
	var lines []string
	for i := range records {
		var values []string
		for _, field := range fields {
			values = append(values, fieldCell(recordFieldValue(&records[i], field)))
		}
		lines = append(lines, strings.Join(values, "\t"))
	}
	return strings.Join(lines, "\n")
}

// fieldCell flattens a field value into a single cell
func fieldCell(val interface{}) string {
	if parts, ok := val.([]string); ok {
		return strings.Join(parts, " ")
	}
	return fmt.Sprintf("%v", val)
}

// formatRecordsJSON renders all records as one indented JSON array
func formatRecordsJSON(records []diff.DiffRecord, fields []string) (string, error) {
	var result []interface{}
	for i := range records {
		result = append(result, recordObject(&records[i], fields))
	}
	data, err := json.MarshalIndent(result, "", "  ")
	return string(data), err
}

// formatRecordsJSONL renders one JSON object per line
func formatRecordsJSONL(records []diff.DiffRecord, fields []string) (string, error) {
	var lines []string
	for i := range records {
		data, err := json.Marshal(recordObject(&records[i], fields))
		if err != nil {
			return "", err
		}
		lines = append(lines, string(data))
	}
	return strings.Join(lines, "\n"), nil
}

func recordObject(rec *diff.DiffRecord, fields []string) map[string]interface{} {
	obj := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		obj[field] = recordFieldValue(rec, field)
	}
	return obj
}

// recordFieldValue extracts one exportable field. Unknown names produce an
// empty value so a typo in a field list shows up in the output instead of
// failing the whole export.
func recordFieldValue(rec *diff.DiffRecord, field string) interface{} {
	switch field {
	case "kind":
		return rec.Kind.KindName()
	case "old_line":
		return rec.OldLine
	case "new_line":
		return rec.NewLine
	case "text":
		// The line as it now reads; changed records carry their
		// content in segments
		if rec.Kind == diff.RecordReplaced {
			return rec.NewText()
		}
		return rec.Text
	case "old_text":
		return rec.OldText()
	case "new_text":
		return rec.NewText()
	case "changed":
		return rec.Kind != diff.RecordUnchanged
	case "segments":
		return segmentNotation(rec)
	}
	return ""
}

// segmentNotation renders intra-line segments as =kept, -removed and +added
// runs. Only changed records carry segments.
func segmentNotation(rec *diff.DiffRecord) []string {
	parts := []string{}
	for _, seg := range rec.OldSegments {
		if seg.Changed {
			parts = append(parts, "-"+seg.Text)
		} else {
			parts = append(parts, "="+seg.Text)
		}
	}
	for _, seg := range rec.NewSegments {
		if seg.Changed {
			parts = append(parts, "+"+seg.Text)
		}
	}
	return parts
}

// ParseFormatFlag maps a format flag value to an OutputFormat
func ParseFormatFlag(flagValue string) (OutputFormat, error) {
	switch strings.ToLower(flagValue) {
	case "text":
		return OutputFormatText, nil
	case "fields":
		return OutputFormatFields, nil
	case "json":
		return OutputFormatJSON, nil
	case "jsonl":
		return OutputFormatJSONL, nil
	}
	return OutputFormatText, fmt.Errorf("invalid format: %s (valid options: text, fields, json, jsonl)", flagValue)
}

// ParseFieldsFlag splits a comma-separated field list into field names
func ParseFieldsFlag(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	var fields []string
	for _, field := range strings.Split(flagValue, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
