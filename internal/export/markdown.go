// Package export writes comparison reports to files
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/report"
	"github.com/pstuifzand/tui-diff/internal/session"
)

// DefaultTemplate is the markdown header used when report-template is not
// configured
const DefaultTemplate = "# {{title}}\n\nGenerated {{now}}\n"

// ExportToMarkdown writes a markdown report of the comparison: the
// templated header, a stats table, and the diff body with inline segment
// marks
func ExportToMarkdown(sess *session.Session, result *diff.Result, headerTemplate, filePath string) error {
	content, err := RenderMarkdown(sess, result, headerTemplate)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}

	return nil
}

// RenderMarkdown builds the report text without touching the filesystem
func RenderMarkdown(sess *session.Session, result *diff.Result, headerTemplate string) (string, error) {
	if headerTemplate == "" {
		headerTemplate = DefaultTemplate
	}
	if result == nil {
		result = &diff.Result{}
	}

	header, err := report.ProcessTemplate(headerTemplate, &report.Context{Session: sess, Result: result})
	if err != nil {
		return "", fmt.Errorf("failed to render header: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(header)
	if !strings.HasSuffix(header, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	writeStatsTable(&sb, result.Stats)
	sb.WriteString("\n")

	sb.WriteString("```\n")
	sb.WriteString(diff.FormatRecords(result.Records, true))
	sb.WriteString("```\n")

	return sb.String(), nil
}

// writeStatsTable writes the comparison counts as a markdown table
func writeStatsTable(sb *strings.Builder, stats diff.Stats) {
	fmt.Fprintf(sb, "| added | changed | removed | unchanged |\n")
	fmt.Fprintf(sb, "|------:|--------:|--------:|----------:|\n")
	fmt.Fprintf(sb, "| %d | %d | %d | %d |\n", stats.Added, stats.Changed, stats.Removed, stats.Unchanged)
}
