package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/session"
)

func reportContext() *Context {
	sess := session.NewSession()
	sess.SetFile(session.SideOld, "/tmp/a.txt", "a.txt", "one\ntwo\n")
	sess.SetFile(session.SideNew, "/tmp/b.txt", "b.txt", "one\nthree\n")
	sess.Old.LoadedAt = time.Date(2025, 8, 23, 15, 4, 5, 0, time.UTC)
	sess.New.LoadedAt = time.Date(2025, 8, 24, 9, 30, 0, 0, time.UTC)

	return &Context{
		Session: sess,
		Result: &diff.Result{
			Stats: diff.Stats{Unchanged: 10, Added: 2, Removed: 1, Changed: 3},
		},
	}
}

func TestProcessTemplateSessionValues(t *testing.T) {
	ctx := reportContext()

	tests := []struct {
		template string
		expected string
	}{
		{"{{title}}", "a.txt | b.txt"},
		{"{{old}} vs {{new}}", "a.txt vs b.txt"},
		{"{{oldpath}}", "/tmp/a.txt"},
		{"{{newpath}}", "/tmp/b.txt"},
		{"+{{added}} ~{{changed}} -{{removed}}", "+2 ~3 -1"},
		{"{{unchanged}} of {{total}} lines untouched", "10 of 16 lines untouched"},
		{"no expressions here", "no expressions here"},
		{"{{added}} and {{added}}", "2 and 2"},
	}

	for _, tt := range tests {
		result, err := ProcessTemplate(tt.template, ctx)
		require.NoErrorf(t, err, "template %q", tt.template)
		assert.Equalf(t, tt.expected, result, "template %q", tt.template)
	}
}

func TestProcessTemplateDates(t *testing.T) {
	ctx := reportContext()

	year := time.Now().Format("2006")

	result, err := ProcessTemplate("{{date:%Y}}", ctx)
	require.NoError(t, err)
	assert.Equal(t, year, result)

	result, err = ProcessTemplate("{{now}}", ctx)
	require.NoError(t, err)
	assert.Contains(t, result, year)
	assert.Contains(t, result, "T", "now should be ISO 8601")
}

func TestMtimePipesIntoDate(t *testing.T) {
	ctx := reportContext()

	result, err := ProcessTemplate("{{mtime:old|date:%Y-%m-%d %H:%M}}", ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-23 15:04", result)

	// Unpiped date values fall back to the default format
	result, err = ProcessTemplate("{{mtime:new}}", ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-24", result)
}

func TestUnknownFunctionExpandsToNothing(t *testing.T) {
	ctx := reportContext()

	result, err := ProcessTemplate("before {{bogus}} after", ctx)
	require.NoError(t, err)
	assert.Equal(t, "before  after", result)
}

func TestPipeErrors(t *testing.T) {
	ctx := reportContext()

	_, err := ProcessTemplate("{{old|upper}}", ctx)
	assert.Error(t, err)

	// date can only format date values, not plain strings
	_, err = ProcessTemplate("{{old|date:%Y}}", ctx)
	assert.Error(t, err)
}

func TestMtimeWithoutSide(t *testing.T) {
	ctx := reportContext()

	_, err := ProcessTemplate("{{mtime}}", ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "old or new")
}

func TestEmptyContext(t *testing.T) {
	ctx := &Context{}

	tests := []struct {
		template string
		expected string
	}{
		{"{{title}}", ""},
		{"{{old}}", ""},
		{"{{oldpath}}", ""},
		{"{{added}}", "0"},
		{"{{total}}", "0"},
	}

	for _, tt := range tests {
		result, err := ProcessTemplate(tt.template, ctx)
		require.NoErrorf(t, err, "template %q", tt.template)
		assert.Equalf(t, tt.expected, result, "template %q", tt.template)
	}
}
