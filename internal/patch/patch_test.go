package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

func TestParseSimplePatch(t *testing.T) {
	content := `--- a/greeting.txt
+++ b/greeting.txt
@@ -1,3 +1,3 @@
 hello
-world
+there
 bye
`
	pf, err := Parse(content)
	require.NoError(t, err)

	assert.Equal(t, "greeting.txt", pf.OldName)
	assert.Equal(t, "greeting.txt", pf.NewName)
	require.Len(t, pf.Records, 3)

	assert.Equal(t, diff.RecordUnchanged, pf.Records[0].Kind)
	assert.Equal(t, 1, pf.Records[0].OldLine)
	assert.Equal(t, 1, pf.Records[0].NewLine)
	assert.Equal(t, "hello", pf.Records[0].Text)

	// The delete and the insert right after it merge into one replacement.
	assert.Equal(t, diff.RecordReplaced, pf.Records[1].Kind)
	assert.Equal(t, 2, pf.Records[1].OldLine)
	assert.Equal(t, 2, pf.Records[1].NewLine)
	assert.Equal(t, "world", pf.Records[1].OldText())
	assert.Equal(t, "there", pf.Records[1].NewText())

	assert.Equal(t, diff.RecordUnchanged, pf.Records[2].Kind)
	assert.Equal(t, "bye", pf.Records[2].Text)

	assert.Equal(t, diff.Stats{Unchanged: 2, Changed: 1}, pf.Stats())
}

func TestParseHunkOffsets(t *testing.T) {
	content := `--- old.txt
+++ new.txt
@@ -10,2 +20,3 @@
 ctx
+added
 ctx2
`
	pf, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, pf.Records, 3)

	assert.Equal(t, 10, pf.Records[0].OldLine)
	assert.Equal(t, 20, pf.Records[0].NewLine)

	assert.Equal(t, diff.RecordAdded, pf.Records[1].Kind)
	assert.Equal(t, 21, pf.Records[1].NewLine)

	assert.Equal(t, 11, pf.Records[2].OldLine)
	assert.Equal(t, 22, pf.Records[2].NewLine)
}

func TestParsePairsOneAhead(t *testing.T) {
	content := `--- old.txt
+++ new.txt
@@ -1,2 +1,2 @@
-a
-b
+x
+y
`
	pf, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, pf.Records, 3)

	assert.Equal(t, diff.RecordDeleted, pf.Records[0].Kind)
	assert.Equal(t, "a", pf.Records[0].Text)

	assert.Equal(t, diff.RecordReplaced, pf.Records[1].Kind)
	assert.Equal(t, "b", pf.Records[1].OldText())
	assert.Equal(t, "x", pf.Records[1].NewText())

	assert.Equal(t, diff.RecordAdded, pf.Records[2].Kind)
	assert.Equal(t, "y", pf.Records[2].Text)
}

func TestParseMultipleHunks(t *testing.T) {
	content := `--- old.txt
+++ new.txt
@@ -1,2 +1,2 @@
 first
-second
+changed
@@ -40 +40 @@
-old forty
+new forty
`
	pf, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, pf.Records, 3)

	assert.Equal(t, 2, pf.Records[1].OldLine)
	assert.Equal(t, 40, pf.Records[2].OldLine)
	assert.Equal(t, 40, pf.Records[2].NewLine)
	assert.Equal(t, diff.RecordReplaced, pf.Records[2].Kind)
}

func TestParseGitNoiseAndMarkers(t *testing.T) {
	content := `diff --git a/file.txt b/file.txt
index 83db48f..bf269f4 100644
--- a/file.txt
+++ b/file.txt
@@ -1 +1 @@
-old
+new
\ No newline at end of file
`
	pf, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, pf.Records, 1)
	assert.Equal(t, diff.RecordReplaced, pf.Records[0].Kind)
	assert.Equal(t, "file.txt", pf.OldName)
}

func TestParseHeaderTimestamps(t *testing.T) {
	content := "--- a/file.txt\t2026-01-01 10:00:00\n" +
		"+++ b/file.txt\t2026-01-02 11:30:00\n" +
		"@@ -1 +1 @@\n" +
		"-x\n" +
		"+y\n"

	pf, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "file.txt", pf.OldName)
	assert.Equal(t, "file.txt", pf.NewName)
}

func TestParseDevNull(t *testing.T) {
	content := `--- /dev/null
+++ b/created.txt
@@ -0,0 +1,2 @@
+one
+two
`
	pf, err := Parse(content)
	require.NoError(t, err)

	assert.Equal(t, "", pf.OldName)
	assert.Equal(t, "created.txt", pf.NewName)
	require.Len(t, pf.Records, 2)
	assert.Equal(t, diff.RecordAdded, pf.Records[0].Kind)
	assert.Equal(t, 1, pf.Records[0].NewLine)
	assert.Equal(t, 2, pf.Records[1].NewLine)
}

func TestParseTrailingDeleteFlushes(t *testing.T) {
	content := `--- old.txt
+++ new.txt
@@ -5 +4,0 @@
-gone
`
	pf, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, pf.Records, 1)
	assert.Equal(t, diff.RecordDeleted, pf.Records[0].Kind)
	assert.Equal(t, 5, pf.Records[0].OldLine)
	assert.Equal(t, "gone", pf.Records[0].Text)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{
			name:    "Malformed hunk header",
			content: "--- a\n+++ b\n@@ not a header @@\n",
			wantIn:  "line 3",
		},
		{
			name:    "Garbage inside hunk",
			content: "--- a\n+++ b\n@@ -1,2 +1,2 @@\n context\ngarbage here\n",
			wantIn:  "line 5",
		},
		{
			name:    "Not a diff",
			content: "just some\nplain text\n",
			wantIn:  "no hunks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantIn),
				"error %q does not mention %q", err, tt.wantIn)
		})
	}
}
