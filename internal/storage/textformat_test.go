package storage

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pstuifzand/tui-diff/internal/session"
)

func TestEncodeTextFormatBasic(t *testing.T) {
	sess := session.NewSession()
	sess.ID = "sess_20250823150405_ab12cd"
	sess.SetFile(session.SideOld, "/tmp/a.txt", "a.txt", "first line\nsecond line\n")
	sess.SetFile(session.SideNew, "/tmp/b.txt", "b.txt", "first line\nchanged line\n")

	var buf bytes.Buffer
	err := EncodeTextFormat(sess, &buf)
	if err != nil {
		t.Fatalf("EncodeTextFormat failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"[SESSION]",
		"[OLD TEXT]",
		"[NEW TEXT]",
		"id: sess_20250823150405_ab12cd",
		"old-name: a.txt",
		"old-path: /tmp/a.txt",
		"old-final-newline: true",
		"new-name: b.txt",
		"1: first line",
		"2: second line",
		"2: changed line",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Encoded output missing %q", want)
		}
	}

	t.Logf("Encoded output:\n%s", output)
}

func TestTextEscaping(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		encoded string
	}{
		{
			name:    "Simple text",
			input:   "Hello world",
			encoded: "Hello world",
		},
		{
			name:    "Text with newline",
			input:   "Hello\nworld",
			encoded: "Hello\\nworld",
		},
		{
			name:    "Text with backslash",
			input:   "C:\\path\\to\\file",
			encoded: "C:\\\\path\\\\to\\\\file",
		},
		{
			name:    "Text with newline and backslash",
			input:   "Line1\nPath: C:\\test",
			encoded: "Line1\\nPath: C:\\\\test",
		},
		{
			name:    "Empty string",
			input:   "",
			encoded: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := encodeTextValue(tt.input)
			if encoded != tt.encoded {
				t.Errorf("encodeTextValue(%q) = %q, want %q", tt.input, encoded, tt.encoded)
			}

			decoded := decodeTextValue(encoded)
			if decoded != tt.input {
				t.Errorf("decodeTextValue(%q) = %q, want %q", encoded, decoded, tt.input)
			}
		})
	}
}

func TestDecodingEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		encoded  string
		expected string
	}{
		{
			name:     "Only backslash",
			encoded:  "\\\\",
			expected: "\\",
		},
		{
			name:     "Only newline",
			encoded:  "\\n",
			expected: "\n",
		},
		{
			name:     "Backslash followed by literal n",
			encoded:  "\\\\n",
			expected: "\\n",
		},
		{
			name:     "Escaped backslash at end",
			encoded:  "test\\\\",
			expected: "test\\",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := decodeTextValue(tt.encoded)
			if result != tt.expected {
				t.Errorf("decodeTextValue(%q) = %q, want %q", tt.encoded, result, tt.expected)
			}
		})
	}
}

func TestRoundTripText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"Trailing newline", "alpha\nbeta\n"},
		{"No trailing newline", "alpha\nbeta"},
		{"Empty", ""},
		{"Single newline", "\n"},
		{"Blank line in the middle", "alpha\n\nbeta\n"},
		{"Trailing blank line", "alpha\n\n"},
		{"Backslashes", "C:\\path\\to\\file\n"},
		{"Trailing spaces kept", "alpha  \n  beta\n"},
		{"Unicode", "héllo wörld\n日本語\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.NewSession()
			sess.SetText(session.SideOld, tt.text)
			sess.SetText(session.SideNew, tt.text)

			var buf bytes.Buffer
			if err := EncodeTextFormat(sess, &buf); err != nil {
				t.Fatalf("EncodeTextFormat failed: %v", err)
			}

			decoded, err := DecodeTextFormat(&buf)
			if err != nil {
				t.Fatalf("DecodeTextFormat failed: %v", err)
			}

			if decoded.Old.Text != tt.text {
				t.Errorf("old text = %q, want %q", decoded.Old.Text, tt.text)
			}
			if decoded.New.Text != tt.text {
				t.Errorf("new text = %q, want %q", decoded.New.Text, tt.text)
			}
		})
	}
}

func TestRoundTripSession(t *testing.T) {
	sess := session.NewSession()
	sess.ID = "sess_20250823150405_qq91xz"
	sess.Created = time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	sess.SetFile(session.SideOld, "/tmp/config.old", "config before", "a = 1\nb = 2\n")
	sess.SetFile(session.SideNew, "", "scratch", "a = 1\nb = 3")
	sess.Modified = time.Date(2025, 8, 23, 15, 4, 5, 123456789, time.UTC)
	sess.Old.LoadedAt = time.Date(2025, 8, 23, 15, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := EncodeTextFormat(sess, &buf); err != nil {
		t.Fatalf("EncodeTextFormat failed: %v", err)
	}

	decoded, err := DecodeTextFormat(&buf)
	if err != nil {
		t.Fatalf("DecodeTextFormat failed: %v", err)
	}

	if decoded.ID != sess.ID {
		t.Errorf("ID = %q, want %q", decoded.ID, sess.ID)
	}
	if !decoded.Created.Equal(sess.Created) {
		t.Errorf("Created = %v, want %v", decoded.Created, sess.Created)
	}
	if !decoded.Modified.Equal(sess.Modified) {
		t.Errorf("Modified = %v, want %v", decoded.Modified, sess.Modified)
	}
	if decoded.Old.Name != "config before" {
		t.Errorf("old name = %q, want %q", decoded.Old.Name, "config before")
	}
	if decoded.Old.Path != "/tmp/config.old" {
		t.Errorf("old path = %q, want %q", decoded.Old.Path, "/tmp/config.old")
	}
	if !decoded.Old.LoadedAt.Equal(sess.Old.LoadedAt) {
		t.Errorf("old loaded = %v, want %v", decoded.Old.LoadedAt, sess.Old.LoadedAt)
	}
	if decoded.New.Path != "" {
		t.Errorf("new path = %q, want empty", decoded.New.Path)
	}
	if decoded.Old.Text != "a = 1\nb = 2\n" {
		t.Errorf("old text = %q", decoded.Old.Text)
	}
	if decoded.New.Text != "a = 1\nb = 3" {
		t.Errorf("new text = %q", decoded.New.Text)
	}
	if decoded.Old.Modified || decoded.New.Modified {
		t.Error("panes should load clean")
	}
}

func TestDecodeTolerantInput(t *testing.T) {
	// Unknown meta keys, CRLF line endings, and blank lines between
	// entries should all decode without error
	input := "[SESSION]\r\n" +
		"flavor: unknown\r\n" +
		"old-final-newline: false\r\n" +
		"\r\n" +
		"[OLD TEXT]\r\n" +
		"1: alpha\r\n" +
		"\r\n" +
		"2: beta\r\n"

	decoded, err := DecodeTextFormat(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeTextFormat failed: %v", err)
	}

	if decoded.Old.Text != "alpha\nbeta" {
		t.Errorf("old text = %q, want %q", decoded.Old.Text, "alpha\nbeta")
	}
	if decoded.New.Text != "" {
		t.Errorf("new text = %q, want empty", decoded.New.Text)
	}
	if decoded.Old.Name != "old" {
		t.Errorf("old name = %q, want default", decoded.Old.Name)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	decoded, err := DecodeTextFormat(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeTextFormat failed: %v", err)
	}
	if decoded.Old.Text != "" || decoded.New.Text != "" {
		t.Error("expected empty panes")
	}
	if decoded.ID == "" {
		t.Error("expected a generated session id")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "Text line without separator",
			input: "[OLD TEXT]\nno separator here\n",
		},
		{
			name:  "Text line with bad number",
			input: "[OLD TEXT]\nx: alpha\n",
		},
		{
			name:  "Meta line without separator",
			input: "[SESSION]\njust a bare word\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTextFormat(strings.NewReader(tt.input))
			if err == nil {
				t.Error("expected decode error, got nil")
			}
		})
	}
}

func TestEmptySessionRoundTrip(t *testing.T) {
	sess := session.NewSession()

	var buf bytes.Buffer
	if err := EncodeTextFormat(sess, &buf); err != nil {
		t.Fatalf("EncodeTextFormat failed: %v", err)
	}

	decoded, err := DecodeTextFormat(&buf)
	if err != nil {
		t.Fatalf("DecodeTextFormat failed: %v", err)
	}

	if decoded.Old.Text != "" || decoded.New.Text != "" {
		t.Error("expected empty panes after round trip")
	}
	if decoded.Old.Name != "old" || decoded.New.Name != "new" {
		t.Errorf("pane names = %q, %q", decoded.Old.Name, decoded.New.Name)
	}
}
