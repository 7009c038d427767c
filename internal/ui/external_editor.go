// Package ui contains terminal UI components
package ui

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-diff/internal/config"
)

// ExternalEditHeader is the TOML front matter wrapped around the pane text
// in the temp file. The pane label is editable alongside the text.
type ExternalEditHeader struct {
	Pane string `toml:"pane"`
}

// RunExternalEditor round-trips one pane through the user's editor. It
// returns the edited pane name and text; changed is false when the editor
// exited without touching the buffer, in which case the inputs are returned
// as-is. The caller is expected to suspend the screen around this call.
func RunExternalEditor(paneName, paneText string, cfg *config.Config) (string, string, bool, error) {
	tmpFile, err := os.CreateTemp("", "tdiff-edit-*.txt")
	if err != nil {
		return paneName, paneText, false, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := writeEditBuffer(tmpFile, paneName, paneText); err != nil {
		tmpFile.Close()
		return paneName, paneText, false, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	originalContent, err := os.ReadFile(tmpPath)
	if err != nil {
		return paneName, paneText, false, fmt.Errorf("failed to read temp file: %w", err)
	}

	// sh -c so editor commands with flags like "vim --clean" work
	editorCmd := ResolveEditor(cfg)
	cmd := exec.Command("sh", "-c", editorCmd+" "+tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// A nonzero exit still may have saved the file; only a failed
		// launch aborts the round trip
		if _, ok := err.(*exec.ExitError); !ok {
			return paneName, paneText, false, fmt.Errorf("failed to launch editor: %w", err)
		}
	}

	editedContent, err := os.ReadFile(tmpPath)
	if err != nil {
		return paneName, paneText, false, fmt.Errorf("failed to read edited file: %w", err)
	}

	if bytes.Equal(originalContent, editedContent) || len(editedContent) == 0 {
		return paneName, paneText, false, nil
	}

	name, text, err := parseEditBuffer(editedContent, paneName)
	if err != nil {
		return paneName, paneText, false, fmt.Errorf("failed to parse edited content: %w (keeping original)", err)
	}
	return name, text, true, nil
}

// writeEditBuffer writes the front matter and pane text to the temp file
func writeEditBuffer(file *os.File, paneName, paneText string) error {
	var buf bytes.Buffer
	buf.WriteString("+++\n")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(ExternalEditHeader{Pane: paneName}); err != nil {
		return err
	}

	buf.WriteString("+++\n")

	if _, err := file.Write(buf.Bytes()); err != nil {
		return err
	}
	if _, err := file.WriteString(paneText); err != nil {
		return err
	}
	return file.Sync()
}

// parseEditBuffer splits the edited content back into pane name and text.
// The body is kept byte for byte; trailing newline state is part of the
// text being compared.
func parseEditBuffer(content []byte, fallbackName string) (string, string, error) {
	contentStr := string(content)

	startDelim := strings.Index(contentStr, "+++\n")
	if startDelim != 0 {
		// Front matter removed entirely, whole buffer is text
		return fallbackName, contentStr, nil
	}

	startPos := startDelim + 4
	endDelim := strings.Index(contentStr[startPos:], "+++\n")
	if endDelim == -1 {
		return fallbackName, contentStr, nil
	}

	tomlSection := contentStr[startPos : startPos+endDelim]
	textSection := contentStr[startPos+endDelim+4:]

	header := &ExternalEditHeader{}
	if err := toml.Unmarshal([]byte(tomlSection), header); err != nil {
		return "", "", err
	}

	name := strings.TrimSpace(header.Pane)
	if name == "" {
		name = fallbackName
	}
	return name, textSection, nil
}

// ResolveEditor determines which editor command to use
func ResolveEditor(cfg *config.Config) string {
	if editorVal := cfg.Get("editor"); editorVal != "" {
		return editorVal
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}
