package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHexToColor(t *testing.T) {
	tests := []struct {
		input string
		want  tcell.Color
	}{
		{"#ff0000", tcell.NewRGBColor(255, 0, 0)},
		{"#0f0", tcell.NewRGBColor(0, 255, 0)},
		{"1a1b26", tcell.NewRGBColor(26, 27, 38)},
		{"#zzzzzz", tcell.ColorDefault},
		{"", tcell.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := HexToColor(tt.input); got != tt.want {
				t.Errorf("HexToColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		input string
		want  tcell.Color
	}{
		{"#ffffff", tcell.NewRGBColor(255, 255, 255)},
		{"rgb(255, 0, 0)", tcell.NewRGBColor(255, 0, 0)},
		{"rgb(300,0,0)", tcell.ColorDefault},
		{"rgb(1,2)", tcell.ColorDefault},
		{"not-a-color", tcell.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseColorString(tt.input); got != tt.want {
				t.Errorf("ParseColorString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadThemeBuiltins(t *testing.T) {
	for _, name := range []string{"default", "dark", "light"} {
		theme, err := LoadTheme(name)
		if err != nil {
			t.Errorf("LoadTheme(%q) failed: %v", name, err)
			continue
		}
		if theme.Name != name {
			t.Errorf("LoadTheme(%q) returned theme %q", name, theme.Name)
		}
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")

	content := "name = \"custom\"\n\n[colors]\nbackground = \"#000000\"\nadded_line = \"rgb(0, 64, 0)\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write theme: %v", err)
	}

	theme, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}

	if theme.Name != "custom" {
		t.Errorf("Name = %q, want custom", theme.Name)
	}
	if theme.Colors.Background != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("Background not overridden")
	}
	if theme.Colors.AddedLine != tcell.NewRGBColor(0, 64, 0) {
		t.Errorf("AddedLine not overridden")
	}

	// Unspecified colors keep the dark theme values
	if theme.Colors.Foreground != Dark().Colors.Foreground {
		t.Errorf("Foreground should fall back to the dark theme")
	}
}

func TestLoadThemeOrDefaultFallback(t *testing.T) {
	theme := LoadThemeOrDefault("no-such-theme-anywhere")
	if theme.Name != "dark" {
		t.Errorf("expected dark fallback, got %q", theme.Name)
	}
}
