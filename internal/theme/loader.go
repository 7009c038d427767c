package theme

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		Background     string `toml:"background"`
		Foreground     string `toml:"foreground"`
		Selection      string `toml:"selection"`
		Gutter         string `toml:"gutter"`
		Border         string `toml:"border"`
		FoldText       string `toml:"fold_text"`
		AddedLine      string `toml:"added_line"`
		RemovedLine    string `toml:"removed_line"`
		ChangedLine    string `toml:"changed_line"`
		AddedSegment   string `toml:"added_segment"`
		RemovedSegment string `toml:"removed_segment"`
		SearchMatch    string `toml:"search_match"`
		EditorText     string `toml:"editor_text"`
		EditorCursor   string `toml:"editor_cursor"`
		FilterLabel    string `toml:"filter_label"`
		FilterText     string `toml:"filter_text"`
		FilterCursor   string `toml:"filter_cursor"`
		FilterCount    string `toml:"filter_count"`
		CommandPrompt  string `toml:"command_prompt"`
		CommandText    string `toml:"command_text"`
		CommandCursor  string `toml:"command_cursor"`
		HelpBackground string `toml:"help_background"`
		HelpBorder     string `toml:"help_border"`
		HelpTitle      string `toml:"help_title"`
		HelpContent    string `toml:"help_content"`
		StatusMode     string `toml:"status_mode"`
		StatusMessage  string `toml:"status_message"`
		StatusModified string `toml:"status_modified"`
		StatusWarning  string `toml:"status_warning"`
		HeaderTitle    string `toml:"header_title"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	// User config directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tui-diff", "themes"))
	}

	// User local share directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "share", "tui-diff", "themes"))
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name. Built-in names resolve directly; other
// names (or explicit .toml paths) are looked up on disk
func LoadTheme(themeName string) (*Theme, error) {
	switch themeName {
	case "default":
		return Default(), nil
	case "dark":
		return Dark(), nil
	case "light":
		return Light(), nil
	}

	// An explicit path skips the search directories
	if strings.HasSuffix(themeName, ".toml") {
		return LoadThemeFromFile(themeName)
	}

	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// override replaces the color when the config supplies a value
func override(dst *tcell.Color, value string) {
	if value != "" {
		*dst = ParseColorString(value)
	}
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to the
// dark theme for missing colors
func configToTheme(config ThemeConfig) *Theme {
	theme := Dark()

	override(&theme.Colors.Background, config.Colors.Background)
	override(&theme.Colors.Foreground, config.Colors.Foreground)
	override(&theme.Colors.Selection, config.Colors.Selection)
	override(&theme.Colors.Gutter, config.Colors.Gutter)
	override(&theme.Colors.Border, config.Colors.Border)
	override(&theme.Colors.FoldText, config.Colors.FoldText)
	override(&theme.Colors.AddedLine, config.Colors.AddedLine)
	override(&theme.Colors.RemovedLine, config.Colors.RemovedLine)
	override(&theme.Colors.ChangedLine, config.Colors.ChangedLine)
	override(&theme.Colors.AddedSegment, config.Colors.AddedSegment)
	override(&theme.Colors.RemovedSegment, config.Colors.RemovedSegment)
	override(&theme.Colors.SearchMatch, config.Colors.SearchMatch)
	override(&theme.Colors.EditorText, config.Colors.EditorText)
	override(&theme.Colors.EditorCursor, config.Colors.EditorCursor)
	override(&theme.Colors.FilterLabel, config.Colors.FilterLabel)
	override(&theme.Colors.FilterText, config.Colors.FilterText)
	override(&theme.Colors.FilterCursor, config.Colors.FilterCursor)
	override(&theme.Colors.FilterCount, config.Colors.FilterCount)
	override(&theme.Colors.CommandPrompt, config.Colors.CommandPrompt)
	override(&theme.Colors.CommandText, config.Colors.CommandText)
	override(&theme.Colors.CommandCursor, config.Colors.CommandCursor)
	override(&theme.Colors.HelpBackground, config.Colors.HelpBackground)
	override(&theme.Colors.HelpBorder, config.Colors.HelpBorder)
	override(&theme.Colors.HelpTitle, config.Colors.HelpTitle)
	override(&theme.Colors.HelpContent, config.Colors.HelpContent)
	override(&theme.Colors.StatusMode, config.Colors.StatusMode)
	override(&theme.Colors.StatusMessage, config.Colors.StatusMessage)
	override(&theme.Colors.StatusModified, config.Colors.StatusModified)
	override(&theme.Colors.StatusWarning, config.Colors.StatusWarning)
	override(&theme.Colors.HeaderTitle, config.Colors.HeaderTitle)

	if config.Name != "" {
		theme.Name = config.Name
	}

	return theme
}

// LoadThemeOrDefault loads a theme by name, falling back to the dark theme
// when the theme cannot be loaded
func LoadThemeOrDefault(themeName string) *Theme {
	theme, err := LoadTheme(themeName)
	if err != nil {
		log.Printf("theme %q: %v, falling back to dark", themeName, err)
		return Dark()
	}

	return theme
}
