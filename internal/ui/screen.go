package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-diff/internal/config"
	"github.com/pstuifzand/tui-diff/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a new Screen instance with the configured theme
func NewScreen() (*Screen, error) {
	cfg, err := config.Load()
	if err != nil {
		// If config fails to load, use Default as fallback
		return NewScreenWithTheme(theme.Default())
	}

	t := theme.LoadThemeOrDefault(cfg.ThemeName())
	return NewScreenWithTheme(t)
}

// NewScreenWithTheme creates a new Screen instance with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Suspend releases terminal control temporarily, for external editors
func (s *Screen) Suspend() error {
	return s.tcellScreen.Suspend()
}

// Resume restores terminal control after suspension
func (s *Screen) Resume() error {
	return s.tcellScreen.Resume()
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position with the given style
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetCell(col, y, r, style)
		col += RuneWidth(r)
	}
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// HasMouse returns true if mouse is supported
func (s *Screen) HasMouse() bool {
	return s.tcellScreen.HasMouse()
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// DefaultStyle returns the default terminal style
func DefaultStyle() tcell.Style {
	return tcell.StyleDefault
}

// StyleBold returns a bold style
func StyleBold(s tcell.Style) tcell.Style {
	return s.Bold(true)
}

// StyleReverse returns a reverse video style
func StyleReverse(s tcell.Style) tcell.Style {
	return s.Reverse(true)
}

// StyleDim returns a dim style
func StyleDim(s tcell.Style) tcell.Style {
	return s.Dim(true)
}

// Theme-aware style methods

// TextStyle returns the style for unchanged diff rows
func (s *Screen) TextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Foreground, s.Theme.Colors.Background)
}

// SelectedStyle returns the style for the cursor row
func (s *Screen) SelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Foreground, s.Theme.Colors.Selection).Bold(true)
}

// GutterStyle returns the style for line number gutters
func (s *Screen) GutterStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Gutter)
}

// FoldStyle returns the style for collapsed-context fold markers
func (s *Screen) FoldStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FoldText).Dim(true)
}

// BorderStyle returns the style for pane dividers and widget borders
func (s *Screen) BorderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Border)
}

// AddedLineStyle returns the row tint for added lines
func (s *Screen) AddedLineStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Foreground, s.Theme.Colors.AddedLine)
}

// RemovedLineStyle returns the row tint for removed lines
func (s *Screen) RemovedLineStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Foreground, s.Theme.Colors.RemovedLine)
}

// ChangedLineStyle returns the row tint for changed lines
func (s *Screen) ChangedLineStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Foreground, s.Theme.Colors.ChangedLine)
}

// AddedSegmentStyle returns the stronger tint for inserted segments
// inside a changed line
func (s *Screen) AddedSegmentStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Foreground, s.Theme.Colors.AddedSegment)
}

// RemovedSegmentStyle returns the stronger tint for removed segments
// inside a changed line
func (s *Screen) RemovedSegmentStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Foreground, s.Theme.Colors.RemovedSegment)
}

// SearchMatchStyle returns the style for highlighted search matches
func (s *Screen) SearchMatchStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Foreground, s.Theme.Colors.SearchMatch)
}

// EditorStyle returns the style for editor text
func (s *Screen) EditorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.EditorText)
}

// EditorCursorStyle returns the style for editor cursor
func (s *Screen) EditorCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.EditorCursor).Reverse(true)
}

// FilterLabelStyle returns the style for the filter bar label
func (s *Screen) FilterLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterLabel)
}

// FilterTextStyle returns the style for filter bar text
func (s *Screen) FilterTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterText)
}

// FilterCursorStyle returns the style for the filter bar cursor
func (s *Screen) FilterCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterCursor).Reverse(true)
}

// FilterCountStyle returns the style for the filter match count
func (s *Screen) FilterCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterCount)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandText)
}

// CommandCursorStyle returns the style for command cursor
func (s *Screen) CommandCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandCursor).Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusModified)
}

// StatusWarningStyle returns the style for warnings in the status line
func (s *Screen) StatusWarningStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusWarning)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}
