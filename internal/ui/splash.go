package ui

import (
	"strings"
)

// SplashScreen displays a welcome screen when neither pane has a file
type SplashScreen struct {
	visible bool
}

// NewSplashScreen creates a new SplashScreen
func NewSplashScreen() *SplashScreen {
	return &SplashScreen{
		visible: false,
	}
}

// Show makes the splash screen visible
func (s *SplashScreen) Show() {
	s.visible = true
}

// Hide makes the splash screen invisible
func (s *SplashScreen) Hide() {
	s.visible = false
}

// IsVisible returns whether the splash screen is visible
func (s *SplashScreen) IsVisible() bool {
	return s.visible
}

// GetContent returns the lines to display on the splash screen
func (s *SplashScreen) GetContent() []string {
	return []string{
		"",
		"",
		"    ~~ tdiff ~~",
		"",
		"       Version 1.0",
		"",
		"",
		"    Terminal-based text comparison",
		"    with live editing",
		"",
		"",
		"    Getting started:",
		"    o              - Open a file into a pane",
		"    :open old <f>  - Load the old side",
		"    :open new <f>  - Load the new side",
		"    ?              - Show the key reference",
		"    :q             - Quit (use :q! to force)",
		"",
		"",
		"    Load two files to compare them",
		"",
	}
}

// Render renders the splash screen
func (s *SplashScreen) Render(screen *Screen) {
	if !s.visible {
		return
	}

	bgStyle := screen.BackgroundStyle()
	textStyle := screen.HeaderStyle()
	dimStyle := screen.StatusMessageStyle()

	width := screen.GetWidth()
	height := screen.GetHeight()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			screen.SetCell(x, y, ' ', bgStyle)
		}
	}

	content := s.GetContent()

	// Longest line determines the block width
	maxWidth := 0
	for _, line := range content {
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}

	totalLines := len(content)
	startY := (height - totalLines) / 2
	if startY < 0 {
		startY = 0
	}

	startX := (width - maxWidth) / 2
	if startX < 0 {
		startX = 0
	}

	for i, line := range content {
		y := startY + i
		if y >= height {
			break
		}

		style := textStyle
		if strings.Contains(line, "Getting started:") || strings.Contains(line, "Load two files") {
			style = dimStyle
		}

		screen.DrawString(startX, y, line, style)
	}
}
