package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Base colors
	Background tcell.Color
	Foreground tcell.Color
	Selection  tcell.Color
	Gutter     tcell.Color
	Border     tcell.Color
	FoldText   tcell.Color

	// Diff row tints (line backgrounds)
	AddedLine   tcell.Color
	RemovedLine tcell.Color
	ChangedLine tcell.Color

	// Stronger tints for the changed segments inside a replaced line
	AddedSegment   tcell.Color
	RemovedSegment tcell.Color

	// Search match highlight
	SearchMatch tcell.Color

	// Editor colors
	EditorText   tcell.Color
	EditorCursor tcell.Color

	// Filter bar colors
	FilterLabel  tcell.Color
	FilterText   tcell.Color
	FilterCursor tcell.Color
	FilterCount  tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color
	CommandCursor tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color
	StatusWarning  tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:     tcell.ColorDefault,
			Foreground:     tcell.ColorDefault,
			Selection:      tcell.ColorDefault,
			Gutter:         tcell.ColorDefault,
			Border:         tcell.ColorDefault,
			FoldText:       tcell.ColorDefault,
			AddedLine:      tcell.ColorDefault,
			RemovedLine:    tcell.ColorDefault,
			ChangedLine:    tcell.ColorDefault,
			AddedSegment:   tcell.ColorDefault,
			RemovedSegment: tcell.ColorDefault,
			SearchMatch:    tcell.ColorDefault,
			EditorText:     tcell.ColorDefault,
			EditorCursor:   tcell.ColorDefault,
			FilterLabel:    tcell.ColorDefault,
			FilterText:     tcell.ColorDefault,
			FilterCursor:   tcell.ColorDefault,
			FilterCount:    tcell.ColorDefault,
			CommandPrompt:  tcell.ColorDefault,
			CommandText:    tcell.ColorDefault,
			CommandCursor:  tcell.ColorDefault,
			HelpBackground: tcell.ColorDefault,
			HelpBorder:     tcell.ColorDefault,
			HelpTitle:      tcell.ColorDefault,
			HelpContent:    tcell.ColorDefault,
			StatusMode:     tcell.ColorDefault,
			StatusMessage:  tcell.ColorDefault,
			StatusModified: tcell.ColorDefault,
			StatusWarning:  tcell.ColorDefault,
			HeaderTitle:    tcell.ColorDefault,
		},
	}
}

// Dark returns the built-in dark theme
func Dark() *Theme {
	return &Theme{
		Name: "dark",
		Colors: Colors{
			// Tokyo Night palette
			Background:     HexToColor("#1a1b26"), // Dark background
			Foreground:     HexToColor("#c0caf5"), // Light gray-blue
			Selection:      HexToColor("#283457"), // Selection blue
			Gutter:         HexToColor("#565f89"), // Comment gray
			Border:         HexToColor("#7dcfff"), // Cyan
			FoldText:       HexToColor("#565f89"), // Comment gray
			AddedLine:      HexToColor("#20303b"), // Green-tinted background
			RemovedLine:    HexToColor("#37222c"), // Red-tinted background
			ChangedLine:    HexToColor("#1f2231"), // Blue-tinted background
			AddedSegment:   HexToColor("#2c4f35"), // Stronger green
			RemovedSegment: HexToColor("#55333c"), // Stronger red
			SearchMatch:    HexToColor("#3d59a1"), // Search blue
			EditorText:     HexToColor("#c0caf5"), // Light gray-blue
			EditorCursor:   HexToColor("#7aa2f7"), // Blue
			FilterLabel:    HexToColor("#bb9af7"), // Magenta
			FilterText:     HexToColor("#c0caf5"), // Light gray-blue
			FilterCursor:   HexToColor("#7aa2f7"), // Blue
			FilterCount:    HexToColor("#9ece6a"), // Green
			CommandPrompt:  HexToColor("#bb9af7"), // Magenta
			CommandText:    HexToColor("#c0caf5"), // Light gray-blue
			CommandCursor:  HexToColor("#7aa2f7"), // Blue
			HelpBackground: HexToColor("#1a1b26"), // Dark background
			HelpBorder:     HexToColor("#7dcfff"), // Cyan
			HelpTitle:      HexToColor("#bb9af7"), // Magenta
			HelpContent:    HexToColor("#c0caf5"), // Light gray-blue
			StatusMode:     HexToColor("#bb9af7"), // Magenta
			StatusMessage:  HexToColor("#9ece6a"), // Green
			StatusModified: HexToColor("#f7768e"), // Red
			StatusWarning:  HexToColor("#e0af68"), // Yellow
			HeaderTitle:    HexToColor("#bb9af7"), // Magenta
		},
	}
}

// Light returns the built-in light theme
func Light() *Theme {
	return &Theme{
		Name: "light",
		Colors: Colors{
			Background:     HexToColor("#ffffff"),
			Foreground:     HexToColor("#24292f"),
			Selection:      HexToColor("#d0d7e5"),
			Gutter:         HexToColor("#8c959f"),
			Border:         HexToColor("#57606a"),
			FoldText:       HexToColor("#8c959f"),
			AddedLine:      HexToColor("#e6ffec"),
			RemovedLine:    HexToColor("#ffebe9"),
			ChangedLine:    HexToColor("#fff8c5"),
			AddedSegment:   HexToColor("#abf2bc"),
			RemovedSegment: HexToColor("#ffc0c0"),
			SearchMatch:    HexToColor("#fff3a3"),
			EditorText:     HexToColor("#24292f"),
			EditorCursor:   HexToColor("#0969da"),
			FilterLabel:    HexToColor("#8250df"),
			FilterText:     HexToColor("#24292f"),
			FilterCursor:   HexToColor("#0969da"),
			FilterCount:    HexToColor("#1a7f37"),
			CommandPrompt:  HexToColor("#8250df"),
			CommandText:    HexToColor("#24292f"),
			CommandCursor:  HexToColor("#0969da"),
			HelpBackground: HexToColor("#f6f8fa"),
			HelpBorder:     HexToColor("#57606a"),
			HelpTitle:      HexToColor("#8250df"),
			HelpContent:    HexToColor("#24292f"),
			StatusMode:     HexToColor("#8250df"),
			StatusMessage:  HexToColor("#1a7f37"),
			StatusModified: HexToColor("#cf222e"),
			StatusWarning:  HexToColor("#9a6700"),
			HeaderTitle:    HexToColor("#8250df"),
		},
	}
}
