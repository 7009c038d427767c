package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-diff/internal/history"
)

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active    bool
	input     string
	cursorPos int
	history   *History
}

// NewCommandMode creates a new CommandMode without history persistence
func NewCommandMode(historySize int) *CommandMode {
	return &CommandMode{
		history: NewHistory(historySize),
	}
}

// NewCommandModeWithHistory creates a new CommandMode with history persistence
func NewCommandModeWithHistory(historySize int, manager *history.Manager) (*CommandMode, error) {
	h, err := NewHistoryWithManager(historySize, manager, "command.toml")
	if err != nil {
		// If history loading fails, continue with empty history
		h = NewHistory(historySize)
	}

	return &CommandMode{
		history: h,
	}, nil
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input = ""
	c.cursorPos = 0
	c.history.Reset()
}

// StartWith enters command mode with the input prefilled
func (c *CommandMode) StartWith(input string) {
	c.Start()
	c.input = input
	c.cursorPos = len(input)
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// DeleteWordBackwards deletes the word before the cursor
func (c *CommandMode) DeleteWordBackwards() {
	if c.cursorPos == 0 {
		return
	}

	pos := c.cursorPos - 1
	for pos >= 0 && (c.input[pos] == ' ' || c.input[pos] == '\t') {
		pos--
	}
	for pos >= 0 && c.input[pos] != ' ' && c.input[pos] != '\t' {
		pos--
	}

	deleteStart := pos + 1
	c.input = c.input[:deleteStart] + c.input[c.cursorPos:]
	c.cursorPos = deleteStart
}

// HandleKey processes a key press in command mode. When done is true
// the returned command is ready to execute (empty for a cancel)
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyCtrlW:
		c.DeleteWordBackwards()
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input)
		c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		// Store current input before navigating history
		if !c.history.IsNavigating() {
			c.history.SetTemporary(c.input)
		}
		if prevCmd, ok := c.history.Previous(); ok {
			c.input = prevCmd
			c.cursorPos = len(c.input)
		}
	case tcell.KeyDown:
		if nextCmd, ok := c.history.Next(); ok {
			c.input = nextCmd
			c.cursorPos = len(c.input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(c.input[:c.cursorPos])
			c.input = c.input[:c.cursorPos-size] + c.input[c.cursorPos:]
			c.cursorPos -= size
		} else if c.input == "" {
			// Backspace on an empty command line leaves command mode
			c.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if c.cursorPos < len(c.input) {
			_, size := utf8.DecodeRuneInString(c.input[c.cursorPos:])
			c.input = c.input[:c.cursorPos] + c.input[c.cursorPos+size:]
		}
	case tcell.KeyLeft:
		if c.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(c.input[:c.cursorPos])
			c.cursorPos -= size
		}
	case tcell.KeyRight:
		if c.cursorPos < len(c.input) {
			_, size := utf8.DecodeRuneInString(c.input[c.cursorPos:])
			c.cursorPos += size
		}
	case tcell.KeyHome:
		c.cursorPos = 0
	case tcell.KeyEnd:
		c.cursorPos = len(c.input)
	case tcell.KeyCtrlU:
		c.input = c.input[c.cursorPos:]
		c.cursorPos = 0
	case tcell.KeyCtrlK:
		c.input = c.input[:c.cursorPos]
	default:
		ch := ev.Rune()
		if ch > 0 {
			s := string(ch)
			c.input = c.input[:c.cursorPos] + s + c.input[c.cursorPos:]
			c.cursorPos += len(s)
		}
	}

	return "", false
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input)
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	promptStyle := screen.CommandPromptStyle()
	textStyle := screen.CommandTextStyle()
	cursorStyle := screen.CommandCursorStyle()
	screenWidth := screen.GetWidth()

	screen.DrawString(0, y, ":", promptStyle)
	x := 1

	col := x
	for byteIdx, r := range c.input {
		if col >= screenWidth {
			break
		}
		charStyle := textStyle
		if byteIdx == c.cursorPos {
			charStyle = cursorStyle
		}
		screen.SetCell(col, y, r, charStyle)
		col += RuneWidth(r)
	}

	if c.cursorPos >= len(c.input) && col < screenWidth {
		screen.SetCell(col, y, ' ', cursorStyle)
		col++
	}

	for col < screenWidth {
		screen.SetCell(col, y, ' ', textStyle)
		col++
	}
}
