package ui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Message represents a status message with timestamp
type Message struct {
	Text      string
	Timestamp time.Time
}

// MessageLogger tracks the last N status messages
type MessageLogger struct {
	messages []*Message
	maxSize  int
	mu       sync.Mutex
}

// NewMessageLogger creates a new message logger with the specified max size
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]*Message, 0, maxSize),
		maxSize:  maxSize,
	}
}

// AddMessage adds a new status message to the history
func (ml *MessageLogger) AddMessage(text string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if text == "" {
		return
	}

	ml.messages = append(ml.messages, &Message{
		Text:      text,
		Timestamp: time.Now(),
	})

	// Keep only the last maxSize messages
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// GetMessagesReverse returns a copy of all messages in reverse
// chronological order (newest first)
func (ml *MessageLogger) GetMessagesReverse() []*Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]*Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Clear clears all messages
func (ml *MessageLogger) Clear() {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = ml.messages[:0]
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}

// MessageLog is the modal viewer over a MessageLogger, newest first
type MessageLog struct {
	visible      bool
	logger       *MessageLogger
	scrollOffset int
	pageSize     int
}

// NewMessageLog creates a hidden viewer backed by the given logger
func NewMessageLog(logger *MessageLogger) *MessageLog {
	return &MessageLog{logger: logger, pageSize: 10}
}

// Toggle flips visibility, resetting the scroll position on open
func (ml *MessageLog) Toggle() {
	ml.visible = !ml.visible
	if ml.visible {
		ml.scrollOffset = 0
	}
}

// Hide closes the viewer
func (ml *MessageLog) Hide() {
	ml.visible = false
}

// IsVisible returns whether the viewer is open
func (ml *MessageLog) IsVisible() bool {
	return ml.visible
}

// HandleKey processes a key while the viewer is open. All keys are
// consumed; Escape, q and m close.
func (ml *MessageLog) HandleKey(ev *tcell.EventKey) bool {
	if !ml.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		ml.Hide()
		return true
	case tcell.KeyUp:
		ml.scroll(-1)
		return true
	case tcell.KeyDown:
		ml.scroll(1)
		return true
	case tcell.KeyPgUp, tcell.KeyCtrlU:
		ml.scroll(-ml.pageSize)
		return true
	case tcell.KeyPgDn, tcell.KeyCtrlD:
		ml.scroll(ml.pageSize)
		return true
	}

	switch ev.Rune() {
	case 'q', 'm':
		ml.Hide()
	case 'k':
		ml.scroll(-1)
	case 'j':
		ml.scroll(1)
	case 'g':
		ml.scrollOffset = 0
	case 'G':
		ml.scroll(ml.logger.Count())
	case 'c':
		ml.logger.Clear()
		ml.scrollOffset = 0
	}
	return true
}

func (ml *MessageLog) scroll(delta int) {
	ml.scrollOffset += delta
	maxOffset := ml.logger.Count() - ml.pageSize
	if maxOffset < 0 {
		maxOffset = 0
	}
	if ml.scrollOffset > maxOffset {
		ml.scrollOffset = maxOffset
	}
	if ml.scrollOffset < 0 {
		ml.scrollOffset = 0
	}
}

// Render draws the message box over a dimmed full-screen background
func (ml *MessageLog) Render(screen *Screen) {
	if !ml.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	for y := 0; y < screen.GetHeight(); y++ {
		for x := 0; x < screen.GetWidth(); x++ {
			screen.SetCell(x, y, ' ', contentStyle)
		}
	}

	startX := 5
	startY := 2
	boxWidth := screen.GetWidth() - 10
	boxHeight := screen.GetHeight() - 4
	if boxWidth < 20 || boxHeight < 6 {
		return
	}

	drawBox(screen, startX, startY, boxWidth, boxHeight, borderStyle)
	screen.DrawStringLimited(startX+2, startY+1, " Messages (m to close, c to clear) ", boxWidth-4, titleStyle)
	screen.SetCell(startX, startY+2, '├', borderStyle)
	for i := 1; i < boxWidth-1; i++ {
		screen.SetCell(startX+i, startY+2, '─', borderStyle)
	}
	screen.SetCell(startX+boxWidth-1, startY+2, '┤', borderStyle)

	contentY := startY + 3
	contentHeight := boxHeight - 4
	ml.pageSize = contentHeight
	ml.scroll(0)

	messages := ml.logger.GetMessagesReverse()
	if len(messages) == 0 {
		screen.DrawStringLimited(startX+2, contentY, "(no messages yet)", boxWidth-4, contentStyle)
		return
	}

	for i := 0; i < contentHeight; i++ {
		msgIdx := ml.scrollOffset + i
		if msgIdx >= len(messages) {
			break
		}
		msg := messages[msgIdx]
		line := msg.Timestamp.Format("15:04:05") + "  " + msg.Text
		screen.DrawStringLimited(startX+2, contentY+i, line, boxWidth-4, contentStyle)
	}

	drawScrollbar(screen, startX+boxWidth-1, contentY, contentHeight, ml.scrollOffset, len(messages), titleStyle)
}
