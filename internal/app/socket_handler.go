package app

import (
	"fmt"
	"log"

	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/session"
	"github.com/pstuifzand/tui-diff/internal/socket"
)

// handleSocketMessage dispatches a remote command on the event loop
// goroutine and answers through the message's response channel
func (a *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Socket command: %s %v", msg.Command, msg.Args)

	var resp *socket.Response
	switch msg.Command {
	case socket.CommandPing:
		resp = &socket.Response{Success: true, Message: "pong"}

	case socket.CommandOpen:
		resp = a.handleSocketOpen(msg.Args)

	case socket.CommandReload:
		if err := a.reloadPanes(); err != nil {
			resp = &socket.Response{Success: false, Message: "Reload failed: " + err.Error()}
		} else {
			a.SetStatus("Reloaded (remote)")
			resp = &socket.Response{Success: true, Message: "Reloaded"}
		}

	case socket.CommandStatus:
		resp = &socket.Response{Success: true, Message: a.statusSummary()}

	default:
		resp = &socket.Response{Success: false, Message: "Unknown command: " + msg.Command}
	}

	if msg.ResponseChan != nil {
		msg.ResponseChan <- resp
	}
}

// handleSocketOpen loads a file pair sent by another tdiff invocation.
// Modified buffers are never replaced remotely
func (a *App) handleSocketOpen(args []string) *socket.Response {
	if len(args) < 2 {
		return &socket.Response{Success: false, Message: "open requires <old> <new>"}
	}
	if a.session.Dirty() {
		return &socket.Response{Success: false, Message: "Buffers modified; save or discard them first"}
	}
	if err := a.loadFileIntoPane(session.SideOld, args[0]); err != nil {
		return &socket.Response{Success: false, Message: "Failed to open old: " + err.Error()}
	}
	if err := a.loadFileIntoPane(session.SideNew, args[1]); err != nil {
		return &socket.Response{Success: false, Message: "Failed to open new: " + err.Error()}
	}
	a.SetStatus(fmt.Sprintf("Opened %s and %s (remote)", args[0], args[1]))
	return &socket.Response{Success: true, Message: "Opened " + a.session.Label()}
}

// statusSummary is the one-line answer to the status command
func (a *App) statusSummary() string {
	stats := diff.Stats{}
	if a.result != nil {
		stats = a.result.Stats
	}
	summary := fmt.Sprintf("%s  %s", a.session.Label(), diff.FormatStats(stats))
	if a.session.Dirty() {
		summary += "  [modified]"
	}
	return summary
}
