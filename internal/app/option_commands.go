package app

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-diff/internal/storage"
	"github.com/pstuifzand/tui-diff/internal/theme"
)

// handleSetCommand implements :set. With no arguments or "list" it
// writes every known option into the message log; with one argument it
// shows that option's current value; with two it validates through the
// option registry and applies the change to the live components
func (a *App) handleSetCommand(args []string) {
	if len(args) == 0 || args[0] == "list" {
		a.listOptions()
		return
	}

	name := args[0]
	if len(args) == 1 {
		value := a.config.Get(name)
		if value == "" && !a.options.Known(name) {
			a.SetStatus("Unknown option: " + name)
			return
		}
		if value == "" {
			value = "(unset)"
		}
		a.SetStatus(fmt.Sprintf("%s = %s", name, value))
		return
	}

	// Join so ":set editor vim --clean" works without quoting
	value := strings.Join(args[1:], " ")

	if !a.options.Known(name) {
		a.config.Set(name, value)
		a.SetStatus(fmt.Sprintf("set %s = %s (unknown option)", name, value))
		return
	}

	if err := a.options.Validate(name, value); err != nil {
		a.SetStatus("Invalid value: " + err.Error())
		return
	}

	a.config.Set(name, value)
	a.applyOption(name)
	a.SetStatus(fmt.Sprintf("set %s = %s", name, value))
}

// listOptions writes one line per registered option into the message
// log and opens it
func (a *App) listOptions() {
	names := a.options.Names()
	lines := make([]string, 0, len(names)+1)
	lines = append(lines, "Options (:set <key> <value> to change):")
	for _, name := range names {
		spec := a.options.GetOption(name)
		value := a.config.Get(name)
		if value == "" {
			value = "(unset)"
		}
		lines = append(lines, fmt.Sprintf("  %-18s %-16s %s", name, spec.KindString(), value))
	}
	a.logLines(lines)
	if !a.messageLog.IsVisible() {
		a.messageLog.Toggle()
	}
}

// applyOption pushes a validated option change into the components that
// consume it live. Options read at use time (editor, report-template),
// or only at startup (history-size), have no case here
func (a *App) applyOption(name string) {
	switch name {
	case "context":
		a.diffView.SetContext(a.config.GetInt("context"))
	case "tab-width":
		n := a.config.GetInt("tab-width")
		a.diffView.SetTabWidth(n)
		a.paneEditor.SetTabWidth(n)
	case "theme":
		if t, err := theme.LoadTheme(a.config.Get("theme")); err == nil {
			a.screen.Theme = t
		} else {
			a.SetStatus("Failed to load theme: " + err.Error())
		}
	case "week-start":
		a.snapshotCalendar.SetWeekStart(a.config.GetInt("week-start"))
	case "snapshot-dir":
		mgr, err := storage.NewSnapshotManagerAt(a.config.Get("snapshot-dir"))
		if err != nil {
			a.SetStatus("Failed to set snapshot directory: " + err.Error())
			return
		}
		a.snapshots = mgr
	}
}
