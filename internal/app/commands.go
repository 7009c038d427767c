package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/export"
	"github.com/pstuifzand/tui-diff/internal/filter"
	"github.com/pstuifzand/tui-diff/internal/session"
	"github.com/pstuifzand/tui-diff/internal/storage"
	"github.com/pstuifzand/tui-diff/internal/theme"
	"github.com/pstuifzand/tui-diff/internal/ui"
)

// parseCommand splits a command line into parts, respecting quoted
// strings. Double and single quotes group words into one argument;
// inside double quotes \" and \\ escape a quote and a backslash. An
// empty quoted string yields an empty argument
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	var quoteChar byte
	hasCurrent := false

	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case inQuotes:
			if quoteChar == '"' && ch == '\\' && i+1 < len(input) {
				next := input[i+1]
				if next == '"' || next == '\\' {
					current.WriteByte(next)
					i++
					continue
				}
			}
			if ch == quoteChar {
				inQuotes = false
				continue
			}
			current.WriteByte(ch)
		case ch == '"' || ch == '\'':
			inQuotes = true
			quoteChar = ch
			hasCurrent = true
		case ch == ' ' || ch == '\t':
			if hasCurrent {
				parts = append(parts, current.String())
				current.Reset()
				hasCurrent = false
			}
		default:
			current.WriteByte(ch)
			hasCurrent = true
		}
	}

	if hasCurrent {
		parts = append(parts, current.String())
	}
	return parts
}

// commandRest returns everything after the command word, untouched.
// Used by commands whose argument has its own syntax (filter queries)
// where quote stripping would change the meaning
func commandRest(input string) string {
	trimmed := strings.TrimSpace(input)
	idx := strings.IndexAny(trimmed, " \t")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(trimmed[idx:])
}

// handleCommand executes a command entered in command mode
func (a *App) handleCommand(cmd string) {
	if cmd == "" {
		return
	}

	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		a.requestQuit(false)
	case "q!", "quit!":
		a.requestQuit(true)
	case "w", "write":
		a.handleWriteCommand(parts[1:])
	case "wq":
		if a.handleWriteCommand(parts[1:]) {
			a.quit = true
		}
	case "open":
		a.handleOpenCommand(parts[1:])
	case "reload":
		a.handleReloadCommand(false)
	case "reload!":
		a.handleReloadCommand(true)
	case "compare":
		a.handleCompareCommand()
	case "set":
		a.handleSetCommand(parts[1:])
	case "theme":
		a.handleThemeCommand(parts[1:])
	case "filter":
		a.handleFilterCommand(commandRest(cmd))
	case "explain":
		a.handleExplainCommand()
	case "export":
		a.handleExportCommand(parts[1:])
	case "snapshot":
		a.handleSnapshotCommand()
	case "snapshots":
		a.openSnapshotSelector()
	case "messages":
		a.messageLog.Toggle()
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

// handleWriteCommand saves the session, switching the store when a path
// is given. Returns whether the save succeeded, so :wq knows to quit
func (a *App) handleWriteCommand(args []string) bool {
	if a.patchMode {
		a.SetStatus("Patch views cannot be saved as sessions")
		return false
	}
	if len(args) > 0 {
		a.store = storage.NewStoreFor(args[0])
	}
	if a.store == nil {
		a.SetStatus("No file name (use :w <path>)")
		return false
	}
	if err := a.Save(); err != nil {
		a.SetStatus("Failed to save: " + err.Error())
		return false
	}
	a.SetStatus("Saved " + a.store.Path())
	return true
}

func (a *App) handleOpenCommand(args []string) {
	if len(args) < 2 {
		a.SetStatus("Usage: :open old|new <path>")
		return
	}

	var side session.Side
	switch args[0] {
	case "old":
		side = session.SideOld
	case "new":
		side = session.SideNew
	default:
		a.SetStatus("Usage: :open old|new <path>")
		return
	}

	if err := a.loadFileIntoPane(side, args[1]); err != nil {
		a.SetStatus("Failed to open: " + err.Error())
		return
	}
	a.SetStatus(fmt.Sprintf("Loaded %s into %s pane", a.session.Pane(side).Name, side))
}

func (a *App) handleReloadCommand(force bool) {
	if !force && a.session.Dirty() {
		a.SetStatus("Buffers modified; use :reload! to discard changes")
		return
	}
	if err := a.reloadPanes(); err != nil {
		a.SetStatus("Reload failed: " + err.Error())
		return
	}
	a.SetStatus("Reloaded")
}

func (a *App) handleCompareCommand() {
	if a.patchMode {
		a.SetStatus("Patch view: nothing to compare")
		return
	}
	a.requestCompare()
	a.SetStatus("Comparing...")
}

func (a *App) handleThemeCommand(args []string) {
	if len(args) < 1 {
		a.SetStatus("Theme: " + a.config.ThemeName())
		return
	}

	name := args[0]
	t, err := theme.LoadTheme(name)
	if err != nil {
		a.SetStatus("Failed to load theme: " + err.Error())
		return
	}
	a.screen.Theme = t
	a.config.Set("theme", name)
	a.SetStatus("Theme: " + name)
}

// handleFilterCommand installs or clears the record filter. The query
// arrives unparsed: quotes and escapes belong to the filter language
func (a *App) handleFilterCommand(query string) {
	if query == "" {
		a.filterBar.ClearFilter()
		a.applyFilter()
		a.SetStatus("Filter cleared")
		return
	}

	if err := a.filterBar.Install(query); err != nil {
		a.SetStatus("Filter error: " + err.Error())
		return
	}
	a.applyFilter()
	a.SetStatus(fmt.Sprintf("Filter: %s (%d/%d records)",
		query, a.diffView.VisibleCount(), a.diffView.TotalCount()))
}

// handleExplainCommand writes the filter's verdict on the selected
// record into the message log
func (a *App) handleExplainCommand() {
	rec := a.diffView.SelectedRecord()
	if rec == nil {
		a.SetStatus("No record selected")
		return
	}
	if !a.filterBar.HasFilter() {
		a.SetStatus("No filter installed (use :filter <query> or /)")
		return
	}

	info := filter.DebugMatch(rec, a.filterBar.Expr())
	text := strings.TrimRight(filter.FormatDebugInfo(info), "\n")
	a.logLines(strings.Split(text, "\n"))
	if !a.messageLog.IsVisible() {
		a.messageLog.Toggle()
	}
}

func (a *App) handleExportCommand(args []string) {
	if len(args) < 2 {
		a.SetStatus("Usage: :export markdown|json|jsonl|fields <path>")
		return
	}
	format, path := args[0], args[1]

	result := a.result
	if result == nil {
		result = &diff.Result{}
	}

	switch format {
	case "markdown", "md":
		tmpl := a.config.Get("report-template")
		if err := export.ExportToMarkdown(a.session, result, tmpl, path); err != nil {
			a.SetStatus("Export failed: " + err.Error())
			return
		}
	case "json", "jsonl", "fields":
		f, err := ui.ParseFormatFlag(format)
		if err != nil {
			a.SetStatus("Export failed: " + err.Error())
			return
		}
		out, err := ui.FormatRecords(result.Records, f, nil)
		if err != nil {
			a.SetStatus("Export failed: " + err.Error())
			return
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			a.SetStatus("Export failed: " + err.Error())
			return
		}
	default:
		a.SetStatus("Unknown export format: " + format)
		return
	}

	a.SetStatus(fmt.Sprintf("Exported %d records to %s", len(result.Records), path))
}
