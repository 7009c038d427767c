package app

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-diff/internal/config"
	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/filter"
	"github.com/pstuifzand/tui-diff/internal/history"
	"github.com/pstuifzand/tui-diff/internal/input"
	"github.com/pstuifzand/tui-diff/internal/patch"
	"github.com/pstuifzand/tui-diff/internal/session"
	"github.com/pstuifzand/tui-diff/internal/socket"
	"github.com/pstuifzand/tui-diff/internal/storage"
	"github.com/pstuifzand/tui-diff/internal/ui"
)

// Input modes
const (
	NormalMode = "NORMAL"
	InsertMode = "INSERT"
)

// App is the main application controller. All state mutation happens on
// the event loop goroutine; the comparer and the socket server deliver
// their work through channels the loop selects on
type App struct {
	screen  *ui.Screen
	session *session.Session
	config  *config.Config
	options *config.OptionRegistry
	store   storage.Store

	snapshots *storage.SnapshotManager
	server    *socket.Server

	diffView *ui.DiffView
	result   *diff.Result

	comparer   *comparer
	generation int

	paneEditor  *ui.PaneEditor
	focusedSide session.Side

	command   *ui.CommandMode
	filterBar *ui.FilterBar
	help      *ui.HelpScreen

	messageLogger    *ui.MessageLogger
	messageLog       *ui.MessageLog
	recordSearch     *ui.RecordSearchWidget
	filePicker       *ui.FilePicker
	inspector        *ui.RecordInspector
	snapshotSelector *ui.SnapshotSelector
	snapshotCalendar *ui.SnapshotCalendar
	splash           *ui.SplashScreen

	keybindings        []KeyBinding
	pendingKeybindings []PendingKeyBinding
	pendingPrefix      rune

	mode string

	statusMsg  string
	statusTime time.Time
	warning    string

	sessionID           string
	currentSnapshotPath string
	liveSession         *session.Session

	patchMode bool
	patchPath string

	pendingReload     bool
	pendingReloadTime time.Time

	debugMode    bool
	lastKeyEvent *tcell.EventKey

	quit bool
}

// NewApp creates the application and loads the given paths: none for an
// empty session, a session or patch file, or an old/new text pair
func NewApp(paths []string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		cfg = &config.Config{Theme: "dark", Settings: make(map[string]string)}
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	historySize := cfg.GetInt("history-size")
	histManager, err := history.NewManager()
	if err != nil {
		log.Printf("Input history unavailable: %v", err)
	}

	var command *ui.CommandMode
	var filterBar *ui.FilterBar
	if histManager != nil {
		command, _ = ui.NewCommandModeWithHistory(historySize, histManager)
		filterBar, _ = ui.NewFilterBarWithHistory(historySize, histManager)
	} else {
		command = ui.NewCommandMode(historySize)
		filterBar = ui.NewFilterBar(historySize)
	}

	var snapshots *storage.SnapshotManager
	if dir := cfg.Get("snapshot-dir"); dir != "" {
		snapshots, err = storage.NewSnapshotManagerAt(dir)
	} else {
		snapshots, err = storage.NewSnapshotManager()
	}
	if err != nil {
		log.Printf("Snapshots unavailable: %v", err)
		snapshots = nil
	}

	server, err := socket.NewServer()
	if err != nil {
		log.Printf("Remote control unavailable: %v", err)
		server = nil
	}

	logger := ui.NewMessageLogger(200)

	a := &App{
		screen:           screen,
		session:          session.NewSession(),
		config:           cfg,
		options:          config.NewOptionRegistry(),
		snapshots:        snapshots,
		server:           server,
		diffView:         ui.NewDiffView(),
		comparer:         newComparer(),
		paneEditor:       ui.NewPaneEditor(),
		focusedSide:      session.SideNew,
		command:          command,
		filterBar:        filterBar,
		help:             ui.NewHelpScreen(),
		messageLogger:    logger,
		messageLog:       ui.NewMessageLog(logger),
		recordSearch:     ui.NewRecordSearchWidget(),
		filePicker:       ui.NewFilePicker(),
		inspector:        ui.NewRecordInspector(),
		snapshotSelector: ui.NewSnapshotSelector(),
		snapshotCalendar: ui.NewSnapshotCalendar(),
		splash:           ui.NewSplashScreen(),
		mode:             NormalMode,
		statusMsg:        "Ready",
		statusTime:       time.Now(),
		sessionID:        generateSessionID(),
	}

	a.diffView.SetContext(cfg.GetInt("context"))
	a.diffView.SetTabWidth(cfg.GetInt("tab-width"))
	a.paneEditor.SetTabWidth(cfg.GetInt("tab-width"))
	a.snapshotCalendar.SetWeekStart(cfg.GetInt("week-start"))

	a.keybindings = a.InitializeKeybindings()
	a.pendingKeybindings = a.InitializePendingKeybindings()
	a.help.SetContent(a.buildHelpContent())

	a.recordSearch.SetOnJump(func(idx int) {
		a.diffView.SelectRecord(idx)
	})
	a.recordSearch.SetOnFilter(func(query string) {
		a.handleFilterCommand(query)
	})
	a.filePicker.SetOnSelect(func(path string) {
		if err := a.loadFileIntoPane(a.focusedSide, path); err != nil {
			a.SetStatus("Failed to open: " + err.Error())
			return
		}
		a.SetStatus(fmt.Sprintf("Loaded %s into %s pane", a.session.Pane(a.focusedSide).Name, a.focusedSide))
	})
	a.snapshotSelector.SetCalendar(a.snapshotCalendar)
	a.snapshotSelector.SetOnRestore(a.restoreSnapshotSession)
	a.snapshotSelector.SetOnLoadSide(a.loadSnapshotIntoPane)

	if err := a.openStartupPaths(paths); err != nil {
		screen.Close()
		return nil, err
	}

	return a, nil
}

// openStartupPaths loads the command line arguments into the session
func (a *App) openStartupPaths(paths []string) error {
	switch len(paths) {
	case 0:
		return nil
	case 1:
		path := paths[0]
		switch input.DetectKind(path) {
		case input.KindSession:
			return a.openSessionFile(path)
		case input.KindPatch:
			return a.openPatchFile(path)
		default:
			return a.loadFileIntoPane(session.SideOld, path)
		}
	case 2:
		if err := a.loadFileIntoPane(session.SideOld, paths[0]); err != nil {
			return err
		}
		return a.loadFileIntoPane(session.SideNew, paths[1])
	default:
		return fmt.Errorf("expected at most two files, got %d", len(paths))
	}
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.screen.Close()

	a.comparer.Start()
	defer a.comparer.Stop()

	var socketMsgs <-chan socket.Message
	if a.server != nil {
		a.server.Start()
		defer a.server.Stop()
		socketMsgs = a.server.Messages()
	}

	if a.screen.HasMouse() {
		a.screen.EnableMouse()
	}

	eventChan := make(chan tcell.Event, 10)
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case event := <-eventChan:
			if event == nil {
				return nil
			}
			a.handleRawEvent(event)
		case res := <-a.comparer.results:
			a.applyCompareResult(res)
		case msg := <-socketMsgs:
			a.handleSocketMessage(msg)
		case <-ticker.C:
			// redraw so status messages expire on time
		}
		a.render()
	}
	return nil
}

// handleRawEvent routes one terminal event
func (a *App) handleRawEvent(event tcell.Event) {
	switch ev := event.(type) {
	case *tcell.EventKey:
		a.lastKeyEvent = ev
		a.handleKeyEvent(ev)
	case *tcell.EventMouse:
		a.handleMouseEvent(ev)
	case *tcell.EventResize:
		// render after the switch picks up the new size
	}
}

// handleKeyEvent walks the input consumers in precedence order: bars
// first, then modal widgets, then the pane editor, then normal mode
func (a *App) handleKeyEvent(ev *tcell.EventKey) {
	if a.command.IsActive() {
		cmd, done := a.command.HandleKey(ev)
		if done && cmd != "" {
			a.handleCommand(cmd)
		}
		return
	}

	if a.filterBar.IsActive() {
		a.filterBar.HandleKey(ev)
		a.applyFilter()
		return
	}

	if a.help.HandleKey(ev) {
		return
	}
	if a.messageLog.HandleKey(ev) {
		return
	}
	if a.inspector.HandleKey(ev) {
		return
	}
	if a.snapshotSelector.HandleKey(ev) {
		return
	}
	if a.recordSearch.HandleKey(ev) {
		return
	}
	if a.filePicker.HandleKey(ev) {
		return
	}

	if a.paneEditor.IsActive() {
		a.handleEditorKey(ev)
		return
	}

	a.handleNormalModeKey(ev)
}

// handleEditorKey forwards a key to the pane editor and pushes any text
// change into the session, superseding the in-flight comparison
func (a *App) handleEditorKey(ev *tcell.EventKey) {
	a.paneEditor.HandleKey(ev)

	if a.paneEditor.WasTextChanged() {
		a.session.SetText(a.focusedSide, a.paneEditor.GetText())
		a.requestCompare()
	}

	if a.paneEditor.WasEscapePressed() {
		a.paneEditor.Stop()
		a.mode = NormalMode
	}
}

func (a *App) handleNormalModeKey(ev *tcell.EventKey) {
	if a.pendingReload && time.Since(a.pendingReloadTime) > 3*time.Second {
		a.pendingReload = false
	}

	if a.pendingPrefix != 0 {
		prefix := a.pendingPrefix
		a.pendingPrefix = 0
		if ev.Key() == tcell.KeyRune {
			if pb := a.GetPendingKeyBindingByPrefix(prefix); pb != nil {
				if binding, ok := pb.Sequences[ev.Rune()]; ok {
					binding.Handler(a)
				}
			}
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.pendingReload = false
		a.statusMsg = ""
		return
	case tcell.KeyEnter:
		a.startPaneEditor()
		return
	case tcell.KeyTab:
		a.focusedSide = a.focusedSide.Other()
		a.SetStatus(fmt.Sprintf("Focus: %s pane (%s)", a.focusedSide, a.session.Pane(a.focusedSide).Name))
		return
	case tcell.KeyCtrlF:
		a.openRecordSearch()
		return
	case tcell.KeyCtrlD, tcell.KeyPgDn:
		a.diffView.ScrollPageDown()
		return
	case tcell.KeyCtrlU, tcell.KeyPgUp:
		a.diffView.ScrollPageUp()
		return
	case tcell.KeyDown:
		a.diffView.SelectNext()
		return
	case tcell.KeyUp:
		a.diffView.SelectPrev()
		return
	case tcell.KeyHome:
		a.diffView.SelectFirst()
		return
	case tcell.KeyEnd:
		a.diffView.SelectLast()
		return
	}

	if ev.Key() != tcell.KeyRune {
		return
	}
	key := ev.Rune()

	if a.IsPendingKeyPrefix(key) {
		a.pendingPrefix = key
		return
	}
	if binding := a.GetKeybindingByKey(key); binding != nil {
		binding.Handler(a)
	}
}

// handleMouseEvent scrolls the diff view and routes clicks to the
// snapshot calendar while it is open
func (a *App) handleMouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		if !a.anyModalVisible() && !a.paneEditor.IsActive() {
			a.diffView.ScrollBy(-3)
		}
	case buttons&tcell.WheelDown != 0:
		if !a.anyModalVisible() && !a.paneEditor.IsActive() {
			a.diffView.ScrollBy(3)
		}
	case buttons&tcell.Button1 != 0:
		if a.snapshotSelector.IsVisible() {
			a.snapshotSelector.HandleMouse(x, y)
		}
	}
}

func (a *App) anyModalVisible() bool {
	return a.help.IsVisible() ||
		a.messageLog.IsVisible() ||
		a.inspector.IsVisible() ||
		a.snapshotSelector.IsVisible() ||
		a.recordSearch.IsVisible() ||
		a.filePicker.IsVisible()
}

// requestCompare issues a superseding comparison of the current pane
// texts, surfacing a persistent warning when they exceed the soft size
// limit
func (a *App) requestCompare() {
	if a.patchMode {
		return
	}

	oldText := a.session.Old.Text
	newText := a.session.New.Text

	limit := a.config.GetInt("max-compare-bytes")
	if limit > 0 && len(oldText)+len(newText) > limit {
		warning := fmt.Sprintf("inputs exceed %d bytes; comparison may be slow", limit)
		if a.warning == "" {
			a.messageLogger.AddMessage(warning)
			log.Printf("%s (old=%d new=%d)", warning, len(oldText), len(newText))
		}
		a.warning = warning
	} else {
		a.warning = ""
	}

	a.generation++
	a.comparer.Request(compareRequest{
		generation: a.generation,
		oldText:    oldText,
		newText:    newText,
	})
}

// applyCompareResult installs a finished comparison unless a newer
// request has superseded it
func (a *App) applyCompareResult(res compareResult) {
	if res.generation != a.generation {
		return
	}
	a.result = res.result
	a.diffView.SetRecords(res.result.Records)
	a.applyFilter()
}

// applyFilter pushes the filter expression into the view and refreshes
// the match counters and highlights
func (a *App) applyFilter() {
	expr := a.filterBar.Expr()
	a.diffView.SetFilter(expr)
	a.diffView.SetHighlightTerms(filter.TextTerms(expr))
	a.filterBar.SetMatchInfo(a.diffView.VisibleCount(), a.diffView.TotalCount())
}

// loadFileIntoPane reads a file into one side and recompares
func (a *App) loadFileIntoPane(side session.Side, path string) error {
	doc, err := input.Load(path)
	if err != nil {
		return err
	}
	a.patchMode = false
	a.patchPath = ""
	a.session.SetFile(side, doc.Path, doc.Name, doc.Text)
	a.requestCompare()
	return nil
}

// openSessionFile loads a saved session and makes its store the save
// target. A path that does not exist yet becomes a new session file
func (a *App) openSessionFile(path string) error {
	store := storage.NewStoreFor(path)
	if !store.FileExists() {
		a.store = store
		a.SetStatus("New session " + path)
		return nil
	}

	sess, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	a.patchMode = false
	a.patchPath = ""
	a.session = sess
	a.store = store
	a.requestCompare()
	a.SetStatus("Loaded session " + path)
	return nil
}

// openPatchFile shows a unified diff file as a read-only record view
func (a *App) openPatchFile(path string) error {
	doc, err := input.Load(path)
	if err != nil {
		return err
	}
	pf, err := patch.Parse(doc.Text)
	if err != nil {
		return fmt.Errorf("failed to parse patch: %w", err)
	}

	a.patchMode = true
	a.patchPath = path
	a.store = nil
	a.session = session.NewSession()
	if pf.OldName != "" {
		a.session.Old.Name = pf.OldName
	}
	if pf.NewName != "" {
		a.session.New.Name = pf.NewName
	}
	a.result = &diff.Result{Records: pf.Records, Stats: pf.Stats()}
	a.diffView.SetRecords(pf.Records)
	a.applyFilter()
	a.SetStatus(fmt.Sprintf("Patch %s (%s)", doc.Name, diff.FormatStats(a.result.Stats)))
	return nil
}

// reloadPanes re-reads every file-backed pane from disk
func (a *App) reloadPanes() error {
	if a.patchMode {
		if a.patchPath == "" {
			return fmt.Errorf("no patch file to reload")
		}
		return a.openPatchFile(a.patchPath)
	}

	reloaded := 0
	for _, side := range []session.Side{session.SideOld, session.SideNew} {
		pane := a.session.Pane(side)
		if pane.Path == "" {
			continue
		}
		doc, err := input.Load(pane.Path)
		if err != nil {
			return fmt.Errorf("failed to reload %s pane: %w", side, err)
		}
		a.session.SetFile(side, doc.Path, doc.Name, doc.Text)
		reloaded++
	}
	if reloaded == 0 {
		return fmt.Errorf("no file-backed panes to reload")
	}
	a.requestCompare()
	return nil
}

// Save writes the session through the current store and snapshots it
func (a *App) Save() error {
	if a.store == nil {
		return fmt.Errorf("no session file")
	}
	if a.store.ReadOnly() {
		return fmt.Errorf("%s is read-only", a.store.Path())
	}
	if err := a.store.Save(a.session); err != nil {
		return err
	}
	a.session.MarkSaved()
	a.saveSnapshot()
	return nil
}

// requestQuit stops the event loop, guarding unsaved changes unless
// forced
func (a *App) requestQuit(force bool) {
	if !force && a.session.Dirty() {
		a.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
		return
	}
	a.quit = true
}

// SetStatus sets the status message and records it in the message log
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
	a.messageLogger.AddMessage(msg)
}

// logLines adds lines to the message log last line first, so the
// newest-first viewer shows them in reading order
func (a *App) logLines(lines []string) {
	for i := len(lines) - 1; i >= 0; i-- {
		a.messageLogger.AddMessage(lines[i])
	}
}

// SetDebugMode enables or disables the key event display
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// startPaneEditor opens the focused pane's text in the in-app editor
func (a *App) startPaneEditor() {
	if a.patchMode {
		a.SetStatus("Patch view is read-only")
		return
	}
	pane := a.session.Pane(a.focusedSide)
	a.paneEditor.SetTabWidth(a.config.GetInt("tab-width"))
	a.paneEditor.SetMaxWidth(a.screen.GetWidth())
	a.paneEditor.Start(pane.Text)
	a.mode = InsertMode
	a.SetStatus(fmt.Sprintf("Editing %s pane (Esc to finish)", a.focusedSide))
}

// runExternalEditor round-trips the focused pane through $EDITOR
func (a *App) runExternalEditor() {
	if a.patchMode {
		a.SetStatus("Patch view is read-only")
		return
	}
	pane := a.session.Pane(a.focusedSide)

	if err := a.screen.Suspend(); err != nil {
		a.SetStatus("Failed to suspend screen: " + err.Error())
		return
	}
	name, text, changed, err := ui.RunExternalEditor(pane.Name, pane.Text, a.config)
	if resumeErr := a.screen.Resume(); resumeErr != nil {
		log.Printf("Failed to resume screen: %v", resumeErr)
	}

	if err != nil {
		a.SetStatus("External edit failed: " + err.Error())
		return
	}
	if !changed {
		a.SetStatus("No changes")
		return
	}

	a.session.SetText(a.focusedSide, text)
	a.session.Pane(a.focusedSide).Name = name
	a.requestCompare()
	a.SetStatus(fmt.Sprintf("Applied external edits to %s pane", a.focusedSide))
}

// handleReloadKey reloads both panes, asking for a second press first
// when there are unsaved changes
func (a *App) handleReloadKey() {
	if a.session.Dirty() && !a.pendingReload {
		a.pendingReload = true
		a.pendingReloadTime = time.Now()
		a.SetStatus("Buffers modified; press r again to reload and discard changes")
		return
	}
	a.pendingReload = false
	if err := a.reloadPanes(); err != nil {
		a.SetStatus("Reload failed: " + err.Error())
		return
	}
	a.SetStatus("Reloaded")
}

func (a *App) toggleViewMode() {
	a.diffView.ToggleViewMode()
	if a.diffView.SideBySide() {
		a.SetStatus("View: side-by-side")
	} else {
		a.SetStatus("View: unified")
	}
}

func (a *App) openInspector() {
	rec := a.diffView.SelectedRecord()
	if rec == nil {
		a.SetStatus("No record selected")
		return
	}
	a.inspector.Show(rec)
}

func (a *App) openRecordSearch() {
	a.recordSearch.SetRecords(a.diffView.VisibleRecords())
	a.recordSearch.Show()
}

// openFilePicker opens the file chooser for the focused pane, starting
// in the pane's current directory when it has one
func (a *App) openFilePicker() {
	a.filePicker.SetTarget(fmt.Sprintf("%s pane", a.focusedSide))
	prefix := ""
	if path := a.session.Pane(a.focusedSide).Path; path != "" {
		prefix = filepath.Dir(path) + "/"
	}
	a.filePicker.Show(prefix)
}

// showSplash reports whether the welcome screen should cover the view
func (a *App) showSplash() bool {
	return !a.patchMode &&
		!a.session.Dirty() &&
		a.session.Old.Text == "" && a.session.New.Text == "" &&
		a.session.Old.Path == "" && a.session.New.Path == ""
}

// render draws the whole screen: base layer, modal overlays, bottom bar
func (a *App) render() {
	a.screen.Clear()

	switch {
	case a.paneEditor.IsActive():
		a.renderEditor()
	case a.showSplash():
		a.splash.Show()
		a.splash.Render(a.screen)
	default:
		a.splash.Hide()
		a.renderHeader()
		a.diffView.Render(a.screen, 1)
	}

	a.snapshotSelector.Render(a.screen)
	a.recordSearch.Render(a.screen)
	a.filePicker.Render(a.screen)
	a.inspector.Render(a.screen)
	a.messageLog.Render(a.screen)
	a.help.Render(a.screen)

	a.renderBottomBar()

	a.screen.Show()
}

// paneLabel formats one side's name with modified and focus markers
func (a *App) paneLabel(side session.Side) string {
	pane := a.session.Pane(side)
	label := pane.Name
	if pane.Modified {
		label += "*"
	}
	if side == a.focusedSide {
		label = "[" + label + "]"
	}
	return label
}

func (a *App) renderHeader() {
	w := a.screen.GetWidth()
	style := a.screen.HeaderStyle()
	for x := 0; x < w; x++ {
		a.screen.SetCell(x, 0, ' ', style)
	}

	header := a.paneLabel(session.SideOld) + " | " + a.paneLabel(session.SideNew)
	a.screen.DrawStringLimited(1, 0, header, w-2, style)

	right := "unified"
	if a.diffView.SideBySide() {
		right = "side-by-side"
	}
	if a.currentSnapshotPath != "" {
		right = "snapshot " + right
	}
	if x := w - len(right) - 1; x > len(header)+2 {
		a.screen.DrawString(x, 0, right, style)
	}
}

func (a *App) renderEditor() {
	w, h := a.screen.Size()
	style := a.screen.HeaderStyle()
	for x := 0; x < w; x++ {
		a.screen.SetCell(x, 0, ' ', style)
	}
	title := fmt.Sprintf(" Editing %s pane: %s ", a.focusedSide, a.session.Pane(a.focusedSide).Name)
	a.screen.DrawStringLimited(1, 0, title, w-2, style)
	a.paneEditor.Render(a.screen, 0, 1, w, h-2)
}

// renderBottomBar draws whichever input bar is active, or the status
// line
func (a *App) renderBottomBar() {
	y := a.screen.GetHeight() - 1
	if y < 0 {
		return
	}
	if a.command.IsActive() {
		a.command.Render(a.screen, y)
		return
	}
	if a.filterBar.IsActive() {
		a.filterBar.Render(a.screen, y)
		return
	}
	a.renderStatusLine(y)
}

func (a *App) renderStatusLine(y int) {
	w := a.screen.GetWidth()
	base := a.screen.StatusMessageStyle()
	for x := 0; x < w; x++ {
		a.screen.SetCell(x, y, ' ', base)
	}

	x := 0
	mode := " " + a.mode + " "
	a.screen.DrawString(x, y, mode, a.screen.StatusModeStyle())
	x += len(mode) + 1

	stats := diff.Stats{}
	if a.result != nil {
		stats = a.result.Stats
	}
	summary := diff.FormatStats(stats)
	a.screen.DrawString(x, y, summary, base)
	x += len(summary) + 1

	if a.session.Dirty() {
		a.screen.DrawString(x, y, "[+]", a.screen.StatusModifiedStyle())
		x += 4
	}

	if a.filterBar.HasFilter() {
		info := fmt.Sprintf("/%s (%d/%d)", a.filterBar.InstalledQuery(),
			a.diffView.VisibleCount(), a.diffView.TotalCount())
		a.screen.DrawStringLimited(x, y, info, w-x, base)
		x += len(info) + 1
	}

	if a.warning != "" {
		a.screen.DrawStringLimited(x, y, a.warning, w-x, a.screen.StatusWarningStyle())
		x += len(a.warning) + 1
	}

	msg := ""
	if a.debugMode && a.lastKeyEvent != nil {
		msg = fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v",
			a.lastKeyEvent.Key(), a.lastKeyEvent.Rune(), a.lastKeyEvent.Modifiers())
	} else if time.Since(a.statusTime) < 3*time.Second {
		msg = a.statusMsg
	}
	if msg != "" && x < w {
		a.screen.DrawStringLimited(x, y, msg, w-x, base)
	}
}
