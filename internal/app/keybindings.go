package app

import (
	"fmt"
	"sort"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// KeyBinding represents a single-key action in normal mode
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// PendingKeyBinding represents a two-key sequence: the prefix waits for
// a second key chosen from Sequences
type PendingKeyBinding struct {
	Prefix      rune
	Description string
	Sequences   map[rune]KeyBinding
}

// GetSequences returns the sequence descriptions for the help screen
func (p *PendingKeyBinding) GetSequences() map[rune]string {
	sequences := make(map[rune]string)
	for key, binding := range p.Sequences {
		sequences[key] = binding.Description
	}
	return sequences
}

// InitializeKeybindings sets up the normal mode key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{Key: 'j', Description: "Next record", Handler: func(app *App) {
			app.diffView.SelectNext()
		}},
		{Key: 'k', Description: "Previous record", Handler: func(app *App) {
			app.diffView.SelectPrev()
		}},
		{Key: 'G', Description: "Last record", Handler: func(app *App) {
			app.diffView.SelectLast()
		}},
		{Key: 'n', Description: "Next change", Handler: func(app *App) {
			app.diffView.NextChange()
		}},
		{Key: 'N', Description: "Previous change", Handler: func(app *App) {
			app.diffView.PrevChange()
		}},
		{Key: 'z', Description: "Fold/unfold unchanged run under cursor", Handler: func(app *App) {
			app.diffView.ToggleFold()
		}},
		{Key: 'Z', Description: "Fold/unfold all unchanged runs", Handler: func(app *App) {
			app.diffView.ToggleAllFolds()
		}},
		{Key: 't', Description: "Toggle unified/side-by-side view", Handler: func(app *App) {
			app.toggleViewMode()
		}},
		{Key: 'i', Description: "Edit the focused pane", Handler: func(app *App) {
			app.startPaneEditor()
		}},
		{Key: 'I', Description: "Inspect the selected record", Handler: func(app *App) {
			app.openInspector()
		}},
		{Key: 'e', Description: "Edit the focused pane in the external editor", Handler: func(app *App) {
			app.runExternalEditor()
		}},
		{Key: 'o', Description: "Open a file into the focused pane", Handler: func(app *App) {
			app.openFilePicker()
		}},
		{Key: 'r', Description: "Reload both panes from disk", Handler: func(app *App) {
			app.handleReloadKey()
		}},
		{Key: 's', Description: "Open the snapshot selector", Handler: func(app *App) {
			app.openSnapshotSelector()
		}},
		{Key: '[', Description: "Previous snapshot (this session)", Handler: func(app *App) {
			app.handlePrevSnapshotSameSession()
		}},
		{Key: ']', Description: "Next snapshot (this session)", Handler: func(app *App) {
			app.handleNextSnapshotSameSession()
		}},
		{Key: '{', Description: "Previous snapshot (any session)", Handler: func(app *App) {
			app.handlePrevSnapshotAnySession()
		}},
		{Key: '}', Description: "Next snapshot (any session)", Handler: func(app *App) {
			app.handleNextSnapshotAnySession()
		}},
		{Key: '/', Description: "Filter records", Handler: func(app *App) {
			app.filterBar.Start()
		}},
		{Key: ':', Description: "Command mode", Handler: func(app *App) {
			app.command.Start()
		}},
		{Key: 'm', Description: "Message log", Handler: func(app *App) {
			app.messageLog.Toggle()
		}},
		{Key: '?', Description: "Key reference", Handler: func(app *App) {
			app.help.Toggle()
		}},
		{Key: 'q', Description: "Quit", Handler: func(app *App) {
			app.requestQuit(false)
		}},
	}
}

// InitializePendingKeybindings sets up two-key sequences
func (a *App) InitializePendingKeybindings() []PendingKeyBinding {
	return []PendingKeyBinding{
		{
			Prefix:      'g',
			Description: "Go to... (g + key)",
			Sequences: map[rune]KeyBinding{
				'g': {
					Key:         'g',
					Description: "Go to first record",
					Handler: func(app *App) {
						app.diffView.SelectFirst()
					},
				},
				'f': {
					Key:         'f',
					Description: "Go to first change",
					Handler: func(app *App) {
						app.diffView.SelectFirst()
						if rec := app.diffView.SelectedRecord(); rec != nil && rec.Kind == diff.RecordUnchanged {
							app.diffView.NextChange()
						}
					},
				},
			},
		},
	}
}

// GetKeybindingByKey finds a keybinding by its key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}

// GetPendingKeyBindingByPrefix finds a pending keybinding by its prefix
func (a *App) GetPendingKeyBindingByPrefix(prefix rune) *PendingKeyBinding {
	for i := range a.pendingKeybindings {
		if a.pendingKeybindings[i].Prefix == prefix {
			return &a.pendingKeybindings[i]
		}
	}
	return nil
}

// IsPendingKeyPrefix reports whether the key starts a two-key sequence
func (a *App) IsPendingKeyPrefix(key rune) bool {
	return a.GetPendingKeyBindingByPrefix(key) != nil
}

// buildHelpContent assembles the help screen text from the keybinding
// tables plus the keys and commands that live outside them
func (a *App) buildHelpContent() []string {
	lines := []string{
		"Movement:",
		"  j / k, arrows   Move through records",
		"  Ctrl+D / PgDn   Page down",
		"  Ctrl+U / PgUp   Page up",
		"  Home / End      First / last record",
		"",
		"Keys:",
	}

	for _, kb := range a.keybindings {
		lines = append(lines, fmt.Sprintf("  %-15s %s", string(kb.Key), kb.Description))
	}
	lines = append(lines,
		fmt.Sprintf("  %-15s %s", "Tab", "Switch the focused pane"),
		fmt.Sprintf("  %-15s %s", "Enter", "Edit the focused pane"),
		fmt.Sprintf("  %-15s %s", "Ctrl+F", "Search records (fuzzy)"),
	)

	for _, pb := range a.pendingKeybindings {
		lines = append(lines, "", pb.Description+":")
		sequences := pb.GetSequences()
		keys := make([]rune, 0, len(sequences))
		for key := range sequences {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, key := range keys {
			lines = append(lines, fmt.Sprintf("  %-15s %s", string(pb.Prefix)+string(key), sequences[key]))
		}
	}

	lines = append(lines,
		"",
		"Commands:",
		"  :w [path]  :wq  :q  :q!",
		"  :open old|new <path>   :reload[!]   :compare",
		"  :set <key> <value>     :set list    :theme <name>",
		"  :filter <query>        :explain",
		"  :export markdown|json|jsonl|fields <path>",
		"  :snapshot   :snapshots   :messages   :help",
		"",
		"Filter query language:",
		"  word  \"phrase\"  /regex/  ~fuzzy",
		"  k:added|removed|changed|same",
		"  o:<N>  n:>=10  len:>80",
		"  - negates, + and | combine, ( ) group",
	)

	return lines
}
