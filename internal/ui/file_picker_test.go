package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func typePickerInput(w *FilePicker, s string) {
	for _, r := range s {
		w.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func pickerTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"alpha.txt", "beta.txt", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFilePickerListsDirectoriesFirstWithoutDotFiles(t *testing.T) {
	dir := pickerTestDir(t)

	w := NewFilePicker()
	w.Show(dir + "/")

	if len(w.matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(w.matches))
	}
	if !w.matches[0].isDir || w.matches[0].name != "sub" {
		t.Errorf("matches[0] = %+v, want directory sub", w.matches[0])
	}
	if w.matches[1].name != "alpha.txt" || w.matches[2].name != "beta.txt" {
		t.Errorf("files = %q, %q, want alpha.txt, beta.txt", w.matches[1].name, w.matches[2].name)
	}
}

func TestFilePickerSubstringFilter(t *testing.T) {
	dir := pickerTestDir(t)

	w := NewFilePicker()
	w.Show(dir + "/")
	typePickerInput(w, "ETA")

	if len(w.matches) != 1 || w.matches[0].name != "beta.txt" {
		t.Fatalf("matches = %+v, want only beta.txt", w.matches)
	}
}

func TestFilePickerDotFilesOnDemand(t *testing.T) {
	dir := pickerTestDir(t)

	w := NewFilePicker()
	w.Show(dir + "/")

	w.HandleKey(tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModNone))
	if len(w.matches) != 4 {
		t.Errorf("after Ctrl+D: got %d matches, want 4", len(w.matches))
	}

	w.HandleKey(tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModNone))
	if len(w.matches) != 3 {
		t.Errorf("after second Ctrl+D: got %d matches, want 3", len(w.matches))
	}
}

func TestFilePickerEnterDescendsIntoDirectory(t *testing.T) {
	dir := pickerTestDir(t)

	w := NewFilePicker()
	w.Show(dir + "/")
	typePickerInput(w, "sub")
	w.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if !w.IsVisible() {
		t.Error("picker should stay open after descending into a directory")
	}
	want := dir + "/sub/"
	if w.input.GetText() != want {
		t.Errorf("input = %q, want %q", w.input.GetText(), want)
	}
	if len(w.matches) != 0 {
		t.Errorf("empty directory should have no matches, got %d", len(w.matches))
	}
}

func TestFilePickerEnterSelectsFile(t *testing.T) {
	dir := pickerTestDir(t)

	w := NewFilePicker()
	selected := ""
	w.SetOnSelect(func(path string) { selected = path })
	w.Show(dir + "/")
	typePickerInput(w, "beta")
	w.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if selected != dir+"/beta.txt" {
		t.Errorf("selected = %q, want %q", selected, dir+"/beta.txt")
	}
	if w.IsVisible() {
		t.Error("picker should close after selecting a file")
	}
}

func TestFilePickerEnterFallsBackToTypedPath(t *testing.T) {
	w := NewFilePicker()
	selected := ""
	w.SetOnSelect(func(path string) { selected = path })
	w.Show("")
	typePickerInput(w, "no/such/file.txt")

	if w.errMsg == "" {
		t.Error("listing a missing directory should set an error")
	}

	w.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if selected != "no/such/file.txt" {
		t.Errorf("selected = %q, want the typed path", selected)
	}
}

func TestFilePickerTabCompletes(t *testing.T) {
	dir := pickerTestDir(t)

	w := NewFilePicker()
	w.Show(dir + "/")
	typePickerInput(w, "alp")
	w.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))

	want := dir + "/alpha.txt"
	if w.input.GetText() != want {
		t.Errorf("input = %q, want %q", w.input.GetText(), want)
	}
	if !w.IsVisible() {
		t.Error("picker should stay open after completion")
	}
}
