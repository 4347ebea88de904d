package editor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"txtedit/config"
)

func newTestEditor(t *testing.T, input string, opts ...Option) (*Editor, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := config.Default()
	cfg.WatchFiles = false
	var out bytes.Buffer
	e := New(cfg, strings.NewReader(input), &out, opts...)
	t.Cleanup(func() { e.Close() })
	return e, &out
}

func TestEditSessionAddEditDelete(t *testing.T) {
	e, out := newTestEditor(t, "add\na\nadd\nb\nadd\nc\nedit\n2\nB\ndelete\n1\nshow\nend\n")

	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "c"}, e.Buffer().Lines); diff != "" {
		t.Fatalf("unexpected buffer (-want +got):\n%s", diff)
	}

	got := out.String()
	for _, want := range []string{
		"Editing content (type 'help' for commands):\n",
		"Enter text to add: ",
		"1: a\n2: b\n3: c\nEnter line number to edit: Enter new text for line 2: ",
		"Enter line number to delete: ",
		"1: B\n2: c\n> ",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestEditSessionHelp(t *testing.T) {
	e, out := newTestEditor(t, "help\nend\n")
	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), helpText) {
		t.Fatalf("expected help text, got:\n%s", out.String())
	}
	if e.Buffer().Len() != 0 || e.Buffer().Dirty {
		t.Fatalf("help must not touch the buffer")
	}
}

func TestEditSessionInvalidLineNumber(t *testing.T) {
	e, out := newTestEditor(t, "add\na\nedit\n5\ndelete\n0\nend\n")

	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, e.Buffer().Lines); diff != "" {
		t.Fatalf("unexpected buffer (-want +got):\n%s", diff)
	}
	if got := strings.Count(out.String(), msgInvalidLine+"\n"); got != 2 {
		t.Fatalf("expected 2 invalid line messages, got %d:\n%s", got, out.String())
	}
	if strings.Contains(out.String(), "Enter new text") {
		t.Fatalf("out-of-range edit must not prompt for text:\n%s", out.String())
	}
}

func TestEditSessionEmptyBuffer(t *testing.T) {
	e, out := newTestEditor(t, "edit\n1\ndelete\n1\nend\n")
	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(out.String(), msgInvalidLine); got != 2 {
		t.Fatalf("expected every line number to be invalid on an empty buffer, got %d", got)
	}
}

func TestEditSessionRetriesNonNumericLineNumber(t *testing.T) {
	e, out := newTestEditor(t, "add\na\nedit\nabc\n1x\n\n1\nA\nend\n")

	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"A"}, e.Buffer().Lines); diff != "" {
		t.Fatalf("unexpected buffer (-want +got):\n%s", diff)
	}
	if got := strings.Count(out.String(), "Invalid input. Please enter a valid line number: "); got != 3 {
		t.Fatalf("expected 3 retries, got %d:\n%s", got, out.String())
	}
}

func TestEditSessionUnknownCommands(t *testing.T) {
	e, out := newTestEditor(t, "Add\nadd \n\nquit\nend\n")

	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(out.String(), msgUnknownCommand); got != 4 {
		t.Fatalf("expected 4 unknown command hints, got %d:\n%s", got, out.String())
	}
	if e.Buffer().Len() != 0 {
		t.Fatalf("unknown commands must not touch the buffer")
	}
}

func TestEditSessionAcceptsCRLFInput(t *testing.T) {
	e, _ := newTestEditor(t, "add\r\nhello\r\nend\r\n")
	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"hello"}, e.Buffer().Lines); diff != "" {
		t.Fatalf("unexpected buffer (-want +got):\n%s", diff)
	}
}

func TestEditSessionSave(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "notes")
	e, out := newTestEditor(t, "add\nhello\nsave\n"+name+"\nend\n")

	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(name + ".txt")
	if err != nil {
		t.Fatalf("expected notes.txt to be written: %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("expected %q, got %q", "hello\n", data)
	}
	if !strings.Contains(out.String(), "Enter filename to save: File saved successfully.\n") {
		t.Fatalf("expected save confirmation, got:\n%s", out.String())
	}
}

func TestEditSessionSaveFailureContinues(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "no", "such", "dir", "f")
	e, out := newTestEditor(t, "add\nx\nsave\n"+bad+"\nshow\nend\n")

	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Failed to save file.\n") {
		t.Fatalf("expected failure message, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "1: x\n") {
		t.Fatalf("expected the session to continue after a failed save:\n%s", out.String())
	}
}

func TestEditSessionEndDoesNotSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(path, []byte("original\n"), 0644); err != nil {
		t.Fatal(err)
	}
	e, _ := newTestEditor(t, "add\nchanged\nend\n")
	if err := e.OpenFile(path); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "original\n" {
		t.Fatalf("end must not save, file now %q", data)
	}
	if !e.Buffer().Dirty {
		t.Fatalf("expected unsaved changes to remain in the buffer")
	}
}

func TestEditSessionReturnsEOF(t *testing.T) {
	tests := []string{
		"",
		"add\n",
		"edit\n",
		"add\na\nedit\n1\n",
		"save\n",
		"show\n",
	}
	for _, input := range tests {
		e, _ := newTestEditor(t, input)
		if err := e.EditContent(); !errors.Is(err, io.EOF) {
			t.Errorf("input %q: expected io.EOF, got %v", input, err)
		}
	}
}

func TestDisplayWidthTruncatesListing(t *testing.T) {
	e, out := newTestEditor(t, "show\nend\n")
	e.cfg.MaxDisplayWidth = 5
	e.Buffer().Lines = []string{"short", "much longer line", "日本語テキスト"}

	if err := e.EditContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"1: short\n", "2: much…\n", "3: 日本…\n"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out.String())
		}
	}
	if e.Buffer().Lines[1] != "much longer line" {
		t.Fatalf("truncation must only affect display")
	}
}
