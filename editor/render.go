package editor

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

const helpText = `Commands:
  add             - Add a new line
  edit            - Edit a line with <text>
  delete          - Delete a line
  show            - Show current content
  save            - Save changes
  end             - End editing session
`

const menuText = `Simple Text Editor
1. Open File
2. Save File
3. Edit Content
4. Show Content
5. Exit
`

const rule = "--------------------"

// displayLine clips s to the configured display width.
func (e *Editor) displayLine(s string) string {
	w := e.cfg.MaxDisplayWidth
	if w <= 0 || runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}

// printNumbered writes "N: text" for every line.
func (e *Editor) printNumbered() {
	for n, line := range e.buf.Numbered() {
		e.con.Print(strconv.Itoa(n) + ": " + e.displayLine(line) + "\n")
	}
}

// ShowContent prints the buffer between two rules, without line numbers.
func (e *Editor) ShowContent() {
	e.con.Println("Current Content:")
	e.con.Println(rule)
	for _, line := range e.buf.Lines {
		e.con.Println(e.displayLine(line))
	}
	e.con.Println(rule)
}
