package editor

import (
	"errors"

	"txtedit/console"
)

const (
	choiceOpen = iota + 1
	choiceSave
	choiceEdit
	choiceShow
	choiceExit
)

// Run shows the main menu until the user picks Exit. It returns nil on Exit
// and the console error (normally io.EOF) when input runs out.
func (e *Editor) Run() error {
	if last := e.lastFile(); last != "" {
		e.log.Info("last used file", "path", last)
	}
	for {
		e.printNotices()
		e.con.Print(menuText)

		choice, err := e.con.ReadMenuChoice()
		if errors.Is(err, console.ErrNotANumber) {
			e.con.Println("Invalid input. Please enter a number between 1 and 5.")
			continue
		}
		if err != nil {
			return err
		}

		switch choice {
		case choiceOpen:
			name, err := e.con.Prompt(e.openPrompt())
			if err != nil {
				return err
			}
			_ = e.OpenFile(name)
		case choiceSave:
			name, err := e.con.Prompt("Enter filename to save: ")
			if err != nil {
				return err
			}
			_ = e.SaveFile(name)
		case choiceEdit:
			if err := e.EditContent(); err != nil {
				return err
			}
		case choiceShow:
			e.ShowContent()
		case choiceExit:
			e.con.Println("Exiting...")
			return nil
		default:
			e.con.Println("Invalid choice. Please try again.")
		}
	}
}

func (e *Editor) openPrompt() string {
	if last := e.lastFile(); last != "" {
		return "Enter filename to open [last: " + last + "]: "
	}
	return "Enter filename to open: "
}
