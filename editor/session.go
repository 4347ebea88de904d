package editor

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"txtedit/buffer"
)

const (
	msgInvalidLine    = "Invalid line number."
	msgUnknownCommand = "Unknown command. Type 'help' for a list of commands."
)

// session is one pass through the edit loop, from entering "Edit Content"
// until the end command.
type session struct {
	*Editor
	log *slog.Logger
}

// EditContent runs the command interpreter until "end". Unsaved changes stay
// in the buffer and are not written anywhere. The only error returned is the
// console's, typically io.EOF.
func (e *Editor) EditContent() error {
	s := &session{Editor: e, log: e.log.With("session", uuid.NewString())}
	s.log.Debug("edit session started", "lines", e.buf.Len())
	e.con.Println("Editing content (type 'help' for commands):")

	for {
		e.printNotices()
		cmd, err := e.con.Prompt("> ")
		if err != nil {
			s.log.Debug("edit session aborted", "err", err)
			return err
		}

		switch cmd {
		case "help":
			e.con.Print(helpText)
		case "add":
			err = s.add()
		case "edit":
			err = s.edit()
		case "delete":
			err = s.delete()
		case "show":
			e.printNumbered()
		case "save":
			err = s.save()
		case "end":
			s.log.Debug("edit session ended", "lines", e.buf.Len(), "dirty", e.buf.Dirty)
			return nil
		default:
			e.con.Println(msgUnknownCommand)
		}
		if err != nil {
			s.log.Debug("edit session aborted", "command", cmd, "err", err)
			return err
		}
	}
}

func (s *session) add() error {
	text, err := s.con.Prompt("Enter text to add: ")
	if err != nil {
		return err
	}
	s.buf.Insert(text)
	return nil
}

func (s *session) edit() error {
	s.printNumbered()
	s.con.Print("Enter line number to edit: ")
	n, err := s.con.ReadLineNumber()
	if err != nil {
		return err
	}
	if _, err := s.buf.Line(n); err != nil {
		return s.invalidLine(err)
	}
	text, err := s.con.Prompt("Enter new text for line " + strconv.Itoa(n) + ": ")
	if err != nil {
		return err
	}
	return s.invalidLine(s.buf.Replace(n, text))
}

func (s *session) delete() error {
	s.printNumbered()
	s.con.Print("Enter line number to delete: ")
	n, err := s.con.ReadLineNumber()
	if err != nil {
		return err
	}
	return s.invalidLine(s.buf.Delete(n))
}

func (s *session) save() error {
	name, err := s.con.Prompt("Enter filename to save: ")
	if err != nil {
		return err
	}
	// The outcome has already been reported on the console.
	_ = s.SaveFile(name)
	return nil
}

// invalidLine reports a line-number error and swallows it; anything else is
// passed through.
func (s *session) invalidLine(err error) error {
	var idx *buffer.IndexError
	if !errors.As(err, &idx) {
		return err
	}
	s.log.Info("line number out of range", "line", idx.Line, "len", idx.Len)
	s.con.Println(msgInvalidLine)
	return nil
}
