// Package console reads user input one line at a time and writes prompts.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
)

// ErrNotANumber is returned by ReadMenuChoice when the line does not start
// with an integer.
var ErrNotANumber = errors.New("input is not a number")

const invalidLineNumber = "Invalid input. Please enter a valid line number: "

type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *Reader) Print(s string) {
	io.WriteString(r.out, s)
}

func (r *Reader) Println(s string) {
	io.WriteString(r.out, s+"\n")
}

func (r *Reader) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// ReadLine returns the next line without its "\n" or "\r\n" terminator. A
// last line without a terminator is returned normally; io.EOF is returned
// only once no input is left.
func (r *Reader) ReadLine() (string, error) {
	s, err := r.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

// Prompt prints msg and reads one line.
func (r *Reader) Prompt(msg string) (string, error) {
	r.Print(msg)
	return r.ReadLine()
}

// ReadLineNumber reads lines until one parses as an integer in its entirety,
// printing a hint after each failure. Range checks are left to the caller.
// There is no way to cancel short of running out of input.
func (r *Reader) ReadLineNumber() (int, error) {
	for {
		line, err := r.ReadLine()
		if err != nil {
			return 0, err
		}
		if n, ok := ParseLineNumber(line); ok {
			return n, nil
		}
		r.Print(invalidLineNumber)
	}
}

// ParseLineNumber accepts leading whitespace, an optional sign and decimal
// digits, and nothing after them.
func ParseLineNumber(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimLeftFunc(s, unicode.IsSpace))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ReadMenuChoice reads the integer at the start of the next non-blank line
// and discards the rest of that line. A line that does not start with an
// integer is consumed and reported as ErrNotANumber.
func (r *Reader) ReadMenuChoice() (int, error) {
	for {
		line, err := r.ReadLine()
		if err != nil {
			return 0, err
		}
		s := strings.TrimLeftFunc(line, unicode.IsSpace)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(leadingInt(s))
		if err != nil {
			return 0, ErrNotANumber
		}
		return n, nil
	}
}

func leadingInt(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
