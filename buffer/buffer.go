package buffer

import (
	"io"
	"iter"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-enry/go-enry/v2"
)

// Extension is appended to file names that do not already carry it.
const Extension = ".txt"

type Buffer struct {
	Lines        []string
	Path         string    // normalized path of the last successful load or save
	Dirty        bool      // modified since the last load or save
	Binary       bool      // last loaded file looked like binary content
	LastSaveTime time.Time // Track when file was last saved
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// NormalizeFilename appends Extension unless name already ends with it.
// The check is case-sensitive: "x.TXT" becomes "x.TXT.txt".
func NormalizeFilename(name string) string {
	if strings.HasSuffix(name, Extension) {
		return name
	}
	return name + Extension
}

// Load replaces the whole buffer with the lines of the named file. On error
// the buffer is left exactly as it was.
func (b *Buffer) Load(name string) error {
	path := NormalizeFilename(name)
	f, err := os.Open(path)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return &IOError{Op: "read", Path: path, Err: err}
	}

	b.Lines = splitLines(data)
	b.Path = path
	b.Dirty = false
	b.Binary = enry.IsBinary(data)
	return nil
}

// splitLines drops the terminator of every line. A final line without a
// terminator is still a line; an empty file has no lines.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Save writes every line followed by "\n" to the named file, creating or
// truncating it.
func (b *Buffer) Save(name string) error {
	path := NormalizeFilename(name)
	if err := os.WriteFile(path, []byte(b.Content()), 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	b.Path = path
	b.Dirty = false
	b.LastSaveTime = time.Now()
	return nil
}

// Content returns the buffer exactly as Save writes it.
func (b *Buffer) Content() string {
	var sb strings.Builder
	for _, line := range b.Lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Buffer) Len() int { return len(b.Lines) }

// Line returns the text of the 1-based line n.
func (b *Buffer) Line(n int) (string, error) {
	if err := b.check(n); err != nil {
		return "", err
	}
	return b.Lines[n-1], nil
}

// Numbered yields each line with its 1-based line number. The sequence can be
// ranged over any number of times and reflects the buffer at iteration time.
func (b *Buffer) Numbered() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, line := range b.Lines {
			if !yield(i+1, line) {
				return
			}
		}
	}
}

// Insert appends text as the new last line.
func (b *Buffer) Insert(text string) {
	b.Lines = append(b.Lines, text)
	b.Dirty = true
}

// Replace overwrites the 1-based line n.
func (b *Buffer) Replace(n int, text string) error {
	if err := b.check(n); err != nil {
		return err
	}
	b.Lines[n-1] = text
	b.Dirty = true
	return nil
}

// Delete removes the 1-based line n; later lines move up by one.
func (b *Buffer) Delete(n int) error {
	if err := b.check(n); err != nil {
		return err
	}
	b.Lines = slices.Delete(b.Lines, n-1, n)
	b.Dirty = true
	return nil
}

func (b *Buffer) check(n int) error {
	if n < 1 || n > len(b.Lines) {
		return &IndexError{Line: n, Len: len(b.Lines)}
	}
	return nil
}
