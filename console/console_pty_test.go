//go:build linux || darwin

package console

import (
	"io"
	"testing"

	"github.com/creack/pty"
)

func TestReaderOverPTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if !IsTerminal(tty) {
		t.Fatalf("expected pty slave to be a terminal")
	}

	go ptmx.Write([]byte("oops\n42\n"))

	r := NewReader(tty, io.Discard)
	n, err := r.ReadLineNumber()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Fatalf("expected 42, got %d", n)
	}
}
