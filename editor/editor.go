package editor

import (
	"errors"
	"io"
	"log/slog"

	"txtedit/buffer"
	"txtedit/config"
	"txtedit/console"
	"txtedit/store"
)

// History records file accesses. *store.Store implements it.
type History interface {
	Record(op store.Op, path string) error
	Last() (store.Entry, error)
}

// Editor owns the single buffer of an interactive session together with the
// console it talks to.
type Editor struct {
	buf     *buffer.Buffer
	cfg     *config.Config
	con     *console.Reader
	log     *slog.Logger
	history History
	watcher *fileWatcher
}

type Option func(*Editor)

func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithHistory records successful opens and saves in h.
func WithHistory(h History) Option {
	return func(e *Editor) { e.history = h }
}

// New creates an editor with an empty buffer that reads commands from in and
// writes prompts and messages to out.
func New(cfg *config.Config, in io.Reader, out io.Writer, opts ...Option) *Editor {
	e := &Editor{
		buf: buffer.NewBuffer(),
		cfg: cfg,
		con: console.NewReader(in, out),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	if cfg.WatchFiles {
		w, err := newFileWatcher(e.log)
		if err != nil {
			// Continue without watching.
			e.log.Warn("file watcher unavailable", "err", err)
		} else {
			e.watcher = w
		}
	}
	return e
}

func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Close stops background work. The buffer is not saved.
func (e *Editor) Close() error {
	if e.watcher != nil {
		return e.watcher.Close()
	}
	return nil
}

// OpenFile loads name into the buffer and reports the outcome on the console.
// On failure the buffer keeps its previous content.
func (e *Editor) OpenFile(name string) error {
	if err := e.buf.Load(name); err != nil {
		e.log.Warn("open failed", "name", name, "err", err)
		e.con.Println("Failed to open file.")
		return err
	}
	e.log.Info("opened file", "path", e.buf.Path, "lines", e.buf.Len())
	e.con.Println("File opened successfully.")
	if e.buf.Binary {
		e.con.Println("Warning: file appears to be binary.")
	}
	e.track(store.OpOpen)
	return nil
}

// SaveFile writes the buffer to name and reports the outcome on the console.
func (e *Editor) SaveFile(name string) error {
	if e.watcher != nil {
		e.watcher.Saving()
	}
	if err := e.buf.Save(name); err != nil {
		e.log.Warn("save failed", "name", name, "err", err)
		e.con.Println("Failed to save file.")
		return err
	}
	e.log.Info("saved file", "path", e.buf.Path, "lines", e.buf.Len())
	e.con.Println("File saved successfully.")
	e.track(store.OpSave)
	return nil
}

// track points the watcher and the history at the buffer's current path.
func (e *Editor) track(op store.Op) {
	path := e.buf.Path
	if e.watcher != nil {
		if err := e.watcher.Watch(path); err != nil {
			e.log.Warn("cannot watch file", "path", path, "err", err)
		}
	}
	if e.history != nil {
		if err := e.history.Record(op, path); err != nil {
			e.log.Warn("cannot record history", "path", path, "err", err)
		}
	}
}

// lastFile returns the most recently used file, or "" if unknown.
func (e *Editor) lastFile() string {
	if e.history == nil {
		return ""
	}
	entry, err := e.history.Last()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.log.Warn("cannot read history", "err", err)
		}
		return ""
	}
	return entry.Path
}

// printNotices prints messages queued by the file watcher.
func (e *Editor) printNotices() {
	if e.watcher == nil {
		return
	}
	for _, n := range e.watcher.Notices() {
		e.con.Println(n)
	}
}
