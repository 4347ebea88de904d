package editor

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	watchDebounce   = 100 * time.Millisecond
	saveGracePeriod = time.Second
)

// fileWatcher reports changes made by other programs to the file the
// editor last loaded or saved. It never touches the buffer; notices are
// queued for the command loops to print.
type fileWatcher struct {
	w       *fsnotify.Watcher
	log     *slog.Logger
	notices chan string

	mu       sync.Mutex
	path     string // absolute path of the watched file
	dir      string // directory registered with fsnotify
	lastSave time.Time
}

func newFileWatcher(log *slog.Logger) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &fileWatcher{
		w:       w,
		log:     log,
		notices: make(chan string, 16),
	}
	go fw.loop()
	return fw, nil
}

// Watch switches the watch to path.
func (fw *fileWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if dir != fw.dir {
		// Watching the directory keeps working across rename-and-replace saves.
		if err := fw.w.Add(dir); err != nil {
			return err
		}
		if fw.dir != "" {
			fw.w.Remove(fw.dir)
		}
		fw.dir = dir
	}
	fw.path = abs
	return nil
}

// Saving must be called right before the editor writes the watched file so
// the resulting events are not reported.
func (fw *fileWatcher) Saving() {
	fw.mu.Lock()
	fw.lastSave = time.Now()
	fw.mu.Unlock()
}

// Notices returns the queued messages without blocking.
func (fw *fileWatcher) Notices() []string {
	var out []string
	for {
		select {
		case n := <-fw.notices:
			out = append(out, n)
		default:
			return out
		}
	}
}

func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}

func (fw *fileWatcher) loop() {
	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	var pending []fsnotify.Event

	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			pending = append(pending, ev)
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			seen := make(map[string]bool)
			for _, ev := range pending {
				if msg := fw.handle(ev); msg != "" && !seen[msg] {
					seen[msg] = true
					fw.post(msg)
				}
			}
			pending = nil

		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.log.Warn("file watcher error", "err", err)
		}
	}
}

// handle returns the notice for ev, or "" when ev is not worth reporting.
func (fw *fileWatcher) handle(ev fsnotify.Event) string {
	fw.mu.Lock()
	path, lastSave := fw.path, fw.lastSave
	fw.mu.Unlock()

	if filepath.Clean(ev.Name) != path {
		return ""
	}
	name := filepath.Base(path)

	switch {
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		return "Warning: " + name + " was removed externally."

	case ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create):
		info, err := os.Stat(path)
		if err != nil {
			return ""
		}
		if !lastSave.IsZero() && info.ModTime().Sub(lastSave) <= saveGracePeriod {
			return ""
		}
		return "Warning: " + name + " was modified externally."
	}
	return ""
}

// post drops the notice when the queue is full.
func (fw *fileWatcher) post(msg string) {
	fw.log.Info("external change", "notice", msg)
	select {
	case fw.notices <- msg:
	default:
	}
}
