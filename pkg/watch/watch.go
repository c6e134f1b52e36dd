// Package watch reports changes to a single file.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temporary file and renaming it over the
// original are still noticed. Bursts of events are coalesced into one
// notification after a quiet period.
package watch

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/netcanvas/pkg/errors"
)

// DefaultDelay is the quiet period after the last event before a change is
// reported.
const DefaultDelay = 200 * time.Millisecond

// File watches one file for writes, creates and renames.
type File struct {
	path    string
	delay   time.Duration
	logger  *log.Logger
	watcher *fsnotify.Watcher
}

// Option configures a File watcher.
type Option func(*File)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(f *File) {
		if d > 0 {
			f.delay = d
		}
	}
}

// WithLogger sets the logger for watcher errors.
func WithLogger(l *log.Logger) Option {
	return func(f *File) {
		if l != nil {
			f.logger = l
		}
	}
}

// New starts watching path. Close releases the underlying watcher; Run
// closes it on return.
func New(path string, opts ...Option) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(abs))
	}

	f := &File{
		path:    abs,
		delay:   DefaultDelay,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		watcher: w,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Path returns the absolute path being watched.
func (f *File) Path() string { return f.path }

// Close stops the watcher.
func (f *File) Close() error { return f.watcher.Close() }

// Run calls onChange after every burst of changes to the file until ctx is
// canceled. onChange runs on the Run goroutine.
func (f *File) Run(ctx context.Context, onChange func(path string)) error {
	defer f.watcher.Close()

	timer := time.NewTimer(f.delay)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-f.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path || !relevant(ev.Op) {
				continue
			}
			pending = true
			timer.Reset(f.delay)

		case <-timer.C:
			if pending {
				pending = false
				onChange(f.path)
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("watcher error", "path", f.path, "error", err)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
