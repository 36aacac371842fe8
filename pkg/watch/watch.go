package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before calling back.
const DefaultDebounce = 250 * time.Millisecond

// Watcher calls OnChange after note files under the watched paths change.
// Events are consumed on the goroutine running Run, so OnChange never runs
// concurrently with itself.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	OnChange func() error

	logger *logrus.Entry
}

// New creates a Watcher.
func New(paths []string, onChange func() error, logger *logrus.Entry) *Watcher {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	return &Watcher{
		Paths:    paths,
		Debounce: DefaultDebounce,
		OnChange: onChange,
		logger:   logger.WithField("component", "watcher"),
	}
}

// Relevant reports whether a changed file can affect the note collection.
func Relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := filepath.Ext(base)
	return ext == ".md" || ext == ".json" || ext == ""
}

// Run watches until ctx is done. Paths that do not exist are skipped with a
// warning; new directories are added as they appear.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	added := 0
	for _, p := range w.Paths {
		if err := fw.Add(p); err != nil {
			w.logger.WithField("path", p).WithError(err).Warn("Cannot watch path")
			continue
		}
		added++
	}
	if added == 0 {
		return fmt.Errorf("no watchable paths")
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.Add(event.Name); err != nil {
						w.logger.WithField("path", event.Name).WithError(err).Warn("Cannot watch new directory")
					}
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !Relevant(event.Name) {
				continue
			}
			w.logger.WithField("event", event.String()).Debug("Note change detected")
			pending = time.After(w.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("Watcher error")

		case <-pending:
			pending = nil
			if err := w.OnChange(); err != nil {
				w.logger.WithError(err).Error("Rebuild after change failed")
			}
		}
	}
}
