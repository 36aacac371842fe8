package notes

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-labels/pkg/models"
)

// ErrNoNotesDir is returned when the configured notes directory does not exist.
var ErrNoNotesDir = errors.New("notes directory does not exist")

// Loader collects notes from a directory of markdown files (origin Local
// unless the frontmatter says otherwise) and from envelope files (origin
// Remote).
type Loader struct {
	Dir         string
	RemoteFiles []string
	logger      *logrus.Entry
}

// NewLoader creates a Loader.
func NewLoader(dir string, remoteFiles []string, logger *logrus.Entry) *Loader {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	return &Loader{
		Dir:         dir,
		RemoteFiles: remoteFiles,
		logger:      logger.WithField("sub-component", "notes-loader"),
	}
}

// Load returns every note, local ones first. Unreadable note files and
// envelopes are logged and skipped. A missing notes directory is reported
// with ErrNoNotesDir alongside whatever remote notes were read.
func (l *Loader) Load() ([]*models.Note, error) {
	var notes []*models.Note
	var dirErr error

	if l.Dir != "" {
		local, err := l.loadDir()
		if err != nil {
			dirErr = err
		}
		notes = append(notes, local...)
	}

	for _, path := range l.RemoteFiles {
		env, err := ReadEnvelope(path)
		if err != nil {
			l.logger.WithField("path", path).WithError(err).Warn("Skipping notes envelope")
			continue
		}
		for _, stored := range env.Notes {
			if stored == nil {
				continue
			}
			note := stored.ToNote(models.OriginRemote)
			note.Path = path
			withOriginLabel(note)
			notes = append(notes, note)
		}
	}

	return notes, dirErr
}

func (l *Loader) loadDir() ([]*models.Note, error) {
	if _, err := os.Stat(l.Dir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", l.Dir, ErrNoNotesDir)
		}
		return nil, err
	}

	var notes []*models.Note
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if d.IsDir() {
			if path != l.Dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		note, err := ParseNote(path, models.OriginLocal)
		if err != nil {
			l.logger.WithField("path", path).WithError(err).Debug("Skipping unreadable note")
			return nil
		}
		withOriginLabel(note)
		notes = append(notes, note)
		return nil
	})
	return notes, err
}

// WatchPaths returns the paths a watcher should observe to notice changes
// in the note collection.
func (l *Loader) WatchPaths() []string {
	var paths []string
	if l.Dir != "" {
		_ = filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != l.Dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				paths = append(paths, path)
			}
			return nil
		})
	}
	seen := make(map[string]bool)
	for _, f := range l.RemoteFiles {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			paths = append(paths, dir)
		}
	}
	return paths
}
