package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-labels/pkg/activation"
	"github.com/mattsolo1/grove-labels/pkg/frontmatter"
	"github.com/mattsolo1/grove-labels/pkg/kv"
	"github.com/mattsolo1/grove-labels/pkg/labels"
	"github.com/mattsolo1/grove-labels/pkg/models"
	"github.com/mattsolo1/grove-labels/pkg/notes"
)

// ErrOriginLabel is returned when an edit tries to add or remove one of the
// origin labels, which are derived from where a note lives.
var ErrOriginLabel = errors.New("origin labels cannot be edited")

// Config holds service configuration
type Config struct {
	DataDir     string
	NotesDir    string
	RemoteFiles []string
	Identity    labels.IdentityMode
	Selection   labels.Selection
}

// State is everything derived from one rebuild: the notes, the label forest
// with activation applied, and the activation entries of the session.
type State struct {
	Notes   []*models.Note
	Forest  *labels.Forest
	Entries []labels.Entry
}

// Service ties the note loader, the label engine and the activation store
// together. Rebuild and Toggle replace the state explicitly; nothing updates
// in the background. A Service is not safe for concurrent use.
type Service struct {
	Config *Config

	backend kv.Store
	store   *activation.Store
	loader  *notes.Loader
	logger  *logrus.Entry

	state State
}

// New creates a service and performs the first Rebuild.
func New(config *Config, backend kv.Store, logger *logrus.Entry) (*Service, error) {
	if config == nil {
		return nil, fmt.Errorf("service config is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("storage backend is required")
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	if config.Identity == "" {
		config.Identity = labels.FlatIdentity
	}
	if config.Selection == "" {
		config.Selection = labels.SelectVisible
	}

	s := &Service{
		Config:  config,
		backend: backend,
		store:   activation.NewStore(backend, activation.WithLogger(logger)),
		loader:  notes.NewLoader(config.NotesDir, config.RemoteFiles, logger),
		logger:  logger.WithField("component", "service"),
	}
	// Stored activation is read once per session. Later rebuilds reuse the
	// in-memory entries, which stay authoritative when a save fails.
	s.state.Entries = s.store.Load()
	if err := s.Rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// Rebuild reloads every note, rebuilds the label forest and applies the
// session's activation entries on top of it. The activation store is not
// read again.
func (s *Service) Rebuild() error {
	all, err := s.loader.Load()
	if err != nil {
		if !errors.Is(err, notes.ErrNoNotesDir) {
			return fmt.Errorf("load notes: %w", err)
		}
		s.logger.WithError(err).Warn("Notes directory missing, continuing with remote notes only")
	}

	entries := s.state.Entries
	forest := labels.ApplyActivation(labels.BuildFromNotes(all, s.Config.Identity), entries)

	s.state = State{
		Notes:   all,
		Forest:  forest,
		Entries: entries,
	}
	s.logger.WithFields(logrus.Fields{
		"notes":   len(all),
		"labels":  forest.Len(),
		"entries": len(entries),
	}).Debug("Rebuilt label state")
	return nil
}

// State returns the current state. Callers must not modify it.
func (s *Service) State() State {
	return s.state
}

// Forest returns the current label forest.
func (s *Service) Forest() *labels.Forest {
	return s.state.Forest
}

// Notes returns every loaded note.
func (s *Service) Notes() []*models.Note {
	return s.state.Notes
}

// Entries returns a copy of the current activation entries.
func (s *Service) Entries() []labels.Entry {
	return labels.CloneEntries(s.state.Entries)
}

// Toggle flips the activation of target and persists the result. The
// returned node carries the new flag. When target is not in the forest the
// state is left as it was and the error wraps labels.ErrNodeNotFound.
func (s *Service) Toggle(target labels.Node) (labels.Node, error) {
	forest, entries, err := labels.Toggle(s.state.Forest, s.state.Entries, target)
	if err != nil {
		s.logger.WithField("label", target.Path).WithError(err).Warn("Toggle ignored")
		return labels.Node{}, err
	}

	s.state.Forest = forest
	s.state.Entries = entries
	s.store.Save(entries)

	node, _ := forest.Lookup(target.Path, target.Parent)
	s.logger.WithFields(logrus.Fields{
		"label":  node.Path,
		"active": node.Active,
	}).Debug("Toggled label")
	return node, nil
}

// ToggleLabel toggles the node identified by path under a parent with
// identity parentPath. An empty parentPath addresses a root.
func (s *Service) ToggleLabel(path, parentPath string) (labels.Node, error) {
	node, ok := s.state.Forest.Find(path, parentPath)
	if !ok {
		err := fmt.Errorf("label %q (parent %q): %w", path, parentPath, labels.ErrNodeNotFound)
		s.logger.WithError(err).Warn("Toggle ignored")
		return labels.Node{}, err
	}
	return s.Toggle(node)
}

// Selection returns how the filter's label set is chosen.
func (s *Service) Selection() labels.Selection {
	return s.Config.Selection
}

// SetSelection changes how the filter's label set is chosen.
func (s *Service) SetSelection(sel labels.Selection) {
	s.Config.Selection = sel
}

// ActiveLabels returns the label set notes are filtered against, chosen by
// the configured selection.
func (s *Service) ActiveLabels() labels.LabelSet {
	return labels.Select(s.state.Forest, s.Config.Selection)
}

// Visible returns the notes matching the current label selection.
func (s *Service) Visible(mode labels.Mode) []*models.Note {
	return labels.Filter(s.state.Notes, s.ActiveLabels(), mode)
}

// EditLabels adds and removes user labels on a local markdown note and
// rebuilds. Origin labels are rejected with ErrOriginLabel.
func (s *Service) EditLabels(notePath string, add, remove []string) ([]string, error) {
	for _, l := range append(append([]string{}, add...), remove...) {
		if labels.IsOriginLabel(l) {
			return nil, fmt.Errorf("%q: %w", l, ErrOriginLabel)
		}
	}
	if !strings.HasSuffix(notePath, ".md") {
		return nil, fmt.Errorf("only markdown notes can be edited: %s", notePath)
	}

	content, err := os.ReadFile(notePath)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}
	fm, _, err := frontmatter.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse note: %w", err)
	}

	removed := make(map[string]bool, len(remove))
	for _, l := range remove {
		removed[strings.TrimSpace(l)] = true
	}
	var kept []string
	for _, l := range labels.Editable(fm.RawLabels(), false) {
		if !removed[l] {
			kept = append(kept, l)
		}
	}
	for _, l := range add {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	updated := frontmatter.MergeLabels(kept)

	out, err := frontmatter.SetLabels(content, updated)
	if err != nil {
		return nil, fmt.Errorf("update frontmatter: %w", err)
	}
	if err := os.WriteFile(notePath, out, 0644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"path":   notePath,
		"labels": updated,
	}).Info("Updated note labels")

	if err := s.Rebuild(); err != nil {
		return nil, err
	}
	return updated, nil
}

// WatchPaths returns the directories a watcher should observe.
func (s *Service) WatchPaths() []string {
	return s.loader.WatchPaths()
}

// Close releases the storage backend when it holds resources.
func (s *Service) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
