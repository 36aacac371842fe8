package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-labels/pkg/activation"
	"github.com/mattsolo1/grove-labels/pkg/kv"
	"github.com/mattsolo1/grove-labels/pkg/labels"
	"github.com/mattsolo1/grove-labels/pkg/models"
	"github.com/mattsolo1/grove-labels/pkg/notes"
)

func writeNote(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setup creates a notes directory with two local notes, a (work/a) and
// b (home).
func setup(t *testing.T) (*Config, kv.Store) {
	t.Helper()
	root := t.TempDir()
	notesDir := filepath.Join(root, "notes")
	writeNote(t, filepath.Join(notesDir, "a.md"), "---\nid: a\ntitle: A\nlabels: [work/a]\n---\n# A\n")
	writeNote(t, filepath.Join(notesDir, "b.md"), "---\nid: b\ntitle: B\nlabels: [home]\n---\n# B\n")
	return &Config{DataDir: filepath.Join(root, "data"), NotesDir: notesDir}, kv.NewMemory()
}

func noteIDs(ns []*models.Note) []string {
	var out []string
	for _, n := range ns {
		out = append(out, n.ID)
	}
	return out
}

func TestNewBuildsState(t *testing.T) {
	cfg, backend := setup(t)

	s, err := New(cfg, backend, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, labels.FlatIdentity, s.Config.Identity)
	assert.Equal(t, labels.SelectVisible, s.Config.Selection)
	assert.Equal(t, []string{"local", "local/work", "local/a", "local/home"}, s.Forest().Paths())
	assert.Len(t, s.Notes(), 2)
	assert.Empty(t, s.Entries())
	assert.Equal(t, []string{"a", "b"}, noteIDs(s.Visible(labels.Inclusive)))
	assert.Empty(t, s.Visible(labels.Exclusive))
}

func TestNewRequiresConfigAndBackend(t *testing.T) {
	_, err := New(nil, kv.NewMemory(), nil)
	assert.Error(t, err)
	_, err = New(&Config{}, nil, nil)
	assert.Error(t, err)
}

func TestNewNestedIdentity(t *testing.T) {
	cfg, backend := setup(t)
	cfg.Identity = labels.NestedIdentity

	s, err := New(cfg, backend, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"local", "local/work", "local/work/a", "local/home"}, s.Forest().Paths())
}

func TestToggleLabelPersists(t *testing.T) {
	cfg, backend := setup(t)

	s, err := New(cfg, backend, nil)
	require.NoError(t, err)

	node, err := s.ToggleLabel("local", "")
	require.NoError(t, err)
	assert.False(t, node.Active)
	assert.Equal(t, []labels.Entry{{Label: "local", IsActive: false}}, s.Entries())
	assert.Empty(t, s.Visible(labels.Inclusive))
	assert.Equal(t, []string{"a", "b"}, noteIDs(s.Visible(labels.Exclusive)))

	raw, ok, err := backend.Get(activation.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"label":"local","isActive":false}]`, raw)

	// A fresh service over the same backend sees the stored state.
	reopened, err := New(cfg, backend, nil)
	require.NoError(t, err)
	root, ok := reopened.Forest().Find("local", "")
	require.True(t, ok)
	assert.False(t, root.Active)

	// Children keep their own flag.
	child, ok := reopened.Forest().Find("local/work", "local")
	require.True(t, ok)
	assert.True(t, child.Active)
}

func TestToggleTwiceRestores(t *testing.T) {
	cfg, backend := setup(t)
	s, err := New(cfg, backend, nil)
	require.NoError(t, err)

	_, err = s.ToggleLabel("local/a", "local/work")
	require.NoError(t, err)
	node, err := s.ToggleLabel("local/a", "local/work")
	require.NoError(t, err)

	assert.True(t, node.Active)
	assert.Equal(t, []labels.Entry{{Label: "local/a", IsActive: true}}, s.Entries())
}

func TestToggleNotFound(t *testing.T) {
	cfg, backend := setup(t)
	logger, hook := test.NewNullLogger()

	s, err := New(cfg, backend, logrus.NewEntry(logger))
	require.NoError(t, err)
	before := s.Forest()

	_, err = s.ToggleLabel("missing", "")
	assert.ErrorIs(t, err, labels.ErrNodeNotFound)

	_, err = s.Toggle(labels.Node{Path: "local/a", Parent: 42})
	assert.ErrorIs(t, err, labels.ErrNodeNotFound)

	assert.Same(t, before, s.Forest())
	assert.Empty(t, s.Entries())
	_, ok, err := backend.Get(activation.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok, "nothing is saved")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Toggle ignored", hook.LastEntry().Message)
}

func TestMissingNotesDir(t *testing.T) {
	root := t.TempDir()
	remote := filepath.Join(root, "remote", "issues.json")
	require.NoError(t, notes.WriteEnvelope(remote, &models.Envelope{
		Version: models.EnvelopeVersion,
		Notes: []*models.StoredNote{
			{NoteVersion: 3, URL: "https://example.org/1", Labels: []string{"bug"}},
		},
	}))

	s, err := New(&Config{NotesDir: filepath.Join(root, "nowhere"), RemoteFiles: []string{remote}}, kv.NewMemory(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"remote", "remote/bug"}, s.Forest().Paths())
	assert.Len(t, s.Visible(labels.Inclusive), 1)
}

func TestSelectionActive(t *testing.T) {
	cfg, backend := setup(t)
	cfg.Selection = labels.SelectActive

	s, err := New(cfg, backend, nil)
	require.NoError(t, err)
	_, err = s.ToggleLabel("local", "")
	require.NoError(t, err)

	set := s.ActiveLabels()
	assert.Equal(t, labels.NewLabelSet("work/a", "home"), set)
	assert.Equal(t, []string{"a", "b"}, noteIDs(s.Visible(labels.Inclusive)), "own flags only")
}

func TestChildToggleHidesLocalNotes(t *testing.T) {
	cfg, backend := setup(t)
	writeNote(t, filepath.Join(cfg.NotesDir, "c.md"), "---\nid: c\ntitle: C\n---\n# C\n")
	s, err := New(cfg, backend, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, noteIDs(s.Visible(labels.Inclusive)))

	_, err = s.ToggleLabel("local/home", "local")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, noteIDs(s.Visible(labels.Inclusive)))
	assert.Equal(t, []string{"b"}, noteIDs(s.Visible(labels.Exclusive)))

	// An inactive parent hides the notes of its subtree.
	_, err = s.ToggleLabel("local/work", "local")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, noteIDs(s.Visible(labels.Inclusive)))

	_, err = s.ToggleLabel("local", "")
	require.NoError(t, err)
	assert.Empty(t, s.Visible(labels.Inclusive))
}

// readOnlyKV serves stored values but refuses every write.
type readOnlyKV struct {
	*kv.Memory
}

func (readOnlyKV) Set(string, string) error {
	return errors.New("disk full")
}

func TestToggleSurvivesFailedSave(t *testing.T) {
	cfg, _ := setup(t)
	logger, hook := test.NewNullLogger()
	s, err := New(cfg, readOnlyKV{kv.NewMemory()}, logrus.NewEntry(logger))
	require.NoError(t, err)

	node, err := s.ToggleLabel("local/home", "local")
	require.NoError(t, err)
	assert.False(t, node.Active)

	var saveErrors int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Message == "Unable to save labels state" {
			saveErrors++
		}
	}
	assert.Equal(t, 1, saveErrors)

	require.NoError(t, s.Rebuild())
	home, ok := s.Forest().Find("local/home", "local")
	require.True(t, ok)
	assert.False(t, home.Active, "in-memory toggle kept after rebuild")
	assert.Equal(t, []labels.Entry{{Label: "local/home", IsActive: false}}, s.Entries())
	assert.Equal(t, []string{"a"}, noteIDs(s.Visible(labels.Inclusive)))
}

func TestRebuildDoesNotRereadStore(t *testing.T) {
	cfg, backend := setup(t)
	s, err := New(cfg, backend, nil)
	require.NoError(t, err)

	require.NoError(t, backend.Set(activation.StorageKey, `[{"label":"local","isActive":false}]`))
	require.NoError(t, s.Rebuild())

	root, ok := s.Forest().Find("local", "")
	require.True(t, ok)
	assert.True(t, root.Active)
	assert.Empty(t, s.Entries())
}

func TestEditLabels(t *testing.T) {
	cfg, backend := setup(t)
	s, err := New(cfg, backend, nil)
	require.NoError(t, err)

	path := filepath.Join(cfg.NotesDir, "a.md")
	got, err := s.EditLabels(path, []string{"review", " "}, []string{"work/a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"review"}, got)

	assert.Equal(t, []string{"local", "local/review", "local/home"}, s.Forest().Paths())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "labels: [review]")
	assert.Contains(t, string(content), "# A")
}

func TestEditLabelsRejectsOriginLabels(t *testing.T) {
	cfg, backend := setup(t)
	s, err := New(cfg, backend, nil)
	require.NoError(t, err)

	_, err = s.EditLabels(filepath.Join(cfg.NotesDir, "a.md"), []string{"remote"}, nil)
	assert.ErrorIs(t, err, ErrOriginLabel)

	_, err = s.EditLabels(filepath.Join(cfg.NotesDir, "a.txt"), []string{"x"}, nil)
	assert.Error(t, err)
}

func TestRebuildKeepsActivation(t *testing.T) {
	cfg, backend := setup(t)
	s, err := New(cfg, backend, nil)
	require.NoError(t, err)

	_, err = s.ToggleLabel("local/home", "local")
	require.NoError(t, err)

	writeNote(t, filepath.Join(cfg.NotesDir, "c.md"), "---\nid: c\nlabels: [home/x]\n---\n")
	require.NoError(t, s.Rebuild())

	home, ok := s.Forest().Find("local/home", "local")
	require.True(t, ok)
	assert.False(t, home.Active)
	_, ok = s.Forest().Find("local/x", "local/home")
	assert.True(t, ok)
	assert.Len(t, s.Notes(), 3)
}
