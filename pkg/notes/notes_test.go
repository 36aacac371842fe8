package notes

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-labels/pkg/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestParseNote(t *testing.T) {
	notePath := filepath.Join(t.TempDir(), "inbox", "test-note.md")
	writeFile(t, notePath, `---
id: 20250111-test-note
title: Test Note
author: alice
labels: [work/a, review]
tags: [review, backend]
modified: 2025-01-11 11:00:00
---

# Heading

Body.
`)

	note, err := ParseNote(notePath, models.OriginLocal)
	require.NoError(t, err)

	assert.Equal(t, notePath, note.Path)
	assert.Equal(t, "20250111-test-note", note.ID)
	assert.Equal(t, "Test Note", note.Title)
	assert.Equal(t, "alice", note.Author)
	assert.Equal(t, []string{"work/a", "review", "backend"}, note.Labels)
	assert.Equal(t, models.OriginLocal, note.Origin)

	expected, _ := time.Parse("2006-01-02 15:04:05", "2025-01-11 11:00:00")
	assert.Equal(t, expected.Unix(), note.Date.Unix())
}

func TestParseNoteWithoutFrontmatter(t *testing.T) {
	notePath := filepath.Join(t.TempDir(), "simple-note.md")
	writeFile(t, notePath, "# Simple Note\n\nJust text.\n")

	note, err := ParseNote(notePath, models.OriginNone)
	require.NoError(t, err)

	assert.Equal(t, "simple-note", note.ID)
	assert.Equal(t, "Simple Note", note.Title)
	assert.Empty(t, note.Labels)
	assert.Equal(t, models.OriginNone, note.Origin)
}

func TestParseNoteFrontmatterOrigin(t *testing.T) {
	notePath := filepath.Join(t.TempDir(), "r.md")
	writeFile(t, notePath, "---\nid: r\ntitle: R\norigin: remote\nlabels: [x]\n---\nbody")

	note, err := ParseNote(notePath, models.OriginLocal)
	require.NoError(t, err)
	assert.Equal(t, models.OriginRemote, note.Origin)
}

func TestParseNoteBrokenFrontmatter(t *testing.T) {
	notePath := filepath.Join(t.TempDir(), "broken.md")
	writeFile(t, notePath, "---\ntitle: [oops\n---\n# Broken\n")

	note, err := ParseNote(notePath, models.OriginLocal)
	require.NoError(t, err)
	assert.Equal(t, "Broken", note.Title)
	assert.Empty(t, note.Labels)
}

func TestParseNoteMissingFile(t *testing.T) {
	_, err := ParseNote(filepath.Join(t.TempDir(), "nope.md"), models.OriginLocal)
	assert.Error(t, err)
}

func TestLoaderLoad(t *testing.T) {
	root := t.TempDir()
	notesDir := filepath.Join(root, "notes")
	writeFile(t, filepath.Join(notesDir, "a.md"), "---\nid: a\ntitle: A\nlabels: [work/a]\n---\n")
	writeFile(t, filepath.Join(notesDir, "sub", "b.md"), "---\nid: b\ntitle: B\nlabels: [local, home]\n---\n")
	writeFile(t, filepath.Join(notesDir, "sub", "e.md"), "---\nid: e\ntitle: E\n---\n")
	writeFile(t, filepath.Join(notesDir, "skip.txt"), "not a note")
	writeFile(t, filepath.Join(notesDir, ".git", "c.md"), "---\nid: c\n---\n")

	remote := filepath.Join(root, "remote.json")
	require.NoError(t, WriteEnvelope(remote, &models.Envelope{
		Version: models.EnvelopeVersion,
		Notes: []*models.StoredNote{
			{NoteVersion: 3, URL: "https://example.org/#/1/2/3", Author: "bob", Labels: []string{"review"}},
			nil,
		},
	}))

	loader := NewLoader(notesDir, []string{remote, filepath.Join(root, "missing.json")}, nil)
	got, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, []string{"work/a"}, got[0].Labels)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, []string{"local", "home"}, got[1].Labels)
	assert.Equal(t, "e", got[2].ID)
	assert.Equal(t, []string{"local"}, got[2].Labels, "unlabelled notes get their origin tag")

	assert.Equal(t, models.OriginRemote, got[3].Origin)
	assert.Equal(t, []string{"review"}, got[3].Labels)
	assert.Equal(t, "bob", got[3].Author)
	assert.Equal(t, remote, got[3].Path)
}

func TestLoaderMissingDir(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nowhere"), nil, nil)
	got, err := loader.Load()
	assert.ErrorIs(t, err, ErrNoNotesDir)
	assert.Empty(t, got)
}

func TestLoaderWatchPaths(t *testing.T) {
	root := t.TempDir()
	notesDir := filepath.Join(root, "notes")
	require.NoError(t, os.MkdirAll(filepath.Join(notesDir, "sub"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(notesDir, ".hidden"), 0755))

	loader := NewLoader(notesDir, []string{filepath.Join(root, "r", "a.json"), filepath.Join(root, "r", "b.json")}, nil)
	assert.Equal(t, []string{notesDir, filepath.Join(notesDir, "sub"), filepath.Join(root, "r")}, loader.WatchPaths())
}

func TestReadEnvelopeErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, "{")
	_, err := ReadEnvelope(bad)
	assert.Error(t, err)

	old := filepath.Join(dir, "old.json")
	writeFile(t, old, `{"version":2,"notes":[]}`)
	_, err = ReadEnvelope(old)
	assert.ErrorContains(t, err, "unsupported version 2")
}
