package toggler

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-labels/pkg/kv"
	"github.com/mattsolo1/grove-labels/pkg/labels"
	"github.com/mattsolo1/grove-labels/pkg/service"
)

func newService(t *testing.T) *service.Service {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("a.md", "---\nid: a\ntitle: A\nlabels: [work/a]\n---\n")
	write("b.md", "---\nid: b\ntitle: B\nlabels: [home]\n---\n")

	s, err := service.New(&service.Config{NotesDir: dir}, kv.NewMemory(), nil)
	require.NoError(t, err)
	return s
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func selectedPath(t *testing.T, m Model) string {
	t.Helper()
	n, ok := m.Selected()
	require.True(t, ok)
	return n.Path
}

func TestNavigation(t *testing.T) {
	m := New(newService(t))
	assert.Equal(t, "local", selectedPath(t, m))

	m = press(t, m, "j", "down")
	assert.Equal(t, "local/a", selectedPath(t, m))

	m = press(t, m, "-")
	assert.Equal(t, "local/work", selectedPath(t, m))

	m = press(t, m, "G")
	assert.Equal(t, "local/home", selectedPath(t, m))
	m = press(t, m, "j")
	assert.Equal(t, "local/home", selectedPath(t, m), "cursor stops at the last label")

	m = press(t, m, "g", "k")
	assert.Equal(t, "local", selectedPath(t, m))
}

func TestToggleCollapsesSubtree(t *testing.T) {
	svc := newService(t)
	m := New(svc)

	m = press(t, m, "j", " ")
	assert.Equal(t, "local/work", selectedPath(t, m))
	assert.Len(t, m.lines, 3, "children of an inactive label are hidden")
	assert.Equal(t, "local/work off", m.message)

	n, ok := svc.Forest().Find("local/work", "local")
	require.True(t, ok)
	assert.False(t, n.Active)
	assert.Equal(t, []labels.Entry{{Label: "local/work", IsActive: false}}, svc.Entries())

	m = press(t, m, " ")
	assert.Len(t, m.lines, 4)
}

func TestModeAndSelection(t *testing.T) {
	m := New(newService(t))
	assert.Len(t, m.Notes(), 2)

	m = press(t, m, "x")
	assert.Equal(t, labels.Exclusive, m.Mode())
	assert.Empty(t, m.Notes())

	m = press(t, m, "x", " ")
	assert.Equal(t, labels.Inclusive, m.Mode())
	assert.Empty(t, m.Notes(), "root label off hides every local note")

	m = press(t, m, "s")
	assert.Equal(t, labels.SelectActive, m.svc.Selection())
	m = press(t, m, "s", "s")
	assert.Equal(t, labels.SelectVisible, m.svc.Selection())
}

func TestQuit(t *testing.T) {
	m := New(newService(t))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestViewEmpty(t *testing.T) {
	s, err := service.New(&service.Config{NotesDir: filepath.Join(t.TempDir(), "none")}, kv.NewMemory(), nil)
	require.NoError(t, err)

	m := New(s)
	_, ok := m.Selected()
	assert.False(t, ok)
	m = press(t, m, " ", "j", "-")
	assert.Contains(t, m.View(), "No labels")
}
