package toggler

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-labels/pkg/labels"
	"github.com/mattsolo1/grove-labels/pkg/models"
	"github.com/mattsolo1/grove-labels/pkg/render"
)

// Backend is the part of the service the toggler drives.
type Backend interface {
	Forest() *labels.Forest
	Toggle(target labels.Node) (labels.Node, error)
	Visible(mode labels.Mode) []*models.Note
	Rebuild() error
	Selection() labels.Selection
	SetSelection(sel labels.Selection)
}

var selectionCycle = []labels.Selection{labels.SelectVisible, labels.SelectActive, labels.SelectAll}

// Model is the label toggler: the label tree on the left, the notes that
// pass the current filter on the right.
type Model struct {
	svc      Backend
	lines    []render.Line
	cursor   int
	mode     labels.Mode
	notes    []*models.Note
	table    table.Model
	help     help.Model
	keys     KeyMap
	message  string
	isError  bool
	width    int
	height   int
	quitting bool
}

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#3c3c3c"))

	treeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			PaddingRight(1).
			MarginRight(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5faf5f"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d75f5f"))
)

// New creates a new Model instance
func New(svc Backend) Model {
	columns := []table.Column{
		{Title: "DATE", Width: 10},
		{Title: "ORIGIN", Width: 8},
		{Title: "TITLE", Width: 40},
		{Title: "LABELS", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(s)

	m := Model{
		svc:   svc,
		mode:  labels.Inclusive,
		table: t,
		help:  help.New(),
		keys:  keys,
	}
	m.refresh()
	return m
}

// refresh re-reads the forest and the filtered notes.
func (m *Model) refresh() {
	m.lines = render.Lines(m.svc.Forest())
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	m.notes = m.svc.Visible(m.mode)
	rows := make([]table.Row, len(m.notes))
	for i, note := range m.notes {
		date := ""
		if !note.Date.IsZero() {
			date = note.Date.Format("2006-01-02")
		}
		rows[i] = table.Row{
			date,
			note.Origin.DisplayName(),
			truncate(note.Title, 40),
			truncate(strings.Join(note.Labels, ", "), 30),
		}
	}
	m.table.SetRows(rows)
}

// Selected returns the label under the cursor.
func (m Model) Selected() (labels.Node, bool) {
	if len(m.lines) == 0 {
		return labels.Node{}, false
	}
	return m.lines[m.cursor].Node, true
}

// Mode returns the current filter mode.
func (m Model) Mode() labels.Mode {
	return m.mode
}

// Notes returns the notes currently listed.
func (m Model) Notes() []*models.Note {
	return m.notes
}

// truncate shortens a string to fit within a given width
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Top):
			m.cursor = 0

		case key.Matches(msg, m.keys.Bottom):
			if len(m.lines) > 0 {
				m.cursor = len(m.lines) - 1
			}

		case key.Matches(msg, m.keys.Parent):
			m.jumpToParent()

		case key.Matches(msg, m.keys.Toggle):
			m.toggleSelected()

		case key.Matches(msg, m.keys.Mode):
			if m.mode == labels.Inclusive {
				m.mode = labels.Exclusive
			} else {
				m.mode = labels.Inclusive
			}
			m.setMessage(fmt.Sprintf("Filter mode: %s", m.mode), false)
			m.refresh()

		case key.Matches(msg, m.keys.Selected):
			m.cycleSelection()

		case key.Matches(msg, m.keys.Reload):
			if err := m.svc.Rebuild(); err != nil {
				m.setMessage(fmt.Sprintf("Reload failed: %v", err), true)
			} else {
				m.setMessage("Reloaded notes", false)
			}
			m.refresh()
		}
	}

	return m, nil
}

func (m *Model) setMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

func (m *Model) toggleSelected() {
	node, ok := m.Selected()
	if !ok {
		return
	}
	updated, err := m.svc.Toggle(node)
	if err != nil {
		m.setMessage(fmt.Sprintf("Toggle failed: %v", err), true)
		m.refresh()
		return
	}
	state := "off"
	if updated.Active {
		state = "on"
	}
	m.setMessage(fmt.Sprintf("%s %s", updated.Path, state), false)
	m.refresh()
}

func (m *Model) jumpToParent() {
	node, ok := m.Selected()
	if !ok || node.IsRoot() {
		return
	}
	for i, line := range m.lines {
		if line.Node.ID == node.Parent {
			m.cursor = i
			return
		}
	}
}

func (m *Model) cycleSelection() {
	current := m.svc.Selection()
	next := selectionCycle[0]
	for i, sel := range selectionCycle {
		if sel == current {
			next = selectionCycle[(i+1)%len(selectionCycle)]
			break
		}
	}
	m.svc.SetSelection(next)
	m.setMessage(fmt.Sprintf("Label selection: %s", next), false)
	m.refresh()
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	header := headerStyle.Render(fmt.Sprintf("  Labels - %s, %s  ", m.mode, m.svc.Selection()))
	s.WriteString(header + "\n\n")

	tree := render.Tree(m.svc.Forest(), render.Options{Cursor: m.cursor})
	if tree == "" {
		tree = dimStyle.Render("No labels")
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		treeStyle.Render(strings.TrimRight(tree, "\n")),
		m.table.View(),
	)
	s.WriteString(body + "\n")

	status := fmt.Sprintf("%d labels, %d notes shown", len(m.lines), len(m.notes))
	s.WriteString(dimStyle.Render(status) + "\n")

	if m.message != "" {
		if m.isError {
			s.WriteString(errorStyle.Render(m.message) + "\n")
		} else {
			s.WriteString(messageStyle.Render(m.message) + "\n")
		}
	}

	s.WriteString("\n" + m.help.View(m.keys))
	return s.String()
}
