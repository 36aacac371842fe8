package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-labels/pkg/labels"
)

// Tree prefixes.
const (
	PrefixExpanded  = "▼" // active, has children
	PrefixCollapsed = "▶" // inactive, has children
	PrefixOn        = "⊙" // active leaf
	PrefixOff       = "∅" // inactive leaf
)

// Prefix returns the marker shown in front of a label.
func Prefix(hasChildren, active bool) string {
	switch {
	case hasChildren && active:
		return PrefixExpanded
	case hasChildren:
		return PrefixCollapsed
	case active:
		return PrefixOn
	default:
		return PrefixOff
	}
}

// Line is one displayed row of the label tree.
type Line struct {
	Node        labels.Node
	Depth       int
	HasChildren bool
}

// Prefix returns the marker for the line.
func (l Line) Prefix() string {
	return Prefix(l.HasChildren, l.Node.Active)
}

// Lines flattens the forest into display order. Children are listed only
// under active nodes, so collapsing a label hides its whole subtree.
func Lines(forest *labels.Forest) []Line {
	var out []Line
	var walk func(n labels.Node, depth int)
	walk = func(n labels.Node, depth int) {
		children := forest.Children(n.ID)
		out = append(out, Line{Node: n, Depth: depth, HasChildren: len(children) > 0})
		if !n.Active {
			return
		}
		for _, c := range children {
			walk(c, depth+1)
		}
	}
	for _, r := range forest.Roots() {
		walk(r, 0)
	}
	return out
}

// Options controls tree rendering.
type Options struct {
	// Plain disables styling.
	Plain bool
	// Cursor highlights the line at this index; -1 for none.
	Cursor int
}

var (
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Padding(0, 1)
	inactiveStyle = lipgloss.NewStyle().Faint(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
)

// Badge renders a label with its color.
func Badge(label, prefix string, plain bool) string {
	text := label
	if prefix != "" {
		text = prefix + " " + label
	}
	if plain {
		return text
	}
	return badgeStyle.Background(lipgloss.Color(Color(label))).Render(text)
}

// RenderLine renders a single tree row, showing only the leaf segment.
func RenderLine(line Line, opts Options) string {
	indent := strings.Repeat("  ", line.Depth)
	text := line.Prefix() + " " + labels.Leaf(line.Node.Path)
	if opts.Plain {
		return indent + text
	}
	style := badgeStyle.Background(lipgloss.Color(Color(line.Node.Path)))
	if !line.Node.Active {
		style = style.Inherit(inactiveStyle)
	}
	return indent + style.Render(text)
}

// Tree renders the forest, one label per line.
func Tree(forest *labels.Forest, opts Options) string {
	var b strings.Builder
	for i, line := range Lines(forest) {
		row := RenderLine(line, opts)
		if i == opts.Cursor {
			if opts.Plain {
				row = "> " + row
			} else {
				row = cursorStyle.Render("▶ ") + row
			}
		} else if opts.Cursor >= 0 {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
