package labels

import (
	"fmt"

	"github.com/mattsolo1/grove-labels/pkg/models"
)

// Mode selects whether matching notes are kept or dropped.
type Mode int

const (
	// Inclusive keeps notes carrying at least one label from the set.
	Inclusive Mode = iota
	// Exclusive keeps notes carrying none of the labels in the set.
	Exclusive
)

func (m Mode) String() string {
	if m == Exclusive {
		return "exclusive"
	}
	return "inclusive"
}

// LabelSet is a set of label identities compared by exact string equality.
type LabelSet map[string]struct{}

// NewLabelSet builds a set from the given labels.
func NewLabelSet(labels ...string) LabelSet {
	set := make(LabelSet, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// Contains reports whether label is in the set.
func (s LabelSet) Contains(label string) bool {
	_, ok := s[label]
	return ok
}

// Matches reports whether any of labels is in the set.
func (s LabelSet) Matches(labels []string) bool {
	for _, l := range labels {
		if s.Contains(l) {
			return true
		}
	}
	return false
}

// Filter returns the notes whose raw labels intersect set (Inclusive) or do
// not intersect it (Exclusive). Order is preserved and notes are not copied.
// For a fixed set the two modes partition notes.
func Filter(notes []*models.Note, set LabelSet, mode Mode) []*models.Note {
	var out []*models.Note
	for _, note := range notes {
		if note == nil {
			continue
		}
		if set.Matches(note.Labels) == (mode == Inclusive) {
			out = append(out, note)
		}
	}
	return out
}

// Selection picks which forest nodes feed the filter's label set.
type Selection string

const (
	// SelectAll uses every node. Since the forest is derived from the same
	// notes, inclusive filtering with it keeps every labelled note.
	SelectAll Selection = "all"
	// SelectActive uses nodes whose own flag is set.
	SelectActive Selection = "active"
	// SelectVisible uses nodes that are active with every ancestor active,
	// so an inactive parent hides its subtree without touching child flags.
	SelectVisible Selection = "visible"
)

// ParseSelection maps a config or flag value to a Selection. Empty means visible.
func ParseSelection(s string) (Selection, error) {
	switch Selection(s) {
	case "", SelectVisible:
		return SelectVisible, nil
	case SelectActive:
		return SelectActive, nil
	case SelectAll:
		return SelectAll, nil
	default:
		return "", fmt.Errorf("unknown label selection %q (want all, active or visible)", s)
	}
}

// Select builds the label set for sel from forest. The set holds the raw
// labels recorded as sources of the selected nodes, so it can be compared
// directly with note labels: a note labelled "work/a" matches when the node
// that label ends at is selected. With SelectVisible an inactive ancestor
// therefore hides the notes of its whole subtree.
func Select(forest *Forest, sel Selection) LabelSet {
	set := make(LabelSet)
	for _, n := range forest.Nodes() {
		switch sel {
		case SelectAll:
		case SelectActive:
			if !n.Active {
				continue
			}
		default:
			if !forest.Visible(n.ID) {
				continue
			}
		}
		for _, l := range forest.Sources(n.ID) {
			set[l] = struct{}{}
		}
	}
	return set
}
