package labels

import (
	"fmt"

	"github.com/mattsolo1/grove-labels/pkg/models"
)

// IdentityMode controls how identities of nodes below a root are formed.
type IdentityMode string

const (
	// FlatIdentity names every non-root node root + "/" + segment, whatever
	// its depth. "work/a/b" produces work -> work/a -> work/b. This is the
	// naming existing persisted entries were written with.
	FlatIdentity IdentityMode = "flat"
	// NestedIdentity names nodes parent.Path + "/" + segment, so "work/a/b"
	// produces work -> work/a -> work/a/b.
	NestedIdentity IdentityMode = "nested"
)

// ParseIdentityMode maps a config value to an IdentityMode. Empty means flat.
func ParseIdentityMode(s string) (IdentityMode, error) {
	switch IdentityMode(s) {
	case "", FlatIdentity:
		return FlatIdentity, nil
	case NestedIdentity:
		return NestedIdentity, nil
	default:
		return "", fmt.Errorf("unknown identity mode %q (want %q or %q)", s, FlatIdentity, NestedIdentity)
	}
}

func (m IdentityMode) childPath(root string, parent Node, segment string) string {
	if m == NestedIdentity {
		return parent.Path + Separator + segment
	}
	return root + Separator + segment
}

// Build folds labels into a copy of forest and returns the copy; the input
// is never modified. Existing (identity, parent) pairs are reused, so
// building the same labels twice adds nothing. Labels with no segments are
// skipped. New nodes take the activation flag of the label that created them,
// and the label itself is recorded as a source of the node its path ends at.
func Build(forest *Forest, batch []Entry, origin models.Origin, mode IdentityMode) *Forest {
	out := forest.Clone()
	fold(out, batch, origin, mode)
	return out
}

func fold(out *Forest, batch []Entry, origin models.Origin, mode IdentityMode) {
	for _, entry := range batch {
		segments := ParsePath(entry.Label)
		if len(segments) == 0 {
			continue
		}
		root := origin.Tag()
		if root == "" {
			root = segments[0]
		}

		parent := out.ensure(root, NoParent, entry.IsActive)
		for _, segment := range segments {
			if segment == root {
				continue
			}
			parent = out.ensure(mode.childPath(root, parent, segment), parent.ID, entry.IsActive)
		}
		out.addSource(parent.ID, entry.Label)
	}
}

// BuildFromNotes replays Build over every note, all labels starting active.
// This is the full rebuild run whenever the note collection changes.
func BuildFromNotes(notes []*models.Note, mode IdentityMode) *Forest {
	forest := NewForest()
	for _, note := range notes {
		if note == nil {
			continue
		}
		batch := make([]Entry, len(note.Labels))
		for i, label := range note.Labels {
			batch[i] = Entry{Label: label, IsActive: true}
		}
		fold(forest, batch, note.Origin, mode)
	}
	return forest
}
