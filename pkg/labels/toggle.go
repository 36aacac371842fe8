package labels

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned by Toggle when the target is not in the forest.
var ErrNodeNotFound = errors.New("label node not found")

// Toggle flips the flag of the node matching target's identity and parent
// and mirrors the new flag into the persisted entries: entries with the same
// identity are overwritten, otherwise one entry is appended.
//
// Only the target changes. Descendants keep their own flags; hiding them
// under an inactive parent is left to whoever traverses the forest.
//
// Entries are keyed by identity alone. With FlatIdentity two nodes can share
// one identity under different parents ("work/a/x" and "work/b/x" both give
// work/x); only the addressed node flips here, but ApplyActivation on the
// next rebuild gives both of them the stored flag.
//
// Neither input is modified. When the target is missing both are returned
// as given together with ErrNodeNotFound.
func Toggle(forest *Forest, entries []Entry, target Node) (*Forest, []Entry, error) {
	current, ok := forest.Lookup(target.Path, target.Parent)
	if !ok {
		return forest, entries, fmt.Errorf("toggle %q: %w", target.Path, ErrNodeNotFound)
	}

	out := forest.Clone()
	active := !current.Active
	out.setActive(current.ID, active)

	stored := CloneEntries(entries)
	found := false
	for i := range stored {
		if stored[i].Label == current.Path {
			stored[i].IsActive = active
			found = true
		}
	}
	if !found {
		stored = append(stored, Entry{Label: current.Path, IsActive: active})
	}

	return out, stored, nil
}
