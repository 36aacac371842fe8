package labels

// Entry is a label identity paired with an activation flag. It is both the
// input to Build and the persisted record of a toggled node.
type Entry struct {
	Label    string `json:"label"`
	IsActive bool   `json:"isActive"`
}

// DefaultActive is the activation of a node with no stored entry.
const DefaultActive = true

// ApplyActivation returns a copy of forest where each node's flag is the
// stored value for its identity, or DefaultActive when nothing is stored.
// When entries repeat an identity the last one wins.
func ApplyActivation(forest *Forest, entries []Entry) *Forest {
	stored := make(map[string]bool, len(entries))
	for _, e := range entries {
		stored[e.Label] = e.IsActive
	}

	out := forest.Clone()
	for _, n := range out.nodes {
		active, ok := stored[n.Path]
		if !ok {
			active = DefaultActive
		}
		out.setActive(n.ID, active)
	}
	return out
}

// CloneEntries copies an entry slice.
func CloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
