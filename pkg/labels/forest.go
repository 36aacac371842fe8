package labels

// NodeID addresses a node inside the Forest that created it. IDs are assigned
// in insertion order, so replaying the same labels yields the same IDs.
type NodeID int

// NoParent marks a root node.
const NoParent NodeID = -1

// Node is a single label in the hierarchy.
type Node struct {
	ID NodeID
	// Path is the node identity, e.g. "work/a". Two nodes may share a Path
	// when they hang under different parents.
	Path   string
	Parent NodeID
	Active bool
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == NoParent
}

type nodeKey struct {
	path   string
	parent NodeID
}

// Forest owns every label node in a flat slice. Parents are referenced by
// NodeID and lookups go through the (Path, Parent) index.
//
// Each node also remembers the raw labels whose path ends at it, which is
// what notes are matched against when filtering.
//
// A nil *Forest is an empty forest for every read method.
type Forest struct {
	nodes   []Node
	index   map[nodeKey]NodeID
	sources map[NodeID][]string
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{
		index:   make(map[nodeKey]NodeID),
		sources: make(map[NodeID][]string),
	}
}

// Len returns the number of nodes.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.nodes)
}

// Nodes returns a copy of all nodes in insertion order.
func (f *Forest) Nodes() []Node {
	if f == nil {
		return nil
	}
	out := make([]Node, len(f.nodes))
	copy(out, f.nodes)
	return out
}

// Node returns the node with the given ID.
func (f *Forest) Node(id NodeID) (Node, bool) {
	if f == nil || id < 0 || int(id) >= len(f.nodes) {
		return Node{}, false
	}
	return f.nodes[id], true
}

// Lookup finds a node by identity and parent.
func (f *Forest) Lookup(path string, parent NodeID) (Node, bool) {
	if f == nil {
		return Node{}, false
	}
	id, ok := f.index[nodeKey{path: path, parent: parent}]
	if !ok {
		return Node{}, false
	}
	return f.nodes[id], true
}

// Find locates a node by its identity and its parent's identity. An empty
// parentPath selects a root. When several parents share parentPath the
// first match in insertion order wins.
func (f *Forest) Find(path, parentPath string) (Node, bool) {
	if f == nil {
		return Node{}, false
	}
	if parentPath == "" {
		return f.Lookup(path, NoParent)
	}
	for _, n := range f.nodes {
		if n.Path != path || n.IsRoot() {
			continue
		}
		if p := f.nodes[n.Parent]; p.Path == parentPath {
			return n, true
		}
	}
	return Node{}, false
}

// Roots returns the nodes without a parent.
func (f *Forest) Roots() []Node {
	return f.Children(NoParent)
}

// Children returns the direct children of id in insertion order.
func (f *Forest) Children(id NodeID) []Node {
	if f == nil {
		return nil
	}
	var out []Node
	for _, n := range f.nodes {
		if n.Parent == id {
			out = append(out, n)
		}
	}
	return out
}

// Parent returns the parent of id, if any.
func (f *Forest) Parent(id NodeID) (Node, bool) {
	n, ok := f.Node(id)
	if !ok || n.IsRoot() {
		return Node{}, false
	}
	return f.Node(n.Parent)
}

// Ancestors returns the chain of parents of id, nearest first.
func (f *Forest) Ancestors(id NodeID) []Node {
	var out []Node
	for p, ok := f.Parent(id); ok; p, ok = f.Parent(p.ID) {
		out = append(out, p)
	}
	return out
}

// Visible reports whether id is active and every ancestor is active too.
func (f *Forest) Visible(id NodeID) bool {
	n, ok := f.Node(id)
	if !ok || !n.Active {
		return false
	}
	for _, a := range f.Ancestors(id) {
		if !a.Active {
			return false
		}
	}
	return true
}

// Paths returns every node identity in insertion order, duplicates included.
func (f *Forest) Paths() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.nodes))
	for i, n := range f.nodes {
		out[i] = n.Path
	}
	return out
}

// Clone returns a deep copy. A nil forest clones to an empty one.
func (f *Forest) Clone() *Forest {
	out := NewForest()
	if f == nil {
		return out
	}
	out.nodes = make([]Node, len(f.nodes))
	copy(out.nodes, f.nodes)
	for k, v := range f.index {
		out.index[k] = v
	}
	for id, ls := range f.sources {
		out.sources[id] = append([]string(nil), ls...)
	}
	return out
}

// Sources returns the raw labels that end at id, in the order they were
// first seen. "work/a" ends at the node for segment "a".
func (f *Forest) Sources(id NodeID) []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.sources[id]...)
}

// ensure returns the node keyed by (path, parent), adding it with the given
// flag when missing.
func (f *Forest) ensure(path string, parent NodeID, active bool) Node {
	if n, ok := f.Lookup(path, parent); ok {
		return n
	}
	n := Node{
		ID:     NodeID(len(f.nodes)),
		Path:   path,
		Parent: parent,
		Active: active,
	}
	f.nodes = append(f.nodes, n)
	f.index[nodeKey{path: path, parent: parent}] = n.ID
	return n
}

func (f *Forest) addSource(id NodeID, label string) {
	for _, l := range f.sources[id] {
		if l == label {
			return
		}
	}
	f.sources[id] = append(f.sources[id], label)
}

func (f *Forest) setActive(id NodeID, active bool) {
	f.nodes[id].Active = active
}
