package layout

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrZeroID      = errors.New("layout: node id 0 is reserved for the top level")
	ErrNoKind      = errors.New("layout: node has no kind")
	ErrDuplicateID = errors.New("layout: duplicate node id")
	ErrSelfParent  = errors.New("layout: node is its own parent")
	ErrParentCycle = errors.New("layout: parent chain cycle")
)

// Tree is an arena of nodes keyed by id. Nodes reference each other only
// through ids; the tree never holds Node-to-Node pointers.
type Tree struct {
	nodes []Node
	byID  map[uint64]int
}

// ChildIndex maps a parent id to its direct children in insertion order.
// Consumers that need offset order sort a copy themselves.
type ChildIndex map[uint64][]uint64

// NewTree builds an arena over the given nodes, in their given order.
// It rejects structurally unusable input: id 0, missing kinds, duplicate
// ids, and parent chains that loop instead of reaching the top level.
// A node whose parent id is unknown is kept; it is simply unreachable
// from any root and reported by Lint.
func NewTree(nodes []Node) (*Tree, error) {
	t := &Tree{
		nodes: make([]Node, len(nodes)),
		byID:  make(map[uint64]int, len(nodes)),
	}
	copy(t.nodes, nodes)

	for i := range t.nodes {
		n := &t.nodes[i]
		if n.ID == 0 {
			return nil, ErrZeroID
		}
		if n.Kind == KindNone {
			return nil, errors.Errorf("%w: node %d", ErrNoKind, n.ID)
		}
		if _, ok := t.byID[n.ID]; ok {
			return nil, errors.Errorf("%w: %d", ErrDuplicateID, n.ID)
		}
		if n.ParentID == n.ID {
			return nil, errors.Errorf("%w: %d", ErrSelfParent, n.ID)
		}
		t.byID[n.ID] = i
	}

	for i := range t.nodes {
		if err := t.checkParentChain(t.nodes[i].ID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// checkParentChain walks a node's parent chain and fails if it revisits a
// node before reaching the top level. Chains that run into an unknown
// parent id terminate there and are fine.
func (t *Tree) checkParentChain(id uint64) error {
	seen := map[uint64]bool{id: true}
	cur := id
	for {
		n, ok := t.ByID(cur)
		if !ok || n.ParentID == 0 {
			return nil
		}
		if seen[n.ParentID] {
			return errors.Errorf("%w: node %d", ErrParentCycle, id)
		}
		seen[n.ParentID] = true
		cur = n.ParentID
	}
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Nodes returns the nodes in insertion order. The slice is shared; callers
// must not mutate it.
func (t *Tree) Nodes() []Node { return t.nodes }

// ByID looks a node up by id.
func (t *Tree) ByID(id uint64) (*Node, bool) {
	i, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return &t.nodes[i], true
}

// ChildIndex builds the parent-to-children index over the whole tree,
// preserving insertion order within each parent. Built once per render.
func (t *Tree) ChildIndex() ChildIndex {
	idx := make(ChildIndex)
	for i := range t.nodes {
		n := &t.nodes[i]
		idx[n.ParentID] = append(idx[n.ParentID], n.ID)
	}
	return idx
}

// StructSpan returns the total byte size of the subtree rooted at a struct
// or array node: the maximum childOffset+childSize over its direct
// children, or 0 if it has none.
func (t *Tree) StructSpan(id uint64, idx ChildIndex) uint64 {
	var span uint64
	for _, cid := range idx[id] {
		c, ok := t.ByID(cid)
		if !ok {
			continue
		}
		if end := c.Offset + t.ByteSize(cid, idx); end > span {
			span = end
		}
	}
	return span
}

// SortedByOffset returns the given child ids reordered by ascending
// offset. The sort is stable so equal offsets keep insertion order.
func (t *Tree) SortedByOffset(ids []uint64) []uint64 {
	out := make([]uint64, len(ids))
	copy(out, ids)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := t.ByID(out[i])
		b, bok := t.ByID(out[j])
		if !aok || !bok {
			return !aok && bok
		}
		return a.Offset < b.Offset
	})
	return out
}
