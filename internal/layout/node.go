package layout

// Node is one typed memory region. A node's Offset is always relative to
// its immediate parent, never absolute.
type Node struct {
	ID       uint64 `json:"id"`
	Kind     Kind   `json:"kind"`
	Name     string `json:"name,omitempty"`
	ParentID uint64 `json:"parent,omitempty"` // 0 = top level
	Offset   uint64 `json:"offset"`

	// Elem and Count describe array nodes: element kind and element count.
	// Count doubles as the declared length for text nodes and the byte
	// count for hex nodes.
	Elem  Kind `json:"elem,omitempty"`
	Count int  `json:"count,omitempty"`

	// RefID names the struct node a pointer targets; 0 = no target.
	RefID uint64 `json:"ref,omitempty"`

	// TypeName overrides the emitted type name for struct and array nodes.
	// Falls back to Name, then to an id-derived anonymous name.
	TypeName string `json:"type_name,omitempty"`
}

// clampCount normalizes a declared count to a usable element count.
func clampCount(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// scalarSize returns the byte size of a non-container kind. Container
// kinds and KindNone return 0; their sizes come from their subtrees.
func scalarSize(n *Node) uint64 {
	switch n.Kind {
	case KindInt8, KindUInt8, KindBool:
		return 1
	case KindInt16, KindUInt16:
		return 2
	case KindInt32, KindUInt32, KindFloat:
		return 4
	case KindInt64, KindUInt64, KindDouble:
		return 8
	case KindPtr32:
		return 4
	case KindPtr64:
		return 8
	case KindVec2:
		return 8
	case KindVec3:
		return 12
	case KindVec4:
		return 16
	case KindMat4x4:
		return 64
	case KindText8:
		return clampCount(n.Count)
	case KindText16:
		return 2 * clampCount(n.Count)
	case KindHex:
		if n.Count < 1 {
			return 1
		}
		return uint64(n.Count)
	case KindStruct, KindArray, KindNone:
		return 0
	}
	return 0
}

// elemSize returns the per-element byte size of an array node. Struct
// elements take the span of the array's first struct-kind child; an array
// declared with a struct element but carrying none degrades to one byte.
func (t *Tree) elemSize(n *Node, idx ChildIndex) uint64 {
	if n.Elem == KindStruct {
		for _, cid := range idx[n.ID] {
			if c, ok := t.ByID(cid); ok && c.Kind == KindStruct {
				return t.StructSpan(cid, idx)
			}
		}
		return 1
	}
	e := Node{Kind: n.Elem, Count: 1}
	if s := scalarSize(&e); s > 0 {
		return s
	}
	return 1
}

// ByteSize returns the number of bytes the node with the given id occupies
// within its parent. Struct and array sizes are derived entirely from the
// subtree; there is no independently stored size to trust.
func (t *Tree) ByteSize(id uint64, idx ChildIndex) uint64 {
	n, ok := t.ByID(id)
	if !ok {
		return 0
	}
	switch n.Kind {
	case KindStruct:
		return t.StructSpan(id, idx)
	case KindArray:
		return clampCount(n.Count) * t.elemSize(n, idx)
	default:
		return scalarSize(n)
	}
}
