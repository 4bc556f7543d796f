package layout

import "fmt"

// DiagKind classifies a lint diagnostic.
type DiagKind string

const (
	DiagDanglingRef DiagKind = "dangling_ref"
	DiagOverlap     DiagKind = "overlap"
	DiagEmptyArray  DiagKind = "empty_array"
	DiagNoElement   DiagKind = "no_element"
	DiagEmptyText   DiagKind = "empty_text"
	DiagOrphan      DiagKind = "orphan"
)

// Diag records a non-fatal model issue found by Lint.
type Diag struct {
	NodeID uint64   `json:"node_id"`
	Kind   DiagKind `json:"kind"`
	Msg    string   `json:"msg"`
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] node %d: %s", d.Kind, d.NodeID, d.Msg)
}

// Diags accumulates diagnostics.
type Diags struct {
	items []Diag
}

func (d *Diags) Add(id uint64, kind DiagKind, msg string) {
	d.items = append(d.items, Diag{NodeID: id, Kind: kind, Msg: msg})
}

func (d *Diags) Addf(id uint64, kind DiagKind, format string, args ...any) {
	d.items = append(d.items, Diag{NodeID: id, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

// Lint inspects a tree for model issues the generator tolerates but a user
// probably wants to know about. It never mutates the tree and never fails.
func Lint(t *Tree) []Diag {
	var diags Diags
	idx := t.ChildIndex()

	for i := range t.Nodes() {
		n := &t.Nodes()[i]

		if n.ParentID != 0 {
			if _, ok := t.ByID(n.ParentID); !ok {
				diags.Addf(n.ID, DiagOrphan, "parent %d does not exist", n.ParentID)
			}
		}

		switch n.Kind {
		case KindPtr32, KindPtr64:
			if n.RefID == 0 {
				break
			}
			target, ok := t.ByID(n.RefID)
			if !ok {
				diags.Addf(n.ID, DiagDanglingRef, "pointer target %d does not exist", n.RefID)
			} else if target.Kind != KindStruct {
				diags.Addf(n.ID, DiagDanglingRef, "pointer target %d is %s, not a struct", n.RefID, target.Kind)
			}
		case KindArray:
			if n.Count <= 0 {
				diags.Addf(n.ID, DiagEmptyArray, "array %q has count %d", n.Name, n.Count)
			}
			if n.Elem == KindStruct && !hasStructChild(t, idx, n.ID) {
				diags.Addf(n.ID, DiagNoElement, "array %q declares a struct element but has no struct child", n.Name)
			}
		case KindText8, KindText16:
			if n.Count <= 0 {
				diags.Addf(n.ID, DiagEmptyText, "text %q has length %d", n.Name, n.Count)
			}
		}
	}

	// Overlapping siblings, per container, in offset order. Top-level
	// offsets order roots without packing them, so parent 0 is skipped.
	// Containers are visited in insertion order to keep diagnostics stable.
	var parents []uint64
	for i := range t.Nodes() {
		if n := &t.Nodes()[i]; n.Kind.IsContainer() {
			parents = append(parents, n.ID)
		}
	}
	for _, parent := range parents {
		var cursor uint64
		for _, cid := range t.SortedByOffset(idx[parent]) {
			c, ok := t.ByID(cid)
			if !ok {
				continue
			}
			if c.Offset < cursor {
				diags.Addf(cid, DiagOverlap, "offset 0x%X overlaps previous sibling ending at 0x%X", c.Offset, cursor)
			}
			if end := c.Offset + t.ByteSize(cid, idx); end > cursor {
				cursor = end
			}
		}
	}

	return diags.Items()
}

func hasStructChild(t *Tree, idx ChildIndex, id uint64) bool {
	for _, cid := range idx[id] {
		if c, ok := t.ByID(cid); ok && c.Kind == KindStruct {
			return true
		}
	}
	return false
}
