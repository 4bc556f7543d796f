package typegraph

import (
	"github.com/zboralski/lattice"

	"unstruct/internal/cppgen"
	"unstruct/internal/layout"
)

// BuildRefGraph constructs a lattice.Graph over emitted struct type names.
// Each struct node becomes a graph node under its resolved type name, so
// same-named structs collapse together. Containment, array elements, and
// resolvable pointer references become edges from the enclosing type to
// the referenced one. Dangling pointers are skipped.
func BuildRefGraph(t *layout.Tree) *lattice.Graph {
	idx := t.ChildIndex()
	g := &lattice.Graph{}

	nodes := t.Nodes()
	for i := range nodes {
		n := &nodes[i]
		if n.Kind != layout.KindStruct {
			continue
		}
		from := cppgen.StructTypeName(n)
		g.Nodes = append(g.Nodes, from)

		for _, cid := range idx[n.ID] {
			c, ok := t.ByID(cid)
			if !ok {
				continue
			}
			switch {
			case c.Kind == layout.KindStruct:
				g.Edges = append(g.Edges, lattice.Edge{
					Caller: from,
					Callee: cppgen.StructTypeName(c),
				})
			case c.Kind == layout.KindArray:
				for _, eid := range idx[cid] {
					if e, ok := t.ByID(eid); ok && e.Kind == layout.KindStruct {
						g.Edges = append(g.Edges, lattice.Edge{
							Caller: from,
							Callee: cppgen.StructTypeName(e),
						})
					}
				}
			case c.Kind.IsPointer():
				target, ok := t.ByID(c.RefID)
				if !ok || target.Kind != layout.KindStruct {
					continue
				}
				g.Edges = append(g.Edges, lattice.Edge{
					Caller: from,
					Callee: cppgen.StructTypeName(target),
				})
			}
		}
	}

	g.Dedup()
	return g
}
