package cppgen

import (
	"fmt"

	"unstruct/internal/layout"
)

// genContext is the per-render scope. Every entry point builds a fresh one
// and discards it with the returned text; no state survives between
// renders, so concurrent renders over the same tree never share anything.
type genContext struct {
	tree     *layout.Tree
	idx      layout.ChildIndex
	aliases  map[layout.Kind]string
	ptrWidth int

	emittedIDs   map[uint64]bool
	emittedNames map[string]bool
	visiting     map[uint64]bool
	forwarded    map[uint64]bool

	lines  []line
	padSeq int
}

func newGenContext(t *layout.Tree, opts Options) *genContext {
	return &genContext{
		tree:         t,
		idx:          t.ChildIndex(),
		aliases:      opts.Aliases,
		ptrWidth:     opts.effectivePointerWidth(),
		emittedIDs:   make(map[uint64]bool),
		emittedNames: make(map[string]bool),
		visiting:     make(map[uint64]bool),
		forwarded:    make(map[uint64]bool),
	}
}

func (g *genContext) typeName(k layout.Kind) string {
	return TypeName(k, g.aliases)
}

func (g *genContext) sortedChildren(id uint64) []uint64 {
	return g.tree.SortedByOffset(g.idx[id])
}

func (g *genContext) add(text string) {
	g.lines = append(g.lines, line{text: text})
}

func (g *genContext) addf(format string, args ...any) {
	g.add(fmt.Sprintf(format, args...))
}

// addField appends a line carrying a deferred offset annotation; the
// aligner formats all annotations into one right-aligned comment column.
func (g *genContext) addField(text, note string) {
	g.lines = append(g.lines, line{text: text, note: note})
}

// nextPadName mints a unique padding field name from the render-scoped
// counter.
func (g *genContext) nextPadName() string {
	name := fmt.Sprintf("pad_%04X", g.padSeq)
	g.padSeq++
	return name
}

func (g *genContext) header() {
	g.add("#pragma once")
	g.add("")
}

// refTarget resolves a pointer node's reference to an existing struct
// node. Anything else counts as dangling.
func (g *genContext) refTarget(n *layout.Node) (*layout.Node, bool) {
	if n.RefID == 0 {
		return nil, false
	}
	t, ok := g.tree.ByID(n.RefID)
	if !ok || t.Kind != layout.KindStruct {
		return nil, false
	}
	return t, true
}

func ptrKindWidth(k layout.Kind) int {
	if k == layout.KindPtr32 {
		return 4
	}
	return 8
}

// emitStruct renders the definition of the struct with the given id plus
// everything it depends on, in dependency order, exactly once per type
// name. Reference cycles terminate via the visiting set; the pointer that
// closed the cycle compiles against a forward declaration.
func (g *genContext) emitStruct(id uint64) {
	if g.emittedIDs[id] {
		return
	}
	if g.visiting[id] {
		return
	}
	n, ok := g.tree.ByID(id)
	if !ok {
		return
	}

	g.visiting[id] = true
	defer delete(g.visiting, id)

	// Arrays contribute no standalone type; they are inlined as fields of
	// their parent. Only a struct element beneath one needs a definition.
	if n.Kind == layout.KindArray {
		for _, cid := range g.idx[id] {
			if c, ok := g.tree.ByID(cid); ok && c.Kind == layout.KindStruct {
				g.emitStruct(cid)
			}
		}
		return
	}
	if n.Kind != layout.KindStruct {
		return
	}

	// Two nodes resolving to one type name share one definition.
	name := StructTypeName(n)
	if g.emittedNames[name] {
		g.emittedIDs[id] = true
		return
	}

	children := g.sortedChildren(id)

	// Value dependencies first: their full definitions must precede this
	// struct's body.
	for _, cid := range children {
		if c, ok := g.tree.ByID(cid); ok && c.Kind == layout.KindStruct {
			g.emitStruct(cid)
		}
	}
	for _, cid := range children {
		c, ok := g.tree.ByID(cid)
		if !ok || c.Kind != layout.KindArray {
			continue
		}
		for _, eid := range g.idx[cid] {
			if e, ok := g.tree.ByID(eid); ok && e.Kind == layout.KindStruct {
				g.emitStruct(eid)
			}
		}
	}

	// Pointer targets need only a declaration before this body; their
	// definitions still land in the stream, after a cycle guard cut or
	// right here.
	for _, cid := range children {
		c, ok := g.tree.ByID(cid)
		if !ok || !c.Kind.IsPointer() || ptrKindWidth(c.Kind) != g.ptrWidth {
			continue
		}
		target, ok := g.refTarget(c)
		if !ok || g.emittedIDs[target.ID] {
			continue
		}
		if !g.forwarded[target.ID] {
			g.addf("struct %s;", StructTypeName(target))
			g.add("")
			g.forwarded[target.ID] = true
		}
		g.emitStruct(target.ID)
	}

	g.emittedIDs[id] = true
	g.emittedNames[name] = true

	span := g.tree.StructSpan(id, g.idx)
	g.addf("struct %s", name)
	g.add("{")
	g.emitBody(id, span)
	g.add("};")
	if span > 0 {
		// An empty C++ struct has sizeof 1, so only spanned structs get
		// the self-check.
		g.addf("static_assert(sizeof(%s) == 0x%X);", name, span)
	}
	g.add("")
}

// EmitRoot renders the struct with the given id and its dependencies.
// Absent or non-struct roots yield empty output.
func (g *Generator) EmitRoot(t *layout.Tree, rootID uint64) string {
	n, ok := t.ByID(rootID)
	if !ok || n.Kind != layout.KindStruct {
		return ""
	}
	ctx := newGenContext(t, g.opts)
	ctx.header()
	ctx.emitStruct(rootID)
	return render(ctx.lines)
}

// EmitAll renders every top-level struct in ascending offset order.
func (g *Generator) EmitAll(t *layout.Tree) string {
	ctx := newGenContext(t, g.opts)
	ctx.header()
	for _, id := range ctx.sortedChildren(0) {
		if n, ok := t.ByID(id); ok && n.Kind == layout.KindStruct {
			ctx.emitStruct(id)
		}
	}
	return render(ctx.lines)
}
