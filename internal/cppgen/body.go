package cppgen

import (
	"fmt"

	"unstruct/internal/layout"
)

// emitBody renders one struct's field block: children in ascending offset
// order, padding synthesized for gaps, overlapping children degraded to
// comments, and runs of raw hex children collapsed into padding arrays.
func (g *genContext) emitBody(id uint64, span uint64) {
	children := g.sortedChildren(id)
	var cursor uint64

	for i := 0; i < len(children); {
		c, ok := g.tree.ByID(children[i])
		if !ok {
			i++
			continue
		}
		size := g.tree.ByteSize(c.ID, g.idx)

		if c.Offset > cursor {
			g.emitPad(cursor, c.Offset-cursor)
			cursor = c.Offset
		}

		if c.Offset < cursor {
			g.addf("\t// overlap: '%s' at 0x%04X overlaps previous field ending at 0x%04X",
				fieldName(c), c.Offset, cursor)
			if end := c.Offset + size; end > cursor {
				cursor = end
			}
			i++
			continue
		}

		// A run of two or more adjacent hex children becomes one padding
		// array. A member that collides with the run so far ends it and
		// re-enters the loop as an ordinary overlap.
		if c.Kind == layout.KindHex {
			runEnd := c.Offset + size
			j := i + 1
			for j < len(children) {
				nc, ok := g.tree.ByID(children[j])
				if !ok || nc.Kind != layout.KindHex || nc.Offset < runEnd {
					break
				}
				runEnd = nc.Offset + g.tree.ByteSize(nc.ID, g.idx)
				j++
			}
			if j-i >= 2 {
				g.emitPad(c.Offset, runEnd-c.Offset)
				cursor = runEnd
				i = j
				continue
			}
		}

		g.emitField(c)
		cursor = c.Offset + size
		i++
	}

	if cursor < span {
		g.emitPad(cursor, span-cursor)
	}
}

// emitPad synthesizes one padding byte-array field covering size bytes at
// the given offset.
func (g *genContext) emitPad(offset, size uint64) {
	g.addField(
		fmt.Sprintf("\t%s %s[%d];", g.typeName(layout.KindHex), g.nextPadName(), size),
		fmt.Sprintf("0x%04X", offset),
	)
}

// emitField renders one field declaration line for a child placed at the
// cursor. Arrays without elements degrade to a comment so the emitted
// sizes stay consistent with the modeled span.
func (g *genContext) emitField(c *layout.Node) {
	name := fieldName(c)
	note := fmt.Sprintf("0x%04X", c.Offset)
	var decl string

	switch c.Kind {
	case layout.KindVec2:
		decl = fmt.Sprintf("%s %s[2]", g.typeName(layout.KindFloat), name)
	case layout.KindVec3:
		decl = fmt.Sprintf("%s %s[3]", g.typeName(layout.KindFloat), name)
	case layout.KindVec4:
		decl = fmt.Sprintf("%s %s[4]", g.typeName(layout.KindFloat), name)
	case layout.KindMat4x4:
		decl = fmt.Sprintf("%s %s[4][4]", g.typeName(layout.KindFloat), name)
	case layout.KindText8, layout.KindText16:
		count := c.Count
		if count < 0 {
			count = 0
		}
		decl = fmt.Sprintf("%s %s[%d]", g.typeName(c.Kind), name, count)
	case layout.KindHex:
		count := c.Count
		if count < 1 {
			count = 1
		}
		decl = fmt.Sprintf("%s %s[%d]", g.typeName(c.Kind), name, count)
	case layout.KindPtr32, layout.KindPtr64:
		target, ok := g.refTarget(c)
		if ptrKindWidth(c.Kind) == g.ptrWidth {
			if ok {
				decl = fmt.Sprintf("%s *%s", StructTypeName(target), name)
			} else {
				decl = fmt.Sprintf("void *%s", name)
			}
			break
		}
		// Foreign-width pointers cannot be pointer-typed without changing
		// the struct's size, so they become integers of the right width.
		decl = fmt.Sprintf("%s %s", g.typeName(c.Kind), name)
		if ok {
			note += " -> " + StructTypeName(target)
		}
	case layout.KindStruct:
		decl = fmt.Sprintf("%s %s", StructTypeName(c), name)
	case layout.KindArray:
		if c.Count <= 0 {
			g.addf("\t// array '%s' at 0x%04X has no elements", name, c.Offset)
			return
		}
		decl = g.arrayDecl(c, name)
	default:
		decl = fmt.Sprintf("%s %s", g.typeName(c.Kind), name)
	}

	g.addField("\t"+decl+";", note)
}

// arrayDecl builds the declarator for an inlined array child. Multi-value
// element kinds expand into extra dimensions so the declared byte size
// matches the modeled one.
func (g *genContext) arrayDecl(c *layout.Node, name string) string {
	switch c.Elem {
	case layout.KindStruct:
		elem := g.typeName(layout.KindHex)
		for _, eid := range g.idx[c.ID] {
			if e, ok := g.tree.ByID(eid); ok && e.Kind == layout.KindStruct {
				elem = StructTypeName(e)
				break
			}
		}
		return fmt.Sprintf("%s %s[%d]", elem, name, c.Count)
	case layout.KindVec2:
		return fmt.Sprintf("%s %s[%d][2]", g.typeName(layout.KindFloat), name, c.Count)
	case layout.KindVec3:
		return fmt.Sprintf("%s %s[%d][3]", g.typeName(layout.KindFloat), name, c.Count)
	case layout.KindVec4:
		return fmt.Sprintf("%s %s[%d][4]", g.typeName(layout.KindFloat), name, c.Count)
	case layout.KindMat4x4:
		return fmt.Sprintf("%s %s[%d][4][4]", g.typeName(layout.KindFloat), name, c.Count)
	default:
		elem := g.typeName(c.Elem)
		if elem == "" {
			elem = g.typeName(layout.KindHex)
		}
		return fmt.Sprintf("%s %s[%d]", elem, name, c.Count)
	}
}
