package cppgen

import (
	"fmt"
	"strings"

	"unstruct/internal/layout"
)

// SanitizeIdent turns arbitrary user text into a valid C identifier.
// Every character outside [A-Za-z0-9_] becomes an underscore, empty input
// becomes "unnamed", and a leading digit gets an underscore prepended.
func SanitizeIdent(s string) string {
	if s == "" {
		return "unnamed"
	}
	var b strings.Builder
	b.Grow(len(s) + 1)
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	if c := out[0]; c >= '0' && c <= '9' {
		out = "_" + out
	}
	return out
}

// StructTypeName resolves the canonical emitted type name of a struct or
// array node: the explicit type name, else the node's own name, else an
// anonymous name derived from the id.
func StructTypeName(n *layout.Node) string {
	if n.TypeName != "" {
		return SanitizeIdent(n.TypeName)
	}
	if n.Name != "" {
		return SanitizeIdent(n.Name)
	}
	return fmt.Sprintf("struct_%08X", n.ID)
}

// fieldName resolves a field's emitted name, falling back to an
// offset-derived placeholder for nameless nodes.
func fieldName(n *layout.Node) string {
	if n.Name == "" {
		return fmt.Sprintf("field_%04X", n.Offset)
	}
	return SanitizeIdent(n.Name)
}
