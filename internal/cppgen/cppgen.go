// Package cppgen compiles layout trees into C++ struct definitions whose
// compiled layout matches the modeled layout byte for byte. Rendering is a
// pure function over the tree: no I/O, no shared state, no error paths.
// Malformed input degrades to inline comments or opaque types instead of
// failing.
package cppgen

import "unstruct/internal/layout"

// Options configures a Generator.
type Options struct {
	// Aliases overrides emitted type names per primitive kind. Empty
	// values fall through to the built-in defaults.
	Aliases map[layout.Kind]string

	// PointerWidth is the native pointer size in bytes, 4 or 8.
	// 0 selects 8. Pointer nodes of the other width emit as integers.
	PointerWidth int
}

func (o Options) effectivePointerWidth() int {
	if o.PointerWidth == 4 {
		return 4
	}
	return 8
}

// Emitter renders C++ definitions from a layout tree.
type Emitter interface {
	// EmitRoot renders the struct with the given id plus everything it
	// depends on. Absent or non-struct roots yield empty output.
	EmitRoot(t *layout.Tree, rootID uint64) string

	// EmitAll renders every top-level struct in offset order.
	EmitAll(t *layout.Tree) string
}

// Generator is the production Emitter.
type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Disabled is an Emitter that renders nothing, for configurations with
// generation switched off.
type Disabled struct{}

func (Disabled) EmitRoot(*layout.Tree, uint64) string { return "" }
func (Disabled) EmitAll(*layout.Tree) string          { return "" }
