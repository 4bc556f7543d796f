package cppgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"unstruct/internal/layout"
)

func TestEmitRoot_PadsGaps(t *testing.T) {
	// int32 at 0x0, int32 at 0xC: eight unclaimed bytes in between, none
	// after the last field.
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindInt32, Name: "a", ParentID: 1, Offset: 0},
		{ID: 3, Kind: layout.KindInt32, Name: "b", ParentID: 1, Offset: 12},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "uint8_t pad_0000[8];")
	assert.Contains(t, out, "// 0x0004")
	assert.NotContains(t, out, "pad_0001")
	assert.Contains(t, out, "static_assert(sizeof(S) == 0x10);")
}

func TestEmitRoot_OverlapBecomesComment(t *testing.T) {
	// The int32 at 0x4 sits inside the double occupying 0x0..0x8.
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindDouble, Name: "a", ParentID: 1, Offset: 0},
		{ID: 3, Kind: layout.KindInt32, Name: "b", ParentID: 1, Offset: 4},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "// overlap: 'b' at 0x0004 overlaps previous field ending at 0x0008")
	assert.NotContains(t, out, "int32_t b")
	assert.NotContains(t, out, "pad_")
	assert.Contains(t, out, "static_assert(sizeof(S) == 0x8);")
}

func TestEmitRoot_OverlapKeepsFarthestEnd(t *testing.T) {
	// The second double reaches 0xC, past the first one's end. The int16
	// at 0x6 must be reported against 0xC, not against a rewound cursor.
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindDouble, Name: "a", ParentID: 1, Offset: 0},
		{ID: 3, Kind: layout.KindDouble, Name: "b", ParentID: 1, Offset: 4},
		{ID: 4, Kind: layout.KindInt16, Name: "c", ParentID: 1, Offset: 6},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "'b' at 0x0004 overlaps previous field ending at 0x0008")
	assert.Contains(t, out, "'c' at 0x0006 overlaps previous field ending at 0x000C")
	assert.Contains(t, out, "static_assert(sizeof(S) == 0xC);")
}

func TestEmitRoot_HexRunCollapses(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindHex, Name: "junk1", ParentID: 1, Offset: 0, Count: 4},
		{ID: 3, Kind: layout.KindHex, Name: "junk2", ParentID: 1, Offset: 4, Count: 4},
		{ID: 4, Kind: layout.KindInt32, Name: "x", ParentID: 1, Offset: 8},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "uint8_t pad_0000[8];")
	assert.NotContains(t, out, "junk1")
	assert.NotContains(t, out, "junk2")
	assert.Contains(t, out, "int32_t x;")
	assert.Contains(t, out, "static_assert(sizeof(S) == 0xC);")
}

func TestEmitRoot_HexRunAbsorbsInteriorGap(t *testing.T) {
	// Two hex scraps at 0x0 and 0x6 with a hole between them collapse
	// into one padding array covering 0x0..0x8.
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindHex, Name: "h1", ParentID: 1, Offset: 0, Count: 2},
		{ID: 3, Kind: layout.KindHex, Name: "h2", ParentID: 1, Offset: 6, Count: 2},
		{ID: 4, Kind: layout.KindInt32, Name: "x", ParentID: 1, Offset: 8},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "uint8_t pad_0000[8];")
	assert.Contains(t, out, "// 0x0000")
	assert.NotContains(t, out, "pad_0001")
	assert.Contains(t, out, "static_assert(sizeof(S) == 0xC);")
}

func TestEmitRoot_OverlapBreaksHexRun(t *testing.T) {
	// The second hex field starts inside the first, so no run forms: the
	// first stays a named field and the second degrades to an overlap.
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindHex, Name: "a", ParentID: 1, Offset: 0, Count: 4},
		{ID: 3, Kind: layout.KindHex, Name: "b", ParentID: 1, Offset: 2, Count: 4},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "uint8_t a[4];")
	assert.Contains(t, out, "// overlap: 'b' at 0x0002 overlaps previous field ending at 0x0004")
	assert.NotContains(t, out, "pad_0000")
	assert.Contains(t, out, "static_assert(sizeof(S) == 0x6);")
}

func TestEmitRoot_SingleHexKeepsFieldName(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindHex, Name: "raw", ParentID: 1, Offset: 0, Count: 4},
		{ID: 3, Kind: layout.KindInt32, Name: "x", ParentID: 1, Offset: 4},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "uint8_t raw[4];")
	assert.NotContains(t, out, "pad_")
}

func TestEmitRoot_FieldShapes(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "Transform"},
		{ID: 2, Kind: layout.KindVec2, Name: "uv", ParentID: 1, Offset: 0},
		{ID: 3, Kind: layout.KindVec4, Name: "rot", ParentID: 1, Offset: 8},
		{ID: 4, Kind: layout.KindMat4x4, Name: "world", ParentID: 1, Offset: 24},
		{ID: 5, Kind: layout.KindText8, Name: "tag", ParentID: 1, Offset: 88, Count: 16},
		{ID: 6, Kind: layout.KindText16, Name: "wtag", ParentID: 1, Offset: 104, Count: 8},
		{ID: 7, Kind: layout.KindBool, Name: "alive", ParentID: 1, Offset: 120},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "float uv[2];")
	assert.Contains(t, out, "float rot[4];")
	assert.Contains(t, out, "float world[4][4];")
	assert.Contains(t, out, "char tag[16];")
	assert.Contains(t, out, "wchar_t wtag[8];")
	assert.Contains(t, out, "bool alive;")
	assert.NotContains(t, out, "pad_")
	assert.Contains(t, out, "static_assert(sizeof(Transform) == 0x79);")
}

func TestEmitRoot_Pointers(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "Handle"},
		{ID: 2, Kind: layout.KindPtr64, Name: "next", ParentID: 1, Offset: 0, RefID: 6},
		{ID: 3, Kind: layout.KindPtr64, Name: "user", ParentID: 1, Offset: 8},
		{ID: 4, Kind: layout.KindPtr32, Name: "legacy", ParentID: 1, Offset: 16, RefID: 6},
		{ID: 5, Kind: layout.KindInt32, Name: "flags", ParentID: 1, Offset: 20},
		{ID: 6, Kind: layout.KindStruct, Name: "Target", Offset: 0x100},
		{ID: 7, Kind: layout.KindInt32, Name: "x", ParentID: 6, Offset: 0},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "struct Target;")
	assert.Contains(t, out, "Target *next;")
	assert.Contains(t, out, "void *user;")
	assert.Contains(t, out, "uint32_t legacy;")
	assert.Contains(t, out, "// 0x0010 -> Target")
	assert.Contains(t, out, "static_assert(sizeof(Target) == 0x4);")
	assert.Contains(t, out, "static_assert(sizeof(Handle) == 0x18);")
	assert.Less(t, strings.Index(out, "struct Target\n"), strings.Index(out, "struct Handle\n"),
		"pointer target must be defined before the struct that points at it")
}

func TestEmitRoot_PointerWidth4(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "Handle"},
		{ID: 2, Kind: layout.KindPtr64, Name: "next", ParentID: 1, Offset: 0, RefID: 6},
		{ID: 3, Kind: layout.KindPtr64, Name: "user", ParentID: 1, Offset: 8},
		{ID: 4, Kind: layout.KindPtr32, Name: "legacy", ParentID: 1, Offset: 16, RefID: 6},
		{ID: 6, Kind: layout.KindStruct, Name: "Target", Offset: 0x100},
		{ID: 7, Kind: layout.KindInt32, Name: "x", ParentID: 6, Offset: 0},
	})

	out := New(Options{PointerWidth: 4}).EmitRoot(tree, 1)
	assert.Contains(t, out, "uint64_t next;")
	assert.Contains(t, out, "// 0x0000 -> Target")
	assert.Contains(t, out, "uint64_t user;")
	assert.Contains(t, out, "Target *legacy;")
	assert.Equal(t, 1, strings.Count(out, "-> Target"),
		"only resolvable foreign-width pointers get an annotation")
}

func TestEmitRoot_ArrayInlined(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "Squad"},
		{ID: 2, Kind: layout.KindArray, Name: "members", ParentID: 1, Offset: 0, Elem: layout.KindStruct, Count: 4},
		{ID: 3, Kind: layout.KindStruct, TypeName: "Soldier", ParentID: 2},
		{ID: 4, Kind: layout.KindInt32, Name: "id", ParentID: 3, Offset: 0},
		{ID: 5, Kind: layout.KindArray, Name: "scores", ParentID: 1, Offset: 64, Elem: layout.KindFloat, Count: 8},
		{ID: 6, Kind: layout.KindArray, Name: "empty", ParentID: 1, Offset: 96, Elem: layout.KindInt32, Count: 0},
		{ID: 7, Kind: layout.KindInt32, Name: "count", ParentID: 1, Offset: 96},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "Soldier members[4];")
	assert.Contains(t, out, "float scores[8];")
	assert.Contains(t, out, "// array 'empty' at 0x0060 has no elements")
	assert.Contains(t, out, "int32_t count;")
	assert.Contains(t, out, "struct Soldier\n{")
	assert.NotContains(t, out, "struct members")
	assert.Contains(t, out, "static_assert(sizeof(Squad) == 0x64);")
}

func TestEmitRoot_ArrayOfVectors(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "Spline"},
		{ID: 2, Kind: layout.KindArray, Name: "knots", ParentID: 1, Offset: 0, Elem: layout.KindVec3, Count: 2},
		{ID: 3, Kind: layout.KindInt32, Name: "used", ParentID: 1, Offset: 24},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "float knots[2][3];")
	assert.NotContains(t, out, "pad_")
	assert.Contains(t, out, "static_assert(sizeof(Spline) == 0x1C);")
}

func TestEmitRoot_AliasesApply(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindInt32, Name: "x", ParentID: 1, Offset: 0},
		{ID: 3, Kind: layout.KindVec2, Name: "uv", ParentID: 1, Offset: 8},
	})
	aliases := map[layout.Kind]string{
		layout.KindInt32: "DWORD",
		layout.KindFloat: "f32",
		layout.KindHex:   "BYTE",
	}

	out := New(Options{Aliases: aliases}).EmitRoot(tree, 1)
	assert.Contains(t, out, "DWORD x;")
	assert.Contains(t, out, "f32 uv[2];")
	assert.Contains(t, out, "BYTE pad_0000[4];")

	// A generator without the table is untouched by the first one.
	plain := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, plain, "int32_t x;")
	assert.Contains(t, plain, "uint8_t pad_0000[4];")
	assert.NotContains(t, plain, "DWORD")
}

func TestEmitRoot_UnnamedFieldFallback(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindInt32, ParentID: 1, Offset: 0},
		{ID: 3, Kind: layout.KindInt32, ParentID: 1, Offset: 0x10},
	})

	out := New(Options{}).EmitRoot(tree, 1)
	assert.Contains(t, out, "int32_t field_0000;")
	assert.Contains(t, out, "int32_t field_0010;")
}

func TestEmitBody_TailPadding(t *testing.T) {
	// Spans wider than the last child only occur for callers driving the
	// body emitter directly, but the tail must still be filled.
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "S"},
		{ID: 2, Kind: layout.KindInt32, Name: "a", ParentID: 1, Offset: 0},
	})

	ctx := newGenContext(tree, Options{})
	ctx.emitBody(1, 16)
	out := render(ctx.lines)
	assert.Contains(t, out, "uint8_t pad_0000[12];")
	assert.Contains(t, out, "// 0x0004")
}

func TestEmitAll_PadCounterSpansWholeRender(t *testing.T) {
	tree := mustTree(t, []layout.Node{
		{ID: 1, Kind: layout.KindStruct, Name: "A"},
		{ID: 2, Kind: layout.KindInt32, Name: "x", ParentID: 1, Offset: 0},
		{ID: 3, Kind: layout.KindInt32, Name: "y", ParentID: 1, Offset: 8},
		{ID: 4, Kind: layout.KindStruct, Name: "B", Offset: 0x100},
		{ID: 5, Kind: layout.KindInt32, Name: "x", ParentID: 4, Offset: 0},
		{ID: 6, Kind: layout.KindInt32, Name: "y", ParentID: 4, Offset: 8},
	})

	out := New(Options{}).EmitAll(tree)
	first := strings.Index(out, "pad_0000")
	second := strings.Index(out, "pad_0001")
	assert.Greater(t, first, 0)
	assert.Greater(t, second, first, "counter must keep climbing across structs in one render")
	assert.NotContains(t, out, "pad_0002")
}
