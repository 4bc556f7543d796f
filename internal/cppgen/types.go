package cppgen

import "unstruct/internal/layout"

// TypeName returns the C++ type name emitted for a primitive kind. A
// non-empty alias wins; otherwise the built-in default applies. Total:
// container kinds simply have no primitive name and yield "".
func TypeName(k layout.Kind, aliases map[layout.Kind]string) string {
	if s, ok := aliases[k]; ok && s != "" {
		return s
	}
	switch k {
	case layout.KindVec2, layout.KindVec3, layout.KindVec4, layout.KindMat4x4:
		// Vector and matrix fields are arrays of the float element type,
		// so an aliased float renames them too.
		return TypeName(layout.KindFloat, aliases)
	}
	return defaultTypeName(k)
}

func defaultTypeName(k layout.Kind) string {
	switch k {
	case layout.KindInt8:
		return "int8_t"
	case layout.KindInt16:
		return "int16_t"
	case layout.KindInt32:
		return "int32_t"
	case layout.KindInt64:
		return "int64_t"
	case layout.KindUInt8:
		return "uint8_t"
	case layout.KindUInt16:
		return "uint16_t"
	case layout.KindUInt32:
		return "uint32_t"
	case layout.KindUInt64:
		return "uint64_t"
	case layout.KindFloat:
		return "float"
	case layout.KindDouble:
		return "double"
	case layout.KindBool:
		return "bool"
	case layout.KindPtr32:
		return "uint32_t"
	case layout.KindPtr64:
		return "uint64_t"
	case layout.KindVec2, layout.KindVec3, layout.KindVec4, layout.KindMat4x4:
		return defaultTypeName(layout.KindFloat)
	case layout.KindText8:
		return "char"
	case layout.KindText16:
		return "wchar_t"
	case layout.KindHex:
		return "uint8_t"
	case layout.KindStruct, layout.KindArray, layout.KindNone:
		return ""
	}
	return ""
}
