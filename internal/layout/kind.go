// Package layout models trees of typed memory regions with explicit byte offsets.
package layout

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Kind identifies the region type of a node. The set is closed: every
// switch over Kind in this module handles all of it.
type Kind int

const (
	KindNone Kind = iota // zero value, rejected by NewTree

	KindStruct
	KindArray

	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64

	KindFloat
	KindDouble
	KindBool

	KindPtr32
	KindPtr64

	KindVec2
	KindVec3
	KindVec4
	KindMat4x4

	KindText8
	KindText16

	KindHex
)

var kindNames = [...]string{
	KindNone:   "none",
	KindStruct: "struct",
	KindArray:  "array",
	KindInt8:   "int8",
	KindInt16:  "int16",
	KindInt32:  "int32",
	KindInt64:  "int64",
	KindUInt8:  "uint8",
	KindUInt16: "uint16",
	KindUInt32: "uint32",
	KindUInt64: "uint64",
	KindFloat:  "float",
	KindDouble: "double",
	KindBool:   "bool",
	KindPtr32:  "ptr32",
	KindPtr64:  "ptr64",
	KindVec2:   "vec2",
	KindVec3:   "vec3",
	KindVec4:   "vec4",
	KindMat4x4: "mat4x4",
	KindText8:  "text8",
	KindText16: "text16",
	KindHex:    "hex",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText serializes the kind by name for project documents.
func (k Kind) MarshalText() ([]byte, error) {
	if k <= KindNone || int(k) >= len(kindNames) {
		return nil, errors.Errorf("layout: cannot marshal kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText parses a kind by name. "none" and unknown names are rejected.
func (k *Kind) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range kindNames {
		if Kind(i) != KindNone && n == name {
			*k = Kind(i)
			return nil
		}
	}
	return errors.Errorf("layout: unknown kind %q", name)
}

// ParseKind resolves a kind name, for alias tables keyed by name.
func ParseKind(name string) (Kind, error) {
	var k Kind
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return KindNone, err
	}
	return k, nil
}

// IsContainer reports whether the kind owns child nodes.
func (k Kind) IsContainer() bool {
	return k == KindStruct || k == KindArray
}

// IsPointer reports whether the kind is a 32- or 64-bit pointer.
func (k Kind) IsPointer() bool {
	return k == KindPtr32 || k == KindPtr64
}
