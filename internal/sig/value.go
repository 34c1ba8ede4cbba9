package sig

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the types allowed in signature payloads.
// Only String, Int, Bool, Array, and Object implement it. Floats are
// excluded: signature payloads are descriptor tags and counts, and float
// formatting would break hash determinism.
type Value interface {
	sigValue() // Sealed - only these types implement it
}

// String is a string value in a signature payload.
type String string

func (String) sigValue() {}

// Int is an integer value in a signature payload. Always int64.
type Int int64

func (Int) sigValue() {}

// Bool is a boolean value in a signature payload.
type Bool bool

func (Bool) sigValue() {}

// Array is an ordered list of signature values.
type Array []Value

func (Array) sigValue() {}

// Object is a map of string keys to signature values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) sigValue() {}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings compares UTF-8 bytes, which produces a different order
// for strings containing surrogate-pair code points.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required by
// RFC 8785 canonical JSON.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
