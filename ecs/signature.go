package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxComponents is the number of distinct component types a ComponentRegistry
// can hold. It is also the width of a Signature.
const MaxComponents = 32

// ComponentID is the small integer assigned to a component type by a
// ComponentRegistry. It doubles as the component's bit in a Signature.
type ComponentID uint8

// Signature is a fixed-width set of component ids. Entities use it to record
// which components they currently own; systems use it to declare the
// components they require.
type Signature uint32

// Set enables the bit for the given component id.
func (s *Signature) Set(id ComponentID) {
	*s |= 1 << id
}

// Unset disables the bit for the given component id.
func (s *Signature) Unset(id ComponentID) {
	*s &^= 1 << id
}

// Test reports whether the bit for the given component id is set.
func (s Signature) Test(id ComponentID) bool {
	return s&(1<<id) != 0
}

// And returns the intersection of two signatures.
func (s Signature) And(other Signature) Signature {
	return s & other
}

// Contains reports whether every bit set in sub is also set in s. A system
// with signature sub is interested in an entity with signature s exactly
// when s.Contains(sub).
func (s Signature) Contains(sub Signature) bool {
	return s&sub == sub
}

// Reset clears every bit.
func (s *Signature) Reset() {
	*s = 0
}

// Count returns the number of bits set.
func (s Signature) Count() int {
	return bits.OnesCount32(uint32(s))
}

// IsEmpty reports whether no bit is set.
func (s Signature) IsEmpty() bool {
	return s == 0
}

// IDs returns the set component ids in ascending order.
func (s Signature) IDs() []ComponentID {
	ids := make([]ComponentID, 0, s.Count())
	for v := uint32(s); v != 0; v &= v - 1 {
		ids = append(ids, ComponentID(bits.TrailingZeros32(v)))
	}
	return ids
}

// String renders the signature as a binary string, most significant bit first.
func (s Signature) String() string {
	b := strconv.FormatUint(uint64(s), 2)
	return strings.Repeat("0", MaxComponents-len(b)) + b
}
