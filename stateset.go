package automata

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

var _ Hashable = &frozenStateSet{}

// frozenStateSet is an immutable, sorted snapshot of a state set, used as the identity of a
// subset-construction state. Equal sets always produce the same hash regardless of how they were
// built.
type frozenStateSet struct {
	values   []int
	hashCode uint64
}

func freezeStateSet(set *bitset.BitSet) *frozenStateSet {
	values := make([]int, 0, set.Count())
	hashCode := uint64(set.Count())
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		values = append(values, int(s))
		hashCode += uint64(mix32(int(s)))
	}
	return &frozenStateSet{values: values, hashCode: hashCode}
}

func (f *frozenStateSet) Hash() uint64 {
	return f.hashCode
}

func (f *frozenStateSet) Equals(other Hashable) bool {
	o, ok := other.(*frozenStateSet)
	if !ok || f == nil || o == nil {
		return ok && f == o
	}
	return f.hashCode == o.hashCode && slices.Equal(f.values, o.values)
}

func (f *frozenStateSet) Size() int {
	return len(f.values)
}

// mix32 is the 32-bit finalization step of MurmurHash3.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}
