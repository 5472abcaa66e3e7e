package automata

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
)

// collidingKey hashes every value with the same length to the same bucket.
type collidingKey struct {
	part1 int
	part2 string
}

func (k collidingKey) Hash() uint64 {
	return uint64(k.part1 + len(k.part2))
}

func (k collidingKey) Equals(other Hashable) bool {
	o, ok := other.(collidingKey)
	return ok && k.part1 == o.part1 && k.part2 == o.part2
}

type intKey int

func (k intKey) Hash() uint64 {
	return uint64(k)
}

func (k intKey) Equals(other Hashable) bool {
	o, ok := other.(intKey)
	return ok && k == o
}

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := newHashMap[string](withCapacity(8))
		key := collidingKey{1, "a"}
		hm.Set(key, "value1")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		_, exists = hm.Get(collidingKey{2, "b"})
		assert.False(t, exists)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := newHashMap[string](withCapacity(8))
		key := collidingKey{1, "a"}
		hm.Set(key, "value1")
		hm.Set(key, "value2")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
		assert.Equal(t, 1, hm.Size())
	})
}

func TestHashMapCollision(t *testing.T) {
	hm := newHashMap[string](withCapacity(16))

	key1 := collidingKey{1, "a"}  // Hash: 2
	key2 := collidingKey{0, "bb"} // Hash: 2
	key3 := collidingKey{2, "a"}  // Hash: 3

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")
	hm.Set(key3, "value3")
	assert.Equal(t, 3, hm.Size())

	val, exists := hm.Get(key1)
	assert.True(t, exists)
	assert.Equal(t, "value1", val)

	val, exists = hm.Get(key2)
	assert.True(t, exists)
	assert.Equal(t, "value2", val)
}

func TestHashMapResize(t *testing.T) {
	initialCap := 16
	hm := newHashMap[int](withCapacity(initialCap), withLoadFactor(0.75))

	// 16 * 0.75 = 12 entries trigger a resize.
	for i := 0; i < 13; i++ {
		hm.Set(collidingKey{i, ""}, i)
	}
	assert.Greater(t, len(hm.buckets), initialCap)

	for i := 0; i < 13; i++ {
		val, exists := hm.Get(collidingKey{i, ""})
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}
}

func TestHashMapKeyTypes(t *testing.T) {
	hm := newHashMap[string](withCapacity(8))

	key1 := collidingKey{1, "a"} // Hash = 2
	key2 := intKey(2)            // Hash = 2

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")

	val, exists := hm.Get(key1)
	assert.True(t, exists)
	assert.Equal(t, "value1", val)

	val, exists = hm.Get(key2)
	assert.True(t, exists)
	assert.Equal(t, "value2", val)
}

func TestHashMapStateSets(t *testing.T) {
	hm := newHashMap[int](withCapacity(1))

	a := bitset.New(8).Set(1).Set(4)
	b := bitset.New(8).Set(4).Set(1)
	c := bitset.New(8).Set(1)

	hm.Set(freezeStateSet(a), 7)
	val, exists := hm.Get(freezeStateSet(b))
	assert.True(t, exists, "equal sets must map to the same entry")
	assert.Equal(t, 7, val)

	_, exists = hm.Get(freezeStateSet(c))
	assert.False(t, exists)
}
