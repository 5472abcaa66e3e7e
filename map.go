package automata

// Hashable is a key of hashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// hashMap is a chained hash table keyed by Hashable values. It is owned by a single conversion
// call and is not safe for concurrent use.
type hashMap[T any] struct {
	buckets    []*entry[T]
	size       int
	mask       uint64
	loadFactor float64
}

type entry[T any] struct {
	key   Hashable
	value T
	next  *entry[T]
}

type hashMapOptions struct {
	capacity   int
	loadFactor float64
}

type hashMapOption func(*hashMapOptions)

func withCapacity(capacity int) hashMapOption {
	return func(o *hashMapOptions) {
		o.capacity = capacity
	}
}

func withLoadFactor(loadFactor float64) hashMapOption {
	return func(o *hashMapOptions) {
		o.loadFactor = loadFactor
	}
}

// newHashMap creates a table whose bucket count is the capacity rounded up to a power of two.
func newHashMap[T any](options ...hashMapOption) *hashMap[T] {
	opts := &hashMapOptions{capacity: 16, loadFactor: 0.75}
	for _, fn := range options {
		fn(opts)
	}

	capacity := 1
	for capacity < opts.capacity {
		capacity <<= 1
	}

	return &hashMap[T]{
		buckets:    make([]*entry[T], capacity),
		mask:       uint64(capacity - 1),
		loadFactor: opts.loadFactor,
	}
}

// Set inserts or replaces the value stored under key.
func (m *hashMap[T]) Set(key Hashable, value T) {
	index := key.Hash() & m.mask
	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			e.value = value
			return
		}
	}

	m.buckets[index] = &entry[T]{key: key, value: value, next: m.buckets[index]}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
}

func (m *hashMap[T]) Get(key Hashable) (T, bool) {
	index := key.Hash() & m.mask
	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	var empty T
	return empty, false
}

func (m *hashMap[T]) Size() int {
	return m.size
}

func (m *hashMap[T]) resize() {
	capacity := len(m.buckets) << 1
	buckets := make([]*entry[T], capacity)
	mask := uint64(capacity - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; {
			next := e.next
			index := e.key.Hash() & mask
			e.next = buckets[index]
			buckets[index] = e
			e = next
		}
	}

	m.buckets = buckets
	m.mask = mask
}
