package container

const (
	mapDefaultBucketCount = 16
	mapMaxLoadFactor      = 0.75
)

type mapEntry[K, V any] struct {
	key  K
	val  V
	next *mapEntry[K, V]
}

// Map is a chained hash map. Keys are hashed and compared with the operations
// supplied at creation, so opaque keys such as byte-string addresses work
// without being language-comparable.
type Map[K, V any] struct {
	buckets []*mapEntry[K, V]
	size    int
	hash    HashFunc[K]
	compare CompareFunc[K]
}

// NewMap creates an empty map with the given key operations.
func NewMap[K, V any](hash HashFunc[K], compare CompareFunc[K]) *Map[K, V] {
	if hash == nil || compare == nil {
		panic("map key operations must not be nil")
	}

	return &Map[K, V]{
		buckets: make([]*mapEntry[K, V], mapDefaultBucketCount),
		hash:    hash,
		compare: compare,
	}
}

// Size returns the number of stored bindings.
func (m *Map[K, V]) Size() int {
	return m.size
}

// Insert binds key to val. An existing binding with an equal key is replaced.
func (m *Map[K, V]) Insert(key K, val V) {
	if float64(m.size+1) > mapMaxLoadFactor*float64(len(m.buckets)) {
		m.grow()
	}

	index := m.bucketIndex(key, len(m.buckets))

	for entry := m.buckets[index]; entry != nil; entry = entry.next {
		if m.compare(entry.key, key) == Equal {
			entry.key = key
			entry.val = val
			return
		}
	}

	m.buckets[index] = &mapEntry[K, V]{
		key:  key,
		val:  val,
		next: m.buckets[index],
	}
	m.size++
}

// Lookup returns the value bound to key, if any.
func (m *Map[K, V]) Lookup(key K) (V, bool) {
	index := m.bucketIndex(key, len(m.buckets))

	for entry := m.buckets[index]; entry != nil; entry = entry.next {
		if m.compare(entry.key, key) == Equal {
			return entry.val, true
		}
	}

	var zero V
	return zero, false
}

// Remove deletes the binding for key. It reports whether a binding existed.
func (m *Map[K, V]) Remove(key K) bool {
	index := m.bucketIndex(key, len(m.buckets))

	var prev *mapEntry[K, V]
	for entry := m.buckets[index]; entry != nil; entry = entry.next {
		if m.compare(entry.key, key) != Equal {
			prev = entry
			continue
		}

		if prev == nil {
			m.buckets[index] = entry.next
		} else {
			prev.next = entry.next
		}
		m.size--

		return true
	}

	return false
}

func (m *Map[K, V]) bucketIndex(key K, numBuckets int) int {
	return int(m.hash(key) % uint64(numBuckets))
}

// grow doubles the bucket array and rehashes every entry into it.
func (m *Map[K, V]) grow() {
	newBuckets := make([]*mapEntry[K, V], len(m.buckets)*2)

	for _, head := range m.buckets {
		for entry := head; entry != nil; {
			next := entry.next
			index := m.bucketIndex(entry.key, len(newBuckets))
			entry.next = newBuckets[index]
			newBuckets[index] = entry
			entry = next
		}
	}

	m.buckets = newBuckets
}
