package container

const heapDefaultCapacity = 16

// Heap is a binary min-heap ordered by the comparator supplied at creation.
// Ordering among equal elements is unspecified.
type Heap[T any] struct {
	elems   []T
	compare CompareFunc[T]
}

// NewHeap creates an empty heap ordered by compare.
func NewHeap[T any](compare CompareFunc[T]) *Heap[T] {
	if compare == nil {
		panic("heap comparator must not be nil")
	}

	return &Heap[T]{
		elems:   make([]T, 0, heapDefaultCapacity),
		compare: compare,
	}
}

// Size returns the number of elements currently stored.
func (h *Heap[T]) Size() int {
	return len(h.elems)
}

// Insert adds an element, keeping the complete-tree shape by appending at the
// end and bubbling up until the parent is no greater.
func (h *Heap[T]) Insert(elem T) {
	h.elems = append(h.elems, elem)

	i := len(h.elems) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.compare(h.elems[i], h.elems[parent]) != Less {
			break
		}

		h.elems[i], h.elems[parent] = h.elems[parent], h.elems[i]
		i = parent
	}
}

// PeekMin returns the minimum element without removing it. The second return
// value is false when the heap is empty.
func (h *Heap[T]) PeekMin() (T, bool) {
	if len(h.elems) == 0 {
		var zero T
		return zero, false
	}

	return h.elems[0], true
}

// PopMin removes and returns the minimum element. The last element takes the
// root slot and sinks until both children are no smaller.
func (h *Heap[T]) PopMin() (T, bool) {
	if len(h.elems) == 0 {
		var zero T
		return zero, false
	}

	min := h.elems[0]
	last := len(h.elems) - 1
	h.elems[0] = h.elems[last]

	var zero T
	h.elems[last] = zero
	h.elems = h.elems[:last]

	i := 0
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i

		if left < len(h.elems) &&
			h.compare(h.elems[left], h.elems[smallest]) == Less {
			smallest = left
		}

		if right < len(h.elems) &&
			h.compare(h.elems[right], h.elems[smallest]) == Less {
			smallest = right
		}

		if smallest == i {
			break
		}

		h.elems[i], h.elems[smallest] = h.elems[smallest], h.elems[i]
		i = smallest
	}

	return min, true
}
