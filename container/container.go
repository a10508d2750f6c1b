// Package container provides the generic containers the simulator is built
// on: a comparator min-heap, a chained hash map keyed through caller-supplied
// hash and compare operations, and a growable ring-buffer queue.
package container

// Comparison is the result of a three-way comparison.
type Comparison int

const (
	Less Comparison = iota
	Greater
	Equal
)

// CompareFunc totally orders two values.
type CompareFunc[T any] func(lhs, rhs T) Comparison

// HashFunc reduces a key to a machine integer.
type HashFunc[K any] func(key K) uint64
