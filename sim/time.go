// Package sim provides a discrete-event simulator whose notion of time is
// pluggable: events are kept in a min-heap ordered by a caller-visible time
// type and dispatched through an event-id to handler table.
package sim

import "github.com/sarchlab/slipswitch/container"

// TimeOps is the capability bundle the simulator needs over a time type:
// total-order comparison and accumulation of a delay onto a base time. Values
// are copied with ordinary assignment, so time types must have value
// semantics.
type TimeOps[T any] struct {
	Compare container.CompareFunc[T]
	Add     func(base, delay T) T
}

func (ops TimeOps[T]) complete() bool {
	return ops.Compare != nil && ops.Add != nil
}

// IntegerTime is the built-in unsigned-integer time profile.
func IntegerTime() TimeOps[uint64] {
	return TimeOps[uint64]{
		Compare: func(lhs, rhs uint64) container.Comparison {
			switch {
			case lhs < rhs:
				return container.Less
			case lhs > rhs:
				return container.Greater
			default:
				return container.Equal
			}
		},
		Add: func(base, delay uint64) uint64 {
			return base + delay
		},
	}
}

// RealTime is the built-in real-valued time profile.
func RealTime() TimeOps[float64] {
	return TimeOps[float64]{
		Compare: func(lhs, rhs float64) container.Comparison {
			switch {
			case lhs < rhs:
				return container.Less
			case lhs > rhs:
				return container.Greater
			default:
				return container.Equal
			}
		},
		Add: func(base, delay float64) float64 {
			return base + delay
		},
	}
}
