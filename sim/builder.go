package sim

import (
	"errors"

	"github.com/sarchlab/slipswitch/container"
)

// ErrBrokenInterface reports a custom time profile with missing operations.
var ErrBrokenInterface = errors.New("sim: time operations not fully specified")

// Builder can create simulators over a custom time type. The built-in
// profiles have their own constructors, NewIntegerSimulator and
// NewRealSimulator.
type Builder[T any] struct {
	ops   TimeOps[T]
	start T
}

// NewBuilder returns a builder for time type T.
func NewBuilder[T any]() Builder[T] {
	return Builder[T]{}
}

// WithTimeOps sets the time operations.
func (b Builder[T]) WithTimeOps(ops TimeOps[T]) Builder[T] {
	b.ops = ops
	return b
}

// WithStartTime sets the initial current time.
func (b Builder[T]) WithStartTime(start T) Builder[T] {
	b.start = start
	return b
}

// Build creates a simulator. It fails with ErrBrokenInterface when either
// time operation is missing.
func (b Builder[T]) Build() (*Simulator[T], error) {
	if !b.ops.complete() {
		return nil, ErrBrokenInterface
	}

	s := &Simulator[T]{
		ops:   b.ops,
		now:   b.start,
		table: newEventTable(),
	}
	s.queue = container.NewHeap(s.compareEvents)

	return s, nil
}

// NewIntegerSimulator creates a simulator on the unsigned-integer time
// profile.
func NewIntegerSimulator(start uint64) *Simulator[uint64] {
	s, err := NewBuilder[uint64]().
		WithTimeOps(IntegerTime()).
		WithStartTime(start).
		Build()
	if err != nil {
		panic(err)
	}

	return s
}

// NewRealSimulator creates a simulator on the real-valued time profile.
func NewRealSimulator(start float64) *Simulator[float64] {
	s, err := NewBuilder[float64]().
		WithTimeOps(RealTime()).
		WithStartTime(start).
		Build()
	if err != nil {
		panic(err)
	}

	return s
}
