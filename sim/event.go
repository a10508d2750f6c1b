package sim

import "github.com/sarchlab/slipswitch/container"

// EventID names a kind of event. Handlers are registered per id.
type EventID int

// Handler is invoked with the argument the event was scheduled with. A
// handler must not panic across the loop boundary; a panicking handler is a
// programmer error and takes the process down.
type Handler func(arg any)

// event is a scheduled occurrence, owned by the queue until dispatch.
type event[T any] struct {
	id   EventID
	arg  any
	time T
}

// eventTable maps event ids to handlers. Registering an id that already has
// an entry replaces it; events still queued under the id dispatch through the
// new entry.
type eventTable struct {
	handlers *container.Map[EventID, Handler]
}

func newEventTable() *eventTable {
	return &eventTable{
		handlers: container.NewMap[EventID, Handler](hashEventID, compareEventID),
	}
}

func (t *eventTable) register(id EventID, handler Handler) {
	if handler == nil {
		panic("registering a nil handler")
	}

	t.handlers.Insert(id, handler)
}

func (t *eventTable) lookup(id EventID) (Handler, bool) {
	return t.handlers.Lookup(id)
}

func hashEventID(id EventID) uint64 {
	return uint64(id)
}

func compareEventID(lhs, rhs EventID) container.Comparison {
	switch {
	case lhs < rhs:
		return container.Less
	case lhs > rhs:
		return container.Greater
	default:
		return container.Equal
	}
}
