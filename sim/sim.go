package sim

import "github.com/sarchlab/slipswitch/container"

// Simulator is a single-threaded discrete-event loop over time type T. Each
// simulator is an independent value; any number of them may coexist.
type Simulator[T any] struct {
	ops   TimeOps[T]
	now   T
	queue *container.Heap[*event[T]]
	table *eventTable

	shouldTerminate bool
}

// Now returns the current simulation time: the firing time of the most
// recently dispatched event, or the start time before any dispatch.
func (s *Simulator[T]) Now() T {
	return s.now
}

// RegisterEvent installs the handler for id. Re-registration replaces the
// prior entry; events already queued under id dispatch through the new one.
func (s *Simulator[T]) RegisterEvent(id EventID, handler Handler) {
	s.table.register(id, handler)
}

// InvokeEvent schedules an occurrence of id carrying arg at the current time
// plus delay.
func (s *Simulator[T]) InvokeEvent(id EventID, arg any, delay T) {
	s.queue.Insert(&event[T]{
		id:   id,
		arg:  arg,
		time: s.ops.Add(s.now, delay),
	})
}

// QueueLen returns the number of pending events.
func (s *Simulator[T]) QueueLen() int {
	return s.queue.Size()
}

// SetShouldTerminate asks the loop to stop. The flag is checked at the loop
// head, so a callback that sets it finishes before the loop exits.
func (s *Simulator[T]) SetShouldTerminate() {
	s.shouldTerminate = true
}

// Run dispatches events in non-decreasing firing-time order until the queue
// drains or termination is requested. Events with equal firing times run in
// unspecified order. For each event the loop pops the minimum, advances the
// clock to its firing time, and invokes the registered handler, if any, with
// the event's argument.
func (s *Simulator[T]) Run() {
	for !s.shouldTerminate && s.queue.Size() > 0 {
		evt, _ := s.queue.PopMin()
		s.now = evt.time

		if handler, ok := s.table.lookup(evt.id); ok {
			handler(evt.arg)
		}
	}
}

// Terminate discards every queued event and registered handler. The
// simulator keeps its current time and may be reused by registering and
// scheduling anew.
func (s *Simulator[T]) Terminate() {
	s.queue = container.NewHeap(s.compareEvents)
	s.table = newEventTable()
	s.shouldTerminate = false
}

func (s *Simulator[T]) compareEvents(lhs, rhs *event[T]) container.Comparison {
	return s.ops.Compare(lhs.time, rhs.time)
}
