package driver

import (
	"github.com/rs/zerolog"
	"github.com/sarchlab/slipswitch/sim"
	"github.com/sarchlab/slipswitch/switching"
)

// Event ids the event driver registers on its simulator.
const (
	// EventSlotTick fires once per slot and ticks the switch.
	EventSlotTick sim.EventID = iota + 1

	// EventArrival stages a packet at an input port for the next tick.
	EventArrival

	// EventStop asks the simulation to terminate.
	EventStop
)

// SlotPeriod is the simulated time between two slot ticks. Ticks fall an even
// number of time units after the start time, leaving the odd offsets in
// between for arrivals, so an arrival never ties with the tick that consumes
// it.
const SlotPeriod uint64 = 2

// Arrival is the argument of EventArrival.
type Arrival struct {
	Port   int
	Packet *switching.Packet
}

// EventDriver runs a switch from the discrete-event simulator instead of an
// external cycle loop. Each slot tick gathers one optional packet per input,
// preferring a staged arrival over the port's bound source, and ticks the
// switch.
type EventDriver struct {
	sim     *sim.Simulator[uint64]
	sw      CycleSwitch
	sources []Source
	pending []*switching.Packet
	slot    uint64
	slots   uint64
	log     zerolog.Logger
}

// EventDriverBuilder can create event drivers.
type EventDriverBuilder struct {
	sw      CycleSwitch
	sources map[int]Source
	slots   uint64
	start   uint64
	log     zerolog.Logger
}

// NewEventDriverBuilder returns a builder with no sources and a disabled
// logger.
func NewEventDriverBuilder() EventDriverBuilder {
	return EventDriverBuilder{
		sources: map[int]Source{},
		log:     zerolog.Nop(),
	}
}

// WithSwitch sets the switch to drive.
func (b EventDriverBuilder) WithSwitch(sw CycleSwitch) EventDriverBuilder {
	b.sw = sw
	return b
}

// WithSource binds a traffic source to an input port.
func (b EventDriverBuilder) WithSource(port int, src Source) EventDriverBuilder {
	b.sources[port] = src
	return b
}

// WithSlots bounds the run to the given number of slot ticks.
func (b EventDriverBuilder) WithSlots(slots uint64) EventDriverBuilder {
	b.slots = slots
	return b
}

// WithStartTime sets the simulator's initial time.
func (b EventDriverBuilder) WithStartTime(start uint64) EventDriverBuilder {
	b.start = start
	return b
}

// WithLogger sets the driver's logger.
func (b EventDriverBuilder) WithLogger(log zerolog.Logger) EventDriverBuilder {
	b.log = log
	return b
}

// Build validates the wiring, creates the simulator on the integer time
// profile, and registers the driver's event handlers.
func (b EventDriverBuilder) Build() (*EventDriver, error) {
	if b.sw == nil {
		return nil, ErrBrokenInterface
	}

	numPorts := b.sw.NumPorts()
	if numPorts <= 0 {
		return nil, ErrCreationFailed
	}
	if b.slots == 0 {
		return nil, ErrCreationFailed
	}

	for port := range b.sources {
		if port < 0 || port >= numPorts || b.sources[port] == nil {
			return nil, ErrBrokenInterface
		}
	}

	d := &EventDriver{
		sim:     sim.NewIntegerSimulator(b.start),
		sw:      b.sw,
		sources: make([]Source, numPorts),
		pending: make([]*switching.Packet, numPorts),
		slots:   b.slots,
		log:     b.log,
	}
	for port, src := range b.sources {
		d.sources[port] = src
	}

	d.sim.RegisterEvent(EventSlotTick, d.onSlotTick)
	d.sim.RegisterEvent(EventArrival, d.onArrival)
	d.sim.RegisterEvent(EventStop, d.onStop)

	return d, nil
}

// Simulator exposes the underlying event loop so callers can schedule their
// own events (measurements, host departures) alongside the driver's.
func (d *EventDriver) Simulator() *sim.Simulator[uint64] {
	return d.sim
}

// Slot returns the number of completed slot ticks.
func (d *EventDriver) Slot() uint64 {
	return d.slot
}

// Inject schedules a packet arrival at port after delay time units. Odd
// delays land between ticks; the next tick consumes the packet.
func (d *EventDriver) Inject(port int, p *switching.Packet, delay uint64) {
	d.sim.InvokeEvent(EventArrival, &Arrival{Port: port, Packet: p}, delay)
}

// Run schedules the first slot tick one period out and drains the simulator.
func (d *EventDriver) Run() {
	d.log.Info().Uint64("slots", d.slots).Msg("event run starting")

	d.sim.InvokeEvent(EventSlotTick, nil, SlotPeriod)
	d.sim.Run()

	d.log.Info().Uint64("slot", d.slot).Msg("event run finished")
}

func (d *EventDriver) onSlotTick(any) {
	for port, src := range d.sources {
		if d.pending[port] == nil && src != nil {
			d.pending[port] = src(d.slot)
		}
	}

	d.sw.Tick(d.pending)
	for i := range d.pending {
		d.pending[i] = nil
	}

	d.slot++
	if d.slot < d.slots {
		d.sim.InvokeEvent(EventSlotTick, nil, SlotPeriod)
	} else {
		d.sim.SetShouldTerminate()
	}
}

func (d *EventDriver) onArrival(arg any) {
	arrival := arg.(*Arrival)

	if arrival.Port < 0 || arrival.Port >= len(d.pending) {
		panic("arrival at a port outside the switch")
	}

	// One packet per input per slot; a second arrival in the same slot is
	// excess offered load and is ignored.
	if d.pending[arrival.Port] != nil {
		d.log.Debug().
			Int("port", arrival.Port).
			Msg("second arrival in one slot ignored")
		return
	}

	d.pending[arrival.Port] = arrival.Packet
}

func (d *EventDriver) onStop(any) {
	d.sim.SetShouldTerminate()
}
