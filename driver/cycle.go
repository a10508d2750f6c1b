// Package driver bridges traffic sources to the switch: the cycle driver
// feeds the switch one slot at a time, and the event driver runs the same
// slots from the discrete-event simulator.
package driver

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/sarchlab/slipswitch/switching"
)

var (
	// ErrBrokenInterface reports a driver built over a missing switch or
	// traffic sources of the wrong shape.
	ErrBrokenInterface = errors.New("driver: switch interface not fully provided")

	// ErrCreationFailed reports a switch that is unusable as built (no
	// ports), or an event driver built without a slot bound.
	ErrCreationFailed = errors.New("driver: switch creation failed")

	// ErrRegisterFailed reports a rejected upfront host registration.
	ErrRegisterFailed = errors.New("driver: host registration rejected")
)

// CycleSwitch is what a switch must implement to be driven slot by slot.
type CycleSwitch interface {
	NumPorts() int
	RegisterHost(host switching.Host, port int) switching.RegisterResult
	DeregisterHost(port int) switching.RegisterResult
	Tick(traffic []*switching.Packet)
}

// Source produces at most one packet for its input port each slot; nil means
// the port is idle that slot.
type Source func(slot uint64) *switching.Packet

// CycleDriver advances a switch through time slots, gathering one optional
// packet per input port from the bound sources before each tick.
type CycleDriver struct {
	sw      CycleSwitch
	sources []Source
	traffic []*switching.Packet
	slot    uint64
	log     zerolog.Logger
}

// CycleDriverBuilder can create cycle drivers.
type CycleDriverBuilder struct {
	sw      CycleSwitch
	sources map[int]Source
	hosts   map[int]switching.Host
	log     zerolog.Logger
}

// NewCycleDriverBuilder returns a builder with no sources and a disabled
// logger.
func NewCycleDriverBuilder() CycleDriverBuilder {
	return CycleDriverBuilder{
		sources: map[int]Source{},
		hosts:   map[int]switching.Host{},
		log:     zerolog.Nop(),
	}
}

// WithSwitch sets the switch to drive.
func (b CycleDriverBuilder) WithSwitch(sw CycleSwitch) CycleDriverBuilder {
	b.sw = sw
	return b
}

// WithSource binds a traffic source to an input port.
func (b CycleDriverBuilder) WithSource(port int, src Source) CycleDriverBuilder {
	b.sources[port] = src
	return b
}

// WithHost registers a host at port when the driver is built.
func (b CycleDriverBuilder) WithHost(port int, host switching.Host) CycleDriverBuilder {
	b.hosts[port] = host
	return b
}

// WithLogger sets the driver's logger.
func (b CycleDriverBuilder) WithLogger(log zerolog.Logger) CycleDriverBuilder {
	b.log = log
	return b
}

// Build validates the wiring, registers the upfront hosts, and creates the
// driver.
func (b CycleDriverBuilder) Build() (*CycleDriver, error) {
	if b.sw == nil {
		return nil, ErrBrokenInterface
	}

	numPorts := b.sw.NumPorts()
	if numPorts <= 0 {
		return nil, ErrCreationFailed
	}

	for port := range b.sources {
		if port < 0 || port >= numPorts || b.sources[port] == nil {
			return nil, ErrBrokenInterface
		}
	}

	for port, host := range b.hosts {
		if res := b.sw.RegisterHost(host, port); res != switching.RegisterOK {
			b.log.Error().
				Int("port", port).
				Stringer("result", res).
				Msg("upfront host registration rejected")
			return nil, ErrRegisterFailed
		}
	}

	d := &CycleDriver{
		sw:      b.sw,
		sources: make([]Source, numPorts),
		traffic: make([]*switching.Packet, numPorts),
		log:     b.log,
	}
	for port, src := range b.sources {
		d.sources[port] = src
	}

	return d, nil
}

// Slot returns the number of completed slots.
func (d *CycleDriver) Slot() uint64 {
	return d.slot
}

// RegisterHost binds a host after construction.
func (d *CycleDriver) RegisterHost(host switching.Host, port int) error {
	if res := d.sw.RegisterHost(host, port); res != switching.RegisterOK {
		return ErrRegisterFailed
	}

	return nil
}

// Step runs one slot: each bound source is asked for this slot's packet, and
// the switch ticks on the gathered vector.
func (d *CycleDriver) Step() {
	for port, src := range d.sources {
		if src == nil {
			d.traffic[port] = nil
			continue
		}
		d.traffic[port] = src(d.slot)
	}

	d.sw.Tick(d.traffic)
	d.slot++
}

// Run advances the switch by the given number of slots.
func (d *CycleDriver) Run(slots uint64) {
	d.log.Info().Uint64("slots", slots).Msg("cycle run starting")

	for i := uint64(0); i < slots; i++ {
		d.Step()
	}

	d.log.Info().Uint64("slot", d.slot).Msg("cycle run finished")
}
