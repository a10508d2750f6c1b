package switching

import "github.com/sarchlab/slipswitch/container"

// Builder can create switches.
type Builder struct {
	numPorts  int
	numRounds int
	desc      AddrDesc
	metrics   *Metrics
}

// NewBuilder returns a builder with the default address descriptor.
func NewBuilder() Builder {
	return Builder{
		desc: DefaultAddrDesc(),
	}
}

// WithNumPorts sets the number of ports.
func (b Builder) WithNumPorts(numPorts int) Builder {
	b.numPorts = numPorts
	return b
}

// WithAddrDesc sets the address descriptor.
func (b Builder) WithAddrDesc(desc AddrDesc) Builder {
	b.desc = desc
	return b
}

// WithRounds sets the iSLIP round count. The default is DefaultRounds of the
// port count.
func (b Builder) WithRounds(numRounds int) Builder {
	if numRounds < 1 {
		panic("need at least one matching round")
	}
	b.numRounds = numRounds
	return b
}

// WithMetrics sets the counter set the switch increments.
func (b Builder) WithMetrics(metrics *Metrics) Builder {
	b.metrics = metrics
	return b
}

// Build creates a switch.
func (b Builder) Build() *Switch {
	if b.numPorts <= 0 {
		panic("need at least one port")
	}
	if !b.desc.complete() {
		panic("address descriptor not fully specified")
	}

	numRounds := b.numRounds
	if numRounds == 0 {
		numRounds = DefaultRounds(b.numPorts)
	}

	metrics := b.metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	s := &Switch{
		numPorts: b.numPorts,
		desc:     b.desc,
		voqs:     make([]*container.Ring[Packet], b.numPorts*b.numPorts),
		hosts:    NewHostTable(b.numPorts, b.desc),
		sched:    newMatcher(b.numPorts, numRounds),
		metrics:  metrics,
	}

	for i := range s.voqs {
		s.voqs[i] = container.NewRing[Packet]()
	}

	return s
}
