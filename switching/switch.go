package switching

import "github.com/sarchlab/slipswitch/container"

// Switch is a cycle-accurate crossbar switch with per-(input, output) virtual
// output queues. Each Tick ingests one optional packet per input, runs the
// iSLIP matcher over the frozen VOQ state, and delivers at most one packet
// per matched port pair.
//
// The switch is single-threaded: a tick runs to completion before the next
// observable transition.
type Switch struct {
	numPorts int
	desc     AddrDesc

	// Flat N×N matrix of VOQs, indexed input*numPorts+output.
	voqs []*container.Ring[Packet]

	hosts   *HostTable
	sched   *matcher
	metrics *Metrics
}

// NumPorts returns the port count of the switch.
func (s *Switch) NumPorts() int {
	return s.numPorts
}

// RegisterHost binds host to port for the host's lifetime in the table.
func (s *Switch) RegisterHost(host Host, port int) RegisterResult {
	return s.hosts.Register(host, port)
}

// DeregisterHost unbinds the host at port. Packets already buffered for the
// port stay queued and are dropped at egress while the port has no host.
func (s *Switch) DeregisterHost(port int) RegisterResult {
	return s.hosts.Deregister(port)
}

// HostTable exposes the switch's binding table.
func (s *Switch) HostTable() *HostTable {
	return s.hosts
}

// Metrics exposes the switch's packet counters.
func (s *Switch) Metrics() *Metrics {
	return s.metrics
}

// QueueLen returns the occupancy of VOQ[in][out].
func (s *Switch) QueueLen(in, out int) int {
	return s.voq(in, out).Size()
}

// Tick executes one time slot: ingest, schedule, egress. The slot of traffic
// holds at most one packet per input port; nil means no arrival. The switch
// copies every packet it buffers, so the caller's instances are released.
//
// The phases do not interleave: the matcher observes VOQ state frozen at the
// end of ingest, and egress observes the matching frozen at the end of
// scheduling.
func (s *Switch) Tick(traffic []*Packet) {
	if len(traffic) != s.numPorts {
		panic("traffic vector length does not equal the port count")
	}

	s.ingest(traffic)
	match := s.sched.match(s.request)
	s.egress(match)
}

func (s *Switch) voq(in, out int) *container.Ring[Packet] {
	return s.voqs[in*s.numPorts+out]
}

func (s *Switch) request(in, out int) bool {
	return s.voq(in, out).Size() > 0
}

func (s *Switch) ingest(traffic []*Packet) {
	for in, p := range traffic {
		if p == nil {
			continue
		}

		addr := s.desc.Extract(p)
		if len(addr) == 0 {
			s.metrics.DroppedUnresolved.Inc()
			continue
		}

		out, ok := s.hosts.PortLookup(addr)
		if !ok {
			// Unresolvable addresses drop silently; only the counter moves.
			s.metrics.DroppedUnresolved.Inc()
			continue
		}

		s.voq(in, out).Enqueue(p.clone())
		s.metrics.Ingested.Inc()
	}
}

func (s *Switch) egress(match []int) {
	for in, out := range match {
		if out == unmatched {
			continue
		}

		p, ok := s.voq(in, out).Dequeue()
		if !ok {
			panic("matched an empty VOQ")
		}

		host, ok := s.hosts.HostLookup(out)
		if !ok {
			// Destination gone mid-flight: drop silently.
			s.metrics.DroppedInactive.Inc()
			continue
		}

		host.Recv(p)
		s.metrics.Delivered.Inc()
	}
}
