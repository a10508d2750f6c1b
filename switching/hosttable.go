package switching

import "github.com/sarchlab/slipswitch/container"

// Host is an endpoint plugged into one switch port. Recv is invoked during
// egress with the delivered packet.
type Host interface {
	Addr() Addr
	Recv(p Packet)
}

// RegisterResult reports the outcome of a host (de)registration.
type RegisterResult int

const (
	RegisterOK RegisterResult = iota
	RegisterAlreadyBound
	RegisterNotBound
	RegisterInvalidPort
)

var registerResultNames = map[RegisterResult]string{
	RegisterOK:           "OK",
	RegisterAlreadyBound: "AlreadyBound",
	RegisterNotBound:     "NotBound",
	RegisterInvalidPort:  "InvalidPort",
}

func (r RegisterResult) String() string {
	if name, ok := registerResultNames[r]; ok {
		return name
	}
	return "Unknown"
}

type hostEntry struct {
	active bool
	addr   Addr
	host   Host
}

// HostTable maintains the port-to-host bindings of a switch: a fixed array
// indexed by port number plus a map from address to port. Every active entry
// has its address in the map pointing back at its index, and the map holds
// nothing else.
type HostTable struct {
	entries    []hostEntry
	addrToPort *container.Map[Addr, int]
}

// NewHostTable creates a table for ports [0, numPorts).
func NewHostTable(numPorts int, desc AddrDesc) *HostTable {
	if numPorts <= 0 {
		panic("host table needs at least one port")
	}
	if !desc.complete() {
		panic("address descriptor not fully specified")
	}

	return &HostTable{
		entries:    make([]hostEntry, numPorts),
		addrToPort: container.NewMap[Addr, int](desc.Hash, desc.Compare),
	}
}

// NumPorts returns the number of ports the table covers.
func (t *HostTable) NumPorts() int {
	return len(t.entries)
}

// Register binds host to port. The host's address is copied into the table;
// the binding lasts until Deregister. A port that is already active, or an
// address already bound at some port, is rejected with RegisterAlreadyBound.
func (t *HostTable) Register(host Host, port int) RegisterResult {
	if port < 0 || port >= len(t.entries) {
		return RegisterInvalidPort
	}
	if t.entries[port].active {
		return RegisterAlreadyBound
	}
	if host == nil {
		panic("registering a nil host")
	}

	addr := host.Addr().Clone()
	if _, bound := t.addrToPort.Lookup(addr); bound {
		return RegisterAlreadyBound
	}
	t.addrToPort.Insert(addr, port)
	t.entries[port] = hostEntry{
		active: true,
		addr:   addr,
		host:   host,
	}

	return RegisterOK
}

// Deregister unbinds the host at port and removes its address mapping.
func (t *HostTable) Deregister(port int) RegisterResult {
	if port < 0 || port >= len(t.entries) {
		return RegisterInvalidPort
	}
	if !t.entries[port].active {
		return RegisterNotBound
	}

	t.addrToPort.Remove(t.entries[port].addr)
	t.entries[port] = hostEntry{}

	return RegisterOK
}

// PortLookup resolves an address to its bound port.
func (t *HostTable) PortLookup(addr Addr) (int, bool) {
	return t.addrToPort.Lookup(addr)
}

// HostLookup returns the host bound at port, if any.
func (t *HostTable) HostLookup(port int) (Host, bool) {
	if port < 0 || port >= len(t.entries) {
		return nil, false
	}
	if !t.entries[port].active {
		return nil, false
	}

	return t.entries[port].host, true
}

// AddrAt returns the table's copy of the address bound at port.
func (t *HostTable) AddrAt(port int) (Addr, bool) {
	if port < 0 || port >= len(t.entries) || !t.entries[port].active {
		return nil, false
	}

	return t.entries[port].addr, true
}
