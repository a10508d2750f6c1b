// Package switching models an input-buffered crossbar switch with virtual
// output queues, scheduled by the iSLIP parallel iterative matcher.
package switching

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	"github.com/sarchlab/slipswitch/container"
)

// PayloadSize is the fixed packet payload size in bytes.
const PayloadSize = 64

// AddrSize is the default destination address width in bytes.
const AddrSize = 4

// Addr is an opaque destination address. The switch never interprets it; all
// operations on it go through an AddrDesc.
type Addr []byte

// Clone returns an independent copy of the address.
func (a Addr) Clone() Addr {
	if a == nil {
		return nil
	}

	c := make(Addr, len(a))
	copy(c, a)

	return c
}

func (a Addr) String() string {
	return hex.EncodeToString(a)
}

// Packet is a value object: a fixed-size payload plus a header carrying the
// opaque destination address.
type Packet struct {
	Dst     Addr
	Payload [PayloadSize]byte
}

// NewPacket creates a packet addressed to dst. The payload is truncated to
// PayloadSize and zero-padded.
func NewPacket(dst Addr, payload []byte) *Packet {
	p := &Packet{Dst: dst.Clone()}
	copy(p.Payload[:], payload)

	return p
}

// clone produces the switch-owned copy taken at ingest.
func (p *Packet) clone() Packet {
	c := *p
	c.Dst = p.Dst.Clone()

	return c
}

// AddrDesc bundles the operations the switch performs over opaque addresses:
// extraction from a packet, hashing to a machine integer, and total-order
// comparison. It is supplied once at switch creation and never changes.
type AddrDesc struct {
	Extract func(p *Packet) Addr
	Hash    container.HashFunc[Addr]
	Compare container.CompareFunc[Addr]
}

func (d AddrDesc) complete() bool {
	return d.Extract != nil && d.Hash != nil && d.Compare != nil
}

// DefaultAddrDesc describes addresses stored directly in the packet header.
func DefaultAddrDesc() AddrDesc {
	return AddrDesc{
		Extract: func(p *Packet) Addr { return p.Dst },
		Hash:    HashAddr,
		Compare: CompareAddr,
	}
}

// NewUintAddr renders v as a big-endian address of the default width.
func NewUintAddr(v uint32) Addr {
	a := make(Addr, AddrSize)
	binary.BigEndian.PutUint32(a, v)

	return a
}

// HashAddr is the FNV-1a hash of the address bytes.
func HashAddr(a Addr) uint64 {
	hash := uint64(14695981039346656037)
	for _, b := range a {
		hash ^= uint64(b)
		hash *= 1099511628211
	}

	return hash
}

// CompareAddr orders addresses lexicographically.
func CompareAddr(lhs, rhs Addr) container.Comparison {
	switch bytes.Compare(lhs, rhs) {
	case -1:
		return container.Less
	case 1:
		return container.Greater
	default:
		return container.Equal
	}
}
