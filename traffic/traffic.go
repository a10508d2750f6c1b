// Package traffic provides closure-based per-port packet generators for
// driving a switch.
package traffic

import (
	"math/rand"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/sarchlab/slipswitch/switching"
)

// Generator produces at most one packet per slot for one input port.
type Generator func(slot uint64) *switching.Packet

// None generates no traffic.
func None() Generator {
	return func(uint64) *switching.Packet {
		return nil
	}
}

// Constant sends one packet to dst every slot.
func Constant(dst switching.Addr) Generator {
	return func(uint64) *switching.Packet {
		return switching.NewPacket(dst, nil)
	}
}

// Uniform sends one packet per slot to a destination drawn uniformly from
// addrs.
func Uniform(rng *rand.Rand, addrs []switching.Addr) Generator {
	if len(addrs) == 0 {
		panic("uniform generator needs at least one destination")
	}

	return func(uint64) *switching.Packet {
		return switching.NewPacket(addrs[rng.Intn(len(addrs))], nil)
	}
}

// Rate gates gen so a packet is offered each slot with the given
// probability. Rate 1 is gen itself; rate 0 never offers.
func Rate(rng *rand.Rand, rate float64, gen Generator) Generator {
	if rate < 0 || rate > 1 {
		panic("rate must lie in [0, 1]")
	}

	return func(slot uint64) *switching.Packet {
		if rng.Float64() >= rate {
			return nil
		}
		return gen(slot)
	}
}

// Ethernet sends one packet per slot whose payload is a synthesized Ethernet
// frame addressed to a MAC drawn uniformly from dsts. Pair it with
// switching.EthernetAddrDesc, which recovers the destination from the frame.
func Ethernet(rng *rand.Rand, src net.HardwareAddr, dsts []net.HardwareAddr) Generator {
	if len(dsts) == 0 {
		panic("ethernet generator needs at least one destination")
	}

	return func(uint64) *switching.Packet {
		dst := dsts[rng.Intn(len(dsts))]

		buf := gopacket.NewSerializeBuffer()
		err := gopacket.SerializeLayers(buf,
			gopacket.SerializeOptions{FixLengths: true},
			&layers.Ethernet{
				SrcMAC:       src,
				DstMAC:       dst,
				EthernetType: layers.EthernetTypeLLC,
				Length:       0,
			},
			gopacket.Payload(make([]byte, 46)),
		)
		if err != nil {
			panic(err)
		}

		return switching.NewPacket(switching.Addr(dst), buf.Bytes())
	}
}
