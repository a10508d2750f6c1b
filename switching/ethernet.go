package switching

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// EthernetAddrSize is the address width used by EthernetAddrDesc.
const EthernetAddrSize = 6

// EthernetAddrDesc describes addresses carried inside the payload rather than
// the header: the payload is decoded as an Ethernet frame and the destination
// MAC is the address. A payload that does not decode yields no address, so
// the packet is dropped as unresolvable.
func EthernetAddrDesc() AddrDesc {
	return AddrDesc{
		Extract: extractEthernetDst,
		Hash:    HashAddr,
		Compare: CompareAddr,
	}
}

func extractEthernetDst(p *Packet) Addr {
	frame := gopacket.NewPacket(
		p.Payload[:], layers.LayerTypeEthernet, gopacket.NoCopy)

	ethLayer := frame.Layer(layers.LayerTypeEthernet)
	if ethLayer == nil {
		return nil
	}

	eth := ethLayer.(*layers.Ethernet)

	return Addr(eth.DstMAC)
}
