package switching

import (
	"net"

	gomock "github.com/golang/mock/gomock"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func ethernetFrame(src, dst net.HardwareAddr) []byte {
	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf,
		gopacket.SerializeOptions{FixLengths: true},
		&layers.Ethernet{
			SrcMAC:       src,
			DstMAC:       dst,
			EthernetType: layers.EthernetTypeLLC,
		},
		gopacket.Payload(make([]byte, 46)),
	)
	if err != nil {
		panic(err)
	}

	return buf.Bytes()
}

var _ = Describe("EthernetAddrDesc", func() {
	desc := EthernetAddrDesc()

	macA := net.HardwareAddr{0x02, 0, 0, 0, 0, 0xaa}
	macB := net.HardwareAddr{0x02, 0, 0, 0, 0, 0xbb}

	It("should extract the destination MAC from the payload", func() {
		p := NewPacket(nil, ethernetFrame(macA, macB))

		addr := desc.Extract(p)
		Expect(addr).To(Equal(Addr(macB)))
	})

	It("should route on payload frames end to end", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		sw := NewBuilder().
			WithNumPorts(2).
			WithAddrDesc(desc).
			Build()

		hostA := NewMockHost(mockCtrl)
		hostA.EXPECT().Addr().Return(Addr(macA)).AnyTimes()
		hostB := NewMockHost(mockCtrl)
		hostB.EXPECT().Addr().Return(Addr(macB)).AnyTimes()

		Expect(sw.RegisterHost(hostA, 0)).To(Equal(RegisterOK))
		Expect(sw.RegisterHost(hostB, 1)).To(Equal(RegisterOK))

		hostB.EXPECT().Recv(gomock.Any())

		sw.Tick([]*Packet{NewPacket(nil, ethernetFrame(macA, macB)), nil})
	})

	It("should drop frames addressed to an unbound MAC", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		sw := NewBuilder().
			WithNumPorts(2).
			WithAddrDesc(desc).
			Build()

		hostA := NewMockHost(mockCtrl)
		hostA.EXPECT().Addr().Return(Addr(macA)).AnyTimes()
		Expect(sw.RegisterHost(hostA, 0)).To(Equal(RegisterOK))

		sw.Tick([]*Packet{NewPacket(nil, ethernetFrame(macA, macB)), nil})

		Expect(testutil.ToFloat64(sw.Metrics().DroppedUnresolved)).
			To(Equal(1.0))
	})
})
