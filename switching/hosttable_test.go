package switching

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HostTable", func() {
	var (
		mockCtrl *gomock.Controller
		table    *HostTable
	)

	newHost := func(addr Addr) *MockHost {
		h := NewMockHost(mockCtrl)
		h.EXPECT().Addr().Return(addr).AnyTimes()
		return h
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		table = NewHostTable(4, DefaultAddrDesc())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should register a host and resolve it both ways", func() {
		host := newHost(NewUintAddr(7))

		Expect(table.Register(host, 2)).To(Equal(RegisterOK))

		port, ok := table.PortLookup(NewUintAddr(7))
		Expect(ok).To(BeTrue())
		Expect(port).To(Equal(2))

		bound, ok := table.HostLookup(2)
		Expect(ok).To(BeTrue())
		Expect(bound).To(BeIdenticalTo(host))
	})

	It("should store its own copy of the address", func() {
		addr := NewUintAddr(7)
		host := newHost(addr)
		table.Register(host, 0)

		addr[0] = 0xff

		_, ok := table.PortLookup(NewUintAddr(7))
		Expect(ok).To(BeTrue())
	})

	It("should reject out-of-range ports", func() {
		host := newHost(NewUintAddr(1))

		Expect(table.Register(host, -1)).To(Equal(RegisterInvalidPort))
		Expect(table.Register(host, 4)).To(Equal(RegisterInvalidPort))
		Expect(table.Deregister(-1)).To(Equal(RegisterInvalidPort))
		Expect(table.Deregister(4)).To(Equal(RegisterInvalidPort))
	})

	It("should reject binding an occupied port", func() {
		table.Register(newHost(NewUintAddr(1)), 1)

		res := table.Register(newHost(NewUintAddr(2)), 1)
		Expect(res).To(Equal(RegisterAlreadyBound))
	})

	It("should reject deregistering an unbound port", func() {
		Expect(table.Deregister(3)).To(Equal(RegisterNotBound))
	})

	It("should forget a deregistered host completely", func() {
		table.Register(newHost(NewUintAddr(9)), 1)

		Expect(table.Deregister(1)).To(Equal(RegisterOK))

		_, ok := table.PortLookup(NewUintAddr(9))
		Expect(ok).To(BeFalse())

		_, ok = table.HostLookup(1)
		Expect(ok).To(BeFalse())
	})

	It("should allow re-binding a port after deregistration", func() {
		table.Register(newHost(NewUintAddr(9)), 1)
		table.Deregister(1)

		Expect(table.Register(newHost(NewUintAddr(10)), 1)).To(Equal(RegisterOK))
	})

	It("should keep the map and the active set in agreement", func() {
		hosts := map[int]Addr{}

		register := func(port int, v uint32) {
			addr := NewUintAddr(v)
			Expect(table.Register(newHost(addr), port)).To(Equal(RegisterOK))
			hosts[port] = addr
		}

		deregister := func(port int) {
			Expect(table.Deregister(port)).To(Equal(RegisterOK))
			delete(hosts, port)
		}

		register(0, 100)
		register(1, 101)
		register(2, 102)
		deregister(1)
		register(3, 103)
		deregister(0)
		register(0, 104)
		register(1, 105)
		deregister(3)

		for port := 0; port < table.NumPorts(); port++ {
			addr, active := hosts[port]

			stored, ok := table.AddrAt(port)
			Expect(ok).To(Equal(active))

			if !active {
				_, ok := table.HostLookup(port)
				Expect(ok).To(BeFalse())
				continue
			}

			Expect(stored).To(Equal(addr))

			mapped, ok := table.PortLookup(addr)
			Expect(ok).To(BeTrue())
			Expect(mapped).To(Equal(port))
		}
	})
})
