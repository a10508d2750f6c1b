package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/slipswitch/container"
)

var _ = Describe("Simulator", func() {
	It("should dispatch strictly earlier events first", func() {
		s := NewIntegerSimulator(0)

		var order []EventID
		record := func(id EventID) Handler {
			return func(any) {
				order = append(order, id)
			}
		}

		s.RegisterEvent(1, record(1))
		s.RegisterEvent(2, record(2))
		s.RegisterEvent(3, record(3))

		s.InvokeEvent(1, nil, 5)
		s.InvokeEvent(2, nil, 3)
		s.InvokeEvent(3, nil, 5)

		s.Run()

		Expect(order).To(HaveLen(3))
		Expect(order[0]).To(Equal(EventID(2)))
		Expect(order[1:]).To(ConsistOf(EventID(1), EventID(3)))
		Expect(s.Now()).To(Equal(uint64(5)))
		Expect(s.QueueLen()).To(Equal(0))
	})

	It("should accumulate delays onto the current time", func() {
		s := NewIntegerSimulator(10)

		var fired uint64
		s.RegisterEvent(1, func(any) {
			fired = s.Now()
		})

		s.InvokeEvent(1, nil, 7)
		s.Run()

		Expect(fired).To(Equal(uint64(17)))
		Expect(s.Now()).To(Equal(uint64(17)))
	})

	It("should advance the clock to each event's firing time", func() {
		s := NewIntegerSimulator(0)

		var times []uint64
		s.RegisterEvent(1, func(any) {
			times = append(times, s.Now())
		})

		s.InvokeEvent(1, nil, 4)
		s.InvokeEvent(1, nil, 2)
		s.InvokeEvent(1, nil, 9)

		s.Run()

		Expect(times).To(Equal([]uint64{2, 4, 9}))
	})

	It("should pass the scheduled argument to the handler", func() {
		s := NewIntegerSimulator(0)

		var got any
		s.RegisterEvent(1, func(arg any) {
			got = arg
		})

		s.InvokeEvent(1, "payload", 1)
		s.Run()

		Expect(got).To(Equal("payload"))
	})

	It("should let callbacks schedule further events", func() {
		s := NewIntegerSimulator(0)

		count := 0
		s.RegisterEvent(1, func(any) {
			count++
			if count < 5 {
				s.InvokeEvent(1, nil, 3)
			}
		})

		s.InvokeEvent(1, nil, 3)
		s.Run()

		Expect(count).To(Equal(5))
		Expect(s.Now()).To(Equal(uint64(15)))
	})

	It("should stop after the callback that requests termination", func() {
		s := NewIntegerSimulator(0)

		var order []EventID
		s.RegisterEvent(1, func(any) {
			order = append(order, 1)
			s.SetShouldTerminate()
		})
		s.RegisterEvent(2, func(any) {
			order = append(order, 2)
		})

		s.InvokeEvent(1, nil, 1)
		s.InvokeEvent(2, nil, 2)

		s.Run()

		Expect(order).To(Equal([]EventID{1}))
		Expect(s.QueueLen()).To(Equal(1))
	})

	It("should skip events whose id has no handler", func() {
		s := NewIntegerSimulator(0)

		fired := false
		s.RegisterEvent(2, func(any) {
			fired = true
		})

		s.InvokeEvent(1, nil, 1)
		s.InvokeEvent(2, nil, 2)
		s.Run()

		Expect(fired).To(BeTrue())
		Expect(s.Now()).To(Equal(uint64(2)))
	})

	It("should dispatch queued events through a replaced registration", func() {
		s := NewIntegerSimulator(0)

		var via string
		s.RegisterEvent(1, func(any) {
			via = "old"
		})

		s.InvokeEvent(1, nil, 1)

		s.RegisterEvent(1, func(any) {
			via = "new"
		})

		s.Run()

		Expect(via).To(Equal("new"))
	})

	It("should run on the real-valued time profile", func() {
		s := NewRealSimulator(0.5)

		var times []float64
		s.RegisterEvent(1, func(any) {
			times = append(times, s.Now())
		})

		s.InvokeEvent(1, nil, 0.25)
		s.InvokeEvent(1, nil, 1.5)
		s.Run()

		Expect(times).To(Equal([]float64{0.75, 2.0}))
	})

	It("should drop everything on Terminate", func() {
		s := NewIntegerSimulator(0)

		s.RegisterEvent(1, func(any) {})
		s.InvokeEvent(1, nil, 1)

		s.Terminate()

		Expect(s.QueueLen()).To(Equal(0))

		s.Run() // no handlers, no events: returns immediately
		Expect(s.Now()).To(Equal(uint64(0)))
	})

	It("should panic on a nil handler", func() {
		s := NewIntegerSimulator(0)
		Expect(func() { s.RegisterEvent(1, nil) }).To(Panic())
	})
})

// reverseTime orders larger values first, exercising the custom profile.
type reverseTime struct {
	value int
}

var _ = Describe("Builder", func() {
	It("should fail without complete time operations", func() {
		_, err := NewBuilder[uint64]().Build()
		Expect(err).To(MatchError(ErrBrokenInterface))

		_, err = NewBuilder[uint64]().
			WithTimeOps(TimeOps[uint64]{Add: func(a, b uint64) uint64 { return a + b }}).
			Build()
		Expect(err).To(MatchError(ErrBrokenInterface))
	})

	It("should run on a custom time profile", func() {
		ops := TimeOps[reverseTime]{
			Compare: func(lhs, rhs reverseTime) container.Comparison {
				switch {
				case lhs.value > rhs.value:
					return container.Less
				case lhs.value < rhs.value:
					return container.Greater
				default:
					return container.Equal
				}
			},
			Add: func(base, delay reverseTime) reverseTime {
				return reverseTime{value: base.value - delay.value}
			},
		}

		s, err := NewBuilder[reverseTime]().
			WithTimeOps(ops).
			WithStartTime(reverseTime{value: 100}).
			Build()
		Expect(err).ToNot(HaveOccurred())

		var order []EventID
		record := func(id EventID) Handler {
			return func(any) {
				order = append(order, id)
			}
		}
		s.RegisterEvent(1, record(1))
		s.RegisterEvent(2, record(2))

		s.InvokeEvent(1, nil, reverseTime{value: 3})
		s.InvokeEvent(2, nil, reverseTime{value: 8})

		s.Run()

		// Larger countdown values fire first under the reversed order.
		Expect(order).To(Equal([]EventID{1, 2}))
		Expect(s.Now()).To(Equal(reverseTime{value: 92}))
	})
})
