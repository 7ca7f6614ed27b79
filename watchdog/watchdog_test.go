package watchdog

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ValueWatchdog", func() {
	var (
		value     float64
		destroyed []*ValueWatchdog
		w         *ValueWatchdog
	)

	advance := func(dt float64, n int) {
		for i := 0; i < n; i++ {
			w.Advance(dt)
		}
	}

	BeforeEach(func() {
		value = 0
		destroyed = nil
		w = New("wd", SourceFunc(func() float64 { return value }),
			DestroyFunc(func(w *ValueWatchdog) { destroyed = append(destroyed, w) })).
			Configure(Limits{Min: -1, Max: 1, TimeoutReset: 10})
	})

	It("should stay safe inside the band", func() {
		value = 1
		advance(1, 20)
		Expect(w.Status()).To(Equal(Safe))
		Expect(w.Accumulated()).To(BeZero())
		Expect(destroyed).To(BeEmpty())
	})

	It("should accumulate while out of band", func() {
		value = 2
		Expect(w.Advance(1)).To(Equal(Breached))
		Expect(w.Accumulated()).To(Equal(1.0))
		value = -2
		w.Advance(1)
		Expect(w.Accumulated()).To(Equal(2.0))
	})

	It("should decay after returning inside the band", func() {
		value = 5
		advance(1, 6)
		Expect(w.Accumulated()).To(Equal(6.0))
		value = 0
		advance(1, 6)
		Expect(w.Accumulated()).To(BeZero())
		Expect(w.Status()).To(Equal(Safe))
		Expect(destroyed).To(BeEmpty())
	})

	It("should clamp decay at zero", func() {
		value = 5
		w.Advance(0.5)
		value = 0
		w.Advance(3)
		Expect(w.Accumulated()).To(BeZero())
	})

	It("should trigger after the timeout with a non-binary step", func() {
		value = 5
		advance(0.1, 99)
		Expect(w.Status()).To(Equal(Breached))
		advance(0.1, 1)
		Expect(w.Status()).To(Equal(Triggered))
		Expect(destroyed).To(HaveLen(1))
	})

	It("should trigger exactly once", func() {
		value = 5
		advance(1, 9)
		Expect(destroyed).To(BeEmpty())
		Expect(w.Advance(1)).To(Equal(Triggered))
		Expect(destroyed).To(ConsistOf(w))

		advance(1, 5)
		value = 0
		advance(1, 20)
		Expect(destroyed).To(HaveLen(1))
		Expect(w.Status()).To(Equal(Triggered))
	})

	It("should not trigger on sparse spikes", func() {
		for i := 0; i < 100; i++ {
			value = 5
			w.Advance(1)
			value = 0
			w.Advance(1)
		}
		Expect(destroyed).To(BeEmpty())
		Expect(w.Accumulated()).To(BeZero())
	})

	It("should trigger with a zero timeout on the first breach", func() {
		w.SetTimeoutReset(0)
		w.Advance(1)
		Expect(w.Status()).To(Equal(Safe))
		value = 3
		w.Advance(0.1)
		Expect(w.Status()).To(Equal(Triggered))
	})

	It("should latch without a handler", func() {
		w.SetHandler(nil).SetMinMax(0, 0)
		value = 1
		advance(1, 10)
		Expect(w.Status()).To(Equal(Triggered))
	})

	It("should reset an accumulated breach", func() {
		value = 5
		advance(1, 4)
		w.Reset()
		Expect(w.Accumulated()).To(BeZero())
		Expect(w.Status()).To(Equal(Safe))

		advance(1, 10)
		w.Reset()
		Expect(w.Status()).To(Equal(Triggered))
	})

	It("should read zero without a source", func() {
		w.SetSource(nil)
		Expect(w.Value()).To(BeZero())
		Expect(w.Name()).To(Equal("wd"))
	})

	It("should report status names", func() {
		Expect(Safe.String()).To(Equal("safe"))
		Expect(Breached.String()).To(Equal("breached"))
		Expect(Triggered.String()).To(Equal("triggered"))
		Expect(Status(9).String()).To(Equal("unknown"))
	})
})
