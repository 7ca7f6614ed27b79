package watchdog

import (
	"elnsim/mna"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fixedDevice struct {
	mna.Bipole
	i float64
}

func (d *fixedDevice) Current() float64 { return d.i }

var _ = Describe("VoltageStateWatchDog", func() {
	var (
		state *mna.State
		fired int
		w     *VoltageStateWatchDog
	)

	BeforeEach(func() {
		state = mna.NewState("n1")
		fired = 0
		w = NewVoltageStateWatchDog("v", DestroyFunc(func(*ValueWatchdog) { fired++ })).Set(state)
	})

	It("should derive limits from the nominal voltage", func() {
		w.SetUNominalMirror(100)
		Expect(w.Limits().Max).To(BeNumerically("~", 130, 1e-9))
		Expect(w.Limits().Min).To(BeNumerically("~", -130, 1e-9))
		Expect(w.Limits().TimeoutReset).To(BeNumerically("~", 25, 1e-9))
	})

	It("should give the same limits for every preset", func() {
		w.SetUNominal(48)
		a := w.Limits()
		w.SetUMaxMin(48)
		b := w.Limits()
		w.SetUNominalMirror(48)
		c := w.Limits()
		Expect(a).To(Equal(b))
		Expect(a).To(Equal(c))
		Expect(NominalLimits(48)).To(Equal(a))
	})

	It("should read the bound node potential", func() {
		state.Value = 42
		Expect(w.Value()).To(Equal(42.0))
		Expect(w.State()).To(BeIdenticalTo(state))
		w.Set(nil)
		Expect(w.Value()).To(BeZero())
	})

	It("should trigger on sustained overvoltage", func() {
		w.SetUNominal(100)
		state.Value = 131
		for i := 0; i < 24; i++ {
			w.Advance(1)
		}
		Expect(fired).To(BeZero())
		w.Advance(1)
		Expect(fired).To(Equal(1))
		w.Advance(1)
		Expect(fired).To(Equal(1))
	})

	It("should accept the band edge", func() {
		w.SetUNominal(100)
		state.Value = w.Limits().Max
		w.Advance(100)
		Expect(w.Status()).To(Equal(Safe))
	})
})

var _ = Describe("CurrentWatchDog", func() {
	It("should monitor device current", func() {
		d := &fixedDevice{i: 2}
		fired := false
		w := NewCurrentWatchDog("i", DestroyFunc(func(*ValueWatchdog) { fired = true })).
			Set(d).SetINominal(1)
		Expect(w.Device()).To(BeIdenticalTo(d))
		Expect(w.Value()).To(Equal(2.0))
		w.Advance(0.25)
		Expect(fired).To(BeTrue())
	})

	It("should read zero when unbound", func() {
		w := NewCurrentWatchDog("i", nil)
		Expect(w.Value()).To(BeZero())
	})
})
