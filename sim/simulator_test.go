package sim

import (
	"context"
	"errors"

	"elnsim/element/base"
	"elnsim/mna"
	"elnsim/watchdog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Simulator", func() {
	var (
		solver *mockSolver
		s      *Simulator
	)

	BeforeEach(func() {
		solver = &mockSolver{}
		s = New(solver)
	})

	AfterEach(func() {
		solver.AssertExpectations(GinkgoT())
	})

	It("should solve before monitoring", func() {
		var order []string
		solver.onSolve = func() { order = append(order, "solve") }
		solver.On("Solve").Return(nil).Once()
		w := watchdog.New("w", watchdog.SourceFunc(func() float64 {
			order = append(order, "watch")
			return 0
		}), nil).SetMinMax(-1, 1).SetTimeoutReset(1)
		s.AddWatchdog(w)
		s.AcceptHook(HookFunc(func(ctx HookCtx) {
			if ctx.Pos == HookPosAfterSolve {
				order = append(order, "hook")
			}
		}))

		Expect(s.Tick(0.1)).To(Succeed())
		Expect(order).To(Equal([]string{"solve", "hook", "watch"}))
		Expect(s.Steps()).To(Equal(1))
		Expect(s.Time()).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("should reject a non-positive step", func() {
		Expect(s.Tick(0)).NotTo(Succeed())
	})

	It("should stop on solver errors", func() {
		solver.On("Solve").Return(mna.ErrSingular).Once()
		err := s.Run(context.Background(), 1, 10)
		Expect(errors.Is(err, mna.ErrSingular)).To(BeTrue())
		Expect(s.Steps()).To(BeZero())
	})

	It("should stop when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(s.Run(ctx, 1, 10)).To(MatchError(context.Canceled))
	})

	It("should invoke the trigger hook once", func() {
		solver.On("Solve").Return(nil).Times(5)
		w := watchdog.New("w", watchdog.SourceFunc(func() float64 { return 10 }), nil).
			Configure(watchdog.Limits{Min: -1, Max: 1, TimeoutReset: 2})
		s.AddWatchdog(w)
		var triggered []any
		s.AcceptHook(HookFunc(func(ctx HookCtx) {
			if ctx.Pos == HookPosTrigger {
				triggered = append(triggered, ctx.Item)
			}
		}))

		Expect(s.Run(context.Background(), 1, 5)).To(Succeed())
		Expect(triggered).To(ConsistOf(w))
		Expect(s.Watchdogs()).To(HaveLen(1))
	})

	It("should run scheduled actions in time order", func() {
		solver.On("Solve").Return(nil).Times(4)
		var got []string
		s.Schedule(2, func() { got = append(got, "b") })
		s.Schedule(0, func() { got = append(got, "a") })
		s.Schedule(10, func() { got = append(got, "c") })

		Expect(s.Run(context.Background(), 1, 4)).To(Succeed())
		Expect(got).To(Equal([]string{"a", "b"}))
	})
})

var _ = Describe("Simulator with MNA", func() {
	It("should disconnect a device when its watchdog fires", func() {
		n1 := mna.NewState("n1")
		v := base.NewVoltageSource(10)
		v.ConnectTo(n1, nil)
		r := base.NewResistor(100)
		r.ConnectTo(n1, nil)
		solver := mna.NewSolver()
		solver.AddComponent(v)
		solver.AddComponent(r)

		s := New(solver)
		Expect(s.MNA()).To(BeIdenticalTo(solver))
		wd := watchdog.NewVoltageStateWatchDog("n1", watchdog.DestroyFunc(func(*watchdog.ValueWatchdog) {
			r.BreakConnection()
			solver.RemoveComponent(r)
		})).Set(n1).SetUNominal(10)
		s.AddWatchdog(wd)
		s.Schedule(1, func() { v.SetU(20) })

		Expect(s.Run(context.Background(), 0.5, 2)).To(Succeed())
		Expect(n1.Value).To(BeNumerically("~", 10, 1e-6))
		Expect(wd.Status()).To(Equal(watchdog.Safe))

		// 20V 超过 13V，超时 2.5
		Expect(s.Run(context.Background(), 0.5, 5)).To(Succeed())
		Expect(wd.Status()).To(Equal(watchdog.Triggered))
		Expect(n1.Has(r)).To(BeFalse())
		Expect(solver.Components()).To(HaveLen(1))
	})
})
