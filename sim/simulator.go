// Package sim 按时间步驱动网络：每一步先求解方程写回节点值，再检查所有看门狗。
package sim

import (
	"context"
	"elnsim/mna"
	"elnsim/watchdog"
	"fmt"
	"sort"
)

// Watchdog 仿真器驱动的看门狗
type Watchdog interface {
	Name() string
	Advance(dt float64) watchdog.Status
	Status() watchdog.Status
}

// Solver 每步调用的求解器
type Solver interface {
	Solve() error
}

// action 定时执行的宿主动作
type action struct {
	at float64
	fn func()
}

// Simulator 单线程时间步驱动器
type Simulator struct {
	hookable
	solver    Solver
	watchdogs []Watchdog
	actions   []action
	time      float64
	steps     int
}

// New 创建仿真器
func New(solver Solver) *Simulator {
	return &Simulator{solver: solver}
}

// AddWatchdog 注册看门狗
func (s *Simulator) AddWatchdog(w Watchdog) {
	s.watchdogs = append(s.watchdogs, w)
}

// Schedule 在仿真时间到达 at 之后的第一个时间步开始时执行 fn
func (s *Simulator) Schedule(at float64, fn func()) {
	s.actions = append(s.actions, action{at: at, fn: fn})
	sort.SliceStable(s.actions, func(i, j int) bool { return s.actions[i].at < s.actions[j].at })
}

// Tick 推进一个时间步：宿主动作、求解、看门狗检查。
// 所有节点值在看门狗读取之前已经写回。
func (s *Simulator) Tick(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("时间步长必须大于0: %g", dt)
	}
	for len(s.actions) > 0 && s.actions[0].at <= s.time {
		a := s.actions[0]
		s.actions = s.actions[1:]
		a.fn()
	}
	if s.solver != nil {
		if err := s.solver.Solve(); err != nil {
			return fmt.Errorf("时间 %.6e 求解失败: %w", s.time, err)
		}
	}
	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosAfterSolve})
	for _, w := range s.watchdogs {
		before := w.Status()
		if w.Advance(dt) == watchdog.Triggered && before != watchdog.Triggered {
			s.InvokeHook(HookCtx{Domain: s, Pos: HookPosTrigger, Item: w})
		}
	}
	s.time += dt
	s.steps++
	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosAfterTick})
	return nil
}

// Run 连续推进 steps 个时间步，ctx 取消或求解失败时停止
func (s *Simulator) Run(ctx context.Context, dt float64, steps int) error {
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Tick(dt); err != nil {
			return err
		}
	}
	return nil
}

// Watchdogs 已注册的看门狗
func (s *Simulator) Watchdogs() []Watchdog { return append([]Watchdog(nil), s.watchdogs...) }

// Solver 求解器
func (s *Simulator) Solver() Solver { return s.solver }

// MNA 返回 MNA 求解器，不是 *mna.Solver 时返回 nil
func (s *Simulator) MNA() *mna.Solver {
	m, _ := s.solver.(*mna.Solver)
	return m
}

// Time 当前仿真时间
func (s *Simulator) Time() float64 { return s.time }

// Steps 已完成的时间步数
func (s *Simulator) Steps() int { return s.steps }
