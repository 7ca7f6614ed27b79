package config

import (
	"elnsim/element"
	"elnsim/mna"
	"elnsim/sim"
	"elnsim/watchdog"
	"fmt"
	"log"
)

// Network 根据描述构建的网络
type Network struct {
	Simulator  *sim.Simulator
	Solver     *mna.Solver
	States     map[string]*mna.State
	Order      []*mna.State // 节点按定义顺序
	Components map[string]element.Element
	Watchdogs  map[string]*watchdog.ValueWatchdog
	Destroyed  []string // 已被看门狗断开的元件
}

// State 按名称获取节点，空名称返回 nil（地）
func (n *Network) State(name string) *mna.State {
	if name == "" {
		return nil
	}
	return n.States[name]
}

// Build 构建仿真器
func (c *Config) Build() (*Network, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	solver := mna.NewSolver(mna.WithGmin(c.Sim.Gmin))
	net := &Network{
		Simulator:  sim.New(solver),
		Solver:     solver,
		States:     make(map[string]*mna.State, len(c.Nodes)),
		Components: make(map[string]element.Element, len(c.Components)),
		Watchdogs:  make(map[string]*watchdog.ValueWatchdog, len(c.Watchdogs)),
	}
	for _, name := range c.Nodes {
		s := mna.NewState(name)
		net.States[name] = s
		net.Order = append(net.Order, s)
	}
	for _, comp := range c.Components {
		e, err := element.New(comp.Kind, comp.Value)
		if err != nil {
			return nil, fmt.Errorf("元件 %s: %w", comp.Name, err)
		}
		if comp.Ghost || comp.Kind == "probe" {
			e.ConnectGhostTo(net.State(comp.A), net.State(comp.B))
		} else {
			e.ConnectTo(net.State(comp.A), net.State(comp.B))
		}
		net.Components[comp.Name] = e
		solver.AddComponent(e)
	}
	for _, w := range c.Watchdogs {
		net.Simulator.AddWatchdog(net.watchdog(w))
	}
	for _, a := range c.Schedule {
		e, value, name := net.Components[a.Component], a.Value, a.Component
		net.Simulator.Schedule(a.At, func() {
			log.Printf("t=%.6g %s 参数设置为 %g", net.Simulator.Time(), name, value)
			e.SetValue(value)
		})
	}
	return net, nil
}

func (n *Network) watchdog(w Watchdog) sim.Watchdog {
	handler := watchdog.DestroyFunc(func(wd *watchdog.ValueWatchdog) {
		log.Printf("t=%.6g 看门狗 %s 触发，值 %g 超出 [%g, %g]",
			n.Simulator.Time(), wd.Name(), wd.Value(), wd.Limits().Min, wd.Limits().Max)
		if w.Protects != "" {
			n.destroy(w.Protects)
		}
	})
	limits := watchdog.Limits{TimeoutReset: w.Timeout}
	if w.Min != nil && w.Max != nil {
		limits.Min, limits.Max = *w.Min, *w.Max
	}
	if w.Node != "" {
		vw := watchdog.NewVoltageStateWatchDog(w.Name, handler).Set(n.States[w.Node])
		switch {
		case w.Nominal == 0:
			vw.Configure(limits)
		case w.Preset == "mirror":
			vw.SetUNominalMirror(w.Nominal)
		case w.Preset == "maxmin":
			vw.SetUMaxMin(w.Nominal)
		default:
			vw.SetUNominal(w.Nominal)
		}
		n.Watchdogs[w.Name] = &vw.ValueWatchdog
		return vw
	}
	cw := watchdog.NewCurrentWatchDog(w.Name, handler).Set(n.Components[w.Current])
	if w.Nominal == 0 {
		cw.Configure(limits)
	} else {
		cw.SetINominal(w.Nominal)
	}
	n.Watchdogs[w.Name] = &cw.ValueWatchdog
	return cw
}

// destroy 断开元件并从求解器移除
func (n *Network) destroy(name string) {
	e, ok := n.Components[name]
	if !ok {
		return
	}
	e.BreakConnection()
	n.Solver.RemoveComponent(e)
	n.Destroyed = append(n.Destroyed, name)
	log.Printf("元件 %s %v 已断开", name, e)
}
