// Package record 记录每个时间步的节点值和看门狗状态，并导出为 JSON、gnuplot、网页图表、PNG 或 SQLite。
package record

import (
	"elnsim/mna"
	"elnsim/sim"
	"encoding/json"
	"fmt"
	"io"
)

// accumulator 可读取累计超限时长的看门狗
type accumulator interface {
	Accumulated() float64
}

// Trigger 看门狗触发事件
type Trigger struct {
	Time     float64 `json:"time"`
	Watchdog string  `json:"watchdog"`
}

// Record 记录历史状态
type Record struct {
	Nodes       []string    `json:"nodes"`       // 节点名称
	Elements    []string    `json:"elements"`    // 元件列表
	Links       [][2]int    `json:"links"`       // 连接信息：元件序号、节点序号（-1 为地）
	Watchdogs   []string    `json:"watchdogs"`   // 看门狗名称
	Time        []float64   `json:"time"`        // 时间列
	Values      [][]float64 `json:"values"`      // 节点值列
	Accumulated [][]float64 `json:"accumulated"` // 看门狗累计超限时长列
	Triggers    []Trigger   `json:"triggers"`    // 触发事件

	states []*mna.State
	inited bool
}

// NewRecord 记录给定节点的值
func NewRecord(states ...*mna.State) *Record {
	r := &Record{states: states}
	for _, s := range states {
		r.Nodes = append(r.Nodes, s.Name)
	}
	return r
}

// Func 实现 sim.Hook
func (r *Record) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosAfterTick:
		if !r.inited {
			r.init(ctx.Domain)
		}
		r.update(ctx.Domain)
	case sim.HookPosTrigger:
		if w, ok := ctx.Item.(sim.Watchdog); ok {
			r.Triggers = append(r.Triggers, Trigger{Time: ctx.Domain.Time(), Watchdog: w.Name()})
		}
	}
}

// init 记录元件与节点的连接关系
func (r *Record) init(s *sim.Simulator) {
	r.inited = true
	for _, w := range s.Watchdogs() {
		r.Watchdogs = append(r.Watchdogs, w.Name())
	}
	solver := s.MNA()
	if solver == nil {
		return
	}
	index := make(map[*mna.State]int, len(r.states))
	for i, st := range r.states {
		index[st] = i
	}
	for i, c := range solver.Components() {
		r.Elements = append(r.Elements, fmt.Sprintf("%d:%v", i, c))
		for _, st := range c.ConnectedStates() {
			n := -1
			if st != nil {
				var ok bool
				if n, ok = index[st]; !ok {
					continue
				}
			}
			r.Links = append(r.Links, [2]int{i, n})
		}
	}
}

// update 记录一个时间步
func (r *Record) update(s *sim.Simulator) {
	r.Time = append(r.Time, s.Time())
	values := make([]float64, len(r.states))
	for i, st := range r.states {
		values[i] = st.Value
	}
	r.Values = append(r.Values, values)
	acc := make([]float64, 0, len(r.Watchdogs))
	for _, w := range s.Watchdogs() {
		if a, ok := w.(accumulator); ok {
			acc = append(acc, a.Accumulated())
		} else {
			acc = append(acc, 0)
		}
	}
	r.Accumulated = append(r.Accumulated, acc)
}

// Len 已记录的时间步数
func (r *Record) Len() int { return len(r.Time) }

// Render 输出 JSON
func (r *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(r) }
