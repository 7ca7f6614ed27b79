package mna

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultGmin 每个节点到地的最小电导，避免浮空节点导致矩阵奇异
const DefaultGmin = 1e-12

// ErrSingular 方程奇异无法求解
var ErrSingular = errors.New("MNA矩阵奇异")

// Solver 稠密MNA参考求解器。
// 每次 Solve 遍历已加入的元件，只对已注册（非幽灵）的元件加盖，
// 求解后把节点电压写回 State.Value。
type Solver struct {
	gmin       float64
	components []Component
	nodes      []*State       // 本次求解的节点列表
	index      map[*State]int // 节点到矩阵行号
	branches   []Brancher     // 本次求解的支路元件
}

// SolverOption 求解器配置项
type SolverOption func(*Solver)

// WithGmin 设置节点到地的最小电导
func WithGmin(g float64) SolverOption {
	return func(s *Solver) { s.gmin = g }
}

// NewSolver 创建求解器
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{gmin: DefaultGmin}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddComponent 加入元件，重复加入无效果
func (s *Solver) AddComponent(c Component) {
	for _, m := range s.components {
		if m == c {
			return
		}
	}
	s.components = append(s.components, c)
}

// RemoveComponent 移除元件
func (s *Solver) RemoveComponent(c Component) {
	for i, m := range s.components {
		if m == c {
			s.components = append(s.components[:i], s.components[i+1:]...)
			return
		}
	}
}

// Components 已加入元件列表副本
func (s *Solver) Components() []Component {
	return append([]Component(nil), s.components...)
}

// NodeCount 上一次求解的节点数量
func (s *Solver) NodeCount() int { return len(s.nodes) }

// BranchCount 上一次求解的支路数量
func (s *Solver) BranchCount() int { return len(s.branches) }

// Nodes 上一次求解的节点列表
func (s *Solver) Nodes() []*State { return append([]*State(nil), s.nodes...) }

// Solve 构建并求解方程，写回节点电压和支路电流。
// 上一次参与求解、本次已孤立的节点电压置为 0。
func (s *Solver) Solve() error {
	prev := append([]*State(nil), s.nodes...)
	s.nodes = s.nodes[:0]
	s.branches = s.branches[:0]
	s.index = make(map[*State]int)
	stampers := make([]Stamper, 0, len(s.components))
	for _, c := range s.components {
		if !Registered(c) {
			continue
		}
		for _, st := range c.ConnectedStates() {
			if st == nil || !st.Has(c) {
				continue
			}
			if _, ok := s.index[st]; !ok {
				s.index[st] = len(s.nodes)
				s.nodes = append(s.nodes, st)
			}
		}
		if sp, ok := c.(Stamper); ok {
			stampers = append(stampers, sp)
		}
	}
	// 已不再连接任何元件的节点归零
	for _, st := range prev {
		if _, ok := s.index[st]; !ok {
			st.Value = 0
		}
	}
	n := len(s.nodes)
	if n == 0 {
		return nil
	}
	ctx := &stampContext{solver: s, branch: -1}
	for _, sp := range stampers {
		if br, ok := sp.(Brancher); ok && br.Branch() {
			s.branches = append(s.branches, br)
		}
	}
	size := n + len(s.branches)
	ctx.a = mat.NewDense(size, size, nil)
	ctx.z = mat.NewVecDense(size, nil)
	for _, sp := range stampers {
		ctx.branch = -1
		if br, ok := sp.(Brancher); ok && br.Branch() {
			for i, b := range s.branches {
				if b == br {
					ctx.branch = n + i
					break
				}
			}
		}
		sp.Stamp(ctx)
	}
	for i := 0; i < n; i++ {
		ctx.a.Set(i, i, ctx.a.At(i, i)+s.gmin)
	}
	var x mat.VecDense
	if err := x.SolveVec(ctx.a, ctx.z); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) || math.IsNaN(float64(cond)) {
			return fmt.Errorf("求解失败（节点=%d，支路=%d）: %w", n, len(s.branches), ErrSingular)
		}
	}
	for i, st := range s.nodes {
		st.Value = x.AtVec(i)
	}
	for i, br := range s.branches {
		br.SetBranchCurrent(x.AtVec(n + i))
	}
	return nil
}

// stampContext 单次求解的加盖上下文
type stampContext struct {
	solver *Solver
	a      *mat.Dense
	z      *mat.VecDense
	branch int // 当前元件的支路行号，-1 表示无支路
}

func (c *stampContext) node(s *State) int {
	if s == nil {
		return -1
	}
	if i, ok := c.solver.index[s]; ok {
		return i
	}
	return -1
}

func (c *stampContext) add(i, j int, v float64) {
	if i < 0 || j < 0 {
		return
	}
	c.a.Set(i, j, c.a.At(i, j)+v)
}

func (c *stampContext) addZ(i int, v float64) {
	if i < 0 {
		return
	}
	c.z.SetVec(i, c.z.AtVec(i)+v)
}

func (c *stampContext) StampAdmittance(a, b *State, g float64) {
	na, nb := c.node(a), c.node(b)
	c.add(na, na, g)
	c.add(nb, nb, g)
	c.add(na, nb, -g)
	c.add(nb, na, -g)
}

func (c *stampContext) StampCurrentSource(a, b *State, i float64) {
	c.addZ(c.node(a), -i)
	c.addZ(c.node(b), i)
}

func (c *stampContext) StampVoltageSource(a, b *State, v float64) {
	if c.branch < 0 {
		return
	}
	na, nb, k := c.node(a), c.node(b), c.branch
	c.add(na, k, 1)
	c.add(k, na, 1)
	c.add(nb, k, -1)
	c.add(k, nb, -1)
	c.addZ(k, v)
}
