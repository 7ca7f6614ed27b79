package mna

import "github.com/rs/xid"

// State 电路节点，保存一个标量值（节点电位）以及当前连接在节点上的元件集合。
// 元件集合只保存引用，不拥有元件；同一元件最多出现一次。
type State struct {
	Name    string      // 节点名称
	Value   float64     // 节点当前值，约定由求解器在每次求解后写入
	members []Component // 已注册元件，按加入顺序保存
}

// NewState 创建节点，名称为空时生成唯一名称
func NewState(name string) *State {
	if name == "" {
		name = "n" + xid.New().String()
	}
	return &State{Name: name}
}

// Add 注册元件，重复注册无效果
func (s *State) Add(c Component) {
	if s.Has(c) {
		return
	}
	s.members = append(s.members, c)
}

// Remove 移除元件，元件不存在时无效果
func (s *State) Remove(c Component) {
	for i, m := range s.members {
		if m == c {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return
		}
	}
}

// Has 判断元件是否已注册在节点上
func (s *State) Has(c Component) bool {
	for _, m := range s.members {
		if m == c {
			return true
		}
	}
	return false
}

// Members 已注册元件列表副本
func (s *State) Members() []Component {
	return append([]Component(nil), s.members...)
}

// Len 已注册元件数量
func (s *State) Len() int { return len(s.members) }

func (s *State) String() string {
	if s == nil {
		return "nil"
	}
	return s.Name
}
