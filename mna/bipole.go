package mna

import (
	"fmt"
	"reflect"
)

// Bipole 双端元件基础结构，由具体元件嵌入。
// APin/BPin 只是节点引用，不拥有节点；nil 表示引脚未连接。
type Bipole struct {
	APin, BPin *State
	owner      Component // 注册到节点上的元件标识
}

// Bind 设置注册到节点上的元件标识，一般在元件构造时传入外层元件。
// 未绑定时以 *Bipole 自身注册。
func (b *Bipole) Bind(owner Component) *Bipole {
	b.owner = owner
	return b
}

func (b *Bipole) self() Component {
	if b.owner != nil {
		return b.owner
	}
	return b
}

// ConnectTo 断开原有连接后连接到 a/b 并在非空节点上注册
func (b *Bipole) ConnectTo(a, bp *State) *Bipole {
	b.BreakConnection()
	b.APin, b.BPin = a, bp
	if a != nil {
		a.Add(b.self())
	}
	if bp != nil {
		bp.Add(b.self())
	}
	return b
}

// ConnectGhostTo 断开原有连接后只保存引脚引用，不注册到节点。
// 用于只读取节点电位而不影响网络的测量元件。
func (b *Bipole) ConnectGhostTo(a, bp *State) *Bipole {
	b.BreakConnection()
	b.APin, b.BPin = a, bp
	return b
}

// BreakConnection 从两个引脚节点注销，保留引脚引用
func (b *Bipole) BreakConnection() {
	if b.APin != nil {
		b.APin.Remove(b.self())
	}
	if b.BPin != nil {
		b.BPin.Remove(b.self())
	}
}

// ConnectedStates 返回 [APin, BPin]
func (b *Bipole) ConnectedStates() []*State {
	return []*State{b.APin, b.BPin}
}

// U 两端电压，未连接的引脚按 0 计算
func (b *Bipole) U() float64 {
	var ua, ub float64
	if b.APin != nil {
		ua = b.APin.Value
	}
	if b.BPin != nil {
		ub = b.BPin.Value
	}
	return ua - ub
}

// BipoleU 对外报告的电压，默认等于 U，元件可以覆盖
func (b *Bipole) BipoleU() float64 { return b.U() }

func (b *Bipole) String() string {
	return fmt.Sprintf("[%s %s %s]", b.APin, typeName(b.self()), b.BPin)
}

func typeName(c Component) string {
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
