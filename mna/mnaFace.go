package mna

// Component 参与节点图并向MNA方程贡献加盖的元件。
type Component interface {
	// ConnectedStates 返回元件引脚连接的节点列表，nil 表示引脚未连接。
	// 列表顺序决定加盖的符号约定：第一个引脚为正，第二个引脚为负。
	ConnectedStates() []*State

	// BreakConnection 从所有已注册的节点中注销元件，可重复调用。
	// 只清除节点中的注册关系，不清除引脚引用。
	BreakConnection()
}

// Device 具有电流定律的双端元件，由具体元件实现。
type Device interface {
	Component
	// Current 元件电流，正方向为 a → b。
	Current() float64
	// BipoleU 对外报告的两端电压。
	BipoleU() float64
}

// Stamp 求解器提供给元件的加盖接口，构建方程 Ax=Z。
// 所有参数中的 nil 节点视为地（零参考），只涉及地的加盖会被忽略。
type Stamp interface {
	// StampAdmittance 为电导元件加盖。
	// 数学模型: 在对角元(a,a)和(b,b)加上g，非对角元(a,b)和(b,a)减去g。
	StampAdmittance(a, b *State, g float64)

	// StampCurrentSource 为独立电流源加盖。
	// 数学模型: 电流从a流向b，在向量Z的a位置减去i，b位置加上i。
	StampCurrentSource(a, b *State, i float64)

	// StampVoltageSource 为当前元件的支路加盖独立电压源。
	// 数学模型: 引入支路电流作为新变量，建立约束 V(a)-V(b)=v。
	// 只有实现 Brancher 且 Branch() 为真的元件可以调用。
	StampVoltageSource(a, b *State, v float64)
}

// Stamper 可以向方程加盖的元件
type Stamper interface {
	Component
	Stamp(s Stamp)
}

// Brancher 需要额外支路电流未知量的元件（如理想电压源）
type Brancher interface {
	Stamper
	Branch() bool               // 当前是否需要支路
	SetBranchCurrent(i float64) // 求解后写回支路电流
}

// Registered 判断元件是否至少在一个已连接节点上注册（非幽灵连接）
func Registered(c Component) bool {
	for _, s := range c.ConnectedStates() {
		if s != nil && s.Has(c) {
			return true
		}
	}
	return false
}
