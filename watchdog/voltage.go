package watchdog

import "elnsim/mna"

const (
	nominalFactor = 1.3  // 安全范围为额定值的 1.3 倍
	rippleFactor  = 0.05 // 5% 纹波余量
	rippleSteps   = 5    // 纹波余量持续的步数
)

// NominalLimits 由额定值推导的安全范围：±1.3 倍额定值，超时时间 0.05×5 倍额定值
func NominalLimits(nominal float64) Limits {
	m := nominal * nominalFactor
	return Limits{
		Min:          -m,
		Max:          m,
		TimeoutReset: nominal * rippleFactor * rippleSteps,
	}
}

// VoltageStateWatchDog 监测节点电位的看门狗
type VoltageStateWatchDog struct {
	ValueWatchdog
	state *mna.State
}

// NewVoltageStateWatchDog 创建节点电压看门狗
func NewVoltageStateWatchDog(name string, h DestroyHandler) *VoltageStateWatchDog {
	w := &VoltageStateWatchDog{}
	w.ValueWatchdog = ValueWatchdog{name: name, handler: h}
	w.source = SourceFunc(w.potential)
	return w
}

func (w *VoltageStateWatchDog) potential() float64 {
	if w.state == nil {
		return 0
	}
	return w.state.Value
}

// Set 绑定被监测节点
func (w *VoltageStateWatchDog) Set(state *mna.State) *VoltageStateWatchDog {
	w.state = state
	return w
}

// State 被监测节点
func (w *VoltageStateWatchDog) State() *mna.State { return w.state }

// SetUNominal 由额定电压设置安全范围。
// SetUNominal、SetUNominalMirror、SetUMaxMin 三个预设得到完全相同的参数，
// 保留三个名称只是为了兼容不同调用方的习惯，统一走 NominalLimits。
func (w *VoltageStateWatchDog) SetUNominal(uNominal float64) *VoltageStateWatchDog {
	w.Configure(NominalLimits(uNominal))
	return w
}

// SetUNominalMirror 对称预设，Min 取 -Max
func (w *VoltageStateWatchDog) SetUNominalMirror(uNominal float64) *VoltageStateWatchDog {
	l := NominalLimits(uNominal)
	l.Min = -l.Max
	w.Configure(l)
	return w
}

// SetUMaxMin 与 SetUNominal 相同
func (w *VoltageStateWatchDog) SetUMaxMin(uNominal float64) *VoltageStateWatchDog {
	return w.SetUNominal(uNominal)
}

// CurrentWatchDog 监测元件电流的看门狗
type CurrentWatchDog struct {
	ValueWatchdog
	device mna.Device
}

// NewCurrentWatchDog 创建元件电流看门狗
func NewCurrentWatchDog(name string, h DestroyHandler) *CurrentWatchDog {
	w := &CurrentWatchDog{}
	w.ValueWatchdog = ValueWatchdog{name: name, handler: h}
	w.source = SourceFunc(w.current)
	return w
}

func (w *CurrentWatchDog) current() float64 {
	if w.device == nil {
		return 0
	}
	return w.device.Current()
}

// Set 绑定被监测元件
func (w *CurrentWatchDog) Set(device mna.Device) *CurrentWatchDog {
	w.device = device
	return w
}

// Device 被监测元件
func (w *CurrentWatchDog) Device() mna.Device { return w.device }

// SetINominal 由额定电流设置安全范围，规则同 NominalLimits
func (w *CurrentWatchDog) SetINominal(iNominal float64) *CurrentWatchDog {
	w.Configure(NominalLimits(iNominal))
	return w
}
