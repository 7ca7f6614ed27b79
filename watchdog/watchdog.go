// Package watchdog 超限看门狗：按仿真时间累计被监测值超出安全范围的时长，
// 持续超限达到超时时间后触发一次性的破坏动作。
package watchdog

// tolerance 累计时长与超时时间比较的相对容差，吸收逐步累加 dt 的舍入误差
const tolerance = 1e-9

// Status 看门狗状态
type Status int

const (
	Safe      Status = iota // 累计时长为 0
	Breached                // 0 < 累计时长 < 超时时间
	Triggered               // 已触发，终态
)

func (s Status) String() string {
	switch s {
	case Safe:
		return "safe"
	case Breached:
		return "breached"
	case Triggered:
		return "triggered"
	}
	return "unknown"
}

// Source 被监测的标量
type Source interface {
	Value() float64
}

// SourceFunc 函数形式的监测源
type SourceFunc func() float64

// Value 调用函数
func (f SourceFunc) Value() float64 { return f() }

// DestroyHandler 触发时的破坏动作，由宿主提供
type DestroyHandler interface {
	Destroy(w *ValueWatchdog)
}

// DestroyFunc 函数形式的破坏动作
type DestroyFunc func(w *ValueWatchdog)

// Destroy 调用函数
func (f DestroyFunc) Destroy(w *ValueWatchdog) { f(w) }

// Limits 安全范围 [Min, Max] 与超时时间
type Limits struct {
	Min          float64 `yaml:"min" json:"min"`
	Max          float64 `yaml:"max" json:"max"`
	TimeoutReset float64 `yaml:"timeout" json:"timeout"` // 允许累计超限的最长时间，也是完全恢复所需的时间
}

// Contains 判断值是否在安全范围内（含边界）
func (l Limits) Contains(v float64) bool { return v >= l.Min && v <= l.Max }

// ValueWatchdog 通用超限看门狗
type ValueWatchdog struct {
	name        string
	source      Source
	handler     DestroyHandler
	limits      Limits
	accumulated float64
	status      Status
}

// New 创建看门狗，handler 可以为 nil
func New(name string, src Source, h DestroyHandler) *ValueWatchdog {
	return &ValueWatchdog{name: name, source: src, handler: h}
}

// Configure 设置安全范围和超时时间
func (w *ValueWatchdog) Configure(l Limits) *ValueWatchdog {
	w.limits = l
	return w
}

// SetMinMax 设置安全范围
func (w *ValueWatchdog) SetMinMax(min, max float64) *ValueWatchdog {
	w.limits.Min, w.limits.Max = min, max
	return w
}

// SetTimeoutReset 设置超时时间
func (w *ValueWatchdog) SetTimeoutReset(t float64) *ValueWatchdog {
	w.limits.TimeoutReset = t
	return w
}

// SetSource 设置监测源
func (w *ValueWatchdog) SetSource(src Source) *ValueWatchdog {
	w.source = src
	return w
}

// SetHandler 设置破坏动作
func (w *ValueWatchdog) SetHandler(h DestroyHandler) *ValueWatchdog {
	w.handler = h
	return w
}

// Advance 推进一个时间步。
// 值在范围内时累计时长按 dt 衰减到 0，超出范围时按 dt 累加；
// 累计时长达到超时时间后进入 Triggered 并只调用一次破坏动作，之后忽略所有时间步。
func (w *ValueWatchdog) Advance(dt float64) Status {
	if w.status == Triggered {
		return w.status
	}
	if w.limits.Contains(w.Value()) {
		w.accumulated -= dt
		if w.accumulated < 0 {
			w.accumulated = 0
		}
	} else {
		w.accumulated += dt
	}
	switch {
	case w.accumulated > 0 && w.accumulated >= w.limits.TimeoutReset*(1-tolerance):
		w.status = Triggered
		if w.handler != nil {
			w.handler.Destroy(w)
		}
	case w.accumulated > 0:
		w.status = Breached
	default:
		w.status = Safe
	}
	return w.status
}

// Reset 清除累计时长，已触发的看门狗不受影响
func (w *ValueWatchdog) Reset() {
	if w.status == Triggered {
		return
	}
	w.accumulated = 0
	w.status = Safe
}

// Value 当前监测值，未绑定监测源时为 0
func (w *ValueWatchdog) Value() float64 {
	if w.source == nil {
		return 0
	}
	return w.source.Value()
}

func (w *ValueWatchdog) Name() string { return w.name }
func (w *ValueWatchdog) Status() Status { return w.status }
func (w *ValueWatchdog) Accumulated() float64 { return w.accumulated }
func (w *ValueWatchdog) Limits() Limits { return w.limits }
