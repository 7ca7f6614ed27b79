package base

import (
	"elnsim/element"
	"elnsim/mna"
)

// VoltageType 定义元件
var VoltageType = element.AddElement("voltage", func(value float64) element.Element {
	return NewVoltageSource(value)
})

// VoltageSource 理想电压源，约束 V(a)-V(b)=U。
// 电流为支路电流，方向 a → b 经过元件，对外供电时为负。
type VoltageSource struct {
	mna.Bipole
	u       float64
	current float64
}

// NewVoltageSource 创建电压源
func NewVoltageSource(u float64) *VoltageSource {
	v := &VoltageSource{u: u}
	v.Bind(v)
	return v
}

// SetU 设置电压
func (v *VoltageSource) SetU(u float64) { v.u = u }

// Stamp 加盖电压源支路
func (v *VoltageSource) Stamp(s mna.Stamp) { s.StampVoltageSource(v.APin, v.BPin, v.u) }

// Branch 两个引脚都未连接时不需要支路
func (v *VoltageSource) Branch() bool { return v.APin != nil || v.BPin != nil }

// SetBranchCurrent 求解器写回支路电流
func (v *VoltageSource) SetBranchCurrent(i float64) { v.current = i }

// Current 上一次求解的支路电流
func (v *VoltageSource) Current() float64 { return v.current }

// BipoleU 报告设定电压
func (v *VoltageSource) BipoleU() float64 { return v.u }

func (v *VoltageSource) Value() float64 { return v.u }
func (v *VoltageSource) SetValue(u float64) { v.u = u }
