package base

import (
	"elnsim/element"
	"elnsim/mna"
)

// MinResistance 最小电阻值，非正电阻值会被限制到该值
const MinResistance = 1e-9

// ResistorType 定义元件
var ResistorType = element.AddElement("resistor", func(value float64) element.Element {
	return NewResistor(value)
})

// Resistor 电阻元件
type Resistor struct {
	mna.Bipole
	r float64 // 电阻值（欧姆）
}

// NewResistor 创建电阻
func NewResistor(r float64) *Resistor {
	res := &Resistor{}
	res.Bind(res)
	res.SetR(r)
	return res
}

// SetR 设置电阻值
func (r *Resistor) SetR(v float64) {
	if v < MinResistance {
		v = MinResistance
	}
	r.r = v
}

// R 电阻值
func (r *Resistor) R() float64 { return r.r }

// Stamp 电导 1/R 加盖到 a、b 之间
func (r *Resistor) Stamp(s mna.Stamp) { s.StampAdmittance(r.APin, r.BPin, 1/r.r) }

// Current 欧姆定律 I=U/R
func (r *Resistor) Current() float64 { return r.U() / r.r }

func (r *Resistor) Value() float64 { return r.r }
func (r *Resistor) SetValue(v float64) { r.SetR(v) }
