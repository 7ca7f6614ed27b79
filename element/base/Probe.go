package base

import (
	"elnsim/element"
	"elnsim/mna"
)

// ProbeType 定义元件
var ProbeType = element.AddElement("probe", func(float64) element.Element {
	return NewProbe(nil, nil)
})

// Probe 电压表，只通过幽灵连接读取节点电位，不向方程加盖
type Probe struct {
	mna.Bipole
}

// NewProbe 创建电压表并幽灵连接到 a、b
func NewProbe(a, b *mna.State) *Probe {
	p := &Probe{}
	p.Bind(p)
	p.ConnectGhostTo(a, b)
	return p
}

func (p *Probe) Stamp(mna.Stamp) {}
func (p *Probe) Current() float64 { return 0 }
func (p *Probe) Value() float64 { return p.U() }
func (p *Probe) SetValue(float64) {}
