package base

import (
	"elnsim/element"
	"elnsim/mna"
)

// CurrentSourceType 定义元件
var CurrentSourceType = element.AddElement("current", func(value float64) element.Element {
	return NewCurrentSource(value)
})

// CurrentSource 理想电流源，电流从 a 经过元件流向 b，即注入 b 节点
type CurrentSource struct {
	mna.Bipole
	i float64
}

// NewCurrentSource 创建电流源
func NewCurrentSource(i float64) *CurrentSource {
	c := &CurrentSource{i: i}
	c.Bind(c)
	return c
}

// SetI 设置电流
func (c *CurrentSource) SetI(i float64) { c.i = i }

func (c *CurrentSource) Stamp(s mna.Stamp) { s.StampCurrentSource(c.APin, c.BPin, c.i) }
func (c *CurrentSource) Current() float64 { return c.i }
func (c *CurrentSource) Value() float64 { return c.i }
func (c *CurrentSource) SetValue(v float64) { c.i = v }
