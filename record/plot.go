package record

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot PNG 曲线图
type Plot struct {
	*Record
	Width, Height vg.Length // 图片尺寸，零值时为 8×5 英寸
}

// Render 输出节点值随时间变化的 PNG 图片
func (p *Plot) Render(w io.Writer) error {
	if p.Len() == 0 {
		return errors.New("没有可绘制的数据")
	}
	width, height := p.Width, p.Height
	if width == 0 {
		width = 8 * vg.Inch
	}
	if height == 0 {
		height = 5 * vg.Inch
	}
	pl := plot.New()
	pl.Title.Text = "Node values"
	pl.X.Label.Text = "t (s)"
	pl.Y.Label.Text = "value"
	pl.Add(plotter.NewGrid())
	for i, name := range p.Nodes {
		pts := make(plotter.XYs, len(p.Time))
		for x, t := range p.Time {
			pts[x].X = t
			pts[x].Y = p.Values[x][i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("节点 %s 曲线: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		pl.Add(line)
		pl.Legend.Add(name, line)
	}
	wt, err := pl.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
