package record

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 曲线绘制
type Charts struct {
	*Record
}

func lineOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	}
}

// Render 输出网页
func (c *Charts) Render(w io.Writer) error {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "电路节点信息",
			Subtitle: "元件与节点连接网络图",
		}),
	)
	nodes := make([]opts.GraphNode, 0, len(c.Elements)+len(c.Nodes)+1)
	nodes = append(nodes, opts.GraphNode{Name: "Gnd", Category: 1, ItemStyle: &opts.ItemStyle{Color: "#000000de"}})
	for _, n := range c.Nodes {
		nodes = append(nodes, opts.GraphNode{Name: n, Category: 1})
	}
	for _, e := range c.Elements {
		nodes = append(nodes, opts.GraphNode{Name: e, Category: 0})
	}
	links := make([]opts.GraphLink, 0, len(c.Links))
	for _, l := range c.Links {
		target := "Gnd"
		if l[1] >= 0 {
			target = c.Nodes[l[1]]
		}
		links = append(links, opts.GraphLink{Source: c.Elements[l[0]], Target: target})
	}
	graph.AddSeries("电路列表", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Categories: []*opts.GraphCategory{
				{Name: "元件", ItemStyle: &opts.ItemStyle{Color: "#c71979b7"}},
				{Name: "节点", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
			},
			Roam:  opts.Bool(true),
			Force: &opts.GraphForce{Repulsion: 80},
		}))

	xAxis := make([]string, len(c.Time))
	for i, t := range c.Time {
		xAxis[i] = strconv.FormatFloat(t, 'g', 6, 64)
	}
	lineV := charts.NewLine()
	lineV.SetGlobalOptions(lineOptions("节点电压曲线", "节点值随时间变化曲线")...)
	lineV.SetXAxis(xAxis)
	for i, name := range c.Nodes {
		data := make([]opts.LineData, len(c.Values))
		for x, v := range c.Values {
			data[x] = opts.LineData{Value: v[i]}
		}
		lineV.AddSeries(name, data)
	}
	lineW := charts.NewLine()
	lineW.SetGlobalOptions(lineOptions("看门狗累计曲线", "累计超限时长随时间变化曲线")...)
	lineW.SetXAxis(xAxis)
	for i, name := range c.Watchdogs {
		data := make([]opts.LineData, len(c.Accumulated))
		for x, v := range c.Accumulated {
			if i < len(v) {
				data[x] = opts.LineData{Value: v[i]}
			}
		}
		lineW.AddSeries(name, data)
	}

	page := components.NewPage()
	page.AddCharts(graph, lineV, lineW)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}

func (c *Charts) Error(err error) { log.Println(fmt.Errorf("图表输出失败: %w", err)) }
