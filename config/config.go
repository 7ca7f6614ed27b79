// Package config 网络描述文件。
//
// YAML 文件描述节点、元件、看门狗、定时动作和输出文件，Build 根据描述构建可运行的仿真器。
// 元件引脚为空字符串时表示未连接（零参考，即地）。
package config

import (
	"elnsim/element"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	_ "elnsim/element/base"
)

// 默认参数
const (
	DefaultDt    = 0.05
	DefaultSteps = 100
)

// Sim 仿真参数
type Sim struct {
	Dt    float64 `yaml:"dt"`    // 时间步长（秒）
	Steps int     `yaml:"steps"` // 时间步数
	Gmin  float64 `yaml:"gmin"`  // 节点到地的最小电导
}

// Component 元件描述
type Component struct {
	Name  string       `yaml:"name"`
	Kind  element.Kind `yaml:"kind"`
	A     string       `yaml:"a"`
	B     string       `yaml:"b"`
	Value float64      `yaml:"value"`
	Ghost bool         `yaml:"ghost,omitempty"` // 幽灵连接，不参与方程
}

// Watchdog 看门狗描述。
// 设置 Nominal 时按额定值推导安全范围，否则使用 Min/Max/Timeout。
type Watchdog struct {
	Name     string   `yaml:"name"`
	Node     string   `yaml:"node,omitempty"`     // 监测节点电位
	Current  string   `yaml:"current,omitempty"`  // 监测元件电流
	Nominal  float64  `yaml:"nominal,omitempty"`  // 额定值
	Preset   string   `yaml:"preset,omitempty"`   // nominal、mirror、maxmin
	Min      *float64 `yaml:"min,omitempty"`      // 显式下限
	Max      *float64 `yaml:"max,omitempty"`      // 显式上限
	Timeout  float64  `yaml:"timeout,omitempty"`  // 显式超时时间
	Protects string   `yaml:"protects,omitempty"` // 触发后断开的元件
}

// Action 定时修改元件主参数
type Action struct {
	At        float64 `yaml:"at"`
	Component string  `yaml:"component"`
	Value     float64 `yaml:"value"`
}

// Output 输出文件，空字符串表示不输出
type Output struct {
	JSON    string `yaml:"json,omitempty"`
	Gnuplot string `yaml:"gnuplot,omitempty"`
	HTML    string `yaml:"html,omitempty"`
	PNG     string `yaml:"png,omitempty"`
	SQLite  string `yaml:"sqlite,omitempty"`
}

// Config 网络描述
type Config struct {
	Sim        Sim         `yaml:"sim"`
	Nodes      []string    `yaml:"nodes"`
	Components []Component `yaml:"components"`
	Watchdogs  []Watchdog  `yaml:"watchdogs,omitempty"`
	Schedule   []Action    `yaml:"schedule,omitempty"`
	Output     Output      `yaml:"output,omitempty"`
}

// Default 默认配置
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Sim.Dt == 0 {
		c.Sim.Dt = DefaultDt
	}
	if c.Sim.Steps == 0 {
		c.Sim.Steps = DefaultSteps
	}
	if c.Sim.Gmin == 0 {
		c.Sim.Gmin = 1e-12
	}
}

// Load 读取并校验网络描述文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置: %w", err)
	}
	return Parse(data)
}

// Parse 解析并校验网络描述
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("解析配置: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save 写入网络描述文件
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建目录: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("序列化配置: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate 检查引用和参数，返回所有错误
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.Dt <= 0 {
		errs = append(errs, fmt.Errorf("时间步长必须大于0: %g", c.Sim.Dt))
	}
	if c.Sim.Steps < 0 {
		errs = append(errs, fmt.Errorf("时间步数不能为负: %d", c.Sim.Steps))
	}
	nodes := make(map[string]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		if n == "" {
			errs = append(errs, errors.New("节点名称不能为空"))
		} else if nodes[n] {
			errs = append(errs, fmt.Errorf("节点重复定义: %s", n))
		}
		nodes[n] = true
	}
	pin := func(owner, n string) {
		if n != "" && !nodes[n] {
			errs = append(errs, fmt.Errorf("%s 引用了未定义的节点: %s", owner, n))
		}
	}
	components := make(map[string]bool, len(c.Components))
	for _, comp := range c.Components {
		switch {
		case comp.Name == "":
			errs = append(errs, errors.New("元件名称不能为空"))
		case components[comp.Name]:
			errs = append(errs, fmt.Errorf("元件重复定义: %s", comp.Name))
		}
		components[comp.Name] = true
		if !element.IsKind(comp.Kind) {
			errs = append(errs, fmt.Errorf("元件 %s 类型未知: %s", comp.Name, comp.Kind))
		}
		pin(comp.Name, comp.A)
		pin(comp.Name, comp.B)
	}
	watchdogs := make(map[string]bool, len(c.Watchdogs))
	for _, w := range c.Watchdogs {
		if w.Name == "" {
			errs = append(errs, errors.New("看门狗名称不能为空"))
		} else if watchdogs[w.Name] {
			errs = append(errs, fmt.Errorf("看门狗重复定义: %s", w.Name))
		}
		watchdogs[w.Name] = true
		switch {
		case w.Node != "" && w.Current != "":
			errs = append(errs, fmt.Errorf("看门狗 %s 只能监测一个对象", w.Name))
		case w.Node != "":
			if !nodes[w.Node] {
				errs = append(errs, fmt.Errorf("看门狗 %s 引用了未定义的节点: %s", w.Name, w.Node))
			}
		case w.Current != "":
			if !components[w.Current] {
				errs = append(errs, fmt.Errorf("看门狗 %s 引用了未定义的元件: %s", w.Name, w.Current))
			}
		default:
			errs = append(errs, fmt.Errorf("看门狗 %s 没有监测对象", w.Name))
		}
		if w.Protects != "" && !components[w.Protects] {
			errs = append(errs, fmt.Errorf("看门狗 %s 保护的元件未定义: %s", w.Name, w.Protects))
		}
		if w.Current != "" && w.Preset != "" {
			errs = append(errs, fmt.Errorf("看门狗 %s 监测电流时不能使用预设", w.Name))
		}
		switch w.Preset {
		case "", "nominal", "mirror", "maxmin":
		default:
			errs = append(errs, fmt.Errorf("看门狗 %s 预设未知: %s", w.Name, w.Preset))
		}
		explicit := w.Min != nil || w.Max != nil
		switch {
		case w.Nominal < 0:
			errs = append(errs, fmt.Errorf("看门狗 %s 额定值不能为负: %g", w.Name, w.Nominal))
		case w.Nominal > 0 && explicit:
			errs = append(errs, fmt.Errorf("看门狗 %s 不能同时设置额定值和上下限", w.Name))
		case w.Nominal == 0 && (w.Min == nil || w.Max == nil):
			errs = append(errs, fmt.Errorf("看门狗 %s 需要额定值或完整的上下限", w.Name))
		case w.Nominal > 0 && w.Timeout != 0:
			errs = append(errs, fmt.Errorf("看门狗 %s 不能同时设置额定值和超时时间", w.Name))
		case explicit && *w.Min > *w.Max:
			errs = append(errs, fmt.Errorf("看门狗 %s 下限大于上限", w.Name))
		}
	}
	for _, a := range c.Schedule {
		if !components[a.Component] {
			errs = append(errs, fmt.Errorf("定时动作引用了未定义的元件: %s", a.Component))
		}
		if a.At < 0 {
			errs = append(errs, fmt.Errorf("定时动作时间不能为负: %g", a.At))
		}
	}
	return errors.Join(errs...)
}
