// Package elnsim 节点电路仿真：加载网络描述，按时间步求解并由看门狗保护元件，输出仿真记录。
package elnsim

import (
	"context"
	"elnsim/config"
	"elnsim/record"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Circuit 电路模拟器
type Circuit struct {
	*config.Network
	Config *config.Config
	Record *record.Record
	db     *record.SQLite
}

// Load 加载网络描述文件
func Load(filename string) (*Circuit, error) {
	cfg, err := config.Load(filename)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// New 根据网络描述创建电路，记录所有节点
func New(cfg *config.Config) (*Circuit, error) {
	net, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	c := &Circuit{Network: net, Config: cfg, Record: record.NewRecord(net.Order...)}
	net.Simulator.AcceptHook(c.Record)
	if cfg.Output.SQLite != "" {
		if err := ensureDir(cfg.Output.SQLite); err != nil {
			return nil, err
		}
		if c.db, err = record.OpenSQLite(cfg.Output.SQLite, net.Order...); err != nil {
			return nil, err
		}
		net.Simulator.AcceptHook(c.db)
	}
	return c, nil
}

// Simulate 按配置的步长和步数进行仿真
func (c *Circuit) Simulate(ctx context.Context) error {
	if err := c.Simulator.Run(ctx, c.Config.Sim.Dt, c.Config.Sim.Steps); err != nil {
		return err
	}
	if c.db != nil {
		return c.db.Err()
	}
	return nil
}

// Export 按配置输出仿真记录
func (c *Circuit) Export() error {
	out := c.Config.Output
	outputs := []struct {
		path   string
		render func(w io.Writer) error
	}{
		{out.JSON, c.Record.Render},
		{out.Gnuplot, c.Record.WriteGnuplot},
		{out.HTML, (&record.Charts{Record: c.Record}).Render},
		{out.PNG, (&record.Plot{Record: c.Record}).Render},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := writeFile(o.path, o.render); err != nil {
			return fmt.Errorf("输出 %s 失败: %w", o.path, err)
		}
	}
	return nil
}

// Close 关闭记录数据库
func (c *Circuit) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func writeFile(path string, render func(w io.Writer) error) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, file.Close()) }()
	return render(file)
}
