package main

import (
	"context"
	"elnsim"
	"elnsim/config"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var runCmd = &cobra.Command{
	Use:   "run [config.yaml]",
	Short: "运行仿真并输出记录",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(args)
		if err != nil {
			return err
		}
		c, err := elnsim.Load(path)
		if err != nil {
			return err
		}
		atexit.Register(func() {
			if err := c.Close(); err != nil {
				log.Println("关闭记录失败:", err)
			}
		})
		flags := cmd.Flags()
		if flags.Changed("dt") {
			c.Config.Sim.Dt, _ = flags.GetFloat64("dt")
		}
		if flags.Changed("steps") {
			c.Config.Sim.Steps, _ = flags.GetInt("steps")
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := c.Simulate(ctx); err != nil {
			return err
		}
		if err := c.Export(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "仿真完成: t=%.6g, %d 步, 触发 %d 次, 断开元件 %v\n",
			c.Simulator.Time(), c.Simulator.Steps(), len(c.Record.Triggers), c.Destroyed)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [config.yaml]",
	Short: "检查网络描述文件",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(args)
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		net, err := cfg.Build()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d 个节点, %d 个元件, %d 个看门狗\n",
			path, len(net.States), len(net.Components), len(net.Simulator.Watchdogs()))
		return nil
	},
}

func init() {
	runCmd.Flags().Float64("dt", 0, "覆盖时间步长（秒）")
	runCmd.Flags().Int("steps", 0, "覆盖时间步数")
	rootCmd.AddCommand(runCmd, checkCmd)
}
