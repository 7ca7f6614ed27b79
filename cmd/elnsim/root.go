package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// configEnv 未指定配置文件参数时读取的环境变量
const configEnv = "ELNSIM_CONFIG"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "elnsim",
	Short: "节点电路仿真器",
	Long: `elnsim 读取 YAML 网络描述，按时间步求解节点电压，` +
		`由看门狗监测超限并断开被保护的元件，最后输出仿真记录。`,
	SilenceUsage: true,
}

// configPath 参数优先，其次为环境变量（可写在 .env 中）
func configPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("读取 .env 失败:", err)
	}
	if p := os.Getenv(configEnv); p != "" {
		return p, nil
	}
	return "", errors.New("需要指定网络描述文件或设置 " + configEnv)
}
