package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupscan/config"
	"github.com/moyu-x/dupscan/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dupscan",
	Short: "按内容查找目录中的重复文件",
	Long: `dupscan 递归遍历目录，计算每个文件的内容摘要，并列出内容完全相同的文件组。

主要功能:
- 使用 MD5（默认）或 xxHash 计算文件摘要
- 按摘要分组，只报告至少两个文件的组
- 无法读取的文件单独列出，不影响扫描
- 可选地把扫描结果导出到 SQLite 数据库

dupscan 只读取文件，不会修改、移动或删除任何文件。`,
	SilenceUsage: true,
}

// Execute 由 main.main 调用
func Execute() {
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认搜索 $HOME/.dupscan/config.yaml）")
}
