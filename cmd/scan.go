package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupscan/app"
	"github.com/moyu-x/dupscan/config"
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "扫描目录并报告重复文件",
	Long: `递归遍历目录中的所有文件，计算内容摘要并报告内容相同的文件组。
报告输出到标准输出，日志输出到标准错误。`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := scanOptions(cmd, cfg, args[0])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = app.RunScan(ctx, opts, cmd.OutOrStdout())
	return err
}

// scanOptions 合并配置文件和命令行参数，命令行参数优先
func scanOptions(cmd *cobra.Command, cfg *config.Config, root string) *app.ScanOptions {
	opts := &app.ScanOptions{
		Root:           root,
		Algorithm:      cfg.Scanner.Algorithm,
		Workers:        cfg.Performance.Workers,
		FollowSymlinks: cfg.Scanner.FollowSymlinks,
		Excludes:       cfg.Scanner.Excludes,
		LogLevel:       cfg.Logging.Level,
		LogFile:        cfg.Logging.File,
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		opts.Algorithm, _ = flags.GetString("algorithm")
	}
	if flags.Changed("workers") {
		opts.Workers, _ = flags.GetInt("workers")
	}
	if noFollow, _ := flags.GetBool("no-follow-symlinks"); noFollow {
		opts.FollowSymlinks = false
	}
	if flags.Changed("exclude") {
		excludes, _ := flags.GetStringArray("exclude")
		opts.Excludes = append(append([]string{}, opts.Excludes...), excludes...)
	}
	opts.ExportDB, _ = flags.GetString("export-db")
	opts.Verbose, _ = flags.GetBool("verbose")

	return opts
}

func addScanFlags(c *cobra.Command) {
	c.Flags().StringP("algorithm", "a", "md5", "摘要算法: md5 或 xxhash")
	c.Flags().IntP("workers", "w", 1, "并行计算摘要的协程数，1 为顺序扫描")
	c.Flags().Bool("no-follow-symlinks", false, "跳过指向文件的符号链接")
	c.Flags().StringArrayP("exclude", "e", nil, "排除规则（gitignore 语法，可重复）")
	c.Flags().String("export-db", "", "把扫描结果导出到该 SQLite 数据库")
	c.Flags().BoolP("verbose", "v", false, "显示详细日志")
}

func init() {
	addScanFlags(scanCmd)
	rootCmd.AddCommand(scanCmd)
}
