package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/classifier"
	"github.com/moyu-x/dupscan/pkg/database"
	"github.com/moyu-x/dupscan/pkg/logger"
	"github.com/moyu-x/dupscan/pkg/progress"
	"github.com/moyu-x/dupscan/pkg/report"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

type ScanOptions struct {
	Root           string
	Algorithm      string
	Workers        int
	FollowSymlinks bool
	Excludes       []string
	// ExportDB 非空时把结果写入该 SQLite 文件
	ExportDB string
	LogLevel string
	LogFile  string
	Verbose  bool

	// 以下字段供测试和 TUI 使用
	Fs         afero.Fs
	Progress   *progress.Tracker
	LogConsole io.Writer
}

// RunScan 扫描 opts.Root 并把报告写入 out
// 返回的 error 只表示整体失败；单个文件的错误在报告和结果中列出
func RunScan(ctx context.Context, opts *ScanOptions, out io.Writer) (*scanner.ScanResult, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}

	console := opts.LogConsole
	if console == nil {
		console = os.Stderr
	}
	if err := logger.InitWithWriter(logLevel, opts.LogFile, console); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	algo, err := internal.ParseAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	logger.Get().Info().Msgf("哈希算法: %s", algo)
	logger.Get().Info().Msgf("工作协程数: %d", opts.Workers)
	logger.Get().Info().Msgf("跟随符号链接: %v", opts.FollowSymlinks)
	for i, pattern := range opts.Excludes {
		logger.Get().Info().Msgf("  排除规则 [%d] %s", i+1, pattern)
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	s, err := scanner.New(scanner.Options{
		Fs:             fs,
		Algorithm:      algo,
		Workers:        opts.Workers,
		FollowSymlinks: opts.FollowSymlinks,
		Excludes:       opts.Excludes,
		Progress:       opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.Scan(ctx, opts.Root)
	if err != nil {
		return nil, err
	}

	classifier.NewClassifier(fs).Annotate(result.Groups)

	if err := report.Write(out, result); err != nil {
		return result, fmt.Errorf("输出报告失败: %w", err)
	}
	report.LogSummary(result)

	if opts.ExportDB != "" {
		if err := export(opts.ExportDB, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

func export(dbPath string, result *scanner.ScanResult) error {
	logger.Get().Info().Msgf("导出数据库: %s", dbPath)

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("打开导出数据库失败: %w", err)
	}
	defer db.Close()

	if err := db.SaveScan(result, uuid.New().String()); err != nil {
		return fmt.Errorf("导出扫描结果失败: %w", err)
	}
	return nil
}
