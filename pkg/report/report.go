package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/moyu-x/dupscan/pkg/logger"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

const NoDuplicatesMessage = "没有找到重复文件。"

// Write 输出重复文件报告，随后列出无法访问的文件
func Write(w io.Writer, result *scanner.ScanResult) error {
	messages := make([]string, len(result.Errors))
	for i, err := range result.Errors {
		messages[i] = err.Error()
	}
	return WriteRun(w, result.Groups, messages)
}

// WriteRun 以报告格式输出重复组和错误信息，也用于显示已导出的扫描
func WriteRun(w io.Writer, groups []scanner.HashGroup, errs []string) error {
	var b strings.Builder

	if len(groups) == 0 {
		b.WriteString(NoDuplicatesMessage + "\n")
	} else {
		b.WriteString("找到以下重复文件：\n")
		for _, group := range groups {
			writeGroup(&b, group)
		}
	}

	if len(errs) > 0 {
		b.WriteString("\n无法访问以下文件：\n")
		for _, msg := range errs {
			fmt.Fprintf(&b, "  %s\n", msg)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeGroup(b *strings.Builder, group scanner.HashGroup) {
	fmt.Fprintf(b, "\n哈希值: %s\n", group.Digest)
	switch {
	case group.Kind != "" && group.Category != "":
		fmt.Fprintf(b, "  类型: %s (%s)\n", group.Kind, group.Category)
	case group.Kind != "":
		fmt.Fprintf(b, "  类型: %s\n", group.Kind)
	}
	for _, f := range group.Files {
		fmt.Fprintf(b, "  文件: %s (%s)\n", f.Path, FormatKiB(f.Size))
	}
	fmt.Fprintf(b, "  总大小: %s\n", FormatKiB(group.TotalSize()))
}

// FormatKiB 以 KB 为单位保留两位小数
func FormatKiB(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}

// FormatBytes 自动选择单位的可读大小
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// LogSummary 将扫描统计写入日志
func LogSummary(result *scanner.ScanResult) {
	stats := result.Stats

	logger.Get().Info().Msg("========== 扫描完成 ==========")
	logger.Get().Info().Msgf("扫描目录: %s", result.Root)
	logger.Get().Info().Msgf("哈希算法: %s", result.Algorithm)
	logger.Get().Info().Msgf("总文件数: %d", stats.TotalFiles)
	logger.Get().Info().Msgf("  - 已计算: %d 个 (%s)", stats.Hashed, FormatBytes(stats.TotalBytes))
	logger.Get().Info().Msgf("  - 失败: %d 个", stats.Failed)
	logger.Get().Info().Msgf("  - 跳过: %d 个", stats.Skipped)
	if stats.DirErrors > 0 {
		logger.Get().Info().Msgf("无法读取的目录: %d 个", stats.DirErrors)
	}
	logger.Get().Info().Msgf("重复组: %d 组，共 %d 个文件", len(result.Groups), result.DuplicateFiles())
	logger.Get().Info().Msgf("可释放空间: %s", FormatBytes(result.WastedBytes()))
	logger.Get().Info().Msgf("总耗时: %v", stats.Elapsed())
	logger.Get().Info().Msg("============================")
}
