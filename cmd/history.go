package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/moyu-x/dupscan/pkg/database"
	"github.com/moyu-x/dupscan/pkg/report"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "列出已导出的扫描记录",
	Long: `列出导出到 SQLite 数据库中的扫描记录。
使用 --run <ID> 按报告格式显示某次扫描的重复文件和错误。`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("打开数据库失败: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if runID != "" {
		return showRun(out, db, runID)
	}

	runs, err := db.ListRuns(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "没有导出的扫描记录。")
		return nil
	}

	fmt.Fprintln(out, renderRuns(runs))
	return nil
}

func showRun(out io.Writer, db *database.Database, runID string) error {
	run, err := db.Run(runID)
	if err != nil {
		return err
	}
	files, err := db.Duplicates(runID)
	if err != nil {
		return err
	}
	scanErrors, err := db.Errors(runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "扫描记录: %s\n", run.ID)
	fmt.Fprintf(out, "扫描目录: %s\n", run.Root)
	fmt.Fprintf(out, "哈希算法: %s\n", run.Algorithm)
	fmt.Fprintf(out, "开始时间: %s\n\n", run.StartedAt.Format("2006-01-02 15:04:05"))

	messages := make([]string, len(scanErrors))
	for i, e := range scanErrors {
		messages[i] = e.Message
	}
	return report.WriteRun(out, groupsFromRows(files), messages)
}

// groupsFromRows 还原重复组，rows 须已按摘要和组内顺序排列
func groupsFromRows(rows []database.DuplicateFile) []scanner.HashGroup {
	var groups []scanner.HashGroup
	for _, row := range rows {
		if n := len(groups); n == 0 || groups[n-1].Digest != row.Digest {
			groups = append(groups, scanner.HashGroup{
				Digest:   row.Digest,
				Kind:     row.Kind,
				Category: row.Category,
			})
		}
		last := &groups[len(groups)-1]
		last.Files = append(last.Files, scanner.FileRecord{Path: row.FilePath, Size: row.FileSize})
	}
	return groups
}

func renderRuns(runs []database.ScanRun) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "时间", "目录", "算法", "文件", "重复组", "可释放", "失败")

	for _, run := range runs {
		t.Row(
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Root,
			run.Algorithm,
			strconv.Itoa(run.TotalFiles),
			strconv.Itoa(run.Groups),
			report.FormatBytes(run.WastedBytes),
			strconv.Itoa(run.Failed+run.DirErrors),
		)
	}

	return t.String()
}

func init() {
	historyCmd.Flags().String("db", "", "数据库路径（默认使用配置中的 database.path）")
	historyCmd.Flags().IntP("limit", "n", 20, "最多显示的记录数，0 表示全部")
	historyCmd.Flags().String("run", "", "显示指定扫描记录的详情")

	rootCmd.AddCommand(historyCmd)
}
