package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/dupscan/app"
	"github.com/moyu-x/dupscan/pkg/logger"
)

// Run 启动交互界面，返回最后一次成功扫描的报告
// 界面运行期间日志只写入日志文件
func Run(base app.ScanOptions) (string, error) {
	base.LogConsole = io.Discard
	if err := logger.InitWithWriter(base.LogLevel, base.LogFile, io.Discard); err != nil {
		return "", err
	}

	logger.Get().Info().Msg("启动 TUI 界面")

	m := initialModel(base)
	final, err := tea.NewProgram(&m, tea.WithAltScreen()).Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
		return "", err
	}
	logger.Get().Info().Msg("TUI 正常退出")

	if fm, ok := final.(*model); ok && fm.state == StateComplete {
		return fm.report, nil
	}
	return "", nil
}
