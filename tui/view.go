package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/dupscan/pkg/report"
)

const ruleWidth = 60

func (m *model) View() string {
	var body string
	switch m.state {
	case StateInput:
		body = m.inputView()
	case StateScanning:
		body = m.scanningView()
	case StateComplete:
		body = m.completeView()
	case StateError:
		body = m.errorView()
	default:
		body = "未知状态"
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func rule() string {
	return ruleStyle.Render(strings.Repeat("─", ruleWidth))
}

func (m *model) inputView() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("dupscan · 查找重复文件") + "\n\n")
	b.WriteString(sectionStyle.Render("扫描目录") + "\n")
	b.WriteString(inputBoxStyle.Render(m.dirInput.View()) + "\n\n")
	b.WriteString(helpStyle.Render("Enter 开始扫描 · Ctrl+C 退出"))

	return b.String()
}

func (m *model) scanningView() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("dupscan · 扫描中") + "\n\n")
	b.WriteString(m.spinner.View() + " " + m.root + "\n\n")
	b.WriteString(m.bar.ViewAs(m.update.Percent()) + "\n")
	fmt.Fprintf(&b, "已处理 %d / %d，失败 %d\n\n", m.update.Processed, m.update.Total, m.update.Failed)

	b.WriteString(sectionStyle.Render("当前文件") + "\n")
	b.WriteString(currentFileStyle.Render(m.update.CurrentFile) + "\n\n")
	b.WriteString(helpStyle.Render("Ctrl+C 取消并退出"))

	return b.String()
}

func (m *model) completeView() string {
	var b strings.Builder

	b.WriteString(doneHeaderStyle.Render("扫描完成") + "\n\n")
	b.WriteString(summaryBoxStyle.Render(m.renderSummary()) + "\n\n")
	b.WriteString(rule() + "\n")
	b.WriteString(reportStyle.Render(strings.TrimRight(m.report, "\n")) + "\n")
	b.WriteString(rule() + "\n")
	b.WriteString(helpStyle.Render("Enter 扫描新目录 · q 或 Ctrl+C 退出"))

	return b.String()
}

func (m *model) errorView() string {
	var b strings.Builder

	b.WriteString(failHeaderStyle.Render("扫描失败") + "\n\n")
	b.WriteString(m.err.Error() + "\n\n")
	b.WriteString(helpStyle.Render("Enter 重新输入目录 · q 或 Ctrl+C 退出"))

	return b.String()
}

func (m *model) renderSummary() string {
	var b strings.Builder
	if m.result != nil {
		stats := m.result.Stats
		fmt.Fprintf(&b, "目录      %s\n", m.result.Root)
		fmt.Fprintf(&b, "文件      %d 个，无法读取 %d 个\n", stats.TotalFiles, stats.Failed)
		if stats.DirErrors > 0 {
			fmt.Fprintf(&b, "目录错误  %d 个\n", stats.DirErrors)
		}
		fmt.Fprintf(&b, "重复组    %d 组\n", len(m.result.Groups))
		fmt.Fprintf(&b, "可释放    %s\n", report.FormatBytes(m.result.WastedBytes()))
	}
	fmt.Fprintf(&b, "耗时      %s", m.elapsed.Round(time.Millisecond))
	return b.String()
}
