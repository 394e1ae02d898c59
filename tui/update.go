package tui

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/dupscan/app"
	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/logger"
	pgs "github.com/moyu-x/dupscan/pkg/progress"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "esc", "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
		case "enter":
			return m.handleEnterKey()
		}

	case tea.WindowSizeMsg:
		m.dirInput.Width = msg.Width - 10
		m.bar.Width = msg.Width - 10
		return m, nil

	case progressMsg:
		if m.state != StateScanning || m.tracker == nil {
			return m, nil
		}
		m.update = internal.ProgressUpdate(msg)
		return m, waitForProgress(m.tracker.Updates())

	case scanCompleteMsg:
		m.finishScan(msg)
		return m, nil

	case spinner.TickMsg:
		if m.state != StateScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.dirInput, cmd = m.dirInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) handleEnterKey() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateInput:
		root := strings.TrimSpace(m.dirInput.Value())
		if root == "" {
			return m, nil
		}
		return m, m.startScan(root)

	case StateComplete, StateError:
		m.reset()
		return m, textinput.Blink
	}

	return m, nil
}

func (m *model) startScan(root string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	tracker := pgs.NewTracker()

	m.state = StateScanning
	m.root = root
	m.tracker = tracker
	m.cancel = cancel
	m.update = internal.ProgressUpdate{}
	m.startedAt = time.Now()
	m.dirInput.Blur()

	opts := m.base
	opts.Root = root
	opts.Progress = tracker

	return tea.Batch(
		m.spinner.Tick,
		waitForProgress(tracker.Updates()),
		runScanCmd(ctx, &opts, tracker),
	)
}

func (m *model) finishScan(msg scanCompleteMsg) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.tracker = nil
	m.elapsed = time.Since(m.startedAt)

	if msg.err != nil {
		m.state = StateError
		m.err = msg.err
		return
	}

	m.state = StateComplete
	m.result = msg.result
	m.report = msg.report
	if msg.result != nil {
		m.update.Processed = msg.result.Stats.TotalFiles
		m.update.Failed = msg.result.Stats.Failed
		if m.update.Total < m.update.Processed {
			m.update.Total = m.update.Processed
		}
	}
}

func (m *model) reset() {
	m.state = StateInput
	m.root = ""
	m.result = nil
	m.report = ""
	m.err = nil
	m.update = internal.ProgressUpdate{}
	m.dirInput.Reset()
	m.dirInput.Focus()
}

// runScanCmd 在后台执行扫描，结束后关闭 tracker
func runScanCmd(ctx context.Context, opts *app.ScanOptions, tracker *pgs.Tracker) tea.Cmd {
	return func() tea.Msg {
		defer tracker.Close()

		var out bytes.Buffer
		result, err := app.RunScan(ctx, opts, &out)
		if err != nil {
			logger.Get().Error().Err(err).Msg("交互式扫描失败")
		}
		return scanCompleteMsg{result: result, report: out.String(), err: err}
	}
}

// waitForProgress 读取下一条进度，通道关闭后不再产生消息
func waitForProgress(updates <-chan internal.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return nil
		}
		return progressMsg(update)
	}
}
