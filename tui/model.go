package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/dupscan/app"
	"github.com/moyu-x/dupscan/internal"
	pgs "github.com/moyu-x/dupscan/pkg/progress"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

type State int

const (
	StateInput State = iota
	StateScanning
	StateComplete
	StateError
)

type model struct {
	state State
	// base 为每次扫描共用的选项，Root 和 Progress 在开始扫描时填充
	base      app.ScanOptions
	root      string
	dirInput  textinput.Model
	spinner   spinner.Model
	bar       progress.Model
	tracker   *pgs.Tracker
	cancel    context.CancelFunc
	update    internal.ProgressUpdate
	result    *scanner.ScanResult
	report    string
	startedAt time.Time
	elapsed   time.Duration
	err       error
}

func initialModel(base app.ScanOptions) model {
	dirInput := textinput.New()
	dirInput.Placeholder = "请输入要扫描的目录路径"
	dirInput.Prompt = "> "
	dirInput.PromptStyle = promptStyle
	dirInput.Focus()

	bar := progress.New(progress.WithGradient("#00875F", "#5FD7AF"))
	bar.PercentageStyle = sectionStyle.Width(5)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = sectionStyle

	return model{
		state:    StateInput,
		base:     base,
		dirInput: dirInput,
		spinner:  s,
		bar:      bar,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}
