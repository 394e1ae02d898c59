package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var Logger *zerolog.Logger

var (
	mu sync.Mutex
	// logFile 当前打开的日志文件，重新初始化或 Close 时关闭
	logFile *os.File
)

// ParseLevel 解析日志级别，无法识别时返回 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Init 初始化 zerolog 日志
// 日志输出到标准错误，标准输出留给扫描报告
// file: 日志文件路径，为空时仅输出到控制台
func Init(level string, file string) error {
	return InitWithWriter(level, file, os.Stderr)
}

// InitWithWriter 与 Init 相同，但控制台输出写入 console
// 重复调用时关闭上一次打开的日志文件
func InitWithWriter(level string, file string, console io.Writer) error {
	var output io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: "2006-01-02 15:04:05"}

	var fileWriter *os.File
	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		fileWriter = f
		// 文件中保留 JSON 格式，便于后续检索
		output = zerolog.MultiLevelWriter(output, fileWriter)
	}

	logger := zerolog.New(output).With().Timestamp().Logger().Level(ParseLevel(level))

	mu.Lock()
	defer mu.Unlock()

	previous := logFile
	Logger = &logger
	logFile = fileWriter
	if previous != nil {
		return previous.Close()
	}
	return nil
}

// Close 关闭日志文件并丢弃之后的日志，程序退出前调用
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	if Logger != nil {
		logger := Logger.Output(io.Discard)
		Logger = &logger
	}
	return err
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个丢弃所有输出的 logger
func Get() *zerolog.Logger {
	if Logger == nil {
		logger := zerolog.New(io.Discard)
		Logger = &logger
	}
	return Logger
}
