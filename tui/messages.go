package tui

import (
	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

type progressMsg internal.ProgressUpdate

type scanCompleteMsg struct {
	result *scanner.ScanResult
	report string
	err    error
}
