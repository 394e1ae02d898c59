package report

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/logger"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

func TestWrite_NoDuplicates(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, &scanner.ScanResult{Root: "/data"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if buf.String() != NoDuplicatesMessage+"\n" {
		t.Errorf("Expected single no-duplicates line, got %q", buf.String())
	}
}

func TestWrite_Groups(t *testing.T) {
	result := &scanner.ScanResult{
		Root: "/data",
		Groups: []scanner.HashGroup{
			{
				Digest:   "5d41402abc4b2a76b9719d911017c592",
				Kind:     "image/png",
				Category: "image",
				Files: []scanner.FileRecord{
					{Path: "/data/a.txt", Size: 2048},
					{Path: "/data/b.txt", Size: 2048},
				},
			},
			{
				Digest: "d41d8cd98f00b204e9800998ecf8427e",
				Files: []scanner.FileRecord{
					{Path: "/data/x", Size: 0},
					{Path: "/data/y", Size: 0},
					{Path: "/data/z", Size: 0},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, result); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := `找到以下重复文件：

哈希值: 5d41402abc4b2a76b9719d911017c592
  类型: image/png (image)
  文件: /data/a.txt (2.00 KB)
  文件: /data/b.txt (2.00 KB)
  总大小: 4.00 KB

哈希值: d41d8cd98f00b204e9800998ecf8427e
  文件: /data/x (0.00 KB)
  文件: /data/y (0.00 KB)
  文件: /data/z (0.00 KB)
  总大小: 0.00 KB
`
	if buf.String() != want {
		t.Errorf("Unexpected report:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWrite_Errors(t *testing.T) {
	result := &scanner.ScanResult{
		Errors: []*scanner.FileAccessError{
			{Path: "/data/locked", Err: os.ErrPermission},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, result); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, NoDuplicatesMessage) {
		t.Errorf("Expected no-duplicates message first, got %q", out)
	}
	if !strings.Contains(out, "无法访问文件 /data/locked") {
		t.Errorf("Expected error listing, got %q", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestWrite_WriterError(t *testing.T) {
	if err := Write(failingWriter{}, &scanner.ScanResult{}); err == nil {
		t.Error("Expected writer error to be returned")
	}
}

func TestFormatKiB(t *testing.T) {
	cases := map[int64]string{
		0:       "0.00 KB",
		512:     "0.50 KB",
		1024:    "1.00 KB",
		1536:    "1.50 KB",
		1048576: "1024.00 KB",
	}
	for size, want := range cases {
		if got := FormatKiB(size); got != want {
			t.Errorf("FormatKiB(%d) = %s, want %s", size, got, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		100:        "100 B",
		1024:       "1.0 KB",
		1536:       "1.5 KB",
		1048576:    "1.0 MB",
		1073741824: "1.0 GB",
	}
	for size, want := range cases {
		if got := FormatBytes(size); got != want {
			t.Errorf("FormatBytes(%d) = %s, want %s", size, got, want)
		}
	}
}

func TestLogSummary(t *testing.T) {
	defer func() { logger.Logger = nil }()

	var buf bytes.Buffer
	if err := logger.InitWithWriter("info", "", &buf); err != nil {
		t.Fatalf("InitWithWriter() error = %v", err)
	}

	LogSummary(&scanner.ScanResult{
		Root:      "/data",
		Algorithm: internal.AlgorithmMD5,
		Stats:     internal.ScanStats{TotalFiles: 3, Hashed: 3},
	})

	if !strings.Contains(buf.String(), "总文件数: 3") {
		t.Errorf("Expected summary in log output, got %q", buf.String())
	}
}
