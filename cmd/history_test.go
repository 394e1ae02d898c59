package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/database"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

func TestGroupsFromRows(t *testing.T) {
	rows := []database.DuplicateFile{
		{Digest: "aa", Kind: "image/png", Category: "image", FilePath: "/d/1", FileSize: 4},
		{Digest: "aa", Kind: "image/png", Category: "image", FilePath: "/d/2", FileSize: 4},
		{Digest: "bb", FilePath: "/d/3", FileSize: 1},
		{Digest: "bb", FilePath: "/d/4", FileSize: 1},
		{Digest: "bb", FilePath: "/d/5", FileSize: 1},
	}

	groups := groupsFromRows(rows)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Category != "image" || len(groups[0].Files) != 2 {
		t.Errorf("Unexpected first group: %+v", groups[0])
	}
	if len(groups[1].Files) != 3 || groups[1].Files[2].Path != "/d/5" {
		t.Errorf("Unexpected second group: %+v", groups[1])
	}
}

func TestShowRun(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "scans.db"))
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	defer db.Close()

	start := time.Now()
	result := &scanner.ScanResult{
		Root:      "/data",
		Algorithm: internal.AlgorithmMD5,
		Groups: []scanner.HashGroup{{
			Digest: "5d41402abc4b2a76b9719d911017c592",
			Files: []scanner.FileRecord{
				{Path: "/data/a.txt", Size: 5},
				{Path: "/data/b.txt", Size: 5},
			},
		}},
		Errors: []*scanner.FileAccessError{{Path: "/data/locked", Err: os.ErrPermission}},
		Stats:  internal.ScanStats{StartTime: start, EndTime: start},
	}
	if err := db.SaveScan(result, "run-1"); err != nil {
		t.Fatalf("SaveScan() error = %v", err)
	}

	var out bytes.Buffer
	if err := showRun(&out, db, "run-1"); err != nil {
		t.Fatalf("showRun() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"扫描目录: /data",
		"哈希值: 5d41402abc4b2a76b9719d911017c592",
		"  文件: /data/b.txt (0.00 KB)",
		"无法访问文件 /data/locked",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Output missing %q:\n%s", want, text)
		}
	}

	if err := showRun(&out, db, "missing"); err == nil {
		t.Error("Expected error for unknown run")
	}
}
