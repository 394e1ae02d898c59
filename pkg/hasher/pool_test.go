package hasher

import (
	"fmt"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupscan/internal"
)

func TestHashPool_StartClose(t *testing.T) {
	pool := NewHashPool(afero.NewMemMapFs(), internal.AlgorithmMD5, 2)
	if err := pool.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	pool.Close()

	if _, ok := <-pool.Results(); ok {
		t.Error("Results channel should be closed after Close()")
	}

	// 重复关闭不应 panic
	pool.Close()
}

func TestHashPool_MultipleTasks(t *testing.T) {
	fs := afero.NewMemMapFs()
	const numFiles = 20

	pool := NewHashPool(fs, internal.AlgorithmXXHash, 4)
	if err := pool.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for i := 0; i < numFiles; i++ {
		filePath := fmt.Sprintf("/data/file%d.txt", i)
		content := []byte(fmt.Sprintf("content%d", i%5))
		if err := afero.WriteFile(fs, filePath, content, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	go func() {
		for i := 0; i < numFiles; i++ {
			pool.AddTask(HashTask{Index: i, Path: fmt.Sprintf("/data/file%d.txt", i)})
		}
		pool.Close()
	}()

	seen := make(map[int]string)
	timeout := time.After(5 * time.Second)

resultLoop:
	for {
		select {
		case <-timeout:
			t.Fatalf("Timeout waiting for results, got %d/%d", len(seen), numFiles)
		case result, ok := <-pool.Results():
			if !ok {
				break resultLoop
			}
			if result.Error != nil {
				t.Errorf("Unexpected error for %s: %v", result.Path, result.Error)
				continue
			}
			if _, dup := seen[result.Index]; dup {
				t.Errorf("Task %d hashed more than once", result.Index)
			}
			seen[result.Index] = result.Digest
		}
	}

	if len(seen) != numFiles {
		t.Fatalf("Expected %d results, got %d", numFiles, len(seen))
	}
	if seen[0] != seen[5] || seen[0] == seen[1] {
		t.Error("Digests should follow file content")
	}
}

func TestHashPool_ErrorIsolation(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/ok.txt", []byte("ok"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	pool := NewHashPool(fs, internal.AlgorithmMD5, 2)
	if err := pool.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	go func() {
		pool.AddTask(HashTask{Index: 0, Path: "/missing.txt"})
		pool.AddTask(HashTask{Index: 1, Path: "/ok.txt", Size: 2})
		pool.Close()
	}()

	var failed, succeeded int
	for result := range pool.Results() {
		if result.Error != nil {
			failed++
			if result.Path != "/missing.txt" {
				t.Errorf("Unexpected failing path: %s", result.Path)
			}
			continue
		}
		succeeded++
		if result.Size != 2 {
			t.Errorf("Expected size to be carried through, got %d", result.Size)
		}
	}

	if failed != 1 || succeeded != 1 {
		t.Errorf("Expected 1 failure and 1 success, got %d and %d", failed, succeeded)
	}
}

func TestNewHashPool_MinimumWorkers(t *testing.T) {
	pool := NewHashPool(afero.NewMemMapFs(), internal.AlgorithmMD5, 0)
	if pool.workers != 1 {
		t.Errorf("Expected workers to be clamped to 1, got %d", pool.workers)
	}
}
