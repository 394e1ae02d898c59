package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/moyu-x/dupscan/internal"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := LoadFrom(viper.New(), "")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if c.Scanner.Algorithm != string(internal.AlgorithmMD5) {
		t.Errorf("Expected default algorithm md5, got %s", c.Scanner.Algorithm)
	}
	if !c.Scanner.FollowSymlinks {
		t.Error("Expected follow_symlinks to default to true")
	}
	if c.Performance.Workers != internal.DefaultWorkers {
		t.Errorf("Expected %d workers, got %d", internal.DefaultWorkers, c.Performance.Workers)
	}
	if c.Logging.Level != "info" {
		t.Errorf("Expected info log level, got %s", c.Logging.Level)
	}
	if c.Database.Path != internal.DefaultDatabasePath {
		t.Errorf("Expected default database path, got %s", c.Database.Path)
	}
}

func TestLoad_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := `scanner:
  algorithm: xxhash
  follow_symlinks: false
  excludes:
    - "*.tmp"
    - node_modules/
performance:
  workers: 4
logging:
  level: debug
  file: /tmp/dupscan.log
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	c, err := Load(file)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Scanner.Algorithm != "xxhash" {
		t.Errorf("Expected xxhash, got %s", c.Scanner.Algorithm)
	}
	if c.Scanner.FollowSymlinks {
		t.Error("Expected follow_symlinks false")
	}
	if len(c.Scanner.Excludes) != 2 || c.Scanner.Excludes[0] != "*.tmp" {
		t.Errorf("Unexpected excludes: %v", c.Scanner.Excludes)
	}
	if c.Performance.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", c.Performance.Workers)
	}
	if c.Logging.File != "/tmp/dupscan.log" {
		t.Errorf("Expected log file, got %s", c.Logging.File)
	}
}

func TestLoadFrom_MissingExplicitFile(t *testing.T) {
	_, err := LoadFrom(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DUPSCAN_SCANNER_ALGORITHM", "xxhash")
	t.Setenv("DUPSCAN_PERFORMANCE_WORKERS", "3")
	t.Setenv("DUPSCAN_LOGGING_LEVEL", "debug")
	t.Setenv("DUPSCAN_LOGGING_FILE", "/tmp/dupscan-env.log")
	t.Setenv("DUPSCAN_DATABASE_PATH", "/tmp/dupscan-env.db")

	c, err := LoadFrom(viper.New(), "")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if c.Scanner.Algorithm != "xxhash" {
		t.Errorf("Expected algorithm from env, got %s", c.Scanner.Algorithm)
	}
	if c.Performance.Workers != 3 {
		t.Errorf("Expected 3 workers from env, got %d", c.Performance.Workers)
	}
	if c.Logging.Level != "debug" || c.Logging.File != "/tmp/dupscan-env.log" {
		t.Errorf("Expected logging settings from env, got %+v", c.Logging)
	}
	if c.Database.Path != "/tmp/dupscan-env.db" {
		t.Errorf("Expected database path from env, got %s", c.Database.Path)
	}
}
