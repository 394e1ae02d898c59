package internal

import (
	"fmt"
	"strings"
	"time"
)

// 哈希算法
type Algorithm string

const (
	AlgorithmMD5    Algorithm = "md5"
	AlgorithmXXHash Algorithm = "xxhash"
)

// ParseAlgorithm 解析算法名称，空字符串返回默认的 md5
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlgorithmMD5:
		return AlgorithmMD5, nil
	case AlgorithmXXHash:
		return AlgorithmXXHash, nil
	default:
		return "", fmt.Errorf("不支持的哈希算法: %s", s)
	}
}

// 扫描统计
type ScanStats struct {
	TotalFiles int
	Hashed     int
	Failed     int
	Skipped    int
	// DirErrors 无法读取的目录数，不计入 TotalFiles
	DirErrors  int
	TotalBytes int64
	StartTime  time.Time
	EndTime    time.Time
}

func (s ScanStats) Elapsed() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// 进度更新
type ProgressUpdate struct {
	Processed   int
	Total       int
	Failed      int
	CurrentFile string
}

// Percent 返回 0 到 1 之间的完成比例
func (u ProgressUpdate) Percent() float64 {
	if u.Total <= 0 {
		return 0
	}
	if u.Processed >= u.Total {
		return 1
	}
	return float64(u.Processed) / float64(u.Total)
}
