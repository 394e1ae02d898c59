package scanner

import (
	"github.com/moyu-x/dupscan/internal"
)

type (
	FileAccessError  = internal.FileAccessError
	InvalidRootError = internal.InvalidRootError
)

// FileRecord 文件路径及扫描时的大小
type FileRecord struct {
	Path string
	Size int64
}

// HashGroup 内容摘要相同的一组文件，按遍历顺序排列
type HashGroup struct {
	Digest string
	Files  []FileRecord
	// Kind 和 Category 由调用方填充的内容类型及其分类，可为空
	Kind     string
	Category string
}

func (g HashGroup) Paths() []string {
	paths := make([]string, len(g.Files))
	for i, f := range g.Files {
		paths[i] = f.Path
	}
	return paths
}

func (g HashGroup) TotalSize() int64 {
	var total int64
	for _, f := range g.Files {
		total += f.Size
	}
	return total
}

// WastedSize 保留一份之外的冗余空间
func (g HashGroup) WastedSize() int64 {
	if len(g.Files) < 2 {
		return 0
	}
	return g.TotalSize() - g.Files[0].Size
}

// ScanResult 一次扫描的结果，Groups 只包含至少两个文件的组，按摘要排序
type ScanResult struct {
	Root      string
	Algorithm internal.Algorithm
	Groups    []HashGroup
	Errors    []*FileAccessError
	Stats     internal.ScanStats
}

// Duplicates 返回摘要到路径列表的映射
func (r *ScanResult) Duplicates() map[string][]string {
	dups := make(map[string][]string, len(r.Groups))
	for _, g := range r.Groups {
		dups[g.Digest] = g.Paths()
	}
	return dups
}

func (r *ScanResult) DuplicateFiles() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Files)
	}
	return n
}

func (r *ScanResult) WastedBytes() int64 {
	var total int64
	for _, g := range r.Groups {
		total += g.WastedSize()
	}
	return total
}
