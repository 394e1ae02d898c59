package scanner

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/hasher"
	"github.com/moyu-x/dupscan/pkg/logger"
	"github.com/moyu-x/dupscan/pkg/progress"
)

type Options struct {
	Fs             afero.Fs
	Algorithm      internal.Algorithm
	Workers        int
	FollowSymlinks bool
	Excludes       []string
	Progress       *progress.Tracker
}

// Scanner 查找目录中内容相同的文件
type Scanner struct {
	fs       afero.Fs
	algo     internal.Algorithm
	workers  int
	walker   *FileWalker
	progress *progress.Tracker
}

func New(opts Options) (*Scanner, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	algo := opts.Algorithm
	if algo == "" {
		algo = internal.AlgorithmMD5
	}
	if _, err := hasher.New(algo); err != nil {
		return nil, err
	}

	return &Scanner{
		fs:       fs,
		algo:     algo,
		workers:  opts.Workers,
		walker:   NewFileWalker(fs, opts.FollowSymlinks, opts.Excludes),
		progress: opts.Progress,
	}, nil
}

// entry 遍历过程中的一条记录，index 为遍历顺序
type entry struct {
	index  int
	path   string
	size   int64
	digest string
	err    error
	// dir 表示无法读取的是目录
	dir bool
}

// Scan 递归扫描 root，返回重复文件组
// root 不存在或不是目录时返回 *InvalidRootError；单个文件的错误记录在结果中，不会中止扫描
// ctx 只在文件之间检查，不会打断单个文件的读取
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, &InvalidRootError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &InvalidRootError{Path: root}
	}

	logger.Get().Info().Msgf("正在扫描目录：%s", root)

	result := &ScanResult{
		Root:      root,
		Algorithm: s.algo,
	}
	result.Stats.StartTime = time.Now()

	if s.progress != nil {
		total, err := s.walker.CountFiles(root)
		if err != nil {
			return nil, fmt.Errorf("统计文件数量失败: %w", err)
		}
		s.progress.Start(total)
	}

	var entries []entry
	var skipped int
	if s.workers > 1 {
		entries, skipped, err = s.hashParallel(ctx, root)
	} else {
		entries, skipped, err = s.hashSequential(ctx, root)
	}
	if err != nil {
		return nil, err
	}

	s.collect(result, entries)
	result.Stats.Skipped = skipped
	result.Stats.EndTime = time.Now()

	logger.Get().Info().
		Int("files", result.Stats.TotalFiles).
		Int("groups", len(result.Groups)).
		Int("errors", len(result.Errors)).
		Dur("elapsed", result.Stats.Elapsed()).
		Msg("扫描完成")

	return result, nil
}

func (s *Scanner) hashSequential(ctx context.Context, root string) ([]entry, int, error) {
	var entries []entry
	skipped := 0

	err := s.walker.Walk(root, Visitor{
		File: func(path string, info os.FileInfo) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			digest, err := hasher.ComputeDigest(s.fs, path, s.algo)
			entries = append(entries, entry{
				index:  len(entries),
				path:   path,
				size:   info.Size(),
				digest: digest,
				err:    err,
			})
			s.track(path, err)
			return nil
		},
		Error: func(path string, dir bool, err error) {
			entries = append(entries, entry{index: len(entries), path: path, err: err, dir: dir})
		},
		Skip: func(string, string) {
			skipped++
		},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("扫描已取消: %w", err)
	}

	return entries, skipped, nil
}

// hashParallel 遍历仍在单个协程中进行，只有哈希计算交给工作池
func (s *Scanner) hashParallel(ctx context.Context, root string) ([]entry, int, error) {
	pool := hasher.NewHashPool(s.fs, s.algo, s.workers)
	if err := pool.Start(); err != nil {
		pool.Close()
		return nil, 0, fmt.Errorf("启动哈希计算池失败: %w", err)
	}

	var (
		walkEntries []entry
		walkErr     error
		skipped     int
	)

	go func() {
		defer pool.Close()

		index := 0
		walkErr = s.walker.Walk(root, Visitor{
			File: func(path string, info os.FileInfo) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				pool.AddTask(hasher.HashTask{Index: index, Path: path, Size: info.Size()})
				index++
				return nil
			},
			Error: func(path string, dir bool, err error) {
				walkEntries = append(walkEntries, entry{index: index, path: path, err: err, dir: dir})
				index++
			},
			Skip: func(string, string) {
				skipped++
			},
		})
	}()

	var entries []entry
	for r := range pool.Results() {
		entries = append(entries, entry{
			index:  r.Index,
			path:   r.Path,
			size:   r.Size,
			digest: r.Digest,
			err:    r.Error,
		})
		s.track(r.Path, r.Error)
	}

	// 结果通道关闭时遍历协程已经结束
	if walkErr != nil {
		return nil, 0, fmt.Errorf("扫描已取消: %w", walkErr)
	}

	entries = append(entries, walkEntries...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].index < entries[j].index
	})

	return entries, skipped, nil
}

func (s *Scanner) track(path string, err error) {
	if err != nil {
		logger.Get().Error().Err(err).Msgf("处理文件失败: %s", path)
	} else {
		logger.Get().Debug().Msgf("已处理: %s", path)
	}
	if s.progress != nil {
		s.progress.Inc(path, err != nil)
	}
}

// collect 按遍历顺序把文件归入摘要组，只保留至少两个文件的组
// 无法读取的目录记入 Errors 和 DirErrors，不计入文件数
func (s *Scanner) collect(result *ScanResult, entries []entry) {
	byDigest := make(map[string][]FileRecord)

	for _, e := range entries {
		if e.err != nil {
			result.Errors = append(result.Errors, toAccessError(e.path, e.err))
			if e.dir {
				result.Stats.DirErrors++
			} else {
				result.Stats.Failed++
			}
			continue
		}
		result.Stats.Hashed++
		result.Stats.TotalBytes += e.size
		byDigest[e.digest] = append(byDigest[e.digest], FileRecord{Path: e.path, Size: e.size})
	}
	result.Stats.TotalFiles = result.Stats.Hashed + result.Stats.Failed

	for digest, files := range byDigest {
		if len(files) < 2 {
			continue
		}
		result.Groups = append(result.Groups, HashGroup{Digest: digest, Files: files})
	}

	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Digest < result.Groups[j].Digest
	})
}

func toAccessError(path string, err error) *FileAccessError {
	if accessErr, ok := err.(*FileAccessError); ok {
		return accessErr
	}
	return &FileAccessError{Path: path, Err: err}
}
