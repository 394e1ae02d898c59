package scanner

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupscan/pkg/logger"
)

// Visitor 遍历回调，File 返回错误时中止遍历
// Error 的 dir 为 true 表示无法读取的是目录本身
type Visitor struct {
	File  func(path string, info os.FileInfo) error
	Error func(path string, dir bool, err error)
	Skip  func(path string, reason string)
}

// FileWalker 按字典序遍历目录树
// 符号链接目录不会被进入；符号链接文件在 FollowSymlinks 为 true 时按目标内容处理
type FileWalker struct {
	Fs             afero.Fs
	FollowSymlinks bool
	ignore         *gitignore.GitIgnore
}

func NewFileWalker(fs afero.Fs, followSymlinks bool, excludes []string) *FileWalker {
	w := &FileWalker{
		Fs:             fs,
		FollowSymlinks: followSymlinks,
	}
	if len(excludes) > 0 {
		w.ignore = gitignore.CompileIgnoreLines(excludes...)
	}
	return w
}

// Walk 遍历 root 下的所有条目
// root 本身是指向目录的符号链接时会被进入，其下的符号链接目录仍然不进入
func (w *FileWalker) Walk(root string, v Visitor) error {
	walkRoot := w.resolveRoot(root)

	return afero.Walk(w.Fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Warn().Err(err).Msgf("访问路径出错: %s", path)
			if v.Error != nil {
				v.Error(path, info != nil && info.IsDir(), err)
			}
			return nil
		}

		if path != walkRoot && w.excluded(root, path, info.IsDir()) {
			logger.Get().Debug().Msgf("排除路径: %s", path)
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		mode := info.Mode()
		switch {
		case mode.IsRegular():
			return v.File(path, info)
		case mode&os.ModeSymlink != 0:
			return w.visitSymlink(path, v)
		default:
			w.skip(v, path, "非普通文件")
			return nil
		}
	})
}

// resolveRoot 为符号链接根目录追加路径分隔符，使 Lstat 跟随链接
// 遍历得到的路径仍以用户给出的 root 为前缀
func (w *FileWalker) resolveRoot(root string) string {
	lstater, ok := w.Fs.(afero.Lstater)
	if !ok {
		return root
	}
	info, _, err := lstater.LstatIfPossible(root)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return root
	}
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return root
	}
	logger.Get().Debug().Msgf("根目录是符号链接，按目标目录遍历: %s", root)
	return root + string(filepath.Separator)
}

func (w *FileWalker) visitSymlink(path string, v Visitor) error {
	if !w.FollowSymlinks {
		w.skip(v, path, "符号链接")
		return nil
	}

	target, err := w.Fs.Stat(path)
	if err != nil {
		logger.Get().Warn().Err(err).Msgf("无法解析符号链接: %s", path)
		if v.Error != nil {
			v.Error(path, false, err)
		}
		return nil
	}

	if target.IsDir() {
		w.skip(v, path, "指向目录的符号链接")
		return nil
	}
	if !target.Mode().IsRegular() {
		w.skip(v, path, "指向非普通文件的符号链接")
		return nil
	}

	return v.File(path, target)
}

func (w *FileWalker) skip(v Visitor, path, reason string) {
	logger.Get().Debug().Msgf("跳过 %s: %s", reason, path)
	if v.Skip != nil {
		v.Skip(path, reason)
	}
}

func (w *FileWalker) excluded(root, path string, isDir bool) bool {
	if w.ignore == nil {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	if isDir {
		return w.ignore.MatchesPath(rel + "/")
	}
	return w.ignore.MatchesPath(rel)
}

// CountFiles 统计 root 下将被处理的文件数，用于进度显示
func (w *FileWalker) CountFiles(root string) (int, error) {
	logger.Get().Debug().Msgf("开始统计文件数量: %s", root)

	count := 0
	err := w.Walk(root, Visitor{
		File: func(string, os.FileInfo) error {
			count++
			return nil
		},
	})
	if err != nil {
		logger.Get().Error().Err(err).Msgf("扫描目录失败: %s", root)
		return 0, err
	}

	logger.Get().Debug().Msgf("文件统计完成，共找到 %d 个文件", count)
	return count, nil
}
