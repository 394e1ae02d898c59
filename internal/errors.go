package internal

import "fmt"

// InvalidRootError 扫描根目录不存在或不是目录
type InvalidRootError struct {
	Path string
	Err  error
}

func (e *InvalidRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("无效的扫描目录 %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("无效的扫描目录 %s: 不是目录", e.Path)
}

func (e *InvalidRootError) Unwrap() error {
	return e.Err
}

// FileAccessError 单个文件无法打开或读取，扫描会跳过该文件继续进行
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("无法访问文件 %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
