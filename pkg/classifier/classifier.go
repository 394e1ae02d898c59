package classifier

import (
	"fmt"
	"io"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/logger"
	"github.com/moyu-x/dupscan/pkg/scanner"
)

// Classifier 通过文件头识别内容类型
type Classifier struct {
	fs afero.Fs
}

func NewClassifier(fs afero.Fs) *Classifier {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Classifier{fs: fs}
}

// FileType 文件头识别结果
// MIME 无法识别时为 "unknown"；Category 为 image、video、audio、document、archive 或 other
type FileType struct {
	MIME     string
	Category string
}

func (c *Classifier) Classify(filePath string) (FileType, error) {
	kind, err := c.detectFileType(filePath)
	if err != nil {
		return FileType{}, err
	}

	ft := FileType{MIME: kind.MIME.Value, Category: getFileCategory(kind)}
	if kind == types.Unknown {
		ft.MIME = internal.UnknownFileType
	}
	return ft, nil
}

// Annotate 为每个重复组填充内容类型和分类
// 同组文件内容相同，只需检测第一个可读的成员
func (c *Classifier) Annotate(groups []scanner.HashGroup) {
	for i := range groups {
		for _, f := range groups[i].Files {
			ft, err := c.Classify(f.Path)
			if err != nil {
				logger.Get().Debug().Err(err).Msgf("检测文件类型失败: %s", f.Path)
				continue
			}
			groups[i].Kind = ft.MIME
			groups[i].Category = ft.Category
			break
		}
	}
}

func getFileCategory(fileType types.Type) string {
	if fileType == types.Unknown {
		return "other"
	}

	switch fileType.MIME.Type {
	case "image":
		return "image"
	case "video":
		return "video"
	case "audio":
		return "audio"
	}

	switch fileType.Extension {
	case "pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "rtf", "odt", "ods", "odp":
		return "document"
	case "zip", "tar", "gz", "bz2", "rar", "7z", "xz":
		return "archive"
	}

	return "other"
}

func (c *Classifier) detectFileType(filePath string) (types.Type, error) {
	head, err := c.readFileHeader(filePath, internal.FileHeaderSize)
	if err != nil {
		return types.Unknown, err
	}

	// 空文件没有可识别的文件头
	if len(head) == 0 {
		return types.Unknown, nil
	}

	return filetype.Match(head)
}

func (c *Classifier) readFileHeader(filePath string, size int) ([]byte, error) {
	file, err := c.fs.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	head := make([]byte, size)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("读取文件头部失败: %w", err)
	}

	return head[:n], nil
}
