package hasher

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/logger"
)

// New 返回指定算法的增量哈希对象
func New(algo internal.Algorithm) (hash.Hash, error) {
	switch algo {
	case internal.AlgorithmMD5, "":
		return md5.New(), nil
	case internal.AlgorithmXXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("不支持的哈希算法: %s", algo)
	}
}

// ComputeDigest 按 4096 字节分块读取文件并计算十六进制摘要
// 打开或读取失败时返回 *internal.FileAccessError
func ComputeDigest(fs afero.Fs, filePath string, algo internal.Algorithm) (string, error) {
	h, err := New(algo)
	if err != nil {
		return "", err
	}

	logger.Get().Trace().Msgf("计算文件哈希: %s", filePath)

	file, err := fs.Open(filePath)
	if err != nil {
		return "", &internal.FileAccessError{Path: filePath, Err: err}
	}
	defer file.Close()

	buf := make([]byte, internal.DefaultChunkSize)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &internal.FileAccessError{Path: filePath, Err: err}
		}
	}

	digest := hex.EncodeToString(h.Sum(nil))
	logger.Get().Trace().Msgf("文件哈希计算完成: %s -> %s", filePath, digest)
	return digest, nil
}
