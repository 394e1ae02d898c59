package internal

const (
	// 数据库默认路径
	DefaultDatabasePath = "~/.dupscan/scans.db"

	// 缓冲区大小
	DefaultBufferSize = 1000

	// 哈希计算时每次读取的块大小
	DefaultChunkSize = 4096

	// 默认哈希工作线程数，1 表示顺序计算
	DefaultWorkers = 1

	// 文件类型检测所需的文件头部大小（字节）
	FileHeaderSize = 261

	// 未知文件类型
	UnknownFileType = "unknown"
)
