package progress

import (
	"sync"

	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/logger"
)

// DefaultUpdateBuffer 进度通道的缓冲大小，消费者跟不上时丢弃中间状态
const DefaultUpdateBuffer = 100

// Tracker 记录一次扫描的实时进度，可被多个协程同时使用
type Tracker struct {
	total     int
	processed int
	failed    int
	current   string
	updates   chan internal.ProgressUpdate
	closed    bool
	mu        sync.RWMutex
}

func NewTracker() *Tracker {
	return &Tracker{
		updates: make(chan internal.ProgressUpdate, DefaultUpdateBuffer),
	}
}

// Start 重置计数并设置文件总数
func (t *Tracker) Start(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	t.failed = 0
	t.current = ""

	logger.Get().Debug().Msgf("进度跟踪开始，共 %d 个文件", total)
	t.publish()
}

// Inc 标记一个文件处理完成
func (t *Tracker) Inc(path string, failed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed++
	if failed {
		t.failed++
	}
	t.current = path

	// 处理数可能超过预先统计的总数（扫描期间新增了文件）
	if t.processed > t.total {
		t.total = t.processed
	}
	t.publish()
}

// publish 非阻塞发送，调用方必须持有写锁
func (t *Tracker) publish() {
	if t.closed {
		return
	}
	select {
	case t.updates <- t.snapshot():
	default:
	}
}

func (t *Tracker) snapshot() internal.ProgressUpdate {
	return internal.ProgressUpdate{
		Processed:   t.processed,
		Total:       t.total,
		Failed:      t.failed,
		CurrentFile: t.current,
	}
}

// Snapshot 返回当前进度
func (t *Tracker) Snapshot() internal.ProgressUpdate {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot()
}

func (t *Tracker) Updates() <-chan internal.ProgressUpdate {
	return t.updates
}

// Close 关闭进度通道，之后的 Inc 只更新计数
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	close(t.updates)
}
