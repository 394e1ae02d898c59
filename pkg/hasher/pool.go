package hasher

import (
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupscan/internal"
	"github.com/moyu-x/dupscan/pkg/logger"
)

type HashTask struct {
	Index int
	Path  string
	Size  int64
}

type HashResult struct {
	Index  int
	Path   string
	Size   int64
	Digest string
	Error  error
}

// HashPool 并发计算文件哈希，每个任务只由一个工作协程处理
type HashPool struct {
	fs      afero.Fs
	algo    internal.Algorithm
	workers int
	tasks   chan HashTask
	results chan HashResult
	wg      sync.WaitGroup
	pool    *ants.Pool
	once    sync.Once
}

func NewHashPool(fs afero.Fs, algo internal.Algorithm, workers int) *HashPool {
	if workers < 1 {
		workers = 1
	}
	logger.Get().Debug().Msgf("创建哈希计算池，工作线程数: %d", workers)
	return &HashPool{
		fs:      fs,
		algo:    algo,
		workers: workers,
		tasks:   make(chan HashTask, internal.DefaultBufferSize),
		results: make(chan HashResult, internal.DefaultBufferSize),
	}
}

func (p *HashPool) Start() error {
	logger.Get().Debug().Msgf("启动哈希计算池，启动 %d 个工作线程", p.workers)

	pool, err := ants.NewPool(p.workers)
	if err != nil {
		logger.Get().Error().Err(err).Msg("创建 goroutine 池失败")
		return err
	}
	p.pool = pool

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		if err := p.pool.Submit(p.worker); err != nil {
			p.wg.Done()
			logger.Get().Error().Err(err).Msg("提交工作线程失败")
			return err
		}
	}
	return nil
}

func (p *HashPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		digest, err := ComputeDigest(p.fs, task.Path, p.algo)
		p.results <- HashResult{
			Index:  task.Index,
			Path:   task.Path,
			Size:   task.Size,
			Digest: digest,
			Error:  err,
		}
	}
}

func (p *HashPool) AddTask(task HashTask) {
	p.tasks <- task
}

func (p *HashPool) Results() <-chan HashResult {
	return p.results
}

// Close 停止接收任务，等待所有工作线程结束后关闭结果通道
// 调用方必须持续读取 Results() 直到通道关闭
func (p *HashPool) Close() {
	p.once.Do(func() {
		logger.Get().Debug().Msg("关闭哈希计算池")

		close(p.tasks)
		p.wg.Wait()

		if p.pool != nil {
			p.pool.Release()
		}

		close(p.results)
	})
}
