// Package processing 承载处理服务的后台任务：内存队列 + worker 池，以及可选的 AMQP 消费者。
package processing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/metrics"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers    = 2
	defaultQueueSize  = 64
	defaultJobTimeout = time.Minute
)

// JobProcessor 执行单个处理任务。
type JobProcessor interface {
	Process(ctx context.Context, job events.ProcessorJob) (po.VideoStatus, error)
}

// Runner 持有有界任务队列与固定数量的 worker。
// 实现 kratos transport.Server：Start 阻塞运行 worker，Stop 停止接收并排空队列。
type Runner struct {
	processor  JobProcessor
	queue      chan events.ProcessorJob
	workers    int
	jobTimeout time.Duration
	metrics    *metrics.Metrics
	log        *log.Helper

	mu       sync.RWMutex
	closed   bool
	stopping chan struct{}
	drain    chan struct{}
	done     chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// NewRunner 构造 Runner；workers 与 queue_size 为 0 时使用默认值。
func NewRunner(processor JobProcessor, cfg *configloader.Processor, m *metrics.Metrics, logger log.Logger) *Runner {
	workers, size := defaultWorkers, defaultQueueSize
	if cfg != nil {
		if cfg.Workers > 0 {
			workers = cfg.Workers
		}
		if cfg.QueueSize > 0 {
			size = cfg.QueueSize
		}
	}
	return &Runner{
		processor:  processor,
		queue:      make(chan events.ProcessorJob, size),
		workers:    workers,
		jobTimeout: defaultJobTimeout,
		metrics:    m,
		log:        log.NewHelper(logger),
		stopping:   make(chan struct{}),
		drain:      make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Enqueue 非阻塞入队。队列已满或 Runner 已停止时返回 services.ErrProcessorBusy。
func (r *Runner) Enqueue(job events.ProcessorJob) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return services.ErrProcessorBusy
	}
	select {
	case r.queue <- job:
		r.metrics.SetQueueDepth(len(r.queue))
		return nil
	default:
		r.log.Warnf("processing queue full, rejecting video_id=%s", job.VideoID)
		return services.ErrProcessorBusy
	}
}

// Submit 阻塞入队，直到有空位、ctx 取消或 Runner 停止。AMQP 消费者使用它形成背压。
func (r *Runner) Submit(ctx context.Context, job events.ProcessorJob) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return services.ErrProcessorBusy
	}
	select {
	case r.queue <- job:
		r.metrics.SetQueueDepth(len(r.queue))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.stopping:
		return services.ErrProcessorBusy
	}
}

// Start 启动 worker 并阻塞到 Stop 或 ctx 取消；两种情况下 worker 都会先排空队列。
func (r *Runner) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return errors.New("processing runner already started")
	}
	defer close(r.done)
	r.log.Infof("processing runner started: workers=%d queue=%d", r.workers, cap(r.queue))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			r.work(gctx)
			return nil
		})
	}
	return g.Wait()
}

// Stop 停止接收新任务，等待 worker 处理完已入队任务或 ctx 超时。
func (r *Runner) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() {
		close(r.stopping)
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.drain)
	})
	if !r.started.Load() {
		return nil
	}
	select {
	case <-r.done:
		r.log.Info("processing runner stopped")
		return nil
	case <-ctx.Done():
		r.log.Warnf("processing runner stop timed out: pending=%d", len(r.queue))
		return ctx.Err()
	}
}

// work 处理任务直到 Stop 或 ctx 取消，退出前排空已入队的任务。
func (r *Runner) work(ctx context.Context) {
	for {
		select {
		case job := <-r.queue:
			r.handle(ctx, job)
		case <-ctx.Done():
			r.drainQueue(ctx)
			return
		case <-r.drain:
			r.drainQueue(ctx)
			return
		}
	}
}

func (r *Runner) drainQueue(ctx context.Context) {
	for {
		select {
		case job := <-r.queue:
			r.handle(ctx, job)
		default:
			return
		}
	}
}

func (r *Runner) handle(ctx context.Context, job events.ProcessorJob) {
	r.metrics.SetQueueDepth(len(r.queue))
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.jobTimeout)
	defer cancel()

	status, err := r.processor.Process(jobCtx, job)
	switch {
	case err == nil:
		r.log.WithContext(jobCtx).Debugf("processing job done: video_id=%s status=%s", job.VideoID, status)
	case errors.Is(err, services.ErrJobSkipped):
		r.log.WithContext(jobCtx).Infof("processing job skipped: video_id=%s", job.VideoID)
	case errors.Is(err, services.ErrJobInvalid):
		r.log.WithContext(jobCtx).Warnf("processing job invalid: video_id=%s err=%v", job.VideoID, err)
	default:
		r.log.WithContext(jobCtx).Errorf("processing job failed: video_id=%s err=%v", job.VideoID, err)
	}
}
