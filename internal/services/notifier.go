package services

import (
	"context"
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/metrics"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"

	"github.com/go-kratos/kratos/v2/log"
)

const defaultTriggerTimeout = 10 * time.Second

// ProcessorTrigger 把任务投递给处理服务（HTTP 或 AMQP）。
type ProcessorTrigger interface {
	Trigger(ctx context.Context, job events.ProcessorJob) error
}

// Notifier 在独立 goroutine 中执行一次尽力而为的投递。
// 结果只进入日志与 processor_trigger_total 指标，不回传给调用方。
type Notifier struct {
	trigger ProcessorTrigger
	timeout time.Duration
	metrics *metrics.Metrics
	log     *log.Helper
	wg      sync.WaitGroup
}

// NewNotifier 构造 Notifier，返回的 cleanup 会等待尚未完成的投递。
func NewNotifier(trigger ProcessorTrigger, cfg *configloader.Processor, m *metrics.Metrics, logger log.Logger) (*Notifier, func()) {
	timeout := defaultTriggerTimeout
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout.Std()
	}
	n := &Notifier{
		trigger: trigger,
		timeout: timeout,
		metrics: m,
		log:     log.NewHelper(logger),
	}
	return n, n.Wait
}

// Notify 立即返回；投递使用脱离请求取消的 context 与固定超时。
func (n *Notifier) Notify(ctx context.Context, job events.ProcessorJob) {
	detached := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliver(detached, job)
	}()
}

// Wait blocks until in-flight deliveries finish.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(ctx context.Context, job events.ProcessorJob) {
	if n.trigger == nil {
		n.log.WithContext(ctx).Warnf("processor trigger not configured: video_id=%s", job.VideoID)
		n.metrics.ObserveTrigger(metrics.ResultFailure)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.trigger.Trigger(ctx, job); err != nil {
		n.log.WithContext(ctx).Errorf("failed to trigger processing: video_id=%s key=%s err=%v", job.VideoID, job.S3Key, err)
		n.metrics.ObserveTrigger(metrics.ResultFailure)
		return
	}
	n.log.WithContext(ctx).Infof("processing triggered: video_id=%s", job.VideoID)
	n.metrics.ObserveTrigger(metrics.ResultSuccess)
}
