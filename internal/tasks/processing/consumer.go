package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"

	"github.com/go-kratos/kratos/v2/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

const consumerTag = "videohub-processor"

// DeliverySource 是 *amqp.Channel 的消费子集。
type DeliverySource interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// JobSubmitter 阻塞式地把任务交给 worker 池。
type JobSubmitter interface {
	Submit(ctx context.Context, job events.ProcessorJob) error
}

// Consumer 从持久化队列读取处理任务并交给 Runner。
// 任务进入内存队列后即 Ack；无法解析的消息直接 Reject，不重新入队。
type Consumer struct {
	src      DeliverySource
	queue    string
	prefetch int
	jobs     JobSubmitter
	log      *log.Helper

	stop     chan struct{}
	stopOnce sync.Once
}

// NewConsumer 构造 Consumer。prefetch 通常等于 worker 数量。
func NewConsumer(src DeliverySource, queue string, prefetch int, jobs JobSubmitter, logger log.Logger) *Consumer {
	if prefetch <= 0 {
		prefetch = 1
	}
	return &Consumer{
		src:      src,
		queue:    queue,
		prefetch: prefetch,
		jobs:     jobs,
		log:      log.NewHelper(logger),
		stop:     make(chan struct{}),
	}
}

// Start 开始消费，直到 Stop、ctx 取消或 broker 关闭投递通道。
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.src.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := c.src.Consume(c.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	c.log.Infof("amqp consumer started: queue=%s prefetch=%d", c.queue, c.prefetch)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.stop:
			cancel()
		case <-runCtx.Done():
		}
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("amqp delivery channel closed")
			}
			c.handle(runCtx, d)
		}
	}
}

// Stop 停止消费循环。未确认的消息由 broker 重新投递。
func (c *Consumer) Stop(context.Context) error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var job events.ProcessorJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		c.log.Warnf("amqp consumer: decode message failed: message_id=%s err=%v", d.MessageId, err)
		_ = d.Reject(false)
		return
	}
	if err := job.Validate(); err != nil {
		c.log.Warnf("amqp consumer: invalid job: message_id=%s err=%v", d.MessageId, err)
		_ = d.Reject(false)
		return
	}
	if err := c.jobs.Submit(ctx, job); err != nil {
		c.log.Warnf("amqp consumer: submit failed, requeueing: video_id=%s err=%v", job.VideoID, err)
		_ = d.Nack(false, true)
		return
	}
	if err := d.Ack(false); err != nil {
		c.log.Warnf("amqp consumer: ack failed: video_id=%s err=%v", job.VideoID, err)
	}
}
