package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher 是 *amqp.Channel 的发布子集。
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPProcessorTrigger 把任务投递到持久化队列，由处理服务消费。
type AMQPProcessorTrigger struct {
	mu    sync.Mutex
	ch    Publisher
	queue string
	log   *log.Helper
}

// NewAMQPProcessorTrigger 使用已声明队列的 channel 构造触发器。
func NewAMQPProcessorTrigger(ch Publisher, queue string, logger log.Logger) *AMQPProcessorTrigger {
	return &AMQPProcessorTrigger{ch: ch, queue: queue, log: log.NewHelper(logger)}
}

// DialQueue 建立连接与 channel，并声明持久化队列。
func DialQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return conn, ch, nil
}

// Trigger 以持久化消息发布任务。amqp channel 不是并发安全的，发布需串行。
func (t *AMQPProcessorTrigger) Trigger(ctx context.Context, job events.ProcessorJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal processor job: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ch.PublishWithContext(ctx, "", t.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.VideoID.String(),
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish processor job: %w", err)
	}
	return nil
}

// NewProcessorTrigger 按配置选择投递方式：配置了 processor.amqp.url 时走队列，否则走 HTTP。
func NewProcessorTrigger(ctx context.Context, cfg *configloader.Processor, logger log.Logger) (services.ProcessorTrigger, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("processor config is required")
	}
	helper := log.NewHelper(logger)
	if cfg.AMQP.URL == "" {
		helper.Infof("processor trigger: http %s", cfg.URL)
		trigger, cleanup, err := NewHTTPProcessorTrigger(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return trigger, cleanup, nil
	}

	conn, ch, err := DialQueue(cfg.AMQP.URL, cfg.AMQP.Queue)
	if err != nil {
		return nil, nil, err
	}
	helper.Infof("processor trigger: amqp queue=%s", cfg.AMQP.Queue)
	cleanup := func() {
		_ = ch.Close()
		if err := conn.Close(); err != nil {
			helper.Warnf("close amqp connection: %v", err)
		}
	}
	return NewAMQPProcessorTrigger(ch, cfg.AMQP.Queue, logger), cleanup, nil
}
