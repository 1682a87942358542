package processing

import (
	"github.com/bionicotaku/lingo-services-videohub/internal/clients"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet 装配 Runner 与可选的 AMQP Consumer。
var ProviderSet = wire.NewSet(NewRunner, ProvideConsumer)

// ProvideConsumer 在配置了 processor.amqp.url 时连接 broker 并构造 Consumer；否则返回 nil。
func ProvideConsumer(cfg *configloader.Processor, runner *Runner, logger log.Logger) (*Consumer, func(), error) {
	if cfg == nil || cfg.AMQP.URL == "" {
		return nil, func() {}, nil
	}
	conn, ch, err := clients.DialQueue(cfg.AMQP.URL, cfg.AMQP.Queue)
	if err != nil {
		return nil, nil, err
	}
	helper := log.NewHelper(logger)
	cleanup := func() {
		_ = ch.Close()
		if err := conn.Close(); err != nil {
			helper.Warnf("close amqp connection: %v", err)
		}
	}
	return NewConsumer(ch, cfg.AMQP.Queue, runner.workers, runner, logger), cleanup, nil
}
