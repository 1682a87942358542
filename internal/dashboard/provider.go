package dashboard

import (
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet 装配仪表盘组件；客户端接口绑定在 cmd/dashboard/wire.go 中声明。
var ProviderSet = wire.NewSet(
	ProvideURLBuilder,
	ProvideMerger,
	ProvidePoller,
	NewBoard,
	NewLikeUpdater,
	NewPlaybackSession,
	wire.Bind(new(CountSink), new(*Board)),
)

// ProvideURLBuilder 使用 dashboard.bucket_override 构造 URLBuilder。
func ProvideURLBuilder(cfg *configloader.Dashboard, logger log.Logger) *URLBuilder {
	var override string
	if cfg != nil {
		override = cfg.BucketOverride
	}
	return NewURLBuilder(override, logger)
}

// ProvideMerger 使用 dashboard.concurrency 构造 Merger。
func ProvideMerger(analytics AnalyticsFetcher, urls *URLBuilder, cfg *configloader.Dashboard, logger log.Logger) *Merger {
	var concurrency int
	if cfg != nil {
		concurrency = cfg.Concurrency
	}
	return NewMerger(analytics, urls, concurrency, logger)
}

// ProvidePoller 使用 dashboard.poll_interval 构造 Poller。
func ProvidePoller(cfg *configloader.Dashboard) *Poller {
	if cfg == nil {
		return NewPoller(0)
	}
	return NewPoller(cfg.PollInterval.Std())
}
