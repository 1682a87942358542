package server

import (
	"github.com/bionicotaku/lingo-services-videohub/internal/controllers"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/metrics"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	kmetrics "github.com/go-kratos/kratos/v2/middleware/metrics"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/middleware/tracing"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
)

// ProviderSet 暴露 Telemetry；各进程的 HTTP Server 构造函数在 cmd 的 wire.go 中分别引用。
var ProviderSet = wire.NewSet(NewTelemetry)

// routeRegistrar 由各 Handler 实现，将路由挂载到共享 Router。
type routeRegistrar interface {
	Register(r *http.Router)
}

// NewUploaderHTTPServer 构造上传服务：/api/upload、/api/videos、/health、/metrics。
func NewUploaderHTTPServer(c *configloader.Server, reg *prometheus.Registry, tel *Telemetry, health *controllers.HealthHandler, upload *controllers.UploadHandler, videos *controllers.VideoHandler, logger log.Logger) *http.Server {
	return newHTTPServer(c, reg, tel, logger, health, upload, videos)
}

// NewAnalyticsHTTPServer 构造分析服务：/api/analytics/*、/health、/metrics。
func NewAnalyticsHTTPServer(c *configloader.Server, reg *prometheus.Registry, tel *Telemetry, health *controllers.HealthHandler, analytics *controllers.AnalyticsHandler, logger log.Logger) *http.Server {
	return newHTTPServer(c, reg, tel, logger, health, analytics)
}

// NewProcessorHTTPServer 构造处理服务：/process、/health、/metrics。
func NewProcessorHTTPServer(c *configloader.Server, reg *prometheus.Registry, tel *Telemetry, health *controllers.HealthHandler, processor *controllers.ProcessorHandler, logger log.Logger) *http.Server {
	return newHTTPServer(c, reg, tel, logger, health, processor)
}

func newHTTPServer(c *configloader.Server, reg *prometheus.Registry, tel *Telemetry, logger log.Logger, handlers ...routeRegistrar) *http.Server {
	mws := []middleware.Middleware{
		recovery.Recovery(),
		tracing.Server(),
		logging.Server(logger),
	}
	if tel != nil {
		mws = append(mws, kmetrics.Server(tel.middleware()...))
	}
	opts := []http.ServerOption{
		http.Middleware(mws...),
		http.ErrorEncoder(controllers.ErrorEncoder),
	}
	if c != nil {
		if c.HTTP.Network != "" {
			opts = append(opts, http.Network(c.HTTP.Network))
		}
		if c.HTTP.Addr != "" {
			opts = append(opts, http.Address(c.HTTP.Addr))
		}
		if c.HTTP.Timeout > 0 {
			opts = append(opts, http.Timeout(c.HTTP.Timeout.Std()))
		}
	}

	srv := http.NewServer(opts...)
	if reg != nil {
		srv.Handle("/metrics", metrics.Handler(reg))
	}
	r := srv.Route("/")
	for _, h := range handlers {
		h.Register(r)
	}
	return srv
}
