package server

import (
	"context"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2/log"
	kmetrics "github.com/go-kratos/kratos/v2/middleware/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	promexp "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Telemetry 聚合 kratos 请求指标所需的 OTel instrument。
// 指标经 Prometheus exporter 写入与业务指标相同的 registry。
type Telemetry struct {
	MeterProvider    *sdkmetric.MeterProvider
	RequestCounter   metric.Int64Counter
	SecondsHistogram metric.Float64Histogram
}

// NewTelemetry 在 reg 上注册 OTel exporter 并创建服务端请求指标。
func NewTelemetry(reg prometheus.Registerer, meta configloader.ServiceMetadata, logger log.Logger) (*Telemetry, func(), error) {
	exporter, err := promexp.New(
		promexp.WithRegisterer(reg),
		promexp.WithoutUnits(),
	)
	if err != nil {
		return nil, nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithView(kmetrics.DefaultSecondsHistogramView(kmetrics.DefaultServerSecondsHistogramName)),
	)
	otel.SetMeterProvider(mp)

	meter := mp.Meter(meta.Name)
	requestCounter, err := kmetrics.DefaultRequestsCounter(meter, kmetrics.DefaultServerRequestsCounterName)
	if err != nil {
		return nil, nil, err
	}
	secondsHistogram, err := kmetrics.DefaultSecondsHistogram(meter, kmetrics.DefaultServerSecondsHistogramName)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(ctx); err != nil {
			log.NewHelper(logger).Warnf("shutdown meter provider: %v", err)
		}
	}
	return &Telemetry{
		MeterProvider:    mp,
		RequestCounter:   requestCounter,
		SecondsHistogram: secondsHistogram,
	}, cleanup, nil
}

func (t *Telemetry) middleware() []kmetrics.Option {
	if t == nil {
		return nil
	}
	return []kmetrics.Option{
		kmetrics.WithRequests(t.RequestCounter),
		kmetrics.WithSeconds(t.SecondsHistogram),
	}
}
