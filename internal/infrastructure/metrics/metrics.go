// Package metrics 定义 videohub 各进程的 Prometheus 指标。
// 所有方法对 nil 接收者安全，测试中可直接传 nil。
package metrics

import (
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "videohub"

// Trigger results recorded by ObserveTrigger.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// ProviderSet 暴露独立 registry 与指标集合。
var ProviderSet = wire.NewSet(NewRegistry, wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)), New)

// Metrics 聚合上传、触发、计数与处理任务的指标。
type Metrics struct {
	uploads          *prometheus.CounterVec
	uploadDuration   prometheus.Histogram
	triggers         *prometheus.CounterVec
	analyticsUpdates *prometheus.CounterVec
	processingJobs   *prometheus.CounterVec
	processingQueue  prometheus.Gauge
}

// NewRegistry 创建带有 Go 运行时与进程指标的 registry。
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New 在 reg 上注册指标；reg 为 nil 时返回 nil。
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	return &Metrics{
		uploads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Upload requests by outcome",
		}, []string{"result"}),
		uploadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Time spent storing and registering an upload",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		triggers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processor_trigger_total",
			Help:      "Best-effort processor notifications by result",
		}, []string{"result"}),
		analyticsUpdates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_increments_total",
			Help:      "Analytics counter increments by kind",
		}, []string{"kind"}),
		processingJobs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processing_jobs_total",
			Help:      "Processing jobs by final status",
		}, []string{"status"}),
		processingQueue: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "processing_queue_depth",
			Help:      "Jobs waiting in the processor queue",
		}),
	}
}

// ObserveUpload records one upload attempt.
func (m *Metrics) ObserveUpload(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(result).Inc()
	m.uploadDuration.Observe(elapsed.Seconds())
}

// ObserveTrigger records the outcome of one processor notification.
func (m *Metrics) ObserveTrigger(result string) {
	if m == nil {
		return
	}
	m.triggers.WithLabelValues(result).Inc()
}

// ObserveAnalytics records one counter increment ("view" or "like").
func (m *Metrics) ObserveAnalytics(kind string) {
	if m == nil {
		return
	}
	m.analyticsUpdates.WithLabelValues(kind).Inc()
}

// ObserveProcessing records a finished job.
func (m *Metrics) ObserveProcessing(status string) {
	if m == nil {
		return
	}
	m.processingJobs.WithLabelValues(status).Inc()
}

// SetQueueDepth reports the processor backlog.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.processingQueue.Set(float64(n))
}

// Handler 返回 /metrics 处理器。
func Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
