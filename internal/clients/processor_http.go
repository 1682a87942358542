package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// HTTPProcessorTrigger 以 POST JSON 的方式通知处理服务。响应体被忽略，只看状态码。
type HTTPProcessorTrigger struct {
	client *khttp.Client
	path   string
	log    *log.Helper
}

// NewHTTPProcessorTrigger 基于 processor.url 构造触发器。
func NewHTTPProcessorTrigger(ctx context.Context, cfg *configloader.Processor, logger log.Logger) (*HTTPProcessorTrigger, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("processor config is required")
	}
	ep, err := parseEndpoint(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("processor url: %w", err)
	}
	client, err := newHTTPClient(ctx, ep, cfg.Timeout.Std(), khttp.WithResponseDecoder(discardResponse))
	if err != nil {
		return nil, nil, fmt.Errorf("processor http client: %w", err)
	}
	helper := log.NewHelper(logger)
	cleanup := func() {
		if err := client.Close(); err != nil {
			helper.Warnf("close processor client: %v", err)
		}
	}
	return &HTTPProcessorTrigger{client: client, path: ep.path(""), log: helper}, cleanup, nil
}

// Trigger 发送任务，非 2xx 响应视为失败。
func (t *HTTPProcessorTrigger) Trigger(ctx context.Context, job events.ProcessorJob) error {
	path := t.path
	if path == "" {
		path = "/"
	}
	if err := t.client.Invoke(ctx, http.MethodPost, path, job, nil); err != nil {
		return fmt.Errorf("post processor job: %w", err)
	}
	return nil
}
