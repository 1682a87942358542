// Package clients 包含调用外部服务的客户端门面，封装 HTTP/AMQP 调用细节。
package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

const defaultClientTimeout = 10 * time.Second

// endpoint 把完整 URL 拆成 kratos client 需要的 scheme://host 与路径前缀。
type endpoint struct {
	base   string
	prefix string
}

func parseEndpoint(raw string) (endpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return endpoint{}, fmt.Errorf("endpoint url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return endpoint{}, fmt.Errorf("parse endpoint %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return endpoint{}, fmt.Errorf("endpoint %q must be absolute", raw)
	}
	return endpoint{
		base:   u.Scheme + "://" + u.Host,
		prefix: strings.TrimRight(u.Path, "/"),
	}, nil
}

func (e endpoint) path(p string) string {
	return e.prefix + p
}

func (e endpoint) url(p string) string {
	return e.base + e.prefix + p
}

func newHTTPClient(ctx context.Context, ep endpoint, timeout time.Duration, opts ...khttp.ClientOption) (*khttp.Client, error) {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	base := []khttp.ClientOption{
		khttp.WithEndpoint(ep.base),
		khttp.WithTimeout(timeout),
		khttp.WithUserAgent("videohub"),
	}
	return khttp.NewClient(ctx, append(base, opts...)...)
}

// discardResponse 在状态码已由 error decoder 校验后丢弃响应体。
func discardResponse(_ context.Context, res *http.Response, _ interface{}) error {
	defer res.Body.Close()
	_, err := io.Copy(io.Discard, res.Body)
	return err
}
