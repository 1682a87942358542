package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

type videoIDRequest struct {
	VideoID uuid.UUID `json:"videoId"`
}

type viewReply struct {
	Message string `json:"message"`
	Views   int64  `json:"views"`
}

type likeReply struct {
	Message string `json:"message"`
	Likes   int64  `json:"likes"`
}

// AnalyticsClient 访问分析服务。调用方负责在失败时降级，本身不重试。
type AnalyticsClient struct {
	client *khttp.Client
	ep     endpoint
	log    *log.Helper
}

// NewAnalyticsClient 基于 dashboard.analytics_url 构造客户端。
func NewAnalyticsClient(ctx context.Context, cfg *configloader.Dashboard, logger log.Logger) (*AnalyticsClient, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("dashboard config is required")
	}
	ep, err := parseEndpoint(cfg.AnalyticsURL)
	if err != nil {
		return nil, nil, fmt.Errorf("analytics url: %w", err)
	}
	client, err := newHTTPClient(ctx, ep, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("analytics http client: %w", err)
	}
	return &AnalyticsClient{client: client, ep: ep, log: log.NewHelper(logger)}, func() { _ = client.Close() }, nil
}

// GetAnalytics 查询单个视频的计数快照。
func (c *AnalyticsClient) GetAnalytics(ctx context.Context, videoID uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	var reply vo.AnalyticsSnapshot
	path := c.ep.path("/api/analytics/" + url.PathEscape(videoID.String()))
	if err := c.client.Invoke(ctx, http.MethodGet, path, nil, &reply); err != nil {
		return nil, fmt.Errorf("get analytics %s: %w", videoID, err)
	}
	return &reply, nil
}

// RecordView 浏览数 +1，返回服务端的最新浏览数。
func (c *AnalyticsClient) RecordView(ctx context.Context, videoID uuid.UUID) (int64, error) {
	var reply viewReply
	if err := c.client.Invoke(ctx, http.MethodPost, c.ep.path("/api/analytics/view"), videoIDRequest{VideoID: videoID}, &reply); err != nil {
		return 0, fmt.Errorf("record view %s: %w", videoID, err)
	}
	return reply.Views, nil
}

// RecordLike 点赞数 +1，返回服务端的最新点赞数。
func (c *AnalyticsClient) RecordLike(ctx context.Context, videoID uuid.UUID) (int64, error) {
	var reply likeReply
	if err := c.client.Invoke(ctx, http.MethodPost, c.ep.path("/api/analytics/like"), videoIDRequest{VideoID: videoID}, &reply); err != nil {
		return 0, fmt.Errorf("record like %s: %w", videoID, err)
	}
	return reply.Likes, nil
}
