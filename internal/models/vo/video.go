// Package vo 定义视图对象（View Objects），用于向上层传递业务数据。
// VO 由客户端或 Service 层派生，不落库。
package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/google/uuid"
)

// AnalyticsSnapshot 是分析服务对单个视频返回的计数快照。
type AnalyticsSnapshot struct {
	VideoID          uuid.UUID `json:"videoId"`
	Views            int64     `json:"views"`
	Likes            int64     `json:"likes"`
	WatchTimeSeconds int64     `json:"watchTimeSeconds"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// NewAnalyticsSnapshot converts a persisted counter row into the API shape.
func NewAnalyticsSnapshot(a *po.VideoAnalytics) *AnalyticsSnapshot {
	if a == nil {
		return nil
	}
	return &AnalyticsSnapshot{
		VideoID:          a.VideoID,
		Views:            a.ViewsCount,
		Likes:            a.LikesCount,
		WatchTimeSeconds: a.WatchTimeSeconds,
		LastUpdated:      a.LastUpdated,
	}
}

// VideoWithAnalytics 是仪表盘使用的合并视图：视频记录 + 计数快照 + 派生 URL。
// 每次拉取都会重新生成，不跨轮询周期缓存。
type VideoWithAnalytics struct {
	po.Video

	Views        int64   `json:"views"`
	Likes        int64   `json:"likes"`
	VideoURL     string  `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}
