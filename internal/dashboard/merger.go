package dashboard

import (
	"context"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// AnalyticsFetcher 读取单个视频的计数快照。
type AnalyticsFetcher interface {
	GetAnalytics(ctx context.Context, videoID uuid.UUID) (*vo.AnalyticsSnapshot, error)
}

// Merger 将视频列表与各自的计数合并为展示模型。
type Merger struct {
	analytics AnalyticsFetcher
	urls      *URLBuilder
	limit     int
	log       *log.Helper
}

// NewMerger 构造 Merger；concurrency<=0 时使用默认并发度 8。
func NewMerger(analytics AnalyticsFetcher, urls *URLBuilder, concurrency int, logger log.Logger) *Merger {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Merger{analytics: analytics, urls: urls, limit: concurrency, log: log.NewHelper(logger)}
}

// Merge 并发拉取每个视频的计数。单个视频拉取失败时计数置 0，条目保留，输出顺序与输入一致。
func (m *Merger) Merge(ctx context.Context, videos []po.Video) []vo.VideoWithAnalytics {
	out := make([]vo.VideoWithAnalytics, len(videos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.limit)
	for i := range videos {
		out[i] = vo.VideoWithAnalytics{
			Video:        videos[i],
			VideoURL:     m.urls.VideoURL(videos[i]),
			ThumbnailURL: m.urls.ThumbnailURL(videos[i]),
		}
		g.Go(func() error {
			snapshot, err := m.analytics.GetAnalytics(gctx, videos[i].ID)
			if err != nil {
				m.log.WithContext(gctx).Warnf("fetch analytics failed, defaulting to zero: video_id=%s err=%v", videos[i].ID, err)
				return nil
			}
			if snapshot != nil {
				out[i].Views = snapshot.Views
				out[i].Likes = snapshot.Likes
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
