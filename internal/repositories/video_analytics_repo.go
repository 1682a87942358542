package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const analyticsColumns = `video_id, views_count, likes_count, watch_time_seconds, last_updated`

// VideoAnalyticsRepository 维护 video_analytics 计数表。计数只做原子自增。
type VideoAnalyticsRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewVideoAnalyticsRepository 构造仓储。
func NewVideoAnalyticsRepository(pool *pgxpool.Pool, logger log.Logger) *VideoAnalyticsRepository {
	return &VideoAnalyticsRepository{
		pool: pool,
		log:  log.NewHelper(logger),
	}
}

// Init 为新视频写入一条全零计数记录。
func (r *VideoAnalyticsRepository) Init(ctx context.Context, videoID uuid.UUID) error {
	query := `
		INSERT INTO video_analytics (video_id, views_count, likes_count, watch_time_seconds)
		VALUES ($1, 0, 0, 0)`

	if _, err := r.pool.Exec(ctx, query, videoID); err != nil {
		r.log.WithContext(ctx).Errorf("init analytics failed: video_id=%s err=%v", videoID, err)
		return fmt.Errorf("insert video analytics: %w", err)
	}
	return nil
}

// Get 返回计数快照；不存在时返回 ErrAnalyticsNotFound。
func (r *VideoAnalyticsRepository) Get(ctx context.Context, videoID uuid.UUID) (*po.VideoAnalytics, error) {
	query := `SELECT ` + analyticsColumns + ` FROM video_analytics WHERE video_id = $1`
	return r.queryOne(ctx, "get video analytics", query, videoID)
}

// IncrementViews 浏览数 +1 并返回最新快照。
func (r *VideoAnalyticsRepository) IncrementViews(ctx context.Context, videoID uuid.UUID) (*po.VideoAnalytics, error) {
	query := `
		UPDATE video_analytics
		SET views_count = views_count + 1, last_updated = now()
		WHERE video_id = $1
		RETURNING ` + analyticsColumns
	return r.queryOne(ctx, "increment views", query, videoID)
}

// IncrementLikes 点赞数 +1 并返回最新快照。
func (r *VideoAnalyticsRepository) IncrementLikes(ctx context.Context, videoID uuid.UUID) (*po.VideoAnalytics, error) {
	query := `
		UPDATE video_analytics
		SET likes_count = likes_count + 1, last_updated = now()
		WHERE video_id = $1
		RETURNING ` + analyticsColumns
	return r.queryOne(ctx, "increment likes", query, videoID)
}

func (r *VideoAnalyticsRepository) queryOne(ctx context.Context, op, query string, videoID uuid.UUID) (*po.VideoAnalytics, error) {
	var a po.VideoAnalytics
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&a.VideoID, &a.ViewsCount, &a.LikesCount, &a.WatchTimeSeconds, &a.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalyticsNotFound
		}
		r.log.WithContext(ctx).Errorf("%s failed: video_id=%s err=%v", op, videoID, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
