package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/metrics"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"
	"github.com/bionicotaku/lingo-services-videohub/internal/repositories"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// AnalyticsRepo 定义计数表访问接口。
type AnalyticsRepo interface {
	Get(ctx context.Context, videoID uuid.UUID) (*po.VideoAnalytics, error)
	IncrementViews(ctx context.Context, videoID uuid.UUID) (*po.VideoAnalytics, error)
	IncrementLikes(ctx context.Context, videoID uuid.UUID) (*po.VideoAnalytics, error)
}

// AnalyticsService 读取与递增单个视频的浏览/点赞计数。
type AnalyticsService struct {
	repo    AnalyticsRepo
	metrics *metrics.Metrics
	log     *log.Helper
}

// NewAnalyticsService 构造 AnalyticsService。
func NewAnalyticsService(repo AnalyticsRepo, m *metrics.Metrics, logger log.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:    repo,
		metrics: m,
		log:     log.NewHelper(logger),
	}
}

// ParseVideoID 解析外部传入的视频 id。
func ParseVideoID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.BadRequest(ReasonAnalyticsInvalid, "videoId must be a valid UUID")
	}
	return id, nil
}

// GetAnalytics 返回计数快照。
func (s *AnalyticsService) GetAnalytics(ctx context.Context, videoID uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	row, err := s.repo.Get(ctx, videoID)
	if err != nil {
		return nil, s.mapError(ctx, "get analytics", videoID, err)
	}
	return vo.NewAnalyticsSnapshot(row), nil
}

// RecordView 浏览数 +1，返回最新快照。
func (s *AnalyticsService) RecordView(ctx context.Context, videoID uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	row, err := s.repo.IncrementViews(ctx, videoID)
	if err != nil {
		return nil, s.mapError(ctx, "record view", videoID, err)
	}
	s.metrics.ObserveAnalytics("view")
	return vo.NewAnalyticsSnapshot(row), nil
}

// RecordLike 点赞数 +1，返回最新快照。
func (s *AnalyticsService) RecordLike(ctx context.Context, videoID uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	row, err := s.repo.IncrementLikes(ctx, videoID)
	if err != nil {
		return nil, s.mapError(ctx, "record like", videoID, err)
	}
	s.metrics.ObserveAnalytics("like")
	return vo.NewAnalyticsSnapshot(row), nil
}

func (s *AnalyticsService) mapError(ctx context.Context, op string, videoID uuid.UUID, err error) error {
	if errors.Is(err, repositories.ErrAnalyticsNotFound) {
		return ErrAnalyticsNotFound
	}
	s.log.WithContext(ctx).Errorf("%s failed: video_id=%s err=%v", op, videoID, err)
	return errors.InternalServer(ReasonDatabaseFailed, "failed to access analytics").WithCause(fmt.Errorf("%s: %w", op, err))
}
