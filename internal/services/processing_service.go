package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/metrics"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// ErrJobSkipped 表示视频已不在 PENDING 状态（重复投递或已被其他 worker 接手）。
var ErrJobSkipped = errors.New("processing job skipped: video is not pending")

// StatusTransitioner 定义条件状态迁移。
type StatusTransitioner interface {
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to po.VideoStatus) (bool, error)
}

// ObjectChecker 检查原始对象是否存在。
type ObjectChecker interface {
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// ProcessingService 推进单个视频的处理状态：
// PENDING → PROCESSING → COMPLETED | FAILED。
// 仅校验原始对象存在，不做转码，也不生成缩略图。
type ProcessingService struct {
	repo    StatusTransitioner
	objects ObjectChecker
	metrics *metrics.Metrics
	log     *log.Helper
}

// NewProcessingService 构造 ProcessingService。
func NewProcessingService(repo StatusTransitioner, objects ObjectChecker, m *metrics.Metrics, logger log.Logger) *ProcessingService {
	return &ProcessingService{
		repo:    repo,
		objects: objects,
		metrics: m,
		log:     log.NewHelper(logger),
	}
}

// Process 执行一次处理任务并返回最终状态。
// 视频不处于 PENDING 时返回 ErrJobSkipped，不修改任何数据。
func (s *ProcessingService) Process(ctx context.Context, job events.ProcessorJob) (po.VideoStatus, error) {
	if err := job.Validate(); err != nil {
		return "", ErrJobInvalid.WithCause(err)
	}

	claimed, err := s.repo.TransitionStatus(ctx, job.VideoID, po.VideoStatusPending, po.VideoStatusProcessing)
	if err != nil {
		return "", fmt.Errorf("claim video: %w", err)
	}
	if !claimed {
		s.log.WithContext(ctx).Infof("processing skipped: video_id=%s not pending", job.VideoID)
		return "", ErrJobSkipped
	}

	final := po.VideoStatusCompleted
	exists, err := s.objects.Exists(ctx, job.Bucket, job.S3Key)
	switch {
	case err != nil:
		s.log.WithContext(ctx).Errorf("processing: check object failed: video_id=%s key=%s err=%v", job.VideoID, job.S3Key, err)
		final = po.VideoStatusFailed
	case !exists:
		s.log.WithContext(ctx).Warnf("processing: original object missing: video_id=%s bucket=%s key=%s", job.VideoID, job.Bucket, job.S3Key)
		final = po.VideoStatusFailed
	}

	if _, err := s.repo.TransitionStatus(ctx, job.VideoID, po.VideoStatusProcessing, final); err != nil {
		return po.VideoStatusProcessing, fmt.Errorf("finish video: %w", err)
	}
	s.metrics.ObserveProcessing(string(final))
	s.log.WithContext(ctx).Infof("processing finished: video_id=%s status=%s", job.VideoID, final)
	return final, nil
}
