package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/repositories"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VideoQueryRepo 定义视频读取所需的访问接口。
type VideoQueryRepo interface {
	List(ctx context.Context, limit int) ([]po.Video, error)
	FindByID(ctx context.Context, id uuid.UUID) (*po.Video, error)
}

// VideoQueryService 封装视频只读用例。
type VideoQueryService struct {
	repo VideoQueryRepo
	log  *log.Helper
}

// NewVideoQueryService 构造视频查询服务。
func NewVideoQueryService(repo VideoQueryRepo, logger log.Logger) *VideoQueryService {
	return &VideoQueryService{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// ListVideos 返回全部视频，按创建时间倒序。
func (s *VideoQueryService) ListVideos(ctx context.Context) ([]po.Video, error) {
	videos, err := s.repo.List(ctx, 0)
	if err != nil {
		s.log.WithContext(ctx).Errorf("list videos failed: %v", err)
		return nil, errors.InternalServer(ReasonDatabaseFailed, "failed to fetch videos").WithCause(fmt.Errorf("list videos: %w", err))
	}
	return videos, nil
}

// GetVideo 查询单个视频。
func (s *VideoQueryService) GetVideo(ctx context.Context, id uuid.UUID) (*po.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		s.log.WithContext(ctx).Errorf("get video failed: id=%s err=%v", id, err)
		return nil, errors.InternalServer(ReasonDatabaseFailed, "failed to fetch video").WithCause(fmt.Errorf("find video: %w", err))
	}
	return video, nil
}
