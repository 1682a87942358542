package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/metrics"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/objectstore"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/repositories"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// ObjectWriter 抽象对象存储写入。
type ObjectWriter interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, filename string) (objectstore.Object, error)
}

// VideoWriter 抽象视频元数据写入。
type VideoWriter interface {
	Create(ctx context.Context, input repositories.CreateVideoInput) (*po.Video, error)
}

// AnalyticsInitializer 抽象计数行初始化。
type AnalyticsInitializer interface {
	Init(ctx context.Context, videoID uuid.UUID) error
}

// ProcessorNotifier 接收处理任务通知。实现不得阻塞调用方，也不返回错误。
type ProcessorNotifier interface {
	Notify(ctx context.Context, job events.ProcessorJob)
}

// UploadInput 为上传用例输入。File 为 nil 表示请求中没有文件。
type UploadInput struct {
	File        io.Reader
	Size        int64
	Filename    string
	Title       string
	Description string
}

// UploadResult 为上传用例输出。
type UploadResult struct {
	VideoID uuid.UUID
	Status  po.VideoStatus
	Video   *po.Video
}

// UploadService 编排上传管线：校验 → 写对象 → 写元数据 → 初始化计数 → 通知处理服务。
// 各步骤之间没有跨存储事务。
type UploadService struct {
	store     ObjectWriter
	videos    VideoWriter
	analytics AnalyticsInitializer
	notifier  ProcessorNotifier
	metrics   *metrics.Metrics
	newKey    func(filename string) string
	now       func() time.Time
	log       *log.Helper
}

// NewUploadService 构造 UploadService。
func NewUploadService(store ObjectWriter, videos VideoWriter, analytics AnalyticsInitializer, notifier ProcessorNotifier, m *metrics.Metrics, logger log.Logger) *UploadService {
	return &UploadService{
		store:     store,
		videos:    videos,
		analytics: analytics,
		notifier:  notifier,
		metrics:   m,
		newKey:    objectstore.NewObjectKey,
		now:       time.Now,
		log:       log.NewHelper(logger),
	}
}

// WithKeyGenerator 覆盖对象 key 生成函数（测试使用）。
func (s *UploadService) WithKeyGenerator(fn func(filename string) string) *UploadService {
	if fn != nil {
		s.newKey = fn
	}
	return s
}

// Upload 执行上传管线。
//
// 错误：
//   - ErrValidation：缺少文件或标题为空，无任何副作用
//   - ErrStorage：对象写入失败，不会写数据库
//   - ErrDatabase：元数据或计数写入失败，已写入的对象保留
//
// 处理服务通知失败只记录日志，不影响返回值。
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (result *UploadResult, err error) {
	start := s.now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = errors.FromError(err).Reason
		}
		s.metrics.ObserveUpload(outcome, s.now().Sub(start))
	}()

	if input.File == nil {
		return nil, errors.BadRequest(ReasonUploadInvalid, "No video file provided")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.BadRequest(ReasonUploadInvalid, "Title is required")
	}

	key := s.newKey(input.Filename)
	obj, err := s.store.Put(ctx, key, input.File, input.Size, input.Filename)
	if err != nil {
		s.log.WithContext(ctx).Errorf("upload: store object failed: key=%s err=%v", key, err)
		return nil, ErrStorage.WithCause(fmt.Errorf("put object: %w", err))
	}

	video, err := s.videos.Create(ctx, repositories.CreateVideoInput{
		Title:       title,
		Description: optionalText(input.Description),
		Filename:    input.Filename,
		BucketName:  obj.Bucket,
		OriginalKey: obj.Key,
	})
	if err != nil {
		// 对象已写入，记录孤儿 key 便于人工清理
		s.log.WithContext(ctx).Errorf("upload: insert video failed, orphaned object: bucket=%s key=%s err=%v", obj.Bucket, obj.Key, err)
		return nil, ErrDatabase.WithCause(fmt.Errorf("insert video: %w", err))
	}

	if err := s.analytics.Init(ctx, video.ID); err != nil {
		s.log.WithContext(ctx).Errorf("upload: init analytics failed: video_id=%s err=%v", video.ID, err)
		return nil, ErrDatabase.WithCause(fmt.Errorf("init analytics: %w", err))
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, events.ProcessorJob{
			VideoID: video.ID,
			S3Key:   obj.Key,
			Bucket:  obj.Bucket,
		})
	}

	s.log.WithContext(ctx).Infof("upload accepted: video_id=%s key=%s", video.ID, obj.Key)
	return &UploadResult{
		VideoID: video.ID,
		Status:  po.VideoStatusPending,
		Video:   video,
	}, nil
}

func optionalText(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
