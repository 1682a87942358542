package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// CountSink 接收乐观更新与服务端确认后的计数。
type CountSink interface {
	ApplyView(id uuid.UUID, views int64)
	ApplyLike(id uuid.UUID, likes int64)
}

// LikeRecorder 递增点赞数并返回服务端计数。
type LikeRecorder interface {
	RecordLike(ctx context.Context, videoID uuid.UUID) (int64, error)
}

// ViewRecorder 递增浏览数并返回服务端计数。
type ViewRecorder interface {
	RecordView(ctx context.Context, videoID uuid.UUID) (int64, error)
}

// LikeUpdater 执行点赞的乐观更新。
type LikeUpdater struct {
	recorder LikeRecorder
	sink     CountSink
	log      *log.Helper
}

// NewLikeUpdater 构造 LikeUpdater。
func NewLikeUpdater(recorder LikeRecorder, sink CountSink, logger log.Logger) *LikeUpdater {
	return &LikeUpdater{recorder: recorder, sink: sink, log: log.NewHelper(logger)}
}

// Like 先把 current+1 写入 sink，成功后以服务端计数校正，失败时恢复为 current。
func (u *LikeUpdater) Like(ctx context.Context, id uuid.UUID, current int64) (int64, error) {
	u.sink.ApplyLike(id, current+1)
	likes, err := u.recorder.RecordLike(ctx, id)
	if err != nil {
		u.sink.ApplyLike(id, current)
		u.log.WithContext(ctx).Errorf("record like failed, reverted: video_id=%s err=%v", id, err)
		return current, fmt.Errorf("record like: %w", err)
	}
	u.sink.ApplyLike(id, likes)
	return likes, nil
}

// PlaybackSession 记录当前打开的视频，保证每次打开只递增一次浏览数。
type PlaybackSession struct {
	recorder ViewRecorder
	sink     CountSink
	log      *log.Helper

	mu      sync.Mutex
	openID  uuid.UUID
	current int64
	counted bool
}

// NewPlaybackSession 构造 PlaybackSession。
func NewPlaybackSession(recorder ViewRecorder, sink CountSink, logger log.Logger) *PlaybackSession {
	return &PlaybackSession{recorder: recorder, sink: sink, log: log.NewHelper(logger)}
}

// Open 打开视频并递增一次浏览数；views 为打开时展示的计数。
// 打开另一个视频会替换当前会话。
func (s *PlaybackSession) Open(ctx context.Context, id uuid.UUID, views int64) (int64, error) {
	s.mu.Lock()
	if s.openID != id {
		s.openID = id
		s.current = views
		s.counted = false
	}
	s.mu.Unlock()
	return s.Render(ctx)
}

// Render 在当前视频尚未计数时递增浏览数；已计数则不发起请求。
// 失败时清除标记，下一次 Render 会重试。
func (s *PlaybackSession) Render(ctx context.Context) (int64, error) {
	s.mu.Lock()
	if s.openID == uuid.Nil || s.counted {
		views := s.current
		s.mu.Unlock()
		return views, nil
	}
	id, current := s.openID, s.current
	s.counted = true
	s.mu.Unlock()

	s.sink.ApplyView(id, current+1)
	views, err := s.recorder.RecordView(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.sink.ApplyView(id, current)
		if s.openID == id {
			s.counted = false
		}
		s.log.WithContext(ctx).Errorf("record view failed, reverted: video_id=%s err=%v", id, err)
		return current, fmt.Errorf("record view: %w", err)
	}
	s.sink.ApplyView(id, views)
	if s.openID == id {
		s.current = views
	}
	return views, nil
}

// Close 关闭当前视频，清除计数标记。
func (s *PlaybackSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openID = uuid.Nil
	s.current = 0
	s.counted = false
}

// OpenID returns the currently open video, or uuid.Nil.
func (s *PlaybackSession) OpenID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openID
}
