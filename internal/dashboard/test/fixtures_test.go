package dashboard_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

func video(title string, status po.VideoStatus, created time.Time) po.Video {
	return po.Video{
		ID:          uuid.New(),
		Title:       title,
		Filename:    title + ".mp4",
		BucketName:  "bucket",
		OriginalKey: "videos/" + title + ".mp4",
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

type stubAnalytics struct {
	mu      sync.Mutex
	counts  map[uuid.UUID][2]int64
	failing map[uuid.UUID]bool
	calls   int
}

func newStubAnalytics() *stubAnalytics {
	return &stubAnalytics{counts: map[uuid.UUID][2]int64{}, failing: map[uuid.UUID]bool{}}
}

func (s *stubAnalytics) GetAnalytics(_ context.Context, id uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failing[id] {
		return nil, errBoom
	}
	c := s.counts[id]
	return &vo.AnalyticsSnapshot{VideoID: id, Views: c[0], Likes: c[1]}, nil
}

type stubLister struct {
	mu     sync.Mutex
	videos []po.Video
	err    error
}

func (s *stubLister) ListVideos(context.Context) ([]po.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]po.Video(nil), s.videos...), nil
}

func (s *stubLister) set(videos []po.Video, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos, s.err = videos, err
}

type stubRecorder struct {
	mu    sync.Mutex
	views map[uuid.UUID]int64
	likes map[uuid.UUID]int64
	calls []uuid.UUID
	err   error
}

func newStubRecorder() *stubRecorder {
	return &stubRecorder{views: map[uuid.UUID]int64{}, likes: map[uuid.UUID]int64{}}
}

func (r *stubRecorder) RecordView(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
	if r.err != nil {
		return 0, r.err
	}
	r.views[id]++
	return r.views[id], nil
}

func (r *stubRecorder) RecordLike(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
	if r.err != nil {
		return 0, r.err
	}
	r.likes[id]++
	return r.likes[id], nil
}

func (r *stubRecorder) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type sinkEvent struct {
	kind  string
	value int64
}

type recordingSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (s *recordingSink) ApplyView(_ uuid.UUID, views int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sinkEvent{"view", views})
}

func (s *recordingSink) ApplyLike(_ uuid.UUID, likes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sinkEvent{"like", likes})
}
