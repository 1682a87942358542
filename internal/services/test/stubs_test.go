package services_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/objectstore"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/repositories"
	"github.com/google/uuid"
)

// callLog 记录跨 stub 的调用顺序。
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, name)
}

func (c *callLog) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type stubStore struct {
	log    *callLog
	bucket string
	err    error
	key    string
	body   []byte
}

func (s *stubStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (objectstore.Object, error) {
	s.log.add("store")
	s.key = key
	s.body, _ = io.ReadAll(body)
	if s.err != nil {
		return objectstore.Object{}, s.err
	}
	return objectstore.Object{Bucket: s.bucket, Key: key, ContentType: "video/mp4"}, nil
}

type stubVideos struct {
	log   *callLog
	err   error
	input repositories.CreateVideoInput
	id    uuid.UUID
}

func (s *stubVideos) Create(_ context.Context, input repositories.CreateVideoInput) (*po.Video, error) {
	s.log.add("create")
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	if s.id == uuid.Nil {
		s.id = uuid.New()
	}
	now := time.Now()
	return &po.Video{
		ID:          s.id,
		Title:       input.Title,
		Description: input.Description,
		Filename:    input.Filename,
		BucketName:  input.BucketName,
		OriginalKey: input.OriginalKey,
		Status:      po.VideoStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type stubAnalyticsInit struct {
	log *callLog
	err error
	ids []uuid.UUID
}

func (s *stubAnalyticsInit) Init(_ context.Context, id uuid.UUID) error {
	s.log.add("analytics")
	s.ids = append(s.ids, id)
	return s.err
}

type stubNotifier struct {
	log  *callLog
	jobs []events.ProcessorJob
}

func (s *stubNotifier) Notify(_ context.Context, job events.ProcessorJob) {
	s.log.add("notify")
	s.jobs = append(s.jobs, job)
}

type stubTrigger struct {
	mu       sync.Mutex
	err      error
	jobs     []events.ProcessorJob
	deadline bool
	block    chan struct{}
}

func (s *stubTrigger) Trigger(ctx context.Context, job events.ProcessorJob) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
	_, s.deadline = ctx.Deadline()
	return s.err
}

func (s *stubTrigger) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
