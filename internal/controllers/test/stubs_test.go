package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/controllers"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type registrar interface {
	Register(r *khttp.Router)
}

func newTestServer(handlers ...registrar) *khttp.Server {
	srv := khttp.NewServer(khttp.ErrorEncoder(controllers.ErrorEncoder))
	r := srv.Route("/")
	for _, h := range handlers {
		h.Register(r)
	}
	return srv
}

func do(t *testing.T, srv http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	var body map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func jsonRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()
	var body io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type stubUploader struct {
	mu     sync.Mutex
	inputs []services.UploadInput
	data   []byte
	result *services.UploadResult
	err    error
}

func (s *stubUploader) Upload(_ context.Context, input services.UploadInput) (*services.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if input.File != nil {
		data, err := io.ReadAll(input.File)
		if err != nil {
			return nil, err
		}
		s.data = data
	}
	s.inputs = append(s.inputs, input)
	if s.err != nil {
		return nil, s.err
	}
	if input.File == nil {
		return nil, services.ErrValidation
	}
	return s.result, nil
}

type stubVideos struct {
	videos []po.Video
	err    error
}

func (s *stubVideos) ListVideos(context.Context) ([]po.Video, error) {
	return s.videos, s.err
}

func (s *stubVideos) GetVideo(_ context.Context, id uuid.UUID) (*po.Video, error) {
	for i := range s.videos {
		if s.videos[i].ID == id {
			return &s.videos[i], nil
		}
	}
	return nil, services.ErrVideoNotFound
}

type stubAnalytics struct {
	mu      sync.Mutex
	counts  map[uuid.UUID]*vo.AnalyticsSnapshot
	failure error
}

func newStubAnalytics(ids ...uuid.UUID) *stubAnalytics {
	s := &stubAnalytics{counts: make(map[uuid.UUID]*vo.AnalyticsSnapshot)}
	for _, id := range ids {
		s.counts[id] = &vo.AnalyticsSnapshot{VideoID: id, LastUpdated: time.Now()}
	}
	return s
}

func (s *stubAnalytics) lookup(id uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	if s.failure != nil {
		return nil, s.failure
	}
	snap, ok := s.counts[id]
	if !ok {
		return nil, services.ErrAnalyticsNotFound
	}
	return snap, nil
}

func (s *stubAnalytics) GetAnalytics(_ context.Context, id uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	cp := *snap
	return &cp, nil
}

func (s *stubAnalytics) RecordView(_ context.Context, id uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	snap.Views++
	cp := *snap
	return &cp, nil
}

func (s *stubAnalytics) RecordLike(_ context.Context, id uuid.UUID) (*vo.AnalyticsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	snap.Likes++
	cp := *snap
	return &cp, nil
}

type stubQueue struct {
	jobs []events.ProcessorJob
	full bool
}

func (s *stubQueue) Enqueue(job events.ProcessorJob) error {
	if s.full {
		return services.ErrProcessorBusy
	}
	s.jobs = append(s.jobs, job)
	return nil
}
