package services_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memoryStatuses 模拟带条件更新的状态表。
type memoryStatuses struct {
	mu          sync.Mutex
	status      map[uuid.UUID]po.VideoStatus
	transitions []string
	err         error
}

func (m *memoryStatuses) TransitionStatus(_ context.Context, id uuid.UUID, from, to po.VideoStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if current, ok := m.status[id]; !ok || current != from {
		return false, nil
	}
	m.status[id] = to
	m.transitions = append(m.transitions, string(from)+"->"+string(to))
	return true, nil
}

type stubChecker struct {
	exists bool
	err    error
}

func (s stubChecker) Exists(context.Context, string, string) (bool, error) {
	return s.exists, s.err
}

func newJob(id uuid.UUID) events.ProcessorJob {
	return events.ProcessorJob{VideoID: id, S3Key: "videos/" + id.String() + ".mp4", Bucket: "clips"}
}

func TestProcessingService_Completes(t *testing.T) {
	id := uuid.New()
	repo := &memoryStatuses{status: map[uuid.UUID]po.VideoStatus{id: po.VideoStatusPending}}
	svc := services.NewProcessingService(repo, stubChecker{exists: true}, nil, log.NewStdLogger(io.Discard))

	final, err := svc.Process(context.Background(), newJob(id))
	require.NoError(t, err)
	require.Equal(t, po.VideoStatusCompleted, final)
	require.Equal(t, []string{"PENDING->PROCESSING", "PROCESSING->COMPLETED"}, repo.transitions)
}

func TestProcessingService_FailsWhenObjectMissing(t *testing.T) {
	for name, checker := range map[string]stubChecker{
		"missing":     {exists: false},
		"check error": {err: errors.New("forbidden")},
	} {
		t.Run(name, func(t *testing.T) {
			id := uuid.New()
			repo := &memoryStatuses{status: map[uuid.UUID]po.VideoStatus{id: po.VideoStatusPending}}
			svc := services.NewProcessingService(repo, checker, nil, log.NewStdLogger(io.Discard))

			final, err := svc.Process(context.Background(), newJob(id))
			require.NoError(t, err)
			require.Equal(t, po.VideoStatusFailed, final)
			require.Equal(t, po.VideoStatusFailed, repo.status[id])
		})
	}
}

func TestProcessingService_SkipsNonPending(t *testing.T) {
	for _, status := range []po.VideoStatus{po.VideoStatusProcessing, po.VideoStatusCompleted, po.VideoStatusFailed} {
		id := uuid.New()
		repo := &memoryStatuses{status: map[uuid.UUID]po.VideoStatus{id: status}}
		svc := services.NewProcessingService(repo, stubChecker{exists: true}, nil, log.NewStdLogger(io.Discard))

		_, err := svc.Process(context.Background(), newJob(id))
		require.ErrorIs(t, err, services.ErrJobSkipped)
		require.Equal(t, status, repo.status[id], "row untouched")
		require.Empty(t, repo.transitions)
	}
}

func TestProcessingService_DuplicateDeliveryProcessedOnce(t *testing.T) {
	id := uuid.New()
	repo := &memoryStatuses{status: map[uuid.UUID]po.VideoStatus{id: po.VideoStatusPending}}
	svc := services.NewProcessingService(repo, stubChecker{exists: true}, nil, log.NewStdLogger(io.Discard))

	_, err := svc.Process(context.Background(), newJob(id))
	require.NoError(t, err)
	_, err = svc.Process(context.Background(), newJob(id))
	require.ErrorIs(t, err, services.ErrJobSkipped)
	require.Len(t, repo.transitions, 2)
}

func TestProcessingService_InvalidJob(t *testing.T) {
	svc := services.NewProcessingService(&memoryStatuses{}, stubChecker{}, nil, log.NewStdLogger(io.Discard))
	_, err := svc.Process(context.Background(), events.ProcessorJob{S3Key: "k", Bucket: "b"})
	require.True(t, errors.Is(err, services.ErrJobInvalid))
}
