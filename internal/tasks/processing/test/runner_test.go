package processing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"
	"github.com/bionicotaku/lingo-services-videohub/internal/tasks/processing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	mu    sync.Mutex
	jobs  []events.ProcessorJob
	block chan struct{}
}

func (p *recordingProcessor) Process(_ context.Context, job events.ProcessorJob) (po.VideoStatus, error) {
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, job)
	return po.VideoStatusCompleted, nil
}

func (p *recordingProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

func newJob() events.ProcessorJob {
	return events.ProcessorJob{VideoID: uuid.New(), S3Key: "videos/a.mp4", Bucket: "bucket"}
}

func TestRunner_EnqueueRejectsWhenFull(t *testing.T) {
	runner := processing.NewRunner(&recordingProcessor{}, &configloader.Processor{Workers: 1, QueueSize: 2}, nil, log.DefaultLogger)

	require.NoError(t, runner.Enqueue(newJob()))
	require.NoError(t, runner.Enqueue(newJob()))

	err := runner.Enqueue(newJob())
	require.Error(t, err)
	require.True(t, errors.Is(err, services.ErrProcessorBusy))
}

func TestRunner_ProcessesAndDrainsOnStop(t *testing.T) {
	proc := &recordingProcessor{block: make(chan struct{})}
	runner := processing.NewRunner(proc, &configloader.Processor{Workers: 2, QueueSize: 8}, nil, log.DefaultLogger)

	started := make(chan error, 1)
	go func() { started <- runner.Start(context.Background()) }()

	for i := 0; i < 5; i++ {
		require.NoError(t, runner.Enqueue(newJob()))
	}
	close(proc.block)

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runner.Stop(stopCtx))
	require.NoError(t, <-started)
	require.Equal(t, 5, proc.count())

	require.True(t, errors.Is(runner.Enqueue(newJob()), services.ErrProcessorBusy))
}

func TestRunner_SubmitHonoursContext(t *testing.T) {
	runner := processing.NewRunner(&recordingProcessor{}, &configloader.Processor{Workers: 1, QueueSize: 1}, nil, log.DefaultLogger)
	require.NoError(t, runner.Enqueue(newJob()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, runner.Submit(ctx, newJob()), context.DeadlineExceeded)
}

func TestRunner_StopWithoutStart(t *testing.T) {
	runner := processing.NewRunner(&recordingProcessor{}, nil, nil, log.DefaultLogger)
	require.NoError(t, runner.Stop(context.Background()))
}
