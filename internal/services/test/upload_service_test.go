package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

type uploadFixture struct {
	calls     *callLog
	store     *stubStore
	videos    *stubVideos
	analytics *stubAnalyticsInit
	notifier  *stubNotifier
	svc       *services.UploadService
}

func newUploadFixture() *uploadFixture {
	calls := &callLog{}
	f := &uploadFixture{
		calls:     calls,
		store:     &stubStore{log: calls, bucket: "clips"},
		videos:    &stubVideos{log: calls},
		analytics: &stubAnalyticsInit{log: calls},
		notifier:  &stubNotifier{log: calls},
	}
	f.svc = services.NewUploadService(f.store, f.videos, f.analytics, f.notifier, nil, log.NewStdLogger(io.Discard)).
		WithKeyGenerator(func(filename string) string { return "videos/fixed-" + filename })
	return f
}

func TestUploadService_Success(t *testing.T) {
	f := newUploadFixture()

	result, err := f.svc.Upload(context.Background(), services.UploadInput{
		File:        strings.NewReader("movie-bytes"),
		Size:        11,
		Filename:    "clip.mp4",
		Title:       "  Demo  ",
		Description: "a clip",
	})
	require.NoError(t, err)
	require.Equal(t, po.VideoStatusPending, result.Status)
	require.Equal(t, f.videos.id, result.VideoID)

	// 存储写入先于元数据插入，通知在最后
	require.Equal(t, []string{"store", "create", "analytics", "notify"}, f.calls.list())

	require.Equal(t, "videos/fixed-clip.mp4", f.store.key)
	require.Equal(t, []byte("movie-bytes"), f.store.body)

	require.Equal(t, "Demo", f.videos.input.Title)
	require.Equal(t, "clips", f.videos.input.BucketName)
	require.Equal(t, "videos/fixed-clip.mp4", f.videos.input.OriginalKey)
	require.Equal(t, "clip.mp4", f.videos.input.Filename)
	require.NotNil(t, f.videos.input.Description)
	require.Equal(t, "a clip", *f.videos.input.Description)

	require.Len(t, f.analytics.ids, 1)
	require.Equal(t, result.VideoID, f.analytics.ids[0])

	require.Len(t, f.notifier.jobs, 1)
	job := f.notifier.jobs[0]
	require.Equal(t, result.VideoID, job.VideoID)
	require.Equal(t, "videos/fixed-clip.mp4", job.S3Key)
	require.Equal(t, "clips", job.Bucket)
}

func TestUploadService_BlankDescriptionStoredAsNull(t *testing.T) {
	f := newUploadFixture()
	_, err := f.svc.Upload(context.Background(), services.UploadInput{
		File: strings.NewReader("x"), Filename: "a.mp4", Title: "t", Description: "   ",
	})
	require.NoError(t, err)
	require.Nil(t, f.videos.input.Description)
}

func TestUploadService_ValidationHasNoSideEffects(t *testing.T) {
	cases := map[string]services.UploadInput{
		"missing file":     {Filename: "a.mp4", Title: "Demo"},
		"empty title":      {File: strings.NewReader("x"), Filename: "a.mp4"},
		"whitespace title": {File: strings.NewReader("x"), Filename: "a.mp4", Title: " \t\n"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			f := newUploadFixture()
			_, err := f.svc.Upload(context.Background(), input)
			require.Error(t, err)
			require.True(t, errors.Is(err, services.ErrValidation))
			require.Equal(t, 400, kerrors.Code(err))
			require.Empty(t, f.calls.list())
		})
	}
}

func TestUploadService_StorageFailureSkipsDatabase(t *testing.T) {
	f := newUploadFixture()
	f.store.err = errors.New("s3 unavailable")

	_, err := f.svc.Upload(context.Background(), services.UploadInput{
		File: strings.NewReader("x"), Filename: "a.mp4", Title: "Demo",
	})
	require.True(t, errors.Is(err, services.ErrStorage))
	require.Equal(t, 500, kerrors.Code(err))
	require.Equal(t, []string{"store"}, f.calls.list())
}

func TestUploadService_InsertFailureLeavesObject(t *testing.T) {
	f := newUploadFixture()
	f.videos.err = errors.New("connection reset")

	_, err := f.svc.Upload(context.Background(), services.UploadInput{
		File: strings.NewReader("x"), Filename: "a.mp4", Title: "Demo",
	})
	require.True(t, errors.Is(err, services.ErrDatabase))
	require.Equal(t, []string{"store", "create"}, f.calls.list())
}

func TestUploadService_AnalyticsInitFailurePropagates(t *testing.T) {
	f := newUploadFixture()
	f.analytics.err = errors.New("constraint violation")

	_, err := f.svc.Upload(context.Background(), services.UploadInput{
		File: strings.NewReader("x"), Filename: "a.mp4", Title: "Demo",
	})
	require.True(t, errors.Is(err, services.ErrDatabase))
	require.Equal(t, []string{"store", "create", "analytics"}, f.calls.list())
	require.Empty(t, f.notifier.jobs)
}

// TestUploadService_TriggerFailureInvisible 使用真实 Notifier，处理服务失败不影响上传结果。
func TestUploadService_TriggerFailureInvisible(t *testing.T) {
	calls := &callLog{}
	trigger := &stubTrigger{err: errors.New("connection refused")}
	notifier, wait := services.NewNotifier(trigger, &configloader.Processor{}, nil, log.NewStdLogger(io.Discard))

	svc := services.NewUploadService(
		&stubStore{log: calls, bucket: "clips"},
		&stubVideos{log: calls},
		&stubAnalyticsInit{log: calls},
		notifier, nil, log.NewStdLogger(io.Discard),
	)

	result, err := svc.Upload(context.Background(), services.UploadInput{
		File: strings.NewReader("x"), Filename: "clip.mp4", Title: "Demo",
	})
	require.NoError(t, err)
	require.Equal(t, po.VideoStatusPending, result.Status)

	wait()
	require.Equal(t, 1, trigger.calls())
}
