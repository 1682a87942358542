package dashboard_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/dashboard"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newBoard(lister *stubLister) *dashboard.Board {
	merger := dashboard.NewMerger(newStubAnalytics(), dashboard.NewURLBuilder("", log.DefaultLogger), 4, log.DefaultLogger)
	return dashboard.NewBoard(lister, merger, log.DefaultLogger)
}

func TestBoardRefreshKeepsItemsOnFailure(t *testing.T) {
	v := video("a", po.VideoStatusCompleted, time.Now())
	lister := &stubLister{videos: []po.Video{v}}
	board := newBoard(lister)

	require.NoError(t, board.Refresh(context.Background()))
	require.Len(t, board.Items(), 1)
	require.NoError(t, board.Err())

	lister.set(nil, errBoom)
	require.ErrorIs(t, board.Refresh(context.Background()), errBoom)
	require.ErrorIs(t, board.Err(), errBoom)
	require.Len(t, board.Items(), 1)
	require.False(t, board.Loading())

	lister.set([]po.Video{v}, nil)
	require.NoError(t, board.Refresh(context.Background()))
	require.NoError(t, board.Err())
}

func TestLikeUpdaterReconcilesAndReverts(t *testing.T) {
	id := uuid.New()
	recorder := newStubRecorder()
	recorder.likes[id] = 41
	sink := &recordingSink{}
	updater := dashboard.NewLikeUpdater(recorder, sink, log.DefaultLogger)

	likes, err := updater.Like(context.Background(), id, 3)
	require.NoError(t, err)
	require.EqualValues(t, 42, likes)
	require.Equal(t, []sinkEvent{{"like", 4}, {"like", 42}}, sink.events)

	sink.events = nil
	recorder.err = errBoom
	likes, err = updater.Like(context.Background(), id, 42)
	require.ErrorIs(t, err, errBoom)
	require.EqualValues(t, 42, likes)
	require.Equal(t, []sinkEvent{{"like", 43}, {"like", 42}}, sink.events)
}

func TestPlaybackSessionCountsOncePerOpen(t *testing.T) {
	id := uuid.New()
	recorder := newStubRecorder()
	session := dashboard.NewPlaybackSession(recorder, &recordingSink{}, log.DefaultLogger)
	ctx := context.Background()

	views, err := session.Open(ctx, id, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, views)

	for i := 0; i < 3; i++ {
		_, err := session.Render(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, 1, recorder.callCount())

	session.Close()
	require.Equal(t, uuid.Nil, session.OpenID())
	_, err = session.Open(ctx, id, views)
	require.NoError(t, err)
	require.Equal(t, 2, recorder.callCount())
}

func TestPlaybackSessionRetriesAfterFailure(t *testing.T) {
	id := uuid.New()
	recorder := newStubRecorder()
	recorder.err = errBoom
	sink := &recordingSink{}
	session := dashboard.NewPlaybackSession(recorder, sink, log.DefaultLogger)
	ctx := context.Background()

	_, err := session.Open(ctx, id, 5)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, []sinkEvent{{"view", 6}, {"view", 5}}, sink.events)

	recorder.err = nil
	views, err := session.Render(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, views)
	require.Equal(t, 2, recorder.callCount())

	_, err = session.Render(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, recorder.callCount())
}

func TestRenderShowsErrorAndRows(t *testing.T) {
	v := video("Demo clip", po.VideoStatusPending, time.Now())
	var buf bytes.Buffer
	items := dashboard.NewMerger(newStubAnalytics(), dashboard.NewURLBuilder("", log.DefaultLogger), 1, log.DefaultLogger).
		Merge(context.Background(), []po.Video{v})

	require.NoError(t, dashboard.Render(&buf, items, errBoom, true))
	out := buf.String()
	require.Contains(t, out, "Demo clip")
	require.Contains(t, out, "PENDING")
	require.Contains(t, out, "boom")

	buf.Reset()
	require.NoError(t, dashboard.Render(&buf, nil, nil, false))
	require.Contains(t, buf.String(), "No videos yet.")
}
