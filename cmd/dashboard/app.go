package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-videohub/internal/clients"
	"github.com/bionicotaku/lingo-services-videohub/internal/dashboard"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"

	"github.com/google/uuid"
)

// dashboardApp 聚合各子命令使用的组件。
type dashboardApp struct {
	Board    *dashboard.Board
	Poller   *dashboard.Poller
	Merger   *dashboard.Merger
	Likes    *dashboard.LikeUpdater
	Playback *dashboard.PlaybackSession
	Uploader *clients.UploaderClient
}

func newDashboardApp(
	board *dashboard.Board,
	poller *dashboard.Poller,
	merger *dashboard.Merger,
	likes *dashboard.LikeUpdater,
	playback *dashboard.PlaybackSession,
	uploader *clients.UploaderClient,
) *dashboardApp {
	return &dashboardApp{
		Board:    board,
		Poller:   poller,
		Merger:   merger,
		Likes:    likes,
		Playback: playback,
		Uploader: uploader,
	}
}

// lookup 拉取单个视频并合并计数与访问地址。
func (a *dashboardApp) lookup(ctx context.Context, id uuid.UUID) (vo.VideoWithAnalytics, error) {
	video, err := a.Uploader.GetVideo(ctx, id)
	if err != nil {
		return vo.VideoWithAnalytics{}, err
	}
	return a.Merger.Merge(ctx, []po.Video{*video})[0], nil
}
