package dashboard

import (
	"context"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"
)

// WatchOptions 控制 watch 循环的展示与退出行为。
type WatchOptions struct {
	Query string
	Sort  SortOption
	// Once 为 true 时，一次成功刷新后所有视频都已进入终态则立即返回。
	Once bool
	// Refresh 收到信号时立即重新拉取列表，用于手动刷新（回车或 SIGHUP）。
	Refresh <-chan struct{}
}

// DrawFunc 渲染一帧。err 为最近一次刷新的错误。
type DrawFunc func(items []vo.VideoWithAnalytics, err error)

// Watch 刷新列表并绘制。存在未完成视频或刷新失败时按轮询间隔再次拉取，
// 否则等待手动刷新。ctx 取消时返回 nil，计时器总会被清除。
func Watch(ctx context.Context, board *Board, poller *Poller, opts WatchOptions, draw DrawFunc) error {
	defer poller.Stop()
	for {
		err := board.Refresh(ctx)
		draw(board.Visible(opts.Query, opts.Sort), err)

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			poller.Retry()
		} else if !poller.Reschedule(board.Items()) && opts.Once {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-poller.Ticks():
		case <-opts.Refresh:
		}
	}
}
