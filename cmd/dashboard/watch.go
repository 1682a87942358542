package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bionicotaku/lingo-services-videohub/internal/dashboard"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"

	"github.com/spf13/cobra"
)

var (
	watchSearch string
	watchSort   string
	watchOnce   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the video list and refresh while videos are processing",
	Long: `Show all videos with their view and like counts. While any video is
PENDING or PROCESSING, or after a failed fetch, the list is refreshed on the
configured interval. Press Enter (or send SIGHUP) to refresh immediately,
for example after uploading a new video.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSearch, "search", "s", "", "Filter by title or description (case-insensitive)")
	watchCmd.Flags().StringVar(&watchSort, "sort", string(dashboard.SortNewest), "Sort order: newest, oldest, most-viewed, most-liked")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Exit once no video is pending or processing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	opt, err := dashboard.ParseSortOption(watchSort)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	refresh := make(chan struct{}, 1)
	go forwardRefresh(ctx, cmd.InOrStdin(), refresh)

	out := cmd.OutOrStdout()
	draw := func(items []vo.VideoWithAnalytics, refreshErr error) {
		_ = dashboard.Render(out, items, refreshErr, dashboard.NeedsPolling(items))
	}
	return dashboard.Watch(ctx, app.Board, app.Poller, dashboard.WatchOptions{
		Query:   watchSearch,
		Sort:    opt,
		Once:    watchOnce,
		Refresh: refresh,
	}, draw)
}

// forwardRefresh 把回车与 SIGHUP 转换为刷新信号；信号已排队时合并。
func forwardRefresh(ctx context.Context, in io.Reader, refresh chan<- struct{}) {
	trigger := func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	lines := make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			trigger()
		case <-lines:
			trigger()
		}
	}
}
