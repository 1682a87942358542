package dashboard

import (
	"context"
	"sync"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VideoLister 拉取完整视频列表。
type VideoLister interface {
	ListVideos(ctx context.Context) ([]po.Video, error)
}

// Board 持有仪表盘当前展示的状态：合并后的条目、最近一次错误与加载标记。
type Board struct {
	lister VideoLister
	merger *Merger
	log    *log.Helper

	mu      sync.RWMutex
	items   []vo.VideoWithAnalytics
	err     error
	loading bool
}

// NewBoard 构造 Board。
func NewBoard(lister VideoLister, merger *Merger, logger log.Logger) *Board {
	return &Board{lister: lister, merger: merger, log: log.NewHelper(logger)}
}

// Refresh 重新拉取列表并合并计数。列表拉取失败时保留旧条目并记录错误，下次刷新即为重试。
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.mu.Unlock()

	videos, err := b.lister.ListVideos(ctx)
	if err != nil {
		b.log.WithContext(ctx).Errorf("fetch videos failed: %v", err)
		b.mu.Lock()
		b.loading = false
		b.err = err
		b.mu.Unlock()
		return err
	}
	merged := b.merger.Merge(ctx, videos)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = merged
	b.err = nil
	b.loading = false
	return nil
}

// Items 返回当前条目的副本。
func (b *Board) Items() []vo.VideoWithAnalytics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]vo.VideoWithAnalytics, len(b.items))
	copy(out, b.items)
	return out
}

// Err 返回最近一次刷新的错误。
func (b *Board) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}

// Loading reports whether a refresh is in flight.
func (b *Board) Loading() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loading
}

// Visible 返回过滤并排序后的条目。
func (b *Board) Visible(query string, opt SortOption) []vo.VideoWithAnalytics {
	return Sort(Filter(b.Items(), query), opt)
}

// Counts 返回指定视频当前的浏览与点赞数。
func (b *Board) Counts(id uuid.UUID) (views, likes int64, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := range b.items {
		if b.items[i].ID == id {
			return b.items[i].Views, b.items[i].Likes, true
		}
	}
	return 0, 0, false
}

// ApplyView 覆盖指定视频的浏览数。
func (b *Board) ApplyView(id uuid.UUID, views int64) {
	b.update(id, func(item *vo.VideoWithAnalytics) { item.Views = views })
}

// ApplyLike 覆盖指定视频的点赞数。
func (b *Board) ApplyLike(id uuid.UUID, likes int64) {
	b.update(id, func(item *vo.VideoWithAnalytics) { item.Likes = likes })
}

func (b *Board) update(id uuid.UUID, fn func(*vo.VideoWithAnalytics)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			fn(&b.items[i])
			return
		}
	}
}
