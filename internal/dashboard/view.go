package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"
)

// SortOption 选择列表排序方式。
type SortOption string

const (
	SortNewest     SortOption = "newest"
	SortOldest     SortOption = "oldest"
	SortMostViewed SortOption = "most-viewed"
	SortMostLiked  SortOption = "most-liked"
)

// SortOptions lists the accepted --sort values.
var SortOptions = []SortOption{SortNewest, SortOldest, SortMostViewed, SortMostLiked}

// ParseSortOption 解析 CLI 参数，空值视为 newest。
func ParseSortOption(raw string) (SortOption, error) {
	switch opt := SortOption(strings.ToLower(strings.TrimSpace(raw))); opt {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortMostViewed, SortMostLiked:
		return opt, nil
	default:
		return "", fmt.Errorf("unknown sort option %q", raw)
	}
}

// Filter 按标题与描述做不区分大小写的子串匹配；空查询返回原列表。
func Filter(items []vo.VideoWithAnalytics, query string) []vo.VideoWithAnalytics {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]vo.VideoWithAnalytics, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), q) {
			out = append(out, item)
			continue
		}
		if item.Description != nil && strings.Contains(strings.ToLower(*item.Description), q) {
			out = append(out, item)
		}
	}
	return out
}

// Sort 返回排序后的副本。排序稳定，键相同的条目保持输入顺序；未知选项按 newest 处理。
func Sort(items []vo.VideoWithAnalytics, opt SortOption) []vo.VideoWithAnalytics {
	out := make([]vo.VideoWithAnalytics, len(items))
	copy(out, items)

	var less func(a, b vo.VideoWithAnalytics) bool
	switch opt {
	case SortOldest:
		less = func(a, b vo.VideoWithAnalytics) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortMostViewed:
		less = func(a, b vo.VideoWithAnalytics) bool { return a.Views > b.Views }
	case SortMostLiked:
		less = func(a, b vo.VideoWithAnalytics) bool { return a.Likes > b.Likes }
	default:
		less = func(a, b vo.VideoWithAnalytics) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// NeedsPolling 报告是否存在 PENDING 或 PROCESSING 的条目。
func NeedsPolling(items []vo.VideoWithAnalytics) bool {
	for _, item := range items {
		if item.Status == po.VideoStatusPending || item.Status == po.VideoStatusProcessing {
			return true
		}
	}
	return false
}
