package po

import (
	"time"

	"github.com/google/uuid"
)

// VideoAnalytics 表示 video_analytics 表的计数记录，与 videos 一对一。
// 计数只会递增，不会被整体覆盖。
type VideoAnalytics struct {
	VideoID          uuid.UUID
	ViewsCount       int64
	LikesCount       int64
	WatchTimeSeconds int64
	LastUpdated      time.Time
}
