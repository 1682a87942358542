package repositories

import "errors"

var (
	// ErrVideoNotFound 表示 videos 表中不存在对应记录。
	ErrVideoNotFound = errors.New("video not found")
	// ErrAnalyticsNotFound 表示 video_analytics 表中不存在对应记录。
	ErrAnalyticsNotFound = errors.New("video analytics not found")
)
