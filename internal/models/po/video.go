// Package po 定义面向持久化的数据对象（Persistent Objects），由 Repository 层使用。
// PO 对象映射数据库表结构，同时作为上传服务 JSON 响应的载体。
package po

import (
	"time"

	"github.com/google/uuid"
)

// VideoStatus 表示视频的生命周期状态。
// 上传管线只写入 PENDING，其余迁移由处理服务负责。
type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "PENDING"    // 已入库，等待处理
	VideoStatusProcessing VideoStatus = "PROCESSING" // 处理服务已接手
	VideoStatusCompleted  VideoStatus = "COMPLETED"  // 处理完成
	VideoStatusFailed     VideoStatus = "FAILED"     // 处理失败
)

// IsTerminal reports whether no further transition is expected.
func (s VideoStatus) IsTerminal() bool {
	return s == VideoStatusCompleted || s == VideoStatusFailed
}

// Valid reports whether s is one of the known lifecycle states.
func (s VideoStatus) Valid() bool {
	switch s {
	case VideoStatusPending, VideoStatusProcessing, VideoStatusCompleted, VideoStatusFailed:
		return true
	default:
		return false
	}
}

// Video 表示 videos 表中的一条记录。
type Video struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	Filename     string      `json:"filename"`
	BucketName   string      `json:"s3_bucket_name"`
	OriginalKey  string      `json:"s3_key_original"`
	ThumbnailKey *string     `json:"s3_key_thumbnail"`
	Status       VideoStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
