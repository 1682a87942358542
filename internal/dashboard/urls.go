// Package dashboard 实现仪表盘的客户端逻辑：拉取视频列表、并发合并计数、
// 过滤排序、轮询调度以及点赞/播放的乐观更新。
package dashboard

import (
	"fmt"
	"strings"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
)

// ObjectURL 返回公开对象地址 https://<bucket>.s3.amazonaws.com/<key>。
func ObjectURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}

// URLBuilder 为视频派生播放与缩略图地址。覆盖 bucket 非空时优先于视频记录中的 bucket。
type URLBuilder struct {
	override string
	log      *log.Helper
}

// NewURLBuilder 构造 URLBuilder。
func NewURLBuilder(override string, logger log.Logger) *URLBuilder {
	return &URLBuilder{override: override, log: log.NewHelper(logger)}
}

// VideoURL 返回原始视频的对象地址。
func (b *URLBuilder) VideoURL(v po.Video) string {
	return ObjectURL(b.bucket(v), v.OriginalKey)
}

// ThumbnailURL 返回缩略图地址；没有缩略图 key 时返回 nil。
func (b *URLBuilder) ThumbnailURL(v po.Video) *string {
	if v.ThumbnailKey == nil || strings.TrimSpace(*v.ThumbnailKey) == "" {
		return nil
	}
	u := ObjectURL(b.bucket(v), *v.ThumbnailKey)
	return &u
}

// 上游数据中出现过带换行与空格的 bucket 名。
func (b *URLBuilder) bucket(v po.Video) string {
	raw := b.override
	if raw == "" {
		raw = v.BucketName
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed != raw && b.log != nil {
		b.log.Warnf("bucket name contained surrounding whitespace: video_id=%s raw=%q", v.ID, raw)
	}
	return trimmed
}
