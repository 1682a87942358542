package events

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ProcessorJob 是通知处理服务的消息体，HTTP 与 AMQP 两种投递方式共用。
type ProcessorJob struct {
	VideoID uuid.UUID `json:"videoId"`
	S3Key   string    `json:"s3Key"`
	Bucket  string    `json:"bucket"`
}

// Validate checks the fields a processor needs to locate the original object.
func (j ProcessorJob) Validate() error {
	switch {
	case j.VideoID == uuid.Nil:
		return errors.New("processor job: videoId is required")
	case strings.TrimSpace(j.S3Key) == "":
		return errors.New("processor job: s3Key is required")
	case strings.TrimSpace(j.Bucket) == "":
		return errors.New("processor job: bucket is required")
	}
	return nil
}
