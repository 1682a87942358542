package services

import (
	"github.com/go-kratos/kratos/v2/errors"
)

// 错误原因，随 kratos 错误一起返回给调用方。
const (
	ReasonUploadInvalid     = "UPLOAD_INVALID"
	ReasonStorageFailed     = "STORAGE_FAILED"
	ReasonDatabaseFailed    = "DATABASE_FAILED"
	ReasonVideoInvalid      = "VIDEO_INVALID"
	ReasonVideoNotFound     = "VIDEO_NOT_FOUND"
	ReasonAnalyticsInvalid  = "ANALYTICS_INVALID"
	ReasonAnalyticsNotFound = "ANALYTICS_NOT_FOUND"
	ReasonJobInvalid        = "JOB_INVALID"
	ReasonProcessorBusy     = "PROCESSOR_BUSY"
)

// kratos errors.Is 比较 code 与 reason，message 不同的实例也能匹配下列哨兵。
var (
	ErrValidation        = errors.BadRequest(ReasonUploadInvalid, "invalid upload request")
	ErrStorage           = errors.InternalServer(ReasonStorageFailed, "failed to store video file")
	ErrDatabase          = errors.InternalServer(ReasonDatabaseFailed, "failed to persist video metadata")
	ErrVideoInvalid      = errors.BadRequest(ReasonVideoInvalid, "Invalid video id")
	ErrVideoNotFound     = errors.NotFound(ReasonVideoNotFound, "video not found")
	ErrAnalyticsInvalid  = errors.BadRequest(ReasonAnalyticsInvalid, "invalid video id")
	ErrAnalyticsNotFound = errors.NotFound(ReasonAnalyticsNotFound, "analytics not found")
	ErrJobInvalid        = errors.BadRequest(ReasonJobInvalid, "invalid processing job")
	ErrProcessorBusy     = errors.ServiceUnavailable(ReasonProcessorBusy, "processing queue is full")
)
