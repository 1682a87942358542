// Package dto 定义 HTTP 接口的请求/响应结构。
package dto

import (
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/google/uuid"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// UploadResponse 是 POST /api/upload 的成功响应。
type UploadResponse struct {
	Message string         `json:"message"`
	VideoID uuid.UUID      `json:"videoId"`
	Status  po.VideoStatus `json:"status"`
}

// VideoIDRequest 是计数递增接口的请求体；videoId 保持字符串，非法值由服务层返回 400。
type VideoIDRequest struct {
	VideoID string `json:"videoId"`
}

// ViewResponse 是 POST /api/analytics/view 的响应。
type ViewResponse struct {
	Message string `json:"message"`
	Views   int64  `json:"views"`
}

// LikeResponse 是 POST /api/analytics/like 的响应。
type LikeResponse struct {
	Message string `json:"message"`
	Likes   int64  `json:"likes"`
}

// ProcessAcceptedResponse 是 POST /process 的响应。
type ProcessAcceptedResponse struct {
	Message string    `json:"message"`
	VideoID uuid.UUID `json:"videoId"`
}
