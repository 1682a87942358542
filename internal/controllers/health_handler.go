package controllers

import (
	"net/http"

	"github.com/bionicotaku/lingo-services-videohub/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// HealthHandler 返回固定的存活响应。
type HealthHandler struct {
	service string
}

// NewHealthHandler 构造 HealthHandler，服务名出现在响应体中。
func NewHealthHandler(meta configloader.ServiceMetadata) *HealthHandler {
	return &HealthHandler{service: meta.Name}
}

// Register 挂载 GET /health。
func (h *HealthHandler) Register(r *khttp.Router) {
	r.GET("/health", h.Health)
}

// Health handles GET /health.
func (h *HealthHandler) Health(ctx khttp.Context) error {
	return ctx.Result(http.StatusOK, dto.HealthResponse{Status: "ok", Service: h.service})
}
