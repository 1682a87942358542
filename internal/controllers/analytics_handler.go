package controllers

import (
	"context"
	"net/http"

	"github.com/bionicotaku/lingo-services-videohub/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

const (
	OperationGetAnalytics = "/videohub.analytics/GetAnalytics"
	OperationRecordView   = "/videohub.analytics/RecordView"
	OperationRecordLike   = "/videohub.analytics/RecordLike"
)

// AnalyticsRecorder 定义计数读取与递增。
type AnalyticsRecorder interface {
	GetAnalytics(ctx context.Context, videoID uuid.UUID) (*vo.AnalyticsSnapshot, error)
	RecordView(ctx context.Context, videoID uuid.UUID) (*vo.AnalyticsSnapshot, error)
	RecordLike(ctx context.Context, videoID uuid.UUID) (*vo.AnalyticsSnapshot, error)
}

// AnalyticsHandler 暴露分析服务的 HTTP 接口。
type AnalyticsHandler struct {
	*BaseHandler
	svc AnalyticsRecorder
}

// NewAnalyticsHandler 构造 AnalyticsHandler。
func NewAnalyticsHandler(svc AnalyticsRecorder, timeouts HandlerTimeouts) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: NewBaseHandler(timeouts), svc: svc}
}

// Register 挂载 /api/analytics 路由。
func (h *AnalyticsHandler) Register(r *khttp.Router) {
	r.GET("/api/analytics/{videoId}", h.Get)
	r.POST("/api/analytics/view", h.View)
	r.POST("/api/analytics/like", h.Like)
}

// Get handles GET /api/analytics/{videoId}.
func (h *AnalyticsHandler) Get(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationGetAnalytics)
	id, err := services.ParseVideoID(ctx.Vars().Get("videoId"))
	if err != nil {
		return err
	}
	snapshot, err := h.invoke(ctx, id, HandlerTypeQuery, h.svc.GetAnalytics)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, snapshot)
}

// View handles POST /api/analytics/view with body {"videoId": "..."}.
func (h *AnalyticsHandler) View(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationRecordView)
	id, err := h.bindVideoID(ctx)
	if err != nil {
		return err
	}
	snapshot, err := h.invoke(ctx, id, HandlerTypeCommand, h.svc.RecordView)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, dto.ViewResponse{Message: "View recorded", Views: snapshot.Views})
}

// Like handles POST /api/analytics/like with body {"videoId": "..."}.
func (h *AnalyticsHandler) Like(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationRecordLike)
	id, err := h.bindVideoID(ctx)
	if err != nil {
		return err
	}
	snapshot, err := h.invoke(ctx, id, HandlerTypeCommand, h.svc.RecordLike)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, dto.LikeResponse{Message: "Like recorded", Likes: snapshot.Likes})
}

func (h *AnalyticsHandler) bindVideoID(ctx khttp.Context) (uuid.UUID, error) {
	var in dto.VideoIDRequest
	if err := ctx.Bind(&in); err != nil {
		return uuid.Nil, services.ErrAnalyticsInvalid.WithCause(err)
	}
	return services.ParseVideoID(in.VideoID)
}

func (h *AnalyticsHandler) invoke(ctx khttp.Context, id uuid.UUID, kind HandlerType, call func(context.Context, uuid.UUID) (*vo.AnalyticsSnapshot, error)) (*vo.AnalyticsSnapshot, error) {
	mw := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
		timeoutCtx, cancel := h.WithTimeout(c, kind)
		defer cancel()
		return call(timeoutCtx, in.(uuid.UUID))
	})
	out, err := mw(ctx, id)
	if err != nil {
		return nil, err
	}
	return out.(*vo.AnalyticsSnapshot), nil
}
