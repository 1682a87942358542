package controllers

import (
	"context"
	"net/http"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

const (
	OperationListVideos = "/videohub.uploader/ListVideos"
	OperationGetVideo   = "/videohub.uploader/GetVideo"
)

// VideoQuerier 定义视频只读查询。
type VideoQuerier interface {
	ListVideos(ctx context.Context) ([]po.Video, error)
	GetVideo(ctx context.Context, id uuid.UUID) (*po.Video, error)
}

// VideoHandler 暴露视频列表与详情。
type VideoHandler struct {
	*BaseHandler
	svc VideoQuerier
}

// NewVideoHandler 构造 VideoHandler。
func NewVideoHandler(svc VideoQuerier, timeouts HandlerTimeouts) *VideoHandler {
	return &VideoHandler{BaseHandler: NewBaseHandler(timeouts), svc: svc}
}

// Register 挂载 /api/videos 路由。
func (h *VideoHandler) Register(r *khttp.Router) {
	r.GET("/api/videos", h.List)
	r.GET("/api/videos/{id}", h.Get)
}

// List handles GET /api/videos. 返回数组，按创建时间倒序。
func (h *VideoHandler) List(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationListVideos)
	mw := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		timeoutCtx, cancel := h.WithTimeout(c, HandlerTypeQuery)
		defer cancel()
		return h.svc.ListVideos(timeoutCtx)
	})
	out, err := mw(ctx, nil)
	if err != nil {
		return err
	}
	videos := out.([]po.Video)
	if videos == nil {
		videos = []po.Video{}
	}
	return ctx.Result(http.StatusOK, videos)
}

// Get handles GET /api/videos/{id}.
func (h *VideoHandler) Get(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationGetVideo)
	id, err := uuid.Parse(ctx.Vars().Get("id"))
	if err != nil {
		return services.ErrVideoInvalid.WithCause(err)
	}
	mw := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
		timeoutCtx, cancel := h.WithTimeout(c, HandlerTypeQuery)
		defer cancel()
		return h.svc.GetVideo(timeoutCtx, in.(uuid.UUID))
	})
	out, err := mw(ctx, id)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}
