package controllers

import (
	"context"
	"net/http"

	"github.com/bionicotaku/lingo-services-videohub/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// OperationProcess 是处理任务入口的 operation 名称。
const OperationProcess = "/videohub.processor/Process"

// JobQueue 接收处理任务。队列已满时返回 services.ErrProcessorBusy。
type JobQueue interface {
	Enqueue(job events.ProcessorJob) error
}

// ProcessorHandler 接收上传服务的处理通知并异步入队。
type ProcessorHandler struct {
	queue JobQueue
}

// NewProcessorHandler 构造 ProcessorHandler。
func NewProcessorHandler(queue JobQueue) *ProcessorHandler {
	return &ProcessorHandler{queue: queue}
}

// Register 挂载 POST /process。
func (h *ProcessorHandler) Register(r *khttp.Router) {
	r.POST("/process", h.Process)
}

// Process handles POST /process. 入队成功即返回 202，不等待处理完成。
func (h *ProcessorHandler) Process(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationProcess)
	var job events.ProcessorJob
	if err := ctx.Bind(&job); err != nil {
		return services.ErrJobInvalid.WithCause(err)
	}
	if err := job.Validate(); err != nil {
		return services.ErrJobInvalid.WithCause(err)
	}
	mw := ctx.Middleware(func(_ context.Context, in interface{}) (interface{}, error) {
		return nil, h.queue.Enqueue(in.(events.ProcessorJob))
	})
	if _, err := mw(ctx, job); err != nil {
		return err
	}
	return ctx.Result(http.StatusAccepted, dto.ProcessAcceptedResponse{
		Message: "Processing job accepted",
		VideoID: job.VideoID,
	})
}
