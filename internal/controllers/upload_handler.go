package controllers

import (
	"context"
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/bionicotaku/lingo-services-videohub/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

const (
	// OperationUpload 是上传接口的 kratos operation 名称。
	OperationUpload = "/videohub.uploader/Upload"

	uploadFileField    = "video"
	multipartMemoryCap = 32 << 20
)

// Uploader 定义上传用例。
type Uploader interface {
	Upload(ctx context.Context, input services.UploadInput) (*services.UploadResult, error)
}

// UploadHandler 处理 multipart 上传请求。
type UploadHandler struct {
	*BaseHandler
	svc      Uploader
	maxBytes int64
	log      *log.Helper
}

// NewUploadHandler 构造 UploadHandler；maxBytes 来自 server.http.max_upload_bytes。
func NewUploadHandler(svc Uploader, c *configloader.Server, timeouts HandlerTimeouts, logger log.Logger) *UploadHandler {
	var maxBytes int64
	if c != nil {
		maxBytes = c.HTTP.MaxUploadBytes
	}
	return &UploadHandler{
		BaseHandler: NewBaseHandler(timeouts),
		svc:         svc,
		maxBytes:    maxBytes,
		log:         log.NewHelper(logger),
	}
}

// Register 挂载 POST /api/upload。
func (h *UploadHandler) Register(r *khttp.Router) {
	r.POST("/api/upload", h.Upload)
}

// Upload handles POST /api/upload (multipart fields: video, title, description).
func (h *UploadHandler) Upload(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationUpload)
	req := ctx.Request()
	if h.maxBytes > 0 {
		if req.ContentLength > h.maxBytes {
			return errors.New(http.StatusRequestEntityTooLarge, services.ReasonUploadInvalid, "Video file is too large")
		}
		req.Body = http.MaxBytesReader(ctx.Response(), req.Body, h.maxBytes)
	}
	if err := req.ParseMultipartForm(multipartMemoryCap); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(http.StatusRequestEntityTooLarge, services.ReasonUploadInvalid, "Video file is too large")
		}
		if !stderrors.Is(err, http.ErrNotMultipart) {
			return errors.BadRequest(services.ReasonUploadInvalid, "Malformed multipart body")
		}
	}
	if req.MultipartForm != nil {
		defer func() { _ = req.MultipartForm.RemoveAll() }()
	}

	input := services.UploadInput{
		Title:       req.FormValue("title"),
		Description: req.FormValue("description"),
	}
	file, header, err := req.FormFile(uploadFileField)
	switch {
	case err == nil:
		defer func(f multipart.File) { _ = f.Close() }(file)
		input.File = file
		input.Size = header.Size
		input.Filename = header.Filename
	case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
		// 缺少文件由服务层返回 "No video file provided"
	default:
		return errors.BadRequest(services.ReasonUploadInvalid, "Malformed multipart body")
	}

	mw := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
		timeoutCtx, cancel := h.WithTimeout(c, HandlerTypeCommand)
		defer cancel()
		return h.svc.Upload(timeoutCtx, in.(services.UploadInput))
	})
	out, err := mw(ctx, input)
	if err != nil {
		return err
	}
	result := out.(*services.UploadResult)
	return ctx.Result(http.StatusCreated, dto.UploadResponse{
		Message: "Video uploaded successfully",
		VideoID: result.VideoID,
		Status:  result.Status,
	})
}
