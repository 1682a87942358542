package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

// UploadReply 是上传接口的成功响应。
type UploadReply struct {
	Message string         `json:"message"`
	VideoID uuid.UUID      `json:"videoId"`
	Status  po.VideoStatus `json:"status"`
}

// UploaderClient 访问上传服务的列表与上传接口。
type UploaderClient struct {
	client *khttp.Client
	ep     endpoint
	log    *log.Helper
}

// NewUploaderClient 基于 dashboard.uploader_url 构造客户端。
func NewUploaderClient(ctx context.Context, cfg *configloader.Dashboard, logger log.Logger) (*UploaderClient, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("dashboard config is required")
	}
	ep, err := parseEndpoint(cfg.UploaderURL)
	if err != nil {
		return nil, nil, fmt.Errorf("uploader url: %w", err)
	}
	client, err := newHTTPClient(ctx, ep, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("uploader http client: %w", err)
	}
	return &UploaderClient{client: client, ep: ep, log: log.NewHelper(logger)}, func() { _ = client.Close() }, nil
}

// ListVideos 拉取全部视频（服务端按创建时间倒序）。
func (c *UploaderClient) ListVideos(ctx context.Context) ([]po.Video, error) {
	var videos []po.Video
	if err := c.client.Invoke(ctx, http.MethodGet, c.ep.path("/api/videos"), nil, &videos); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// GetVideo 拉取单个视频。
func (c *UploaderClient) GetVideo(ctx context.Context, id uuid.UUID) (*po.Video, error) {
	var video po.Video
	if err := c.client.Invoke(ctx, http.MethodGet, c.ep.path("/api/videos/"+url.PathEscape(id.String())), nil, &video); err != nil {
		return nil, fmt.Errorf("get video %s: %w", id, err)
	}
	return &video, nil
}

// UploadFile 以 multipart 流式上传本地文件。
func (c *UploaderClient) UploadFile(ctx context.Context, path, title, description string) (*UploadReply, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return c.Upload(ctx, f, filepath.Base(path), title, description)
}

// Upload 以 multipart 表单上传 body，字段与服务端约定一致：video、title、description。
func (c *UploaderClient) Upload(ctx context.Context, body io.Reader, filename, title, description string) (*UploadReply, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUploadForm(mw, body, filename, title, description))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ep.url("/api/upload"), pr)
	if err != nil {
		_ = pr.Close()
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.client.Do(req)
	if err != nil {
		_ = pr.CloseWithError(err)
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	defer res.Body.Close()

	var reply UploadReply
	if err := json.NewDecoder(res.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode upload reply: %w", err)
	}
	return &reply, nil
}

func writeUploadForm(mw *multipart.Writer, body io.Reader, filename, title, description string) error {
	if err := mw.WriteField("title", title); err != nil {
		return err
	}
	if description != "" {
		if err := mw.WriteField("description", description); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile("video", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, body); err != nil {
		return err
	}
	return mw.Close()
}
