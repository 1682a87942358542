package controllers

import (
	"net/http"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// ErrorBody 是所有错误响应的 JSON 形状。
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorEncoder 将错误渲染为 {"error": message}，状态码取自 kratos 错误码。
// 5xx 只返回通用信息。
func ErrorEncoder(w http.ResponseWriter, r *http.Request, err error) {
	se := errors.FromError(err)
	code := int(se.Code)
	if code < 400 || code > 599 {
		code = http.StatusInternalServerError
	}
	message := se.Message
	if code >= http.StatusInternalServerError || message == "" {
		message = http.StatusText(code)
	}
	codec, _ := khttp.CodecForRequest(r, "Accept")
	body, marshalErr := codec.Marshal(ErrorBody{Error: message})
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/"+codec.Name())
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
