package objectstore

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	keyPrefix       = "videos/"
	sniffLimit      = 3072
	defaultMIMEType = "application/octet-stream"
)

// videoTypes 补充标准库 mime 表中缺失的常见视频扩展名。
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

// NewObjectKey 生成 videos/<uuid>.<ext>；文件名没有扩展名时省略后缀。
func NewObjectKey(filename string) string {
	return ObjectKey(uuid.New(), filename)
}

// ObjectKey 使用给定 id 构造对象 key。
func ObjectKey(id uuid.UUID, filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return keyPrefix + id.String()
	}
	return keyPrefix + id.String() + "." + ext
}

// DetectContentType 读取 body 的前若干字节进行嗅探，返回推断出的 MIME 类型
// 以及一个仍然包含完整内容的 reader。body 可 seek 时回到起始位置并原样返回，
// 否则把已读字节拼回剩余内容。嗅探结果为通用二进制时退回到扩展名映射。
func DetectContentType(body io.Reader, filename string) (string, io.Reader, error) {
	seeker, seekable := body.(io.ReadSeeker)
	var start int64
	if seekable {
		pos, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			seekable = false
		}
		start = pos
	}

	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	var reader io.Reader
	if seekable {
		if _, err := seeker.Seek(start, io.SeekStart); err != nil {
			return "", nil, err
		}
		reader = seeker
	} else {
		reader = io.MultiReader(bytes.NewReader(head), body)
	}
	return sniff(head, filename), reader, nil
}

func sniff(head []byte, filename string) string {
	detected := mimetype.Detect(head).String()
	if detected != "" && !strings.HasPrefix(detected, defaultMIMEType) && !strings.HasPrefix(detected, "text/plain") {
		return detected
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if byExt, ok := videoTypes[ext]; ok {
		return byExt
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		return byExt
	}
	if detected == "" {
		detected = defaultMIMEType
	}
	return detected
}
