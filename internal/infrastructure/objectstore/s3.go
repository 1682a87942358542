// Package objectstore 封装 S3 对象存储：上传原始视频文件并检查对象是否存在。
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
)

// API 是 Store 使用的 S3 客户端子集，*s3.Client 满足该接口。
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Object 标识一次写入后的存储位置。
type Object struct {
	Bucket      string
	Key         string
	ContentType string
}

// Store 负责把文件写入配置的 bucket。
type Store struct {
	client API
	bucket string
	log    *log.Helper
}

// NewS3Client 基于配置构造 *s3.Client。
// 未提供静态凭据时使用 SDK 默认凭据链；Endpoint 非空时指向本地模拟器。
func NewS3Client(ctx context.Context, cfg *configloader.Storage) (*s3.Client, error) {
	if cfg == nil {
		return nil, errors.New("objectstore: storage config is required")
	}
	s3cfg := cfg.S3
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s3cfg.Region),
	}
	if s3cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3cfg.AccessKeyID, s3cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
		}
		o.UsePathStyle = s3cfg.UsePathStyle
	}), nil
}

// NewStore 构造 Store。
func NewStore(client API, cfg *configloader.Storage, logger log.Logger) (*Store, error) {
	if client == nil {
		return nil, errors.New("objectstore: s3 client is required")
	}
	if cfg == nil || cfg.S3.Bucket == "" {
		return nil, errors.New("objectstore: bucket is required")
	}
	return &Store{
		client: client,
		bucket: cfg.S3.Bucket,
		log:    log.NewHelper(logger),
	}, nil
}

// Put 将 body 写入 key。size <= 0 表示长度未知。
// contentType 为空时根据内容与文件名推断。
// SDK 在非 TLS endpoint 上需要计算请求头校验和，要求 body 可 seek；
// 不可 seek 的 body 先落盘到临时文件。
func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, filename string) (Object, error) {
	if key == "" {
		return Object{}, errors.New("objectstore: key is required")
	}
	if body == nil {
		return Object{}, errors.New("objectstore: body is required")
	}

	contentType, reader, err := DetectContentType(body, filename)
	if err != nil {
		return Object{}, fmt.Errorf("detect content type: %w", err)
	}
	payload, spooled, cleanup, err := seekable(reader)
	if err != nil {
		return Object{}, fmt.Errorf("buffer upload body: %w", err)
	}
	defer cleanup()
	if size <= 0 && spooled >= 0 {
		size = spooled
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        payload,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.log.WithContext(ctx).Errorf("put object failed: bucket=%s key=%s err=%v", s.bucket, key, err)
		return Object{}, fmt.Errorf("put object %s/%s: %w", s.bucket, key, err)
	}

	s.log.WithContext(ctx).Infof("object stored: bucket=%s key=%s content_type=%s size=%d", s.bucket, key, contentType, size)
	return Object{Bucket: s.bucket, Key: key, ContentType: contentType}, nil
}

// seekable 原样返回可 seek 的 reader（spooled 为 -1），
// 否则复制到临时文件并返回写入的字节数。
func seekable(r io.Reader) (io.ReadSeeker, int64, func(), error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, -1, func() {}, nil
	}
	f, err := os.CreateTemp("", "videohub-upload-*")
	if err != nil {
		return nil, 0, nil, err
	}
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(f.Name())
	}
	n, err := io.Copy(f, r)
	if err != nil {
		cleanup()
		return nil, 0, nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, 0, nil, err
	}
	return f, n, cleanup, nil
}

// Exists 通过 HeadObject 判断对象是否存在；bucket 为空时使用默认 bucket。
func (s *Store) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if bucket == "" {
		bucket = s.bucket
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("head object %s/%s: %w", bucket, key, err)
}
