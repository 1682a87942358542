package objectstore

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/wire"
)

// ProviderSet 暴露 S3 客户端与 Store 构造器。
var ProviderSet = wire.NewSet(
	NewS3Client,
	NewStore,
	wire.Bind(new(API), new(*s3.Client)),
)
