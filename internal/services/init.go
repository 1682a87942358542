// Package services 编排 videohub 的业务用例：上传、查询、计数与处理。
package services

import "github.com/google/wire"

// ProviderSet 暴露 Service 层构造函数；接口绑定在各 cmd 的 wire.go 中声明。
var ProviderSet = wire.NewSet(
	NewUploadService,
	NewNotifier,
	NewVideoQueryService,
	NewAnalyticsService,
	NewProcessingService,
)
