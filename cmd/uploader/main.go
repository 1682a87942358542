// Package main 启动上传服务：接收 multipart 上传、写入 S3 与 Postgres，并通知处理服务。
package main

import (
	"context"
	"flag"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	_ "go.uber.org/automaxprocs"
)

const serviceName = "uploader-api"

func newApp(logger log.Logger, meta configloader.ServiceMetadata, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(meta.InstanceID),
		kratos.Name(meta.Name),
		kratos.Version(meta.Version),
		kratos.Metadata(map[string]string{"environment": meta.Environment}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	flag.Parse()

	app, cleanup, err := wireApp(context.Background(), configloader.Params{
		ConfPath:    *confFlag,
		ServiceName: serviceName,
		Sections: []configloader.Section{
			configloader.SectionServer,
			configloader.SectionData,
			configloader.SectionStorage,
			configloader.SectionProcessor,
		},
	})
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// start and wait for stop signal
	if err := app.Run(); err != nil {
		panic(err)
	}
}
