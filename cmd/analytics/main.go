// Package main 启动分析服务：读取与递增视频的浏览/点赞计数。
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

const serviceName = "analytics-api"

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
		Sections:    []configloader.Section{configloader.SectionServer, configloader.SectionData},
	})
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}
