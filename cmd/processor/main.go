// Package main 启动处理服务：接收处理任务，推进视频状态 PENDING → PROCESSING → COMPLETED | FAILED。
package main

import (
	"context"
	"flag"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/tasks/processing"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/go-kratos/kratos/v2/transport/http"

	_ "go.uber.org/automaxprocs"
)

const serviceName = "processor"

func newApp(logger log.Logger, meta configloader.ServiceMetadata, hs *http.Server, runner *processing.Runner, consumer *processing.Consumer) *kratos.App {
	servers := []transport.Server{hs, runner}
	if consumer != nil {
		servers = append(servers, consumer)
	}
	return kratos.New(
		kratos.ID(meta.InstanceID),
		kratos.Name(meta.Name),
		kratos.Version(meta.Version),
		kratos.Metadata(map[string]string{"environment": meta.Environment}),
		kratos.Logger(logger),
		kratos.Server(servers...),
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

	if err := app.Run(); err != nil {
		panic(err)
	}
}
