//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-videohub/internal/clients"
	"github.com/bionicotaku/lingo-services-videohub/internal/controllers"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/database"
	loginfra "github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/logger"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/metrics"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/objectstore"
	"github.com/bionicotaku/lingo-services-videohub/internal/repositories"
	"github.com/bionicotaku/lingo-services-videohub/internal/server"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"

	"github.com/go-kratos/kratos/v2"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

// wireApp init kratos application.
func wireApp(context.Context, configloader.Params) (*kratos.App, func(), error) {
	panic(wire.Build(
		configloader.Build,
		configloader.ProviderSet,
		loginfra.ProviderSet,
		database.ProviderSet,
		objectstore.ProviderSet,
		metrics.ProviderSet,
		repositories.ProviderSet,
		clients.NewProcessorTrigger,
		services.ProviderSet,
		wire.Bind(new(services.ObjectWriter), new(*objectstore.Store)),
		wire.Bind(new(services.VideoWriter), new(*repositories.VideoRepository)),
		wire.Bind(new(services.AnalyticsInitializer), new(*repositories.VideoAnalyticsRepository)),
		wire.Bind(new(services.ProcessorNotifier), new(*services.Notifier)),
		wire.Bind(new(services.VideoQueryRepo), new(*repositories.VideoRepository)),
		controllers.ProviderSet,
		wire.Bind(new(controllers.Uploader), new(*services.UploadService)),
		wire.Bind(new(controllers.VideoQuerier), new(*services.VideoQueryService)),
		server.ProviderSet,
		server.NewUploaderHTTPServer,
		newApp,
	))
}
