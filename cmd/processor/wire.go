//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-videohub/internal/controllers"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/database"
	loginfra "github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/logger"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/metrics"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/objectstore"
	"github.com/bionicotaku/lingo-services-videohub/internal/repositories"
	"github.com/bionicotaku/lingo-services-videohub/internal/server"
	"github.com/bionicotaku/lingo-services-videohub/internal/services"
	"github.com/bionicotaku/lingo-services-videohub/internal/tasks/processing"

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
		services.ProviderSet,
		wire.Bind(new(services.StatusTransitioner), new(*repositories.VideoRepository)),
		wire.Bind(new(services.ObjectChecker), new(*objectstore.Store)),
		processing.ProviderSet,
		wire.Bind(new(processing.JobProcessor), new(*services.ProcessingService)),
		controllers.ProviderSet,
		wire.Bind(new(controllers.JobQueue), new(*processing.Runner)),
		server.ProviderSet,
		server.NewProcessorHTTPServer,
		newApp,
	))
}
