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
		metrics.ProviderSet,
		repositories.ProviderSet,
		services.ProviderSet,
		wire.Bind(new(services.AnalyticsRepo), new(*repositories.VideoAnalyticsRepository)),
		controllers.ProviderSet,
		wire.Bind(new(controllers.AnalyticsRecorder), new(*services.AnalyticsService)),
		server.ProviderSet,
		server.NewAnalyticsHTTPServer,
		newApp,
	))
}
