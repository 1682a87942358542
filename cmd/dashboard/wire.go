//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-videohub/internal/clients"
	"github.com/bionicotaku/lingo-services-videohub/internal/dashboard"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

func wireDashboard(context.Context, configloader.Params, log.Logger) (*dashboardApp, func(), error) {
	panic(wire.Build(
		configloader.Build,
		configloader.ProviderSet,
		clients.ProviderSet,
		dashboard.ProviderSet,
		wire.Bind(new(dashboard.VideoLister), new(*clients.UploaderClient)),
		wire.Bind(new(dashboard.AnalyticsFetcher), new(*clients.AnalyticsClient)),
		wire.Bind(new(dashboard.LikeRecorder), new(*clients.AnalyticsClient)),
		wire.Bind(new(dashboard.ViewRecorder), new(*clients.AnalyticsClient)),
		newDashboardApp,
	))
}
