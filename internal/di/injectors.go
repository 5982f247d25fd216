//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"survey/internal"
	"survey/internal/controllers"
	"survey/internal/identity"
	"survey/internal/providers"
	"survey/internal/services"
	"survey/internal/store"
	"survey/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		store.NewResponseStore,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		identity.NewLineVerifier,
		wire.Bind(new(identity.VerifierInterface), new(*identity.LineVerifier)),
		services.NewSurveyValidator,
		services.NewStatisticService,
		services.NewSurveyService,
		controllers.NewSurveyController,
		controllers.NewUserController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
