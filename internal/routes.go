package internal

import (
	"net/http"
	"survey/internal/controllers"
	"survey/internal/identity"
	"survey/internal/providers"
)

func InitRoutes(
	surveyController *controllers.SurveyController,
	userController *controllers.UserController,
	verifier identity.VerifierInterface,
	logger providers.Logger,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	authed := func(h http.HandlerFunc) http.Handler {
		return controllers.RequireIdentity(verifier, logger, h)
	}

	routers.Post("/user/status", authed(userController.Status))
	routers.Get("/user/{userId}/latest-response", authed(userController.LatestResponse))
	routers.Post("/survey/submit", authed(surveyController.Submit))
	routers.Get("/survey/results", http.HandlerFunc(surveyController.Results))
	return routers
}
