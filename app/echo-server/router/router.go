package router

import (
	"github.com/labstack/echo/v4"

	"reelsense/internal/rest"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("/recommendations")
	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.DebugRecommend)

	users := api.Group("/users")
	users.GET("/:id/history", handler.History)
}

func SetupHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)
}
