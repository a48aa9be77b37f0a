package server

import (
	"github.com/claidex/backend/internal/server/middleware"
	"github.com/claidex/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Ownership graph routes
	apiRoutes.GET("/ownership", routes.GetOwnershipHandler)

	// Provider routes
	apiRoutes.GET("/providers", routes.SearchProvidersHandler)
	apiRoutes.GET("/providers/:npi", routes.GetProviderHandler)
	apiRoutes.GET("/providers/:npi/brief", routes.GetProviderBriefHandler)
	apiRoutes.GET("/providers/:npi/payments", routes.GetProviderPaymentsHandler)

	// Dashboard routes
	apiRoutes.GET("/dashboard/summary", routes.GetDashboardSummaryHandler)

	// Watchlist routes
	apiRoutes.GET("/watchlist", routes.GetWatchlistHandler)
	apiRoutes.POST("/watchlist", routes.AddToWatchlistHandler)
	apiRoutes.DELETE("/watchlist/:npi", routes.RemoveFromWatchlistHandler)
}
