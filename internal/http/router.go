package api

import (
	"log"
	stdhttp "net/http"

	intconfig "ridereport/internal/config"
	h "ridereport/internal/http/handlers"
	"ridereport/internal/http/middleware"
	"ridereport/internal/provider"
	"ridereport/internal/repositories"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	app := h.API{
		Env:      env,
		Provider: provider.NewClient(env.ProviderBaseURL, env.ProviderTimeout),
		Sessions: repositories.RideSessionRepository{},
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		auth := api.Group("/auth")
		auth.POST("/session", app.CreateSessionToken)

		authed := api.Group("")
		authed.Use(middleware.RequireCredential([]byte(env.SessionSecret)))

		rides := authed.Group("/rides")
		rides.POST("/aggregate", app.AggregateRides)

		sessions := authed.Group("/sessions")
		sessions.GET("/:id/rides", app.ListSessionRides)
		sessions.PUT("/:id/rides/:rideId/amount", app.SetRideAmount)
		sessions.DELETE("/:id/rides/:rideId/amount", app.RevertRideAmount)
		sessions.POST("/:id/export/report", app.ExportReport)
		sessions.POST("/:id/export/invoices", app.ExportInvoices)
		sessions.POST("/:id/export/csv", app.ExportCSV)
	}

	return r
}
