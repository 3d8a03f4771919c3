package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/api/rest/auth"
	"codeberg.org/satirist/server/api/rest/feedback"
	"codeberg.org/satirist/server/api/rest/generate"
	"codeberg.org/satirist/server/api/rest/health"
	"codeberg.org/satirist/server/api/rest/placeholder"
	"codeberg.org/satirist/server/api/rest/register"
	"codeberg.org/satirist/server/api/rest/usage"
	"codeberg.org/satirist/server/api/rest/waitlist"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.PublicSiteURL, server.config.IsProduction()))

	router.GET("/health", health.Handler(health.Info{
		Version:      version,
		Store:        string(server.config.StoreBackend),
		TextProvider: server.services.TextProvider,
		ImageAI:      server.services.Images.Available(),
	}))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo, server.providers, server.config.IsProduction())
		generate.RegisterRoutes(v1, server.services.Writer, server.services.Comics, server.quotas, server.throttle)
		placeholder.RegisterRoutes(v1)
		usage.RegisterRoutes(v1, server.quotas)
		register.RegisterRoutes(v1, server.quotas)
		feedback.RegisterRoutes(v1, server.feedback)
		waitlist.RegisterRoutes(v1, server.waitlist, server.throttle)
	}
}
