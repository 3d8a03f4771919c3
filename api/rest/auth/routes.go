package auth

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/satirist/users"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, userRepo users.Repository, providers []string, secureCookie bool) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/providers", ProvidersHandler(providers))
		authGroup.GET("/me", auth.AuthMiddleware(), GetCurrentUserHandler(userRepo))
		authGroup.POST("/logout", LogoutHandler(secureCookie))
		authGroup.GET("/:provider", BeginAuthHandler(providers))
		authGroup.GET("/:provider/callback", CallbackHandler(userRepo, providers, secureCookie))
	}
}
