package usage

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/auth"
)

func RegisterRoutes(router *gin.RouterGroup, quotas QuotaChecker) {
	check := CheckHandler(quotas)

	router.GET("/check-limit", auth.AuthMiddleware(), check)
	router.POST("/check-limit", auth.AuthMiddleware(), check)
	router.GET("/check-usage", auth.AuthMiddleware(), check)
}
