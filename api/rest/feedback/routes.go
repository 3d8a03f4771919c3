package feedback

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/satirist/feedback"
)

func RegisterRoutes(router *gin.RouterGroup, store Store) {
	group := router.Group("/feedback", auth.AuthMiddleware())
	{
		group.POST("", SubmitHandler(store))
		group.GET("/download", DownloadHandler(store, feedback.WriteCSV))
	}
}
