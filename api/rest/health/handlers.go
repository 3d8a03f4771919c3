package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary Health check
// @Description Reports the server status and which backends are configured
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(info Info) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:       "healthy",
			Service:      "satirist",
			Version:      info.Version,
			Store:        info.Store,
			TextProvider: info.TextProvider,
			ImageAI:      info.ImageAI,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
