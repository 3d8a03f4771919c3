package generate

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/auth"
)

// registers the generation pipeline routes. throttle may be nil
func RegisterRoutes(router *gin.RouterGroup, writer Writer, generator ComicGenerator, quotas QuotaService, throttle gin.HandlerFunc) {
	handlers := func(h gin.HandlerFunc, mw ...gin.HandlerFunc) []gin.HandlerFunc {
		if throttle != nil {
			mw = append([]gin.HandlerFunc{throttle}, mw...)
		}

		return append(mw, h)
	}

	router.POST("/generate-quote", handlers(QuoteHandler(writer), auth.OptionalAuthMiddleware())...)
	router.POST("/generate-description", handlers(DescriptionHandler(writer), auth.OptionalAuthMiddleware())...)
	router.POST("/generate-comic", handlers(ComicHandler(generator, quotas), auth.OptionalAuthMiddleware())...)
}
