// Package placeholder serves the deterministic SVG cartoon used whenever no
// AI image is available.
package placeholder

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/scene"
)

// query parameters of GET /placeholder-comic
type Query struct {
	Dialogue    string `form:"dialogue"`
	Situation   string `form:"situation"`
	Description string `form:"description"`
}

// Handler godoc
// @Summary Render the placeholder cartoon
// @Description Returns an SVG scene chosen from the situation keywords with the dialogue as caption
// @Tags placeholder
// @Produce image/svg+xml
// @Param dialogue query string false "Caption"
// @Param situation query string false "Situation"
// @Param description query string false "Scene description"
// @Success 200 {string} string "SVG document"
// @Router /api/v1/placeholder-comic [get]
func Handler(c *gin.Context) {
	var q Query

	// unknown or malformed parameters are ignored; the renderer copes with empty input
	_ = c.ShouldBindQuery(&q)

	svg := scene.RenderPlaceholder(q.Situation, q.Dialogue, q.Description)

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(svg))
}

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/placeholder-comic", Handler)
}
