package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// allows the web client on the public site (and localhost in development)
// to call the API with credentials
func CORSMiddleware(publicSiteURL string, production bool) gin.HandlerFunc {
	origins := []string{publicSiteURL}
	if !production {
		origins = append(origins, "http://localhost:3000", "http://localhost:8080")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
