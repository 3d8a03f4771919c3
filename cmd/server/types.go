package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/satirist/server/internal/comics"
	"codeberg.org/satirist/server/internal/config"
	"codeberg.org/satirist/server/internal/imagegen"
	"codeberg.org/satirist/server/internal/quota"
	"codeberg.org/satirist/server/internal/satire"
	"codeberg.org/satirist/server/satirist/feedback"
	"codeberg.org/satirist/server/satirist/users"
	"codeberg.org/satirist/server/satirist/waitlist"
)

// holds all dependencies and state for the API server
type Server struct {
	db        *pgxpool.Pool     // nil unless the postgres store is selected
	redis     *quota.RedisStore // nil unless the redis store is selected
	config    *config.Config
	userRepo  users.Repository
	quotas    *quota.Service
	feedback  *feedback.Store
	waitlist  *waitlist.Store
	services  *Services
	providers []string
	throttle  gin.HandlerFunc
	router    *gin.Engine
}

// holds the generation pipeline and its provider clients
type Services struct {
	TextProvider string
	Writer       *satire.Writer
	Images       *imagegen.Chain
	Comics       *comics.Pipeline
}
