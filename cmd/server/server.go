package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codeberg.org/satirist/server/internal/config"
	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/internal/migrations"
	"codeberg.org/satirist/server/internal/quota"
	"codeberg.org/satirist/server/internal/ratelimit"
	"codeberg.org/satirist/server/satirist/feedback"
	"codeberg.org/satirist/server/satirist/users"
	"codeberg.org/satirist/server/satirist/waitlist"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config, providers []string) (*Server, error) {
	server := &Server{
		config:    cfg,
		feedback:  feedback.NewStore(cfg.DataDir),
		waitlist:  waitlist.NewStore(cfg.DataDir),
		providers: providers,
	}

	var store quota.Store

	switch cfg.StoreBackend {
	case config.StorePostgres:
		if cfg.AutoMigrate {
			if err := migrations.RunURL(ctx, cfg.DatabaseURL); err != nil {
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		db, err := newPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		server.db = db
		server.userRepo = users.NewPostgresRepository(db)
		store = quota.NewPostgresStore(db)

	case config.StoreRedis:
		redisStore, err := quota.NewRedisStoreFromURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis store: %w", err)
		}

		server.redis = redisStore
		server.userRepo = users.NewMemoryRepository()
		store = redisStore

	default:
		logger.Warn("using in-memory store, usage and registrations are lost on restart")
		server.userRepo = users.NewMemoryRepository()
		store = quota.NewMemoryStore()
	}

	server.quotas = quota.NewService(store, quota.Options{
		DailyLimit: cfg.DailyLimit,
		Capacity:   cfg.MVPUserCap,
		Whitelist:  cfg.WhitelistEmails,
	})

	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		server.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	server.services = services

	throttle, err := ratelimit.Middleware(cfg.RateLimit, server.redisClient())
	if err != nil {
		server.Close()
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	server.throttle = throttle

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server.router = gin.Default()
	RegisterRoutes(server.router, server)

	logger.Info("server initialized",
		"store", cfg.StoreBackend,
		"text_provider", services.TextProvider,
		"image_ai", services.Images.Available(),
		"daily_limit", cfg.DailyLimit,
		"mvp_cap", cfg.MVPUserCap,
		"oauth_providers", providers,
	)

	return server, nil
}

func newPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// managed poolers in transaction mode only have a handful of connections
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// PgBouncer in transaction mode does not support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func (s *Server) redisClient() *redis.Client {
	if s.redis == nil {
		return nil
	}

	return s.redis.Client()
}

// releases database and redis connections
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if s.db != nil {
		s.db.Close()
	}
}
