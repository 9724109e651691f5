package main

import (
	"context"
	"fmt"

	"widget-srv/config"
	configPostgre "widget-srv/config/postgre"
	configRedis "widget-srv/config/redis"
	_ "widget-srv/docs" // Import swagger docs
	"widget-srv/internal/httpserver"
	pkgJWT "widget-srv/pkg/jwt"
	"widget-srv/pkg/log"
)

// @title       Widget Service API
// @description Reporting widget data and metadata.
// @version     1
// @BasePath    /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Access token issued by the identity service. Format: "Bearer {token}"
func main() {
	// 1. Load configuration
	// Reads config from YAML file and environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// 3. Initialize PostgreSQL
	ctx := context.Background()
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// 4. Initialize Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)

	// 5. Initialize JWT Manager
	jwtManager, err := pkgJWT.New(pkgJWT.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize JWT manager: ", err)
		return
	}
	logger.Infof(ctx, "JWT Manager initialized with algorithm: %s", cfg.JWT.Algorithm)

	// 6. Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server Configuration
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		ReadHeaderTimeout: cfg.HTTPServer.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTPServer.ShutdownTimeout,

		// Database Configuration
		PostgresDB:  postgresDB,
		RedisClient: redisClient,

		// Authentication & Security Configuration
		JWTManager: jwtManager,

		// Widget Configuration
		Widgets: cfg.Widgets,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// Run handles SIGINT/SIGTERM and shuts down gracefully
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
