package httpserver

import (
	"database/sql"
	"errors"
	"time"

	"widget-srv/config"
	pkgJWT "widget-srv/pkg/jwt"
	"widget-srv/pkg/log"
	pkgRedis "widget-srv/pkg/redis"

	"github.com/gin-gonic/gin"
)

const (
	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 15 * time.Second
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration

	// Database Configuration
	postgresDB  *sql.DB
	redisClient pkgRedis.IRedis

	// Authentication & Security Configuration
	jwtManager pkgJWT.IManager

	// Widget Configuration
	widgets config.WidgetsConfig
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	// ReadHeaderTimeout and ShutdownTimeout default to 10s and 15s when zero.
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// Database Configuration
	PostgresDB  *sql.DB
	RedisClient pkgRedis.IRedis

	// Authentication & Security Configuration
	JWTManager pkgJWT.IManager

	// Widget Configuration
	Widgets config.WidgetsConfig
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		// Server Configuration
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		readHeaderTimeout: orDefault(cfg.ReadHeaderTimeout, defaultReadHeaderTimeout),
		shutdownTimeout:   orDefault(cfg.ShutdownTimeout, defaultShutdownTimeout),

		// Database Configuration
		postgresDB:  cfg.PostgresDB,
		redisClient: cfg.RedisClient,

		// Authentication & Security Configuration
		jwtManager: cfg.JWTManager,

		// Widget Configuration
		widgets: cfg.Widgets,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv HTTPServer) validate() error {
	// Server Configuration
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}

	// Database Configuration
	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}

	// Authentication & Security Configuration
	if srv.jwtManager == nil {
		return errors.New("jwtManager is required")
	}

	return nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
