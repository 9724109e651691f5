package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// PostgreSQL - Reporting read replica
	Postgres PostgresConfig

	// Redis - Widget cache, daily quotas
	Redis RedisConfig

	// JWT - Authentication
	JWT JWTConfig

	// Widgets - Cache and quota policy
	Widgets WidgetsConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig is used to verify tokens issued by the identity service. This service does not issue tokens.
type JWTConfig struct {
	Algorithm string
	Issuer    string
	Audience  []string
	SecretKey string
}

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
	// ReadHeaderTimeout bounds how long a client may take to send request headers.
	ReadHeaderTimeout time.Duration
	// ShutdownTimeout is how long in-flight requests get to finish after a stop signal.
	ShutdownTimeout time.Duration
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for Postgres
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Schema   string

	// ApplicationName is reported to pg_stat_activity.
	ApplicationName string
	// StatementTimeout cancels widget queries running longer than this. Zero disables it.
	StatementTimeout time.Duration

	// Pool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// WidgetsConfig controls the widget pipeline.
type WidgetsConfig struct {
	// CacheTTL is how long cached widget rows live in Redis.
	CacheTTL time.Duration
	// PeriodConcurrency bounds the per-period queries of a time-series widget running at once.
	PeriodConcurrency int
	// Quotas maps a widget name (e.g. keywords/search_volume_table) to its daily limit per context.
	// Widgets without an entry are unlimited.
	Quotas map[string]int64
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("widget-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/widget-srv/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ReadHeaderTimeout = time.Duration(viper.GetInt("http_server.read_header_timeout")) * time.Second
	cfg.HTTPServer.ShutdownTimeout = time.Duration(viper.GetInt("http_server.shutdown_timeout")) * time.Second
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// PostgreSQL
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgres.Schema = viper.GetString("postgres.schema")
	cfg.Postgres.ApplicationName = viper.GetString("postgres.application_name")
	cfg.Postgres.StatementTimeout = time.Duration(viper.GetInt("postgres.statement_timeout")) * time.Second
	cfg.Postgres.MaxOpenConns = viper.GetInt("postgres.max_open_conns")
	cfg.Postgres.MaxIdleConns = viper.GetInt("postgres.max_idle_conns")
	cfg.Postgres.ConnMaxLifetime = time.Duration(viper.GetInt("postgres.conn_max_lifetime")) * time.Second
	cfg.Postgres.ConnMaxIdleTime = time.Duration(viper.GetInt("postgres.conn_max_idle_time")) * time.Second

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// JWT
	cfg.JWT.Algorithm = viper.GetString("jwt.algorithm")
	cfg.JWT.Issuer = viper.GetString("jwt.issuer")
	cfg.JWT.Audience = viper.GetStringSlice("jwt.audience")
	cfg.JWT.SecretKey = viper.GetString("jwt.secret_key")

	// Widgets
	cfg.Widgets.CacheTTL = time.Duration(viper.GetInt("widgets.cache_ttl")) * time.Second
	cfg.Widgets.PeriodConcurrency = viper.GetInt("widgets.period_concurrency")
	quotas := make(map[string]int64)
	if viper.IsSet("widgets.quotas") {
		for name, raw := range viper.GetStringMap("widgets.quotas") {
			limit, err := toInt64(raw)
			if err != nil {
				return nil, fmt.Errorf("widgets.quotas.%s: %w", name, err)
			}
			quotas[name] = limit
		}
	}
	cfg.Widgets.Quotas = quotas

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// HTTP Server
	viper.SetDefault("http_server.host", "")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.read_header_timeout", 10) // seconds
	viper.SetDefault("http_server.shutdown_timeout", 15)    // seconds

	// Logger
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// PostgreSQL
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "postgres")
	viper.SetDefault("postgres.sslmode", "prefer")
	viper.SetDefault("postgres.schema", "public")
	viper.SetDefault("postgres.application_name", "widget-srv")
	viper.SetDefault("postgres.statement_timeout", 30) // seconds
	viper.SetDefault("postgres.max_open_conns", 50)
	viper.SetDefault("postgres.max_idle_conns", 10)
	viper.SetDefault("postgres.conn_max_lifetime", 1800) // 30 minutes
	viper.SetDefault("postgres.conn_max_idle_time", 300) // 5 minutes

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// JWT
	viper.SetDefault("jwt.algorithm", "HS256")
	viper.SetDefault("jwt.issuer", "identity-srv")
	viper.SetDefault("jwt.audience", []string{"widget-srv"})

	// Widgets
	viper.SetDefault("widgets.cache_ttl", 3600) // 1 hour
	viper.SetDefault("widgets.period_concurrency", 4)
}

func validate(cfg *Config) error {
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("jwt.secret_key must be at least 32 characters for security")
	}
	if cfg.JWT.Issuer == "" {
		return fmt.Errorf("jwt.issuer is required")
	}

	if cfg.Postgres.Host == "" {
		return fmt.Errorf("postgres.host is required")
	}
	if cfg.Postgres.Port == 0 {
		return fmt.Errorf("postgres.port is required")
	}
	if cfg.Postgres.DBName == "" {
		return fmt.Errorf("postgres.db_name is required")
	}
	if cfg.Postgres.User == "" {
		return fmt.Errorf("postgres.user is required")
	}
	if cfg.Postgres.MaxIdleConns > cfg.Postgres.MaxOpenConns && cfg.Postgres.MaxOpenConns > 0 {
		return fmt.Errorf("postgres.max_idle_conns must not exceed postgres.max_open_conns")
	}

	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if cfg.Redis.Port == 0 {
		return fmt.Errorf("redis.port is required")
	}

	if cfg.Widgets.CacheTTL <= 0 {
		return fmt.Errorf("widgets.cache_ttl must be greater than 0")
	}
	if cfg.Widgets.PeriodConcurrency <= 0 {
		return fmt.Errorf("widgets.period_concurrency must be greater than 0")
	}
	for name, limit := range cfg.Widgets.Quotas {
		if limit < 0 {
			return fmt.Errorf("widgets.quotas.%s must not be negative", name)
		}
	}

	return nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case string:
		var out int64
		if _, err := fmt.Sscan(n, &out); err != nil {
			return 0, fmt.Errorf("invalid quota %q", n)
		}
		return out, nil
	default:
		return 0, fmt.Errorf("invalid quota type %T", v)
	}
}
