package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"widget-srv/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const connectTimeout = 5 * time.Second

// pool is the connection pool applied to the reporting replica. Zero config values fall back to
// defaultPool.
type pool struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxIdleTime time.Duration
}

var defaultPool = pool{
	maxOpen:     50,
	maxIdle:     10,
	maxLifetime: 30 * time.Minute,
	maxIdleTime: 5 * time.Minute,
}

var (
	mu       sync.Mutex
	instance *sql.DB
)

// Connect opens the reporting database once and returns the shared handle on later calls.
// A failed attempt leaves nothing behind, so the next call retries.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	db, err := sql.Open("postgres", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}
	poolFor(cfg).apply(db)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	instance = db
	return instance, nil
}

// Disconnect closes db and forgets the shared handle.
func Disconnect(_ context.Context, db *sql.DB) error {
	mu.Lock()
	defer mu.Unlock()

	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close PostgreSQL connection: %w", err)
	}
	if db == instance {
		instance = nil
	}
	return nil
}

func poolFor(cfg config.PostgresConfig) pool {
	p := defaultPool
	if cfg.MaxOpenConns > 0 {
		p.maxOpen = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		p.maxIdle = cfg.MaxIdleConns
	}
	if p.maxIdle > p.maxOpen {
		p.maxIdle = p.maxOpen
	}
	if cfg.ConnMaxLifetime > 0 {
		p.maxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		p.maxIdleTime = cfg.ConnMaxIdleTime
	}
	return p
}

func (p pool) apply(db *sql.DB) {
	db.SetMaxOpenConns(p.maxOpen)
	db.SetMaxIdleConns(p.maxIdle)
	db.SetConnMaxLifetime(p.maxLifetime)
	db.SetConnMaxIdleTime(p.maxIdleTime)
}

// dsn renders a lib/pq key/value connection string. Keys lib/pq does not know
// (search_path, statement_timeout) are sent to the server as session settings.
func dsn(cfg config.PostgresConfig) string {
	params := map[string]string{
		"host":     cfg.Host,
		"port":     fmt.Sprint(cfg.Port),
		"user":     cfg.User,
		"password": cfg.Password,
		"dbname":   cfg.DBName,
		"sslmode":  orDefault(cfg.SSLMode, "disable"),
	}
	params["search_path"] = orDefault(cfg.Schema, "public")
	if cfg.ApplicationName != "" {
		params["application_name"] = cfg.ApplicationName
	}
	if cfg.StatementTimeout > 0 {
		params["statement_timeout"] = fmt.Sprint(cfg.StatementTimeout.Milliseconds())
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+quote(params[k]))
	}
	return strings.Join(parts, " ")
}

// quote escapes a value for the key/value format: empty values and values with
// spaces are single quoted, with quotes and backslashes escaped.
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
