package postgre

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"widget-srv/config"
)

func TestDSN(t *testing.T) {
	got := dsn(config.PostgresConfig{
		Host:             "replica.internal",
		Port:             5433,
		User:             "reporter",
		Password:         `it's secret`,
		DBName:           "reporting",
		ApplicationName:  "widget-srv",
		StatementTimeout: 30 * time.Second,
	})

	assert.Equal(t, "application_name=widget-srv dbname=reporting host=replica.internal "+
		`password='it\'s secret' port=5433 search_path=public sslmode=disable `+
		"statement_timeout=30000 user=reporter", got)
}

func TestDSN_EmptyPassword(t *testing.T) {
	got := dsn(config.PostgresConfig{Host: "h", Port: 5432, User: "u", DBName: "d", SSLMode: "require", Schema: "ranking"})

	assert.Contains(t, got, "password='' ")
	assert.Contains(t, got, "sslmode=require")
	assert.Contains(t, got, "search_path=ranking")
	assert.NotContains(t, got, "statement_timeout")
	assert.NotContains(t, got, "application_name")
}

func TestPoolFor(t *testing.T) {
	assert.Equal(t, defaultPool, poolFor(config.PostgresConfig{}))

	p := poolFor(config.PostgresConfig{MaxOpenConns: 4, MaxIdleConns: 8, ConnMaxLifetime: time.Minute})
	assert.Equal(t, 4, p.maxOpen)
	assert.Equal(t, 4, p.maxIdle, "idle connections never exceed open ones")
	assert.Equal(t, time.Minute, p.maxLifetime)
	assert.Equal(t, defaultPool.maxIdleTime, p.maxIdleTime)
}
