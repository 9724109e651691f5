package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("WIDGETS_CACHE_TTL", "120")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("HTTP_SERVER_SHUTDOWN_TIMEOUT", "30")
	t.Setenv("POSTGRES_STATEMENT_TIMEOUT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.ReadHeaderTimeout)
	assert.Equal(t, 5*time.Second, cfg.Postgres.StatementTimeout)
	assert.Equal(t, 50, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.ConnMaxLifetime)

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 2*time.Minute, cfg.Widgets.CacheTTL)
	assert.Equal(t, 4, cfg.Widgets.PeriodConcurrency)
	assert.Equal(t, "identity-srv", cfg.JWT.Issuer)
}

func TestLoad_RequiresSecret(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("JWT_SECRET_KEY", "short")

	_, err := Load()
	assert.ErrorContains(t, err, "jwt.secret_key")
}

func TestValidate_Quotas(t *testing.T) {
	cfg := &Config{
		Postgres: PostgresConfig{Host: "h", Port: 5432, DBName: "d", User: "u"},
		Redis:    RedisConfig{Host: "h", Port: 6379},
		JWT:      JWTConfig{SecretKey: "0123456789abcdef0123456789abcdef", Issuer: "i"},
		Widgets:  WidgetsConfig{CacheTTL: time.Hour, PeriodConcurrency: 1, Quotas: map[string]int64{"keywords/search_volume": -1}},
	}
	assert.ErrorContains(t, validate(cfg), "widgets.quotas.keywords/search_volume")

	cfg.Widgets.Quotas["keywords/search_volume"] = 100
	assert.NoError(t, validate(cfg))
}

func TestValidate_PostgresPool(t *testing.T) {
	cfg := &Config{
		Postgres: PostgresConfig{Host: "h", Port: 5432, DBName: "d", User: "u", MaxOpenConns: 5, MaxIdleConns: 10},
		Redis:    RedisConfig{Host: "h", Port: 6379},
		JWT:      JWTConfig{SecretKey: "0123456789abcdef0123456789abcdef", Issuer: "i"},
		Widgets:  WidgetsConfig{CacheTTL: time.Hour, PeriodConcurrency: 1},
	}
	assert.ErrorContains(t, validate(cfg), "postgres.max_idle_conns")

	cfg.Postgres.MaxIdleConns = 5
	assert.NoError(t, validate(cfg))
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		in      interface{}
		want    int64
		wantErr bool
	}{
		{in: 5, want: 5},
		{in: int64(6), want: 6},
		{in: 7.0, want: 7},
		{in: "8", want: 8},
		{in: "eight", wantErr: true},
		{in: true, wantErr: true},
	}
	for _, tt := range tests {
		got, err := toInt64(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
