package usecase

import (
	"time"

	"golang.org/x/sync/singleflight"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/registry"
	"widget-srv/internal/widget/repository"
	"widget-srv/internal/widget/source"
	"widget-srv/pkg/log"
)

// Config - Widget pipeline settings
type Config struct {
	CacheTTL          time.Duration    // Lifetime of cached rows (default 1h)
	PeriodConcurrency int              // Period queries of one time series running at once (default 4)
	Quotas            map[string]int64 // Daily limit per widget name and context; absent = unlimited
}

// DefaultConfig - Default settings
func DefaultConfig() Config {
	return Config{
		CacheTTL:          time.Hour,
		PeriodConcurrency: 4,
	}
}

type implUseCase struct {
	registry  *registry.Registry
	pgRepo    repository.PostgresRepository
	redisRepo repository.RedisRepository
	sources   source.Set
	l         log.Logger
	cfg       Config
	now       func() time.Time
	flight    singleflight.Group
}

// New - Factory function
func New(
	reg *registry.Registry,
	pgRepo repository.PostgresRepository,
	redisRepo repository.RedisRepository,
	sources source.Set,
	l log.Logger,
	cfg Config,
) widget.UseCase {
	quotas := make(map[string]int64, len(cfg.Quotas))
	for name, limit := range cfg.Quotas {
		quotas[registry.NormalizeName(name)] = limit
	}
	cfg.Quotas = quotas

	return &implUseCase{
		registry:  reg,
		pgRepo:    pgRepo,
		redisRepo: redisRepo,
		sources:   sources,
		l:         l,
		cfg:       cfg,
		now:       time.Now,
	}
}
