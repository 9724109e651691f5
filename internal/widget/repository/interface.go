package repository

import (
	"context"
	"time"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/query"
)

//go:generate mockery --name QueryRepository
type QueryRepository interface {
	// Query executes a bound statement and returns every row as text columns.
	Query(ctx context.Context, stmt query.Statement) ([]query.Row, error)
}

//go:generate mockery --name ContextRepository
type ContextRepository interface {
	GetSite(ctx context.Context, id int64) (model.Site, error)
	GetAccount(ctx context.Context, id int64) (model.Account, error)
	GetSearchEngine(ctx context.Context, id int64) (model.SearchEngine, error)
	LastRankingDate(ctx context.Context, siteID, searchEngineID int64, date time.Time) (time.Time, bool, error)
	Pages(ctx context.Context, siteIDs []int64, keys []widget.KeywordLocation) (map[widget.KeywordLocation][]string, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	QueryRepository
	ContextRepository
}

//go:generate mockery --name CacheRepository
type CacheRepository interface {
	// GetRows returns ErrCacheMiss when key is absent.
	GetRows(ctx context.Context, key string) ([]query.Row, error)
	SaveRows(ctx context.Context, key string, rows []query.Row, ttl time.Duration) error
}

//go:generate mockery --name QuotaRepository
type QuotaRepository interface {
	// CheckAndIncrement atomically compares the usage under opts.Key with opts.Quota and counts
	// one more use when the quota is not yet reached.
	CheckAndIncrement(ctx context.Context, opts CheckQuotaOptions) (exceeded bool, err error)
}

//go:generate mockery --name RedisRepository
type RedisRepository interface {
	CacheRepository
	QuotaRepository
}
