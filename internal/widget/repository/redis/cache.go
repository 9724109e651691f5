package redis

import (
	"context"
	"encoding/json"
	"time"

	"widget-srv/internal/widget/query"
	"widget-srv/internal/widget/repository"
	pkgRedis "widget-srv/pkg/redis"
)

// GetRows - Cached raw rows of a composed statement.
func (r *implRepository) GetRows(ctx context.Context, key string) ([]query.Row, error) {
	data, err := r.redis.Get(ctx, key)
	if err != nil {
		if pkgRedis.IsNil(err) {
			return nil, repository.ErrCacheMiss
		}
		return nil, err
	}

	var rows []query.Row
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		r.l.Errorf(ctx, "widget.repository.redis.GetRows: Failed to unmarshal rows: %v", err)
		return nil, err
	}
	return rows, nil
}

// SaveRows - Cache raw rows for ttl.
func (r *implRepository) SaveRows(ctx context.Context, key string, rows []query.Row, ttl time.Duration) error {
	if rows == nil {
		rows = []query.Row{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	if err := r.redis.Set(ctx, key, data, ttl); err != nil {
		r.l.Errorf(ctx, "widget.repository.redis.SaveRows: Failed to save to cache: %v", err)
		return err
	}
	return nil
}
