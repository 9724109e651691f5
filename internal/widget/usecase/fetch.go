package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"widget-srv/internal/model"
	"widget-srv/internal/widget/query"
	"widget-srv/internal/widget/repository"
)

const cacheKeyPrefix = "widget_cache"

// cachedFetcher executes statements of one widget invocation, through the cache when the
// context enables it. Concurrent misses of the same key share one execution, which runs
// detached from the cancellation of whichever caller started it.
type cachedFetcher struct {
	uc     *implUseCase
	widget string
	rc     model.ReportContext
}

func (f *cachedFetcher) Fetch(ctx context.Context, stmt query.Statement) ([]query.Row, error) {
	if !f.rc.CacheEnabled() {
		return f.uc.pgRepo.Query(ctx, stmt)
	}

	key, err := cacheKey(f.widget, f.rc, stmt)
	if err != nil {
		f.uc.l.Warnf(ctx, "widget.usecase.Fetch: cache key: %v", err)
		return f.uc.pgRepo.Query(ctx, stmt)
	}

	v, err, _ := f.uc.flight.Do(key, func() (any, error) {
		// Followers share this execution, so the leader's cancellation must not fail them.
		ctx := context.WithoutCancel(ctx)
		rows, err := f.uc.redisRepo.GetRows(ctx, key)
		if err == nil {
			f.uc.l.Debugf(ctx, "widget.usecase.Fetch: cache hit for key %s", key)
			return rows, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			f.uc.l.Warnf(ctx, "widget.usecase.Fetch: cache read failed: %v", err)
		}

		rows, err = f.uc.pgRepo.Query(ctx, stmt)
		if err != nil {
			return nil, err
		}
		if err := f.uc.redisRepo.SaveRows(ctx, key, rows, f.uc.cfg.CacheTTL); err != nil {
			f.uc.l.Warnf(ctx, "widget.usecase.Fetch: cache write failed: %v", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	// Rows are shared by every caller of the flight and normalized in place.
	return cloneRows(v.([]query.Row)), nil
}

// cacheKey is widget_cache:<kind>:<id>:<sha256 of widget, statement text and args>.
func cacheKey(widgetName string, rc model.ReportContext, stmt query.Statement) (string, error) {
	args, err := json.Marshal(stmt.Args)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(widgetName))
	h.Write([]byte{0})
	h.Write([]byte(stmt.Text))
	h.Write([]byte{0})
	h.Write(args)
	return cacheKeyPrefix + ":" + rc.Key() + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

func cloneRows(rows []query.Row) []query.Row {
	if rows == nil {
		return nil
	}
	out := make([]query.Row, len(rows))
	for i, r := range rows {
		c := make(query.Row, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}
