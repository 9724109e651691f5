package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/lib/pq"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/repository"
)

// GetSite - Load a site with its effective settings.
func (r *implRepository) GetSite(ctx context.Context, id int64) (model.Site, error) {
	var rec siteRecord
	if err := queries.Raw(siteQuery, id).Bind(ctx, r.db, &rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Site{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "widget.repository.postgre.GetSite: Failed to get site: %v", err)
		return model.Site{}, err
	}

	site := model.Site{
		ID:          rec.ID,
		AccountID:   rec.AccountID,
		Name:        rec.Name,
		CountryCode: rec.CountryCode.String,
		Settings: model.Settings{
			CacheSiteWidgets:    rec.CacheSiteWidgets,
			CacheAccountWidgets: rec.CacheAccountWidgets,
		},
	}
	if rec.SourceSiteID.Valid {
		src := rec.SourceSiteID.Int64
		site.SourceSiteID = &src
	}
	return site, nil
}

// GetAccount - Load an account with its settings.
func (r *implRepository) GetAccount(ctx context.Context, id int64) (model.Account, error) {
	var rec accountRecord
	if err := queries.Raw(accountQuery, id).Bind(ctx, r.db, &rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "widget.repository.postgre.GetAccount: Failed to get account: %v", err)
		return model.Account{}, err
	}

	return model.Account{
		ID:   rec.ID,
		Name: rec.Name,
		Settings: model.Settings{
			CacheSiteWidgets:    rec.CacheSiteWidgets,
			CacheAccountWidgets: rec.CacheAccountWidgets,
		},
	}, nil
}

// GetSearchEngine - Load a search engine.
func (r *implRepository) GetSearchEngine(ctx context.Context, id int64) (model.SearchEngine, error) {
	var rec searchEngineRecord
	if err := queries.Raw(searchEngineQuery, id).Bind(ctx, r.db, &rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SearchEngine{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "widget.repository.postgre.GetSearchEngine: Failed to get search engine: %v", err)
		return model.SearchEngine{}, err
	}
	return model.SearchEngine{ID: rec.ID, Name: rec.Name}, nil
}

// LastRankingDate - Latest date rankings were collected on, on or before date.
func (r *implRepository) LastRankingDate(ctx context.Context, siteID, searchEngineID int64, date time.Time) (time.Time, bool, error) {
	var last null.Time
	err := r.db.QueryRowContext(ctx, lastRankingDateQuery, siteID, searchEngineID, date.Format("2006-01-02")).Scan(&last)
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.LastRankingDate: Failed to get last ranking date: %v", err)
		return time.Time{}, false, fmt.Errorf("last ranking date: %w", err)
	}
	if !last.Valid {
		return time.Time{}, false, nil
	}
	return last.Time.UTC(), true, nil
}

// Pages - Ranking page URLs of the given keyword locations.
func (r *implRepository) Pages(ctx context.Context, siteIDs []int64, keys []widget.KeywordLocation) (map[widget.KeywordLocation][]string, error) {
	out := make(map[widget.KeywordLocation][]string)
	if len(siteIDs) == 0 || len(keys) == 0 {
		return out, nil
	}

	wanted := make(map[widget.KeywordLocation]struct{}, len(keys))
	keywordIDs := make([]int64, 0, len(keys))
	for _, k := range keys {
		if _, ok := wanted[k]; !ok {
			keywordIDs = append(keywordIDs, k.KeywordID)
		}
		wanted[k] = struct{}{}
	}

	rows, err := r.db.QueryContext(ctx, pagesQuery, pq.Array(siteIDs), pq.Array(keywordIDs))
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.Pages: Failed to query pages: %v", err)
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			k   widget.KeywordLocation
			url string
		)
		if err := rows.Scan(&k.KeywordID, &k.LocationID, &url); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		if _, ok := wanted[k]; ok {
			out[k] = append(out[k], url)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}
	return out, nil
}
