package postgre

import "github.com/aarondl/null/v8"

// Site settings override account settings; both default to off.
const siteQuery = `
SELECT
    s.id,
    s.account_id,
    s.name,
    s.source_site_id,
    LOWER(c.iso_alpha2) AS country_code,
    COALESCE(ss.cache_site_widgets, acs.cache_site_widgets, false) AS cache_site_widgets,
    COALESCE(acs.cache_account_widgets, false) AS cache_account_widgets
FROM core.sites s
    LEFT JOIN core.countries c ON c.id = s.country_id
    LEFT JOIN core.site_settings ss ON ss.site_id = s.id
    LEFT JOIN core.account_settings acs ON acs.account_id = s.account_id
WHERE s.id = $1 AND s.deleted_at IS NULL`

const accountQuery = `
SELECT
    a.id,
    a.name,
    COALESCE(acs.cache_site_widgets, false) AS cache_site_widgets,
    COALESCE(acs.cache_account_widgets, false) AS cache_account_widgets
FROM core.accounts a
    LEFT JOIN core.account_settings acs ON acs.account_id = a.id
WHERE a.id = $1 AND a.deleted_at IS NULL`

const searchEngineQuery = `
SELECT se.id, se.name
FROM core.search_engines se
WHERE se.id = $1`

const lastRankingDateQuery = `
SELECT MAX(r.date)
FROM ranking.rankings r
WHERE r.site_id = $1 AND r.search_engine_id = $2 AND r.date <= $3`

const pagesQuery = `
SELECT rp.keyword_id, rp.location_id, rp.url
FROM ranking.ranking_pages rp
WHERE rp.site_id = ANY($1) AND rp.keyword_id = ANY($2)
ORDER BY rp.keyword_id, rp.location_id, rp.url`

type siteRecord struct {
	ID                  int64       `boil:"id"`
	AccountID           int64       `boil:"account_id"`
	Name                string      `boil:"name"`
	SourceSiteID        null.Int64  `boil:"source_site_id"`
	CountryCode         null.String `boil:"country_code"`
	CacheSiteWidgets    bool        `boil:"cache_site_widgets"`
	CacheAccountWidgets bool        `boil:"cache_account_widgets"`
}

type accountRecord struct {
	ID                  int64  `boil:"id"`
	Name                string `boil:"name"`
	CacheSiteWidgets    bool   `boil:"cache_site_widgets"`
	CacheAccountWidgets bool   `boil:"cache_account_widgets"`
}

type searchEngineRecord struct {
	ID   int64  `boil:"id"`
	Name string `boil:"name"`
}
