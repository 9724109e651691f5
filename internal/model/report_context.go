package model

import "strconv"

// ContextKind tells whether a widget runs for a single site or a whole account.
type ContextKind string

const (
	ContextKindSite    ContextKind = "site"
	ContextKindAccount ContextKind = "account"
)

// Settings are the effective (account merged with site) flags a widget cares about.
type Settings struct {
	CacheSiteWidgets    bool
	CacheAccountWidgets bool
}

// Site is a tracked website.
type Site struct {
	ID        int64
	AccountID int64
	Name      string
	// SourceSiteID points at the site whose keyword statistics are reused, if any.
	SourceSiteID *int64
	CountryCode  string // lower-case ISO alpha-2, empty when unknown
	Settings     Settings
}

// StatisticsSiteID returns the site id keyword statistics are read for.
func (s Site) StatisticsSiteID() int64 {
	if s.SourceSiteID != nil {
		return *s.SourceSiteID
	}
	return s.ID
}

// Account groups sites.
type Account struct {
	ID       int64
	Name     string
	Settings Settings
}

// SearchEngine is a (engine, locale, device) combination rankings are tracked for.
type SearchEngine struct {
	ID   int64
	Name string
}

// ReportContext is the subject a widget is rendered for: a site or an account,
// plus the search engine when the request names one.
type ReportContext struct {
	Kind         ContextKind
	Site         *Site
	Account      *Account
	SearchEngine *SearchEngine
}

// ID returns the id of the site or account.
func (c ReportContext) ID() int64 {
	switch c.Kind {
	case ContextKindSite:
		if c.Site != nil {
			return c.Site.ID
		}
	case ContextKindAccount:
		if c.Account != nil {
			return c.Account.ID
		}
	}
	return 0
}

// Key is a stable "<kind>:<id>" identifier used in cache and quota keys.
func (c ReportContext) Key() string {
	return string(c.Kind) + ":" + strconv.FormatInt(c.ID(), 10)
}

// CacheEnabled reports whether widget rows may be served from cache for this context.
func (c ReportContext) CacheEnabled() bool {
	switch c.Kind {
	case ContextKindSite:
		return c.Site != nil && c.Site.Settings.CacheSiteWidgets
	case ContextKindAccount:
		return c.Account != nil && c.Account.Settings.CacheAccountWidgets
	}
	return false
}
