package source

import (
	"time"

	"widget-srv/internal/widget/query"
)

// Options bind a provider to one context and filter set.
type Options struct {
	SiteID             int64
	SearchEngineID     int64
	CountryCode        string
	KeywordTagIDs      []int64
	KeywordTagLogic    string // "or" or "and"
	LocationIDs        []int64
	SearchString       string
	ConversionEventIDs []int64
	KeywordID          int64
}

// TableSource yields a relation that is not tied to a reference date.
type TableSource interface {
	TableQuery(opts Options) query.Fragment
}

// JoinSource yields a relation read as of a reference date.
type JoinSource interface {
	JoinTableQuery(opts Options, date time.Time) query.Fragment
}

// Set is every fragment provider a widget may compose.
//
// Column contracts:
//   - Keywords: keyword_id, mysql_keyword_id, keyword_name, location_id
//   - KeywordTags: tag_id, tag_name, keyword_id, location_id (tag columns null for untagged keywords)
//   - LocationNames: location_id, location_name
//   - KeywordStatistics: keyword_id, search_volume
//   - Rankings: keyword_id, location_id, rank, search_engine_id
type Set struct {
	Keywords          TableSource
	KeywordTags       TableSource
	LocationNames     TableSource
	KeywordStatistics JoinSource
	Rankings          JoinSource
}
