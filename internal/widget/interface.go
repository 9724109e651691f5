package widget

import (
	"context"
	"time"

	"widget-srv/internal/model"
	"widget-srv/internal/widget/query"
	"widget-srv/internal/widget/source"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Render(ctx context.Context, sc model.Scope, input RenderInput) (Output, error)
	Describe(ctx context.Context, sc model.Scope, input DescribeInput) (Description, error)
}

// Widget is what every widget type implements. A widget must also satisfy exactly
// one of Table, Chart, Custom or Static to be registered.
type Widget interface {
	// Name is the normalized identifier, e.g. keywords/search_volume_table.
	Name() string
	Contract() Contract
	// Filters are the ordered UI filter groups of the widget.
	Filters() [][]string
}

// Table widgets return paginated rows.
type Table interface {
	Widget
	// SortingColumns is the sortable-column allow-list shown by the UI.
	SortingColumns() []string
	Table(ctx context.Context, env Env, req Request) (Output, error)
}

// Chart widgets return chart series.
type Chart interface {
	Widget
	Chart(ctx context.Context, env Env, req Request) (Output, error)
}

// Custom widgets return a bespoke payload.
type Custom interface {
	Widget
	Custom(ctx context.Context, env Env, req Request) (Output, error)
}

// Static widgets render without touching any data source.
type Static interface {
	Widget
	Static(req Request) Output
}

// Env carries the collaborators of one widget invocation.
type Env struct {
	Rows     RowFetcher
	Sources  source.Set
	Rankings RankingDates
	Pages    PageAnnotator
	// PeriodConcurrency bounds how many period queries of a time series run at once.
	PeriodConcurrency int
}

// RowFetcher executes a bound statement, possibly through the widget cache.
type RowFetcher interface {
	Fetch(ctx context.Context, stmt query.Statement) ([]query.Row, error)
}

// RankingDates resolves the latest date rankings were collected on.
type RankingDates interface {
	// LastRankingDate returns the latest ranking date on or before date; ok is false when none exists.
	LastRankingDate(ctx context.Context, siteID, searchEngineID int64, date time.Time) (last time.Time, ok bool, err error)
}

// PageAnnotator looks up the ranking pages of keywords.
type PageAnnotator interface {
	Pages(ctx context.Context, siteIDs []int64, keys []KeywordLocation) (map[KeywordLocation][]string, error)
}
