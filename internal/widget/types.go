package widget

import (
	"time"

	"widget-srv/internal/model"
	"widget-srv/internal/widget/query"
	"widget-srv/internal/widget/source"
	"widget-srv/pkg/paginator"
)

// Kind is the capability category of a widget type.
type Kind string

const (
	KindTable  Kind = "table"
	KindChart  Kind = "chart"
	KindCustom Kind = "custom"
	KindStatic Kind = "static"
)

// Parameter names accepted by widgets.
const (
	ParamSite                   = "site"
	ParamAccount                = "account"
	ParamSearchEngine           = "search_engine"
	ParamFrom                   = "from"
	ParamTo                     = "to"
	ParamLimit                  = "limit"
	ParamOffset                 = "offset"
	ParamSortCol                = "sort_col"
	ParamSortDir                = "sort_dir"
	ParamGrouped                = "grouped"
	ParamGranularity            = "granularity"
	ParamSearchString           = "search_string"
	ParamKeywordTagIDs          = "keyword_tag_ids"
	ParamKeywordTagIDsLogics    = "keyword_tag_ids_logics"
	ParamOnlyConversionEventIDs = "only_conversion_event_ids"
	ParamLocationIDs            = "location_ids"
	ParamRanked                 = "ranked"
	ParamSerpPropertyIDs        = "serp_property_ids"
	ParamCompetitorTagIDs       = "competitor_tag_ids"
	ParamKeywordID              = "keyword_id"
	ParamReportID               = "report_id"
	ParamAnnotationKindIDs      = "annotation_kind_ids"
	ParamExportAllRows          = "export_all_rows"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	TagLogicAny = "or"
	TagLogicAll = "and"
)

// Filters narrows the keywords a widget reports on.
type Filters struct {
	KeywordTagIDs      []int64
	KeywordTagLogic    string // TagLogicAny or TagLogicAll
	LocationIDs        []int64
	SearchString       string
	ConversionEventIDs []int64
	Ranked             bool
	SerpPropertyIDs    []int64
	CompetitorTagIDs   []int64
	KeywordID          int64
}

// Sort is the requested ordering before it is checked against a widget's allow-list.
type Sort struct {
	Column    string
	Direction string
}

// Request is a validated, typed widget request.
type Request struct {
	Context       model.ReportContext
	From          time.Time
	To            time.Time
	Granularity   query.Granularity
	Grouped       bool
	Filters       Filters
	Sort          Sort
	Page          paginator.PaginateQuery
	ExportAllRows bool
}

// Window returns the pagination applied to composed queries. Exports always read every row.
func (r Request) Window() paginator.PaginateQuery {
	if r.ExportAllRows {
		return paginator.PaginateQuery{}
	}
	return r.Page
}

// SourceOptions binds fragment providers to siteID and the request filters.
func (r Request) SourceOptions(siteID int64) source.Options {
	opts := source.Options{
		SiteID:             siteID,
		KeywordTagIDs:      r.Filters.KeywordTagIDs,
		KeywordTagLogic:    r.Filters.KeywordTagLogic,
		LocationIDs:        r.Filters.LocationIDs,
		SearchString:       r.Filters.SearchString,
		ConversionEventIDs: r.Filters.ConversionEventIDs,
		KeywordID:          r.Filters.KeywordID,
	}
	if r.Context.SearchEngine != nil {
		opts.SearchEngineID = r.Context.SearchEngine.ID
	}
	if r.Context.Site != nil {
		opts.CountryCode = r.Context.Site.CountryCode
	}
	return opts
}

// KeywordLocation identifies an ungrouped row.
type KeywordLocation struct {
	KeywordID  int64
	LocationID int64
}

// Series is one chart series.
type Series struct {
	Type  string  `json:"type"`
	Name  string  `json:"name"`
	Data  []int64 `json:"data"`
	Color string  `json:"color,omitempty"`
}

// SortEcho echoes the ordering that was actually applied.
type SortEcho struct {
	Column    string `json:"sort_col"`
	Direction string `json:"sort_dir"`
}

// Output is the response of a widget. Fields a widget does not produce are omitted.
type Output struct {
	Rows       any                          `json:"rows,omitempty"`
	TotalCount *int64                       `json:"total_count,omitempty"`
	Pagination *paginator.PaginatorResponse `json:"pagination,omitempty"`
	Sort       *SortEcho                    `json:"sort,omitempty"`
	Dates      [][2]string                  `json:"dates,omitempty"`
	DatesCount *int                         `json:"dates_count,omitempty"`
	Categories [][2]string                  `json:"categories,omitempty"`
	Series     []Series                     `json:"series,omitempty"`
}

// NewTableOutput wraps normalized rows with their total count, pagination and applied sort.
func NewTableOutput(rows any, count int, total int64, window paginator.PaginateQuery, sort SortEcho) Output {
	p := paginator.Paginator{
		Total:  total,
		Count:  int64(count),
		Limit:  window.Limit,
		Offset: window.Offset,
	}.ToResponse()

	return Output{
		Rows:       rows,
		TotalCount: &total,
		Pagination: &p,
		Sort:       &sort,
	}
}

// WithDates attaches the period labels of a time-series widget.
func (o Output) WithDates(periods []time.Time) Output {
	dates := query.Labels(periods)
	n := len(dates)
	o.Dates = dates
	o.DatesCount = &n
	return o
}

// RenderInput names a widget and carries its raw parameters.
type RenderInput struct {
	Widget string
	Params Params
}

// DescribeInput names a widget.
type DescribeInput struct {
	Widget string
}

// Description is the presentation metadata of a widget type.
type Description struct {
	Name           string
	Kind           Kind
	Required       []string
	Permitted      []string
	Filters        [][]string
	SortingColumns []string
}
