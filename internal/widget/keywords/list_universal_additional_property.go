package keywords

import (
	"context"
	"fmt"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/normalize"
	"widget-srv/internal/widget/query"
)

const (
	ListUniversalAdditionalPropertyName = "keywords/list_universal_additional_property"

	serpPropertiesTable = "ranking.parsed_serp_additional_properties"
)

var propertySortColumns = []string{colKeywordName, colRank}

// ListUniversalAdditionalProperty lists keywords with the answer box and knowledge panel
// properties the site appears in, as of the last ranking date of the window.
type ListUniversalAdditionalProperty struct {
	base
}

func NewListUniversalAdditionalProperty() ListUniversalAdditionalProperty {
	return ListUniversalAdditionalProperty{base{
		name: ListUniversalAdditionalPropertyName,
		contract: widget.NewContract(
			[]string{widget.ParamSite, widget.ParamSearchEngine, widget.ParamFrom, widget.ParamTo},
			widget.ParamLimit,
			widget.ParamOffset,
			widget.ParamSortCol,
			widget.ParamSortDir,
			widget.ParamSearchString,
			widget.ParamKeywordTagIDs,
			widget.ParamKeywordTagIDsLogics,
			widget.ParamOnlyConversionEventIDs,
			widget.ParamLocationIDs,
			widget.ParamRanked,
			widget.ParamSerpPropertyIDs,
			widget.ParamExportAllRows,
		),
		filters: [][]string{
			{"date_range"},
			{"search_engine"},
			{"only_conversion_event_ids", "keyword_tag_ids"},
			{"ranked"},
			{"limit"},
			{"serp_property_ids"},
		},
	}}
}

func (ListUniversalAdditionalProperty) SortingColumns() []string {
	return append([]string{}, propertySortColumns...)
}

// Table joins rankings of the last ranking date on or before to, and the serp properties
// parsed on to itself. With ranked set only keywords where the site appears in at least one
// property are kept.
func (w ListUniversalAdditionalProperty) Table(ctx context.Context, env widget.Env, req widget.Request) (widget.Output, error) {
	site, se := req.Context.Site, req.Context.SearchEngine
	if site == nil {
		return widget.Output{}, widget.ErrContextNotFound
	}
	if se == nil {
		return widget.Output{}, widget.ErrSearchEngineNotFound
	}

	rankingDate := req.To
	if env.Rankings != nil {
		last, ok, err := env.Rankings.LastRankingDate(ctx, site.ID, se.ID, req.To)
		if err != nil {
			return widget.Output{}, fmt.Errorf("last ranking date: %w", err)
		}
		if ok {
			rankingDate = last
		}
	}

	order := query.ResolveOrder(req.Sort.Column, req.Sort.Direction, propertySortColumns, colKeywordName)
	s := propertyListing(env.Sources, req.SourceOptions(site.ID), se.ID, rankingDate, req.To, req.Filters.Ranked)
	s.Order = &order
	s.Window = req.Window()

	rows, err := fetch(ctx, env, s)
	if err != nil {
		return widget.Output{}, err
	}
	total := normalize.ExtractTotal(rows)

	res := make([]PropertyRow, len(rows))
	for i, r := range rows {
		res[i] = newPropertyRow(r)
	}
	return widget.NewTableOutput(res, len(res), total, req.Window(), sortEcho(order)), nil
}
