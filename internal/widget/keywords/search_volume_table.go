package keywords

import (
	"context"
	"fmt"
	"time"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/normalize"
	"widget-srv/internal/widget/query"
	"widget-srv/internal/widget/source"
)

const SearchVolumeTableName = "keywords/search_volume_table"

// SearchVolumeTable lists keywords (or keyword tags when grouped) with their search volume
// in the last period and the volume series over every period of the window.
type SearchVolumeTable struct {
	base
}

func NewSearchVolumeTable() SearchVolumeTable {
	return SearchVolumeTable{base{
		name: SearchVolumeTableName,
		contract: widget.NewContract(
			[]string{widget.ParamSite, widget.ParamSearchEngine, widget.ParamFrom, widget.ParamTo},
			widget.ParamLimit,
			widget.ParamOffset,
			widget.ParamSortCol,
			widget.ParamSortDir,
			widget.ParamGrouped,
			widget.ParamGranularity,
			widget.ParamSearchString,
			widget.ParamKeywordTagIDs,
			widget.ParamKeywordTagIDsLogics,
			widget.ParamOnlyConversionEventIDs,
			widget.ParamLocationIDs,
			widget.ParamExportAllRows,
		),
		filters: [][]string{
			{"date_range"},
			{"granularity", "search_engine", "grouped"},
			{"buckets", "only_conversion_event_ids", "keyword_tag_ids"},
			{"reduced_date_range"},
			{"export_all_rows"},
			{"site_of_competitors"},
		},
	}}
}

func (SearchVolumeTable) SortingColumns() []string {
	return []string{colKeywordName, colGroup, colSearchVolume}
}

// Table pages through the last period, then reads the earlier periods for the displayed rows only.
func (w SearchVolumeTable) Table(ctx context.Context, env widget.Env, req widget.Request) (widget.Output, error) {
	site := req.Context.Site
	if site == nil {
		return widget.Output{}, widget.ErrContextNotFound
	}

	periods := query.Periods(req.From, req.To, req.Granularity)
	if len(periods) == 0 {
		return widget.Output{}, nil
	}

	opts := req.SourceOptions(site.StatisticsSiteID())
	layout := w.layout(req.Grouped)
	order := query.ResolveOrder(req.Sort.Column, req.Sort.Direction, layout.sortColumns, layout.defaultSort)

	last := len(periods) - 1
	display := layout.build(env, opts, periods[last])
	display.Order = &order
	display.Window = req.Window()

	rows, err := fetch(ctx, env, display)
	if err != nil {
		return widget.Output{}, fmt.Errorf("period %s: %w", periods[last].Format("2006-01-02"), err)
	}
	total := normalize.ExtractTotal(rows)

	volumes := make([]map[string]int64, len(periods))
	volumes[last] = volumesByKey(rows, req.Grouped)

	if len(rows) > 0 && last > 0 {
		restrict := layout.restrict(rows)
		err = eachPeriod(ctx, env.PeriodConcurrency, periods[:last], func(ctx context.Context, i int, period time.Time) error {
			s := layout.build(env, opts, period)
			restrict(&s)
			prev, err := fetch(ctx, env, s)
			if err != nil {
				return fmt.Errorf("period %s: %w", period.Format("2006-01-02"), err)
			}
			volumes[i] = volumesByKey(prev, req.Grouped)
			return nil
		})
		if err != nil {
			return widget.Output{}, err
		}
	}

	series := volumeSeries(rows, volumes, req.Grouped)

	var out widget.Output
	if req.Grouped {
		res := make([]GroupVolumeRow, len(rows))
		for i, r := range rows {
			res[i] = newGroupVolumeRow(r, series[i])
		}
		out = widget.NewTableOutput(res, len(res), total, req.Window(), sortEcho(order))
	} else {
		res := make([]VolumeRow, len(rows))
		for i, r := range rows {
			res[i] = newVolumeRow(r, series[i])
		}
		if err := annotatePages(ctx, env, site.ID, res); err != nil {
			return widget.Output{}, err
		}
		out = widget.NewTableOutput(res, len(res), total, req.Window(), sortEcho(order))
	}

	return out.WithDates(periods), nil
}

type volumeLayout struct {
	sortColumns []string
	defaultSort string
	build       func(env widget.Env, opts source.Options, date time.Time) query.Select
	// restrict narrows an earlier-period query to the keys of the displayed rows.
	restrict func(rows []query.Row) func(s *query.Select)
}

func (SearchVolumeTable) layout(grouped bool) volumeLayout {
	if grouped {
		return volumeLayout{
			sortColumns: groupedSortColumns,
			defaultSort: colGroup,
			build: func(env widget.Env, opts source.Options, date time.Time) query.Select {
				return groupedVolume(env.Sources, opts, date)
			},
			restrict: restrictGroups,
		}
	}
	return volumeLayout{
		sortColumns: ungroupedSortColumns,
		defaultSort: colKeywordName,
		build: func(env widget.Env, opts source.Options, date time.Time) query.Select {
			return ungroupedVolume(env.Sources, opts, date)
		},
		restrict: restrictKeywords,
	}
}

func restrictGroups(rows []query.Row) func(s *query.Select) {
	ids := []int64{}
	untagged := false
	for _, r := range rows {
		if id := normalize.Int(r["group_id"]); id > 0 {
			ids = append(ids, id)
		} else {
			untagged = true
		}
	}

	cond := "G.tag_id = ANY(:display_group_ids)"
	if untagged {
		cond = "(" + cond + " OR G.tag_id IS NULL)"
	}
	return func(s *query.Select) {
		s.Where = append(s.Where, cond)
		s.Args = map[string]any{"display_group_ids": ids}
	}
}

func restrictKeywords(rows []query.Row) func(s *query.Select) {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, normalize.Int(r["keyword_id"]))
	}
	return func(s *query.Select) {
		s.Where = append(s.Where, "G.keyword_id = ANY(:display_keyword_ids)")
		s.Args = map[string]any{"display_keyword_ids": ids}
	}
}

// volumeSeries lines up the per-period volumes of each displayed row, in row order.
func volumeSeries(rows []query.Row, volumes []map[string]int64, grouped bool) [][]VolumePoint {
	perPeriod := make([][]int64, len(volumes))
	for i, byKey := range volumes {
		perPeriod[i] = make([]int64, len(rows))
		for n, r := range rows {
			perPeriod[i][n] = byKey[volumeKey(r, grouped)]
		}
	}

	series := normalize.Transpose(perPeriod)
	out := make([][]VolumePoint, len(series))
	for n, values := range series {
		points := make([]VolumePoint, len(values))
		for i, v := range normalize.Volumes(values) {
			points[i] = VolumePoint{SearchVolume: v}
		}
		out[n] = points
	}
	return out
}

// volumesByKey keeps one volume per row key. Repeated keys keep their first volume.
func volumesByKey(rows []query.Row, grouped bool) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		key := volumeKey(r, grouped)
		if _, ok := out[key]; ok {
			continue
		}
		out[key] = normalize.Int(r[colSearchVolume])
	}
	return out
}

// annotatePages attaches the ranking pages of each keyword location when a PageAnnotator is configured.
func annotatePages(ctx context.Context, env widget.Env, siteID int64, rows []VolumeRow) error {
	if env.Pages == nil || len(rows) == 0 {
		return nil
	}

	keys := make([]widget.KeywordLocation, len(rows))
	for i, r := range rows {
		keys[i] = widget.KeywordLocation{KeywordID: r.KeywordID, LocationID: r.LocationID}
	}
	pages, err := env.Pages.Pages(ctx, []int64{siteID}, keys)
	if err != nil {
		return fmt.Errorf("pages: %w", err)
	}
	for i := range rows {
		rows[i].Pages = pages[keys[i]]
	}
	return nil
}
