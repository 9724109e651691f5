package keywords

import (
	"context"
	"fmt"
	"time"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/normalize"
	"widget-srv/internal/widget/query"
)

const (
	SearchVolumeName = "keywords/search_volume"

	searchVolumeSeriesName = "Keywords Search Volume"
)

// SearchVolume charts the total search volume of the site's keywords per month.
type SearchVolume struct {
	base
}

func NewSearchVolume() SearchVolume {
	return SearchVolume{base{
		name: SearchVolumeName,
		contract: widget.NewContract(
			[]string{widget.ParamSite, widget.ParamFrom, widget.ParamTo},
			widget.ParamKeywordTagIDs,
			widget.ParamKeywordTagIDsLogics,
			widget.ParamOnlyConversionEventIDs,
			widget.ParamSearchString,
			widget.ParamKeywordID,
			widget.ParamReportID,
			widget.ParamAnnotationKindIDs,
			widget.ParamLocationIDs,
			widget.ParamCompetitorTagIDs,
		),
		filters: [][]string{
			{"date_range"},
			{"only_conversion_event_ids", "keyword_tag_ids"},
			{"extended_date_range"},
		},
	}}
}

// Chart sums the volume of every period. With tag filters the per-tag layout is summed instead.
func (w SearchVolume) Chart(ctx context.Context, env widget.Env, req widget.Request) (widget.Output, error) {
	site := req.Context.Site
	if site == nil {
		return widget.Output{}, widget.ErrContextNotFound
	}

	opts := req.SourceOptions(site.StatisticsSiteID())
	grouped := len(req.Filters.KeywordTagIDs) > 0
	periods := query.Periods(req.From, req.To, query.Month)
	sums := make([]int64, len(periods))

	err := eachPeriod(ctx, env.PeriodConcurrency, periods, func(ctx context.Context, i int, period time.Time) error {
		s := ungroupedVolume(env.Sources, opts, period)
		if grouped {
			s = groupedVolume(env.Sources, opts, period)
		}

		rows, err := fetch(ctx, env, s)
		if err != nil {
			return fmt.Errorf("period %s: %w", period.Format("2006-01-02"), err)
		}
		for _, r := range rows {
			sums[i] += normalize.Int(r[colSearchVolume])
		}
		return nil
	})
	if err != nil {
		return widget.Output{}, err
	}

	return widget.Output{
		Categories: query.Labels(periods),
		Series: []widget.Series{{
			Type:  "column",
			Name:  searchVolumeSeriesName,
			Data:  sums,
			Color: "green",
		}},
	}, nil
}
