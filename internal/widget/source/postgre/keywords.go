package postgre

import (
	"strings"
	"time"

	"widget-srv/internal/widget/query"
	"widget-srv/internal/widget/source"
)

type keywords struct{}

func (keywords) TableQuery(opts source.Options) query.Fragment {
	args := map[string]any{}
	conds := keywordConditions("_K", opts, args)
	return query.Fragment{
		SQL: "SELECT _K.keyword_id, _K.mysql_keyword_id, _K.keyword_name, _K.location_id " +
			"FROM core.keywords _K WHERE " + strings.Join(conds, " AND "),
		Args: args,
	}
}

type keywordTags struct{}

// TableQuery yields one row per (tag, keyword location). With tag filters only the selected
// tags are returned; otherwise untagged keywords appear once with null tag columns.
func (keywordTags) TableQuery(opts source.Options) query.Fragment {
	args := map[string]any{}
	conds := keywordConditions("_K", opts, args)
	tagJoin := "LEFT JOIN core.keyword_taggings _KTG ON _KTG.keyword_id = _K.keyword_id " +
		"LEFT JOIN core.keyword_tags _KT ON _KT.id = _KTG.keyword_tag_id AND _KT.deleted_at IS NULL"
	if len(opts.KeywordTagIDs) > 0 {
		tagJoin = "JOIN core.keyword_taggings _KTG ON _KTG.keyword_id = _K.keyword_id " +
			"JOIN core.keyword_tags _KT ON _KT.id = _KTG.keyword_tag_id AND _KT.deleted_at IS NULL"
		conds = append(conds, "_KT.id = ANY(:keyword_tag_ids)")
	}
	return query.Fragment{
		SQL: "SELECT _KT.id AS tag_id, _KT.name AS tag_name, _K.keyword_id, _K.location_id " +
			"FROM core.keywords _K " + tagJoin + " WHERE " + strings.Join(conds, " AND "),
		Args: args,
	}
}

type locationNames struct{}

func (locationNames) TableQuery(opts source.Options) query.Fragment {
	return query.Fragment{
		SQL: "SELECT _GN.location_id, _GN.name AS location_name FROM geonames.names _GN " +
			"WHERE _GN.language = 'en' AND _GN.location_id IN " +
			"(SELECT DISTINCT _KL.location_id FROM core.keywords _KL WHERE _KL.site_id = :site_id)",
		Args: map[string]any{"site_id": opts.SiteID},
	}
}

type keywordStatistics struct{}

// JoinTableQuery reads the monthly search volume of the month containing date.
func (keywordStatistics) JoinTableQuery(opts source.Options, date time.Time) query.Fragment {
	args := map[string]any{
		"site_id":         opts.SiteID,
		"statistics_date": monthStart(date),
	}
	conds := []string{"_ADV.site_id = :site_id", "_ADV.month = :statistics_date"}
	if opts.CountryCode != "" {
		conds = append(conds, "_ADV.country_code = :country_code")
		args["country_code"] = opts.CountryCode
	}
	return query.Fragment{
		SQL: "SELECT _ADV.keyword_id, MAX(_ADV.search_volume) AS search_volume " +
			"FROM adwords.keyword_statistics _ADV WHERE " + strings.Join(conds, " AND ") +
			" GROUP BY _ADV.keyword_id",
		Args: args,
	}
}

type rankings struct{}

func (rankings) JoinTableQuery(opts source.Options, date time.Time) query.Fragment {
	return query.Fragment{
		SQL: "SELECT _R.keyword_id, _R.location_id, _R.rank, _R.search_engine_id FROM ranking.rankings _R " +
			"WHERE _R.site_id = :site_id AND _R.search_engine_id = :search_engine_id AND _R.date = :ranking_date",
		Args: map[string]any{
			"site_id":          opts.SiteID,
			"search_engine_id": opts.SearchEngineID,
			"ranking_date":     date.Format("2006-01-02"),
		},
	}
}

func monthStart(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
