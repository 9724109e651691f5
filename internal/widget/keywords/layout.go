package keywords

import (
	"time"

	"widget-srv/internal/widget/query"
	"widget-srv/internal/widget/source"
)

const (
	colGroup        = "group"
	colKeywords     = "keywords"
	colSearchVolume = "search_volume"
	colKeywordName  = "keyword_name"
	colLocationName = "location_name"
	colRank         = "rank"
)

const rankedInAnyProperty = "(_PSAP.site_ranked_in_answerbox = true" +
	" OR _PSAP.site_ranked_in_knowledge_panel = true" +
	" OR _PSAP.site_ranked_in_actions = true" +
	" OR _PSAP.site_ranked_in_reviews = true)"

var (
	groupedSortColumns   = []string{colGroup, colKeywords, colSearchVolume}
	ungroupedSortColumns = []string{colKeywordName, colLocationName, colSearchVolume}
)

// groupedVolume is one row per keyword tag with the tag's keyword count and summed volume for date.
func groupedVolume(set source.Set, opts source.Options, date time.Time) query.Select {
	tags := set.KeywordTags.TableQuery(opts)
	adv := set.KeywordStatistics.JoinTableQuery(opts, date)

	perTag := query.Select{
		Columns: []string{
			"MIN(T.tag_name) AS tag_name",
			"T.tag_id",
			"SUM(ADV.search_volume) AS search_volume",
			"COUNT(DISTINCT(T.keyword_id::text || ':' || T.location_id::text)) AS keywords",
		},
		From: query.Source{Fragment: &tags, Alias: "T"},
		Joins: []query.Join{
			{Kind: query.LeftJoin, Source: query.Source{Fragment: &adv, Alias: "ADV"}, On: "ADV.keyword_id = T.keyword_id"},
		},
		GroupBy: []string{"T.tag_id"},
	}

	return query.Select{
		Columns: []string{
			`MIN(G.tag_name) AS "group"`,
			"G.tag_id AS group_id",
			"MAX(G.keywords) AS keywords",
			"MAX(G.search_volume) AS search_volume",
			query.TotalCountColumn,
		},
		From:    query.Source{Select: &perTag, Alias: "G"},
		GroupBy: []string{"G.tag_id"},
	}
}

// ungroupedVolume is one row per keyword location with its volume for date.
func ungroupedVolume(set source.Set, opts source.Options, date time.Time) query.Select {
	kw := set.Keywords.TableQuery(opts)
	gn := set.LocationNames.TableQuery(opts)
	adv := set.KeywordStatistics.JoinTableQuery(opts, date)

	joined := query.Select{
		Columns: []string{
			"K.keyword_name",
			"K.mysql_keyword_id",
			"K.keyword_id",
			"K.location_id",
			"GN.location_name",
			"ADV.search_volume",
		},
		From: query.Source{Fragment: &kw, Alias: "K"},
		Joins: []query.Join{
			{Kind: query.LeftJoin, Source: query.Source{Fragment: &gn, Alias: "GN"}, Using: []string{"location_id"}},
			{Kind: query.LeftJoin, Source: query.Source{Fragment: &adv, Alias: "ADV"}, On: "ADV.keyword_id = K.keyword_id"},
		},
	}

	return query.Select{
		Columns: []string{
			"MIN(G.keyword_name) AS keyword_name",
			"MIN(G.mysql_keyword_id) AS mysql_keyword_id",
			"G.keyword_id",
			"G.location_id",
			"MIN(G.location_name) AS location_name",
			"MAX(G.search_volume) AS search_volume",
			query.TotalCountColumn,
		},
		From:    query.Source{Select: &joined, Alias: "G"},
		GroupBy: []string{"G.keyword_id", "G.location_id"},
	}
}

// propertyListing is one row per keyword location with its rank on rankingDate and the serp
// properties parsed on propertiesDate. Ranked turns the properties join into an inner join
// restricted to properties the site appears in, dropping keywords without one.
func propertyListing(set source.Set, opts source.Options, searchEngineID int64, rankingDate, propertiesDate time.Time, ranked bool) query.Select {
	kw := set.Keywords.TableQuery(opts)
	gn := set.LocationNames.TableQuery(opts)
	rk := set.Rankings.JoinTableQuery(opts, rankingDate)

	properties := query.Select{
		Columns: []string{"_PSAP.*"},
		From:    query.Source{Table: serpPropertiesTable, Alias: "_PSAP"},
		Where: []string{
			"_PSAP.site_id = :site_id",
			"_PSAP.search_engine_id = :search_engine_id",
			"_PSAP.date = :serp_properties_date",
		},
		Args: map[string]any{
			"site_id":              opts.SiteID,
			"search_engine_id":     searchEngineID,
			"serp_properties_date": propertiesDate.Format("2006-01-02"),
		},
	}
	propertiesJoin := query.LeftJoin
	if ranked {
		properties.Where = append(properties.Where, rankedInAnyProperty)
		propertiesJoin = query.InnerJoin
	}

	return query.Select{
		Columns: []string{
			"K.keyword_name",
			"K.mysql_keyword_id",
			"K.keyword_id",
			"K.location_id",
			"GN.location_name",
			"_PSAP.answerbox_website",
			"_PSAP.knowledge_panel_website",
			"_PSAP.knowledge_panel_actions",
			"_PSAP.knowledge_panel_reviews",
			"R.rank",
			"R.search_engine_id",
			query.TotalCountColumn,
		},
		From: query.Source{Fragment: &kw, Alias: "K"},
		Joins: []query.Join{
			{Kind: query.LeftJoin, Source: query.Source{Fragment: &gn, Alias: "GN"}, Using: []string{"location_id"}},
			{Kind: query.LeftJoin, Source: query.Source{Fragment: &rk, Alias: "R"}, Using: []string{"keyword_id", "location_id"}},
			{Kind: propertiesJoin, Source: query.Source{Select: &properties, Alias: "_PSAP"}, Using: []string{"keyword_id", "location_id"}},
		},
	}
}
