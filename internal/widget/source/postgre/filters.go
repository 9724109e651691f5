package postgre

import (
	"strings"

	"widget-srv/internal/widget/source"
)

// keywordConditions returns the predicates narrowing alias (a core.keywords row) to opts.
// Placeholder names are shared by every keyword-scoped fragment; their values only depend on opts.
func keywordConditions(alias string, opts source.Options, args map[string]any) []string {
	conds := []string{
		alias + ".site_id = :site_id",
		alias + ".deleted_at IS NULL",
	}
	args["site_id"] = opts.SiteID

	if s := strings.TrimSpace(opts.SearchString); s != "" {
		conds = append(conds, alias+".keyword_name ILIKE :keyword_search")
		args["keyword_search"] = "%" + escapeLike(s) + "%"
	}
	if len(opts.LocationIDs) > 0 {
		conds = append(conds, alias+".location_id = ANY(:location_ids)")
		args["location_ids"] = opts.LocationIDs
	}
	if opts.KeywordID > 0 {
		conds = append(conds, alias+".keyword_id = :keyword_id")
		args["keyword_id"] = opts.KeywordID
	}
	if len(opts.KeywordTagIDs) > 0 {
		sub := "SELECT KTG.keyword_id FROM core.keyword_taggings KTG WHERE KTG.keyword_tag_id = ANY(:keyword_tag_ids)"
		if opts.KeywordTagLogic == "and" {
			sub += " GROUP BY KTG.keyword_id HAVING COUNT(DISTINCT KTG.keyword_tag_id) = :keyword_tag_count"
			args["keyword_tag_count"] = int64(len(opts.KeywordTagIDs))
		}
		conds = append(conds, alias+".keyword_id IN ("+sub+")")
		args["keyword_tag_ids"] = opts.KeywordTagIDs
	}
	if len(opts.ConversionEventIDs) > 0 {
		conds = append(conds, alias+".keyword_id IN (SELECT CEK.keyword_id FROM core.conversion_event_keywords CEK WHERE CEK.conversion_event_id = ANY(:conversion_event_ids))")
		args["conversion_event_ids"] = opts.ConversionEventIDs
	}
	return conds
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
