package keywords

import (
	"strconv"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/normalize"
	"widget-srv/internal/widget/query"
)

// UngroupedName is shown for the group of keywords without tags.
const UngroupedName = "Ungrouped"

// VolumePoint is the volume of one period.
type VolumePoint struct {
	SearchVolume normalize.Volume `json:"search_volume"`
}

// VolumeRow is one keyword location of the search volume table.
type VolumeRow struct {
	KeywordName      string           `json:"keyword_name"`
	MysqlKeywordID   int64            `json:"mysql_keyword_id"`
	KeywordID        int64            `json:"keyword_id"`
	LocationID       int64            `json:"location_id"`
	LocationName     string           `json:"location_name"`
	SearchVolume     normalize.Volume `json:"search_volume"`
	SearchVolumeData []VolumePoint    `json:"search_volume_data"`
	Pages            []string         `json:"pages,omitempty"`
}

// GroupVolumeRow is one keyword tag of the search volume table.
type GroupVolumeRow struct {
	Group            string           `json:"group"`
	GroupID          int64            `json:"group_id"`
	Keywords         int64            `json:"keywords"`
	SearchVolume     normalize.Volume `json:"search_volume"`
	SearchVolumeData []VolumePoint    `json:"search_volume_data"`
}

// PropertyRow is one keyword location with the universal search properties the site appears in.
type PropertyRow struct {
	KeywordName           string          `json:"keyword_name"`
	MysqlKeywordID        int64           `json:"mysql_keyword_id"`
	KeywordID             int64           `json:"keyword_id"`
	LocationID            int64           `json:"location_id"`
	LocationName          string          `json:"location_name"`
	AnswerboxWebsite      string          `json:"answerbox_website"`
	KnowledgePanelWebsite string          `json:"knowledge_panel_website"`
	KnowledgePanelActions normalize.Lines `json:"knowledge_panel_actions"`
	KnowledgePanelReviews normalize.Lines `json:"knowledge_panel_reviews"`
	Rank                  normalize.Rank  `json:"rank"`
	SearchEngineID        int64           `json:"search_engine_id"`
}

func keywordLocation(r query.Row) widget.KeywordLocation {
	return widget.KeywordLocation{
		KeywordID:  normalize.Int(r["keyword_id"]),
		LocationID: normalize.Int(r["location_id"]),
	}
}

// volumeKey identifies a row across periods: the tag id when grouped, keyword and location otherwise.
func volumeKey(r query.Row, grouped bool) string {
	if grouped {
		return strconv.FormatInt(normalize.Int(r["group_id"]), 10)
	}
	kl := keywordLocation(r)
	return strconv.FormatInt(kl.KeywordID, 10) + ":" + strconv.FormatInt(kl.LocationID, 10)
}

func newVolumeRow(r query.Row, series []VolumePoint) VolumeRow {
	kl := keywordLocation(r)
	return VolumeRow{
		KeywordName:      normalize.Text(r["keyword_name"]),
		MysqlKeywordID:   normalize.Int(r["mysql_keyword_id"]),
		KeywordID:        kl.KeywordID,
		LocationID:       kl.LocationID,
		LocationName:     normalize.Text(r["location_name"]),
		SearchVolume:     normalize.VolumeOf(r["search_volume"]),
		SearchVolumeData: series,
	}
}

func newGroupVolumeRow(r query.Row, series []VolumePoint) GroupVolumeRow {
	return GroupVolumeRow{
		Group:            normalize.TextOr(r["group"], UngroupedName),
		GroupID:          normalize.Int(r["group_id"]),
		Keywords:         normalize.Int(r["keywords"]),
		SearchVolume:     normalize.VolumeOf(r["search_volume"]),
		SearchVolumeData: series,
	}
}

func newPropertyRow(r query.Row) PropertyRow {
	kl := keywordLocation(r)
	return PropertyRow{
		KeywordName:           normalize.Text(r["keyword_name"]),
		MysqlKeywordID:        normalize.Int(r["mysql_keyword_id"]),
		KeywordID:             kl.KeywordID,
		LocationID:            kl.LocationID,
		LocationName:          normalize.Text(r["location_name"]),
		AnswerboxWebsite:      normalize.Text(r["answerbox_website"]),
		KnowledgePanelWebsite: normalize.Text(r["knowledge_panel_website"]),
		KnowledgePanelActions: normalize.List(r["knowledge_panel_actions"]),
		KnowledgePanelReviews: normalize.List(r["knowledge_panel_reviews"]),
		Rank:                  normalize.RankOf(r["rank"]),
		SearchEngineID:        normalize.Int(r["search_engine_id"]),
	}
}
