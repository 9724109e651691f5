package postgre

import "widget-srv/internal/widget/source"

// New returns the providers reading the reporting database.
func New() source.Set {
	return source.Set{
		Keywords:          keywords{},
		KeywordTags:       keywordTags{},
		LocationNames:     locationNames{},
		KeywordStatistics: keywordStatistics{},
		Rankings:          rankings{},
	}
}
