package widget

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"

	"widget-srv/internal/model"
	"widget-srv/internal/widget/query"
	"widget-srv/pkg/paginator"
)

// requestForm is the typed view of Params, filled by gin's form mapping.
type requestForm struct {
	From               time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To                 time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Granularity        string    `form:"granularity"`
	Limit              int64     `form:"limit"`
	Offset             int64     `form:"offset"`
	SortCol            string    `form:"sort_col"`
	SortDir            string    `form:"sort_dir"`
	Grouped            bool      `form:"grouped"`
	ExportAllRows      bool      `form:"export_all_rows"`
	SearchString       string    `form:"search_string"`
	KeywordTagIDs      []int64   `form:"keyword_tag_ids"`
	KeywordTagLogic    string    `form:"keyword_tag_ids_logics"`
	ConversionEventIDs []int64   `form:"only_conversion_event_ids"`
	LocationIDs        []int64   `form:"location_ids"`
	Ranked             bool      `form:"ranked"`
	SerpPropertyIDs    []int64   `form:"serp_property_ids"`
	CompetitorTagIDs   []int64   `form:"competitor_tag_ids"`
	KeywordID          int64     `form:"keyword_id"`
}

var (
	listParams = map[string]bool{
		ParamKeywordTagIDs:          true,
		ParamOnlyConversionEventIDs: true,
		ParamLocationIDs:            true,
		ParamSerpPropertyIDs:        true,
		ParamCompetitorTagIDs:       true,
	}
	flagParams = map[string]bool{
		ParamGrouped:       true,
		ParamExportAllRows: true,
		ParamRanked:        true,
	}
	invalidReasons = map[string]string{
		ParamFrom:      "expected YYYY-MM-DD",
		ParamTo:        "expected YYYY-MM-DD",
		ParamLimit:     "expected an integer",
		ParamOffset:    "expected an integer",
		ParamKeywordID: "expected an integer",
	}
)

// ParseRequest turns validated params into a typed Request for rc.
// Every unparsable parameter is reported at once.
func ParseRequest(p Params, rc model.ReportContext) (Request, error) {
	verr := &ValidationError{}
	form := bindForm(p, verr)

	if !form.From.IsZero() && !form.To.IsZero() && form.From.After(form.To) {
		verr.invalid(ParamFrom, "must not be after to")
	}

	g, err := query.ParseGranularity(form.Granularity)
	if err != nil {
		verr.invalid(ParamGranularity, err.Error())
	}

	page := paginator.PaginateQuery{Limit: form.Limit, Offset: form.Offset}
	if err := page.Validate(); err != nil {
		switch {
		case errors.Is(err, paginator.ErrLimitOutOfRange):
			verr.invalid(ParamLimit, fmt.Sprintf("must be between 0 and %d", paginator.MaxLimit))
		case errors.Is(err, paginator.ErrNegativeOffset):
			verr.invalid(ParamOffset, "must not be negative")
		}
	}

	if !verr.empty() {
		return Request{}, verr
	}

	return Request{
		Context:     rc,
		From:        form.From,
		To:          form.To,
		Granularity: g,
		Page:        page,
		Sort: Sort{
			Column:    form.SortCol,
			Direction: strings.ToLower(form.SortDir),
		},
		Grouped:       form.Grouped,
		ExportAllRows: form.ExportAllRows,
		Filters: Filters{
			KeywordTagIDs:      form.KeywordTagIDs,
			KeywordTagLogic:    tagLogic(form.KeywordTagLogic),
			LocationIDs:        form.LocationIDs,
			SearchString:       form.SearchString,
			ConversionEventIDs: form.ConversionEventIDs,
			Ranked:             form.Ranked,
			SerpPropertyIDs:    form.SerpPropertyIDs,
			CompetitorTagIDs:   form.CompetitorTagIDs,
			KeywordID:          form.KeywordID,
		},
	}, nil
}

// bindForm maps one key at a time so a bad value is reported against its own field.
func bindForm(p Params, verr *ValidationError) requestForm {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var form requestForm
	for _, key := range keys {
		vals := formValues(key, p[key])
		if len(vals) == 0 {
			continue
		}
		if err := binding.MapFormWithTag(&form, map[string][]string{key: vals}, "form"); err != nil {
			verr.invalid(key, invalidReason(key))
		}
	}
	return form
}

func formValues(key, raw string) []string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return nil
	case listParams[key]:
		var vals []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				vals = append(vals, part)
			}
		}
		return vals
	case flagParams[key]:
		return []string{fmt.Sprint(truthy(raw))}
	}
	return []string{raw}
}

func invalidReason(key string) string {
	if listParams[key] {
		return "expected a comma separated list of ids"
	}
	if r, ok := invalidReasons[key]; ok {
		return r
	}
	return "invalid value"
}

func truthy(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "t", "yes", "on":
		return true
	}
	return false
}

func tagLogic(raw string) string {
	if strings.ToLower(raw) == TagLogicAll {
		return TagLogicAll
	}
	return TagLogicAny
}
