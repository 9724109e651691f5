package keywords

import (
	"context"
	"sync"
	"time"

	"github.com/aarondl/null/v8"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/query"
	"widget-srv/internal/widget/source/postgre"
	"widget-srv/pkg/paginator"
)

// fakeRows answers statements by the first date argument found in respond.
type fakeRows struct {
	mu      sync.Mutex
	stmts   []query.Statement
	respond map[string][]query.Row
	err     map[string]error
}

func (f *fakeRows) Fetch(_ context.Context, stmt query.Statement) ([]query.Row, error) {
	f.mu.Lock()
	f.stmts = append(f.stmts, stmt)
	f.mu.Unlock()

	for _, a := range stmt.Args {
		s, ok := a.(string)
		if !ok {
			continue
		}
		if err, ok := f.err[s]; ok {
			return nil, err
		}
		if rows, ok := f.respond[s]; ok {
			return clone(rows), nil
		}
	}
	return nil, nil
}

func (f *fakeRows) statements() []query.Statement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]query.Statement{}, f.stmts...)
}

func clone(rows []query.Row) []query.Row {
	out := make([]query.Row, len(rows))
	for i, r := range rows {
		c := make(query.Row, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}

type fakeRankings struct {
	last time.Time
	ok   bool
}

func (f fakeRankings) LastRankingDate(context.Context, int64, int64, time.Time) (time.Time, bool, error) {
	return f.last, f.ok, nil
}

type fakePages map[widget.KeywordLocation][]string

func (f fakePages) Pages(context.Context, []int64, []widget.KeywordLocation) (map[widget.KeywordLocation][]string, error) {
	return f, nil
}

func row(kv ...string) query.Row {
	r := query.Row{}
	for i := 0; i+1 < len(kv); i += 2 {
		r[kv[i]] = null.StringFrom(kv[i+1])
	}
	return r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newEnv(rows widget.RowFetcher) widget.Env {
	return widget.Env{
		Rows:              rows,
		Sources:           postgre.New(),
		PeriodConcurrency: 2,
	}
}

func newRequest() widget.Request {
	return widget.Request{
		Context: model.ReportContext{
			Kind:         model.ContextKindSite,
			Site:         &model.Site{ID: 7, CountryCode: "us"},
			SearchEngine: &model.SearchEngine{ID: 3},
		},
		From:        day(2024, 1, 15),
		To:          day(2024, 3, 10),
		Granularity: query.Month,
		Filters:     widget.Filters{KeywordTagLogic: widget.TagLogicAny},
		Page:        paginator.PaginateQuery{Limit: 10},
	}
}
