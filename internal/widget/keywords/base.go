package keywords

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/query"
)

// base carries the metadata every keyword widget declares.
type base struct {
	name     string
	contract widget.Contract
	filters  [][]string
}

func (b base) Name() string              { return b.name }
func (b base) Contract() widget.Contract { return b.contract }

func (b base) Filters() [][]string {
	out := make([][]string, len(b.filters))
	for i, g := range b.filters {
		out[i] = append([]string{}, g...)
	}
	return out
}

// fetch renders, binds and executes s.
func fetch(ctx context.Context, env widget.Env, s query.Select) ([]query.Row, error) {
	f, err := s.Build()
	if err != nil {
		return nil, err
	}
	stmt, err := query.Bind(f)
	if err != nil {
		return nil, err
	}
	return env.Rows.Fetch(ctx, stmt)
}

// eachPeriod runs fn for every period with at most limit running at once.
// The first failure cancels the others and is returned.
func eachPeriod(ctx context.Context, limit int, periods []time.Time, fn func(ctx context.Context, i int, period time.Time) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range periods {
		g.Go(func() error {
			return fn(gctx, i, p)
		})
	}
	return g.Wait()
}

func sortEcho(o query.Order) widget.SortEcho {
	dir := widget.SortAsc
	if o.Desc {
		dir = widget.SortDesc
	}
	return widget.SortEcho{Column: o.Column, Direction: dir}
}
