package usecase

import (
	"context"
	"errors"
	"fmt"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/registry"
)

// Render - Produce the data of one widget
// Flow: resolve widget → validate params → load context → parse request → quota → widget data
func (uc *implUseCase) Render(ctx context.Context, sc model.Scope, input widget.RenderInput) (widget.Output, error) {
	w, ok := uc.registry.Lookup(input.Widget)
	if !ok {
		return widget.Output{}, widget.ErrUnknownWidget
	}
	kind, err := registry.Classify(w)
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.Render: %s is not renderable: %v", w.Name(), err)
		return widget.Output{}, err
	}

	params, err := w.Contract().Validate(input.Params)
	if err != nil {
		return widget.Output{}, err
	}

	rc, err := uc.loadContext(ctx, params)
	if err != nil {
		return widget.Output{}, err
	}

	req, err := widget.ParseRequest(params, rc)
	if err != nil {
		return widget.Output{}, err
	}

	if err := uc.checkQuota(ctx, w, rc); err != nil {
		return widget.Output{}, err
	}

	env := uc.env(w, rc)
	var out widget.Output
	switch kind {
	case widget.KindTable:
		out, err = w.(widget.Table).Table(ctx, env, req)
	case widget.KindChart:
		out, err = w.(widget.Chart).Chart(ctx, env, req)
	case widget.KindCustom:
		out, err = w.(widget.Custom).Custom(ctx, env, req)
	case widget.KindStatic:
		out = w.(widget.Static).Static(req)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			uc.l.Errorf(ctx, "widget.usecase.Render: %s for %s failed: %v", w.Name(), rc.Key(), err)
		}
		return widget.Output{}, fmt.Errorf("%s: %w", w.Name(), err)
	}

	uc.l.Debugf(ctx, "widget.usecase.Render: %s for %s rendered by user %s", w.Name(), rc.Key(), sc.UserID)
	return out, nil
}

func (uc *implUseCase) env(w widget.Widget, rc model.ReportContext) widget.Env {
	return widget.Env{
		Rows:              &cachedFetcher{uc: uc, widget: w.Name(), rc: rc},
		Sources:           uc.sources,
		Rankings:          uc.pgRepo,
		Pages:             uc.pgRepo,
		PeriodConcurrency: uc.cfg.PeriodConcurrency,
	}
}
