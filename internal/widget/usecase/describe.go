package usecase

import (
	"context"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/registry"
)

// Describe - Presentation metadata of a widget type
func (uc *implUseCase) Describe(ctx context.Context, sc model.Scope, input widget.DescribeInput) (widget.Description, error) {
	w, ok := uc.registry.Lookup(input.Widget)
	if !ok {
		return widget.Description{}, widget.ErrUnknownWidget
	}
	kind, err := registry.Classify(w)
	if err != nil {
		return widget.Description{}, err
	}

	d := widget.Description{
		Name:      w.Name(),
		Kind:      kind,
		Required:  w.Contract().Required(),
		Permitted: w.Contract().Permitted(),
		Filters:   w.Filters(),
	}
	if t, ok := w.(widget.Table); ok {
		d.SortingColumns = t.SortingColumns()
	}
	return d, nil
}
