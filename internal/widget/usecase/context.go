package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/repository"
)

// loadContext resolves the site or account the widget runs for, and the search engine when named.
func (uc *implUseCase) loadContext(ctx context.Context, p widget.Params) (model.ReportContext, error) {
	var rc model.ReportContext

	switch {
	case p.Present(widget.ParamSite):
		id, err := parseID(p, widget.ParamSite)
		if err != nil {
			return rc, err
		}
		site, err := uc.pgRepo.GetSite(ctx, id)
		if err != nil {
			return rc, notFound(err, widget.ErrContextNotFound)
		}
		rc.Kind, rc.Site = model.ContextKindSite, &site
	case p.Present(widget.ParamAccount):
		id, err := parseID(p, widget.ParamAccount)
		if err != nil {
			return rc, err
		}
		acc, err := uc.pgRepo.GetAccount(ctx, id)
		if err != nil {
			return rc, notFound(err, widget.ErrContextNotFound)
		}
		rc.Kind, rc.Account = model.ContextKindAccount, &acc
	default:
		return rc, &widget.ValidationError{Missing: []string{widget.ParamSite}}
	}

	if p.Present(widget.ParamSearchEngine) {
		id, err := parseID(p, widget.ParamSearchEngine)
		if err != nil {
			return rc, err
		}
		se, err := uc.pgRepo.GetSearchEngine(ctx, id)
		if err != nil {
			return rc, notFound(err, widget.ErrSearchEngineNotFound)
		}
		rc.SearchEngine = &se
	}

	return rc, nil
}

func parseID(p widget.Params, key string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(p[key]), 10, 64)
	if err != nil || id <= 0 {
		return 0, &widget.ValidationError{Invalid: []widget.FieldError{{Field: key, Reason: "expected a positive id"}}}
	}
	return id, nil
}

func notFound(err, domainErr error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domainErr
	}
	return err
}
