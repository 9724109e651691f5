package http

import (
	"errors"

	"widget-srv/internal/widget"
	pkgErrors "widget-srv/pkg/errors"
)

var (
	errUnknownWidget = pkgErrors.NewHTTPError(
		404, "Unknown widget",
	)
	errContextNotFound = pkgErrors.NewHTTPError(
		404, "Site or account not found",
	)
	errSearchEngineNotFound = pkgErrors.NewHTTPError(
		404, "Search engine not found",
	)
	errQuotaExceeded = pkgErrors.NewHTTPError(
		429, "Daily widget quota exceeded",
	)
	errInvalidParams = pkgErrors.NewHTTPError(
		400, "Invalid widget parameters",
	)
)

func (h *handler) mapError(err error) error {
	var verr *widget.ValidationError
	switch {
	case errors.As(err, &verr):
		return newValidationErrors(verr)
	case errors.Is(err, widget.ErrValidation):
		return errInvalidParams
	case errors.Is(err, widget.ErrUnknownWidget):
		return errUnknownWidget
	case errors.Is(err, widget.ErrContextNotFound):
		return errContextNotFound
	case errors.Is(err, widget.ErrSearchEngineNotFound):
		return errSearchEngineNotFound
	case errors.Is(err, widget.ErrQuotaExceeded):
		return errQuotaExceeded
	default:
		panic(err)
	}
}

func newValidationErrors(verr *widget.ValidationError) *pkgErrors.ValidationErrors {
	fields := make([]pkgErrors.ValidationError, 0, len(verr.Missing)+len(verr.Invalid))
	for _, name := range verr.Missing {
		fields = append(fields, pkgErrors.ValidationError{Field: name, Message: "is required"})
	}
	for _, f := range verr.Invalid {
		fields = append(fields, pkgErrors.ValidationError{Field: f.Field, Message: f.Reason})
	}
	return &pkgErrors.ValidationErrors{
		Message: errInvalidParams.Message,
		Fields:  fields,
	}
}
