package widget

import (
	"errors"
	"strings"
)

var (
	ErrValidation           = errors.New("widget: invalid parameters")
	ErrUnknownWidget        = errors.New("widget: unknown widget")
	ErrContextNotFound      = errors.New("widget: site or account not found")
	ErrSearchEngineNotFound = errors.New("widget: search engine not found")
	ErrQuotaExceeded        = errors.New("widget: daily quota exceeded")
	ErrConfiguration        = errors.New("widget: widget satisfies no known capability")
)

// FieldError is a parameter that was present but could not be parsed.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists missing required parameters and unparsable ones.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Missing []string
	Invalid []FieldError
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	for _, f := range e.Invalid {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

func (e *ValidationError) invalid(field, reason string) {
	e.Invalid = append(e.Invalid, FieldError{Field: field, Reason: reason})
}
