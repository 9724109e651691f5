package query

import (
	"errors"

	"github.com/aarondl/null/v8"
)

var (
	ErrMissingArgument  = errors.New("query: missing argument for placeholder")
	ErrArgumentConflict = errors.New("query: argument bound to two different values")
	ErrEmptySource      = errors.New("query: source has no table, fragment or select")
)

// TotalCountColumn attaches the unpaginated result size to every row.
const TotalCountColumn = "COUNT(*) OVER() AS total_count"

// Fragment is SQL text with :name placeholders and the values they bind to.
// Request values only ever travel in Args.
type Fragment struct {
	SQL  string
	Args map[string]any
}

// Statement is a Fragment bound to positional $n parameters, ready for the driver.
type Statement struct {
	Text string
	Args []any
}

// Row is a raw result row keyed by column name. Every value is scanned as text.
type Row map[string]null.String
