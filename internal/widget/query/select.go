package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/lib/pq"

	"widget-srv/pkg/paginator"
)

// JoinKind is the SQL join operator.
type JoinKind string

const (
	LeftJoin  JoinKind = "LEFT JOIN"
	InnerJoin JoinKind = "JOIN"
)

// Source is a relation in a FROM or JOIN clause: a trusted table name, a provider
// fragment or a nested Select. Exactly one should be set.
type Source struct {
	Table    string
	Fragment *Fragment
	Select   *Select
	Alias    string
}

// Join attaches a Source on shared columns (Using) or an explicit predicate (On).
type Join struct {
	Kind   JoinKind
	Source Source
	Using  []string
	On     string
}

// Order sorts by one output column. Nulls always sort last.
type Order struct {
	Column string
	Desc   bool
}

// Select is the intermediate representation of a composed query.
// Column, Where and GroupBy expressions are code constants; values go through Args.
type Select struct {
	Columns []string
	From    Source
	Joins   []Join
	Where   []string
	GroupBy []string
	Order   *Order
	Window  paginator.PaginateQuery
	Args    map[string]any
}

// Build renders the tree into one Fragment, merging the args of every nested fragment.
func (s Select) Build() (Fragment, error) {
	args := make(map[string]any)
	text, err := s.render(args, "")
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{SQL: text, Args: args}, nil
}

func (s Select) render(args map[string]any, indent string) (string, error) {
	if err := mergeArgs(args, s.Args); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(indent + "SELECT\n")
	for i, col := range s.Columns {
		b.WriteString(indent + "    " + col)
		if i < len(s.Columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}

	from, err := s.From.render(args, indent)
	if err != nil {
		return "", err
	}
	b.WriteString(indent + "FROM " + from + "\n")

	for _, j := range s.Joins {
		src, err := j.Source.render(args, indent+"    ")
		if err != nil {
			return "", err
		}
		b.WriteString(indent + "    " + string(j.Kind) + " " + src)
		switch {
		case len(j.Using) > 0:
			b.WriteString(" USING (" + strings.Join(j.Using, ", ") + ")")
		case j.On != "":
			b.WriteString(" ON " + j.On)
		}
		b.WriteByte('\n')
	}

	if len(s.Where) > 0 {
		b.WriteString(indent + "WHERE " + strings.Join(s.Where, " AND ") + "\n")
	}
	if len(s.GroupBy) > 0 {
		b.WriteString(indent + "GROUP BY " + strings.Join(s.GroupBy, ", ") + "\n")
	}
	if s.Order != nil {
		b.WriteString(indent + "ORDER BY " + s.Order.String() + "\n")
	}
	if s.Window.Windowed() {
		b.WriteString(indent + "LIMIT :limit OFFSET :offset\n")
		if err := mergeArgs(args, map[string]any{"limit": s.Window.Limit, "offset": s.Window.Offset}); err != nil {
			return "", err
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (src Source) render(args map[string]any, indent string) (string, error) {
	var body string
	switch {
	case src.Table != "":
		return strings.TrimSpace(src.Table + " " + src.Alias), nil
	case src.Fragment != nil:
		if err := mergeArgs(args, src.Fragment.Args); err != nil {
			return "", err
		}
		body = strings.TrimSpace(src.Fragment.SQL)
	case src.Select != nil:
		text, err := src.Select.render(args, indent+"    ")
		if err != nil {
			return "", err
		}
		body = "\n" + text + "\n" + indent
	default:
		return "", ErrEmptySource
	}
	return "(" + body + ") " + src.Alias, nil
}

// String renders the ORDER BY expression with a quoted identifier.
func (o Order) String() string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return pq.QuoteIdentifier(o.Column) + " " + dir + " NULLS LAST"
}

// ResolveOrder checks column against allowed, falling back to def. Only the exact
// direction "desc" sorts descending.
func ResolveOrder(column, direction string, allowed []string, def string) Order {
	col := def
	for _, a := range allowed {
		if a == column {
			col = column
			break
		}
	}
	return Order{Column: col, Desc: direction == "desc"}
}

func mergeArgs(dst, src map[string]any) error {
	for k, v := range src {
		if existing, ok := dst[k]; ok && !reflect.DeepEqual(existing, v) {
			return fmt.Errorf("%w: %s", ErrArgumentConflict, k)
		}
		dst[k] = v
	}
	return nil
}
