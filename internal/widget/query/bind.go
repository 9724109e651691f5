package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Bind replaces :name placeholders in f with $n parameters. A name used twice reuses
// its parameter. Casts (::type), quoted literals and quoted identifiers are copied as is.
func Bind(f Fragment) (Statement, error) {
	src := f.SQL
	var b strings.Builder
	b.Grow(len(src))

	positions := make(map[string]int)
	var args []any

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\'' || c == '"':
			end := closingQuote(src, i)
			b.WriteString(src[i:end])
			i = end - 1
		case c == ':' && i+1 < len(src) && src[i+1] == ':':
			b.WriteString("::")
			i++
		case c == ':' && i+1 < len(src) && isIdentStart(src[i+1]):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			name := src[i+1 : j]

			n, ok := positions[name]
			if !ok {
				v, found := f.Args[name]
				if !found {
					return Statement{}, fmt.Errorf("%w: %s", ErrMissingArgument, name)
				}
				args = append(args, bindValue(v))
				n = len(args)
				positions[name] = n
			}
			b.WriteString("$" + strconv.Itoa(n))
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}

	return Statement{Text: b.String(), Args: args}, nil
}

// closingQuote returns the index just past the quote that closes the one at start.
// A doubled quote is an escaped quote.
func closingQuote(src string, start int) int {
	q := src[start]
	for j := start + 1; j < len(src); j++ {
		if src[j] != q {
			continue
		}
		if j+1 < len(src) && src[j+1] == q {
			j++
			continue
		}
		return j + 1
	}
	return len(src)
}

func bindValue(v any) any {
	switch v.(type) {
	case []int64, []string, []bool, []float64:
		return pq.Array(v)
	}
	return v
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
