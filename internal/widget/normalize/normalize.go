package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"

	"widget-srv/internal/widget/query"
)

// Placeholder is shown for values that are absent.
const Placeholder = "-"

const totalCountKey = "total_count"

// Int parses numeric text, truncating decimals. Null or unparsable text is 0.
func Int(v null.String) int64 {
	if !v.Valid {
		return 0
	}
	s := strings.TrimSpace(v.String)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}

// Text returns v, or Placeholder when it is null or blank.
func Text(v null.String) string {
	return TextOr(v, Placeholder)
}

// TextOr returns v, or fallback when it is null or blank.
func TextOr(v null.String, fallback string) string {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return fallback
	}
	return v.String
}

// ExtractTotal reads total_count from the first row and removes it from every row.
func ExtractTotal(rows []query.Row) int64 {
	if len(rows) == 0 {
		return 0
	}
	total := Int(rows[0][totalCountKey])
	for _, r := range rows {
		delete(r, totalCountKey)
	}
	return total
}

// Transpose turns one slice of values per period into one series per row.
// Rows missing from a period are 0.
func Transpose(periods [][]int64) [][]int64 {
	width := 0
	for _, p := range periods {
		if len(p) > width {
			width = len(p)
		}
	}

	out := make([][]int64, width)
	for i := range out {
		out[i] = make([]int64, len(periods))
		for j, p := range periods {
			if i < len(p) {
				out[i][j] = p[i]
			}
		}
	}
	return out
}
