package query

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the size of a period bucket.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

const labelLayout = "2006-01-02"

// ParseGranularity accepts day/week/month (and their -ly forms). Blank means Month.
func ParseGranularity(raw string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "month", "monthly":
		return Month, nil
	case "week", "weekly":
		return Week, nil
	case "day", "daily":
		return Day, nil
	}
	return Month, fmt.Errorf("unsupported granularity %q", raw)
}

// Start returns the first day of the period containing t. Weeks start on Monday.
func (g Granularity) Start(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	switch g {
	case Day:
		return day
	case Week:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
}

func (g Granularity) next(start time.Time) time.Time {
	switch g {
	case Day:
		return start.AddDate(0, 0, 1)
	case Week:
		return start.AddDate(0, 0, 7)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// Periods returns the ascending, duplicate free period starts covering [from, to].
func Periods(from, to time.Time, g Granularity) []time.Time {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil
	}

	var out []time.Time
	for p := g.Start(from); !p.After(to); p = g.next(p) {
		out = append(out, p)
	}
	return out
}

// Labels renders periods as [date, date] pairs for the presentation layer.
func Labels(periods []time.Time) [][2]string {
	out := make([][2]string, len(periods))
	for i, p := range periods {
		s := p.Format(labelLayout)
		out[i] = [2]string{s, s}
	}
	return out
}
