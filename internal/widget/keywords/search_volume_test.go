package keywords

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/query"
)

func TestSearchVolume_Chart(t *testing.T) {
	rows := &fakeRows{respond: map[string][]query.Row{
		"2024-01-01": {row("search_volume", "10"), row("search_volume", "20")},
		"2024-03-01": {row("search_volume", "5")},
	}}

	out, err := NewSearchVolume().Chart(context.Background(), newEnv(rows), newRequest())
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"2024-01-01", "2024-01-01"},
		{"2024-02-01", "2024-02-01"},
		{"2024-03-01", "2024-03-01"},
	}, out.Categories)
	require.Len(t, out.Series, 1)
	assert.Equal(t, widget.Series{Type: "column", Name: "Keywords Search Volume", Data: []int64{30, 0, 5}, Color: "green"}, out.Series[0])
	assert.Nil(t, out.Rows)
	assert.Len(t, rows.statements(), 3)
}

func TestSearchVolume_Chart_GroupedWithTags(t *testing.T) {
	rows := &fakeRows{}
	req := newRequest()
	req.Filters.KeywordTagIDs = []int64{4}

	_, err := NewSearchVolume().Chart(context.Background(), newEnv(rows), req)
	require.NoError(t, err)

	for _, stmt := range rows.statements() {
		assert.Contains(t, stmt.Text, `AS "group"`)
	}
}

func TestSearchVolume_Chart_SourceSite(t *testing.T) {
	rows := &fakeRows{}
	req := newRequest()
	src := int64(99)
	req.Context.Site.SourceSiteID = &src

	_, err := NewSearchVolume().Chart(context.Background(), newEnv(rows), req)
	require.NoError(t, err)

	for _, stmt := range rows.statements() {
		assert.Contains(t, stmt.Args, int64(99))
		assert.NotContains(t, stmt.Args, int64(7))
	}
}

func TestSearchVolume_Chart_PeriodFailureFailsRequest(t *testing.T) {
	boom := errors.New("boom")
	rows := &fakeRows{err: map[string]error{"2024-02-01": boom}}

	_, err := NewSearchVolume().Chart(context.Background(), newEnv(rows), newRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.True(t, strings.Contains(err.Error(), "2024-02-01"))
}
