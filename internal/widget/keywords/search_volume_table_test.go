package keywords

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/normalize"
	"widget-srv/internal/widget/query"
)

func TestSearchVolumeTable_Ungrouped(t *testing.T) {
	rows := &fakeRows{respond: map[string][]query.Row{
		"2024-03-01": {
			row("keyword_name", "shoes", "mysql_keyword_id", "11", "keyword_id", "1", "location_id", "1",
				"location_name", "Berlin", "search_volume", "100", "total_count", "2"),
			row("keyword_name", "boots", "mysql_keyword_id", "12", "keyword_id", "2", "location_id", "1",
				"search_volume", "0", "total_count", "2"),
		},
		"2024-01-01": {
			row("keyword_id", "1", "location_id", "1", "search_volume", "50"),
			row("keyword_id", "2", "location_id", "2", "search_volume", "70"),
		},
		"2024-02-01": {
			row("keyword_id", "1", "location_id", "1", "search_volume", "60"),
		},
	}}
	env := newEnv(rows)
	env.Pages = fakePages{{KeywordID: 1, LocationID: 1}: {"https://example.com/shoes"}}

	out, err := NewSearchVolumeTable().Table(context.Background(), env, newRequest())
	require.NoError(t, err)

	res, ok := out.Rows.([]VolumeRow)
	require.True(t, ok)
	require.Len(t, res, 2)

	assert.Equal(t, "shoes", res[0].KeywordName)
	assert.Equal(t, normalize.Volume(100), res[0].SearchVolume)
	assert.Equal(t, []VolumePoint{{50}, {60}, {100}}, res[0].SearchVolumeData)
	assert.Equal(t, []string{"https://example.com/shoes"}, res[0].Pages)

	assert.Equal(t, "-", res[1].LocationName)
	assert.Equal(t, []VolumePoint{{0}, {0}, {0}}, res[1].SearchVolumeData)

	require.NotNil(t, out.TotalCount)
	assert.Equal(t, int64(2), *out.TotalCount)
	require.NotNil(t, out.DatesCount)
	assert.Equal(t, 3, *out.DatesCount)
	assert.Equal(t, &widget.SortEcho{Column: "keyword_name", Direction: "asc"}, out.Sort)

	stmts := rows.statements()
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0].Text, `ORDER BY "keyword_name" ASC NULLS LAST`)
	assert.Contains(t, stmts[0].Text, "LIMIT $")
	for _, stmt := range stmts[1:] {
		assert.Contains(t, stmt.Text, "G.keyword_id = ANY($")
		assert.NotContains(t, stmt.Text, "LIMIT")
	}

	b, err := json.Marshal(res[1])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"search_volume":"-"`)
}

func TestSearchVolumeTable_Grouped(t *testing.T) {
	rows := &fakeRows{respond: map[string][]query.Row{
		"2024-03-01": {
			row("group", "Brand", "group_id", "4", "keywords", "3", "search_volume", "900", "total_count", "2"),
			row("keywords", "8", "search_volume", "10", "total_count", "2"),
		},
		"2024-02-01": {
			row("group_id", "4", "search_volume", "800"),
		},
	}}
	req := newRequest()
	req.From = day(2024, 2, 1)
	req.Grouped = true
	req.Sort = widget.Sort{Column: "search_volume", Direction: "desc"}

	out, err := NewSearchVolumeTable().Table(context.Background(), newEnv(rows), req)
	require.NoError(t, err)

	res, ok := out.Rows.([]GroupVolumeRow)
	require.True(t, ok)
	require.Len(t, res, 2)
	assert.Equal(t, "Brand", res[0].Group)
	assert.Equal(t, []VolumePoint{{800}, {900}}, res[0].SearchVolumeData)
	assert.Equal(t, UngroupedName, res[1].Group)
	assert.Equal(t, int64(8), res[1].Keywords)

	stmts := rows.statements()
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0].Text, `ORDER BY "search_volume" DESC NULLS LAST`)
	assert.Contains(t, stmts[1].Text, "OR G.tag_id IS NULL")
}

func TestSearchVolumeTable_SortFallsBackPerLayout(t *testing.T) {
	rows := &fakeRows{}
	req := newRequest()
	req.Grouped = true
	req.Sort = widget.Sort{Column: "location_name", Direction: "desc"}

	out, err := NewSearchVolumeTable().Table(context.Background(), newEnv(rows), req)
	require.NoError(t, err)

	assert.Equal(t, &widget.SortEcho{Column: "group", Direction: "desc"}, out.Sort)
	assert.Contains(t, rows.statements()[0].Text, `ORDER BY "group" DESC NULLS LAST`)
}

func TestSearchVolumeTable_TotalCountStableAcrossPages(t *testing.T) {
	page := func(offset int64) widget.Output {
		rows := &fakeRows{respond: map[string][]query.Row{
			"2024-03-01": {row("keyword_id", "1", "location_id", "1", "total_count", "120")},
		}}
		req := newRequest()
		req.Page.Offset = offset

		out, err := NewSearchVolumeTable().Table(context.Background(), newEnv(rows), req)
		require.NoError(t, err)
		return out
	}

	first, second := page(0), page(10)
	assert.Equal(t, *first.TotalCount, *second.TotalCount)
	assert.Equal(t, int64(12), second.Pagination.TotalPages)
	assert.Equal(t, int64(2), second.Pagination.CurrentPage)
}

func TestSearchVolumeTable_ExportAllRows(t *testing.T) {
	rows := &fakeRows{}
	req := newRequest()
	req.ExportAllRows = true

	_, err := NewSearchVolumeTable().Table(context.Background(), newEnv(rows), req)
	require.NoError(t, err)

	for _, stmt := range rows.statements() {
		assert.False(t, strings.Contains(stmt.Text, "LIMIT"))
	}
}

func TestSearchVolumeTable_Metadata(t *testing.T) {
	w := NewSearchVolumeTable()

	assert.Equal(t, "keywords/search_volume_table", w.Name())
	assert.Equal(t, []string{"site", "search_engine", "from", "to"}, w.Contract().Required())
	assert.Equal(t, []string{"keyword_name", "group", "search_volume"}, w.SortingColumns())
	assert.Equal(t, []string{"granularity", "search_engine", "grouped"}, w.Filters()[1])
}
