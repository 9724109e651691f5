package keywords

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widget-srv/internal/widget"
	"widget-srv/internal/widget/query"
)

func TestListUniversalAdditionalProperty_Unranked(t *testing.T) {
	rows := &fakeRows{respond: map[string][]query.Row{
		"2024-03-10": {
			row("keyword_name", "shoes", "keyword_id", "1", "location_id", "1", "rank", "3",
				"answerbox_website", "example.com", "knowledge_panel_actions", "{Call,Directions}", "total_count", "2"),
			row("keyword_name", "boots", "keyword_id", "2", "location_id", "1", "total_count", "2"),
		},
	}}
	env := newEnv(rows)

	out, err := NewListUniversalAdditionalProperty().Table(context.Background(), env, newRequest())
	require.NoError(t, err)

	res, ok := out.Rows.([]PropertyRow)
	require.True(t, ok)
	require.Len(t, res, 2)

	b, err := json.Marshal(res[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"rank":3`)
	assert.Contains(t, string(b), `"answerbox_website":"example.com"`)
	assert.Contains(t, string(b), `"knowledge_panel_actions":"Call\nDirections"`)
	assert.Contains(t, string(b), `"knowledge_panel_reviews":"-"`)

	b, err = json.Marshal(res[1])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"rank":"50+"`)
	assert.Contains(t, string(b), `"answerbox_website":"-"`)
	assert.Contains(t, string(b), `"knowledge_panel_website":"-"`)

	stmt := rows.statements()[0]
	assert.Contains(t, stmt.Text, "    LEFT JOIN (\n")
	assert.NotContains(t, stmt.Text, "site_ranked_in_answerbox")
	assert.Equal(t, int64(2), *out.TotalCount)
}

func TestListUniversalAdditionalProperty_RankedUsesInnerJoin(t *testing.T) {
	rows := &fakeRows{}
	req := newRequest()
	req.Filters.Ranked = true

	_, err := NewListUniversalAdditionalProperty().Table(context.Background(), newEnv(rows), req)
	require.NoError(t, err)

	text := rows.statements()[0].Text
	assert.Contains(t, text, "    JOIN (\n")
	assert.Contains(t, text, "_PSAP.site_ranked_in_answerbox = true OR")
	assert.Contains(t, text, "_PSAP.site_ranked_in_reviews = true)")
}

func TestListUniversalAdditionalProperty_Dates(t *testing.T) {
	tests := []struct {
		name        string
		rankings    fakeRankings
		wantRanking string
	}{
		{name: "rankings read the last ranking date", rankings: fakeRankings{last: day(2024, 3, 8), ok: true}, wantRanking: "2024-03-08"},
		{name: "no ranking date falls back to the window end", rankings: fakeRankings{}, wantRanking: "2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := &fakeRows{}
			env := newEnv(rows)
			env.Rankings = tt.rankings

			_, err := NewListUniversalAdditionalProperty().Table(context.Background(), env, newRequest())
			require.NoError(t, err)

			args := rows.statements()[0].Args
			assert.Contains(t, args, tt.wantRanking)
			// Serp properties are always read on the window end.
			assert.Contains(t, args, "2024-03-10")
		})
	}
}

func TestListUniversalAdditionalProperty_SortAllowList(t *testing.T) {
	rows := &fakeRows{}
	req := newRequest()
	req.Sort = widget.Sort{Column: "rank", Direction: "desc"}

	out, err := NewListUniversalAdditionalProperty().Table(context.Background(), newEnv(rows), req)
	require.NoError(t, err)
	assert.Equal(t, &widget.SortEcho{Column: "rank", Direction: "desc"}, out.Sort)

	req.Sort = widget.Sort{Column: "search_volume"}
	out, err = NewListUniversalAdditionalProperty().Table(context.Background(), newEnv(rows), req)
	require.NoError(t, err)
	assert.Equal(t, &widget.SortEcho{Column: "keyword_name", Direction: "asc"}, out.Sort)
}

func TestListUniversalAdditionalProperty_RequiresSearchEngine(t *testing.T) {
	req := newRequest()
	req.Context.SearchEngine = nil

	_, err := NewListUniversalAdditionalProperty().Table(context.Background(), newEnv(&fakeRows{}), req)
	assert.ErrorIs(t, err, widget.ErrSearchEngineNotFound)
}
