package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widget-srv/internal/middleware"
	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/pkg/log"
	"widget-srv/pkg/scope"
)

type fakeManager struct{}

func (fakeManager) Verify(token string) (scope.Payload, error) {
	if token != "good" {
		return scope.Payload{}, errors.New("bad token")
	}
	return scope.Payload{Subject: "u-1"}, nil
}

type fakeUseCase struct {
	renderInput widget.RenderInput
	renderScope model.Scope
	renderErr   error
	describeErr error
}

func (f *fakeUseCase) Render(ctx context.Context, sc model.Scope, input widget.RenderInput) (widget.Output, error) {
	f.renderInput = input
	f.renderScope = sc
	if f.renderErr != nil {
		return widget.Output{}, f.renderErr
	}
	return widget.Output{Series: []widget.Series{{Type: "column", Name: "Keywords Search Volume", Data: []int64{1, 2}}}}, nil
}

func (f *fakeUseCase) Describe(ctx context.Context, sc model.Scope, input widget.DescribeInput) (widget.Description, error) {
	if f.describeErr != nil {
		return widget.Description{}, f.describeErr
	}
	return widget.Description{
		Name:     input.Widget,
		Kind:     widget.KindChart,
		Required: []string{"from", "to"},
		Filters:  [][]string{{"keyword_tag_ids"}},
	}, nil
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func serve(t *testing.T, uc widget.UseCase, target string) (int, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.Recovery(log.NewNop()))
	New(log.NewNop(), uc).RegisterRoutes(r.Group(""), middleware.New(log.NewNop(), fakeManager{}))

	req := httptest.NewRequest(nethttp.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRender(t *testing.T) {
	uc := &fakeUseCase{}
	code, body := serve(t, uc, "/api/v1/widgets/data?widget=keywords/search_volume&site=7&from=2024-01-01&to=2024-03-31&keyword_tag_ids[]=1&keyword_tag_ids[]=2")

	assert.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "keywords/search_volume", uc.renderInput.Widget)
	assert.Equal(t, widget.Params{
		"site":            "7",
		"from":            "2024-01-01",
		"to":              "2024-03-31",
		"keyword_tag_ids": "1,2",
	}, uc.renderInput.Params)
	assert.Equal(t, "u-1", uc.renderScope.UserID)
	assert.JSONEq(t, `{"series":[{"type":"column","name":"Keywords Search Volume","data":[1,2]}]}`, string(body.Data))
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		fields []string
	}{
		{
			name:   "missing widget",
			target: "/api/v1/widgets/data?site=7",
			status: nethttp.StatusBadRequest,
			fields: []string{"widget"},
		},
		{
			name:   "validation",
			target: "/api/v1/widgets/data?widget=w",
			err: &widget.ValidationError{
				Missing: []string{"from"},
				Invalid: []widget.FieldError{{Field: "to", Reason: "must be a date (YYYY-MM-DD)"}},
			},
			status: nethttp.StatusBadRequest,
			fields: []string{"from", "to"},
		},
		{name: "unknown widget", target: "/api/v1/widgets/data?widget=w", err: widget.ErrUnknownWidget, status: nethttp.StatusNotFound},
		{name: "context", target: "/api/v1/widgets/data?widget=w", err: widget.ErrContextNotFound, status: nethttp.StatusNotFound},
		{name: "search engine", target: "/api/v1/widgets/data?widget=w", err: widget.ErrSearchEngineNotFound, status: nethttp.StatusNotFound},
		{name: "quota", target: "/api/v1/widgets/data?widget=w", err: widget.ErrQuotaExceeded, status: nethttp.StatusTooManyRequests},
		{
			name:   "execution failure",
			target: "/api/v1/widgets/data?widget=w",
			err:    fmt.Errorf("w: %w", errors.New("pq: relation does not exist")),
			status: nethttp.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := serve(t, &fakeUseCase{renderErr: tt.err}, tt.target)

			assert.Equal(t, tt.status, code)
			assert.Equal(t, tt.status, body.ErrorCode)
			assert.NotContains(t, body.Message, "pq:")

			var fields []string
			for _, f := range body.Errors {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestDescribe(t *testing.T) {
	code, body := serve(t, &fakeUseCase{}, "/api/v1/widgets/describe?widget="+url.QueryEscape("keywords/search_volume"))

	assert.Equal(t, nethttp.StatusOK, code)
	assert.JSONEq(t, `{
		"name": "keywords/search_volume",
		"kind": "chart",
		"required_params": ["from", "to"],
		"permitted_params": null,
		"dashboard_widget_filters": [["keyword_tag_ids"]],
		"dashboard_widget_sorting_columns": []
	}`, string(body.Data))

	code, _ = serve(t, &fakeUseCase{}, "/api/v1/widgets/describe")
	assert.Equal(t, nethttp.StatusBadRequest, code)

	code, _ = serve(t, &fakeUseCase{describeErr: widget.ErrUnknownWidget}, "/api/v1/widgets/describe?widget=nope")
	assert.Equal(t, nethttp.StatusNotFound, code)
}

func TestFlattenQuery(t *testing.T) {
	q := url.Values{
		"location_ids":   {"1", " 2 "},
		"location_ids[]": {"3"},
		"search_string":  {""},
	}
	p := flattenQuery(q)

	assert.Equal(t, "1,2,3", p["location_ids"])
	v, ok := p["search_string"]
	assert.True(t, ok)
	assert.Empty(t, v)

	for i := 0; i < 20; i++ {
		assert.Equal(t, "5,6", flattenQuery(url.Values{"keyword_tag_ids[]": {"6"}, "keyword_tag_ids": {"5"}})["keyword_tag_ids"])
	}
}
