package http

import "widget-srv/internal/widget"

// =====================================================
// Request DTOs
// =====================================================

type renderReq struct {
	Widget string
	Params widget.Params
}

func (r renderReq) toInput() widget.RenderInput {
	return widget.RenderInput{
		Widget: r.Widget,
		Params: r.Params,
	}
}

type describeReq struct {
	Widget string `form:"widget" binding:"required"`
}

func (r describeReq) toInput() widget.DescribeInput {
	return widget.DescribeInput{Widget: r.Widget}
}

// =====================================================
// Response DTOs
// =====================================================

type describeResp struct {
	Name           string     `json:"name"`
	Kind           string     `json:"kind"`
	Required       []string   `json:"required_params"`
	Permitted      []string   `json:"permitted_params"`
	Filters        [][]string `json:"dashboard_widget_filters"`
	SortingColumns []string   `json:"dashboard_widget_sorting_columns"`
}

func (h *handler) newDescribeResp(d widget.Description) describeResp {
	resp := describeResp{
		Name:           d.Name,
		Kind:           string(d.Kind),
		Required:       d.Required,
		Permitted:      d.Permitted,
		Filters:        d.Filters,
		SortingColumns: d.SortingColumns,
	}
	if resp.Filters == nil {
		resp.Filters = [][]string{}
	}
	if resp.SortingColumns == nil {
		resp.SortingColumns = []string{}
	}
	return resp
}
