package http

import (
	"widget-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Render - Produce the data of one widget
// @Summary Render widget
// @Description Validates the widget parameters, resolves the site or account and returns the widget data.
// @Description Every query parameter other than widget is handed to the widget. Repeated keys and key[] lists are joined with commas.
// @Tags Widgets
// @Produce json
// @Security Bearer
// @Param widget query string true "Widget name, e.g. keywords/search_volume_table"
// @Param site query int false "Site id (site or account is required)"
// @Param account query int false "Account id"
// @Param search_engine query int false "Search engine id"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size, at most 1000"
// @Param offset query int false "Page offset"
// @Param sort_col query string false "Sort column"
// @Param sort_dir query string false "asc or desc"
// @Success 200 {object} response.Resp{data=widget.Output}
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 429 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/widgets/data [get]
func (h *handler) Render(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Process request
	req, sc, err := h.processRenderRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "widget.delivery.http.Render: processRenderRequest failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	// 2. Call UseCase
	output, err := h.uc.Render(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "widget.delivery.http.Render: usecase Render %s failed: %v", req.Widget, err)
		response.Error(c, h.mapError(err))
		return
	}

	// 3. Return response
	response.OK(c, output)
}

// Describe - Presentation metadata of a widget type
// @Summary Describe widget
// @Description Returns the kind, parameter contract, filter groups and sortable columns of a widget.
// @Tags Widgets
// @Produce json
// @Security Bearer
// @Param widget query string true "Widget name"
// @Success 200 {object} response.Resp{data=describeResp}
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/widgets/describe [get]
func (h *handler) Describe(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processDescribeRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "widget.delivery.http.Describe: processDescribeRequest failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	output, err := h.uc.Describe(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "widget.delivery.http.Describe: usecase Describe %s failed: %v", req.Widget, err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDescribeResp(output))
}
