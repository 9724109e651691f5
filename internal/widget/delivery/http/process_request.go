package http

import (
	"net/url"
	"sort"
	"strings"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const paramWidget = "widget"

func (h *handler) processRenderRequest(c *gin.Context) (renderReq, model.Scope, error) {
	params := flattenQuery(c.Request.URL.Query())

	name := params[paramWidget]
	if name == "" {
		return renderReq{}, model.Scope{}, &widget.ValidationError{Missing: []string{paramWidget}}
	}
	delete(params, paramWidget)

	sc := scope.GetScopeFromContext(c.Request.Context())
	return renderReq{Widget: name, Params: params}, sc, nil
}

func (h *handler) processDescribeRequest(c *gin.Context) (describeReq, model.Scope, error) {
	var req describeReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, model.Scope{}, &widget.ValidationError{Missing: []string{paramWidget}}
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

// flattenQuery turns a query string into widget params. Repeated keys and "key[]" lists
// become one comma separated value, plain "key" values first.
func flattenQuery(q url.Values) widget.Params {
	keys := make([]string, 0, len(q))
	for key := range q {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	params := make(widget.Params, len(q))
	for _, key := range keys {
		values := q[key]
		name := strings.TrimSuffix(key, "[]")
		var kept []string
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			if _, ok := params[name]; !ok {
				params[name] = ""
			}
			continue
		}
		joined := strings.Join(kept, ",")
		if prev := params[name]; prev != "" {
			joined = prev + "," + joined
		}
		params[name] = joined
	}
	return params
}
