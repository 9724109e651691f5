package http

import (
	"widget-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1/widgets")
	api.Use(mw.Auth())
	{
		api.GET("/data", h.Render)
		api.GET("/describe", h.Describe)
	}
}
