package http

import (
	"widget-srv/internal/middleware"
	"widget-srv/internal/widget"
	"widget-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

// Handler - Interface for the widget HTTP handler
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l  log.Logger
	uc widget.UseCase
}

// New - Factory
func New(l log.Logger, uc widget.UseCase) Handler {
	return &handler{l: l, uc: uc}
}
