package httpserver

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"widget-srv/internal/middleware"
	widgetHTTP "widget-srv/internal/widget/delivery/http"
	"widget-srv/internal/widget/keywords"
	"widget-srv/internal/widget/registry"
	widgetPostgre "widget-srv/internal/widget/repository/postgre"
	widgetRedis "widget-srv/internal/widget/repository/redis"
	sourcePostgre "widget-srv/internal/widget/source/postgre"
	widgetUsecase "widget-srv/internal/widget/usecase"
)

func (srv HTTPServer) setupWidgetDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	reg, err := registry.New(keywords.All()...)
	if err != nil {
		return fmt.Errorf("failed to register widgets: %w", err)
	}

	pgRepo := widgetPostgre.New(srv.postgresDB, srv.l)
	redisRepo := widgetRedis.New(srv.redisClient, srv.l)

	cfg := widgetUsecase.DefaultConfig()
	if srv.widgets.CacheTTL > 0 {
		cfg.CacheTTL = srv.widgets.CacheTTL
	}
	if srv.widgets.PeriodConcurrency > 0 {
		cfg.PeriodConcurrency = srv.widgets.PeriodConcurrency
	}
	cfg.Quotas = srv.widgets.Quotas

	uc := widgetUsecase.New(reg, pgRepo, redisRepo, sourcePostgre.New(), srv.l, cfg)

	handler := widgetHTTP.New(srv.l, uc)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Widget domain registered: %v", reg.Names())
	return nil
}
