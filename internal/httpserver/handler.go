package httpserver

import (
	"context"

	"widget-srv/internal/middleware"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv HTTPServer) mapHandlers() error {
	ctx := context.Background()
	mw := middleware.New(srv.l, srv.jwtManager)

	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.setupWidgetDomain(ctx, srv.gin.Group(""), mw); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(middleware.RequestID())
	srv.gin.Use(middleware.Recovery(srv.l))
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI and docs
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"), // Use relative path
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}
