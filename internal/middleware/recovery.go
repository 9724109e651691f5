package middleware

import (
	"runtime/debug"

	"widget-srv/pkg/log"
	"widget-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery recovers from panics, logs them and answers with a 500.
func Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "Panic recovered: %v | Method: %s | Path: %s\n%s",
					err, c.Request.Method, c.Request.URL.Path, debug.Stack())

				response.PanicError(c)
			}
		}()
		c.Next()
	}
}
