package middleware

import (
	"context"

	"widget-srv/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// RequestID attaches a request id to the context so every log line of the request carries it.
// A client-supplied id is kept.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), log.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, id)

		c.Next()
	}
}
