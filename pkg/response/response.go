package response

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"widget-srv/pkg/errors"
)

// OK writes a 200 response wrapping data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	})
}

// Error writes err as a JSON error. HTTPError and ValidationErrors keep their status,
// anything else becomes a 500 without leaking the message.
func Error(c *gin.Context, err error) {
	var httpErr *errors.HTTPError
	if stderrors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	var validationErr *errors.ValidationErrors
	if stderrors.As(err, &validationErr) {
		c.JSON(validationErr.StatusCode(), Resp{
			ErrorCode: validationErr.StatusCode(),
			Message:   validationErr.Message,
			Errors:    validationErr.Fields,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   MessageInternal,
	})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		ErrorCode: http.StatusUnauthorized,
		Message:   MessageUnauthorized,
	})
}

// PanicError writes a 500 response for a recovered panic. The panic value is logged by the
// caller and never sent to the client.
func PanicError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   MessageInternal,
	})
}
