package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/pkg/logger"
)

// ErrorHandler transforms errors attached to the gin context into the
// standard {success, message, data} response envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			if appErr.Code == apperror.CodeRateLimited {
				if retry, ok := appErr.Details["retry_after_seconds"]; ok {
					c.Header("Retry-After", fmt.Sprintf("%v", retry))
				}
			}

			var data any
			if len(appErr.Details) > 0 {
				data = appErr.Details
			}
			c.JSON(appErr.HTTPStatus, gin.H{
				"success": false,
				"message": appErr.Message,
				"data":    data,
			})
			return
		}

		logger.Error(c.Request.Context(), "unhandled error",
			"error", err,
		)

		// Unknown errors surface their text, matching what clients of
		// this API already rely on.
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
			"data":    nil,
		})
	}
}
