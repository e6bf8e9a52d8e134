package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobcal-web/internal/delivery/http/response"
	"go-jobcal-web/pkg/apperror"
	"go-jobcal-web/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details; log server-side and
				// send a generic message.
				logger.Log.Error("unhandled error", "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
