package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body for failures that escape the handlers.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler recovers panics anywhere in the request pipeline and answers
// with a structured 500 instead of a dropped connection. Expected failures
// never reach here; the handlers map those through their own error codes.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("panic in request pipeline",
					zap.Any("error", err),
					zap.String("path", c.FullPath()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "internal error",
					Details: "The request could not be processed. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}
