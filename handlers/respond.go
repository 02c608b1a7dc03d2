package handlers

import (
	"net/http"

	"github.com/EternalGerms/trampoaqui-sub001/services/request"
	"github.com/EternalGerms/trampoaqui-sub001/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// actorID returns the caller ID placed in the context by the auth middleware.
func actorID(c *gin.Context) string {
	if v, exists := c.Get("actorID"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func statusForCode(code string) int {
	switch code {
	case request.CodeValidation:
		return http.StatusBadRequest
	case request.CodeForbidden:
		return http.StatusForbidden
	case request.CodeNotFound:
		return http.StatusNotFound
	case request.CodeConflict, request.CodeStaleNegotiation, request.CodeAlreadyConfirmed, review.CodeAlreadyReviewed:
		return http.StatusConflict
	case request.CodeInvalidState, request.CodeInvalidTransition, request.CodeNotEligible,
		request.CodePaymentNotSelected, request.CodeInvalidDayIndex:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeRequestError maps a request-service failure to an HTTP response.
func writeRequestError(c *gin.Context, logger *zap.Logger, err error) {
	code := request.ErrorCode(err)
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		logger.Error("request operation failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// writeReviewError maps a review-service failure to an HTTP response.
func writeReviewError(c *gin.Context, logger *zap.Logger, err error) {
	code := review.ErrorCode(err)
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		logger.Error("review operation failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
