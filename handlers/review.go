package handlers

import (
	"net/http"

	"github.com/EternalGerms/trampoaqui-sub001/models"
	"github.com/EternalGerms/trampoaqui-sub001/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes the review gate over HTTP.
type ReviewHandler struct {
	Service review.ReviewService
	Logger  *zap.Logger
}

// NewReviewHandler builds a ReviewHandler.
func NewReviewHandler(svc review.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Service: svc, Logger: logger}
}

// SubmitReview handles POST /api/reviews.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	rev, err := h.Service.SubmitReview(c.Request.Context(), actorID(c), input)
	if err != nil {
		writeReviewError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// CanReview handles GET /api/requests/:id/can-review.
func (h *ReviewHandler) CanReview(c *gin.Context) {
	eligible, err := h.Service.CanReview(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		writeReviewError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"canReview": eligible})
}

// ListForRequest handles GET /api/requests/:id/reviews.
func (h *ReviewHandler) ListForRequest(c *gin.Context) {
	reviews, err := h.Service.ListForRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeReviewError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ListForUser handles GET /api/users/:id/reviews.
func (h *ReviewHandler) ListForUser(c *gin.Context) {
	reviews, err := h.Service.ListForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeReviewError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
