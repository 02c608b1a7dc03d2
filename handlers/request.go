package handlers

import (
	"net/http"
	"strconv"

	"github.com/EternalGerms/trampoaqui-sub001/models"
	"github.com/EternalGerms/trampoaqui-sub001/services/request"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler exposes the service-request lifecycle over HTTP.
type RequestHandler struct {
	Service request.RequestService
	Logger  *zap.Logger
}

// NewRequestHandler builds a RequestHandler.
func NewRequestHandler(svc request.RequestService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{Service: svc, Logger: logger}
}

// CreateRequest handles POST /api/requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input models.ServiceRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.CreateRequest(c.Request.Context(), actorID(c), input)
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetRequest handles GET /api/requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	view, err := h.Service.GetRequest(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListRequests handles GET /api/requests?role=client|provider.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	role := c.DefaultQuery("role", "client")
	views, err := h.Service.ListRequests(c.Request.Context(), actorID(c), role)
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": views})
}

// UpdateStatus handles PATCH /api/requests/:id/status.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var input models.StatusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), actorID(c), input)
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Propose handles POST /api/requests/:id/negotiations.
func (h *RequestHandler) Propose(c *gin.Context) {
	var input models.NegotiationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.Propose(c.Request.Context(), c.Param("id"), actorID(c), input)
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Respond handles POST /api/requests/:id/negotiations/:negotiationId/respond.
func (h *RequestHandler) Respond(c *gin.Context) {
	var input models.NegotiationResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.Respond(c.Request.Context(),
		c.Param("id"), c.Param("negotiationId"), actorID(c), input.Decision)
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SelectPaymentMethod handles PUT /api/requests/:id/payment-method.
func (h *RequestHandler) SelectPaymentMethod(c *gin.Context) {
	var input models.PaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.SelectPaymentMethod(c.Request.Context(), c.Param("id"), actorID(c), input.Method)
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CompletePayment handles POST /api/requests/:id/payment/complete.
func (h *RequestHandler) CompletePayment(c *gin.Context) {
	view, err := h.Service.CompletePayment(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ConfirmDailySession handles POST /api/requests/:id/days/:day/confirm.
func (h *RequestHandler) ConfirmDailySession(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be an integer"})
		return
	}
	view, err := h.Service.ConfirmDailySession(c.Request.Context(), c.Param("id"), actorID(c), day)
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ConfirmCompletion handles POST /api/requests/:id/complete.
func (h *RequestHandler) ConfirmCompletion(c *gin.Context) {
	view, err := h.Service.ConfirmCompletion(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		writeRequestError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
