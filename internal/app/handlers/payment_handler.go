package handlers

import (
	"net/http"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments services.PaymentServiceInterface
}

func NewPaymentHandler(payments services.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var body models.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	url, err := h.payments.CreateSession(c.Request.Context(), body.ApplicationID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// VerifyPaymentSuccess reconciles a checkout session into the ledger. The
// same session id may arrive more than once; the response then reports the
// existing record instead of writing a second one.
func (h *PaymentHandler) VerifyPaymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "session_id is required"})
		return
	}

	result, err := h.payments.ConfirmPayment(c.Request.Context(), sessionID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
