package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type paymentCallbackRequest struct {
	DriverID  string `json:"driver_id" binding:"required"`
	Plan      string `json:"plan" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

// handlePaymentCallback is hit by the payment provider after a successful
// checkout. It is authenticated with the shared provider key, not a user
// token.
func (s *Server) handlePaymentCallback(c *gin.Context) {
	if s.cfg.PaymentAPIKey == "" || c.GetHeader("X-Api-Key") != s.cfg.PaymentAPIKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	var req paymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.Driver().ActivateSubscription(c.Request.Context(), req.DriverID, req.Plan); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "active"})
}
