package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"safedrop/pkg/logger"
	"safedrop/service"
)

// writeError maps service sentinels to HTTP statuses. Anything unmapped is
// a 500 with a generic body; the real error only goes to the log.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrAccountBlocked),
		errors.Is(err, service.ErrUnknownUserType),
		errors.Is(err, service.ErrDriverNotApproved),
		errors.Is(err, service.ErrNotOrderOwner):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrSubscriptionNeeded):
		// The paywall: the client opens the subscription modal on 402.
		status = http.StatusPaymentRequired
	case errors.Is(err, service.ErrDriverFrozen),
		errors.Is(err, service.ErrReapplyLimit):
		status = http.StatusLocked
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrOrderTaken),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrCancelNotAllowed),
		errors.Is(err, service.ErrComplaintNotPending):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidPlan):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrDriverNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			logger.String("path", c.FullPath()),
			logger.Error(err),
		)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
