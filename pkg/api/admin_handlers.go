package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePendingDrivers(c *gin.Context) {
	apps, err := s.svc.Admin().PendingDrivers(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (s *Server) handleAllDrivers(c *gin.Context) {
	apps, err := s.svc.Admin().AllDrivers(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (s *Server) handleApproveDriver(c *gin.Context) {
	if err := s.svc.Admin().ApproveDriver(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (s *Server) handleRejectDriver(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := s.svc.Admin().RejectDriver(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleDeleteRejected(c *gin.Context) {
	n, err := s.svc.Admin().DeleteRejectedApplications(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (s *Server) handleUsers(c *gin.Context) {
	users, err := s.svc.Admin().Users(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type userStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleSetUserStatus(c *gin.Context) {
	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.Admin().SetUserStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (s *Server) handleComplaints(c *gin.Context) {
	complaints, err := s.svc.Admin().Complaints(c.Request.Context(), c.Query("status"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

type resolveRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

func (s *Server) handleResolveComplaint(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.Admin().ResolveComplaint(c.Request.Context(), c.Param("id"), req.Resolution); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}

func (s *Server) handleFinancialSummary(c *gin.Context) {
	summary, err := s.svc.Admin().FinancialSummary(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleSettings(c *gin.Context) {
	settings, err := s.svc.Admin().Settings(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type settingRequest struct {
	Value string `json:"value" binding:"required"`
}

func (s *Server) handleUpdateSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.Admin().UpdateSetting(c.Request.Context(), c.Param("key"), req.Value); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "value": req.Value})
}
