package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safedrop/service"
)

func (s *Server) handleDriverGate(c *gin.Context) {
	gate, err := s.svc.Driver().Gate(c.Request.Context(), profileID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gate)
}

type reapplyRequest struct {
	VehicleMake   string `json:"vehicle_make" binding:"required"`
	VehicleModel  string `json:"vehicle_model" binding:"required"`
	VehiclePlate  string `json:"vehicle_plate" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
}

func (s *Server) handleDriverReapply(c *gin.Context) {
	var req reapplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gate, err := s.svc.Driver().Reapply(c.Request.Context(), profileID(c), service.ReapplyInput{
		VehicleMake:   req.VehicleMake,
		VehicleModel:  req.VehicleModel,
		VehiclePlate:  req.VehiclePlate,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gate)
}

type availabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

func (s *Server) handleSetAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := s.svc.Driver().SetAvailability(c.Request.Context(), profileID(c), *req.Available)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleAvailableOrders(c *gin.Context) {
	orders, err := s.svc.Order().Available(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) handleDriverOrders(c *gin.Context) {
	orders, err := s.svc.Order().DriverOrders(c.Request.Context(), profileID(c), c.Query("status"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) handleAcceptOrder(c *gin.Context) {
	o, err := s.svc.Order().Accept(c.Request.Context(), c.Param("id"), profileID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type advanceRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleAdvanceOrder(c *gin.Context) {
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.Order().Advance(c.Request.Context(), c.Param("id"), profileID(c), req.Status); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (s *Server) handleCompleteOrder(c *gin.Context) {
	o, err := s.svc.Order().Complete(c.Request.Context(), c.Param("id"), profileID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type locationRequest struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

func (s *Server) handleRecordLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.Driver().RecordLocation(c.Request.Context(), profileID(c), req.Lat, req.Lng); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleEarnings(c *gin.Context) {
	earnings, err := s.svc.Driver().Earnings(c.Request.Context(), profileID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, earnings)
}

type subscribeRequest struct {
	Plan string `json:"plan" binding:"required"`
}

func (s *Server) handleSubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := s.svc.Driver().Subscribe(c.Request.Context(), profileID(c), req.Plan)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}
