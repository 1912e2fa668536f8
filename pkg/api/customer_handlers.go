package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safedrop/service"
)

type createOrderRequest struct {
	Pickup      string  `json:"pickup_address" binding:"required"`
	Dropoff     string  `json:"dropoff_address" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := s.svc.Order().Create(c.Request.Context(), service.CreateOrderInput{
		CustomerID:  profileID(c),
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (s *Server) handleCustomerOrders(c *gin.Context) {
	orders, err := s.svc.Order().CustomerOrders(c.Request.Context(), profileID(c), c.Query("status"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) handleTrackOrder(c *gin.Context) {
	t, err := s.svc.Order().Track(c.Request.Context(), c.Param("id"), profileID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

type confirmFareRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

func (s *Server) handleConfirmFare(c *gin.Context) {
	var req confirmFareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.Order().ConfirmFare(c.Request.Context(), c.Param("id"), profileID(c), req.Price); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "available"})
}

func (s *Server) handleCancelOrder(c *gin.Context) {
	if err := s.svc.Order().Cancel(c.Request.Context(), c.Param("id"), profileID(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

type complaintRequest struct {
	OrderID *string `json:"order_id"`
	Subject string  `json:"subject" binding:"required"`
	Body    string  `json:"body"`
}

func (s *Server) handleFileComplaint(c *gin.Context) {
	var req complaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	complaint, err := s.svc.Complaint().File(c.Request.Context(), profileID(c), req.OrderID, req.Subject, req.Body)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

func (s *Server) handleMyComplaints(c *gin.Context) {
	complaints, err := s.svc.Complaint().Mine(c.Request.Context(), profileID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}
