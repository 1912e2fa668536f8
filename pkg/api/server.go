package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"safedrop/config"
	"safedrop/pkg/jwt"
	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/service"
)

type Server struct {
	cfg    config.Config
	svc    service.IServiceManager
	tokens *jwt.Manager
	log    logger.ILogger
	engine *gin.Engine
}

func NewServer(cfg config.Config, svc service.IServiceManager, tokens *jwt.Manager, log logger.ILogger) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	s := &Server{
		cfg:    cfg,
		svc:    svc,
		tokens: tokens,
		log:    log,
		engine: r,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.handleRegisterCustomer)
		auth.POST("/register/driver", s.handleRegisterDriver)
		auth.POST("/login", s.handleLogin)
		auth.POST("/admin/login", s.handleAdminLogin)
	}

	// Provider-facing; authenticated by the provider API key, not a user
	// token.
	api.POST("/payments/callback", s.handlePaymentCallback)

	customer := api.Group("/customer", s.authMiddleware(), s.requireRole(models.UserTypeCustomer))
	{
		customer.POST("/orders", s.handleCreateOrder)
		customer.GET("/orders", s.handleCustomerOrders)
		customer.GET("/orders/:id/tracking", s.handleTrackOrder)
		customer.POST("/orders/:id/confirm", s.handleConfirmFare)
		customer.POST("/orders/:id/cancel", s.handleCancelOrder)
		customer.POST("/complaints", s.handleFileComplaint)
		customer.GET("/complaints", s.handleMyComplaints)
	}

	driver := api.Group("/driver", s.authMiddleware(), s.requireRole(models.UserTypeDriver))
	{
		driver.GET("/status", s.handleDriverGate)
		driver.POST("/reapply", s.handleDriverReapply)
		driver.POST("/availability", s.handleSetAvailability)
		driver.GET("/orders/available", s.handleAvailableOrders)
		driver.GET("/orders", s.handleDriverOrders)
		driver.POST("/orders/:id/accept", s.handleAcceptOrder)
		driver.POST("/orders/:id/status", s.handleAdvanceOrder)
		driver.POST("/orders/:id/complete", s.handleCompleteOrder)
		driver.POST("/location", s.handleRecordLocation)
		driver.GET("/earnings", s.handleEarnings)
		driver.POST("/subscription", s.handleSubscribe)
		driver.POST("/complaints", s.handleFileComplaint)
	}

	admin := api.Group("/admin", s.authMiddleware(), s.requireRole(models.UserTypeAdmin))
	{
		admin.GET("/drivers/pending", s.handlePendingDrivers)
		admin.GET("/drivers", s.handleAllDrivers)
		admin.POST("/drivers/:id/approve", s.handleApproveDriver)
		admin.POST("/drivers/:id/reject", s.handleRejectDriver)
		admin.DELETE("/drivers/rejected", s.handleDeleteRejected)
		admin.GET("/users", s.handleUsers)
		admin.POST("/users/:id/status", s.handleSetUserStatus)
		admin.GET("/complaints", s.handleComplaints)
		admin.POST("/complaints/:id/resolve", s.handleResolveComplaint)
		admin.GET("/finance/summary", s.handleFinancialSummary)
		admin.GET("/settings", s.handleSettings)
		admin.PUT("/settings/:key", s.handleUpdateSetting)
	}
}

func (s *Server) Run(port int) error {
	s.log.Info("HTTP server starting", logger.Int("port", port))
	return s.engine.Run(fmt.Sprintf(":%d", port))
}
