package service

import (
	"safedrop/config"
	"safedrop/pkg/jwt"
	"safedrop/pkg/logger"
	"safedrop/pkg/notifier"
	"safedrop/pkg/payment"
	"safedrop/storage"
)

type IServiceManager interface {
	Auth() AuthService
	Driver() DriverService
	Order() OrderService
	Admin() AdminService
	Complaint() ComplaintService
}

type service struct {
	authService      AuthService
	driverService    DriverService
	orderService     OrderService
	adminService     AdminService
	complaintService ComplaintService
}

func New(cfg config.Config, stg storage.IStorage, tokens *jwt.Manager, pay *payment.Client, notify notifier.INotifier, log logger.ILogger) IServiceManager {
	return &service{
		authService:      NewAuthService(cfg, stg, tokens, notify, log),
		driverService:    NewDriverService(stg, pay, log),
		orderService:     NewOrderService(stg, notify, log),
		adminService:     NewAdminService(stg, log),
		complaintService: NewComplaintService(stg, notify, log),
	}
}

func (s *service) Auth() AuthService           { return s.authService }
func (s *service) Driver() DriverService       { return s.driverService }
func (s *service) Order() OrderService         { return s.orderService }
func (s *service) Admin() AdminService         { return s.adminService }
func (s *service) Complaint() ComplaintService { return s.complaintService }
