package service

import (
	"context"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/storage"
)

type AdminService interface {
	PendingDrivers(ctx context.Context) ([]*models.DriverApplication, error)
	AllDrivers(ctx context.Context) ([]*models.DriverApplication, error)
	ApproveDriver(ctx context.Context, driverID string) error
	RejectDriver(ctx context.Context, driverID, reason string) (*models.Driver, error)
	DeleteRejectedApplications(ctx context.Context) (int64, error)
	Users(ctx context.Context) ([]*models.Profile, error)
	SetUserStatus(ctx context.Context, profileID, status string) error
	Complaints(ctx context.Context, status string) ([]*models.Complaint, error)
	ResolveComplaint(ctx context.Context, complaintID, resolution string) error
	FinancialSummary(ctx context.Context) (*models.PlatformSummary, error)
	Settings(ctx context.Context) ([]*models.SystemSetting, error)
	UpdateSetting(ctx context.Context, key, value string) error
}

type adminService struct {
	profiles   storage.IProfileStorage
	drivers    storage.IDriverStorage
	complaints storage.IComplaintStorage
	finance    storage.IFinanceStorage
	settings   storage.ISettingsStorage
	log        logger.ILogger
}

func NewAdminService(stg storage.IStorage, log logger.ILogger) AdminService {
	return &adminService{
		profiles:   stg.Profile(),
		drivers:    stg.Driver(),
		complaints: stg.Complaint(),
		finance:    stg.Finance(),
		settings:   stg.Settings(),
		log:        log,
	}
}

func (s *adminService) PendingDrivers(ctx context.Context) ([]*models.DriverApplication, error) {
	return s.drivers.GetPending(ctx)
}

func (s *adminService) AllDrivers(ctx context.Context) ([]*models.DriverApplication, error) {
	return s.drivers.GetAll(ctx)
}

func (s *adminService) ApproveDriver(ctx context.Context, driverID string) error {
	ok, err := s.drivers.Approve(ctx, driverID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	s.log.Info("driver approved", logger.String("profile_id", driverID))
	return nil
}

// RejectDriver returns the resulting row so the caller can see whether the
// application froze on this rejection.
func (s *adminService) RejectDriver(ctx context.Context, driverID, reason string) (*models.Driver, error) {
	d, err := s.drivers.Reject(ctx, driverID, reason)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrInvalidTransition
	}
	s.log.Info("driver rejected",
		logger.String("profile_id", driverID),
		logger.String("status", d.Status),
		logger.Int("rejection_count", d.RejectionCount),
	)
	return d, nil
}

func (s *adminService) DeleteRejectedApplications(ctx context.Context) (int64, error) {
	n, err := s.drivers.DeleteRejected(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("rejected applications deleted", logger.Int64("count", n))
	return n, nil
}

func (s *adminService) Users(ctx context.Context) ([]*models.Profile, error) {
	return s.profiles.GetAll(ctx)
}

func (s *adminService) SetUserStatus(ctx context.Context, profileID, status string) error {
	switch status {
	case models.ProfileActive, models.ProfileSuspended, models.ProfileBanned:
	default:
		return ErrInvalidTransition
	}
	if err := s.profiles.UpdateStatus(ctx, profileID, status); err != nil {
		return err
	}
	s.log.Info("user status changed",
		logger.String("profile_id", profileID),
		logger.String("status", status),
	)
	return nil
}

func (s *adminService) Complaints(ctx context.Context, status string) ([]*models.Complaint, error) {
	return s.complaints.GetAll(ctx, status)
}

func (s *adminService) ResolveComplaint(ctx context.Context, complaintID, resolution string) error {
	ok, err := s.complaints.Resolve(ctx, complaintID, resolution)
	if err != nil {
		return err
	}
	if !ok {
		return ErrComplaintNotPending
	}
	return nil
}

func (s *adminService) FinancialSummary(ctx context.Context) (*models.PlatformSummary, error) {
	return s.finance.PlatformSummary(ctx)
}

func (s *adminService) Settings(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.settings.GetAll(ctx)
}

func (s *adminService) UpdateSetting(ctx context.Context, key, value string) error {
	return s.settings.Upsert(ctx, key, value)
}
