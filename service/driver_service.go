package service

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cast"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/pkg/payment"
	"safedrop/storage"
)

// GateInfo is the driver status gate: exactly one view plus whatever that
// view needs to render.
type GateInfo struct {
	View            string         `json:"view"` // pending, approved, rejected, locked
	RejectionReason string         `json:"rejection_reason,omitempty"`
	RejectionCount  int            `json:"rejection_count"`
	CanReapply      bool           `json:"can_reapply"`
	Driver          *models.Driver `json:"driver"`
}

type ReapplyInput struct {
	VehicleMake   string
	VehicleModel  string
	VehiclePlate  string
	LicenseNumber string
}

type DriverService interface {
	Gate(ctx context.Context, driverID string) (*GateInfo, error)
	Reapply(ctx context.Context, driverID string, in ReapplyInput) (*GateInfo, error)
	SetAvailability(ctx context.Context, driverID string, available bool) (*models.Driver, error)
	Subscribe(ctx context.Context, driverID, plan string) (string, error)
	ActivateSubscription(ctx context.Context, driverID, plan string) error
	RecordLocation(ctx context.Context, driverID string, lat, lng float64) error
	Earnings(ctx context.Context, driverID string) (*models.DriverEarnings, error)
}

type driverService struct {
	drivers  storage.IDriverStorage
	finance  storage.IFinanceStorage
	settings storage.ISettingsStorage
	location storage.ILocationStorage
	pay      *payment.Client
	log      logger.ILogger
	now      func() time.Time
}

func NewDriverService(stg storage.IStorage, pay *payment.Client, log logger.ILogger) DriverService {
	return &driverService{
		drivers:  stg.Driver(),
		finance:  stg.Finance(),
		settings: stg.Settings(),
		location: stg.Location(),
		pay:      pay,
		log:      log,
		now:      time.Now,
	}
}

// getFresh reads the driver row and settles a lapsed subscription before
// anything else looks at it. Expiry is decided at read time, never trusted
// from the caller.
func (s *driverService) getFresh(ctx context.Context, driverID string) (*models.Driver, error) {
	d, err := s.drivers.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDriverNotFound
	}

	if d.SubscriptionLapsed(s.now()) {
		if err := s.drivers.ExpireSubscription(ctx, driverID); err != nil {
			return nil, err
		}
		d.SubscriptionStatus = models.SubscriptionExpired
		d.IsAvailable = false
	}
	return d, nil
}

func (s *driverService) gateInfo(d *models.Driver) *GateInfo {
	return &GateInfo{
		View:            models.GateView(d.Status, d.RejectionCount),
		RejectionReason: d.RejectionReason,
		RejectionCount:  d.RejectionCount,
		CanReapply:      models.CanReapply(d.Status, d.RejectionCount),
		Driver:          d,
	}
}

func (s *driverService) Gate(ctx context.Context, driverID string) (*GateInfo, error) {
	d, err := s.getFresh(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return s.gateInfo(d), nil
}

func (s *driverService) Reapply(ctx context.Context, driverID string, in ReapplyInput) (*GateInfo, error) {
	d, err := s.getFresh(ctx, driverID)
	if err != nil {
		return nil, err
	}

	switch {
	case d.Status == models.DriverFrozen:
		return nil, ErrDriverFrozen
	case d.Status == models.DriverRejected && d.RejectionCount >= models.MaxRejections:
		return nil, ErrReapplyLimit
	case d.Status != models.DriverRejected:
		return nil, ErrInvalidTransition
	}

	d.VehicleMake = strings.TrimSpace(in.VehicleMake)
	d.VehicleModel = strings.TrimSpace(in.VehicleModel)
	d.VehiclePlate = strings.TrimSpace(in.VehiclePlate)
	d.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	if err := s.drivers.UpdateVehicle(ctx, d); err != nil {
		return nil, err
	}

	// The conditional update is authoritative; the checks above only pick
	// the right error for the common cases.
	ok, err := s.drivers.Reapply(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReapplyLimit
	}

	d.Status = models.DriverPending
	s.log.Info("driver reapplied", logger.String("profile_id", driverID), logger.Int("attempt", d.RejectionCount+1))
	return s.gateInfo(d), nil
}

// SetAvailability re-validates approval and subscription against the
// database at click time. Turning availability off needs no entitlement.
func (s *driverService) SetAvailability(ctx context.Context, driverID string, available bool) (*models.Driver, error) {
	d, err := s.getFresh(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if d.Status != models.DriverApproved {
		return nil, ErrDriverNotApproved
	}
	if available && !d.HasActiveSubscription(s.now()) {
		return nil, ErrSubscriptionNeeded
	}

	ok, err := s.drivers.SetAvailability(ctx, driverID, available)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDriverNotApproved
	}

	d.IsAvailable = available
	return d, nil
}

func planDuration(plan string) (time.Duration, bool) {
	switch plan {
	case models.PlanMonthly:
		return 30 * 24 * time.Hour, true
	case models.PlanYearly:
		return 365 * 24 * time.Hour, true
	}
	return 0, false
}

func (s *driverService) planPrice(ctx context.Context, plan string) (float64, error) {
	key := models.SettingMonthlyPrice
	if plan == models.PlanYearly {
		key = models.SettingYearlyPrice
	}
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if setting == nil {
		return 0, nil
	}
	return cast.ToFloat64(setting.Value), nil
}

// Subscribe requests a checkout session from the payment provider and
// returns the redirect URL. The subscription turns active only on the
// provider callback.
func (s *driverService) Subscribe(ctx context.Context, driverID, plan string) (string, error) {
	if _, ok := planDuration(plan); !ok {
		return "", ErrInvalidPlan
	}

	d, err := s.getFresh(ctx, driverID)
	if err != nil {
		return "", err
	}
	if d.Status == models.DriverFrozen {
		return "", ErrDriverFrozen
	}

	amount, err := s.planPrice(ctx, plan)
	if err != nil {
		return "", err
	}

	checkout, err := s.pay.CreateCheckout(ctx, payment.CheckoutRequest{
		DriverID: driverID,
		Plan:     plan,
		Amount:   amount,
	})
	if err != nil {
		s.log.Error("checkout request failed", logger.String("driver_id", driverID), logger.Error(err))
		return "", err
	}

	if err := s.drivers.MarkSubscriptionPending(ctx, driverID, plan); err != nil {
		return "", err
	}
	return checkout.CheckoutURL, nil
}

func (s *driverService) ActivateSubscription(ctx context.Context, driverID, plan string) error {
	dur, ok := planDuration(plan)
	if !ok {
		return ErrInvalidPlan
	}

	d, err := s.drivers.Get(ctx, driverID)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrDriverNotFound
	}

	expiresAt := s.now().Add(dur)
	if err := s.drivers.ActivateSubscription(ctx, driverID, plan, expiresAt); err != nil {
		return err
	}

	amount, err := s.planPrice(ctx, plan)
	if err != nil {
		return err
	}
	err = s.finance.RecordTransaction(ctx, &models.FinancialTransaction{
		Amount: amount,
		Kind:   models.TxSubscriptionFee,
	})
	if err != nil {
		return err
	}

	s.log.Info("subscription activated",
		logger.String("driver_id", driverID),
		logger.String("plan", plan),
	)
	return nil
}

func (s *driverService) RecordLocation(ctx context.Context, driverID string, lat, lng float64) error {
	return s.location.Record(ctx, &models.DriverLocation{
		DriverID: driverID,
		Lat:      lat,
		Lng:      lng,
	})
}

func (s *driverService) Earnings(ctx context.Context, driverID string) (*models.DriverEarnings, error) {
	return s.finance.DriverEarnings(ctx, driverID, 20)
}
