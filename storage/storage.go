package storage

import (
	"context"
	"time"

	"safedrop/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IStorage interface {
	Profile() IProfileStorage
	Driver() IDriverStorage
	Order() IOrderStorage
	Complaint() IComplaintStorage
	Finance() IFinanceStorage
	Settings() ISettingsStorage
	Location() ILocationStorage
	Close()
	GetPool() *pgxpool.Pool
}

type IProfileStorage interface {
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]*models.Profile, error)
	UpdateStatus(ctx context.Context, id, status string) error
	HasRole(ctx context.Context, profileID, role string) (bool, error)
	GrantRole(ctx context.Context, profileID, role string) error
}

type IDriverStorage interface {
	Create(ctx context.Context, d *models.Driver) error
	Get(ctx context.Context, profileID string) (*models.Driver, error)
	UpdateVehicle(ctx context.Context, d *models.Driver) error
	// Approve moves a pending application to approved; false when the row
	// was not pending.
	Approve(ctx context.Context, profileID string) (bool, error)
	// Reject increments the rejection count and freezes the application
	// when the count reaches the limit. Returns the resulting driver row,
	// nil when the row was not pending.
	Reject(ctx context.Context, profileID, reason string) (*models.Driver, error)
	// Reapply moves a rejected application back to pending; false when the
	// driver is frozen or out of attempts.
	Reapply(ctx context.Context, profileID string) (bool, error)
	// SetAvailability flips is_available, conditioned on approved status;
	// false when the row was not approved.
	SetAvailability(ctx context.Context, profileID string, available bool) (bool, error)
	ExpireSubscription(ctx context.Context, profileID string) error
	MarkSubscriptionPending(ctx context.Context, profileID, plan string) error
	ActivateSubscription(ctx context.Context, profileID, plan string, expiresAt time.Time) error
	GetPending(ctx context.Context) ([]*models.DriverApplication, error)
	GetAll(ctx context.Context) ([]*models.DriverApplication, error)
	DeleteRejected(ctx context.Context) (int64, error)
}

type IOrderStorage interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetAvailable(ctx context.Context) ([]*models.Order, error)
	GetCustomerOrders(ctx context.Context, customerID, status string) ([]*models.Order, error)
	GetDriverOrders(ctx context.Context, driverID, status string) ([]*models.Order, error)
	// Claim attaches the driver to an order in a single conditional update.
	// False means the order was already claimed, cancelled or missing.
	Claim(ctx context.Context, orderID, driverID string) (bool, error)
	// Advance moves a claimed order from one in-progress status to the
	// next, keyed on the owning driver and the expected prior status.
	Advance(ctx context.Context, orderID, driverID, from, to string) (bool, error)
	// Complete finishes the order and records the payment split in one
	// transaction. Nil order means the conditional update matched nothing.
	Complete(ctx context.Context, orderID, driverID string, commissionRate float64) (*models.Order, error)
	// CancelByCustomer cancels an unclaimed order owned by the customer.
	CancelByCustomer(ctx context.Context, orderID, customerID string) (bool, error)
	ConfirmFare(ctx context.Context, orderID, customerID string, price float64) (bool, error)
}

type IComplaintStorage interface {
	Create(ctx context.Context, c *models.Complaint) (*models.Complaint, error)
	GetAll(ctx context.Context, status string) ([]*models.Complaint, error)
	GetByProfile(ctx context.Context, profileID string) ([]*models.Complaint, error)
	Resolve(ctx context.Context, id, resolution string) (bool, error)
}

type IFinanceStorage interface {
	RecordTransaction(ctx context.Context, tx *models.FinancialTransaction) error
	PlatformSummary(ctx context.Context) (*models.PlatformSummary, error)
	DriverEarnings(ctx context.Context, driverID string, limit int) (*models.DriverEarnings, error)
}

type ISettingsStorage interface {
	Get(ctx context.Context, key string) (*models.SystemSetting, error)
	GetAll(ctx context.Context) ([]*models.SystemSetting, error)
	Upsert(ctx context.Context, key, value string) error
}

type ILocationStorage interface {
	Record(ctx context.Context, loc *models.DriverLocation) error
	Latest(ctx context.Context, driverID string) (*models.DriverLocation, error)
}
