package models

import "time"

const (
	DriverPending  = "pending"
	DriverApproved = "approved"
	DriverRejected = "rejected"
	DriverFrozen   = "frozen"
)

const (
	SubscriptionNone    = "none"
	SubscriptionPending = "pending"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// MaxRejections is the number of rejections after which an application is
// frozen and may only be unblocked through support.
const MaxRejections = 2

type Driver struct {
	ProfileID       string `json:"profile_id"`
	Status          string `json:"status"` // pending, approved, rejected, frozen
	RejectionReason string `json:"rejection_reason,omitempty"`
	RejectionCount  int    `json:"rejection_count"`

	VehicleMake   string `json:"vehicle_make"`
	VehicleModel  string `json:"vehicle_model"`
	VehiclePlate  string `json:"vehicle_plate"`
	LicenseNumber string `json:"license_number"`

	IsAvailable bool `json:"is_available"`

	SubscriptionStatus    string     `json:"subscription_status"` // none, pending, active, expired
	Plan                  string     `json:"plan,omitempty"`      // monthly, yearly
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DriverApplication is a driver row joined with the identity fields the
// moderation screens show.
type DriverApplication struct {
	Driver
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// HasActiveSubscription reports whether the driver holds a subscription
// that is active and not yet expired at the given instant.
func (d *Driver) HasActiveSubscription(now time.Time) bool {
	if d.SubscriptionStatus != SubscriptionActive {
		return false
	}
	return d.SubscriptionExpiresAt != nil && d.SubscriptionExpiresAt.After(now)
}

// SubscriptionLapsed reports whether the active subscription has run out
// and the row should be flipped to expired.
func (d *Driver) SubscriptionLapsed(now time.Time) bool {
	if d.SubscriptionStatus != SubscriptionActive {
		return false
	}
	return d.SubscriptionExpiresAt == nil || !d.SubscriptionExpiresAt.After(now)
}

// Gate views shown to a driver depending on approval state.
const (
	GatePending  = "pending"  // wait screen, application under review
	GateApproved = "approved" // go to dashboard
	GateRejected = "rejected" // show reason, reapply allowed
	GateLocked   = "locked"   // frozen or out of attempts, contact support
)

// GateView maps a driver row to exactly one of the four gate views.
func GateView(status string, rejectionCount int) string {
	switch status {
	case DriverApproved:
		return GateApproved
	case DriverRejected:
		if rejectionCount >= MaxRejections {
			return GateLocked
		}
		return GateRejected
	case DriverFrozen:
		return GateLocked
	default:
		return GatePending
	}
}

// CanReapply reports whether a rejected driver may edit their application
// and resubmit it for review.
func CanReapply(status string, rejectionCount int) bool {
	return status == DriverRejected && rejectionCount < MaxRejections
}
