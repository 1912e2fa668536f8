package models

import "time"

const (
	UserTypeCustomer = "customer"
	UserTypeDriver   = "driver"
	UserTypeAdmin    = "admin"
)

const (
	ProfileActive    = "active"
	ProfileSuspended = "suspended"
	ProfileBanned    = "banned"
)

type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	UserType     string    `json:"user_type"` // customer, driver, admin
	Status       string    `json:"status"`    // active, suspended, banned
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Blocked reports whether the profile may not log in or act.
func (p *Profile) Blocked() bool {
	return p.Status == ProfileSuspended || p.Status == ProfileBanned
}

// Role is the normalized result of role resolution: one tagged value per
// session instead of scattered per-screen lookups. For drivers Approval
// carries the approval state so the login redirect can be decided once.
type Role struct {
	Kind     string `json:"kind"` // admin, customer, driver
	Approval string `json:"approval,omitempty"`
}

// DashboardPath maps a resolved role to the landing route the client
// should navigate to after login.
func (r Role) DashboardPath() string {
	switch r.Kind {
	case UserTypeAdmin:
		return "/admin/dashboard"
	case UserTypeCustomer:
		return "/customer/dashboard"
	case UserTypeDriver:
		if r.Approval == DriverApproved {
			return "/driver/dashboard"
		}
		return "/driver/pending-approval"
	}
	return "/"
}
