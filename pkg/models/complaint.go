package models

import "time"

const (
	ComplaintPending  = "pending"
	ComplaintResolved = "resolved"
)

type Complaint struct {
	ID         string     `json:"id"`
	ProfileID  string     `json:"profile_id"`
	OrderID    *string    `json:"order_id,omitempty"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Status     string     `json:"status"` // pending, resolved
	Resolution string     `json:"resolution,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
