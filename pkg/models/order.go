package models

import (
	"fmt"
	"time"
)

const (
	OrderPending     = "pending"     // created, fare not confirmed yet
	OrderAvailable   = "available"   // in the unclaimed pool
	OrderPickedUp    = "picked_up"   // claimed by a driver
	OrderInTransit   = "in_transit"  // on the way
	OrderApproaching = "approaching" // near the dropoff point
	OrderCompleted   = "completed"
	OrderCancelled   = "cancelled"
)

type Order struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	DriverID    *string    `json:"driver_id"`
	Status      string     `json:"status"`
	Pickup      string     `json:"pickup_address"`
	Dropoff     string     `json:"dropoff_address"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	CreatedAt   time.Time  `json:"created_at"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// OrderTransitions is the allowed status graph. Completed and cancelled are
// terminal.
var OrderTransitions = map[string][]string{
	OrderPending:     {OrderAvailable, OrderCancelled},
	OrderAvailable:   {OrderPickedUp, OrderCancelled},
	OrderPickedUp:    {OrderInTransit, OrderCancelled},
	OrderInTransit:   {OrderApproaching, OrderCompleted, OrderCancelled},
	OrderApproaching: {OrderCompleted, OrderCancelled},
	OrderCompleted:   {},
	OrderCancelled:   {},
}

func CanTransitionOrder(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := OrderTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyOrderTransition moves the order to the target status and maintains
// the lifecycle timestamps. Call only after CanTransitionOrder.
func ApplyOrderTransition(o *Order, to string, now time.Time) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	if !CanTransitionOrder(o.Status, to) {
		return fmt.Errorf("invalid order status transition: %s -> %s", o.Status, to)
	}

	o.Status = to

	switch to {
	case OrderPickedUp:
		if o.ClaimedAt == nil {
			t := now
			o.ClaimedAt = &t
		}
	case OrderCompleted:
		if o.CompletedAt == nil {
			t := now
			o.CompletedAt = &t
		}
	case OrderCancelled:
		if o.CancelledAt == nil {
			t := now
			o.CancelledAt = &t
		}
	}
	return nil
}

// Terminal reports whether the status admits no further transitions.
func TerminalOrderStatus(status string) bool {
	return status == OrderCompleted || status == OrderCancelled
}
