package models

import "time"

const (
	TxOrderPayment    = "order_payment"
	TxDriverPayout    = "driver_payout"
	TxSubscriptionFee = "subscription_fee"
)

type FinancialTransaction struct {
	ID        int64     `json:"id"`
	OrderID   *string   `json:"order_id,omitempty"`
	Amount    float64   `json:"amount"`
	Kind      string    `json:"kind"` // order_payment, driver_payout, subscription_fee
	CreatedAt time.Time `json:"created_at"`
}

type DriverPayment struct {
	ID        int64     `json:"id"`
	DriverID  string    `json:"driver_id"`
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// PlatformSummary is the admin-side financial rollup.
type PlatformSummary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalPayouts     float64 `json:"total_payouts"`
	SubscriptionFees float64 `json:"subscription_fees"`
	CompletedOrders  int     `json:"completed_orders"`
	CancelledOrders  int     `json:"cancelled_orders"`
}

// DriverEarnings is the driver-side rollup.
type DriverEarnings struct {
	DriverID string          `json:"driver_id"`
	Total    float64         `json:"total"`
	Recent   []DriverPayment `json:"recent"`
}
