package models

import "time"

// Well-known system_settings keys.
const (
	SettingCommissionRate = "commission_rate"
	SettingSupportContact = "support_contact"
	SettingMonthlyPrice   = "subscription_price_monthly"
	SettingYearlyPrice    = "subscription_price_yearly"
)

type SystemSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
