package domain

import (
	"time"
)

// Settings holds marketplace-wide configuration managed by administrators.
// A single row is kept in the store; updates overwrite it.
type Settings struct {
	CommissionPercent float64   `json:"commission_percent"`
	MinWithdrawal     int64     `json:"min_withdrawal"`
	MaxWithdrawal     int64     `json:"max_withdrawal"`
	UpdatedBy         *string   `json:"updated_by,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}
