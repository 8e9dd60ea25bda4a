package models

import "time"

// SystemSettings is the single row of the system_settings table.
type SystemSettings struct {
	AmountDecimals   int32     `db:"amount_decimals"`
	QuantityDecimals int32     `db:"quantity_decimals"`
	RateDecimals     int32     `db:"rate_decimals"`
	LastUpdatedAt    time.Time `db:"last_updated_at"`
	LastUpdatedBy    string    `db:"last_updated_by"`
}
