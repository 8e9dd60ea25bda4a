package models

import "time"

// FiscalYear is the fiscal_years table row.
type FiscalYear struct {
	FiscalYearID int64     `db:"fiscal_year_id"`
	Name         string    `db:"name"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	IsActive     bool      `db:"is_active"`
	IsLocked     bool      `db:"is_locked"`
	AuditFields
}
