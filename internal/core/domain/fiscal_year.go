package domain

import "time"

// FiscalYear is a named accounting period. At most one is active at a time.
type FiscalYear struct {
	FiscalYearID int64     `json:"fiscalYearID"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsActive     bool      `json:"isActive"`
	IsLocked     bool      `json:"isLocked"`
	AuditFields
}

// Contains reports whether date falls inside the fiscal year, both ends inclusive.
func (f FiscalYear) Contains(date time.Time) bool {
	d := truncateDay(date)
	return !d.Before(truncateDay(f.StartDate)) && !d.After(truncateDay(f.EndDate))
}

// Overlaps reports whether [start, end] intersects the fiscal year's range.
func (f FiscalYear) Overlaps(start, end time.Time) bool {
	return !truncateDay(start).After(truncateDay(f.EndDate)) && !truncateDay(end).Before(truncateDay(f.StartDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
