package dto

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used in requests and responses.
const DateLayout = "2006-01-02"

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

// ParseOptionalDate is ParseDate for optional query values; an empty value yields nil.
func ParseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
