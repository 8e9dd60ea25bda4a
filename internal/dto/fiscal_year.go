package dto

import (
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// CreateFiscalYearRequest defines the data needed to create a fiscal year.
type CreateFiscalYearRequest struct {
	Name      string `json:"name" binding:"required,max=50"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID int64     `json:"fiscalYearID"`
	Name         string    `json:"name"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	IsActive     bool      `json:"isActive"`
	IsLocked     bool      `json:"isLocked"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to its DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Name:         fy.Name,
		StartDate:    fy.StartDate.Format(DateLayout),
		EndDate:      fy.EndDate.Format(DateLayout),
		IsActive:     fy.IsActive,
		IsLocked:     fy.IsLocked,
		CreatedAt:    fy.CreatedAt,
		CreatedBy:    fy.CreatedBy,
	}
}

// ToListFiscalYearResponse converts a slice of domain.FiscalYear.
func ToListFiscalYearResponse(fys []domain.FiscalYear) []FiscalYearResponse {
	res := make([]FiscalYearResponse, len(fys))
	for i, fy := range fys {
		fy := fy
		res[i] = ToFiscalYearResponse(&fy)
	}
	return res
}
