package mapping

import (
	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		Segment:       d.Segment,
		Code:          d.Code,
		Name:          d.Name,
		AccountType:   models.AccountType(d.AccountType),
		NormalBalance: string(d.NormalBalance),
		IsPosting:     d.IsPosting,
		ParentID:      d.ParentID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
// The normal balance is derived from the type when the column is empty.
func ToDomainAccount(m models.Account) domain.Account {
	accountType := domain.AccountType(m.AccountType)
	normal := domain.BalanceSide(m.NormalBalance)
	if normal == "" {
		normal = accountType.NormalBalance()
	}
	return domain.Account{
		AccountID:     m.AccountID,
		Segment:       m.Segment,
		Code:          m.Code,
		Name:          m.Name,
		AccountType:   accountType,
		NormalBalance: normal,
		IsPosting:     m.IsPosting,
		ParentID:      m.ParentID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToDomainAccountTotals converts aggregated rows to a map keyed by account id.
func ToDomainAccountTotals(ms []models.AccountTotals) map[int64]domain.AccountTotals {
	ds := make(map[int64]domain.AccountTotals, len(ms))
	for _, m := range ms {
		ds[m.AccountID] = domain.AccountTotals{
			AccountID:   m.AccountID,
			TotalDebit:  m.TotalDebit,
			TotalCredit: m.TotalCredit,
		}
	}
	return ds
}
