package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainAccount_DerivesNormalBalance(t *testing.T) {
	m := models.Account{AccountID: 9, Code: "2010", AccountType: "LIABILITY", Segment: "YARN"}
	d := ToDomainAccount(m)
	assert.Equal(t, domain.CreditSide, d.NormalBalance)
	assert.Equal(t, domain.Liability, d.AccountType)

	m.NormalBalance = "DEBIT"
	assert.Equal(t, domain.DebitSide, ToDomainAccount(m).NormalBalance)
}

func TestToDomainAccountTotals(t *testing.T) {
	totals := ToDomainAccountTotals([]models.AccountTotals{
		{AccountID: 1, TotalDebit: decimal.NewFromInt(10), TotalCredit: decimal.Zero},
		{AccountID: 2, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(10)},
	})
	assert.Len(t, totals, 2)
	assert.True(t, totals[2].TotalCredit.Equal(decimal.NewFromInt(10)))
}

func TestJournalEntryMapping_KeepsReversalLinks(t *testing.T) {
	original := int64(4)
	d := domain.JournalEntry{
		EntryID:      5,
		VoucherNo:    "JV-000005",
		VoucherType:  domain.ManualJournal,
		EntryDate:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:       domain.Posted,
		ReversalOfID: &original,
	}
	back := ToDomainJournalEntry(ToModelJournalEntry(d))
	assert.Equal(t, d, back)
}
