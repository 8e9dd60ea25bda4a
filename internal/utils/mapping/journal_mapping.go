package mapping

import (
	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		VoucherNo:    d.VoucherNo,
		VoucherSeq:   d.VoucherSeq,
		VoucherType:  string(d.VoucherType),
		EntryDate:    d.EntryDate,
		Narration:    d.Narration,
		Status:       string(d.Status),
		ReversalOfID: d.ReversalOfID,
		ReversedByID: d.ReversedByID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		VoucherNo:    m.VoucherNo,
		VoucherSeq:   m.VoucherSeq,
		VoucherType:  domain.VoucherType(m.VoucherType),
		EntryDate:    m.EntryDate,
		Narration:    m.Narration,
		Status:       domain.EntryStatus(m.Status),
		ReversalOfID: m.ReversalOfID,
		ReversedByID: m.ReversedByID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Memo:        d.Memo,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		LineNo:      m.LineNo,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Memo:        m.Memo,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to a slice of domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		EntryID:     m.EntryID,
		LineID:      m.LineID,
		VoucherNo:   m.VoucherNo,
		VoucherType: domain.VoucherType(m.VoucherType),
		EntryDate:   m.EntryDate,
		Narration:   m.Narration,
		Memo:        m.Memo,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}
