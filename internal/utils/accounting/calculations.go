package accounting

import (
	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns a line's effect on an account balance given the account's normal side.
// Debit-normal accounts grow with debits; credit-normal accounts grow with credits.
func SignedAmount(side domain.BalanceSide, debit, credit decimal.Decimal) decimal.Decimal {
	if side == domain.CreditSide {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

// BuildLedgerRows walks lines in the given order and attaches the running balance,
// starting from a zero opening balance.
func BuildLedgerRows(side domain.BalanceSide, lines []domain.LedgerLine) (rows []domain.LedgerRow, totalDebit, totalCredit, closing decimal.Decimal) {
	rows = make([]domain.LedgerRow, len(lines))
	totalDebit, totalCredit, closing = decimal.Zero, decimal.Zero, decimal.Zero
	for i, line := range lines {
		closing = closing.Add(SignedAmount(side, line.Debit, line.Credit))
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
		rows[i] = domain.LedgerRow{LedgerLine: line, RunningBalance: closing}
	}
	return rows, totalDebit, totalCredit, closing
}

// ValidateEntryLines applies the posting checks in order: line count, posting eligibility,
// one-sided amounts, and debit/credit balance within the precision epsilon.
// It returns the lines rounded to the amount precision with account codes filled in.
func ValidateEntryLines(lines []domain.JournalLine, accounts map[int64]domain.Account, p domain.Precision) ([]domain.JournalLine, error) {
	if len(lines) < 2 {
		return nil, &apperrors.InsufficientLinesError{Count: len(lines)}
	}

	for i, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, &apperrors.AccountNotFoundError{AccountID: line.AccountID}
		}
		if !acc.IsPosting {
			return nil, &apperrors.NonPostingAccountError{LineIndex: i, AccountCode: acc.Code}
		}
	}

	rounded := make([]domain.JournalLine, len(lines))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for i, line := range lines {
		debit := p.RoundAmount(line.Debit)
		credit := p.RoundAmount(line.Credit)
		if debit.IsNegative() || credit.IsNegative() {
			return nil, &apperrors.InvalidLineAmountError{LineIndex: i, Reason: "amounts must not be negative"}
		}
		hasDebit, hasCredit := debit.IsPositive(), credit.IsPositive()
		if hasDebit && hasCredit {
			return nil, &apperrors.InvalidLineAmountError{LineIndex: i, Reason: "line cannot carry both a debit and a credit"}
		}
		if !hasDebit && !hasCredit {
			return nil, &apperrors.InvalidLineAmountError{LineIndex: i, Reason: "line must carry a non-zero debit or credit"}
		}

		line.LineNo = i + 1
		line.Debit = debit
		line.Credit = credit
		line.AccountCode = accounts[line.AccountID].Code
		rounded[i] = line

		totalDebit = totalDebit.Add(debit)
		totalCredit = totalCredit.Add(credit)
	}

	delta := totalDebit.Sub(totalCredit).Abs()
	if delta.GreaterThan(p.Epsilon()) {
		return nil, &apperrors.UnbalancedEntryError{
			TotalDebit:  totalDebit.StringFixed(p.AmountDecimals),
			TotalCredit: totalCredit.StringFixed(p.AmountDecimals),
			Delta:       delta.StringFixed(p.AmountDecimals),
		}
	}

	return rounded, nil
}

// ReverseLines swaps debit and credit on every line, keeping accounts and memos.
func ReverseLines(lines []domain.JournalLine) []domain.JournalLine {
	reversed := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		reversed[i] = domain.JournalLine{
			LineNo:      i + 1,
			AccountID:   line.AccountID,
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Memo:        line.Memo,
		}
	}
	return reversed
}

// TrialBalanceColumns places a net balance on the account's natural column, or on the
// opposite column when the balance is negative.
func TrialBalanceColumns(side domain.BalanceSide, net decimal.Decimal) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	amount := net
	if amount.IsNegative() {
		amount = amount.Neg()
		if side == domain.DebitSide {
			side = domain.CreditSide
		} else {
			side = domain.DebitSide
		}
	}
	if side == domain.DebitSide {
		debit = amount
	} else {
		credit = amount
	}
	return debit, credit
}
