package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBusinessRule indicates that well-formed input violates an accounting rule.
var ErrBusinessRule = errors.New("business rule violation")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrReferenced indicates that a resource is still referenced by other records.
var ErrReferenced = errors.New("resource is referenced")

// ErrConflict indicates a concurrent write collided with another one (e.g. voucher number race).
var ErrConflict = errors.New("concurrent modification conflict")

// ErrPersistence indicates that the backing store failed or the transaction was aborted.
var ErrPersistence = errors.New("persistence failure")

// AppError wraps an infrastructure error with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap exposes the wrapped error and, for 5xx codes, ErrPersistence.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Code >= http.StatusInternalServerError {
		errs = append(errs, ErrPersistence)
	}
	return errs
}

// --- Journal posting errors ---

// InsufficientLinesError is returned when an entry has fewer than two lines.
type InsufficientLinesError struct {
	Count int
}

func (e *InsufficientLinesError) Error() string {
	return fmt.Sprintf("journal entry must have at least two lines, got %d", e.Count)
}

func (e *InsufficientLinesError) Unwrap() error { return ErrValidation }

// InvalidLineAmountError is returned when a line does not carry exactly one positive side.
type InvalidLineAmountError struct {
	LineIndex int
	Reason    string
}

func (e *InvalidLineAmountError) Error() string {
	return fmt.Sprintf("line %d: %s", e.LineIndex, e.Reason)
}

func (e *InvalidLineAmountError) Unwrap() error { return ErrValidation }

// NonPostingAccountError is returned when a line targets a grouping account.
type NonPostingAccountError struct {
	LineIndex   int
	AccountCode string
}

func (e *NonPostingAccountError) Error() string {
	return fmt.Sprintf("line %d: account %s is not a posting account", e.LineIndex, e.AccountCode)
}

func (e *NonPostingAccountError) Unwrap() error { return ErrBusinessRule }

// UnbalancedEntryError is returned when total debits and credits differ beyond the precision epsilon.
type UnbalancedEntryError struct {
	TotalDebit  string
	TotalCredit string
	Delta       string
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is unbalanced: debits %s, credits %s, delta %s", e.TotalDebit, e.TotalCredit, e.Delta)
}

func (e *UnbalancedEntryError) Unwrap() error { return ErrBusinessRule }

// PostingFailedError is returned when an entry could not be persisted after the allowed retry.
type PostingFailedError struct {
	Attempts int
	Err      error
}

func (e *PostingFailedError) Error() string {
	return fmt.Sprintf("posting failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *PostingFailedError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// --- Chart of accounts errors ---

// DuplicateCodeError is returned when an account code already exists in the segment.
type DuplicateCodeError struct {
	Code    string
	Segment string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("account code %s already exists in segment %s", e.Code, e.Segment)
}

func (e *DuplicateCodeError) Unwrap() []error { return []error{ErrBusinessRule, ErrDuplicate} }

// InvalidParentError is returned when a parent account cannot hold the child.
type InvalidParentError struct {
	ParentID int64
	Reason   string
}

func (e *InvalidParentError) Error() string {
	return fmt.Sprintf("invalid parent account %d: %s", e.ParentID, e.Reason)
}

func (e *InvalidParentError) Unwrap() error { return ErrBusinessRule }

// CorruptHierarchyError is returned when the stored parent chain contains a cycle.
type CorruptHierarchyError struct {
	AccountID int64
}

func (e *CorruptHierarchyError) Error() string {
	return fmt.Sprintf("account hierarchy is corrupt: cycle detected at account %d", e.AccountID)
}

func (e *CorruptHierarchyError) Unwrap() error { return ErrBusinessRule }

// AccountNotFoundError is returned when an account id does not exist.
type AccountNotFoundError struct {
	AccountID int64
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %d not found", e.AccountID)
}

func (e *AccountNotFoundError) Unwrap() error { return ErrNotFound }

// ReferenceExistsError is returned when a delete is blocked by dependent records.
type ReferenceExistsError struct {
	Resource string
	ID       string
	Reason   string
}

func (e *ReferenceExistsError) Error() string {
	return fmt.Sprintf("%s %s cannot be deleted: %s", e.Resource, e.ID, e.Reason)
}

func (e *ReferenceExistsError) Unwrap() []error { return []error{ErrBusinessRule, ErrReferenced} }

// --- Supporting entity errors ---

// FiscalYearOverlapError is returned when a fiscal year's range overlaps an existing one.
type FiscalYearOverlapError struct {
	Conflicting string
}

func (e *FiscalYearOverlapError) Error() string {
	return fmt.Sprintf("fiscal year overlaps existing fiscal year %s", e.Conflicting)
}

func (e *FiscalYearOverlapError) Unwrap() error { return ErrBusinessRule }

// FiscalYearLockedError is returned when posting into a locked fiscal year.
type FiscalYearLockedError struct {
	Name string
}

func (e *FiscalYearLockedError) Error() string {
	return fmt.Sprintf("fiscal year %s is locked", e.Name)
}

func (e *FiscalYearLockedError) Unwrap() error { return ErrBusinessRule }

// BaseCurrencyError is returned when an operation would break the single-base-currency rule.
type BaseCurrencyError struct {
	Code   string
	Reason string
}

func (e *BaseCurrencyError) Error() string {
	return fmt.Sprintf("currency %s: %s", e.Code, e.Reason)
}

func (e *BaseCurrencyError) Unwrap() error { return ErrBusinessRule }
