package engine

import (
	"errors"
	"fmt"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/storage"
	"github.com/darkcodi/txnengine/transaction"
	"github.com/darkcodi/txnengine/xerr"
)

// Sentinel errors surfaced by Engine operations, per spec.md §7.
const (
	ErrAccountNotFound                       = xerr.ConstError("account not found")
	ErrTransactionNotFound                   = xerr.ConstError("transaction not found")
	ErrAccountLocked                         = xerr.ConstError("account is locked")
	ErrInsufficientFunds                     = xerr.ConstError("insufficient funds")
	ErrAmountIsNotPositive                   = xerr.ConstError("amount is not positive")
	ErrTransactionWithTheSameIdAlreadyExists = xerr.ConstError("transaction with the same id already exists")
	ErrInvalidTxType                         = xerr.ConstError("invalid transaction type")
	ErrConcurrentOperationDetected           = xerr.ConstError("concurrent operation detected")
)

// TransactionIsBoundToAnotherAccountError is returned when a dispute,
// resolve or chargeback names a transaction id that belongs to a
// different account than the one given.
type TransactionIsBoundToAnotherAccountError struct {
	OwnerAccountID uint16
}

func (e TransactionIsBoundToAnotherAccountError) Error() string {
	return fmt.Sprintf("transaction is bound to another account: %d", e.OwnerAccountID)
}

// ForbiddenTxStateTransitionError mirrors transaction.ForbiddenTransitionError
// at the engine boundary, so callers need only import the engine package's
// error types.
type ForbiddenTxStateTransitionError struct {
	From transaction.State
	To   transaction.State
}

func (e ForbiddenTxStateTransitionError) Error() string {
	return fmt.Sprintf("forbidden state transition from %s to %s", e.From, e.To)
}

// errUnsupportedListAccounts is wrapped in a DatabaseError when the
// configured Storage backend does not implement storage.AccountLister.
const errUnsupportedListAccounts = xerr.ConstError("storage backend does not support listing accounts")

// DatabaseError wraps an opaque failure surfaced by the Storage backend.
type DatabaseError struct {
	Detail error
}

func (e *DatabaseError) Error() string {
	return "database error: " + e.Detail.Error()
}

func (e *DatabaseError) Unwrap() error {
	return e.Detail
}

// translateStorageErr maps a storage-layer error onto the Engine's own
// taxonomy, per spec.md §4.4: both ErrEntityAlreadyExists and
// ErrConcurrentModification collapse to ErrConcurrentOperationDetected;
// anything else is an opaque DatabaseError.
func translateStorageErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, storage.ErrEntityAlreadyExists), errors.Is(err, storage.ErrConcurrentModification):
		return ErrConcurrentOperationDetected
	default:
		return &DatabaseError{Detail: err}
	}
}

// translateAccountErr maps an account package rejection onto the Engine's
// taxonomy.
func translateAccountErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, account.ErrAccountLocked):
		return ErrAccountLocked
	case errors.Is(err, account.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, account.ErrAmountNotPositive):
		return ErrAmountIsNotPositive
	default:
		return err
	}
}

// translateTxErr maps a transaction package rejection onto the Engine's
// taxonomy.
func translateTxErr(err error) error {
	if err == nil {
		return nil
	}
	var invalidType transaction.InvalidTxTypeError
	if errors.As(err, &invalidType) {
		return ErrInvalidTxType
	}
	var forbidden transaction.ForbiddenTransitionError
	if errors.As(err, &forbidden) {
		return ForbiddenTxStateTransitionError{From: forbidden.From, To: forbidden.To}
	}
	return err
}
