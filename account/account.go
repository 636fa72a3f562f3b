// Package account implements the per-client balance aggregate: available
// and held funds, the locked guard, and the optimistic-concurrency version
// counter.
package account

import (
	"github.com/darkcodi/txnengine/money"
	"github.com/darkcodi/txnengine/xerr"
)

// Rejection reasons for a mutation, per spec.md §4.2.
const (
	ErrAccountLocked     = xerr.ConstError("account is locked")
	ErrInsufficientFunds = xerr.ConstError("insufficient funds")
	ErrAmountNotPositive = xerr.ConstError("amount is not positive")
)

// Account is a per-client balance aggregate. The zero value is not a valid
// account; use New.
type Account struct {
	id        uint16
	available money.Money
	held      money.Money
	locked    bool
	version   uint16 // optimistic-concurrency token
}

// New creates a fresh account for id with a zero balance, as happens
// implicitly on a client's first successful deposit.
func New(id uint16) Account {
	return Account{id: id}
}

// Restore reconstructs an Account from fields already validated by a prior
// commit, for storage backends that persist Account as an encoded record
// rather than an in-memory value (storage/ldb, storage/pebble). Callers
// outside such an adapter should use New and the mutation methods instead.
func Restore(id uint16, available, held money.Money, locked bool, version uint16) Account {
	return Account{id: id, available: available, held: held, locked: locked, version: version}
}

// ID returns the client id this account belongs to.
func (a Account) ID() uint16 { return a.id }

// Available returns the funds the client may withdraw.
func (a Account) Available() money.Money { return a.available }

// Held returns the funds locked pending dispute resolution.
func (a Account) Held() money.Money { return a.held }

// Total returns Available + Held. This always equals the account's total
// balance by construction, since it is computed from the two halves on
// every call rather than stored.
func (a Account) Total() money.Money { return a.available.Add(a.held) }

// Locked reports whether the account has received a chargeback and may no
// longer deposit or withdraw.
func (a Account) Locked() bool { return a.locked }

// Version returns the optimistic-concurrency token, incremented by one on
// every successful mutation below (wrapping at 2^16).
func (a Account) Version() uint16 { return a.version }

// Deposit credits amount to the available balance. Rejected with
// ErrAmountNotPositive if amount <= 0, or ErrAccountLocked if the account
// is locked.
func (a *Account) Deposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if a.locked {
		return ErrAccountLocked
	}
	a.available = a.available.Add(amount)
	a.version++
	return nil
}

// Withdraw debits amount from the available balance. Rejected with
// ErrAmountNotPositive, ErrAccountLocked, or ErrInsufficientFunds.
func (a *Account) Withdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if a.locked {
		return ErrAccountLocked
	}
	if amount.GreaterThan(a.available) {
		return ErrInsufficientFunds
	}
	a.available = a.available.Sub(amount)
	a.version++
	return nil
}

// Dispute moves amount from available to held. Unlike Deposit/Withdraw
// this does not check the locked guard: a dispute may still need to close
// out (via Resolve or Chargeback) after the account has already been
// locked by an earlier chargeback on a different transaction.
func (a *Account) Dispute(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	a.available = a.available.Sub(amount)
	a.held = a.held.Add(amount)
	a.version++
	return nil
}

// Resolve moves amount from held back to available, closing a dispute in
// favor of the original transaction standing.
func (a *Account) Resolve(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	a.held = a.held.Sub(amount)
	a.available = a.available.Add(amount)
	a.version++
	return nil
}

// Chargeback removes amount from held and locks the account, closing a
// dispute against the original transaction.
func (a *Account) Chargeback(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	a.held = a.held.Sub(amount)
	a.locked = true
	a.version++
	return nil
}

// Clone returns a copy of a, suitable as the mutation target in the
// apply-to-clone-then-CAS pattern the engine uses: the original stays
// untouched as the Storage compare-and-set's expected value.
func (a Account) Clone() Account {
	return a
}
