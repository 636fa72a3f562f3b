// Package transaction implements the per-operation record for
// money-movement operations and its dispute-lifecycle state machine.
package transaction

import (
	"fmt"

	"github.com/darkcodi/txnengine/money"
)

// Kind distinguishes the two money-movement operation types. Only Deposit
// transactions may be disputed, resolved or charged back.
type Kind uint8

const (
	Deposit Kind = iota
	Withdrawal
)

func (k Kind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// State is a transaction's position in the dispute lifecycle.
type State uint8

const (
	Posted State = iota
	Disputed
	Resolved
	Chargeback
)

func (s State) String() string {
	switch s {
	case Posted:
		return "posted"
	case Disputed:
		return "disputed"
	case Resolved:
		return "resolved"
	case Chargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// InvalidTxTypeError is returned by SetState when a transition is attempted
// on a transaction whose Kind is not Deposit.
type InvalidTxTypeError struct {
	Kind Kind
}

func (e InvalidTxTypeError) Error() string {
	return fmt.Sprintf("invalid transaction type: only deposits can be disputed/resolved/charged back, got %s", e.Kind)
}

// ForbiddenTransitionError is returned by SetState for any transition not
// in the allowed table, including a transition to the transaction's
// current state.
type ForbiddenTransitionError struct {
	From State
	To   State
}

func (e ForbiddenTransitionError) Error() string {
	return fmt.Sprintf("forbidden state transition from %s to %s", e.From, e.To)
}

// Transaction is a record of a single money-movement operation (Deposit or
// Withdrawal) together with its dispute lifecycle. The zero value is not
// valid; use New.
type Transaction struct {
	id        uint32
	accountID uint16
	kind      Kind
	amount    money.Money
	state     State
	version   uint16
}

// New creates a Transaction in its initial Posted state.
func New(id uint32, accountID uint16, kind Kind, amount money.Money) Transaction {
	return Transaction{
		id:        id,
		accountID: accountID,
		kind:      kind,
		amount:    amount,
		state:     Posted,
	}
}

// Restore reconstructs a Transaction from fields already validated by a
// prior commit, for storage backends that persist Transaction as an
// encoded record rather than an in-memory value (storage/ldb,
// storage/pebble).
func Restore(id uint32, accountID uint16, kind Kind, amount money.Money, state State, version uint16) Transaction {
	return Transaction{id: id, accountID: accountID, kind: kind, amount: amount, state: state, version: version}
}

func (t Transaction) ID() uint32          { return t.id }
func (t Transaction) AccountID() uint16   { return t.accountID }
func (t Transaction) Kind() Kind          { return t.kind }
func (t Transaction) Amount() money.Money { return t.amount }
func (t Transaction) State() State        { return t.state }
func (t Transaction) Version() uint16     { return t.version }

// isAllowedTransition reports whether the table from spec.md §4.3 permits
// moving from `from` to `to`. A same-state transition is never allowed,
// even though it isn't spelled out as its own row in the spec table.
func isAllowedTransition(from, to State) bool {
	switch from {
	case Posted:
		return to == Disputed
	case Disputed:
		return to == Resolved || to == Chargeback
	case Resolved:
		return to == Disputed // re-dispute permitted
	case Chargeback:
		return false // terminal
	default:
		return false
	}
}

// SetState attempts to move the transaction to newState, enforcing the
// dispute state machine: only Deposit transactions may transition at all;
// Posted->Disputed, Disputed->Resolved, Disputed->Chargeback and
// Resolved->Disputed (re-dispute) are the only allowed edges; Chargeback
// is terminal. Every accepted transition increments Version by one.
func (t *Transaction) SetState(newState State) error {
	if t.kind == Withdrawal {
		return InvalidTxTypeError{Kind: t.kind}
	}
	if !isAllowedTransition(t.state, newState) {
		return ForbiddenTransitionError{From: t.state, To: newState}
	}
	t.state = newState
	t.version++
	return nil
}

// Clone returns a copy of t, suitable as the mutation target in the
// apply-to-clone-then-CAS pattern the engine uses.
func (t Transaction) Clone() Transaction {
	return t
}
