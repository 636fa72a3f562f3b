// Package storage defines the transactional key/value contract the engine
// is built against: three logical keyspaces (accounts, transactions,
// processed-operations) behind a unit-of-work abstraction (DbTx) with
// optimistic compare-and-set updates. See storage/memory, storage/ldb and
// storage/pebble for concrete implementations.
package storage

//go:generate mockgen -source storage.go -destination storage_mocks.go -package storage

import (
	"context"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/transaction"
	"github.com/darkcodi/txnengine/xerr"
)

// Storage errors surfaced by any implementation of this contract.
const (
	// ErrEntityAlreadyExists is returned by an Insert* call when an entity
	// with the same id is already committed.
	ErrEntityAlreadyExists = xerr.ConstError("storage: entity already exists")

	// ErrConcurrentModification is returned by an Update* call when the
	// expected prior value no longer matches committed state.
	ErrConcurrentModification = xerr.ConstError("storage: concurrent modification")
)

// DatabaseError wraps an opaque failure from the underlying storage engine
// (disk I/O, corruption, and the like) that isn't one of the structured
// concurrency errors above.
type DatabaseError struct {
	Detail error
}

func (e *DatabaseError) Error() string {
	return "storage: database error: " + e.Detail.Error()
}

func (e *DatabaseError) Unwrap() error {
	return e.Detail
}

// Kind distinguishes the five operation kinds that participate in the
// processed-operation log. Deliberately independent of transaction.Kind:
// dispute/resolve/chargeback have no Transaction kind of their own, but do
// have an Operation kind, since they too must be idempotent (spec.md §9).
type Kind uint8

const (
	KindDeposit Kind = iota
	KindWithdraw
	KindDispute
	KindResolve
	KindChargeback
)

// Operation identifies one request to the engine for the purpose of the
// processed-operation log. Amount is deliberately not part of its
// Fingerprint: a replay with a mismatched amount is still treated as
// already-processed (spec.md §3, §9).
type Operation struct {
	Kind      Kind
	AccountID uint16
	TxID      uint32
}

// Fingerprint is an opaque, deterministic key derived from (Kind,
// AccountID, TxID). Two Operations with the same Kind/AccountID/TxID
// always produce the same Fingerprint regardless of any other field.
type Fingerprint uint64

// Fingerprint computes the deterministic fingerprint for op, per spec.md
// §3: a function of (op_kind_tag, account_id, transaction_id) only.
func (op Operation) Fingerprint() Fingerprint {
	return fingerprint(op.Kind, op.AccountID, op.TxID)
}

// DbTx is a single unit of work: every write performed through it becomes
// visible atomically on Commit, or not at all if it is instead discarded
// (by returning an error before calling Commit). The engine performs
// exactly one DbTx per operation (spec.md §4.4, §5).
type DbTx interface {
	GetTx(ctx context.Context, txID uint32) (transaction.Transaction, bool, error)
	InsertTx(ctx context.Context, tx transaction.Transaction) error
	UpdateTx(ctx context.Context, oldTx, newTx transaction.Transaction) error

	GetAccount(ctx context.Context, accountID uint16) (account.Account, bool, error)
	InsertAccount(ctx context.Context, acc account.Account) error
	UpdateAccount(ctx context.Context, oldAcc, newAcc account.Account) error

	IsOperationProcessed(ctx context.Context, fp Fingerprint) (bool, error)
	InsertOperation(ctx context.Context, fp Fingerprint) error

	// Commit makes every write performed through this DbTx visible
	// atomically. Once Commit returns (with or without error) the DbTx
	// must not be used again.
	Commit(ctx context.Context) error

	// Discard abandons the unit of work; no write performed through it
	// becomes visible. Safe to call after Commit has already succeeded
	// (a no-op in that case) so callers can unconditionally defer it.
	Discard(ctx context.Context)
}

// Storage opens units of work over the three logical keyspaces. A Storage
// value itself holds no per-operation state; all mutable state lives
// behind the DbTx it hands out.
type Storage interface {
	// Begin opens a new unit of work. The returned DbTx must eventually be
	// committed or discarded.
	Begin(ctx context.Context) (DbTx, error)

	// Close releases any resources (file handles, connections) held by
	// the backend.
	Close() error
}

// AccountLister is an optional read-only capability a backend may offer:
// enumerating every committed account without the engine opening a DbTx.
// It is not part of the core Storage contract; Engine.ListAccounts (§4.5)
// type-asserts the configured Storage to this interface.
type AccountLister interface {
	ListAccounts(ctx context.Context) ([]account.Account, error)
}
