// Package engine implements the orchestrator described in spec.md §4.5: it
// performs rule checks, consults Storage under a single DbTx per
// operation, and commits atomically.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/money"
	"github.com/darkcodi/txnengine/storage"
	"github.com/darkcodi/txnengine/transaction"
)

// Engine is a stateless orchestrator over a storage.Storage. It carries no
// business state of its own between calls.
type Engine struct {
	storage storage.Storage
	metrics *Metrics
	logger  *log.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithMetrics attaches Prometheus instrumentation. A nil Metrics (the
// default) disables it.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger attaches a logger used for low-volume diagnostic lines (e.g.
// a concurrent-modification retry signal). A nil logger (the default)
// disables logging; per-row ingestion rejects are the Ingestor's concern,
// not the Engine's (spec.md §7).
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine backed by s.
func New(s storage.Storage, opts ...Option) *Engine {
	e := &Engine{storage: s}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// Deposit credits amount to acc's available balance, creating the account
// if this is its first operation, and records a new Posted Transaction
// for tx. See spec.md §4.5.
func (e *Engine) Deposit(ctx context.Context, acc uint16, tx uint32, amount money.Money) (err error) {
	defer e.observe("deposit", &err, time.Now())

	if !amount.IsPositive() {
		return ErrAmountIsNotPositive
	}

	dbTx, err := e.storage.Begin(ctx)
	if err != nil {
		return translateStorageErr(err)
	}
	defer dbTx.Discard(ctx)

	op := storage.Operation{Kind: storage.KindDeposit, AccountID: acc, TxID: tx}
	processed, err := dbTx.IsOperationProcessed(ctx, op.Fingerprint())
	if err != nil {
		return translateStorageErr(err)
	}
	if processed {
		return translateStorageErr(dbTx.Commit(ctx))
	}

	if _, exists, err := dbTx.GetTx(ctx, tx); err != nil {
		return translateStorageErr(err)
	} else if exists {
		return ErrTransactionWithTheSameIdAlreadyExists
	}

	newTx := transaction.New(tx, acc, transaction.Deposit, amount)
	if err := dbTx.InsertTx(ctx, newTx); err != nil {
		return translateStorageErr(err)
	}

	existing, found, err := dbTx.GetAccount(ctx, acc)
	if err != nil {
		return translateStorageErr(err)
	}
	if found {
		updated := existing.Clone()
		if err := updated.Deposit(amount); err != nil {
			return translateAccountErr(err)
		}
		if err := dbTx.UpdateAccount(ctx, existing, updated); err != nil {
			return translateStorageErr(err)
		}
	} else {
		fresh := account.New(acc)
		if err := fresh.Deposit(amount); err != nil {
			return translateAccountErr(err)
		}
		if err := dbTx.InsertAccount(ctx, fresh); err != nil {
			return translateStorageErr(err)
		}
	}

	if err := dbTx.InsertOperation(ctx, op.Fingerprint()); err != nil {
		return translateStorageErr(err)
	}
	return translateStorageErr(dbTx.Commit(ctx))
}

// Withdraw debits amount from acc's available balance and records a new
// Posted Transaction for tx. See spec.md §4.5.
func (e *Engine) Withdraw(ctx context.Context, acc uint16, tx uint32, amount money.Money) (err error) {
	defer e.observe("withdraw", &err, time.Now())

	if !amount.IsPositive() {
		return ErrAmountIsNotPositive
	}

	dbTx, err := e.storage.Begin(ctx)
	if err != nil {
		return translateStorageErr(err)
	}
	defer dbTx.Discard(ctx)

	op := storage.Operation{Kind: storage.KindWithdraw, AccountID: acc, TxID: tx}
	processed, err := dbTx.IsOperationProcessed(ctx, op.Fingerprint())
	if err != nil {
		return translateStorageErr(err)
	}
	if processed {
		return translateStorageErr(dbTx.Commit(ctx))
	}

	if _, exists, err := dbTx.GetTx(ctx, tx); err != nil {
		return translateStorageErr(err)
	} else if exists {
		return ErrTransactionWithTheSameIdAlreadyExists
	}

	existing, found, err := dbTx.GetAccount(ctx, acc)
	if err != nil {
		return translateStorageErr(err)
	}
	if !found {
		return ErrAccountNotFound
	}

	updated := existing.Clone()
	if err := updated.Withdraw(amount); err != nil {
		return translateAccountErr(err)
	}

	newTx := transaction.New(tx, acc, transaction.Withdrawal, amount)
	if err := dbTx.InsertTx(ctx, newTx); err != nil {
		return translateStorageErr(err)
	}
	if err := dbTx.UpdateAccount(ctx, existing, updated); err != nil {
		return translateStorageErr(err)
	}
	if err := dbTx.InsertOperation(ctx, op.Fingerprint()); err != nil {
		return translateStorageErr(err)
	}
	return translateStorageErr(dbTx.Commit(ctx))
}

// Dispute moves tx's amount from acc's available balance to held,
// transitioning tx to Disputed. See spec.md §4.5.
func (e *Engine) Dispute(ctx context.Context, acc uint16, tx uint32) (err error) {
	defer e.observe("dispute", &err, time.Now())
	return e.transitionTx(ctx, storage.KindDispute, acc, tx, transaction.Disputed, (*account.Account).Dispute)
}

// Resolve moves tx's amount from acc's held balance back to available,
// transitioning tx to Resolved. See spec.md §4.5.
func (e *Engine) Resolve(ctx context.Context, acc uint16, tx uint32) (err error) {
	defer e.observe("resolve", &err, time.Now())
	return e.transitionTx(ctx, storage.KindResolve, acc, tx, transaction.Resolved, (*account.Account).Resolve)
}

// Chargeback removes tx's amount from acc's held balance and locks the
// account, transitioning tx to Chargeback. See spec.md §4.5.
func (e *Engine) Chargeback(ctx context.Context, acc uint16, tx uint32) (err error) {
	defer e.observe("chargeback", &err, time.Now())
	return e.transitionTx(ctx, storage.KindChargeback, acc, tx, transaction.Chargeback, (*account.Account).Chargeback)
}

// transitionTx implements the common shape shared by Dispute, Resolve and
// Chargeback (spec.md §4.5): look up the Transaction, verify it belongs to
// acc, drive its state machine, apply the matching Account mutation, and
// commit both updates in the same DbTx.
func (e *Engine) transitionTx(
	ctx context.Context,
	kind storage.Kind,
	acc uint16,
	tx uint32,
	newState transaction.State,
	applyToAccount func(*account.Account, money.Money) error,
) error {
	dbTx, err := e.storage.Begin(ctx)
	if err != nil {
		return translateStorageErr(err)
	}
	defer dbTx.Discard(ctx)

	op := storage.Operation{Kind: kind, AccountID: acc, TxID: tx}
	processed, err := dbTx.IsOperationProcessed(ctx, op.Fingerprint())
	if err != nil {
		return translateStorageErr(err)
	}
	if processed {
		return translateStorageErr(dbTx.Commit(ctx))
	}

	existingTx, found, err := dbTx.GetTx(ctx, tx)
	if err != nil {
		return translateStorageErr(err)
	}
	if !found {
		return ErrTransactionNotFound
	}
	if existingTx.AccountID() != acc {
		return TransactionIsBoundToAnotherAccountError{OwnerAccountID: existingTx.AccountID()}
	}

	existingAcc, found, err := dbTx.GetAccount(ctx, acc)
	if err != nil {
		return translateStorageErr(err)
	}
	if !found {
		return ErrAccountNotFound
	}

	updatedTx := existingTx.Clone()
	if err := updatedTx.SetState(newState); err != nil {
		return translateTxErr(err)
	}

	updatedAcc := existingAcc.Clone()
	if err := applyToAccount(&updatedAcc, existingTx.Amount()); err != nil {
		return translateAccountErr(err)
	}

	if err := dbTx.UpdateTx(ctx, existingTx, updatedTx); err != nil {
		return translateStorageErr(err)
	}
	if err := dbTx.UpdateAccount(ctx, existingAcc, updatedAcc); err != nil {
		return translateStorageErr(err)
	}
	if err := dbTx.InsertOperation(ctx, op.Fingerprint()); err != nil {
		return translateStorageErr(err)
	}
	return translateStorageErr(dbTx.Commit(ctx))
}

// GetAccount returns the current snapshot of a single account.
func (e *Engine) GetAccount(ctx context.Context, acc uint16) (account.Account, error) {
	dbTx, err := e.storage.Begin(ctx)
	if err != nil {
		return account.Account{}, translateStorageErr(err)
	}
	defer dbTx.Discard(ctx)

	found, ok, err := dbTx.GetAccount(ctx, acc)
	if err != nil {
		return account.Account{}, translateStorageErr(err)
	}
	if !ok {
		return account.Account{}, ErrAccountNotFound
	}
	return found, nil
}

// ListAccounts returns every account currently known to Storage
// (spec.md §6: ordering is unspecified). The backend must implement
// storage.AccountLister.
func (e *Engine) ListAccounts(ctx context.Context) ([]account.Account, error) {
	lister, ok := e.storage.(storage.AccountLister)
	if !ok {
		return nil, &DatabaseError{Detail: errUnsupportedListAccounts}
	}
	accounts, err := lister.ListAccounts(ctx)
	if err != nil {
		return nil, translateStorageErr(err)
	}
	return accounts, nil
}

func (e *Engine) observe(op string, errp *error, start time.Time) {
	err := *errp
	if err != nil && e.logger != nil {
		if err == ErrConcurrentOperationDetected {
			e.logf("txnengine: %s acc/tx conflict: %v", op, err)
		}
	}
	e.metrics.observe(op, err, start)
}
