// Package memory is the in-memory reference implementation of the
// storage.Storage contract: a single mutex guarding three maps, one per
// logical keyspace. It is the simplest possible implementation of the
// contract and the one the engine's own test suite runs against first.
package memory

import (
	"context"
	"sync"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/storage"
	"github.com/darkcodi/txnengine/transaction"
)

// Storage is an in-memory, process-local implementation of
// storage.Storage. The zero value is not ready for use; call New.
type Storage struct {
	mu           sync.Mutex
	accounts     map[uint16]account.Account
	transactions map[uint32]transaction.Transaction
	operations   map[storage.Fingerprint]struct{}
}

// New creates an empty in-memory Storage.
func New() *Storage {
	return &Storage{
		accounts:     make(map[uint16]account.Account),
		transactions: make(map[uint32]transaction.Transaction),
		operations:   make(map[storage.Fingerprint]struct{}),
	}
}

// Begin opens a new unit of work. Because the whole Storage is guarded by
// a single mutex, Begin acquires it immediately and holds it until the
// returned DbTx is committed or discarded — giving every DbTx
// serializable isolation for free, at the cost of one writer at a time.
func (s *Storage) Begin(_ context.Context) (storage.DbTx, error) {
	s.mu.Lock()
	return &dbTx{store: s}, nil
}

// Close is a no-op for the in-memory backend; there is nothing to
// release.
func (s *Storage) Close() error { return nil }

// ListAccounts returns every account currently committed, in map
// iteration order (spec.md §6: "ordering is not specified").
func (s *Storage) ListAccounts(_ context.Context) ([]account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]account.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}

// dbTx is the in-memory storage.DbTx: it stages writes locally and only
// applies them to the parent Storage's maps on Commit, giving the
// all-or-nothing visibility guarantee. Reads consult the staged writes
// first and then the committed maps; since the whole Storage is locked for
// the dbTx's lifetime, nothing else is racing it.
type dbTx struct {
	store *Storage
	done  bool

	pendingAccounts     map[uint16]account.Account
	pendingTransactions map[uint32]transaction.Transaction
	pendingOperations   []storage.Fingerprint
}

func (tx *dbTx) GetTx(_ context.Context, txID uint32) (transaction.Transaction, bool, error) {
	if t, ok := tx.pendingTransactions[txID]; ok {
		return t, true, nil
	}
	t, ok := tx.store.transactions[txID]
	return t, ok, nil
}

func (tx *dbTx) InsertTx(_ context.Context, t transaction.Transaction) error {
	if _, exists := tx.store.transactions[t.ID()]; exists {
		return storage.ErrEntityAlreadyExists
	}
	if tx.pendingTransactions == nil {
		tx.pendingTransactions = make(map[uint32]transaction.Transaction)
	}
	tx.pendingTransactions[t.ID()] = t
	return nil
}

func (tx *dbTx) UpdateTx(_ context.Context, oldTx, newTx transaction.Transaction) error {
	current, ok := tx.store.transactions[oldTx.ID()]
	if !ok || current.Version() != oldTx.Version() {
		return storage.ErrConcurrentModification
	}
	if tx.pendingTransactions == nil {
		tx.pendingTransactions = make(map[uint32]transaction.Transaction)
	}
	tx.pendingTransactions[newTx.ID()] = newTx
	return nil
}

func (tx *dbTx) GetAccount(_ context.Context, accountID uint16) (account.Account, bool, error) {
	if a, ok := tx.pendingAccounts[accountID]; ok {
		return a, true, nil
	}
	a, ok := tx.store.accounts[accountID]
	return a, ok, nil
}

func (tx *dbTx) InsertAccount(_ context.Context, a account.Account) error {
	if _, exists := tx.store.accounts[a.ID()]; exists {
		return storage.ErrEntityAlreadyExists
	}
	if tx.pendingAccounts == nil {
		tx.pendingAccounts = make(map[uint16]account.Account)
	}
	tx.pendingAccounts[a.ID()] = a
	return nil
}

func (tx *dbTx) UpdateAccount(_ context.Context, oldAcc, newAcc account.Account) error {
	current, ok := tx.store.accounts[oldAcc.ID()]
	if !ok || current.Version() != oldAcc.Version() {
		return storage.ErrConcurrentModification
	}
	if tx.pendingAccounts == nil {
		tx.pendingAccounts = make(map[uint16]account.Account)
	}
	tx.pendingAccounts[newAcc.ID()] = newAcc
	return nil
}

func (tx *dbTx) IsOperationProcessed(_ context.Context, fp storage.Fingerprint) (bool, error) {
	if _, ok := tx.store.operations[fp]; ok {
		return true, nil
	}
	for _, pending := range tx.pendingOperations {
		if pending == fp {
			return true, nil
		}
	}
	return false, nil
}

func (tx *dbTx) InsertOperation(_ context.Context, fp storage.Fingerprint) error {
	tx.pendingOperations = append(tx.pendingOperations, fp)
	return nil
}

func (tx *dbTx) Commit(_ context.Context) error {
	if tx.done {
		return nil
	}
	defer func() {
		tx.done = true
		tx.store.mu.Unlock()
	}()

	for id, a := range tx.pendingAccounts {
		tx.store.accounts[id] = a
	}
	for id, t := range tx.pendingTransactions {
		tx.store.transactions[id] = t
	}
	for _, fp := range tx.pendingOperations {
		tx.store.operations[fp] = struct{}{}
	}
	return nil
}

func (tx *dbTx) Discard(_ context.Context) {
	if tx.done {
		return
	}
	tx.done = true
	tx.store.mu.Unlock()
}
