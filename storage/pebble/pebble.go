// Package pebble is a github.com/cockroachdb/pebble-backed implementation
// of storage.Storage. Unlike goleveldb, the Pebble API at this version
// exposes no standalone cross-batch transaction type — an indexed
// *pebble.Batch gives read-your-writes visibility within one unit of
// work, but nothing stops two batches from being opened concurrently. So
// a process-wide sync.Mutex is held for a batchTx's entire lifetime,
// giving the same one-writer-at-a-time serialization storage/memory uses
// for the same reason, at the cost of no intra-process write
// parallelism. This is the deliberate tradeoff this backend exists to
// demonstrate; storage/ldb's native transactions don't need it.
package pebble

import (
	"context"
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/storage"
	"github.com/darkcodi/txnengine/transaction"
)

// Storage is a persistent Storage backed by a single on-disk Pebble
// database.
type Storage struct {
	db *pebble.DB
	mu sync.Mutex
}

// Open opens (creating if absent) the Pebble database at path.
func Open(path string) (*Storage, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, &storage.DatabaseError{Detail: err}
	}
	return &Storage{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	if err := s.db.Close(); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

// Begin acquires s.mu and opens an indexed batch over it; see the package
// doc comment for why the mutex is necessary here but not in storage/ldb.
func (s *Storage) Begin(_ context.Context) (storage.DbTx, error) {
	s.mu.Lock()
	return &batchTx{store: s, batch: s.db.NewIndexedBatch()}, nil
}

// ListAccounts iterates every key in the account namespace.
func (s *Storage) ListAccounts(_ context.Context) ([]account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, &storage.DatabaseError{Detail: err}
	}
	defer iter.Close()

	var out []account.Account
	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		if len(key) == 0 || key[0] != namespaceAccount {
			continue
		}
		acc, err := decodeAccount(iter.Value())
		if err != nil {
			return nil, &storage.DatabaseError{Detail: err}
		}
		out = append(out, acc)
	}
	if err := iter.Error(); err != nil {
		return nil, &storage.DatabaseError{Detail: err}
	}
	return out, nil
}

type batchTx struct {
	store *Storage
	batch *pebble.Batch
	done  bool
}

func get(b *pebble.Batch, key []byte) ([]byte, bool, error) {
	data, closer, err := b.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	out := append([]byte(nil), data...)
	_ = closer.Close()
	return out, true, nil
}

func (tx *batchTx) GetTx(_ context.Context, txID uint32) (transaction.Transaction, bool, error) {
	data, ok, err := get(tx.batch, txKey(txID))
	if err != nil {
		return transaction.Transaction{}, false, &storage.DatabaseError{Detail: err}
	}
	if !ok {
		return transaction.Transaction{}, false, nil
	}
	t, err := decodeTx(data)
	if err != nil {
		return transaction.Transaction{}, false, &storage.DatabaseError{Detail: err}
	}
	return t, true, nil
}

func (tx *batchTx) InsertTx(_ context.Context, t transaction.Transaction) error {
	if _, ok, err := get(tx.batch, txKey(t.ID())); err != nil {
		return &storage.DatabaseError{Detail: err}
	} else if ok {
		return storage.ErrEntityAlreadyExists
	}
	data, err := encodeTx(t)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if err := tx.batch.Set(txKey(t.ID()), data, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *batchTx) UpdateTx(_ context.Context, oldTx, newTx transaction.Transaction) error {
	data, ok, err := get(tx.batch, txKey(oldTx.ID()))
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if !ok {
		return storage.ErrConcurrentModification
	}
	current, err := decodeTx(data)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if current.Version() != oldTx.Version() {
		return storage.ErrConcurrentModification
	}
	encoded, err := encodeTx(newTx)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if err := tx.batch.Set(txKey(newTx.ID()), encoded, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *batchTx) GetAccount(_ context.Context, accountID uint16) (account.Account, bool, error) {
	data, ok, err := get(tx.batch, accountKey(accountID))
	if err != nil {
		return account.Account{}, false, &storage.DatabaseError{Detail: err}
	}
	if !ok {
		return account.Account{}, false, nil
	}
	a, err := decodeAccount(data)
	if err != nil {
		return account.Account{}, false, &storage.DatabaseError{Detail: err}
	}
	return a, true, nil
}

func (tx *batchTx) InsertAccount(_ context.Context, a account.Account) error {
	if _, ok, err := get(tx.batch, accountKey(a.ID())); err != nil {
		return &storage.DatabaseError{Detail: err}
	} else if ok {
		return storage.ErrEntityAlreadyExists
	}
	data, err := encodeAccount(a)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if err := tx.batch.Set(accountKey(a.ID()), data, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *batchTx) UpdateAccount(_ context.Context, oldAcc, newAcc account.Account) error {
	data, ok, err := get(tx.batch, accountKey(oldAcc.ID()))
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if !ok {
		return storage.ErrConcurrentModification
	}
	current, err := decodeAccount(data)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if current.Version() != oldAcc.Version() {
		return storage.ErrConcurrentModification
	}
	encoded, err := encodeAccount(newAcc)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if err := tx.batch.Set(accountKey(newAcc.ID()), encoded, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *batchTx) IsOperationProcessed(_ context.Context, fp storage.Fingerprint) (bool, error) {
	_, ok, err := get(tx.batch, opKey(uint64(fp)))
	if err != nil {
		return false, &storage.DatabaseError{Detail: err}
	}
	return ok, nil
}

func (tx *batchTx) InsertOperation(_ context.Context, fp storage.Fingerprint) error {
	if err := tx.batch.Set(opKey(uint64(fp)), []byte{1}, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *batchTx) Commit(_ context.Context) error {
	if tx.done {
		return nil
	}
	defer func() {
		tx.done = true
		tx.store.mu.Unlock()
	}()
	if err := tx.batch.Commit(pebble.Sync); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *batchTx) Discard(_ context.Context) {
	if tx.done {
		return
	}
	tx.done = true
	_ = tx.batch.Close()
	tx.store.mu.Unlock()
}
