// Package ldb is a github.com/syndtr/goleveldb-backed implementation of
// storage.Storage, adapted from the reference layout's
// backend/index/ldb/transactleveldb.go: a single namespace-byte prefix per
// logical keyspace over one flat LevelDB instance, and goleveldb's own
// *leveldb.Transaction for the DbTx unit of work.
package ldb

import (
	"context"

	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/storage"
	"github.com/darkcodi/txnengine/transaction"
)

// Storage is a persistent, transactional Storage backed by a single
// on-disk LevelDB database.
type Storage struct {
	db *leveldb.DB
}

// Open opens (creating if absent) the LevelDB database at path.
func Open(path string) (*Storage, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
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

// Begin opens a goleveldb transaction. LevelDB's own transaction already
// provides the atomicity and isolation the DbTx contract needs, so dbTx is
// a thin adapter rather than a second staging layer.
func (s *Storage) Begin(_ context.Context) (storage.DbTx, error) {
	tr, err := s.db.OpenTransaction()
	if err != nil {
		return nil, &storage.DatabaseError{Detail: err}
	}
	return &dbTx{tr: tr}, nil
}

// ListAccounts iterates every key in the account namespace. Implements
// storage.AccountLister.
func (s *Storage) ListAccounts(_ context.Context) ([]account.Account, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var out []account.Account
	for iter.Next() {
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

type dbTx struct {
	tr   *leveldb.Transaction
	done bool
}

func (tx *dbTx) GetTx(_ context.Context, txID uint32) (transaction.Transaction, bool, error) {
	data, err := tx.tr.Get(txKey(txID), nil)
	if err == ldberrors.ErrNotFound {
		return transaction.Transaction{}, false, nil
	}
	if err != nil {
		return transaction.Transaction{}, false, &storage.DatabaseError{Detail: err}
	}
	t, err := decodeTx(data)
	if err != nil {
		return transaction.Transaction{}, false, &storage.DatabaseError{Detail: err}
	}
	return t, true, nil
}

func (tx *dbTx) InsertTx(_ context.Context, t transaction.Transaction) error {
	if ok, err := tx.tr.Has(txKey(t.ID()), nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	} else if ok {
		return storage.ErrEntityAlreadyExists
	}
	data, err := encodeTx(t)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if err := tx.tr.Put(txKey(t.ID()), data, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *dbTx) UpdateTx(_ context.Context, oldTx, newTx transaction.Transaction) error {
	current, err := tx.tr.Get(txKey(oldTx.ID()), nil)
	if err == ldberrors.ErrNotFound {
		return storage.ErrConcurrentModification
	}
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	decoded, err := decodeTx(current)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if decoded.Version() != oldTx.Version() {
		return storage.ErrConcurrentModification
	}
	data, err := encodeTx(newTx)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if err := tx.tr.Put(txKey(newTx.ID()), data, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *dbTx) GetAccount(_ context.Context, accountID uint16) (account.Account, bool, error) {
	data, err := tx.tr.Get(accountKey(accountID), nil)
	if err == ldberrors.ErrNotFound {
		return account.Account{}, false, nil
	}
	if err != nil {
		return account.Account{}, false, &storage.DatabaseError{Detail: err}
	}
	a, err := decodeAccount(data)
	if err != nil {
		return account.Account{}, false, &storage.DatabaseError{Detail: err}
	}
	return a, true, nil
}

func (tx *dbTx) InsertAccount(_ context.Context, a account.Account) error {
	if ok, err := tx.tr.Has(accountKey(a.ID()), nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	} else if ok {
		return storage.ErrEntityAlreadyExists
	}
	data, err := encodeAccount(a)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if err := tx.tr.Put(accountKey(a.ID()), data, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *dbTx) UpdateAccount(_ context.Context, oldAcc, newAcc account.Account) error {
	current, err := tx.tr.Get(accountKey(oldAcc.ID()), nil)
	if err == ldberrors.ErrNotFound {
		return storage.ErrConcurrentModification
	}
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	decoded, err := decodeAccount(current)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if decoded.Version() != oldAcc.Version() {
		return storage.ErrConcurrentModification
	}
	data, err := encodeAccount(newAcc)
	if err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	if err := tx.tr.Put(accountKey(newAcc.ID()), data, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *dbTx) IsOperationProcessed(_ context.Context, fp storage.Fingerprint) (bool, error) {
	ok, err := tx.tr.Has(opKey(uint64(fp)), nil)
	if err != nil {
		return false, &storage.DatabaseError{Detail: err}
	}
	return ok, nil
}

func (tx *dbTx) InsertOperation(_ context.Context, fp storage.Fingerprint) error {
	if err := tx.tr.Put(opKey(uint64(fp)), []byte{1}, nil); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

func (tx *dbTx) Commit(_ context.Context) error {
	if tx.done {
		return nil
	}
	tx.done = true
	if err := tx.tr.Commit(); err != nil {
		return &storage.DatabaseError{Detail: err}
	}
	return nil
}

// Discard aborts the underlying goleveldb transaction. Safe to call after
// a successful Commit (goleveldb's own Discard is documented as a no-op
// once Commit has completed), so the engine can unconditionally defer it.
func (tx *dbTx) Discard(_ context.Context) {
	if tx.done {
		return
	}
	tx.done = true
	tx.tr.Discard()
}
