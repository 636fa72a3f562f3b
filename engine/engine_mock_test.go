package engine_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/engine"
	"github.com/darkcodi/txnengine/money"
	"github.com/darkcodi/txnengine/storage"
	"github.com/darkcodi/txnengine/transaction"
)

var (
	emptyTx  transaction.Transaction
	emptyAcc account.Account
)

// A Begin failure surfaces as an opaque DatabaseError, never silently
// swallowed.
func TestEngine_Deposit_BeginFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := storage.NewMockStorage(ctrl)
	s.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("disk full"))

	e := engine.New(s)
	err := e.Deposit(context.Background(), 1, 1, money.FromInt(1))

	var dbErr *engine.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("Deposit = %v, want *DatabaseError", err)
	}
}

// A Commit that reports a lost compare-and-set race translates to
// ErrConcurrentOperationDetected, and Discard is still safe to call
// afterwards (the engine always defers it unconditionally).
func TestEngine_Deposit_ConcurrentModificationOnCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	dbTx := storage.NewMockDbTx(ctrl)
	s := storage.NewMockStorage(ctrl)

	s.EXPECT().Begin(gomock.Any()).Return(dbTx, nil)
	dbTx.EXPECT().IsOperationProcessed(gomock.Any(), gomock.Any()).Return(false, nil)
	dbTx.EXPECT().GetTx(gomock.Any(), gomock.Any()).Return(emptyTx, false, nil)
	dbTx.EXPECT().InsertTx(gomock.Any(), gomock.Any()).Return(nil)
	dbTx.EXPECT().GetAccount(gomock.Any(), gomock.Any()).Return(emptyAcc, false, nil)
	dbTx.EXPECT().InsertAccount(gomock.Any(), gomock.Any()).Return(nil)
	dbTx.EXPECT().InsertOperation(gomock.Any(), gomock.Any()).Return(nil)
	dbTx.EXPECT().Commit(gomock.Any()).Return(storage.ErrConcurrentModification)
	dbTx.EXPECT().Discard(gomock.Any())

	e := engine.New(s)
	err := e.Deposit(context.Background(), 1, 1, money.FromInt(1))
	if !errors.Is(err, engine.ErrConcurrentOperationDetected) {
		t.Fatalf("Deposit = %v, want ErrConcurrentOperationDetected", err)
	}
}

// An already-processed fingerprint short-circuits straight to Commit
// without touching the account or transaction keyspaces at all.
func TestEngine_Deposit_ShortCircuitsOnProcessedFingerprint(t *testing.T) {
	ctrl := gomock.NewController(t)
	dbTx := storage.NewMockDbTx(ctrl)
	s := storage.NewMockStorage(ctrl)

	s.EXPECT().Begin(gomock.Any()).Return(dbTx, nil)
	dbTx.EXPECT().IsOperationProcessed(gomock.Any(), gomock.Any()).Return(true, nil)
	dbTx.EXPECT().Commit(gomock.Any()).Return(nil)
	dbTx.EXPECT().Discard(gomock.Any())

	e := engine.New(s)
	if err := e.Deposit(context.Background(), 1, 1, money.FromInt(1)); err != nil {
		t.Fatalf("Deposit = %v, want nil", err)
	}
}
