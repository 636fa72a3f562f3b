package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/engine"
	"github.com/darkcodi/txnengine/money"
	"github.com/darkcodi/txnengine/storage"
	"github.com/darkcodi/txnengine/storage/ldb"
	"github.com/darkcodi/txnengine/storage/memory"
	"github.com/darkcodi/txnengine/storage/pebble"
)

// backendFactories gives every scenario below a fresh, empty Storage for
// each of the three concrete implementations, so a single table of
// business-rule scenarios doubles as a conformance suite across
// storage/memory, storage/ldb and storage/pebble (SPEC_FULL.md §8).
func backendFactories(t *testing.T) map[string]func() storage.Storage {
	t.Helper()
	return map[string]func() storage.Storage{
		"memory": func() storage.Storage {
			return memory.New()
		},
		"ldb": func() storage.Storage {
			s, err := ldb.Open(t.TempDir())
			if err != nil {
				t.Fatalf("ldb.Open: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"pebble": func() storage.Storage {
			s, err := pebble.Open(t.TempDir())
			if err != nil {
				t.Fatalf("pebble.Open: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func mustParse(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.Parse(s)
	if err != nil {
		t.Fatalf("money.Parse(%q): %v", s, err)
	}
	return m
}

func assertAccount(t *testing.T, acc account.Account, available, held string, locked bool) {
	t.Helper()
	if want := mustParse(t, available); !acc.Available().Equal(want) {
		t.Errorf("available = %s, want %s", acc.Available(), want)
	}
	if want := mustParse(t, held); !acc.Held().Equal(want) {
		t.Errorf("held = %s, want %s", acc.Held(), want)
	}
	if acc.Locked() != locked {
		t.Errorf("locked = %v, want %v", acc.Locked(), locked)
	}
}

type scenario struct {
	name string
	run  func(t *testing.T, e *engine.Engine)
}

// scenarios is spec.md §8's table of literal end-to-end scenarios plus the
// boundary cases it calls out, each expressed once and run against every
// backend below.
var scenarios = []scenario{
	{"Deposit", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		if err := e.Deposit(ctx, 1, 1, mustParse(t, "100")); err != nil {
			t.Fatalf("Deposit: %v", err)
		}
		acc, err := e.GetAccount(ctx, 1)
		if err != nil {
			t.Fatalf("GetAccount: %v", err)
		}
		assertAccount(t, acc, "100.0000", "0", false)
	}},
	{"Deposit_IdempotentReplay", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		if err := e.Deposit(ctx, 1, 1, mustParse(t, "100")); err != nil {
			t.Fatalf("first deposit: %v", err)
		}
		if err := e.Deposit(ctx, 1, 1, mustParse(t, "100")); err != nil {
			t.Fatalf("replayed deposit: %v", err)
		}
		acc, _ := e.GetAccount(ctx, 1)
		assertAccount(t, acc, "100.0000", "0", false)
	}},
	{"DepositThenWithdraw", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		if err := e.Withdraw(ctx, 1, 2, mustParse(t, "30")); err != nil {
			t.Fatalf("Withdraw: %v", err)
		}
		acc, _ := e.GetAccount(ctx, 1)
		assertAccount(t, acc, "70.0000", "0", false)
	}},
	{"Withdraw_InsufficientFunds", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		if err := e.Withdraw(ctx, 1, 2, mustParse(t, "200")); !errors.Is(err, engine.ErrInsufficientFunds) {
			t.Fatalf("Withdraw = %v, want ErrInsufficientFunds", err)
		}
		acc, _ := e.GetAccount(ctx, 1)
		assertAccount(t, acc, "100.0000", "0", false)
	}},
	{"Withdraw_AccountNotFound", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		if err := e.Withdraw(ctx, 1, 1, mustParse(t, "1")); !errors.Is(err, engine.ErrAccountNotFound) {
			t.Fatalf("Withdraw = %v, want ErrAccountNotFound", err)
		}
	}},
	{"DisputeThenResolve", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		if err := e.Dispute(ctx, 1, 1); err != nil {
			t.Fatalf("Dispute: %v", err)
		}
		acc, _ := e.GetAccount(ctx, 1)
		assertAccount(t, acc, "0", "100.0000", false)

		if err := e.Resolve(ctx, 1, 1); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		acc, _ = e.GetAccount(ctx, 1)
		assertAccount(t, acc, "100.0000", "0", false)
	}},
	{"DisputeThenChargeback", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		_ = e.Dispute(ctx, 1, 1)
		if err := e.Chargeback(ctx, 1, 1); err != nil {
			t.Fatalf("Chargeback: %v", err)
		}
		acc, _ := e.GetAccount(ctx, 1)
		assertAccount(t, acc, "0", "0", true)
	}},
	{"ReDisputeThenChargeback", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		_ = e.Dispute(ctx, 1, 1)
		_ = e.Resolve(ctx, 1, 1)
		_ = e.Dispute(ctx, 1, 1)
		if err := e.Chargeback(ctx, 1, 1); err != nil {
			t.Fatalf("Chargeback: %v", err)
		}
		acc, _ := e.GetAccount(ctx, 1)
		assertAccount(t, acc, "0", "0", true)
	}},
	{"Dispute_WrongAccount", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		err := e.Dispute(ctx, 2, 1)
		var wrongAcc engine.TransactionIsBoundToAnotherAccountError
		if !errors.As(err, &wrongAcc) {
			t.Fatalf("Dispute = %v, want TransactionIsBoundToAnotherAccountError", err)
		}
		if wrongAcc.OwnerAccountID != 1 {
			t.Errorf("OwnerAccountID = %d, want 1", wrongAcc.OwnerAccountID)
		}
		acc, _ := e.GetAccount(ctx, 1)
		assertAccount(t, acc, "100.0000", "0", false)
	}},
	{"Dispute_OfWithdrawal", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		_ = e.Withdraw(ctx, 1, 2, mustParse(t, "30"))
		if err := e.Dispute(ctx, 1, 2); !errors.Is(err, engine.ErrInvalidTxType) {
			t.Fatalf("Dispute of withdrawal = %v, want ErrInvalidTxType", err)
		}
	}},
	{"Chargeback_IsTerminal", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		_ = e.Dispute(ctx, 1, 1)
		_ = e.Chargeback(ctx, 1, 1)
		err := e.Resolve(ctx, 1, 1)
		var forbidden engine.ForbiddenTxStateTransitionError
		if !errors.As(err, &forbidden) {
			t.Fatalf("Resolve after chargeback = %v, want ForbiddenTxStateTransitionError", err)
		}
	}},
	{"Dispute_TransactionNotFound", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		if err := e.Dispute(ctx, 1, 999); !errors.Is(err, engine.ErrTransactionNotFound) {
			t.Fatalf("Dispute = %v, want ErrTransactionNotFound", err)
		}
	}},
	{"Deposit_RejectsNonPositiveAmount", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		if err := e.Deposit(ctx, 1, 1, money.Money{}); !errors.Is(err, engine.ErrAmountIsNotPositive) {
			t.Fatalf("Deposit(0) = %v, want ErrAmountIsNotPositive", err)
		}
	}},
	// A replay sharing (kind, account, tx) but differing only in amount is
	// still treated as already-processed: the fingerprint deliberately
	// omits amount (spec.md §9), so the second call is a silent no-op
	// rather than a rejection.
	{"Deposit_ReplayWithDifferentAmountIsNoOp", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		if err := e.Deposit(ctx, 1, 1, mustParse(t, "50")); err != nil {
			t.Fatalf("Deposit replay with different amount = %v, want nil", err)
		}
		acc, _ := e.GetAccount(ctx, 1)
		assertAccount(t, acc, "100.0000", "0", false)
	}},
	{"ListAccounts", func(t *testing.T, e *engine.Engine) {
		ctx := context.Background()
		_ = e.Deposit(ctx, 1, 1, mustParse(t, "100"))
		_ = e.Deposit(ctx, 2, 2, mustParse(t, "50"))
		accounts, err := e.ListAccounts(ctx)
		if err != nil {
			t.Fatalf("ListAccounts: %v", err)
		}
		if len(accounts) != 2 {
			t.Fatalf("len(accounts) = %d, want 2", len(accounts))
		}
	}},
}

func TestEngine_Scenarios(t *testing.T) {
	for backendName, newBackend := range backendFactories(t) {
		t.Run(backendName, func(t *testing.T) {
			for _, sc := range scenarios {
				t.Run(sc.name, func(t *testing.T) {
					e := engine.New(newBackend())
					sc.run(t, e)
				})
			}
		})
	}
}
