package account

import (
	"errors"
	"testing"

	"github.com/darkcodi/txnengine/money"
)

func TestNew(t *testing.T) {
	a := New(1)
	if a.ID() != 1 {
		t.Errorf("ID() = %d, want 1", a.ID())
	}
	if !a.Available().IsZero() || !a.Held().IsZero() || !a.Total().IsZero() {
		t.Error("new account should start at zero balance")
	}
	if a.Locked() {
		t.Error("new account should not be locked")
	}
	if a.Version() != 0 {
		t.Errorf("Version() = %d, want 0", a.Version())
	}
}

func TestDeposit(t *testing.T) {
	a := New(1)
	if err := a.Deposit(money.FromInt(100)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if a.Available().String() != "100.0000" {
		t.Errorf("Available() = %s, want 100.0000", a.Available())
	}
	if a.Version() != 1 {
		t.Errorf("Version() = %d, want 1", a.Version())
	}
}

func TestDeposit_RejectsNonPositive(t *testing.T) {
	a := New(1)
	if err := a.Deposit(money.Zero); !errors.Is(err, ErrAmountNotPositive) {
		t.Errorf("Deposit(0) = %v, want ErrAmountNotPositive", err)
	}
	if err := a.Deposit(money.FromInt(-1)); !errors.Is(err, ErrAmountNotPositive) {
		t.Errorf("Deposit(-1) = %v, want ErrAmountNotPositive", err)
	}
}

func TestDeposit_RejectsWhenLocked(t *testing.T) {
	a := New(1)
	_ = a.Deposit(money.FromInt(100))
	_ = a.Dispute(money.FromInt(100))
	_ = a.Chargeback(money.FromInt(100))

	if err := a.Deposit(money.FromInt(1)); !errors.Is(err, ErrAccountLocked) {
		t.Errorf("Deposit on locked account = %v, want ErrAccountLocked", err)
	}
}

func TestWithdraw(t *testing.T) {
	a := New(1)
	_ = a.Deposit(money.FromInt(100))
	if err := a.Withdraw(money.FromInt(30)); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if a.Available().String() != "70.0000" {
		t.Errorf("Available() = %s, want 70.0000", a.Available())
	}
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	a := New(1)
	_ = a.Deposit(money.FromInt(100))
	if err := a.Withdraw(money.FromInt(200)); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Withdraw(200) = %v, want ErrInsufficientFunds", err)
	}
	if a.Available().String() != "100.0000" {
		t.Errorf("rejected withdraw mutated balance: %s", a.Available())
	}
}

func TestWithdraw_RejectsWhenLocked(t *testing.T) {
	a := New(1)
	_ = a.Deposit(money.FromInt(100))
	_ = a.Dispute(money.FromInt(100))
	_ = a.Chargeback(money.FromInt(100))

	if err := a.Withdraw(money.FromInt(1)); !errors.Is(err, ErrAccountLocked) {
		t.Errorf("Withdraw on locked account = %v, want ErrAccountLocked", err)
	}
}

func TestDisputeResolve_RoundTrip(t *testing.T) {
	a := New(1)
	_ = a.Deposit(money.FromInt(100))
	_ = a.Dispute(money.FromInt(100))

	if a.Available().String() != "0.0000" || a.Held().String() != "100.0000" {
		t.Fatalf("after dispute: available=%s held=%s", a.Available(), a.Held())
	}

	_ = a.Resolve(money.FromInt(100))

	if a.Available().String() != "100.0000" || a.Held().String() != "0.0000" {
		t.Errorf("after resolve: available=%s held=%s, want 100.0000/0.0000", a.Available(), a.Held())
	}
	if a.Locked() {
		t.Error("resolve must not lock the account")
	}
}

func TestChargeback_LocksAccount(t *testing.T) {
	a := New(1)
	_ = a.Deposit(money.FromInt(100))
	_ = a.Dispute(money.FromInt(100))
	_ = a.Chargeback(money.FromInt(100))

	if a.Available().String() != "0.0000" || a.Held().String() != "0.0000" || a.Total().String() != "0.0000" {
		t.Errorf("after chargeback: available=%s held=%s total=%s", a.Available(), a.Held(), a.Total())
	}
	if !a.Locked() {
		t.Error("chargeback must lock the account")
	}
}

func TestDisputeResolveChargeback_PermittedOnLockedAccount(t *testing.T) {
	// A chargeback on tx A locks the account; a dispute/resolve/chargeback
	// cycle on an unrelated tx B must still be permitted, per spec.md §4.2.
	a := New(1)
	_ = a.Deposit(money.FromInt(200))
	_ = a.Dispute(money.FromInt(100)) // tx A disputed
	_ = a.Chargeback(money.FromInt(100)) // tx A charged back, locks account

	if err := a.Dispute(money.FromInt(50)); err != nil {
		t.Fatalf("dispute on locked account should be permitted: %v", err)
	}
	if err := a.Resolve(money.FromInt(50)); err != nil {
		t.Fatalf("resolve on locked account should be permitted: %v", err)
	}
	_ = a.Dispute(money.FromInt(50))
	if err := a.Chargeback(money.FromInt(50)); err != nil {
		t.Fatalf("chargeback on locked account should be permitted: %v", err)
	}
}

func TestVersionIncrementsOnEveryMutation(t *testing.T) {
	a := New(1)
	_ = a.Deposit(money.FromInt(100))
	_ = a.Dispute(money.FromInt(50))
	_ = a.Resolve(money.FromInt(50))
	_ = a.Dispute(money.FromInt(50))
	_ = a.Chargeback(money.FromInt(50))

	if a.Version() != 5 {
		t.Errorf("Version() = %d, want 5", a.Version())
	}
}

func TestClone_IsIndependent(t *testing.T) {
	a := New(1)
	_ = a.Deposit(money.FromInt(100))

	clone := a.Clone()
	_ = clone.Deposit(money.FromInt(50))

	if a.Available().String() != "100.0000" {
		t.Errorf("mutating the clone affected the original: %s", a.Available())
	}
	if clone.Available().String() != "150.0000" {
		t.Errorf("clone.Available() = %s, want 150.0000", clone.Available())
	}
}
