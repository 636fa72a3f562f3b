package storage

import "testing"

func TestFingerprint_AmountIndependence(t *testing.T) {
	// Operation carries no amount field at all, by construction; this test
	// documents that the fingerprint is purely a function of
	// (kind, account, tx) as spec.md §3 requires.
	a := Operation{Kind: KindDeposit, AccountID: 1, TxID: 7}
	b := Operation{Kind: KindDeposit, AccountID: 1, TxID: 7}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical (kind, account, tx) must fingerprint identically")
	}
}

func TestFingerprint_DistinguishesFields(t *testing.T) {
	base := Operation{Kind: KindDeposit, AccountID: 1, TxID: 7}
	variants := []Operation{
		{Kind: KindWithdraw, AccountID: 1, TxID: 7},
		{Kind: KindDeposit, AccountID: 2, TxID: 7},
		{Kind: KindDeposit, AccountID: 1, TxID: 8},
	}
	for _, v := range variants {
		if base.Fingerprint() == v.Fingerprint() {
			t.Errorf("expected %+v and %+v to fingerprint differently", base, v)
		}
	}
}
