package pebble

import (
	"encoding/binary"
	"fmt"

	"github.com/darkcodi/txnengine/account"
	"github.com/darkcodi/txnengine/money"
	"github.com/darkcodi/txnengine/transaction"
)

// Namespace bytes prefix every key, identically to storage/ldb's scheme
// (spec.md's persisted key layout is shared across both persistent
// backends), so the three logical keyspaces coexist in Pebble's single
// flat keyspace.
const (
	namespaceAccount byte = 'a'
	namespaceTx      byte = 't'
	namespaceOp      byte = 'o'
)

func accountKey(id uint16) []byte {
	k := make([]byte, 3)
	k[0] = namespaceAccount
	binary.BigEndian.PutUint16(k[1:], id)
	return k
}

func txKey(id uint32) []byte {
	k := make([]byte, 5)
	k[0] = namespaceTx
	binary.BigEndian.PutUint32(k[1:], id)
	return k
}

func opKey(fp uint64) []byte {
	k := make([]byte, 9)
	k[0] = namespaceOp
	binary.BigEndian.PutUint64(k[1:], fp)
	return k
}

func encodeAccount(a account.Account) ([]byte, error) {
	avail, err := a.Available().MarshalText()
	if err != nil {
		return nil, err
	}
	held, err := a.Held().MarshalText()
	if err != nil {
		return nil, err
	}
	if len(avail) > 255 || len(held) > 255 {
		return nil, fmt.Errorf("pebble: encoded money field too long")
	}

	buf := make([]byte, 0, 2+1+2+1+len(avail)+1+len(held))
	var id16 [2]byte
	binary.BigEndian.PutUint16(id16[:], a.ID())
	buf = append(buf, id16[:]...)
	if a.Locked() {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	var version16 [2]byte
	binary.BigEndian.PutUint16(version16[:], a.Version())
	buf = append(buf, version16[:]...)
	buf = append(buf, byte(len(avail)))
	buf = append(buf, avail...)
	buf = append(buf, byte(len(held)))
	buf = append(buf, held...)
	return buf, nil
}

func decodeAccount(data []byte) (account.Account, error) {
	if len(data) < 6 {
		return account.Account{}, fmt.Errorf("pebble: short account record")
	}
	id := binary.BigEndian.Uint16(data[0:2])
	locked := data[2] != 0
	version := binary.BigEndian.Uint16(data[3:5])
	pos := 5

	availLen := int(data[pos])
	pos++
	var avail money.Money
	if err := avail.UnmarshalText(data[pos : pos+availLen]); err != nil {
		return account.Account{}, err
	}
	pos += availLen

	heldLen := int(data[pos])
	pos++
	var held money.Money
	if err := held.UnmarshalText(data[pos : pos+heldLen]); err != nil {
		return account.Account{}, err
	}

	return account.Restore(id, avail, held, locked, version), nil
}

func encodeTx(t transaction.Transaction) ([]byte, error) {
	amount, err := t.Amount().MarshalText()
	if err != nil {
		return nil, err
	}
	if len(amount) > 255 {
		return nil, fmt.Errorf("pebble: encoded money field too long")
	}

	buf := make([]byte, 0, 4+2+1+1+2+1+len(amount))
	var id32 [4]byte
	binary.BigEndian.PutUint32(id32[:], t.ID())
	buf = append(buf, id32[:]...)
	var acc16 [2]byte
	binary.BigEndian.PutUint16(acc16[:], t.AccountID())
	buf = append(buf, acc16[:]...)
	buf = append(buf, byte(t.Kind()))
	buf = append(buf, byte(t.State()))
	var version16 [2]byte
	binary.BigEndian.PutUint16(version16[:], t.Version())
	buf = append(buf, version16[:]...)
	buf = append(buf, byte(len(amount)))
	buf = append(buf, amount...)
	return buf, nil
}

func decodeTx(data []byte) (transaction.Transaction, error) {
	if len(data) < 10 {
		return transaction.Transaction{}, fmt.Errorf("pebble: short transaction record")
	}
	id := binary.BigEndian.Uint32(data[0:4])
	accID := binary.BigEndian.Uint16(data[4:6])
	kind := transaction.Kind(data[6])
	state := transaction.State(data[7])
	version := binary.BigEndian.Uint16(data[8:10])

	pos := 10
	amountLen := int(data[pos])
	pos++
	var amount money.Money
	if err := amount.UnmarshalText(data[pos : pos+amountLen]); err != nil {
		return transaction.Transaction{}, err
	}

	return transaction.Restore(id, accID, kind, amount, state, version), nil
}
