package storage

import "hash/fnv"

// fingerprint hashes the (kind, accountID, txID) tuple into a single
// uint64 key, so the processed-operation keyspace stores a constant-size
// key per entry rather than the raw tuple. Collisions are theoretically
// possible but astronomically unlikely at the id ranges this engine
// operates over (uint16 account ids, uint32 transaction ids).
func fingerprint(kind Kind, accountID uint16, txID uint32) Fingerprint {
	h := fnv.New64a()
	var buf [7]byte
	buf[0] = byte(kind)
	buf[1] = byte(accountID >> 8)
	buf[2] = byte(accountID)
	buf[3] = byte(txID >> 24)
	buf[4] = byte(txID >> 16)
	buf[5] = byte(txID >> 8)
	buf[6] = byte(txID)
	_, _ = h.Write(buf[:])
	return Fingerprint(h.Sum64())
}
