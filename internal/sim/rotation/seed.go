// Package rotation mirrors the ledger program's deterministic delivery-slot
// rotation: the 60-second bucket clock, the avalanche seed hash, and the
// layered slot selection. Every function here is a pure mirror of on-chain
// code; the outputs must match the ledger bit for bit, so all arithmetic is
// uint64 wrapping and the constants are not tunable.
package rotation

// Interval is the delivery rotation window in seconds.
const Interval int64 = 60

// Avalanche multipliers shared with the ledger program. Changing either one
// breaks seed equality with the chain.
const (
	mixA uint64 = 0x517cc1b727220a95
	mixB uint64 = 0x7fb5d329728ea185
)

// Bucket returns the rotation bucket for a unix timestamp: ts / 60.
func Bucket(ts int64) uint64 {
	return uint64(ts / Interval)
}

// Seed computes the deterministic slot-selection seed for a match at a given
// wall-clock second. Any two clients (and the ledger itself) agree on the
// result for the whole 60-second bucket.
func Seed(matchID uint64, ts int64) uint64 {
	h := matchID ^ Bucket(ts)
	h *= mixA
	h ^= h >> 32
	h *= mixB
	h ^= h >> 27
	return h
}

// SeedForBucket is Seed with the bucket already computed, used when replaying
// ledger rotation events that carry the bucket rather than a timestamp.
func SeedForBucket(matchID, bucket uint64) uint64 {
	h := matchID ^ bucket
	h *= mixA
	h ^= h >> 32
	h *= mixB
	h ^= h >> 27
	return h
}
