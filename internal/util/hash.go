// Package util contains internal helpers (hashing, bucketing, padding).
package util

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

// Fnv64a hashes a namespace id with 64-bit FNV-1a. Fast, allocation-free
// and non-cryptographic; used only to spread ids across registry buckets.
func Fnv64a(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}
