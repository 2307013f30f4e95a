package util

import "runtime"

// ReasonableBucketCount picks a practical default bucket count for the
// namespace registry based on CPU parallelism. Heuristic:
// nextPow2(2*GOMAXPROCS), clamped to [1..64]. The registry is read-mostly
// (a namespace is created once), so a small bucket count suffices.
func ReasonableBucketCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p * 2)))
	if n < 1 {
		n = 1
	}
	if n > 64 {
		n = 64
	}
	return n
}

// BucketIndex maps a 64-bit hash to a bucket index.
// Assumes the bucket count is a power of two for the fast mask path,
// but remains correct for arbitrary counts (uses modulo).
func BucketIndex(hash uint64, buckets int) int {
	if buckets <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(buckets)) {
		return int(hash & uint64(buckets-1))
	}
	return int(hash % uint64(buckets))
}
