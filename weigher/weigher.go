// Package weigher provides stock weight functions for common value
// types. Weights are what shared pool capacity is accounted in, so for
// byte-sized budgets these should approximate the heap footprint of a
// value; for entry-count budgets use Unit.
package weigher

import "unsafe"

// Constant returns a weigher charging every value the same weight.
func Constant[V any](w int64) func(V) int64 {
	return func(V) int64 { return w }
}

// Unit charges every value a weight of 1, turning the shared pool into
// an entry-count LRU for the namespace.
func Unit[V any]() func(V) int64 { return Constant[V](1) }

// Bytes weighs a byte slice by its length.
func Bytes(v []byte) int64 { return int64(len(v)) }

// String weighs a string by its length.
func String(v string) int64 { return int64(len(v)) }

// SizeOf weighs every value by its shallow in-memory size. Suitable for
// fixed-size values without heap indirection (integers, small structs);
// it does not follow pointers, slices or maps.
func SizeOf[V any]() func(V) int64 {
	var zero V
	size := int64(unsafe.Sizeof(zero))
	return func(V) int64 { return size }
}
