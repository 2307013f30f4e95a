package weigher

import "testing"

func TestConstant(t *testing.T) {
	t.Parallel()

	w := Constant[string](42)
	if got := w("anything"); got != 42 {
		t.Fatalf("Constant(42) = %d, want 42", got)
	}
}

func TestUnit(t *testing.T) {
	t.Parallel()

	w := Unit[[]byte]()
	if got := w(nil); got != 1 {
		t.Fatalf("Unit = %d, want 1", got)
	}
}

func TestBytes(t *testing.T) {
	t.Parallel()

	if got := Bytes(nil); got != 0 {
		t.Fatalf("Bytes(nil) = %d, want 0", got)
	}
	if got := Bytes(make([]byte, 1024)); got != 1024 {
		t.Fatalf("Bytes(1KiB) = %d, want 1024", got)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	if got := String(""); got != 0 {
		t.Fatalf("String(empty) = %d, want 0", got)
	}
	// Length in bytes, not runes.
	if got := String("αβγ"); got != 6 {
		t.Fatalf("String(αβγ) = %d, want 6", got)
	}
}

func TestSizeOf(t *testing.T) {
	t.Parallel()

	w := SizeOf[int64]()
	if got := w(0); got != 8 {
		t.Fatalf("SizeOf[int64] = %d, want 8", got)
	}

	type pair struct{ a, b int32 }
	wp := SizeOf[pair]()
	if got := wp(pair{}); got != 8 {
		t.Fatalf("SizeOf[pair] = %d, want 8", got)
	}
}
