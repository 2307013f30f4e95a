package cache

import "testing"

// popAll drains the list back-to-front and returns the entries in
// eviction order.
func popAll(l *recencyList) []*entry {
	var out []*entry
	for {
		e := l.popBack()
		if e == nil {
			return out
		}
		out = append(out, e)
	}
}

func TestRecencyList_EmptyPopBack(t *testing.T) {
	t.Parallel()

	var l recencyList
	if got := l.popBack(); got != nil {
		t.Fatalf("popBack on empty list = %v, want nil", got)
	}
}

func TestRecencyList_EvictionOrderIsInsertionOrder(t *testing.T) {
	t.Parallel()

	var l recencyList
	a, b, c := &entry{key: "a"}, &entry{key: "b"}, &entry{key: "c"}
	l.pushFront(a)
	l.pushFront(b)
	l.pushFront(c)

	if l.len != 3 {
		t.Fatalf("len = %d, want 3", l.len)
	}
	for i, want := range []*entry{a, b, c} {
		if got := l.popBack(); got != want {
			t.Fatalf("pop %d = %v, want %v", i, got.key, want.key)
		}
	}
	if l.len != 0 {
		t.Fatalf("len after drain = %d, want 0", l.len)
	}
}

func TestRecencyList_MoveToFront_Single(t *testing.T) {
	t.Parallel()

	var l recencyList
	x := &entry{key: "x"}
	l.pushFront(x)
	l.moveToFront(x) // no-op: already head

	if got := l.popBack(); got != x {
		t.Fatalf("popBack = %v, want x", got)
	}
	if got := l.popBack(); got != nil {
		t.Fatal("list must be empty")
	}
}

func TestRecencyList_MoveToFront_Oldest(t *testing.T) {
	t.Parallel()

	var l recencyList
	a, b := &entry{key: "a"}, &entry{key: "b"}
	l.pushFront(a)
	l.pushFront(b)

	l.moveToFront(a)
	if got := l.popBack(); got != b {
		t.Fatalf("popBack = %v, want b", got.key)
	}
	if got := l.popBack(); got != a {
		t.Fatalf("popBack = %v, want a", got.key)
	}
}

func TestRecencyList_MoveToFront_Middle(t *testing.T) {
	t.Parallel()

	var l recencyList
	a, b, c := &entry{key: "a"}, &entry{key: "b"}, &entry{key: "c"}
	l.pushFront(a)
	l.pushFront(b)
	l.pushFront(c)

	l.moveToFront(b)

	got := popAll(&l)
	want := []*entry{a, c, b}
	if len(got) != len(want) {
		t.Fatalf("drained %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop %d = %v, want %v", i, got[i].key, want[i].key)
		}
	}
}

func TestRecencyList_RemoveUnlinkedIsNoop(t *testing.T) {
	t.Parallel()

	var l recencyList
	a, b := &entry{key: "a"}, &entry{key: "b"}
	l.pushFront(a)
	l.pushFront(b)

	l.remove(a)
	l.remove(a) // second remove: no-op, len unchanged
	if l.len != 1 {
		t.Fatalf("len = %d, want 1", l.len)
	}

	l.remove(&entry{key: "never-linked"})
	if l.len != 1 {
		t.Fatalf("len after removing unlinked entry = %d, want 1", l.len)
	}

	if got := l.popBack(); got != b {
		t.Fatalf("popBack = %v, want b", got.key)
	}
}

func TestRecencyList_RemoveHeadAndTail(t *testing.T) {
	t.Parallel()

	var l recencyList
	a, b, c := &entry{key: "a"}, &entry{key: "b"}, &entry{key: "c"}
	l.pushFront(a)
	l.pushFront(b)
	l.pushFront(c)

	l.remove(c) // head
	l.remove(a) // tail
	if l.head != b || l.tail != b || l.len != 1 {
		t.Fatalf("expected single entry b, got head=%v tail=%v len=%d", l.head, l.tail, l.len)
	}

	l.remove(b)
	if l.head != nil || l.tail != nil || l.len != 0 {
		t.Fatal("list must be empty after removing last entry")
	}
}
