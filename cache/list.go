package cache

// recencyList is the single recency order spanning every entry of every
// namespace: head is the most recently touched entry, tail is the next
// eviction victim. All operations are O(1) pointer fixes. Callers hold
// the pool's structural lock.
type recencyList struct {
	head *entry // MRU
	tail *entry // LRU
	len  int
}

// pushFront inserts n at MRU. n must not already be linked.
func (l *recencyList) pushFront(n *entry) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

// moveToFront promotes n to MRU. No-op if n is already the head.
func (l *recencyList) moveToFront(n *entry) {
	if n == l.head {
		return
	}
	// detach
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if l.tail == n {
		l.tail = n.prev
	}
	// insert at head
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

// remove unlinks n from wherever it sits. Removing an entry that is not
// linked is a no-op, not an error.
func (l *recencyList) remove(n *entry) {
	if n != l.head && n.prev == nil && n.next == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if l.head == n {
		l.head = n.next
	}
	if l.tail == n {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}

// popBack removes and returns the tail entry, or nil if the list is empty.
func (l *recencyList) popBack() *entry {
	t := l.tail
	if t == nil {
		return nil
	}
	l.remove(t)
	return t
}

// back returns the current LRU entry without removing it.
func (l *recencyList) back() *entry { return l.tail }
