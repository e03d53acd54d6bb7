package glock

import (
	pair "github.com/notEpsilon/go-pair"
)

// Node is an entry of an IndexedList. It is returned by EmplaceBack and
// At so that a caller can mutate Value in place without a second lookup.
type Node[K comparable, V any] struct {
	Key   K
	Value V

	prev, next *Node[K, V]
}

// IndexedList is an insertion-ordered mapping keyed by K with O(1) lookup by
// key and O(1) positional append/removal. Unlike a plain map, iteration
// order follows insertion order and is unaffected by removals - removing an
// entry never reorders its surviving neighbors.
//
// Used for the per-record group chain (keyed by group id) and for the
// per-group request list (keyed by transaction id).
type IndexedList[K comparable, V any] struct {
	index      map[K]*Node[K, V]
	head, tail *Node[K, V]
	size       int
}

func NewIndexedList[K comparable, V any]() *IndexedList[K, V] {
	return &IndexedList[K, V]{index: make(map[K]*Node[K, V])}
}

// EmplaceBack inserts key/value at the end of the list. If key is already
// present this is a no-op and the existing node is returned with inserted
// set to false.
func (l *IndexedList[K, V]) EmplaceBack(key K, value V) (node *Node[K, V], inserted bool) {
	if existing, ok := l.index[key]; ok {
		return existing, false
	}

	n := &Node[K, V]{Key: key, Value: value}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.index[key] = n
	l.size++
	return n, true
}

// At returns the node for key, or nil if absent. Callers mutate Value
// directly through the returned pointer.
func (l *IndexedList[K, V]) At(key K) *Node[K, V] {
	return l.index[key]
}

// Contains reports whether key is present.
func (l *IndexedList[K, V]) Contains(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Erase removes the entry for key. It is a no-op if key is absent.
func (l *IndexedList[K, V]) Erase(key K) {
	n, ok := l.index[key]
	if !ok {
		return
	}
	l.unlink(n)
	delete(l.index, key)
	l.size--
}

func (l *IndexedList[K, V]) unlink(n *Node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// Front returns the first node in insertion order, or nil if empty.
func (l *IndexedList[K, V]) Front() *Node[K, V] { return l.head }

// Back returns the last node in insertion order, or nil if empty.
func (l *IndexedList[K, V]) Back() *Node[K, V] { return l.tail }

// Len returns the number of entries.
func (l *IndexedList[K, V]) Len() int { return l.size }

// Empty reports whether the list has no entries.
func (l *IndexedList[K, V]) Empty() bool { return l.size == 0 }

// Each calls fn for every (key, value) pair in insertion order, stopping
// early if fn returns false.
func (l *IndexedList[K, V]) Each(fn func(key K, value V) bool) {
	for n := l.head; n != nil; n = n.next {
		if !fn(n.Key, n.Value) {
			return
		}
	}
}

// Entries returns a snapshot of all (key, value) pairs in insertion order.
func (l *IndexedList[K, V]) Entries() []pair.Pair[K, V] {
	out := make([]pair.Pair[K, V], 0, l.size)
	l.Each(func(k K, v V) bool {
		out = append(out, *pair.New(k, v))
		return true
	})
	return out
}
