package glock

import "github.com/ryogrid/glock/common"

// GroupID identifies a LockRequestGroup within a LockRequestQueue. Group ids
// start at 1 and increase monotonically over the life of a queue; they need
// not be dense since removals can leave gaps.
type GroupID uint64

// NoGroup is the sentinel returned by Emplace when a transaction already has
// a pending request in the queue. It is distinct from every real group id.
const NoGroup GroupID = 0

// LockRequestQueue is the per-record chronological list of lock request
// groups, plus an index from transaction to the group it belongs to. The
// first (lowest-id) group is always the granted group; every group after it
// is waiting.
type LockRequestQueue[TransactionID, Mode comparable] struct {
	matrix    ContentionMatrix[Mode]
	groups    *IndexedList[GroupID, *LockRequestGroup[TransactionID, Mode]]
	groupOf   map[TransactionID]GroupID
	nextGroup GroupID
}

func newLockRequestQueue[TransactionID, Mode comparable](matrix ContentionMatrix[Mode]) *LockRequestQueue[TransactionID, Mode] {
	return &LockRequestQueue[TransactionID, Mode]{
		matrix:    matrix,
		groups:    NewIndexedList[GroupID, *LockRequestGroup[TransactionID, Mode]](),
		groupOf:   make(map[TransactionID]GroupID),
		nextGroup: 1,
	}
}

// Emplace inserts a request for tx in mode into the queue, returning the id
// of the group it landed in. It returns NoGroup if tx already has a request
// pending in this queue - a transaction may hold at most one request per
// record at a time.
//
// The request is appended to the current last group if compatible with all
// of that group's non-denied members; otherwise a new group is appended
// after it. Groups never split or merge once created.
func (q *LockRequestQueue[TransactionID, Mode]) Emplace(tx TransactionID, mode Mode) GroupID {
	if _, exists := q.groupOf[tx]; exists {
		return NoGroup
	}

	if back := q.groups.Back(); back != nil {
		if back.Value.TryEmplace(tx, mode, q.matrix) {
			q.groupOf[tx] = back.Key
			return back.Key
		}
	}

	return q.newGroupWith(tx, mode)
}

func (q *LockRequestQueue[TransactionID, Mode]) newGroupWith(tx TransactionID, mode Mode) GroupID {
	id := q.nextGroup
	q.nextGroup++

	group := newLockRequestGroup[TransactionID, Mode]()
	group.TryEmplace(tx, mode, q.matrix)
	q.groups.EmplaceBack(id, group)
	q.groupOf[tx] = id
	return id
}

// Get returns the request belonging to tx, or nil if tx has no request in
// this queue.
func (q *LockRequestQueue[TransactionID, Mode]) Get(tx TransactionID) *LockRequest[Mode] {
	gid, ok := q.groupOf[tx]
	if !ok {
		return nil
	}
	return q.groupAt(gid).Get(tx)
}

// Exists reports whether tx has a request in this queue.
func (q *LockRequestQueue[TransactionID, Mode]) Exists(tx TransactionID) bool {
	_, ok := q.groupOf[tx]
	return ok
}

// GroupIDOf returns the group id tx's request belongs to, and whether tx has
// a request at all.
func (q *LockRequestQueue[TransactionID, Mode]) GroupIDOf(tx TransactionID) (GroupID, bool) {
	gid, ok := q.groupOf[tx]
	return gid, ok
}

// Remove drops tx's request from the queue, dropping the owning group too
// if it becomes empty. It is a no-op if tx has no request.
func (q *LockRequestQueue[TransactionID, Mode]) Remove(tx TransactionID) {
	gid, ok := q.groupOf[tx]
	if !ok {
		return
	}
	delete(q.groupOf, tx)

	node := q.groups.At(gid)
	if node == nil {
		return
	}
	node.Value.Remove(tx)
	if node.Value.Empty() {
		q.groups.Erase(gid)
	}
}

// Front returns the id of the granted (frontmost) group, and whether the
// queue has any group at all.
func (q *LockRequestQueue[TransactionID, Mode]) Front() (GroupID, bool) {
	n := q.groups.Front()
	if n == nil {
		return NoGroup, false
	}
	return n.Key, true
}

// Empty reports whether the queue has no groups left.
func (q *LockRequestQueue[TransactionID, Mode]) Empty() bool { return q.groups.Empty() }

// Len returns the number of groups currently in the queue.
func (q *LockRequestQueue[TransactionID, Mode]) Len() int { return q.groups.Len() }

// groupAt returns the group for id, panicking if absent - callers only ever
// look up a group id obtained from groupOf, so absence means a bookkeeping
// bug in the queue itself.
func (q *LockRequestQueue[TransactionID, Mode]) groupAt(id GroupID) *LockRequestGroup[TransactionID, Mode] {
	n := q.groups.At(id)
	common.Assert(n != nil, string(ErrMissing))
	return n.Value
}

// EachGroup calls fn for every group in the queue in ascending group-id
// (chronological) order, stopping early if fn returns false.
func (q *LockRequestQueue[TransactionID, Mode]) EachGroup(fn func(id GroupID, group *LockRequestGroup[TransactionID, Mode]) bool) {
	q.groups.Each(fn)
}
