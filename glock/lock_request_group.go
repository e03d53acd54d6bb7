package glock

// LockRequestGroup is an equivalence class of mutually-compatible lock
// requests for a single record, stored in the chronological order they
// joined. All non-denied members of a group are considered granted
// simultaneously once the group reaches the front of its record's queue.
type LockRequestGroup[TransactionID, Mode comparable] struct {
	requests *IndexedList[TransactionID, *LockRequest[Mode]]
}

func newLockRequestGroup[TransactionID, Mode comparable]() *LockRequestGroup[TransactionID, Mode] {
	return &LockRequestGroup[TransactionID, Mode]{requests: NewIndexedList[TransactionID, *LockRequest[Mode]]()}
}

// TryEmplace inserts a request for tx in mode if it does not conflict with
// any non-denied member already in the group, per matrix. A denied member
// never blocks a newcomer - see the note on LockRequest.Deny.
// If tx already has a request in the group, this is a no-op and false is
// returned regardless of contention.
func (g *LockRequestGroup[TransactionID, Mode]) TryEmplace(tx TransactionID, mode Mode, matrix ContentionMatrix[Mode]) bool {
	if g.requests.Contains(tx) {
		return false
	}

	conflict := false
	g.requests.Each(func(_ TransactionID, req *LockRequest[Mode]) bool {
		if !req.IsDenied() && matrix.Conflicts(req.Mode(), mode) {
			conflict = true
			return false
		}
		return true
	})
	if conflict {
		return false
	}

	_, inserted := g.requests.EmplaceBack(tx, newLockRequest[Mode](mode))
	return inserted
}

// Get returns the request for tx, or nil if tx has no request in this group.
func (g *LockRequestGroup[TransactionID, Mode]) Get(tx TransactionID) *LockRequest[Mode] {
	if n := g.requests.At(tx); n != nil {
		return n.Value
	}
	return nil
}

// Remove drops tx's request from the group.
func (g *LockRequestGroup[TransactionID, Mode]) Remove(tx TransactionID) {
	g.requests.Erase(tx)
}

// Size returns the number of requests in the group.
func (g *LockRequestGroup[TransactionID, Mode]) Size() int { return g.requests.Len() }

// Empty reports whether the group has no requests left.
func (g *LockRequestGroup[TransactionID, Mode]) Empty() bool { return g.requests.Empty() }

// Each calls fn for every (transaction, request) pair in the group, in the
// order requests joined.
func (g *LockRequestGroup[TransactionID, Mode]) Each(fn func(tx TransactionID, req *LockRequest[Mode]) bool) {
	g.requests.Each(fn)
}
