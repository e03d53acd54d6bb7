package glock

// LockGuard is an RAII-style wrapper around a Manager lock acquisition. It
// mirrors sync.Mutex's relationship to sync.Locker: a guard owns at most
// one lock at a time, and its zero-ish states (no manager, not owning) are
// distinguishable so callers can tell a constructed-but-unlocked guard from
// one that failed to acquire.
//
// The invariant Owns() => !Denied() always holds: a denied request is never
// considered owned.
type LockGuard[RecordID, TransactionID comparable, Mode comparable] struct {
	manager *Manager[RecordID, TransactionID, Mode]
	record  RecordID
	tx      TransactionID
	mode    Mode

	owns   bool
	denied bool
}

// NewLockGuard builds a guard bound to manager, record, tx and mode without
// acquiring anything. Call Lock to acquire.
func NewLockGuard[RecordID, TransactionID comparable, Mode comparable](
	manager *Manager[RecordID, TransactionID, Mode],
	record RecordID,
	tx TransactionID,
	mode Mode,
) *LockGuard[RecordID, TransactionID, Mode] {
	return &LockGuard[RecordID, TransactionID, Mode]{manager: manager, record: record, tx: tx, mode: mode}
}

// Acquire builds a guard and immediately locks it, panicking if the manager
// denies the request - use this when the caller has no recovery path other
// than treating denial as fatal.
func Acquire[RecordID, TransactionID comparable, Mode comparable](
	manager *Manager[RecordID, TransactionID, Mode],
	record RecordID,
	tx TransactionID,
	mode Mode,
) *LockGuard[RecordID, TransactionID, Mode] {
	g := NewLockGuard(manager, record, tx, mode)
	if err := g.Lock(); err != nil {
		panic(err)
	}
	if g.Denied() {
		panic(Error("glock: lock request denied"))
	}
	return g
}

// TryAcquire builds a guard and locks it, returning the guard regardless of
// whether the request was granted or denied - callers distinguish the two
// with Owns/Denied instead of an error return.
func TryAcquire[RecordID, TransactionID comparable, Mode comparable](
	manager *Manager[RecordID, TransactionID, Mode],
	record RecordID,
	tx TransactionID,
	mode Mode,
) *LockGuard[RecordID, TransactionID, Mode] {
	g := NewLockGuard(manager, record, tx, mode)
	_ = g.Lock()
	return g
}

// Adopt wraps an already-granted lock - one the caller obtained by calling
// manager.Lock itself - into a guard, so it can be released uniformly with
// Unlock/Release alongside guards that acquired their own lock.
func Adopt[RecordID, TransactionID comparable, Mode comparable](
	manager *Manager[RecordID, TransactionID, Mode],
	record RecordID,
	tx TransactionID,
	mode Mode,
) *LockGuard[RecordID, TransactionID, Mode] {
	g := NewLockGuard(manager, record, tx, mode)
	g.owns = true
	return g
}

// Lock acquires the guard's lock through its manager. Returns ErrNullMutex
// if the guard has no manager, ErrAlreadyHeld if it already owns a lock.
// Otherwise it blocks like Manager.Lock and records the outcome; a denial
// is not an error, it is reflected in Denied().
func (g *LockGuard[RecordID, TransactionID, Mode]) Lock() error {
	if g.manager == nil {
		return ErrNullMutex
	}
	if g.owns {
		return ErrAlreadyHeld
	}

	granted := g.manager.Lock(g.record, g.tx, g.mode)
	g.owns = granted
	g.denied = !granted
	return nil
}

// Unlock releases the guard's held lock through its manager. Returns
// ErrNullMutex if the guard has no manager, ErrNotHeld if it does not
// currently own a lock.
func (g *LockGuard[RecordID, TransactionID, Mode]) Unlock() error {
	if g.manager == nil {
		return ErrNullMutex
	}
	if !g.owns {
		return ErrNotHeld
	}

	g.manager.Unlock(g.record, g.tx)
	g.owns = false
	return nil
}

// Release unlocks the guard if it owns a lock, then detaches it from its
// manager so the guard can be discarded safely - subsequent Lock/Unlock
// calls return ErrNullMutex rather than acting on stale state. Unlike
// Unlock, Release is safe to call unconditionally, e.g. in a defer.
func (g *LockGuard[RecordID, TransactionID, Mode]) Release() {
	if g.manager == nil {
		return
	}
	if g.owns {
		g.manager.Unlock(g.record, g.tx)
	}
	g.manager = nil
	g.owns = false
	g.denied = false
}

// Owns reports whether the guard currently holds a granted lock.
func (g *LockGuard[RecordID, TransactionID, Mode]) Owns() bool { return g.owns }

// Denied reports whether the guard's most recent Lock call was refused,
// either as the victim of a deadlock or because tx already had a request on
// the record.
func (g *LockGuard[RecordID, TransactionID, Mode]) Denied() bool { return g.denied }

// Record returns the record the guard is bound to.
func (g *LockGuard[RecordID, TransactionID, Mode]) Record() RecordID { return g.record }

// Transaction returns the transaction the guard acts on behalf of.
func (g *LockGuard[RecordID, TransactionID, Mode]) Transaction() TransactionID { return g.tx }

// Mode returns the lock mode the guard was built with.
func (g *LockGuard[RecordID, TransactionID, Mode]) Mode() Mode { return g.mode }

// Manager returns the manager the guard is bound to, or nil if the guard
// has been released.
func (g *LockGuard[RecordID, TransactionID, Mode]) Manager() *Manager[RecordID, TransactionID, Mode] {
	return g.manager
}
