// Package txn models the caller side of a generic lock manager session: a
// transaction that acquires record locks through glock.Manager and tracks
// which records it holds, grouped by mode.
package txn

import (
	"github.com/ryogrid/glock/common"
	"github.com/ryogrid/glock/types"
)

// LockMode is the two-mode lattice a transaction requests records in.
// Shared holders coexist; Exclusive excludes every other mode, including
// itself.
type LockMode int32

const (
	Shared LockMode = iota
	Exclusive
)

// ContentionMatrix returns the conflict table for LockMode: Shared only
// conflicts with Exclusive, Exclusive conflicts with everything.
func ContentionMatrix() map[LockMode]map[LockMode]bool {
	return map[LockMode]map[LockMode]bool{
		Shared:    {Shared: false, Exclusive: true},
		Exclusive: {Shared: true, Exclusive: true},
	}
}

// State is where a transaction sits in the standard two-phase-locking
// lifecycle.
//
//	        _________________________
//	       |                         v
//	GROWING -> SHRINKING -> COMMITTED   ABORTED
//	   |__________|________________________^
type State int32

const (
	Growing State = iota
	Shrinking
	Committed
	Aborted
)

// Transaction tracks the record sets a single logical unit of work has
// locked, so a caller can release them in bulk. SetState does not release
// anything itself.
type Transaction struct {
	id    types.TxnID
	state State

	sharedLocks    []types.RID
	exclusiveLocks []types.RID

	debugInfo string
}

func New(id types.TxnID) *Transaction {
	return &Transaction{id: id, state: Growing}
}

func (t *Transaction) ID() types.TxnID { return t.id }

func (t *Transaction) State() State { return t.state }

// SetState transitions the transaction's state. Per two-phase locking, a
// transaction only grows, then shrinks, then reaches a terminal state;
// callers are responsible for the discipline, this only records it.
func (t *Transaction) SetState(state State) {
	if common.EnableDebug && state == Aborted {
		common.GlPrintf(common.RDB_OP_FUNC_CALL, "Transaction.SetState: txn=%d info=%q state=Aborted\n", t.id, t.debugInfo)
	}
	t.state = state
}

func (t *Transaction) DebugInfo() string { return t.debugInfo }

func (t *Transaction) SetDebugInfo(info string) { t.debugInfo = info }

func (t *Transaction) SharedLocks() []types.RID { return t.sharedLocks }

func (t *Transaction) ExclusiveLocks() []types.RID { return t.exclusiveLocks }

// NoteGranted records that rid was granted in mode, so Unlock loops and
// abort cleanup know which set to scan.
func (t *Transaction) NoteGranted(rid types.RID, mode LockMode) {
	switch mode {
	case Shared:
		t.sharedLocks = append(t.sharedLocks, rid)
	case Exclusive:
		t.exclusiveLocks = append(t.exclusiveLocks, rid)
	}
}

// NoteReleased removes rid from whichever held set it was granted in.
func (t *Transaction) NoteReleased(rid types.RID) {
	t.sharedLocks = removeRID(t.sharedLocks, rid)
	t.exclusiveLocks = removeRID(t.exclusiveLocks, rid)
}

func (t *Transaction) IsSharedLocked(rid types.RID) bool {
	return containsRID(t.sharedLocks, rid)
}

func (t *Transaction) IsExclusiveLocked(rid types.RID) bool {
	return containsRID(t.exclusiveLocks, rid)
}

func containsRID(set []types.RID, rid types.RID) bool {
	for _, r := range set {
		if r == rid {
			return true
		}
	}
	return false
}

func removeRID(set []types.RID, rid types.RID) []types.RID {
	for i, r := range set {
		if r == rid {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}
