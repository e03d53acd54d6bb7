package txn

import (
	"testing"

	"github.com/ryogrid/glock/types"
)

func TestTransactionTracksGrantedLocks(t *testing.T) {
	tx := New(types.TxnID(1))
	rid := types.NewRID(types.PageID(0), 0)

	tx.NoteGranted(rid, Shared)
	if !tx.IsSharedLocked(rid) {
		t.Errorf("IsSharedLocked(rid) = false after NoteGranted(rid, Shared), want true")
	}

	tx.NoteReleased(rid)
	if tx.IsSharedLocked(rid) {
		t.Errorf("IsSharedLocked(rid) = true after NoteReleased, want false")
	}
}

func TestTransactionStateTransitions(t *testing.T) {
	tx := New(types.TxnID(1))
	if tx.State() != Growing {
		t.Errorf("initial State() = %v, want Growing", tx.State())
	}

	tx.SetState(Shrinking)
	tx.SetState(Committed)
	if tx.State() != Committed {
		t.Errorf("State() = %v, want Committed", tx.State())
	}
}

func TestContentionMatrixSharedCompatibleExclusiveNot(t *testing.T) {
	m := ContentionMatrix()

	if m[Shared][Shared] {
		t.Errorf("Shared/Shared conflicts = true, want false")
	}
	if !m[Shared][Exclusive] {
		t.Errorf("Shared/Exclusive conflicts = false, want true")
	}
	if !m[Exclusive][Exclusive] {
		t.Errorf("Exclusive/Exclusive conflicts = false, want true")
	}
}
