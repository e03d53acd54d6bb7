package glock

import "testing"

func TestIndexedListEmplaceBackAndOrder(t *testing.T) {
	l := NewIndexedList[string, int]()

	if _, inserted := l.EmplaceBack("a", 1); !inserted {
		t.Errorf("EmplaceBack(a) inserted = false, want true")
	}
	l.EmplaceBack("b", 2)
	l.EmplaceBack("c", 3)

	if l.Len() != 3 {
		t.Errorf("Len() = %v, want 3", l.Len())
	}

	var keys []string
	l.Each(func(k string, v int) bool {
		keys = append(keys, k)
		return true
	})
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %v, want %v", i, keys[i], k)
		}
	}
}

func TestIndexedListEmplaceBackDuplicateIsNoOp(t *testing.T) {
	l := NewIndexedList[string, int]()
	l.EmplaceBack("a", 1)

	node, inserted := l.EmplaceBack("a", 2)
	if inserted {
		t.Errorf("EmplaceBack(a) second call inserted = true, want false")
	}
	if node.Value != 1 {
		t.Errorf("node.Value = %v, want 1 - second insert must not overwrite", node.Value)
	}
}

func TestIndexedListEraseKeepsNeighborOrder(t *testing.T) {
	l := NewIndexedList[string, int]()
	l.EmplaceBack("a", 1)
	l.EmplaceBack("b", 2)
	l.EmplaceBack("c", 3)

	l.Erase("b")

	if l.Contains("b") {
		t.Errorf("Contains(b) = true after Erase, want false")
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %v, want 2", l.Len())
	}

	var keys []string
	l.Each(func(k string, v int) bool {
		keys = append(keys, k)
		return true
	})
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("remaining keys = %v, want [a c]", keys)
	}
}

func TestIndexedListEraseHeadAndTail(t *testing.T) {
	l := NewIndexedList[string, int]()
	l.EmplaceBack("a", 1)
	l.EmplaceBack("b", 2)
	l.EmplaceBack("c", 3)

	l.Erase("a")
	if l.Front().Key != "b" {
		t.Errorf("Front().Key = %v, want b", l.Front().Key)
	}

	l.Erase("c")
	if l.Back().Key != "b" {
		t.Errorf("Back().Key = %v, want b", l.Back().Key)
	}

	l.Erase("b")
	if !l.Empty() {
		t.Errorf("Empty() = false after erasing every entry, want true")
	}
	if l.Front() != nil || l.Back() != nil {
		t.Errorf("Front()/Back() non-nil on empty list")
	}
}

func TestIndexedListEachStopsEarly(t *testing.T) {
	l := NewIndexedList[int, int]()
	for i := 0; i < 5; i++ {
		l.EmplaceBack(i, i*10)
	}

	seen := 0
	l.Each(func(k, v int) bool {
		seen++
		return k != 2
	})
	if seen != 3 {
		t.Errorf("Each visited %d entries before stopping, want 3", seen)
	}
}

func TestIndexedListEntriesSnapshotOrder(t *testing.T) {
	l := NewIndexedList[string, int]()
	l.EmplaceBack("a", 1)
	l.EmplaceBack("b", 2)

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %v, want 2", len(entries))
	}
	if entries[0].First != "a" || entries[0].Second != 1 {
		t.Errorf("entries[0] = %+v, want {a 1}", entries[0])
	}
	if entries[1].First != "b" || entries[1].Second != 2 {
		t.Errorf("entries[1] = %+v, want {b 2}", entries[1])
	}
}
