// Command glockdemo runs a couple of transactions against a glock.Manager
// to exercise exclusive-lock contention and deadlock recovery end to end.
package main

import (
	"fmt"
	"sync"

	"github.com/ryogrid/glock/glock"
	"github.com/ryogrid/glock/types"
	"github.com/ryogrid/glock/txn"
)

func main() {
	matrix := glock.ContentionMatrix[txn.LockMode](txn.ContentionMatrix())
	manager := glock.NewManager[types.RID, types.TxnID, txn.LockMode](matrix)

	r0 := types.NewRID(types.PageID(0), 0)
	r1 := types.NewRID(types.PageID(0), 1)

	a := txn.New(types.TxnID(1))
	b := txn.New(types.TxnID(2))

	if !manager.Lock(r0, a.ID(), txn.Exclusive) {
		panic("txn 1 denied an uncontended lock")
	}
	a.NoteGranted(r0, txn.Exclusive)
	fmt.Printf("txn %d holds r0 exclusive\n", a.ID())

	if !manager.Lock(r1, b.ID(), txn.Exclusive) {
		panic("txn 2 denied an uncontended lock")
	}
	b.NoteGranted(r1, txn.Exclusive)
	fmt.Printf("txn %d holds r1 exclusive\n", b.ID())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if manager.Lock(r1, a.ID(), txn.Exclusive) {
			a.NoteGranted(r1, txn.Exclusive)
			fmt.Printf("txn %d granted r1\n", a.ID())
		} else {
			fmt.Printf("txn %d denied r1 - deadlock victim\n", a.ID())
		}
	}()

	go func() {
		defer wg.Done()
		if manager.Lock(r0, b.ID(), txn.Exclusive) {
			b.NoteGranted(r0, txn.Exclusive)
			fmt.Printf("txn %d granted r0\n", b.ID())
		} else {
			fmt.Printf("txn %d denied r0 - deadlock victim\n", b.ID())
			b.SetState(txn.Aborted)
			manager.Unlock(r1, b.ID())
			b.NoteReleased(r1)
		}
	}()

	wg.Wait()

	for _, rid := range a.ExclusiveLocks() {
		manager.Unlock(rid, a.ID())
	}
	for _, rid := range b.ExclusiveLocks() {
		manager.Unlock(rid, b.ID())
	}
}
