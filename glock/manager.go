package glock

import (
	"cmp"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/ryogrid/glock/common"
)

// lockTableEntry is the per-record bookkeeping the manager keeps lazily: a
// queue of request groups and the condition signal waiters on this record
// block on. Entries are created on first request and dropped once their
// queue drains, so an idle manager holds no per-record state at all.
type lockTableEntry[TransactionID, Mode comparable] struct {
	queue  *LockRequestQueue[TransactionID, Mode]
	signal *ConditionSignal
}

// Manager grants and revokes locks on records identified by RecordID, on
// behalf of transactions identified by TransactionID, under the compatibility
// rules of a ContentionMatrix over Mode. It serializes all bookkeeping
// behind a single latch and runs periodic wait-for cycle detection to break
// deadlocks by aborting a victim transaction's request.
//
// NewManager constrains TransactionID to cmp.Ordered so the default victim
// policy (SelectMaxPolicy) is available without extra configuration; supply
// a custom VictimPolicy via WithVictimPolicy if TransactionID's natural
// order is not the right tiebreak.
type Manager[RecordID, TransactionID comparable, Mode comparable] struct {
	matrix       ContentionMatrix[Mode]
	latch        deadlock.Mutex
	table        map[RecordID]*lockTableEntry[TransactionID, Mode]
	graph        *DependencyGraph[TransactionID]
	waitingOn    map[TransactionID]RecordID
	tick         time.Duration
	victimPolicy VictimPolicy[TransactionID]
}

// Option configures a Manager at construction time.
type Option[RecordID, TransactionID comparable, Mode comparable] func(*Manager[RecordID, TransactionID, Mode])

// WithTickInterval overrides how often a blocked Lock call re-probes the
// dependency graph for a cycle while it waits. The default is
// common.DefaultCycleDetectionInterval.
func WithTickInterval[RecordID, TransactionID comparable, Mode comparable](d time.Duration) Option[RecordID, TransactionID, Mode] {
	return func(m *Manager[RecordID, TransactionID, Mode]) { m.tick = d }
}

// WithVictimPolicy overrides which transaction in a detected cycle gets
// aborted. The default is SelectMaxPolicy.
func WithVictimPolicy[RecordID, TransactionID comparable, Mode comparable](p VictimPolicy[TransactionID]) Option[RecordID, TransactionID, Mode] {
	return func(m *Manager[RecordID, TransactionID, Mode]) { m.victimPolicy = p }
}

// NewManager builds a Manager over the given contention matrix.
func NewManager[RecordID comparable, TransactionID cmp.Ordered, Mode comparable](
	matrix ContentionMatrix[Mode],
	opts ...Option[RecordID, TransactionID, Mode],
) *Manager[RecordID, TransactionID, Mode] {
	m := &Manager[RecordID, TransactionID, Mode]{
		matrix:       matrix,
		table:        make(map[RecordID]*lockTableEntry[TransactionID, Mode]),
		graph:        NewDependencyGraph[TransactionID](),
		waitingOn:    make(map[TransactionID]RecordID),
		tick:         common.DefaultCycleDetectionInterval,
		victimPolicy: SelectMaxPolicy[TransactionID](),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lock blocks tx until it is granted mode on record, or until its request is
// denied as the victim of a deadlock. It returns true on grant, false on
// denial - a deadlock denial leaves tx with no request on record, so the
// caller need not call Unlock. It also returns false at once if tx already
// has a request on record; that existing request is left in place.
//
// A transaction may have at most one outstanding Lock call across the whole
// manager at a time; calling Lock again for the same tx before a prior call
// returns is a caller bug.
func (m *Manager[RecordID, TransactionID, Mode]) Lock(record RecordID, tx TransactionID, mode Mode) bool {
	m.latch.Lock()
	defer m.latch.Unlock()

	if _, already := m.waitingOn[tx]; already {
		panic(Error("glock: transaction already has an outstanding Lock call"))
	}

	e := m.entryFor(record)
	gid := e.queue.Emplace(tx, mode)
	if gid == NoGroup {
		// tx already has a request on this record - granted or waiting. No
		// upgrade/downgrade or re-entrant acquisition is supported; this is
		// an ordinary denial, not a caller bug.
		return false
	}
	req := e.queue.Get(tx)

	granted := func() bool {
		front, ok := e.queue.Front()
		return ok && front == gid
	}
	stop := func() bool { return granted() || req.IsDenied() }

	if !stop() {
		m.waitingOn[tx] = record
		probe := func() {
			m.refreshEdges(e, tx, gid)
			m.detectAndResolveCycles()
		}
		probe()
		e.signal.Wait(m.tick, probe, stop)
		delete(m.waitingOn, tx)
		m.graph.ClearOutgoing(tx)
	}

	if req.IsDenied() {
		e.queue.Remove(tx)
		m.cleanupIfEmpty(record, e)
		return false
	}
	return true
}

// Unlock releases tx's granted request on record and wakes any waiters who
// may now be at the front of the queue. It is a no-op if tx holds no
// request on record, or if tx's request has not yet been granted - a
// waiting request is only ever removed by the Lock call that placed it,
// observing its own denial, never by a concurrent Unlock.
func (m *Manager[RecordID, TransactionID, Mode]) Unlock(record RecordID, tx TransactionID) {
	m.latch.Lock()
	defer m.latch.Unlock()

	e, ok := m.table[record]
	if !ok {
		return
	}
	gid, ok := e.queue.GroupIDOf(tx)
	if !ok {
		return
	}
	front, ok := e.queue.Front()
	if !ok || front != gid {
		return
	}

	e.queue.Remove(tx)
	m.graph.RemoveVertex(tx)

	m.cleanupIfEmpty(record, e)
	e.signal.NotifyAll()
}

func (m *Manager[RecordID, TransactionID, Mode]) entryFor(record RecordID) *lockTableEntry[TransactionID, Mode] {
	e, ok := m.table[record]
	if ok {
		return e
	}
	e = &lockTableEntry[TransactionID, Mode]{queue: newLockRequestQueue[TransactionID, Mode](m.matrix)}
	e.signal = NewConditionSignal(&m.latch)
	m.table[record] = e
	return e
}

func (m *Manager[RecordID, TransactionID, Mode]) cleanupIfEmpty(record RecordID, e *lockTableEntry[TransactionID, Mode]) {
	if e.queue.Empty() {
		delete(m.table, record)
	}
}

// refreshEdges recomputes tx's outgoing wait-for edges from scratch: an edge
// tx -> other is added for every non-denied request in every group that
// strictly precedes tx's own group, regardless of whether other's mode
// conflicts with tx's requested mode. A later group is only ever granted
// once every earlier group has fully drained (see Unlock's strict
// front-advance), so tx waits on all of them, not just the conflicting
// members - a non-conflicting earlier member can still share a group with a
// conflicting one and block tx exactly as long as that groupmate does.
// Groups at or after gid never block tx, so the walk stops there.
func (m *Manager[RecordID, TransactionID, Mode]) refreshEdges(
	e *lockTableEntry[TransactionID, Mode],
	tx TransactionID,
	gid GroupID,
) {
	m.graph.ClearOutgoing(tx)
	e.queue.EachGroup(func(id GroupID, group *LockRequestGroup[TransactionID, Mode]) bool {
		if id == gid {
			return false
		}
		group.Each(func(other TransactionID, req *LockRequest[Mode]) bool {
			if !req.IsDenied() {
				m.graph.Add(tx, other)
			}
			return true
		})
		return true
	})
}

// detectAndResolveCycles runs a cycle probe rooted at every transaction
// currently waiting on a lock. Each discovered cycle is broken by denying
// its victim's one outstanding request and waking that record's waiters so
// the denial is observed promptly instead of at the next tick.
func (m *Manager[RecordID, TransactionID, Mode]) detectAndResolveCycles() {
	visited := make(map[TransactionID]bool, len(m.waitingOn))
	for start := range m.waitingOn {
		if visited[start] {
			continue
		}
		m.graph.DetectCycleFrom(start, func(cycle mapset.Set[TransactionID]) {
			cycle.Each(func(t TransactionID) bool {
				visited[t] = true
				return false
			})
			victim := m.victimPolicy(cycle)
			m.denyWaiting(victim)
		})
		visited[start] = true
	}
}

// denyWaiting marks victim's outstanding request as denied and wakes the
// record it is waiting on. It is a no-op if victim is not currently waiting
// on anything - e.g. it was already resolved by an earlier cycle this same
// probe.
func (m *Manager[RecordID, TransactionID, Mode]) denyWaiting(victim TransactionID) {
	record, ok := m.waitingOn[victim]
	if !ok {
		return
	}
	e, ok := m.table[record]
	if !ok {
		return
	}
	if req := e.queue.Get(victim); req != nil {
		req.Deny()
	}
	e.signal.NotifyAll()
}
