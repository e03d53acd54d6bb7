package glock

import (
	"cmp"

	mapset "github.com/deckarep/golang-set/v2"
)

// VictimPolicy chooses which transaction to abort from a detected wait-for
// cycle. Implementations must be deterministic and side-effect-free - they
// run under the manager's latch.
type VictimPolicy[TransactionID comparable] func(cycle mapset.Set[TransactionID]) TransactionID

// SelectMaxPolicy returns the transaction with the largest id in the cycle.
// This is the default policy; it requires TransactionID to support
// ordering, hence the cmp.Ordered constraint.
func SelectMaxPolicy[TransactionID cmp.Ordered]() VictimPolicy[TransactionID] {
	return func(cycle mapset.Set[TransactionID]) TransactionID {
		var max TransactionID
		first := true
		cycle.Each(func(tx TransactionID) bool {
			if first || tx > max {
				max = tx
				first = false
			}
			return false
		})
		return max
	}
}

// SelectMinPolicy returns the transaction with the smallest id in the
// cycle - the counterpart to SelectMaxPolicy. Where ids grow with arrival
// order, it aborts the oldest transaction in the cycle rather than the
// youngest.
func SelectMinPolicy[TransactionID cmp.Ordered]() VictimPolicy[TransactionID] {
	return func(cycle mapset.Set[TransactionID]) TransactionID {
		var min TransactionID
		first := true
		cycle.Each(func(tx TransactionID) bool {
			if first || tx < min {
				min = tx
				first = false
			}
			return false
		})
		return min
	}
}
