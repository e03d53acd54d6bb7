// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import "time"

// DefaultCycleDetectionInterval is how often a blocked Lock call re-probes
// the dependency graph for a cycle while it waits.
const DefaultCycleDetectionInterval = 300 * time.Millisecond

var EnableDebug bool = false
