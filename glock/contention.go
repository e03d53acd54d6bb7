package glock

// ContentionMatrix declares which pairs of lock modes conflict. A value of
// Mode is used to index both dimensions, so the zero value of Mode must be
// a valid mode if the caller intends to use it.
//
// conflicts(a, b) is not required to equal conflicts(b, a) - see Conflicts.
// conflicts(m, m) decides whether m is shareable: false lets many holders of
// m coexist in one group (reader-like), true forces a single-member group
// (writer-like).
type ContentionMatrix[Mode comparable] map[Mode]map[Mode]bool

// NewContentionMatrix builds a ContentionMatrix from a flat list of
// conflicting mode pairs. Every (a, b) passed in is recorded as
// conflicting in both directions; build the map by hand instead if the
// matrix needs to be asymmetric.
func NewContentionMatrix[Mode comparable](conflictingPairs ...[2]Mode) ContentionMatrix[Mode] {
	m := make(ContentionMatrix[Mode])
	for _, pair := range conflictingPairs {
		m.set(pair[0], pair[1], true)
		m.set(pair[1], pair[0], true)
	}
	return m
}

func (m ContentionMatrix[Mode]) set(a, b Mode, v bool) {
	row, ok := m[a]
	if !ok {
		row = make(map[Mode]bool)
		m[a] = row
	}
	row[b] = v
}

// Conflicts reports whether a request in mode a conflicts with one in mode
// b, i.e. whether the two are kept out of the same granted group. An absent
// entry is treated as no conflict.
func (m ContentionMatrix[Mode]) Conflicts(a, b Mode) bool {
	row, ok := m[a]
	if !ok {
		return false
	}
	return row[b]
}
