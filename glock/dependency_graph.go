package glock

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/golang-collections/collections/stack"
)

// DependencyGraph is a directed graph of waits-for edges between
// transactions, with at most one edge per ordered pair. An edge a -> b
// means "a is waiting on b". Idempotent Add/Remove make it safe for the
// manager to call them on every group boundary crossed without tracking
// whether an edge already exists.
type DependencyGraph[T comparable] struct {
	edges map[T]map[T]struct{}
}

func NewDependencyGraph[T comparable]() *DependencyGraph[T] {
	return &DependencyGraph[T]{edges: make(map[T]map[T]struct{})}
}

// Add inserts edge a -> b. Repeated calls are a no-op.
func (g *DependencyGraph[T]) Add(a, b T) {
	out, ok := g.edges[a]
	if !ok {
		out = make(map[T]struct{})
		g.edges[a] = out
	}
	out[b] = struct{}{}
}

// Remove deletes edge a -> b if it exists, no-op otherwise.
func (g *DependencyGraph[T]) Remove(a, b T) {
	out, ok := g.edges[a]
	if !ok {
		return
	}
	delete(out, b)
	if len(out) == 0 {
		delete(g.edges, a)
	}
}

// RemoveVertex deletes v and every edge incident to it, in either
// direction.
func (g *DependencyGraph[T]) RemoveVertex(v T) {
	delete(g.edges, v)
	for _, out := range g.edges {
		delete(out, v)
	}
}

// ClearOutgoing removes every edge originating at v, leaving edges that
// point at v from elsewhere untouched. A waiter recomputes its own outgoing
// edges on every probe; clearing only its own fan-out lets other vertices'
// edges into v - legitimately someone else waiting on v as a holder -
// survive the refresh.
func (g *DependencyGraph[T]) ClearOutgoing(v T) {
	delete(g.edges, v)
}

// HasEdge reports whether edge a -> b exists.
func (g *DependencyGraph[T]) HasEdge(a, b T) bool {
	out, ok := g.edges[a]
	if !ok {
		return false
	}
	_, ok = out[b]
	return ok
}

// frame is one level of the explicit DFS stack used by DetectCycleFrom. An
// iterative traversal is used instead of recursion so that a long wait-for
// chain cannot blow the goroutine stack.
type frame[T comparable] struct {
	node     T
	children []T
	idx      int
}

// DetectCycleFrom runs a DFS from v over outgoing edges, three-coloring
// vertices as not-visited/visiting/visited. A cycle exists iff the walk
// reaches a vertex still in the "visiting" state. On success it calls
// handler with the set of vertices that make up the cycle, reconstructed by
// walking parent pointers back from the hit vertex to itself. Each call
// starts from fresh color/parent state, costing O(V+E).
func (g *DependencyGraph[T]) DetectCycleFrom(v T, handler func(cycle mapset.Set[T])) {
	const (
		visiting = 1
		visited  = 2
	)
	color := make(map[T]int)
	parent := make(map[T]T)

	color[v] = visiting
	parent[v] = v
	st := stack.New()
	st.Push(&frame[T]{node: v, children: g.neighborsOf(v)})

	var cycleAt T
	found := false

loop:
	for st.Len() > 0 {
		top := st.Peek().(*frame[T])
		if top.idx >= len(top.children) {
			color[top.node] = visited
			st.Pop()
			continue
		}
		child := top.children[top.idx]
		top.idx++

		switch color[child] {
		case visiting:
			parent[child] = top.node
			cycleAt = child
			found = true
			break loop
		case visited:
			// already fully explored with no cycle down that path
		default:
			parent[child] = top.node
			color[child] = visiting
			st.Push(&frame[T]{node: child, children: g.neighborsOf(child)})
		}
	}

	if !found {
		return
	}

	cycle := mapset.NewThreadUnsafeSet[T]()
	cycle.Add(cycleAt)
	for p := parent[cycleAt]; p != cycleAt; p = parent[p] {
		cycle.Add(p)
	}
	handler(cycle)
}

func (g *DependencyGraph[T]) neighborsOf(v T) []T {
	out, ok := g.edges[v]
	if !ok {
		return nil
	}
	neighbors := make([]T, 0, len(out))
	for n := range out {
		neighbors = append(neighbors, n)
	}
	return neighbors
}
