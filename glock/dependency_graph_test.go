package glock

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
)

func TestDependencyGraphAddHasEdgeRemove(t *testing.T) {
	g := NewDependencyGraph[int]()
	g.Add(1, 2)

	if !g.HasEdge(1, 2) {
		t.Errorf("HasEdge(1, 2) = false, want true")
	}
	if g.HasEdge(2, 1) {
		t.Errorf("HasEdge(2, 1) = true, want false")
	}

	g.Remove(1, 2)
	if g.HasEdge(1, 2) {
		t.Errorf("HasEdge(1, 2) = true after Remove, want false")
	}
}

func TestDependencyGraphNoCycleInDAG(t *testing.T) {
	g := NewDependencyGraph[int]()
	g.Add(1, 2)
	g.Add(2, 3)

	found := false
	g.DetectCycleFrom(1, func(cycle mapset.Set[int]) { found = true })
	if found {
		t.Errorf("DetectCycleFrom found a cycle in an acyclic graph")
	}
}

func TestDependencyGraphDetectsDirectCycle(t *testing.T) {
	g := NewDependencyGraph[int]()
	g.Add(1, 2)
	g.Add(2, 1)

	var cycle mapset.Set[int]
	g.DetectCycleFrom(1, func(c mapset.Set[int]) { cycle = c })

	if cycle == nil {
		t.Fatalf("DetectCycleFrom found no cycle, want {1, 2}")
	}
	if !cycle.Contains(1) || !cycle.Contains(2) || cycle.Cardinality() != 2 {
		t.Errorf("cycle = %v, want {1, 2}", cycle)
	}
}

func TestDependencyGraphDetectsIndirectCycle(t *testing.T) {
	g := NewDependencyGraph[int]()
	g.Add(1, 2)
	g.Add(2, 3)
	g.Add(3, 1)

	var cycle mapset.Set[int]
	g.DetectCycleFrom(1, func(c mapset.Set[int]) { cycle = c })

	if cycle == nil {
		t.Fatalf("DetectCycleFrom found no cycle, want {1, 2, 3}")
	}
	if cycle.Cardinality() != 3 || !cycle.Contains(1) || !cycle.Contains(2) || !cycle.Contains(3) {
		t.Errorf("cycle = %v, want {1, 2, 3}", cycle)
	}
}

func TestDependencyGraphClearOutgoingLeavesIncomingIntact(t *testing.T) {
	g := NewDependencyGraph[int]()
	g.Add(1, 2)
	g.Add(2, 3)

	g.ClearOutgoing(2)

	if g.HasEdge(2, 3) {
		t.Errorf("HasEdge(2, 3) = true after ClearOutgoing(2), want false")
	}
	if !g.HasEdge(1, 2) {
		t.Errorf("HasEdge(1, 2) = false after ClearOutgoing(2), want true - incoming edges must survive")
	}
}

func TestDependencyGraphRemoveVertexClearsBothDirections(t *testing.T) {
	g := NewDependencyGraph[int]()
	g.Add(1, 2)
	g.Add(2, 3)

	g.RemoveVertex(2)

	if g.HasEdge(1, 2) || g.HasEdge(2, 3) {
		t.Errorf("edges touching vertex 2 survived RemoveVertex")
	}
}
