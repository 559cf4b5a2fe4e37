package graphrl

import (
	"math/rand"
	"testing"
)

const benchNodes = 128

// benchGraph builds a ring over benchNodes nodes so termination scans
// have real edges to cover.
func benchGraph(b *testing.B) *Graph {
	b.Helper()
	neighbors := make([][]int, benchNodes)
	for i := range neighbors {
		neighbors[i] = []int{(i + 1) % benchNodes, (i + benchNodes - 1) % benchNodes}
	}
	g, err := NewGraphFromNeighbors(neighbors)
	if err != nil {
		b.Fatalf("building graph: %v", err)
	}

	return g
}

func BenchmarkAddNode(b *testing.B) {
	g := benchGraph(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s := NewSolution(g)
		for idx := 0; idx < benchNodes; idx++ {
			next, err := s.AddNode(idx)
			if err != nil {
				b.Fatal(err)
			}
			s = next
		}
	}
}

func BenchmarkSubsolutionView(b *testing.B) {
	g := benchGraph(b)
	s := NewSolution(g)
	for idx := 0; idx < benchNodes; idx++ {
		next, err := s.AddNode(idx)
		if err != nil {
			b.Fatal(err)
		}
		s = next
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		view := s.SubsolutionAtStep(i % benchNodes)
		if view.Len() > benchNodes {
			b.Fatal("bad view length")
		}
	}
}

func BenchmarkFeatures(b *testing.B) {
	g := benchGraph(b)
	s := NewSolution(g)
	for idx := 0; idx < benchNodes/2; idx++ {
		next, err := s.AddNode(idx * 2)
		if err != nil {
			b.Fatal(err)
		}
		s = next
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = s.Features()
	}
}

func BenchmarkMVCTerminate(b *testing.B) {
	g := benchGraph(b)
	rng := rand.New(rand.NewSource(42))

	s := NewSolution(g)
	for idx := 0; idx < benchNodes/2; idx++ {
		node, err := s.PickRandomNode(rng)
		if err != nil {
			b.Fatal(err)
		}
		next, err := s.AddNode(node)
		if err != nil {
			b.Fatal(err)
		}
		s = next
	}

	var prob MVCProblem
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = prob.Terminate(s)
	}
}

func BenchmarkPickRandomNode(b *testing.B) {
	g := benchGraph(b)
	rng := rand.New(rand.NewSource(42))
	s := NewSolution(g)
	for idx := 0; idx < benchNodes/2; idx++ {
		next, err := s.AddNode(idx)
		if err != nil {
			b.Fatal(err)
		}
		s = next
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := s.PickRandomNode(rng); err != nil {
			b.Fatal(err)
		}
	}
}
