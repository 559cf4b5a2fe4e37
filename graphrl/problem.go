package graphrl

import "gonum.org/v1/gonum/mat"

// Problem defines the reward and termination semantics of a combinatorial
// problem, generic over the Solution state. Implementations are stateless
// strategies.
type Problem interface {
	// Cost scores a solution state; rewards are differences of costs.
	Cost(s *Solution) float64

	// Terminate reports whether the solution is complete for the problem.
	Terminate(s *Solution) bool
}

// CumulReward returns the cumulative reward collected between two steps
// of the same solution: Cost at step to minus Cost at step from. Both
// states are taken as O(1) subsolution views.
func CumulReward(p Problem, s *Solution, from, to int) float64 {
	return p.Cost(s.SubsolutionAtStep(to)) - p.Cost(s.SubsolutionAtStep(from))
}

// MVCProblem implements Problem for Minimum Vertex Cover: every selected
// node costs one unit, and the episode terminates once every edge has at
// least one selected endpoint.
type MVCProblem struct{}

// Terminate copies the adjacency matrix, zeroes the row and column of
// every selected node and reports whether any edge entry remains. O(N²).
func (MVCProblem) Terminate(s *Solution) bool {
	adjacency := mat.DenseCopyOf(s.Adjacency())
	n, _ := adjacency.Dims()

	it := s.Iter()
	for sel, ok := it.Next(); ok; sel, ok = it.Next() {
		for i := 0; i < n; i++ {
			adjacency.Set(sel, i, 0)
			adjacency.Set(i, sel, 0)
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if adjacency.At(i, j) == 1 {
				return false
			}
		}
	}

	return true
}

// Cost is the negative of the number of selected nodes: adding a node
// costs one unit.
func (MVCProblem) Cost(s *Solution) float64 {
	return -float64(s.Len())
}
