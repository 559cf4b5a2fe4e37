package graphrl

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// maskPenalty is subtracted from the value estimate of every already
	// selected node before the argmax in PickNode.
	maskPenalty = 9999999999.0

	// maskFloor is the plausibility bound on the chosen value: an argmax
	// at or below -maskFloor means the mask "won", i.e. the embedder
	// returned degenerate estimates.
	maskFloor = 999999999.0

	// fullSolution marks a Solution that is not a view.
	fullSolution = -1
)

// backing is the storage shared between a Solution and its views: the
// ordered selection and the feature vector stamping, for each node, the
// 1-based step at which it was selected (0 = unselected).
type backing struct {
	nodes  []int
	stamps []float64
}

// Solution is an ordered, growable sequence of selected node indices over
// a Graph.
//
// A Solution is either full (it owns the current end of its backing) or a
// view: SubsolutionAtStep returns in O(1) a Solution sharing the same
// backing but exposing only the first viewLen selections. A view reads the
// live backing filtered by its bound until the first mutation, which
// copies the truncated state into fresh storage (copy-on-write) and makes
// the view an independent full solution.
//
// AddNode returns a new Solution sharing the extended backing; the
// receiver becomes a view of its pre-append length and should not be
// extended again through the old handle without branching semantics in
// mind.
//
// Solutions are not safe for concurrent use.
type Solution struct {
	graph *Graph
	store *backing

	// viewLen is the view bound, or fullSolution when this Solution
	// exposes the whole backing.
	viewLen int
}

// NewSolution returns an empty solution over g.
func NewSolution(g *Graph) *Solution {
	return &Solution{
		graph: g,
		store: &backing{
			nodes:  nil,
			stamps: make([]float64, g.NumNodes()),
		},
		viewLen: fullSolution,
	}
}

// Graph returns the underlying graph (shared, not owned).
func (s *Solution) Graph() *Graph {
	return s.graph
}

// resolve materializes a view into independent storage: the feature
// vector is copied with every stamp beyond the bound cleared, the
// selection is truncated, and the view marker is dropped. No-op on a full
// solution.
func (s *Solution) resolve() {
	if s.viewLen == fullSolution {
		return
	}

	bound := min(s.viewLen, len(s.store.nodes))
	stamps := make([]float64, len(s.store.stamps))
	copy(stamps, s.store.stamps)
	for _, idx := range s.store.nodes[bound:] {
		stamps[idx] = 0
	}
	nodes := make([]int, bound)
	copy(nodes, s.store.nodes[:bound])

	s.store = &backing{nodes: nodes, stamps: stamps}
	s.viewLen = fullSolution
}

// AddNode selects node idx and returns the extended solution as a new
// Solution sharing the updated backing. A view is resolved first, so
// branching from a subsolution copies instead of corrupting the parent.
// The receiver itself becomes a view of its pre-append length.
//
// Returns ErrNodeOutOfRange if idx is outside [0, N) and
// ErrNodeAlreadySelected if idx is already part of the solution.
func (s *Solution) AddNode(idx int) (*Solution, error) {
	if idx < 0 || idx >= s.graph.NumNodes() {
		return nil, fmt.Errorf("%w: node %d (graph has %d nodes)", ErrNodeOutOfRange, idx, s.graph.NumNodes())
	}
	s.resolve()
	if s.store.stamps[idx] != 0 {
		return nil, fmt.Errorf("%w: node %d", ErrNodeAlreadySelected, idx)
	}

	s.viewLen = len(s.store.nodes)
	s.store.nodes = append(s.store.nodes, idx)
	s.store.stamps[idx] = float64(len(s.store.nodes))

	return &Solution{graph: s.graph, store: s.store, viewLen: fullSolution}, nil
}

// Adjacency returns the graph's base adjacency matrix.
func (s *Solution) Adjacency() *mat.Dense {
	return s.graph.Adjacency()
}

// AdjacencyPadded returns the graph's adjacency matrix padded to pad.
func (s *Solution) AdjacencyPadded(pad int) (*mat.Dense, error) {
	return s.graph.AdjacencyPadded(pad)
}

// Weights returns the graph's base weight matrix.
func (s *Solution) Weights() *mat.Dense {
	return s.graph.Weights()
}

// WeightsPadded returns the graph's weight matrix padded to pad.
func (s *Solution) WeightsPadded(pad int) (*mat.Dense, error) {
	return s.graph.WeightsPadded(pad)
}

// Features returns a fresh 0/1 indicator vector of length N marking the
// nodes selected at or before the effective step count. Under a view,
// nodes stamped after the view bound are not marked even though the
// backing records them.
func (s *Solution) Features() *mat.VecDense {
	n := s.graph.NumNodes()
	f := mat.NewVecDense(n, nil)
	for i, stamp := range s.store.stamps {
		if stamp == 0 {
			continue
		}
		if s.viewLen != fullSolution && stamp > float64(s.viewLen) {
			continue
		}
		f.SetVec(i, 1)
	}

	return f
}

// FeaturesPadded returns Features zero-extended to length pad. Returns
// ErrPadTooSmall if pad < N.
func (s *Solution) FeaturesPadded(pad int) (*mat.VecDense, error) {
	n := s.graph.NumNodes()
	if pad < n {
		return nil, fmt.Errorf("%w: pad %d < %d nodes", ErrPadTooSmall, pad, n)
	}

	f := mat.NewVecDense(pad, nil)
	f.SliceVec(0, n).(*mat.VecDense).CopyVec(s.Features())

	return f, nil
}

// NodesIncluded returns a copy of the effective selection, in selection
// order.
func (s *Solution) NodesIncluded() []int {
	end := min(s.Len(), len(s.store.nodes))
	out := make([]int, end)
	copy(out, s.store.nodes[:end])

	return out
}

// Len returns the effective length: the view bound for a view, the full
// selection count otherwise.
func (s *Solution) Len() int {
	if s.viewLen != fullSolution {
		return s.viewLen
	}

	return len(s.store.nodes)
}

// At returns the k-th selected node. Under a view, indices at or past the
// view bound return ErrIndexOutOfRange.
func (s *Solution) At(k int) (int, error) {
	if k < 0 || k >= s.Len() || k >= len(s.store.nodes) {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, k, s.Len())
	}

	return s.store.nodes[k], nil
}

// Contains reports whether node has a selection stamp in the backing.
// Note this consults the full backing, not the view bound, mirroring the
// membership semantics AddNode enforces.
func (s *Solution) Contains(node int) bool {
	if node < 0 || node >= len(s.store.stamps) {
		return false
	}

	return s.store.stamps[node] != 0
}

// PickRandomNode selects uniformly at random among the unselected nodes.
// It resolves a view first, so a view samples from its own truncated
// frontier rather than the parent's. Returns ErrNoUnselectedNodes when
// the solution already covers the whole graph.
func (s *Solution) PickRandomNode(rng *rand.Rand) (int, error) {
	s.resolve()
	remaining := s.graph.NumNodes() - len(s.store.nodes)
	if remaining <= 0 {
		return 0, ErrNoUnselectedNodes
	}

	pos := rng.Intn(remaining)
	for i, stamp := range s.store.stamps {
		if stamp != 0 {
			continue
		}
		if pos == 0 {
			return i, nil
		}
		pos--
	}

	// Unreachable: remaining counted the zero stamps above.
	return 0, ErrNoUnselectedNodes
}

// PickNode chooses the next node to select. With probability epsilon it
// picks uniformly among the unselected nodes; otherwise it queries the
// embedder on the singleton batch [s], masks the values of already
// selected nodes and returns the argmax (first maximal index on ties).
//
// Returns ErrSolutionComplete when no node can be added,
// ErrDegenerateValues when the masked argmax is implausibly low (the
// embedder returned values that cannot be told apart from the mask), and
// propagates embedder errors.
func (s *Solution) PickNode(e Embedder, epsilon float64, rng *rand.Rand) (int, error) {
	n := s.graph.NumNodes()
	if s.Len() >= n {
		return 0, fmt.Errorf("%w: %d nodes selected", ErrSolutionComplete, s.Len())
	}
	if rng.Float64() < epsilon {
		return s.PickRandomNode(rng)
	}

	values, _, err := e.Embed([]*Solution{s})
	if err != nil {
		return 0, fmt.Errorf("graphrl: embedder failed: %w", err)
	}

	q := make([]float64, n)
	feats := s.Features()
	for i := 0; i < n; i++ {
		q[i] = values.At(0, i) - maskPenalty*feats.AtVec(i)
	}

	best := floats.MaxIdx(q)
	if q[best] <= -maskFloor {
		return 0, fmt.Errorf("%w: best value %g", ErrDegenerateValues, q[best])
	}

	return best, nil
}

// Equal reports whether the two solutions select the same nodes in the
// same order, up to their effective lengths, over graphs that are equal
// by value. Sharing the same backing and view bound short-circuits to
// true.
func (s *Solution) Equal(other *Solution) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Len() != other.Len() {
		return false
	}
	if !s.graph.Equal(other.graph) {
		return false
	}
	if s.store == other.store && s.viewLen == other.viewLen {
		return true
	}
	for i := 0; i < s.Len(); i++ {
		// A view bound past the backing has no node to compare.
		if i >= len(s.store.nodes) || i >= len(other.store.nodes) {
			return false
		}
		if s.store.nodes[i] != other.store.nodes[i] {
			return false
		}
	}

	return true
}

// SubsolutionAtStep returns, in O(1), a view exposing only the first step
// selections. The view shares storage with s until first mutated; bounds
// are enforced lazily by At, Iter and Len consumers.
func (s *Solution) SubsolutionAtStep(step int) *Solution {
	return &Solution{graph: s.graph, store: s.store, viewLen: step}
}

// String renders the effective selection.
func (s *Solution) String() string {
	return fmt.Sprint(s.NodesIncluded())
}

// Iter returns a fresh iterator over the effective selection in selection
// order. The iterator re-checks the effective length on every step, so it
// observes the live bound of the solution it walks.
func (s *Solution) Iter() *SolutionIter {
	return &SolutionIter{solution: s}
}

// SolutionIter walks a Solution's effective selection in order.
type SolutionIter struct {
	solution *Solution
	i        int
}

// Next returns the next selected node, or ok=false when the effective
// selection is exhausted.
func (it *SolutionIter) Next() (node int, ok bool) {
	if it.i >= it.solution.Len() || it.i >= len(it.solution.store.nodes) {
		return 0, false
	}
	node = it.solution.store.nodes[it.i]
	it.i++

	return node, true
}
