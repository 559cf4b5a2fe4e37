package graphrl

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Graph is an immutable adjacency/weights pair for a fixed problem
// instance. Both matrices are square with identical dimensions; the node
// count is fixed for the object's lifetime.
//
// Padded variants requested through AdjacencyPadded/WeightsPadded are
// memoized per pad size, so batch collation over a handful of padding
// targets does not re-allocate. Callers must not mutate any matrix
// returned by a Graph.
type Graph struct {
	adjacency *mat.Dense
	weights   *mat.Dense
	n         int

	adjCache map[int]*mat.Dense
	wtCache  map[int]*mat.Dense
}

// NewGraph builds a Graph from an adjacency matrix and a weight matrix.
// Both must be square and of identical dimensions. The matrices are not
// copied; the caller hands over ownership and must not mutate them
// afterwards.
func NewGraph(adjacency, weights *mat.Dense) (*Graph, error) {
	ar, ac := adjacency.Dims()
	if ar != ac {
		return nil, fmt.Errorf("graphrl: adjacency matrix must be square, got %dx%d", ar, ac)
	}
	wr, wc := weights.Dims()
	if wr != ar || wc != ac {
		return nil, fmt.Errorf("graphrl: weight matrix %dx%d does not match adjacency %dx%d", wr, wc, ar, ac)
	}

	return &Graph{
		adjacency: adjacency,
		weights:   weights,
		n:         ar,
		adjCache:  make(map[int]*mat.Dense),
		wtCache:   make(map[int]*mat.Dense),
	}, nil
}

// NewGraphFromNeighbors builds a Graph from per-node neighbor lists:
// adjacency and weights get 1.0 at (i, j) for every j in neighbors[i].
// The node count is len(neighbors).
func NewGraphFromNeighbors(neighbors [][]int) (*Graph, error) {
	n := len(neighbors)
	adjacency := mat.NewDense(n, n, nil)
	weights := mat.NewDense(n, n, nil)
	for i, nbrs := range neighbors {
		for _, j := range nbrs {
			if j < 0 || j >= n {
				return nil, fmt.Errorf("%w: neighbor %d of node %d (graph has %d nodes)", ErrNodeOutOfRange, j, i, n)
			}
			adjacency.Set(i, j, 1)
			weights.Set(i, j, 1)
		}
	}

	return NewGraph(adjacency, weights)
}

// NumNodes returns the node count N.
func (g *Graph) NumNodes() int {
	return g.n
}

// Adjacency returns the base adjacency matrix. Callers must not mutate it.
func (g *Graph) Adjacency() *mat.Dense {
	return g.adjacency
}

// Weights returns the base weight matrix. Callers must not mutate it.
func (g *Graph) Weights() *mat.Dense {
	return g.weights
}

// AdjacencyPadded returns the adjacency matrix zero-padded to pad x pad,
// with the original in the top-left block. The result is memoized per pad
// value: repeated calls return the identical matrix. Returns
// ErrPadTooSmall if pad < NumNodes().
func (g *Graph) AdjacencyPadded(pad int) (*mat.Dense, error) {
	return padded(g.adjacency, g.n, pad, g.adjCache)
}

// WeightsPadded is the weight-matrix counterpart of AdjacencyPadded.
func (g *Graph) WeightsPadded(pad int) (*mat.Dense, error) {
	return padded(g.weights, g.n, pad, g.wtCache)
}

func padded(base *mat.Dense, n, pad int, cache map[int]*mat.Dense) (*mat.Dense, error) {
	if m, ok := cache[pad]; ok {
		return m, nil
	}
	if pad < n {
		return nil, fmt.Errorf("%w: pad %d < %d nodes", ErrPadTooSmall, pad, n)
	}

	m := mat.NewDense(pad, pad, nil)
	m.Slice(0, n, 0, n).(*mat.Dense).Copy(base)
	cache[pad] = m

	return m, nil
}

// Equal reports exact elementwise equality of both adjacency and weight
// matrices. Two nil graphs are equal; nil never equals non-nil.
func (g *Graph) Equal(other *Graph) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g == other {
		return true
	}

	return mat.Equal(g.adjacency, other.adjacency) && mat.Equal(g.weights, other.weights)
}
