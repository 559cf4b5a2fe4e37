package graphrl

import "gonum.org/v1/gonum/mat"

// Embedder maps a batch of solutions to per-node action-value estimates
// and per-node embeddings. Row i of both outputs corresponds to batch[i];
// columns cover node indices up to the largest graph in the batch, padded
// with arbitrary values beyond each graph's node count.
//
// The graph-embedding network (message passing, parameter learning) lives
// behind this interface and is not part of this package. PickNode consumes
// only the value estimates of a singleton batch.
type Embedder interface {
	Embed(batch []*Solution) (values, embeddings *mat.Dense, err error)
}
