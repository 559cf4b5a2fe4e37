// Package graphrl provides the state representation for solving graph
// combinatorial-optimization problems with reinforcement learning: an
// immutable Graph, a growable Solution with O(1) copy-on-write prefix
// views, and the Problem contract (with Minimum Vertex Cover as the
// reference implementation) that turns solution states into rewards.
//
// An episode grows a Solution one node at a time via PickNode, either at
// random (epsilon-greedy exploration) or by the masked argmax of the
// value estimates produced by an external Embedder. Training consumes
// past states through SubsolutionAtStep views, which share storage with
// the full solution until first mutated.
//
// All randomized operations take an explicit *rand.Rand so runs are
// reproducible under a fixed seed. Nothing in this package is safe for
// concurrent mutation.
package graphrl
