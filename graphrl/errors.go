package graphrl

import "errors"

// Sentinel errors returned by Graph and Solution operations.
// Match with errors.Is.
var (
	// ErrPadTooSmall is returned when a requested padded size is smaller
	// than the graph's node count.
	ErrPadTooSmall = errors.New("graphrl: pad smaller than node count")

	// ErrNodeOutOfRange is returned when a node index is outside [0, N).
	ErrNodeOutOfRange = errors.New("graphrl: node index out of range")

	// ErrNodeAlreadySelected is returned when adding a node that is
	// already part of the solution.
	ErrNodeAlreadySelected = errors.New("graphrl: node already selected")

	// ErrSolutionComplete is returned by PickNode when the solution
	// already covers every node of the graph.
	ErrSolutionComplete = errors.New("graphrl: solution already covers all nodes")

	// ErrIndexOutOfRange is returned when indexing a solution past its
	// effective length.
	ErrIndexOutOfRange = errors.New("graphrl: solution index out of range")

	// ErrNoUnselectedNodes signals that no candidate node remains. It is
	// distinct from the precondition errors above so callers can end an
	// episode cleanly.
	ErrNoUnselectedNodes = errors.New("graphrl: no unselected nodes remain")

	// ErrDegenerateValues signals that the embedder returned values so low
	// that the masked argmax landed on a masked entry. This is a defect in
	// the value estimates, not a recoverable condition.
	ErrDegenerateValues = errors.New("graphrl: embedder values degenerate after masking")
)
