package graph

import "errors"

var (
	// ErrAlreadyExists is returned when marking an edge to a node that already has one.
	ErrAlreadyExists = errors.New("edge already exists")

	// ErrDoesNotExist is returned when unmarking an edge that was never marked.
	ErrDoesNotExist = errors.New("edge does not exist")

	// ErrMaxDepthExceeded is returned by a guarded walk that would descend past PropagationConfig.MaxDepth.
	ErrMaxDepthExceeded = errors.New("propagation depth limit exceeded")

	// ErrCycleDetected is returned by a guarded walk that would re-enter a node on its current path.
	ErrCycleDetected = errors.New("propagation cycle detected")

	// ErrUnknownPolicy is returned by ParsePolicy for names it does not recognise.
	ErrUnknownPolicy = errors.New("unknown notification policy")
)
