package optim

import "errors"

// Domain errors for swarm construction and execution.
var (
	// ErrNotImplemented indicates an encoding that has not been configured
	// with concrete bounds. Engines reject it before any evaluation.
	ErrNotImplemented = errors.New("optim: encoding not implemented")

	// ErrNoEncoding indicates a run configuration without an encoding.
	ErrNoEncoding = errors.New("optim: no encoding configured")

	// ErrNoObjective indicates an engine constructed without an objective.
	ErrNoObjective = errors.New("optim: no objective configured")

	// ErrSwarmSize indicates a non-positive particle count.
	ErrSwarmSize = errors.New("optim: swarm size must be positive")

	// ErrIterations indicates a non-positive iteration budget.
	ErrIterations = errors.New("optim: iteration budget must be positive")

	// ErrUnknownEncoding indicates an unrecognized encoding name.
	ErrUnknownEncoding = errors.New("optim: unknown encoding")
)
