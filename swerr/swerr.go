// Package swerr defines the sentinel error kinds shared across swarmweld's
// packages. Callers match with errors.Is; wrapped context is added with
// fmt.Errorf("%w: ...").
package swerr

import "errors"

var (
	// ErrDegenerateVector is returned by unit_vector / angle-between on a
	// zero-magnitude input.
	ErrDegenerateVector = errors.New("swarmweld: degenerate vector")

	// ErrIncompatibleShapePair is returned when in_collision is called
	// between two collision shape variants that have no defined test.
	ErrIncompatibleShapePair = errors.New("swarmweld: incompatible collision shape pair")

	// ErrUncoverableCapability is returned at plan entry when some contour's
	// tool is required by no agent's capability set.
	ErrUncoverableCapability = errors.New("swarmweld: no agent covers required tool capability")

	// ErrDegenerateTrajectory is returned by the collision engine when asked
	// to check a trajectory with zero duration and zero length.
	ErrDegenerateTrajectory = errors.New("swarmweld: degenerate trajectory")
	ErrCycleDetected        = errors.New("swarmweld: dependency graph contains a cycle")
)
