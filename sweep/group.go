// Package sweep implements the continuous collision engine (spec.md C4):
// the discrete-step whole-group check, the pairwise interval sweep, and the
// schedule-level helpers (schedule_to_trajectories, events_cause_collision)
// that the scheduler (package planner) drives its collision tests through.
//
// This sits above collision, trajectory, schedule and agent, so it cannot
// live inside collision without an import cycle (schedule and agent both
// already depend on collision).
package sweep

import "github.com/elektrokombinacija/swarmweld/collision"

// Group is a fixed collection of collision shapes checked pairwise, all
// against all, at a single instant.
type Group []collision.Shape

// InCollision reports whether any two distinct members of g collide.
func (g Group) InCollision() (bool, error) {
	for i := 0; i < len(g); i++ {
		for j := i + 1; j < len(g); j++ {
			hit, err := g[i].InCollision(g[j])
			if err != nil {
				return false, err
			}
			if hit {
				return true, nil
			}
		}
	}
	return false, nil
}
