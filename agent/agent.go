// Package agent defines the value objects binding a robot's spatial
// anchors, kinematics, capabilities, and collision shape (spec.md C9), plus
// the scheduler's tunable PlanningOptions.
package agent

import (
	"github.com/elektrokombinacija/swarmweld/collision"
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/toolpath"
)

// ID identifies an agent. Caller-supplied, never a global counter.
type ID string

// Model is a robotic arm's full planning-relevant description: what it can
// do (Capabilities), where it sits (BaseFrame, Home), how fast it moves
// (Velocity, TravelVelocity), and the swept volume it occupies
// (CollisionShape). Velocities must be > 0.
type Model struct {
	Capabilities map[toolpath.ToolID]struct{}
	CollisionShape collision.Shape
	BaseFrame    geometry.Vec3
	Home         geometry.Vec3
	Velocity     float64
	TravelVelocity float64
}

// NewModel builds a Model from an explicit capability list.
func NewModel(shape collision.Shape, base, home geometry.Vec3, velocity, travelVelocity float64, caps ...toolpath.ToolID) Model {
	set := make(map[toolpath.ToolID]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return Model{
		Capabilities:   set,
		CollisionShape: shape,
		BaseFrame:      base,
		Home:           home,
		Velocity:       velocity,
		TravelVelocity: travelVelocity,
	}
}

// CanPerform reports whether the agent is capable of the given tool.
func (m Model) CanPerform(tool toolpath.ToolID) bool {
	_, ok := m.Capabilities[tool]
	return ok
}

// Clone returns a Model with its own independent CollisionShape instance, so
// a parallel sub-plan can mutate that copy's pose without the original (or
// any sibling worker's copy) observing it. Capabilities is immutable once
// built and is shared, not copied.
func (m Model) Clone() Model {
	cp := m
	cp.CollisionShape = collision.Clone(m.CollisionShape)
	return cp
}

// PlanningOptions are the scheduler's tunable knobs (spec.md §3).
type PlanningOptions struct {
	// RetractHeight is the vertical clearance added on approach/departure
	// to avoid the workpiece. Must be >= 0.
	RetractHeight float64

	// CollisionOffset is the time increment by which a due agent's clock is
	// advanced after a failed (colliding) task attempt. Must be > 0.
	CollisionOffset float64

	// CollisionGapThreshold is the maximum per-step displacement used by
	// the continuous-collision sampler. Must be > 0.
	CollisionGapThreshold float64
}
