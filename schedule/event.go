// Package schedule implements the timed-event and per-agent/multi-agent
// schedule model (spec.md C5): Event variants, Schedule, MultiAgentSchedule,
// Allen's interval algebra, and time-windowed slicing.
package schedule

import (
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/toolpath"
	"github.com/elektrokombinacija/swarmweld/trajectory"
)

// Event is a timed motion event: a Move (travel/retract/return) or a
// Contour execution. Both implement the closed-interval [Start,End] API
// used by Allen's relations.
type Event interface {
	Start() float64
	End() float64
	Trajectory() trajectory.Trajectory
}

// interval is the shared [start,end] base every Event embeds.
type interval struct {
	start, end float64
}

func (iv interval) Start() float64 { return iv.start }
func (iv interval) End() float64   { return iv.end }

// Move is a straight-line multi-point move at constant speed. end is
// start + path_length/velocity, enforced by NewMove.
type Move struct {
	interval
	Path     []geometry.Vec3
	Velocity float64
	traj     trajectory.Trajectory
}

// NewMove builds a Move executing path at velocity starting at start.
// A single-point (or empty) path is a zero-duration, zero-length event.
func NewMove(start float64, path []geometry.Vec3, velocity float64) Move {
	traj := trajectory.FromConstVelPath(path, velocity, start)
	end := start
	if !traj.IsEmpty() {
		end = traj.EndTime()
	}
	return Move{
		interval: interval{start: start, end: end},
		Path:     path,
		Velocity: velocity,
		traj:     traj,
	}
}

// Trajectory returns the cached constant-velocity trajectory for this move.
func (m Move) Trajectory() trajectory.Trajectory { return m.traj }

// Contour is semantically identical to Move but carries the tool tag of a
// contour execution.
type Contour struct {
	interval
	Contour  toolpath.Contour
	Velocity float64
	traj     trajectory.Trajectory
}

// NewContour builds a Contour event executing c.Path at velocity starting
// at start.
func NewContour(start float64, c toolpath.Contour, velocity float64) Contour {
	traj := trajectory.FromConstVelPath(c.Path, velocity, start)
	end := start
	if !traj.IsEmpty() {
		end = traj.EndTime()
	}
	return Contour{
		interval: interval{start: start, end: end},
		Contour:  c,
		Velocity: velocity,
		traj:     traj,
	}
}

// Trajectory returns the cached constant-velocity trajectory for this contour event.
func (c Contour) Trajectory() trajectory.Trajectory { return c.traj }

// OffsetEvent returns e shifted forward by dt, rebuilding its trajectory
// from the same path and velocity at the new start time. Used to merge
// independently-planned schedule strata/batches (spec.md C8) onto a single
// timeline.
func OffsetEvent(e Event, dt float64) Event {
	switch v := e.(type) {
	case Move:
		return NewMove(v.Start()+dt, v.Path, v.Velocity)
	case Contour:
		return NewContour(v.Start()+dt, v.Contour, v.Velocity)
	default:
		return e
	}
}
