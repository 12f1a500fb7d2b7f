package sweep

import (
	"fmt"
	"math"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/collision"
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/schedule"
	"github.com/elektrokombinacija/swarmweld/swerr"
	"github.com/elektrokombinacija/swarmweld/trajectory"
)

// CheckTrajectoryCollision steps every shape in group along its matching
// trajectory (group[i] follows trajs[i]) from the global start to the
// global end time, testing the whole group at every step. The step size is
// derived from the fastest trajectory so it never advances more than
// threshold units per step. It returns true at the first colliding step.
func CheckTrajectoryCollision(group Group, trajs []trajectory.Trajectory, threshold float64) (bool, error) {
	if len(trajs) == 0 {
		return false, nil
	}

	fastest := trajs[0]
	for _, t := range trajs[1:] {
		if t.AvgSpeed() > fastest.AvgSpeed() {
			fastest = t
		}
	}
	if fastest.Distance() == 0 {
		if fastest.Elapsed() == 0 {
			return false, fmt.Errorf("sweep: %w", swerr.ErrDegenerateTrajectory)
		}
		// Every shape in the group is stationary for the whole window, so a
		// single check at those fixed positions decides the answer.
		for i, tr := range trajs {
			if pts := tr.Points(); len(pts) > 0 {
				group[i].SetTranslation(pts[0].Data)
			}
		}
		return group.InCollision()
	}

	start, end := trajs[0].StartTime(), trajs[0].EndTime()
	for _, t := range trajs[1:] {
		start = math.Min(start, t.StartTime())
		end = math.Max(end, t.EndTime())
	}

	dt := fastest.Elapsed() * threshold / fastest.Distance()
	if dt <= 0 {
		return false, fmt.Errorf("sweep: %w", swerr.ErrDegenerateTrajectory)
	}

	at := func(t trajectory.Trajectory, tm float64) geometry.Vec3 {
		if v, ok := t.Sample(tm); ok {
			return v
		}
		pts := t.Points()
		if len(pts) == 0 || tm < t.StartTime() {
			if len(pts) > 0 {
				return pts[0].Data
			}
			return geometry.Vec3{}
		}
		return pts[len(pts)-1].Data
	}

	for t := start; ; t += dt {
		step := t
		done := false
		if step >= end {
			step = end
			done = true
		}
		for i, tr := range trajs {
			group[i].SetTranslation(at(tr, step))
		}
		hit, err := group.InCollision()
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
		if done {
			break
		}
	}
	return false, nil
}

// TrajectoryCollisionQuery sweeps m1 along t1 and m2 along t2 over every
// concurrent interval, approximating each interval as a linear segment
// between its sliced trajectory's first and last points. Shape poses are
// saved on entry and restored on exit.
func TrajectoryCollisionQuery(m1 collision.Shape, t1 trajectory.Trajectory, m2 collision.Shape, t2 trajectory.Trajectory, threshold float64) (bool, error) {
	save1, save2 := collision.Save(m1), collision.Save(m2)
	defer save1.Restore()
	defer save2.Restore()

	for _, p := range trajectory.ConcurrentIntervals([]trajectory.Trajectory{t1}, []trajectory.Trajectory{t2}) {
		ptsA, ptsB := p.A.Points(), p.B.Points()
		if len(ptsA) == 0 || len(ptsB) == 0 {
			continue
		}
		firstA, lastA := ptsA[0].Data, ptsA[len(ptsA)-1].Data
		firstB, lastB := ptsB[0].Data, ptsB[len(ptsB)-1].Data

		d1 := lastA.Sub(firstA).Norm()
		d2 := lastB.Sub(firstB).Norm()
		n := int(math.Ceil(math.Max(d1, d2) / threshold))
		if n < 1 {
			n = 1
		}

		for k := 0; k <= n; k++ {
			s := float64(k) / float64(n)
			m1.SetTranslation(firstA.Lerp(lastA, s))
			m2.SetTranslation(firstB.Lerp(lastB, s))
			hit, err := m1.InCollision(m2)
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

// ScheduleToTrajectories materializes the portion of every event in s that
// overlaps [t0,t1] as a sliced trajectory, in schedule order. Events wholly
// outside the window are dropped; the rest contribute exactly the slice of
// their trajectory that lies in the window.
func ScheduleToTrajectories(s schedule.Schedule, t0, t1 float64) []trajectory.Trajectory {
	touching := s.Slice(t0, t1)
	out := make([]trajectory.Trajectory, 0, touching.NEvents())
	for _, e := range touching.Events() {
		tr := e.Trajectory().Slice(t0, t1)
		if !tr.IsEmpty() {
			out = append(out, tr)
		}
	}
	return out
}

// EventsCauseCollision tests whether splicing events onto agentID's
// schedule would collide with any other agent's committed schedule.
// Agents with no events in the candidate window are treated as stationary
// at their home position for the duration of the window.
func EventsCauseCollision(events []schedule.Event, agentID agent.ID, sched schedule.MultiAgentSchedule, models map[agent.ID]agent.Model, threshold float64) (bool, error) {
	if len(events) == 0 {
		return false, nil
	}

	t0, t1 := events[0].Start(), events[0].End()
	for _, e := range events[1:] {
		t0 = math.Min(t0, e.Start())
		t1 = math.Max(t1, e.End())
	}

	candidate := sched.AddEvents(agentID, events...)
	mine := ScheduleToTrajectories(candidate.Schedule(agentID), t0, t1)
	myShape := models[agentID].CollisionShape

	for _, other := range candidate.Agents() {
		if other == agentID {
			continue
		}
		theirs := ScheduleToTrajectories(candidate.Schedule(other), t0, t1)
		if len(theirs) == 0 {
			home := models[other].Home
			theirs = []trajectory.Trajectory{trajectory.New([]trajectory.Point{
				{Data: home, Time: t0},
				{Data: home, Time: t1},
			})}
		}
		theirShape := models[other].CollisionShape

		for _, pair := range trajectory.ConcurrentIntervals(mine, theirs) {
			hit, err := TrajectoryCollisionQuery(myShape, pair.A, theirShape, pair.B, threshold)
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
