// Package planner implements the multi-agent scheduler (spec.md C7 — "the
// heart of the system") and its batched/stratified wrappers (C8): a
// priority-guided greedy loop that assigns contours to capable agents,
// rejecting and retrying assignments that would collide, splicing idle
// suffixes out of the way as new tasks are committed.
package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/depgraph"
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/schedule"
	"github.com/elektrokombinacija/swarmweld/swerr"
	"github.com/elektrokombinacija/swarmweld/swlog"
	"github.com/elektrokombinacija/swarmweld/sweep"
	"github.com/elektrokombinacija/swarmweld/toolpath"
)

// AgentEntry pairs an agent id with its model, in the caller-chosen order
// that determinism (spec.md §4.7, "agents by insertion") is defined over.
type AgentEntry struct {
	ID    agent.ID
	Model agent.Model
}

// Plan runs the greedy event-chain scheduler over src's contours, using dg
// to gate precedence. It fails with swerr.ErrUncoverableCapability if any
// contour's tool has no capable agent; planning an empty toolpath returns
// an empty schedule, which is a legal output.
func Plan(src toolpath.Source, dg *depgraph.Graph, opts agent.PlanningOptions, agents []AgentEntry, logger swlog.Logger) (schedule.MultiAgentSchedule, error) {
	if logger == nil {
		logger = swlog.NewNop()
	}

	contours := src.Contours()
	byID := make(map[depgraph.NodeID]toolpath.Contour, len(contours))
	for _, c := range contours {
		byID[depgraph.NodeID(c.ID)] = c
	}

	models := make(map[agent.ID]agent.Model, len(agents))
	for _, a := range agents {
		models[a.ID] = a.Model
	}
	if err := checkCoverage(contours, agents); err != nil {
		return schedule.MultiAgentSchedule{}, err
	}

	clock := make(map[agent.ID]float64, len(agents))
	sched := schedule.NewMultiAgentSchedule()
	for _, a := range agents {
		clock[a.ID] = 0
		sched = sched.IntroduceAgent(a.ID)
	}

	frontier := make(map[depgraph.NodeID]struct{})
	for _, n := range dg.Roots() {
		frontier[n] = struct{}{}
	}
	inProgress := make(map[depgraph.NodeID]float64)

	for len(frontier) > 0 {
		t := minClock(clock)

		for n, end := range inProgress {
			if end <= t {
				dg.MarkComplete(n)
				delete(inProgress, n)
			}
		}

		var idle []agent.ID
		for _, a := range agents {
			if clock[a.ID] != t {
				continue
			}

			candidates := feasibleTasks(frontier, dg, byID, models[a.ID])
			if len(candidates) == 0 {
				idle = append(idle, a.ID)
				continue
			}

			assigned := false
			for _, n := range candidates {
				contour := byID[n]
				m := models[a.ID]
				chain := buildEventChain(t, sched.Schedule(a.ID).GetState(t, m.Home), contour, m, opts.RetractHeight)

				hit, err := sweep.EventsCauseCollision(chain, a.ID, sched, models, opts.CollisionGapThreshold)
				if err != nil {
					return schedule.MultiAgentSchedule{}, err
				}
				if hit {
					logger.Debugw("candidate rejected: collision", "agent", a.ID, "task", n, "t", t)
					continue
				}

				sched = spliceIdleSuffix(sched, a.ID, chain[0].Start())
				sched = sched.AddEvents(a.ID, chain...)

				eContour := chain[1]
				eDepart := chain[2]
				inProgress[n] = eContour.End()
				delete(frontier, n)
				for _, succ := range dg.Successors(n) {
					frontier[succ] = struct{}{}
				}
				clock[a.ID] = eDepart.End()

				logger.Debugw("event chain committed", "agent", a.ID, "task", n, "start", t, "end", eDepart.End())
				assigned = true
				break
			}
			if !assigned {
				clock[a.ID] = t + opts.CollisionOffset
			}
		}

		if len(idle) > 0 {
			if tNext, ok := nextStateChange(t, inProgress, clock); ok {
				for _, a := range idle {
					clock[a] = tNext
				}
			}
		}
	}

	logger.Infow("plan complete", "agents", len(agents), "contours", len(contours))
	return sched, nil
}

// checkCoverage fails with swerr.ErrUncoverableCapability if some contour's
// tool has no capable agent.
func checkCoverage(contours []toolpath.Contour, agents []AgentEntry) error {
	for _, c := range contours {
		covered := false
		for _, a := range agents {
			if a.Model.CanPerform(c.Tool) {
				covered = true
				break
			}
		}
		if !covered {
			return fmt.Errorf("%w: contour %d tool %v", swerr.ErrUncoverableCapability, c.ID, c.Tool)
		}
	}
	return nil
}

// feasibleTasks returns the frontier nodes a's model can perform and dg
// says are ready, sorted by out-degree descending (ties by node id
// ascending): prefer tasks unlocking more successors.
func feasibleTasks(frontier map[depgraph.NodeID]struct{}, dg *depgraph.Graph, byID map[depgraph.NodeID]toolpath.Contour, m agent.Model) []depgraph.NodeID {
	var out []depgraph.NodeID
	for n := range frontier {
		if !dg.CanStart(n) {
			continue
		}
		if !m.CanPerform(byID[n].Tool) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := dg.OutDegree(out[i]), dg.OutDegree(out[j])
		if di != dj {
			return di > dj
		}
		return out[i] < out[j]
	})
	return out
}

// buildEventChain assembles the travel/contour/depart/home sequence for one
// task assignment starting at t from pStart.
func buildEventChain(t float64, pStart geometry.Vec3, c toolpath.Contour, m agent.Model, retractHeight float64) []schedule.Event {
	lift := geometry.Vec3{Z: retractHeight}
	pApproach := c.Path[0].Add(lift)

	travelPath := []geometry.Vec3{pStart, pApproach, c.Path[0]}
	if pStart.Equal(pApproach) {
		travelPath = travelPath[1:]
	}
	eTravel := schedule.NewMove(t, travelPath, m.TravelVelocity)
	eContour := schedule.NewContour(eTravel.End(), c, m.Velocity)

	pDepart := c.Path[len(c.Path)-1].Add(lift)
	eDepart := schedule.NewMove(eContour.End(), []geometry.Vec3{c.Path[len(c.Path)-1], pDepart}, m.TravelVelocity)
	eHome := schedule.NewMove(eDepart.End(), []geometry.Vec3{pDepart, m.Home}, m.TravelVelocity)

	return []schedule.Event{eTravel, eContour, eDepart, eHome}
}

// spliceIdleSuffix pops a's trailing event if it's a committed home return
// that overruns the new departure at travelStart, re-materializing its
// still-valid prefix as a Move.
func spliceIdleSuffix(sched schedule.MultiAgentSchedule, a agent.ID, travelStart float64) schedule.MultiAgentSchedule {
	s := sched.Schedule(a)
	if s.IsEmpty() || s.EndTime() <= travelStart {
		return sched
	}

	rest, last, ok := s.WithoutLast()
	if !ok {
		return sched
	}
	if last.Start() != travelStart {
		slicedTraj := last.Trajectory().Slice(last.Start(), travelStart)
		pts := make([]geometry.Vec3, 0, len(slicedTraj.Points()))
		for _, p := range slicedTraj.Points() {
			pts = append(pts, p.Data)
		}
		replacement := schedule.NewMove(last.Start(), pts, eventVelocity(last))
		rest = rest.Append(replacement)
	}
	return sched.SetSchedule(a, rest)
}

func eventVelocity(e schedule.Event) float64 {
	switch v := e.(type) {
	case schedule.Move:
		return v.Velocity
	case schedule.Contour:
		return v.Velocity
	default:
		return 1
	}
}

func minClock(clock map[agent.ID]float64) float64 {
	first := true
	var best float64
	for _, v := range clock {
		if first || v < best {
			best = v
			first = false
		}
	}
	return best
}

// nextStateChange returns the soonest time after t at which either an
// in-progress task completes or a busy agent's clock comes due, so idle
// agents (which have no feasible task right now) can be advanced past t
// instead of spinning in place. ok is false only if nothing is pending,
// which can't happen while frontier is non-empty given checkCoverage.
func nextStateChange(t float64, inProgress map[depgraph.NodeID]float64, clock map[agent.ID]float64) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, end := range inProgress {
		if end < best {
			best = end
			found = true
		}
	}
	for _, c := range clock {
		if c > t && c < best {
			best = c
			found = true
		}
	}
	return best, found
}
