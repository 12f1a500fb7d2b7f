package planner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/collision"
	"github.com/elektrokombinacija/swarmweld/depgraph"
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/planner"
	"github.com/elektrokombinacija/swarmweld/schedule"
	"github.com/elektrokombinacija/swarmweld/swlog"
	"github.com/elektrokombinacija/swarmweld/sweep"
	"github.com/elektrokombinacija/swarmweld/toolpath"
	"github.com/elektrokombinacija/swarmweld/trajectory"
)

// assertCollisionFree checks universal invariant 1 (spec.md §8): for every
// pair of agents and every pair of concurrently active events in the
// produced schedule, trajectory_collision_query reports false.
func assertCollisionFree(t *testing.T, sched schedule.MultiAgentSchedule, models map[agent.ID]agent.Model, threshold float64) {
	t.Helper()
	agents := sched.Agents()
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			a, b := agents[i], agents[j]
			var trajsA, trajsB []trajectory.Trajectory
			for _, e := range sched.Schedule(a).Events() {
				trajsA = append(trajsA, e.Trajectory())
			}
			for _, e := range sched.Schedule(b).Events() {
				trajsB = append(trajsB, e.Trajectory())
			}
			for _, pair := range trajectory.ConcurrentIntervals(trajsA, trajsB) {
				hit, err := sweep.TrajectoryCollisionQuery(models[a].CollisionShape, pair.A, models[b].CollisionShape, pair.B, threshold)
				require.NoError(t, err)
				require.False(t, hit, "agents %s and %s collide between t=%.3f and t=%.3f", a, b, pair.A.StartTime(), pair.A.EndTime())
			}
		}
	}
}

func box() collision.Shape { return collision.NewOrientedBox(3.0, 0.2, 1.0) }

// TestS1HeadOnPairResolvesByRetry: two agents with independent, roots-only
// contours whose straight-line paths cross near the origin. The engine must
// reject the second agent's first attempt and retry until clear.
func TestS1HeadOnPairResolvesByRetry(t *testing.T) {
	agent1, agent2 := agent.ID("a1"), agent.ID("a2")
	c1 := toolpath.Contour{ID: 0, Tool: "A", Path: []geometry.Vec3{{X: 0, Y: 2}, {X: 0, Y: -2}}}
	c2 := toolpath.Contour{ID: 1, Tool: "B", Path: []geometry.Vec3{{X: 2}, {X: -2}}}
	src := toolpath.NewStatic([]toolpath.Contour{c1, c2})

	dg := depgraph.New()
	dg.AddNode(depgraph.NodeID(0))
	dg.AddNode(depgraph.NodeID(1))

	models := []planner.AgentEntry{
		{ID: agent1, Model: agent.NewModel(box(), geometry.Vec3{X: -5}, geometry.Vec3{X: -5}, 1, 2, "A")},
		{ID: agent2, Model: agent.NewModel(box(), geometry.Vec3{X: 5}, geometry.Vec3{X: 5}, 1, 2, "B")},
	}
	opts := agent.PlanningOptions{RetractHeight: 0, CollisionOffset: 0.5, CollisionGapThreshold: 0.05}

	sched, err := planner.Plan(src, dg, opts, models, swlog.NewTest(t))
	require.NoError(t, err)

	modelMap := map[agent.ID]agent.Model{agent1: models[0].Model, agent2: models[1].Model}
	assertCollisionFree(t, sched, modelMap, opts.CollisionGapThreshold)
}

// TestS2ThreeAgentTriangleNoRejection: three agents on a circle, each with
// an independent contour near the origin, far enough apart that none should
// ever be rejected.
func TestS2ThreeAgentTriangleNoRejection(t *testing.T) {
	anchors := []geometry.Vec3{{X: 5}, {X: -2.5, Y: 4.33}, {X: -2.5, Y: -4.33}}
	// Contour endpoints, one per agent, spread 120 degrees apart around the
	// origin at radius ~1.2 so no two are ever close enough to collide.
	paths := [][2]geometry.Vec3{
		{{X: 1.2, Y: 0.2}, {X: 1.2, Y: -0.2}},
		{{X: -0.773, Y: 0.939}, {X: -0.427, Y: 1.139}},
		{{X: -0.427, Y: -1.139}, {X: -0.773, Y: -0.939}},
	}
	var contours []toolpath.Contour
	var models []planner.AgentEntry
	dg := depgraph.New()

	for i, anc := range anchors {
		id := agent.ID(string(rune('a' + i)))
		tool := toolpath.ToolID(string(rune('A' + i)))
		contours = append(contours, toolpath.Contour{
			ID:   i,
			Tool: tool,
			Path: []geometry.Vec3{paths[i][0], paths[i][1]},
		})
		dg.AddNode(depgraph.NodeID(i))
		models = append(models, planner.AgentEntry{
			ID:    id,
			Model: agent.NewModel(collision.NewOrientedBox(0.3, 0.1, 0.3), anc, anc, 1, 2, tool),
		})
	}

	src := toolpath.NewStatic(contours)
	opts := agent.PlanningOptions{RetractHeight: 0.1, CollisionOffset: 0.5, CollisionGapThreshold: 0.05}

	sched, err := planner.Plan(src, dg, opts, models, swlog.NewTest(t))
	require.NoError(t, err)

	for i := range anchors {
		require.Equal(t, 0.0, sched.Schedule(models[i].ID).Events()[0].Start(),
			"agent %d must start its only event chain at t=0: no collision ever rejects it", i)
	}

	modelMap := make(map[agent.ID]agent.Model, len(models))
	for _, m := range models {
		modelMap[m.ID] = m.Model
	}
	assertCollisionFree(t, sched, modelMap, opts.CollisionGapThreshold)
}

// TestS3PrecedenceForcesSerialization: one agent, two contours, c2 depends
// on c1. c2's travel event must not start before c1's contour event ends.
func TestS3PrecedenceForcesSerialization(t *testing.T) {
	a := agent.ID("solo")
	c1 := toolpath.Contour{ID: 0, Tool: "A", Path: []geometry.Vec3{{X: 0}, {X: 1}}}
	c2 := toolpath.Contour{ID: 1, Tool: "A", Path: []geometry.Vec3{{X: 2}, {X: 3}}}
	src := toolpath.NewStatic([]toolpath.Contour{c1, c2})

	dg := depgraph.New()
	dg.AddNode(depgraph.NodeID(0))
	dg.AddNode(depgraph.NodeID(1), depgraph.NodeID(0))

	models := []planner.AgentEntry{
		{ID: a, Model: agent.NewModel(collision.NewOrientedBox(0.1, 0.1, 0.1), geometry.Vec3{}, geometry.Vec3{}, 1, 1, "A")},
	}
	opts := agent.PlanningOptions{RetractHeight: 0, CollisionOffset: 0.5, CollisionGapThreshold: 0.05}

	sched, err := planner.Plan(src, dg, opts, models, swlog.NewTest(t))
	require.NoError(t, err)

	events := sched.Schedule(a).Events()
	require.Len(t, events, 7, "c1's home return starts when c2's travel does and is dropped: 3 + 4 events")
	c1ContourEnd := events[1].End()
	c2TravelStart := events[3].Start()
	require.GreaterOrEqual(t, c2TravelStart, c1ContourEnd)
}

// TestS4CapabilityGating: tool B is only ever attempted by the agent that
// can perform it.
func TestS4CapabilityGating(t *testing.T) {
	a1, a2 := agent.ID("a1"), agent.ID("a2")
	contours := []toolpath.Contour{
		{ID: 0, Tool: "A", Path: []geometry.Vec3{{X: 0}, {X: 1}}},
		{ID: 1, Tool: "A", Path: []geometry.Vec3{{X: 2}, {X: 3}}},
		{ID: 2, Tool: "B", Path: []geometry.Vec3{{X: 4}, {X: 5}}},
	}
	src := toolpath.NewStatic(contours)

	dg := depgraph.New()
	dg.AddNode(depgraph.NodeID(0))
	dg.AddNode(depgraph.NodeID(1))
	dg.AddNode(depgraph.NodeID(2))

	models := []planner.AgentEntry{
		{ID: a1, Model: agent.NewModel(collision.NewOrientedBox(0.1, 0.1, 0.1), geometry.Vec3{}, geometry.Vec3{}, 1, 1, "A")},
		{ID: a2, Model: agent.NewModel(collision.NewOrientedBox(0.1, 0.1, 0.1), geometry.Vec3{X: 100}, geometry.Vec3{X: 100}, 1, 1, "B")},
	}
	opts := agent.PlanningOptions{RetractHeight: 0, CollisionOffset: 0.5, CollisionGapThreshold: 0.05}

	sched, err := planner.Plan(src, dg, opts, models, swlog.NewTest(t))
	require.NoError(t, err)

	require.Len(t, sched.Schedule(a1).Events(), 7, "a1 takes both A contours; its first home return is dropped when the second travel starts")
	require.Len(t, sched.Schedule(a2).Events(), 4, "a2 takes only the B contour")
}

// TestS5TrajectorySliceBoundary is verbatim scenario S5: slice(0.5,1.5) on
// points ([-1,0,0],0),([0,0,0],1),([1,0,0],2) yields exactly three points.
func TestS5TrajectorySliceBoundary(t *testing.T) {
	tr := trajectory.New([]trajectory.Point{
		{Data: geometry.Vec3{X: -1}, Time: 0},
		{Data: geometry.Vec3{X: 0}, Time: 1},
		{Data: geometry.Vec3{X: 1}, Time: 2},
	})
	sl := tr.Slice(0.5, 1.5)
	require.Equal(t, []trajectory.Point{
		{Data: geometry.Vec3{X: -0.5}, Time: 0.5},
		{Data: geometry.Vec3{X: 0}, Time: 1.0},
		{Data: geometry.Vec3{X: 0.5}, Time: 1.5},
	}, sl.Points())
}

// TestS6SweptThresholdMonotonicity: any collision detected at threshold h is
// also detected at threshold h/2 (finer sampling never misses a hit a
// coarser pass found).
func TestS6SweptThresholdMonotonicity(t *testing.T) {
	t1 := trajectory.FromConstVelPath([]geometry.Vec3{{X: -50}, {X: 50}}, 100.0, 0)
	t2 := trajectory.FromConstVelPath([]geometry.Vec3{{X: 50}, {X: -50}}, 100.0, 0)

	m1, m2 := box(), box()
	hitCoarse, err := sweep.TrajectoryCollisionQuery(m1, t1, m2, t2, 10.0)
	require.NoError(t, err)
	if !hitCoarse {
		t.Skip("coarse threshold did not observe a hit to check monotonicity against")
	}
	hitFine, err := sweep.TrajectoryCollisionQuery(m1, t1, m2, t2, 5.0)
	require.NoError(t, err)
	require.True(t, hitFine, "a hit found at threshold h must also be found at h/2")
}
