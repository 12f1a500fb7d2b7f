package planner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/collision"
	"github.com/elektrokombinacija/swarmweld/depgraph"
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/planner"
	"github.com/elektrokombinacija/swarmweld/swlog"
	"github.com/elektrokombinacija/swarmweld/toolpath"
)

func twoAgentCrossPrecedenceFixture() (toolpath.Source, *depgraph.Graph, agent.PlanningOptions, []planner.AgentEntry) {
	a1, a2 := agent.ID("a1"), agent.ID("a2")
	c1 := toolpath.Contour{ID: 0, Tool: "A", Path: []geometry.Vec3{{X: 0}, {X: 1}}}
	c2 := toolpath.Contour{ID: 1, Tool: "B", Path: []geometry.Vec3{{X: 10}, {X: 11}}}
	src := toolpath.NewStatic([]toolpath.Contour{c1, c2})

	dg := depgraph.New()
	dg.AddNode(depgraph.NodeID(0))
	dg.AddNode(depgraph.NodeID(1), depgraph.NodeID(0))

	models := []planner.AgentEntry{
		{ID: a1, Model: agent.NewModel(collision.NewOrientedBox(0.1, 0.1, 0.1), geometry.Vec3{}, geometry.Vec3{}, 1, 1, "A")},
		{ID: a2, Model: agent.NewModel(collision.NewOrientedBox(0.1, 0.1, 0.1), geometry.Vec3{X: 10}, geometry.Vec3{X: 10}, 1, 1, "B")},
	}
	opts := agent.PlanningOptions{RetractHeight: 0, CollisionOffset: 0.5, CollisionGapThreshold: 0.05}
	return src, dg, opts, models
}

// TestPrecedenceAcrossAgents is invariant 2: a task's contour event begins
// no earlier than the end of its parents' contour events, even when the
// parent and child land on different agents.
func TestPrecedenceAcrossAgents(t *testing.T) {
	src, dg, opts, models := twoAgentCrossPrecedenceFixture()
	sched, err := planner.Plan(src, dg, opts, models, swlog.NewTest(t))
	require.NoError(t, err)

	c1End := sched.Schedule(agent.ID("a1")).Events()[1].End()
	c2Events := sched.Schedule(agent.ID("a2")).Events()
	require.GreaterOrEqual(t, c2Events[0].Start(), c1End,
		"c2's travel must not start before c1 (its dependency on another agent) finishes")
}

// TestEventsWithinAgentAreOrderedAndTouch is invariant 3.
func TestEventsWithinAgentAreOrderedAndTouch(t *testing.T) {
	src, dg, opts, models := twoAgentCrossPrecedenceFixture()
	sched, err := planner.Plan(src, dg, opts, models, swlog.NewTest(t))
	require.NoError(t, err)

	for _, a := range sched.Agents() {
		events := sched.Schedule(a).Events()
		for i := 0; i+1 < len(events); i++ {
			require.LessOrEqual(t, events[i].Start(), events[i+1].Start())
			require.InDelta(t, events[i].End(), events[i+1].Start(), 1e-6)
		}
	}
}

// TestPlanIsDeterministic is invariant 8: two runs over identical inputs
// produce equal schedules, event for event.
func TestPlanIsDeterministic(t *testing.T) {
	src1, dg1, opts1, models1 := twoAgentCrossPrecedenceFixture()
	sched1, err := planner.Plan(src1, dg1, opts1, models1, swlog.NewTest(t))
	require.NoError(t, err)

	src2, dg2, opts2, models2 := twoAgentCrossPrecedenceFixture()
	sched2, err := planner.Plan(src2, dg2, opts2, models2, swlog.NewTest(t))
	require.NoError(t, err)

	for _, a := range sched1.Agents() {
		e1 := sched1.Schedule(a).Events()
		e2 := sched2.Schedule(a).Events()
		require.Len(t, e2, len(e1))
		for i := range e1 {
			require.Equal(t, e1[i].Start(), e2[i].Start())
			require.Equal(t, e1[i].End(), e2[i].End())
		}
	}
}

// TestUncoverableCapabilityFailsAtEntry: a contour whose tool no agent can
// perform must be rejected before the loop runs.
func TestUncoverableCapabilityFailsAtEntry(t *testing.T) {
	a := agent.ID("solo")
	c := toolpath.Contour{ID: 0, Tool: "Z", Path: []geometry.Vec3{{X: 0}, {X: 1}}}
	src := toolpath.NewStatic([]toolpath.Contour{c})
	dg := depgraph.New()
	dg.AddNode(depgraph.NodeID(0))
	models := []planner.AgentEntry{
		{ID: a, Model: agent.NewModel(collision.NewOrientedBox(0.1, 0.1, 0.1), geometry.Vec3{}, geometry.Vec3{}, 1, 1, "A")},
	}
	opts := agent.PlanningOptions{RetractHeight: 0, CollisionOffset: 0.5, CollisionGapThreshold: 0.05}

	_, err := planner.Plan(src, dg, opts, models, swlog.NewTest(t))
	require.Error(t, err)
}

// TestEmptyToolpathYieldsEmptySchedule: planning nothing is a legal output,
// not an error.
func TestEmptyToolpathYieldsEmptySchedule(t *testing.T) {
	a := agent.ID("solo")
	src := toolpath.NewStatic(nil)
	dg := depgraph.New()
	models := []planner.AgentEntry{
		{ID: a, Model: agent.NewModel(collision.NewOrientedBox(0.1, 0.1, 0.1), geometry.Vec3{}, geometry.Vec3{}, 1, 1, "A")},
	}
	opts := agent.PlanningOptions{RetractHeight: 0, CollisionOffset: 0.5, CollisionGapThreshold: 0.05}

	sched, err := planner.Plan(src, dg, opts, models, swlog.NewTest(t))
	require.NoError(t, err)
	require.True(t, sched.Schedule(a).IsEmpty())
}
