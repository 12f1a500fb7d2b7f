package planner

import (
	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/depgraph"
	"github.com/elektrokombinacija/swarmweld/schedule"
	"github.com/elektrokombinacija/swarmweld/swlog"
	"github.com/elektrokombinacija/swarmweld/toolpath"
)

// DepthBasedSequentialPlanner partitions dg into depth buckets of delta
// consecutive generations (depgraph.Stratify) and plans each bucket in turn,
// each one as if starting from clock 0 at every agent's original home, then
// concatenates the results onto a single timeline by offsetting stratum k+1
// by the cumulative duration of strata [0,k] (spec.md §4.8).
func DepthBasedSequentialPlanner(src toolpath.Source, dg *depgraph.Graph, opts agent.PlanningOptions, agents []AgentEntry, logger swlog.Logger, delta int) (schedule.MultiAgentSchedule, error) {
	strata, err := dg.Stratify(delta)
	if err != nil {
		return schedule.MultiAgentSchedule{}, err
	}
	return planSequential(src, strata, opts, agents, logger)
}

// DepthBasedParallelPlanner is DepthBasedSequentialPlanner's concurrent
// twin: every stratum is independent of the others once depgraph.Stratify
// has severed the cross-boundary edges, so all strata plan concurrently,
// each against its own cloned agent.Model (and therefore its own
// collision.Shape instances) so that no worker's pose mutation is visible
// to another. Results are merged in stratum order by the same cumulative
// time offset as the sequential variant.
func DepthBasedParallelPlanner(src toolpath.Source, dg *depgraph.Graph, opts agent.PlanningOptions, agents []AgentEntry, logger swlog.Logger, delta int) (schedule.MultiAgentSchedule, error) {
	strata, err := dg.Stratify(delta)
	if err != nil {
		return schedule.MultiAgentSchedule{}, err
	}
	return planParallel(src, strata, opts, agents, logger)
}

// BatchedSequentialPlanner is DepthBasedSequentialPlanner's counterpart
// using depgraph.Batch (fixed-size, insertion-order chunks) instead of
// generation-depth buckets.
func BatchedSequentialPlanner(src toolpath.Source, dg *depgraph.Graph, opts agent.PlanningOptions, agents []AgentEntry, logger swlog.Logger, maxNodes int) (schedule.MultiAgentSchedule, error) {
	return planSequential(src, dg.Batch(maxNodes), opts, agents, logger)
}

// BatchedParallelPlanner is DepthBasedParallelPlanner's counterpart using
// depgraph.Batch instead of generation-depth buckets.
func BatchedParallelPlanner(src toolpath.Source, dg *depgraph.Graph, opts agent.PlanningOptions, agents []AgentEntry, logger swlog.Logger, maxNodes int) (schedule.MultiAgentSchedule, error) {
	return planParallel(src, dg.Batch(maxNodes), opts, agents, logger)
}

func planSequential(src toolpath.Source, groups []*depgraph.Graph, opts agent.PlanningOptions, agents []AgentEntry, logger swlog.Logger) (schedule.MultiAgentSchedule, error) {
	contoursByID := indexContours(src)

	out := make([]schedule.MultiAgentSchedule, len(groups))
	offset := 0.0
	for i, g := range groups {
		sub, err := Plan(groupSource(g, contoursByID), g, opts, agents, logger)
		if err != nil {
			return schedule.MultiAgentSchedule{}, err
		}
		out[i] = sub.Offset(offset)
		offset += sub.EndTime()
	}
	return schedule.Merge(out), nil
}

func planParallel(src toolpath.Source, groups []*depgraph.Graph, opts agent.PlanningOptions, agents []AgentEntry, logger swlog.Logger) (schedule.MultiAgentSchedule, error) {
	contoursByID := indexContours(src)

	raw := make([]schedule.MultiAgentSchedule, len(groups))
	var eg errgroup.Group
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			workerAgents := cloneAgents(agents)
			sub, err := Plan(groupSource(g, contoursByID), g, opts, workerAgents, logger)
			if err != nil {
				return err
			}
			raw[i] = sub
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return schedule.MultiAgentSchedule{}, err
	}

	out := make([]schedule.MultiAgentSchedule, len(groups))
	offset := 0.0
	for i, sub := range raw {
		out[i] = sub.Offset(offset)
		offset += sub.EndTime()
	}
	return schedule.Merge(out), nil
}

func indexContours(src toolpath.Source) map[depgraph.NodeID]toolpath.Contour {
	byID := make(map[depgraph.NodeID]toolpath.Contour)
	for _, c := range src.Contours() {
		byID[depgraph.NodeID(c.ID)] = c
	}
	return byID
}

// groupSource restricts src to the contours named by g's nodes, preserving
// their relative order of appearance in src.
func groupSource(g *depgraph.Graph, byID map[depgraph.NodeID]toolpath.Contour) toolpath.Source {
	var contours []toolpath.Contour
	for _, n := range g.Nodes() {
		if c, ok := byID[n]; ok {
			contours = append(contours, c)
		}
	}
	return toolpath.NewStatic(contours)
}

func cloneAgents(agents []AgentEntry) []AgentEntry {
	out := make([]AgentEntry, len(agents))
	for i, a := range agents {
		out[i] = AgentEntry{ID: a.ID, Model: a.Model.Clone()}
	}
	return out
}
