// Command swarmweldctl runs the multi-agent scheduler against a YAML run
// fixture and prints the resulting per-agent event log. It is a demo
// harness, not a production deployment tool: G-code ingestion and motion
// execution are both out of scope (spec.md §1).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/collision"
	"github.com/elektrokombinacija/swarmweld/depgraph"
	"github.com/elektrokombinacija/swarmweld/executor"
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/planner"
	"github.com/elektrokombinacija/swarmweld/swlog"
	"github.com/elektrokombinacija/swarmweld/toolpath"
)

func main() {
	configPath := flag.String("config", "demo.yaml", "path to a run fixture (see demo.yaml)")
	flag.Parse()

	logger := swlog.NewDevelopment()
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	if err := run(*configPath, logger); err != nil {
		logger.Errorw("run failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger swlog.Logger) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	agents := buildAgents(cfg.Agents)
	src, dg := buildToolpath(cfg.Contours)
	opts := agent.PlanningOptions{
		RetractHeight:         cfg.Planning.RetractHeight,
		CollisionOffset:       cfg.Planning.CollisionOffset,
		CollisionGapThreshold: cfg.Planning.CollisionGapThreshold,
	}

	sched, err := planner.Plan(src, dg, opts, agents, logger)
	if err != nil {
		return fmt.Errorf("swarmweldctl: planning failed: %w", err)
	}

	rec := executor.NewRecorder()
	if err := rec.Execute(context.Background(), sched); err != nil {
		return fmt.Errorf("swarmweldctl: executing schedule: %w", err)
	}

	for _, e := range rec.Log {
		logger.Infow("event",
			"agent", e.Agent,
			"start", e.Event.Start(),
			"end", e.Event.End(),
		)
	}
	logger.Infow("plan summary", "agents", len(agents), "events", len(rec.Log), "makespan", sched.EndTime())
	return nil
}

func buildAgents(cfgs []AgentConfig) []planner.AgentEntry {
	out := make([]planner.AgentEntry, 0, len(cfgs))
	for _, c := range cfgs {
		shape := collision.NewOrientedBox(c.BoxDims[0], c.BoxDims[1], c.BoxDims[2])
		tools := make([]toolpath.ToolID, len(c.Tools))
		for i, t := range c.Tools {
			tools[i] = toolpath.ToolID(t)
		}
		m := agent.NewModel(shape, vec3(c.Base), vec3(c.Home), c.Velocity, c.TravelVelocity, tools...)
		out = append(out, planner.AgentEntry{ID: agent.ID(c.ID), Model: m})
	}
	return out
}

func buildToolpath(cfgs []ContourConfig) (toolpath.Source, *depgraph.Graph) {
	contours := make([]toolpath.Contour, 0, len(cfgs))
	dg := depgraph.New()
	for _, c := range cfgs {
		path := make([]geometry.Vec3, len(c.Path))
		for i, p := range c.Path {
			path[i] = vec3(p)
		}
		contours = append(contours, toolpath.Contour{ID: c.ID, Tool: toolpath.ToolID(c.Tool), Path: path})

		parents := make([]depgraph.NodeID, len(c.DependsOn))
		for i, p := range c.DependsOn {
			parents[i] = depgraph.NodeID(p)
		}
		dg.AddNode(depgraph.NodeID(c.ID), parents...)
	}
	return toolpath.NewStatic(contours), dg
}

func vec3(v [3]float64) geometry.Vec3 {
	return geometry.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
