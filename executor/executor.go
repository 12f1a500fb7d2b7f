// Package executor defines the motion-executor collaborator contract
// (spec.md §6c): anything that can consume a committed multi-agent schedule
// and drive Cartesian motion downstream. The module ships one reference
// Sink, Recorder, which only records — no actual motion control is in
// scope.
package executor

import (
	"context"
	"sort"

	"github.com/elektrokombinacija/swarmweld/schedule"
)

// Sink consumes a finished schedule. Per-event data (path, start, end,
// velocity) is sufficient to drive Cartesian motion planning downstream;
// this module defines only the interface.
type Sink interface {
	Execute(context.Context, schedule.MultiAgentSchedule) error
}

// Recorder is a Sink that flattens a schedule into a time-ordered event log,
// for tests and offline inspection. It performs no motion control.
type Recorder struct {
	Log []RecordedEvent
}

// RecordedEvent pairs an event with the agent it was scheduled on.
type RecordedEvent struct {
	Agent schedule.AgentID
	Event schedule.Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Execute appends every agent's events to the log, sorted by start time
// (ties broken by agent id for determinism). ctx is unused — recording
// never blocks — but is part of the Sink contract for real executors that
// stream motion commands over a cancellable connection.
func (r *Recorder) Execute(ctx context.Context, s schedule.MultiAgentSchedule) error {
	var log []RecordedEvent
	for _, a := range s.Agents() {
		for _, e := range s.Schedule(a).Events() {
			log = append(log, RecordedEvent{Agent: a, Event: e})
		}
	}
	sort.SliceStable(log, func(i, j int) bool {
		if log[i].Event.Start() != log[j].Event.Start() {
			return log[i].Event.Start() < log[j].Event.Start()
		}
		return log[i].Agent < log[j].Agent
	})
	r.Log = log
	return nil
}
