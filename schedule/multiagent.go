package schedule

import (
	"sort"

	"github.com/elektrokombinacija/swarmweld/agent"
)

// AgentID identifies a schedule's owning agent.
type AgentID = agent.ID

// MultiAgentSchedule maps each agent to its own Schedule. StartTime and
// EndTime compute the union's global time bounds from the per-agent
// schedules on every call; the bounds are not cached.
type MultiAgentSchedule struct {
	schedules map[AgentID]Schedule

	// windowed/windowStart/windowEnd record an explicit [start,end] for a
	// schedule produced by Slice when every agent's slice came back empty,
	// so StartTime/EndTime still equal the query window (spec.md §9).
	windowed              bool
	windowStart, windowEnd float64
}

// NewMultiAgentSchedule creates an empty multi-agent schedule.
func NewMultiAgentSchedule() MultiAgentSchedule {
	return MultiAgentSchedule{schedules: make(map[AgentID]Schedule)}
}

// Agents returns the known agent ids.
func (m MultiAgentSchedule) Agents() []AgentID {
	out := make([]AgentID, 0, len(m.schedules))
	for id := range m.schedules {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Schedule returns a's schedule, or an empty one if a is unknown.
func (m MultiAgentSchedule) Schedule(a AgentID) Schedule {
	return m.schedules[a]
}

// IntroduceAgent ensures a has an (initially empty) schedule.
func (m MultiAgentSchedule) IntroduceAgent(a AgentID) MultiAgentSchedule {
	if _, ok := m.schedules[a]; ok {
		return m
	}
	out := m.clone()
	out.schedules[a] = Schedule{}
	return out
}

// AddEvent appends e to a's schedule.
func (m MultiAgentSchedule) AddEvent(a AgentID, e Event) MultiAgentSchedule {
	out := m.clone()
	out.schedules[a] = out.schedules[a].Append(e)
	return out
}

// AddEvents appends es to a's schedule in order.
func (m MultiAgentSchedule) AddEvents(a AgentID, es ...Event) MultiAgentSchedule {
	out := m.clone()
	out.schedules[a] = out.schedules[a].AppendAll(es...)
	return out
}

// SetSchedule replaces a's schedule wholesale — used by the "splice idle
// suffix" step, which pops and rewrites an agent's tail.
func (m MultiAgentSchedule) SetSchedule(a AgentID, s Schedule) MultiAgentSchedule {
	out := m.clone()
	out.schedules[a] = s
	return out
}

// AddSchedule merges a single agent's schedule into this one by
// concatenation, preserving per-agent ordering. Callers must ensure the
// concatenation does not violate causality.
func (m MultiAgentSchedule) AddSchedule(a AgentID, s Schedule) MultiAgentSchedule {
	out := m.clone()
	out.schedules[a] = Schedule{events: append(append([]Event{}, out.schedules[a].events...), s.events...)}
	return out
}

// Merge concatenates a list of multi-agent schedules preserving per-agent
// ordering.
func Merge(schedules []MultiAgentSchedule) MultiAgentSchedule {
	out := NewMultiAgentSchedule()
	for _, s := range schedules {
		for _, a := range s.Agents() {
			out = out.AddSchedule(a, s.Schedule(a))
		}
	}
	return out
}

// Offset returns a copy of m with every agent's schedule shifted forward by
// dt, used to merge a batch/stratum planned from clock 0 onto the
// cumulative timeline of its predecessors (spec.md C8).
func (m MultiAgentSchedule) Offset(dt float64) MultiAgentSchedule {
	out := NewMultiAgentSchedule()
	for a, s := range m.schedules {
		out.schedules[a] = s.Offset(dt)
	}
	return out
}

func (m MultiAgentSchedule) clone() MultiAgentSchedule {
	out := NewMultiAgentSchedule()
	for k, v := range m.schedules {
		out.schedules[k] = v
	}
	return out
}

// StartTime returns the earliest start across all agents' schedules, or 0 if
// every schedule is empty.
func (m MultiAgentSchedule) StartTime() float64 {
	if m.windowed {
		return m.windowStart
	}
	first := true
	var best float64
	for _, s := range m.schedules {
		if s.IsEmpty() {
			continue
		}
		if first || s.StartTime() < best {
			best = s.StartTime()
			first = false
		}
	}
	return best
}

// EndTime returns the latest end across all agents' schedules, or 0 if
// every schedule is empty.
func (m MultiAgentSchedule) EndTime() float64 {
	if m.windowed {
		return m.windowEnd
	}
	var best float64
	for _, s := range m.schedules {
		if s.EndTime() > best {
			best = s.EndTime()
		}
	}
	return best
}

// Slice returns a MultiAgentSchedule over [t0,t1]. Per spec.md §9, slicing
// an all-empty schedule still returns a schedule whose bounds equal the
// query window, to keep duration arithmetic total.
func (m MultiAgentSchedule) Slice(t0, t1 float64) MultiAgentSchedule {
	out := NewMultiAgentSchedule()
	any := false
	for a, s := range m.schedules {
		sl := s.Slice(t0, t1)
		out.schedules[a] = sl
		if !sl.IsEmpty() {
			any = true
		}
	}
	if !any {
		out.windowStart, out.windowEnd = t0, t1
		out.windowed = true
	}
	return out
}
