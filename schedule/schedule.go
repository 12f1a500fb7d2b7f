package schedule

import (
	"github.com/elektrokombinacija/swarmweld/geometry"
)

// Schedule is a single agent's ordered list of events.
type Schedule struct {
	events []Event
}

// New wraps an event list (assumed already ordered by start time) as a Schedule.
func New(events []Event) Schedule { return Schedule{events: events} }

// Events returns the schedule's events in order.
func (s Schedule) Events() []Event { return s.events }

// NEvents returns the number of events.
func (s Schedule) NEvents() int { return len(s.events) }

// IsEmpty reports whether the schedule has no events.
func (s Schedule) IsEmpty() bool { return len(s.events) == 0 }

// StartTime returns the first event's start, or 0 if empty.
func (s Schedule) StartTime() float64 {
	if s.IsEmpty() {
		return 0
	}
	return s.events[0].Start()
}

// EndTime returns the last event's end, or 0 if empty.
func (s Schedule) EndTime() float64 {
	if s.IsEmpty() {
		return 0
	}
	return s.events[len(s.events)-1].End()
}

// Append returns a new Schedule with e appended.
func (s Schedule) Append(e Event) Schedule {
	out := make([]Event, len(s.events), len(s.events)+1)
	copy(out, s.events)
	out = append(out, e)
	return Schedule{events: out}
}

// AppendAll returns a new Schedule with es appended in order.
func (s Schedule) AppendAll(es ...Event) Schedule {
	out := make([]Event, len(s.events), len(s.events)+len(es))
	copy(out, s.events)
	out = append(out, es...)
	return Schedule{events: out}
}

// WithoutLast returns the schedule with its final event removed, and that
// event, for the "splice idle suffix" step.
func (s Schedule) WithoutLast() (Schedule, Event, bool) {
	if s.IsEmpty() {
		return s, nil, false
	}
	last := s.events[len(s.events)-1]
	return Schedule{events: s.events[:len(s.events)-1]}, last, true
}

// Slice returns the events overlapping [t0,t1] whole — events are never
// chopped by Schedule.Slice (chopping happens in trajectory space).
func (s Schedule) Slice(t0, t1 float64) Schedule {
	var out []Event
	for _, e := range s.events {
		if overlapsWindow(e, t0, t1) {
			out = append(out, e)
		}
	}
	return Schedule{events: out}
}

// Offset returns a copy of s with every event shifted forward by dt.
func (s Schedule) Offset(dt float64) Schedule {
	if dt == 0 || s.IsEmpty() {
		return s
	}
	out := make([]Event, len(s.events))
	for i, e := range s.events {
		out[i] = OffsetEvent(e, dt)
	}
	return Schedule{events: out}
}

// GetState returns the interpolated tip position at t if some event covers
// t, the last event's terminal position if t falls after the schedule has
// started but between/after events, or dflt if t precedes the first event
// or the schedule is empty.
func (s Schedule) GetState(t float64, dflt geometry.Vec3) geometry.Vec3 {
	if s.IsEmpty() || t < s.events[0].Start() {
		return dflt
	}
	for _, e := range s.events {
		if t >= e.Start() && t <= e.End() {
			if v, ok := e.Trajectory().Sample(t); ok {
				return v
			}
		}
	}
	last := s.events[len(s.events)-1]
	if pts := last.Trajectory().Points(); len(pts) > 0 {
		return pts[len(pts)-1].Data
	}
	return dflt
}
