package executor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/executor"
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/schedule"
)

func TestRecorderOrdersByStartThenAgent(t *testing.T) {
	m := schedule.NewMultiAgentSchedule()
	m = m.AddEvent(agent.ID("r2"), schedule.NewMove(0, []geometry.Vec3{{}, {X: 1}}, 1.0))
	m = m.AddEvent(agent.ID("r1"), schedule.NewMove(0, []geometry.Vec3{{}, {X: 1}}, 1.0))
	m = m.AddEvent(agent.ID("r1"), schedule.NewMove(5, []geometry.Vec3{{}, {X: 1}}, 1.0))

	rec := executor.NewRecorder()
	require.NoError(t, rec.Execute(context.Background(), m))
	require.Len(t, rec.Log, 3)
	require.Equal(t, agent.ID("r1"), rec.Log[0].Agent)
	require.Equal(t, agent.ID("r2"), rec.Log[1].Agent)
	require.Equal(t, 5.0, rec.Log[2].Event.Start())
}
