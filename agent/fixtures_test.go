package agent_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/collision"
	"github.com/elektrokombinacija/swarmweld/geometry"
)

// newFixtureAgentID generates a fresh, opaque agent id for fleet fixtures in
// tests — convenient only because nothing in these tests cares about a
// particular id value. agent.ID itself stays caller-supplied (spec.md §9):
// production callers choose their own ids; nothing in this package calls
// uuid.
func newFixtureAgentID(t *testing.T) agent.ID {
	t.Helper()
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return agent.ID(id.String())
}

func TestModelWithGeneratedFixtureID(t *testing.T) {
	id := newFixtureAgentID(t)
	m := agent.NewModel(collision.NewOrientedBox(1, 1, 1), geometry.Vec3{}, geometry.Vec3{}, 1, 1, "weld")
	require.NotEmpty(t, string(id))
	require.True(t, m.CanPerform("weld"))
}
