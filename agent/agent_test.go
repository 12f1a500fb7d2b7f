package agent_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swarmweld/agent"
	"github.com/elektrokombinacija/swarmweld/collision"
	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/toolpath"
)

func TestModelCanPerform(t *testing.T) {
	m := agent.NewModel(collision.NewOrientedBox(1, 1, 1), geometry.Vec3{}, geometry.Vec3{}, 1, 2, "weld", "grind")
	require.True(t, m.CanPerform("weld"))
	require.True(t, m.CanPerform("grind"))
	require.False(t, m.CanPerform("paint"))
}

func TestModelWithNoCapabilities(t *testing.T) {
	m := agent.NewModel(collision.NewOrientedBox(1, 1, 1), geometry.Vec3{}, geometry.Vec3{}, 1, 2)
	require.False(t, m.CanPerform(toolpath.ToolID("anything")))
}

func TestModelCloneIsIndependent(t *testing.T) {
	shape := collision.NewOrientedBox(1, 1, 1)
	shape.SetTranslation(geometry.Vec3{X: 1})
	m := agent.NewModel(shape, geometry.Vec3{}, geometry.Vec3{}, 1, 2, "weld")

	cp := m.Clone()
	cp.CollisionShape.SetTranslation(geometry.Vec3{X: 99})

	require.Equal(t, geometry.Vec3{X: 1}, m.CollisionShape.Translation(),
		"cloning a Model must not let the copy's shape mutation leak back to the original")
	require.Equal(t, geometry.Vec3{X: 99}, cp.CollisionShape.Translation())
	require.True(t, cp.CanPerform("weld"))
}
