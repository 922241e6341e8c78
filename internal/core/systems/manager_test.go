package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

type recordingSystem struct {
	name     string
	priority Priority
	trace    *[]string
}

func (r *recordingSystem) Name() string       { return r.name }
func (r *recordingSystem) Priority() Priority { return r.priority }
func (r *recordingSystem) Update(_ *Context, _ models.AgentID, _ *models.AgentState) {
	*r.trace = append(*r.trace, r.name)
}

func TestManager_OrdersByPriority(t *testing.T) {
	var trace []string
	m, err := NewManager(
		&recordingSystem{name: "motion", priority: PriorityLow, trace: &trace},
		&recordingSystem{name: "schooling", priority: PriorityHigh, trace: &trace},
		&recordingSystem{name: "idle", priority: PriorityNormal, trace: &trace},
		&recordingSystem{name: "late", priority: PriorityLow, trace: &trace},
	)
	require.NoError(t, err)

	want := []string{"schooling", "idle", "motion", "late"}
	assert.Equal(t, want, m.ExecutionOrder())

	m.Snapshot().Apply(&Context{}, 0, &models.AgentState{})
	assert.Equal(t, want, trace)
}

func TestManager_RegisterErrors(t *testing.T) {
	var trace []string
	m, err := NewManager()
	require.NoError(t, err)

	assert.ErrorIs(t, m.Register(nil), ErrNilSystem)
	require.NoError(t, m.Register(&recordingSystem{name: "a", trace: &trace}))
	assert.ErrorIs(t, m.Register(&recordingSystem{name: "a", trace: &trace}), ErrSystemExists)

	_, err = NewManager(&recordingSystem{name: "b", trace: &trace}, &recordingSystem{name: "b", trace: &trace})
	assert.ErrorIs(t, err, ErrSystemExists)
}

func TestManager_EnableDisableUnregister(t *testing.T) {
	var trace []string
	m, err := NewManager(
		&recordingSystem{name: "a", priority: PriorityHigh, trace: &trace},
		&recordingSystem{name: "b", priority: PriorityLow, trace: &trace},
	)
	require.NoError(t, err)

	require.NoError(t, m.Disable("a"))
	m.Snapshot().Apply(&Context{}, 0, &models.AgentState{})
	assert.Equal(t, []string{"b"}, trace)

	metrics, ok := m.Metrics("a")
	require.True(t, ok)
	assert.Equal(t, StateDisabled, metrics.State)
	assert.Equal(t, uint64(0), metrics.EntitiesProcessed)

	require.NoError(t, m.Enable("a"))
	m.Snapshot().Apply(&Context{}, 1, &models.AgentState{})
	assert.Equal(t, []string{"b", "a", "b"}, trace)

	all := m.AllMetrics()
	require.Len(t, all, 2)
	assert.Equal(t, uint64(1), all[0].EntitiesProcessed)
	assert.Equal(t, uint64(2), all[1].EntitiesProcessed)
	assert.Equal(t, "enabled", all[0].State.String())

	// a pipeline keeps the systems enabled when it was taken
	pipe := m.Snapshot()
	require.NoError(t, m.Disable("b"))
	trace = trace[:0]
	pipe.Apply(&Context{}, 2, &models.AgentState{})
	assert.Equal(t, []string{"a", "b"}, trace)
	assert.Equal(t, 1, m.Snapshot().Len())

	require.NoError(t, m.Unregister("a"))
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.ErrorIs(t, m.Unregister("a"), ErrSystemNotFound)
	assert.ErrorIs(t, m.Enable("missing"), ErrSystemNotFound)
	assert.Equal(t, []string{"b"}, m.ExecutionOrder())
}

func TestMotion_IntegratesAndWraps(t *testing.T) {
	ctx := &Context{Dt: 0.5, Area: models.NewArea(100, 50)}
	agent := models.AgentState{Position: physics.V(98, 1), Velocity: physics.V(10, -4)}

	NewMotion().Update(ctx, 0, &agent)
	assert.InDelta(t, 3, agent.Position.X, 1e-9)
	assert.InDelta(t, 49, agent.Position.Y, 1e-9)
	assert.Equal(t, physics.V(10, -4), agent.Velocity)
}

func TestMotion_UnboundedArea(t *testing.T) {
	ctx := &Context{Dt: 1}
	agent := models.AgentState{Position: physics.V(-5, 5), Velocity: physics.V(-1, 1)}
	NewMotion().Update(ctx, 0, &agent)
	assert.Equal(t, physics.V(-6, 6), agent.Position)
}
