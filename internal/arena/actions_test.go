package arena

import (
	"testing"

	"github.com/jwebster45206/combat-engine/pkg/combat"
	"github.com/jwebster45206/combat-engine/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAction(t *testing.T) {
	tests := []struct {
		name     string
		spec     queue.ActionSpec
		wantKind combat.Kind
		wantName string
		wantErr  bool
	}{
		{name: "move", spec: queue.ActionSpec{Name: "Move", X: 3, Y: 4}, wantKind: combat.MoveAction, wantName: "move"},
		{name: "sprint", spec: queue.ActionSpec{Name: "sprint"}, wantKind: combat.ComplexAction, wantName: "sprint"},
		{name: "hit", spec: queue.ActionSpec{Name: "hit", Target: "bob"}, wantKind: combat.ComplexAction, wantName: "hit"},
		{name: "hit without target", spec: queue.ActionSpec{Name: "hit"}, wantErr: true},
		{name: "shoot", spec: queue.ActionSpec{Name: "shoot", Target: "bob"}, wantKind: combat.SimpleAction, wantName: "shoot"},
		{name: "shoot without target", spec: queue.ActionSpec{Name: "shoot"}, wantErr: true},
		{name: "drop", spec: queue.ActionSpec{Name: "drop", Effect: "armor"}, wantKind: combat.FreeAction, wantName: "drop"},
		{name: "drop without effect", spec: queue.ActionSpec{Name: "drop"}, wantErr: true},
		{name: "full defense", spec: queue.ActionSpec{Name: " full_defense "}, wantKind: combat.FreeAction, wantName: "full_defense"},
		{name: "unknown", spec: queue.ActionSpec{Name: "cartwheel"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := BuildAction(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, a.Kind())
			assert.Equal(t, tt.wantName, a.Name())
		})
	}
}

func TestBuildActionArguments(t *testing.T) {
	a, err := BuildAction(queue.ActionSpec{Name: "move", X: 3, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, combat.Move{To: combat.Vec{X: 3, Y: 4}}, a)

	a, err = BuildAction(queue.ActionSpec{Name: "shoot", Target: "bob", Weapon: "Colt America L36"})
	require.NoError(t, err)
	shoot, ok := a.(combat.Shoot)
	require.True(t, ok)
	require.NotNil(t, shoot.Weapon)
	assert.Equal(t, "Colt America L36", shoot.Weapon.Name)

	_, err = BuildAction(queue.ActionSpec{Name: "cartwheel"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}
