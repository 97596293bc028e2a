package queue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentValidate(t *testing.T) {
	sid := uuid.New()
	tests := []struct {
		name    string
		intent  Intent
		wantErr bool
	}{
		{name: "initiate", intent: Intent{Type: IntentInitiate, Participants: []string{"a", "b"}}},
		{name: "initiate without participants", intent: Intent{Type: IntentInitiate}, wantErr: true},
		{name: "join", intent: Intent{Type: IntentJoin, SessionID: sid, CombatantID: "a"}},
		{name: "missing session", intent: Intent{Type: IntentCommit, CombatantID: "a"}, wantErr: true},
		{name: "missing combatant", intent: Intent{Type: IntentLeave, SessionID: sid}, wantErr: true},
		{name: "queue without action", intent: Intent{Type: IntentQueue, SessionID: sid, CombatantID: "a"}, wantErr: true},
		{name: "queue", intent: Intent{Type: IntentQueue, SessionID: sid, CombatantID: "a", Action: &ActionSpec{Name: "move"}}},
		{name: "unknown type", intent: Intent{Type: "dance", SessionID: sid, CombatantID: "a"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intent.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIntentJSON(t *testing.T) {
	pos := 0
	in := &Intent{
		RequestID:   "req-1",
		Type:        IntentQueue,
		SessionID:   uuid.New(),
		CombatantID: "alice",
		Action:      &ActionSpec{Name: "shoot", Target: "bob", Weapon: "heavy pistol"},
		Position:    &pos,
	}
	data, err := in.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"`+in.SessionID.String()+`"`)

	out, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, in.SessionID, out.SessionID)
	assert.Equal(t, "bob", out.Action.Target)
	require.NotNil(t, out.Position)
	assert.Equal(t, 0, *out.Position)

	_, err = FromJSON([]byte(`{"type":"commit"}`))
	assert.Error(t, err, "invalid intents are rejected on parse")
	_, err = FromJSON([]byte(`{nope`))
	assert.Error(t, err)
}
