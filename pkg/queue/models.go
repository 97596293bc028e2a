// Package queue defines the intents players send to the combat engine.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IntentType identifies what an intent asks the engine to do.
type IntentType string

const (
	// IntentInitiate starts a new session with the listed participants.
	IntentInitiate IntentType = "initiate"
	IntentJoin     IntentType = "join"
	IntentLeave    IntentType = "leave"
	IntentQueue    IntentType = "queue"
	IntentCommit   IntentType = "commit"
	IntentClear    IntentType = "clear"
)

// ActionSpec names an action and its arguments.
type ActionSpec struct {
	Name   string  `json:"name"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Target string  `json:"target,omitempty"`
	Weapon string  `json:"weapon,omitempty"`
	Effect string  `json:"effect,omitempty"`
}

// Intent is one player request in the queue.
type Intent struct {
	RequestID   string     `json:"request_id"`
	Type        IntentType `json:"type"`
	SessionID   uuid.UUID  `json:"session_id"`
	CombatantID string     `json:"combatant_id,omitempty"`

	// Initiate-specific fields
	Participants []string `json:"participants,omitempty"`

	// Queue-specific fields. A nil Position appends.
	Action   *ActionSpec `json:"action,omitempty"`
	Position *int        `json:"position,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Validate checks that the fields the intent type needs are present.
func (i *Intent) Validate() error {
	switch i.Type {
	case IntentInitiate:
		if len(i.Participants) == 0 {
			return errors.New("initiate needs at least one participant")
		}
		return nil
	case IntentJoin, IntentLeave, IntentQueue, IntentCommit, IntentClear:
	default:
		return fmt.Errorf("unknown intent type: %q", i.Type)
	}
	if i.SessionID == uuid.Nil {
		return fmt.Errorf("%s intent needs a session id", i.Type)
	}
	if i.CombatantID == "" {
		return fmt.Errorf("%s intent needs a combatant id", i.Type)
	}
	if i.Type == IntentQueue && (i.Action == nil || i.Action.Name == "") {
		return errors.New("queue intent needs an action")
	}
	return nil
}

// ToJSON converts the intent to JSON bytes for Redis
func (i *Intent) ToJSON() ([]byte, error) {
	return json.Marshal(i)
}

// FromJSON parses and validates an intent.
func FromJSON(data []byte) (*Intent, error) {
	var intent Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, err
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	return &intent, nil
}
