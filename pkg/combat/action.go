package combat

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/combat-engine/pkg/dice"
)

// Kind is the action-economy category of an action.
type Kind int

const (
	FreeAction Kind = iota
	SimpleAction
	ComplexAction
	MoveAction
)

func (k Kind) String() string {
	switch k {
	case FreeAction:
		return "FREE_ACTION"
	case SimpleAction:
		return "SIMPLE_ACTION"
	case ComplexAction:
		return "COMPLEX_ACTION"
	case MoveAction:
		return "MOVE_ACTION"
	default:
		return "UNKNOWN"
	}
}

// Action is a unit of intent queued by a combatant and resolved once, in its
// action phase.
type Action interface {
	Kind() Kind
	Name() string
	Resolve(ctx *Context) (Outcome, error)
	Describe(o Outcome) Message
}

// Context is what an action sees while it resolves: the dice, the acting
// combatant and the other participants.
type Context struct {
	Session string
	Dice    *dice.Roller
	Actor   *Info
	Targets map[string]*Info

	// Moved is the distance the actor has covered this combat turn.
	Moved  float64
	Logger *slog.Logger
	Sink   Sink
}

// Target looks up another participant of the session.
func (ctx *Context) Target(id string) (*Info, error) {
	info, ok := ctx.Targets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCombatant, id)
	}
	if info == ctx.Actor {
		return nil, violation("a combatant cannot target itself")
	}
	return info, nil
}

func (ctx *Context) logger() *slog.Logger {
	if ctx.Logger == nil {
		return slog.Default()
	}
	return ctx.Logger
}

func (ctx *Context) notify(to string, msg Message) {
	if ctx.Sink == nil {
		return
	}
	ctx.Sink.Notify(Notice{Session: ctx.Session, To: to, Message: msg})
}

// Outcome is the structured result of one resolved action. Exactly one of the
// detail records is set for a successful action; Err is set when the action
// was rejected during resolution and had no effect.
type Outcome struct {
	Action string        `json:"action"`
	Kind   Kind          `json:"kind"`
	Actor  string        `json:"actor"`
	Target string        `json:"target,omitempty"`
	Move   *MoveResult   `json:"move,omitempty"`
	Sprint *SprintResult `json:"sprint,omitempty"`
	Attack *AttackResult `json:"attack,omitempty"`
	Effect string        `json:"effect,omitempty"`
	Err    error         `json:"-"`
}

func newOutcome(a Action, ctx *Context) Outcome {
	return Outcome{Action: a.Name(), Kind: a.Kind(), Actor: ctx.Actor.c.ID}
}
