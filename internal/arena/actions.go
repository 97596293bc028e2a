package arena

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/combat-engine/pkg/combat"
	"github.com/jwebster45206/combat-engine/pkg/queue"
)

// ErrUnknownAction is returned for action names BuildAction does not know.
var ErrUnknownAction = errors.New("unknown action")

// BuildAction turns a queued action spec into a combat action.
func BuildAction(spec queue.ActionSpec) (combat.Action, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Name)) {
	case "move":
		return combat.Move{To: combat.Vec{X: spec.X, Y: spec.Y}}, nil
	case "sprint":
		return combat.Sprint{}, nil
	case "hit":
		if spec.Target == "" {
			return nil, errors.New("hit needs a target")
		}
		return combat.Hit{Target: spec.Target}, nil
	case "shoot":
		if spec.Target == "" {
			return nil, errors.New("shoot needs a target")
		}
		a := combat.Shoot{Target: spec.Target}
		if spec.Weapon != "" {
			a.Weapon = combat.HeavyPistol(spec.Weapon)
		}
		return a, nil
	case "drop":
		if spec.Effect == "" {
			return nil, errors.New("drop needs an effect")
		}
		return combat.DropEffect{Effect: spec.Effect}, nil
	case "full_defense", "defend":
		return combat.Defensive{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, spec.Name)
	}
}
