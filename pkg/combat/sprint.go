package combat

import (
	"errors"

	"github.com/jwebster45206/combat-engine/pkg/dice"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

// sprintCompensation offsets the running malus a sprinter always carries.
const sprintCompensation = 2

// SprintResult is the outcome of a Sprint.
type SprintResult struct {
	Pool    int           `json:"pool"`
	Limit   int           `json:"limit"`
	Hits    int           `json:"hits"`
	Glitch  dice.Glitch   `json:"glitch"`
	Extra   float64       `json:"extra"`
	Fatigue *ResistResult `json:"fatigue,omitempty"`
}

// Sprint spends the action phase on a running test. Every hit extends the
// movement maximum of the turn by the sprint increase. Sprinting in
// consecutive turns costs stun fatigue.
type Sprint struct{}

func (Sprint) Kind() Kind   { return ComplexAction }
func (Sprint) Name() string { return "sprint" }

// MaxSprintTests is the number of sprint tests allowed per turn: half the
// running rating, rounded up, at least one.
func MaxSprintTests(s *sheet.Sheet) int {
	return max(1, (s.Rating(sheet.Running)+1)/2)
}

func (sp Sprint) Resolve(ctx *Context) (Outcome, error) {
	info := ctx.Actor
	c := info.c
	if info.turnSprints+1 > MaxSprintTests(c.Sheet) {
		return Outcome{}, violation("too many sprint tests this turn")
	}
	pool, err := dicePool(c.Sheet, sheet.Running, "")
	if err != nil {
		return Outcome{}, err
	}

	info.consecutiveSprints++
	info.turnSprints++
	info.set(Sprinting)
	info.set(Running)
	info.set(ComplexActionDone)

	pool += info.Bonus(TargetSprint) + sprintCompensation
	limit := c.Sheet.LimitPhysical()
	roll := ctx.Dice.Pool(max(0, pool), limit)
	info.sprintHits += roll.Hits

	out := newOutcome(sp, ctx)
	res := &SprintResult{
		Pool:   roll.Pool,
		Limit:  limit,
		Hits:   roll.Hits,
		Glitch: roll.Glitch,
		Extra:  float64(roll.Hits * c.Sheet.Attribute(sheet.SprintIncrease)),
	}
	if info.consecutiveSprints > 1 {
		fatigue := c.ResistFatigue(ctx.Dice, info.consecutiveSprints)
		res.Fatigue = &fatigue
	}
	out.Sprint = res
	return out, nil
}

func (Sprint) Describe(o Outcome) Message {
	msg := Message{Key: "sprint", Actor: o.Actor}
	if o.Sprint == nil {
		return msg
	}
	msg.Args = map[string]any{
		"extra": o.Sprint.Extra,
		"hits":  o.Sprint.Hits,
		"pool":  o.Sprint.Pool,
		"limit": o.Sprint.Limit,
	}
	if f := o.Sprint.Fatigue; f != nil {
		msg.Key = "sprint.fatigue"
		msg.Args["damage"] = f.Damage
		msg.Args["damage_value"] = f.DamageValue
		msg.Args["fatigue_hits"] = f.Hits
		msg.Args["fatigue_pool"] = f.Pool
	}
	return msg
}

// dicePool reports a skill that may not be defaulted as a rule violation.
func dicePool(s *sheet.Sheet, sk sheet.Skill, specialization string) (int, error) {
	pool, err := s.DicePool(sk, specialization)
	if errors.Is(err, sheet.ErrCannotDefault) {
		return 0, &RuleViolation{Rule: "untrained skill", Err: err}
	}
	return pool, err
}
