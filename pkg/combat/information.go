package combat

import (
	"github.com/jwebster45206/combat-engine/pkg/dice"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

const (
	passCost        = 10
	runningMalus    = 2
	edgeWeight      = 0.01
	reactionWeight  = 0.0001
	intuitionWeight = 0.000001
	jitterWeight    = 0.0000001
)

// DefenseRoll is the outcome of a defense test.
type DefenseRoll struct {
	Pool   int         `json:"pool"`
	Hits   int         `json:"hits"`
	Glitch dice.Glitch `json:"glitch"`
}

// Info is the combat-scoped state of one combatant: rolled initiative,
// per-turn counters and status flags. It is rebuilt whenever the combatant
// enters a combat and never persisted.
type Info struct {
	c *Combatant

	rolled             float64
	defenses           int
	consecutiveSprints int
	turnSprints        int
	sprintHits         int
	flags              Flags
}

func NewInfo(c *Combatant) *Info {
	return &Info{c: c}
}

func (i *Info) Combatant() *Combatant { return i.c }

func (i *Info) Flags() Flags { return i.flags }

func (i *Info) Has(f Flag) bool { return i.flags.Has(f) }

func (i *Info) Defenses() int { return i.defenses }

func (i *Info) SprintHits() int { return i.sprintHits }

// NewCombatTurn rolls initiative and resets the per-turn counters. The
// tiebreak weighs edge, reaction and intuition far below a single die and adds
// a jitter below all of them, so initiatives are totally ordered.
func (i *Info) NewCombatTurn(d *dice.Roller) {
	s := i.c.Sheet
	rolled := 0.0
	for range s.InitiativeDice() {
		rolled += float64(d.Die())
	}
	rolled += edgeWeight*float64(s.Attribute(sheet.Edge)) +
		reactionWeight*float64(s.Attribute(sheet.Reaction)) +
		intuitionWeight*float64(s.Attribute(sheet.Intuition)) +
		jitterWeight*d.Jitter()
	i.rolled = rolled
	i.defenses = 0
	i.sprintHits = 0
	i.flags.Clear(FullDefense)
	i.c.ageEffects()
}

func (i *Info) EndCombatTurn() {
	i.turnSprints = 0
	if !i.Has(Sprinting) {
		i.consecutiveSprints = 0
	}
	i.flags.Clear(Running)
	i.flags.Clear(Sprinting)
}

func (i *Info) NewInitiativePass() {}

// EndInitiativePass spends one pass worth of initiative and clears the
// pass-scoped flags. A combatant left with 1 to 10 initiative falls back to
// full defense.
func (i *Info) EndInitiativePass() {
	if ini := i.Initiative(); ini >= 1 && ini <= passCost && !i.Has(FullDefense) {
		i.enterFullDefense()
	}
	i.rolled -= passCost
	i.flags &^= Flags(passFlags)
}

func (i *Info) NewActionPhase() {
	i.defenses = 0
}

func (i *Info) EndActionPhase() {
	i.flags.Clear(AttackDone)
	i.flags.Set(ActionPhaseDone)
}

// Initiative is reaction + intuition + rolled dice + the initiative bonus.
func (i *Info) Initiative() float64 {
	s := i.c.Sheet
	return float64(s.Attribute(sheet.Reaction)+s.Attribute(sheet.Intuition)) +
		i.rolled + float64(i.Bonus(TargetInitiative))
}

// WalkMax is how far the combatant may walk in one combat turn.
func (i *Info) WalkMax() float64 {
	s := i.c.Sheet
	return float64(s.Attribute(sheet.Agility) * s.Attribute(sheet.WalkRate))
}

// MovementMax is how far the combatant may run in one combat turn, sprint
// hits included.
func (i *Info) MovementMax() float64 {
	s := i.c.Sheet
	return float64(s.Attribute(sheet.Agility)*s.Attribute(sheet.RunRate) +
		i.sprintHits*s.Attribute(sheet.SprintIncrease))
}

// Bonus adds the combat modifiers to the combatant's bonus: every defense
// this phase beyond the first costs a die, and running costs two on every test
// but initiative.
func (i *Info) Bonus(target string) int {
	bonus := i.c.Bonus(target)
	if target == TargetInitiative {
		return bonus
	}
	if target == TargetDefense {
		bonus -= i.defenses
	}
	if i.Has(Running) {
		bonus -= runningMalus
	}
	return bonus
}

// GoFullDefense trades ten initiative for willpower on every defense this
// turn.
func (i *Info) GoFullDefense() error {
	if i.Has(FullDefense) {
		return violation("already in full defense")
	}
	if i.Initiative() < 1 {
		return violation("full defense needs initiative above 0")
	}
	i.enterFullDefense()
	return nil
}

func (i *Info) enterFullDefense() {
	i.rolled -= passCost
	i.flags.Set(FullDefense)
}

// Defend rolls reaction + intuition (+ willpower in full defense) against an
// attack.
func (i *Info) Defend(d *dice.Roller, limit, modifier int) DefenseRoll {
	s := i.c.Sheet
	pool := s.Attribute(sheet.Reaction) + s.Attribute(sheet.Intuition) +
		i.Bonus(TargetDefense) + modifier
	if i.Has(FullDefense) {
		pool += s.Attribute(sheet.Willpower)
	}
	pool = max(0, pool)
	roll := d.Pool(pool, limit)
	i.defenses++
	return DefenseRoll{Pool: pool, Hits: roll.Hits, Glitch: roll.Glitch}
}

// DropSustained ends a sustained effect. It costs the free action of the
// phase.
func (i *Info) DropSustained(name string) error {
	if i.Has(FreeActionDone) {
		return violation("dropping a sustained effect needs a free action")
	}
	if !i.c.hasEffect(name) {
		return &RuleViolation{Rule: "no such sustained effect", Err: ErrUnknownEffect}
	}
	i.flags.Set(FreeActionDone)
	return i.c.dropEffect(name)
}

func (i *Info) set(f Flag) { i.flags.Set(f) }
