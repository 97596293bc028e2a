package combat

import (
	"github.com/jwebster45206/combat-engine/pkg/dice"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

const (
	meleeReach       = 1.0
	sprintingPenalty = -4
	runningPenalty   = -2
)

// AttackResult is the outcome of an attack. When OutOfRange is set nothing was
// rolled and only Distance and Band are meaningful.
type AttackResult struct {
	Distance      float64       `json:"distance"`
	Band          RangeBand     `json:"band"`
	OutOfRange    bool          `json:"out_of_range"`
	Pool          int           `json:"pool"`
	Modifier      int           `json:"modifier"`
	Limit         int           `json:"limit"`
	Hits          int           `json:"hits"`
	Glitch        dice.Glitch   `json:"glitch"`
	DefensePool   int           `json:"defense_pool"`
	DefenseHits   int           `json:"defense_hits"`
	DefenseGlitch dice.Glitch   `json:"defense_glitch"`
	NetHits       int           `json:"net_hits"`
	Resist        *ResistResult `json:"resist,omitempty"`
}

// Hit is an unarmed melee attack dealing strength + net hits stun damage.
type Hit struct {
	Target string
}

func (Hit) Kind() Kind   { return ComplexAction }
func (Hit) Name() string { return "hit" }

func (h Hit) Resolve(ctx *Context) (Outcome, error) {
	target, err := ctx.Target(h.Target)
	if err != nil {
		return Outcome{}, err
	}
	info := ctx.Actor
	c := info.c
	out := newOutcome(h, ctx)
	out.Target = target.c.ID
	res := &AttackResult{Distance: c.Pos.Dist(target.c.Pos)}
	out.Attack = res
	if res.Distance > meleeReach {
		res.OutOfRange = true
		res.Band = OutOfRange
		return out, nil
	}

	pool, err := dicePool(c.Sheet, sheet.UnarmedCombat, "")
	if err != nil {
		return Outcome{}, err
	}
	info.set(ComplexActionDone)
	info.set(AttackDone)

	pool += info.Bonus(sheet.UnarmedCombat.String())
	res.Limit = c.Sheet.LimitPhysical()
	damage := c.Sheet.Attribute(sheet.Strength)
	exchange(ctx, target, res, pool, damage, Stun, 0)
	return out, nil
}

func (h Hit) Describe(o Outcome) Message {
	return describeAttack(o)
}

// Shoot is a ranged attack. Range band and target movement lower the attack
// pool; the weapon's accuracy caps the hits.
type Shoot struct {
	Target string
	Weapon *Weapon
}

func (Shoot) Kind() Kind   { return SimpleAction }
func (Shoot) Name() string { return "shoot" }

func (s Shoot) weapon() *Weapon {
	if s.Weapon == nil {
		return HeavyPistol("Ares Predator V")
	}
	return s.Weapon
}

// Modifier is the attack pool modifier for shooting at target from distance.
func (s Shoot) Modifier(target *Info, distance float64) int {
	mod := s.weapon().Band(distance).Penalty()
	switch {
	case target.Has(Sprinting):
		mod += sprintingPenalty
	case target.Has(Running):
		mod += runningPenalty
	}
	return mod
}

func (s Shoot) Resolve(ctx *Context) (Outcome, error) {
	target, err := ctx.Target(s.Target)
	if err != nil {
		return Outcome{}, err
	}
	info := ctx.Actor
	c := info.c
	w := s.weapon()
	out := newOutcome(s, ctx)
	out.Target = target.c.ID
	res := &AttackResult{Distance: c.Pos.Dist(target.c.Pos)}
	res.Band = w.Band(res.Distance)
	out.Attack = res
	if res.Band == OutOfRange {
		res.OutOfRange = true
		return out, nil
	}

	pool, err := dicePool(c.Sheet, w.Skill, "")
	if err != nil {
		return Outcome{}, err
	}
	if info.Has(SimpleActionDone) {
		info.set(SecondSimpleActionDone)
	}
	info.set(SimpleActionDone)
	info.set(AttackDone)

	res.Modifier = s.Modifier(target, res.Distance)
	pool += info.Bonus(w.Category) + res.Modifier
	res.Limit = w.Accuracy
	exchange(ctx, target, res, pool, w.DamageValue(), w.DamageType(), w.ArmorPiercing())
	return out, nil
}

func (s Shoot) Describe(o Outcome) Message {
	msg := describeAttack(o)
	if msg.Args != nil {
		msg.Args["weapon"] = s.weapon().Name
	}
	return msg
}

// exchange rolls attack against defense and lets the target resist base
// damage plus net hits.
func exchange(ctx *Context, target *Info, res *AttackResult, pool, base int, typ DamageType, ap int) {
	res.Pool = max(0, pool)
	roll := ctx.Dice.Pool(res.Pool, res.Limit)
	res.Hits = roll.Hits
	res.Glitch = roll.Glitch

	def := target.Defend(ctx.Dice, dice.NoLimit, 0)
	res.DefensePool = def.Pool
	res.DefenseHits = def.Hits
	res.DefenseGlitch = def.Glitch

	res.NetHits = res.Hits - res.DefenseHits
	if res.NetHits <= 0 {
		return
	}
	resist := target.c.Resist(ctx.Dice, base+res.NetHits, typ, ap)
	res.Resist = &resist
}

func describeAttack(o Outcome) Message {
	msg := Message{Key: "attack." + o.Action, Actor: o.Actor, Target: o.Target}
	a := o.Attack
	if a == nil {
		return msg
	}
	switch {
	case a.OutOfRange:
		msg.Key += ".out_of_range"
		msg.Args = map[string]any{"distance": a.Distance}
		return msg
	case a.Resist == nil:
		msg.Key += ".miss"
	default:
		msg.Key += ".damage"
	}
	msg.Args = map[string]any{
		"distance":     a.Distance,
		"pool":         a.Pool,
		"limit":        a.Limit,
		"hits":         a.Hits,
		"defense_pool": a.DefensePool,
		"defense_hits": a.DefenseHits,
		"net_hits":     a.NetHits,
	}
	if r := a.Resist; r != nil {
		msg.Args["damage"] = r.Damage
		msg.Args["damage_value"] = r.DamageValue
		msg.Args["damage_type"] = string(r.Type)
		msg.Args["resist_pool"] = r.Pool
		msg.Args["resist_hits"] = r.Hits
	}
	return msg
}
