// Package combat implements the turn-based combat core: combatants and their
// damage model, per-turn combat information, actions, queue admission, the
// resolution pipeline and the session scheduler.
package combat

import (
	"github.com/jwebster45206/combat-engine/pkg/dice"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

// DamageType selects the condition track damage is applied to.
type DamageType string

const (
	Stun     DamageType = "stun"
	Physical DamageType = "physical"
)

const (
	woundInterval    = 3
	sustainedMalus   = 2
	modifierBoniKind = "sheet"
)

// Effect is a sustained effect (a spell or similar) that weighs on every test
// but initiative while it lasts. Remaining counts combat turns; a negative
// value lasts until dropped.
type Effect struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// ResistResult is the outcome of a damage or fatigue resistance test.
type ResistResult struct {
	DamageValue int         `json:"damage_value"`
	Pool        int         `json:"pool"`
	Hits        int         `json:"hits"`
	Glitch      dice.Glitch `json:"glitch"`
	Damage      int         `json:"damage"`
	Type        DamageType  `json:"type"`
}

// Combatant is one participant of a combat. Its damage tracks and condition
// persist across turns; turn-scoped state lives in Info.
type Combatant struct {
	ID    string
	Name  string
	Sheet *sheet.Sheet
	Pos   Vec
	Boni  *Boni

	stun      int
	physical  int
	condition Condition
	sustained []Effect
}

// NewCombatant creates a conscious, unhurt combatant. The sheet's combat
// modifiers are registered as boni.
func NewCombatant(s *sheet.Sheet) *Combatant {
	c := &Combatant{
		ID:    s.ID(),
		Name:  s.Name(),
		Sheet: s,
		Boni:  &Boni{},
	}
	for target, value := range s.CombatModifiers() {
		c.Boni.Add(target, value, modifierBoniKind, s.ID())
	}
	return c
}

func (c *Combatant) Stun() int            { return c.stun }
func (c *Combatant) Physical() int        { return c.physical }
func (c *Combatant) Condition() Condition { return c.condition }
func (c *Combatant) StunMax() int         { return c.Sheet.StunMax() }
func (c *Combatant) PhysicalMax() int     { return c.Sheet.PhysicalMax() }

// Incapacitated reports whether the combatant is unable to act.
func (c *Combatant) Incapacitated() bool {
	return c.condition != Conscious
}

// Opposes reports whether c and o are on different sides, which is the case
// when they share no group.
func (c *Combatant) Opposes(o *Combatant) bool {
	if c == o {
		return false
	}
	for _, g := range c.Sheet.Groups() {
		for _, h := range o.Sheet.Groups() {
			if g == h {
				return false
			}
		}
	}
	return true
}

// ApplyStun adds stun damage. The stun track is capped at its maximum; the
// combatant falls unconscious when it is first filled and every point beyond
// the cap converts to half a point of physical damage.
func (c *Combatant) ApplyStun(amount int) {
	if amount <= 0 {
		return
	}
	maxStun := c.StunMax()
	total := c.stun + amount
	overflow := max(0, total-maxStun)
	c.stun = total - overflow
	if c.stun == maxStun {
		c.deepen(Unconscious)
	}
	if overflow > 0 {
		c.ApplyPhysical(overflow / 2)
	}
}

// ApplyPhysical adds physical damage. A full track leaves the combatant dying,
// damage beyond the track plus body kills.
func (c *Combatant) ApplyPhysical(amount int) {
	if amount <= 0 {
		return
	}
	c.physical += amount
	maxPhysical := c.PhysicalMax()
	if c.physical >= maxPhysical {
		c.deepen(Dying)
	}
	if c.physical > maxPhysical+c.Sheet.Attribute(sheet.Body) {
		c.deepen(Dead)
	}
}

func (c *Combatant) deepen(to Condition) {
	if to > c.condition {
		c.condition = to
	}
}

// Resist rolls body plus effective armor against a damage value and applies
// what gets through. Damage values below the effective armor are always stun.
func (c *Combatant) Resist(d *dice.Roller, value int, typ DamageType, ap int) ResistResult {
	armor := 0
	if base := c.Sheet.Armor(); base > 0 {
		armor = max(0, base+ap)
	}
	if value < armor {
		typ = Stun
	}
	pool := c.Sheet.Attribute(sheet.Body) + armor
	roll := d.Pool(pool, dice.NoLimit)
	damage := max(0, value-roll.Hits)
	if typ == Stun {
		c.ApplyStun(damage)
	} else {
		c.ApplyPhysical(damage)
	}
	return ResistResult{
		DamageValue: value,
		Pool:        roll.Pool,
		Hits:        roll.Hits,
		Glitch:      roll.Glitch,
		Damage:      damage,
		Type:        typ,
	}
}

// ResistFatigue rolls body plus willpower against stun fatigue.
func (c *Combatant) ResistFatigue(d *dice.Roller, value int) ResistResult {
	pool := c.Sheet.Attribute(sheet.Body) + c.Sheet.Attribute(sheet.Willpower)
	roll := d.Pool(pool, dice.NoLimit)
	damage := max(0, value-roll.Hits)
	c.ApplyStun(damage)
	return ResistResult{
		DamageValue: value,
		Pool:        roll.Pool,
		Hits:        roll.Hits,
		Glitch:      roll.Glitch,
		Damage:      damage,
		Type:        Stun,
	}
}

// Bonus is the wound and sustain modifier plus the situational boni for a
// test. Initiative ignores sustained effects.
func (c *Combatant) Bonus(target string) int {
	bonus := -(c.stun / woundInterval) - (c.physical / woundInterval)
	if target != TargetInitiative {
		bonus -= sustainedMalus * len(c.sustained)
	}
	return bonus + c.Boni.Get(target)
}

// Sustain starts a sustained effect. turns < 0 keeps it until dropped.
func (c *Combatant) Sustain(name string, turns int) {
	c.sustained = append(c.sustained, Effect{Name: name, Remaining: turns})
}

// Sustained returns a copy of the active sustained effects.
func (c *Combatant) Sustained() []Effect {
	return append([]Effect(nil), c.sustained...)
}

func (c *Combatant) dropEffect(name string) error {
	for i, e := range c.sustained {
		if e.Name == name {
			c.sustained = append(c.sustained[:i], c.sustained[i+1:]...)
			return nil
		}
	}
	return ErrUnknownEffect
}

func (c *Combatant) hasEffect(name string) bool {
	for _, e := range c.sustained {
		if e.Name == name {
			return true
		}
	}
	return false
}

// ageEffects counts one combat turn off every timed effect and drops the
// expired ones.
func (c *Combatant) ageEffects() {
	kept := c.sustained[:0]
	for _, e := range c.sustained {
		if e.Remaining > 0 {
			e.Remaining--
			if e.Remaining == 0 {
				continue
			}
		}
		kept = append(kept, e)
	}
	c.sustained = kept
}

// Restore reapplies persisted damage to a fresh combatant.
func (c *Combatant) Restore(stun, physical int) {
	c.ApplyStun(stun)
	c.ApplyPhysical(physical)
}
