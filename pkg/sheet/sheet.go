// Package sheet holds the static character data a combatant is built from:
// attributes, skills, armor and friend/foe groups.
package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/d20"
)

const (
	defaultArmor          = 12
	defaultInitiativeDice = 1
	maxInitiativeDice     = 5
	specializationBonus   = 2
)

// ErrCannotDefault is returned when a zero-rated skill may not be defaulted.
var ErrCannotDefault = errors.New("skill cannot be defaulted")

// Spec is the serializable form of a character sheet.
type Spec struct {
	ID              string              `json:"id"`
	Name            string              `json:"name,omitempty"`
	Attributes      map[string]int      `json:"attributes,omitempty"`
	Skills          map[string]int      `json:"skills,omitempty"`
	SkillGroups     map[string]int      `json:"skill_groups,omitempty"`
	Specializations map[string][]string `json:"specializations,omitempty"`
	Armor           *int                `json:"armor,omitempty"`
	InitiativeDice  int                 `json:"initiative_dice,omitempty"`
	Groups          []string            `json:"groups,omitempty"`
	CombatModifiers map[string]int      `json:"combat_modifiers,omitempty"` // situational boni keyed by target
}

// Sheet is the runtime form of a Spec with every name resolved.
type Sheet struct {
	Spec  *Spec
	Actor *d20.Actor

	attributes      [numAttributes]int
	skills          [numSkills]int
	specializations [numSkills][]string
	groups          map[string]int
}

// NewSheetFromSpec validates spec and builds its Sheet. Unknown attribute or
// skill names fail with a *LookupError.
func NewSheetFromSpec(spec *Spec) (*Sheet, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}
	if spec.ID == "" {
		return nil, fmt.Errorf("spec id is required")
	}

	attrs := make(map[string]int, numAttributes)
	for _, a := range Attributes() {
		attrs[a.String()] = defaultAttributes[a]
	}
	for name, v := range spec.Attributes {
		a, err := ParseAttribute(name)
		if err != nil {
			return nil, err
		}
		attrs[a.String()] = v
	}

	s := &Sheet{Spec: spec, groups: make(map[string]int)}
	for name, rating := range spec.Skills {
		sk, err := ParseSkill(name)
		if err != nil {
			return nil, err
		}
		s.skills[sk] = rating
	}
	for name, specs := range spec.Specializations {
		sk, err := ParseSkill(name)
		if err != nil {
			return nil, err
		}
		s.specializations[sk] = specs
	}
	for group, rating := range spec.SkillGroups {
		s.groups[normalize(group)] = rating
	}

	actor, err := d20.NewActor(spec.ID).
		WithHP(conditionMax(attrs[Body.String()])).
		WithAC(max(0, s.armorFrom(spec))).
		WithAttributes(attrs).
		WithCombatModifiers(spec.CombatModifiers).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}
	for _, a := range Attributes() {
		v, ok := actor.Attribute(a.String())
		if !ok {
			v = defaultAttributes[a]
		}
		s.attributes[a] = v
	}
	s.Actor = actor
	return s, nil
}

// LoadSpec reads a JSON sheet spec. The file name without extension is the id.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet file: %w", err)
	}
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet spec: %w", err)
	}
	spec.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	return &spec, nil
}

func (s *Sheet) armorFrom(spec *Spec) int {
	if spec.Armor == nil {
		return defaultArmor
	}
	return *spec.Armor
}

func (s *Sheet) ID() string { return s.Spec.ID }

// Name falls back to the id when the spec has no display name.
func (s *Sheet) Name() string {
	if s.Spec.Name != "" {
		return s.Spec.Name
	}
	return s.Spec.ID
}

func (s *Sheet) Attribute(a Attribute) int {
	if a < 0 || a >= numAttributes {
		return 0
	}
	return s.attributes[a]
}

// Rating is the trained rating of a skill, 0 when untrained.
func (s *Sheet) Rating(sk Skill) int {
	if sk < 0 || sk >= numSkills {
		return 0
	}
	return s.skills[sk]
}

// Armor may be zero or negative; callers treat anything below 1 as no armor.
func (s *Sheet) Armor() int {
	return s.armorFrom(s.Spec)
}

func (s *Sheet) InitiativeDice() int {
	n := s.Spec.InitiativeDice
	if n == 0 {
		n = defaultInitiativeDice
	}
	return min(maxInitiativeDice, max(1, n))
}

func (s *Sheet) Groups() []string {
	return s.Spec.Groups
}

// CombatModifiers returns the situational modifiers registered on the actor.
func (s *Sheet) CombatModifiers() map[string]int {
	out := make(map[string]int)
	for _, mod := range s.Actor.GetCombatModifiers() {
		out[mod.Reason] = mod.Value
	}
	return out
}

// DicePool returns attribute + skill rating for a test of sk. A trained skill
// group replaces the rating (and forbids specializations). An untrained skill
// defaults to attribute - 1 when allowed and fails with ErrCannotDefault
// otherwise.
func (s *Sheet) DicePool(sk Skill, specialization string) (int, error) {
	if sk < 0 || sk >= numSkills {
		return 0, &LookupError{Name: fmt.Sprint(int(sk)), Err: ErrUnknownSkill}
	}
	info := skillTable[sk]
	pool := s.Attribute(info.Attribute)
	if info.Group != "" && s.groups[info.Group] > 0 {
		return pool + s.groups[info.Group], nil
	}
	rating := s.skills[sk]
	if rating == 0 {
		if info.Defaultable {
			return pool - 1, nil
		}
		return 0, fmt.Errorf("%w: %s", ErrCannotDefault, info.Name)
	}
	pool += rating
	if specialization != "" {
		for _, sp := range s.specializations[sk] {
			if strings.EqualFold(sp, specialization) {
				pool += specializationBonus
				break
			}
		}
	}
	return pool, nil
}

// DicePoolByName resolves name and returns its dice pool.
func (s *Sheet) DicePoolByName(name, specialization string) (int, error) {
	sk, err := ParseSkill(name)
	if err != nil {
		return 0, err
	}
	return s.DicePool(sk, specialization)
}

func (s *Sheet) LimitPhysical() int {
	return ceilThird(2*s.Attribute(Strength) + s.Attribute(Body) + s.Attribute(Reaction))
}

func (s *Sheet) LimitMental() int {
	return ceilThird(2*s.Attribute(Logic) + s.Attribute(Intuition) + s.Attribute(Willpower))
}

func (s *Sheet) LimitSocial() int {
	return ceilThird(2*s.Attribute(Charisma) + s.Attribute(Willpower) + s.Attribute(Essence))
}

// PhysicalMax is the size of the physical condition monitor.
func (s *Sheet) PhysicalMax() int {
	return conditionMax(s.Attribute(Body))
}

// StunMax is the size of the stun condition monitor.
func (s *Sheet) StunMax() int {
	return conditionMax(s.Attribute(Willpower))
}

func conditionMax(attr int) int {
	return 8 + (attr+1)/2
}

func ceilThird(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + 2) / 3
}
