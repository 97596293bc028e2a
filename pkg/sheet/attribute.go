package sheet

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownAttribute is returned for attribute names outside the fixed set.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrUnknownSkill is returned for skill names outside the skill table.
	ErrUnknownSkill = errors.New("unknown skill")
)

// LookupError reports a name that does not map to a known attribute or skill.
type LookupError struct {
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Attribute is one of the fixed character attributes.
type Attribute int

const (
	Body Attribute = iota
	Agility
	Reaction
	Strength
	Willpower
	Logic
	Intuition
	Charisma
	Edge
	Essence
	Magic
	Resonance
	WalkRate
	RunRate
	SprintIncrease

	numAttributes
)

var attributeNames = [numAttributes]string{
	Body:           "body",
	Agility:        "agility",
	Reaction:       "reaction",
	Strength:       "strength",
	Willpower:      "willpower",
	Logic:          "logic",
	Intuition:      "intuition",
	Charisma:       "charisma",
	Edge:           "edge",
	Essence:        "essence",
	Magic:          "magic",
	Resonance:      "resonance",
	WalkRate:       "walk_rate",
	RunRate:        "run_rate",
	SprintIncrease: "sprint_increase",
}

// defaultAttributes is what an empty spec starts from.
var defaultAttributes = [numAttributes]int{
	Body: 3, Agility: 3, Reaction: 3, Strength: 3, Willpower: 3,
	Logic: 3, Intuition: 3, Charisma: 3,
	Edge:           1,
	Essence:        6,
	Magic:          0,
	Resonance:      0,
	WalkRate:       2,
	RunRate:        4,
	SprintIncrease: 1,
}

func (a Attribute) String() string {
	if a < 0 || a >= numAttributes {
		return "unknown"
	}
	return attributeNames[a]
}

// Attributes lists every attribute in table order.
func Attributes() []Attribute {
	out := make([]Attribute, numAttributes)
	for i := range out {
		out[i] = Attribute(i)
	}
	return out
}

// ParseAttribute maps a name such as "Body" or "walk rate" to its Attribute.
func ParseAttribute(name string) (Attribute, error) {
	key := normalize(name)
	for i, n := range attributeNames {
		if n == key {
			return Attribute(i), nil
		}
	}
	return 0, &LookupError{Name: name, Err: ErrUnknownAttribute}
}

// normalize folds case and turns spaces and dashes into underscores.
func normalize(name string) string {
	s := cases.Lower(language.Und).String(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
