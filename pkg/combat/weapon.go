package combat

import "github.com/jwebster45206/combat-engine/pkg/sheet"

// RangeBand is a weapon range category.
type RangeBand int

const (
	Short RangeBand = iota
	Medium
	Long
	Extreme
	OutOfRange
)

func (b RangeBand) String() string {
	switch b {
	case Short:
		return "SHORT"
	case Medium:
		return "MEDIUM"
	case Long:
		return "LONG"
	case Extreme:
		return "EXTREME"
	default:
		return "OUT_OF_RANGE"
	}
}

// Penalty is the attack pool modifier of the band.
func (b RangeBand) Penalty() int {
	switch b {
	case Short:
		return 0
	case Medium:
		return -1
	case Long:
		return -3
	case Extreme:
		return -6
	default:
		return 0
	}
}

// Ammunition modifies the weapon it is loaded into. An empty Type keeps the
// weapon's damage type.
type Ammunition struct {
	Name          string     `json:"name"`
	DamageValue   int        `json:"damage_value,omitempty"`
	ArmorPiercing int        `json:"armor_piercing,omitempty"`
	Type          DamageType `json:"type,omitempty"`
}

// StandardAmmunition changes nothing.
func StandardAmmunition() Ammunition {
	return Ammunition{Name: "standard ammunition"}
}

// Weapon is a ranged weapon.
type Weapon struct {
	Name       string
	Category   string // bonus target, e.g. "heavy_pistol"
	Skill      sheet.Skill
	Accuracy   int
	Damage     int
	Type       DamageType
	AP         int
	Bands      [4]float64 // upper edges of short, medium, long and extreme
	Ammunition Ammunition
}

// HeavyPistol returns an Ares Predator style heavy pistol.
func HeavyPistol(name string) *Weapon {
	if name == "" {
		name = "heavy pistol"
	}
	return &Weapon{
		Name:       name,
		Category:   "heavy_pistol",
		Skill:      sheet.Pistols,
		Accuracy:   5,
		Damage:     8,
		Type:       Physical,
		AP:         -1,
		Bands:      [4]float64{5.5, 20.5, 40.5, 60.5},
		Ammunition: StandardAmmunition(),
	}
}

func (w *Weapon) DamageValue() int {
	return w.Damage + w.Ammunition.DamageValue
}

func (w *Weapon) DamageType() DamageType {
	if w.Ammunition.Type != "" {
		return w.Ammunition.Type
	}
	return w.Type
}

func (w *Weapon) ArmorPiercing() int {
	return w.AP + w.Ammunition.ArmorPiercing
}

// Band classifies a shooting distance.
func (w *Weapon) Band(distance float64) RangeBand {
	for i, edge := range w.Bands {
		if distance <= edge {
			return RangeBand(i)
		}
	}
	return OutOfRange
}
