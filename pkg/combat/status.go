package combat

import "strings"

// Condition is the consciousness tier of a combatant. Exactly one holds at a
// time and within a combat it only ever gets worse.
type Condition int

const (
	Conscious Condition = iota
	Unconscious
	Dying
	Dead
)

func (c Condition) String() string {
	switch c {
	case Conscious:
		return "CONSCIOUS"
	case Unconscious:
		return "UNCONSCIOUS"
	case Dying:
		return "DYING"
	case Dead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Flag is a combat-scoped status marker.
type Flag uint16

const (
	Running Flag = 1 << iota
	Sprinting
	FullDefense
	ActionPhaseDone
	FreeActionDone
	SimpleActionDone
	SecondSimpleActionDone
	ComplexActionDone
	AttackDone
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Running, "RUNNING"},
	{Sprinting, "SPRINTING"},
	{FullDefense, "FULL_DEFENSE"},
	{ActionPhaseDone, "ACTION_PHASE_DONE"},
	{FreeActionDone, "FREE_ACTION_DONE"},
	{SimpleActionDone, "SIMPLE_ACTION_DONE"},
	{SecondSimpleActionDone, "SIMPLE_ACTION_DONE_2"},
	{ComplexActionDone, "COMPLEX_ACTION_DONE"},
	{AttackDone, "ATTACK_DONE"},
}

// passFlags are cleared at the end of every initiative pass.
const passFlags = ActionPhaseDone | FreeActionDone | SimpleActionDone | SecondSimpleActionDone | ComplexActionDone

// Flags is a set of Flag values.
type Flags uint16

func (f Flags) Has(flag Flag) bool { return uint16(f)&uint16(flag) != 0 }

func (f *Flags) Set(flag Flag) { *f |= Flags(flag) }

func (f *Flags) Clear(flag Flag) { *f &^= Flags(flag) }

// Names lists the set flags in declaration order.
func (f Flags) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			out = append(out, fn.name)
		}
	}
	return out
}

func (f Flags) String() string {
	return strings.Join(f.Names(), " ")
}

func (fl Flag) String() string {
	for _, fn := range flagNames {
		if fn.flag == fl {
			return fn.name
		}
	}
	return "UNKNOWN"
}
