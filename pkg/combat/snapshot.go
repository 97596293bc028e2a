package combat

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

// Snapshot is the summary line of one combatant.
type Snapshot struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Initiative  float64       `json:"initiative"`
	PhaseDone   bool          `json:"phase_done"`
	Stun        int           `json:"stun"`
	StunMax     int           `json:"stun_max"`
	Physical    int           `json:"physical"`
	PhysicalMax int           `json:"physical_max"`
	Pos         Vec           `json:"pos"`
	Remaining   time.Duration `json:"remaining"`
	Condition   string        `json:"condition"`
	Flags       []string      `json:"flags"`
	Committed   bool          `json:"committed"`
	Planned     int           `json:"planned"`
}

// Detail is the full status of one combatant.
type Detail struct {
	Snapshot
	InitiativeBonus int            `json:"initiative_bonus"`
	Attributes      map[string]int `json:"attributes"`
	Skills          map[string]int `json:"skills"`
	Armor           int            `json:"armor"`
	LimitPhysical   int            `json:"limit_physical"`
	LimitMental     int            `json:"limit_mental"`
	LimitSocial     int            `json:"limit_social"`
	Groups          []string       `json:"groups,omitempty"`
	Sustained       []Effect       `json:"sustained,omitempty"`
	Moved           float64        `json:"moved"`
}

// Summary lists every combatant by descending initiative, ties by id. It does
// not change the session.
func (s *Session) Summary() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Snapshot, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, p.snapshot())
	}
	slices.SortFunc(out, func(a, b Snapshot) int {
		switch {
		case a.Initiative > b.Initiative:
			return -1
		case a.Initiative < b.Initiative:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
	return out
}

// Detail returns the full status of combatant id.
func (s *Session) Detail(id string) (Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return Detail{}, fmt.Errorf("%w: %s", ErrUnknownCombatant, id)
	}
	c := p.combatant
	sh := c.Sheet
	d := Detail{
		Snapshot:        p.snapshot(),
		InitiativeBonus: p.info.Bonus(TargetInitiative),
		Attributes:      make(map[string]int),
		Skills:          make(map[string]int),
		Armor:           sh.Armor(),
		LimitPhysical:   sh.LimitPhysical(),
		LimitMental:     sh.LimitMental(),
		LimitSocial:     sh.LimitSocial(),
		Groups:          sh.Groups(),
		Sustained:       c.Sustained(),
		Moved:           p.moved,
	}
	for _, a := range sheet.Attributes() {
		d.Attributes[a.String()] = sh.Attribute(a)
	}
	for _, sk := range sheet.Skills() {
		if r := sh.Rating(sk); r > 0 || sk == sheet.UnarmedCombat || sk == sheet.Running {
			d.Skills[sk.String()] = r
		}
	}
	return d, nil
}

func (p *participant) snapshot() Snapshot {
	c := p.combatant
	return Snapshot{
		ID:          c.ID,
		Name:        c.Name,
		Initiative:  p.info.Initiative(),
		PhaseDone:   p.info.Has(ActionPhaseDone),
		Stun:        c.stun,
		StunMax:     c.StunMax(),
		Physical:    c.physical,
		PhysicalMax: c.PhysicalMax(),
		Pos:         c.Pos,
		Remaining:   p.remaining,
		Condition:   c.condition.String(),
		Flags:       p.info.Flags().Names(),
		Committed:   p.committed,
		Planned:     len(p.queue),
	}
}
