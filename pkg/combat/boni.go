package combat

// Bonus targets that are not skills or weapon categories.
const (
	TargetInitiative = "initiative"
	TargetDefense    = "defense"
	TargetSprint     = "sprint"
)

const maxSituationalBonus = 4

// Bonus is one situational modifier.
type Bonus struct {
	Target string
	Value  int
	Kind   string
	Source string
}

// Boni collects situational modifiers. Boni of the same kind on one target do
// not stack (the best counts); different kinds add up, capped at +4.
type Boni struct {
	entries []Bonus
}

func (b *Boni) Add(target string, value int, kind, source string) {
	b.entries = append(b.entries, Bonus{Target: target, Value: value, Kind: kind, Source: source})
}

// Remove drops every bonus registered by source.
func (b *Boni) Remove(source string) {
	kept := b.entries[:0]
	for _, e := range b.entries {
		if e.Source != source {
			kept = append(kept, e)
		}
	}
	b.entries = kept
}

func (b *Boni) Get(target string) int {
	best := make(map[string]int)
	for _, e := range b.entries {
		if e.Target != target {
			continue
		}
		if v, ok := best[e.Kind]; !ok || e.Value > v {
			best[e.Kind] = e.Value
		}
	}
	total := 0
	for _, v := range best {
		total += v
	}
	return min(maxSituationalBonus, total)
}

func (b *Boni) Len() int {
	return len(b.entries)
}
