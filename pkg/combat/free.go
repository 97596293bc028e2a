package combat

// DropEffect ends one of the actor's sustained effects.
type DropEffect struct {
	Effect string
}

func (DropEffect) Kind() Kind   { return FreeAction }
func (DropEffect) Name() string { return "drop" }

func (d DropEffect) Resolve(ctx *Context) (Outcome, error) {
	if err := ctx.Actor.DropSustained(d.Effect); err != nil {
		return Outcome{}, err
	}
	out := newOutcome(d, ctx)
	out.Effect = d.Effect
	return out, nil
}

func (DropEffect) Describe(o Outcome) Message {
	return Message{Key: "effect.dropped", Actor: o.Actor, Args: map[string]any{"effect": o.Effect}}
}

// Defensive puts the actor into full defense for the rest of the turn.
type Defensive struct{}

func (Defensive) Kind() Kind   { return FreeAction }
func (Defensive) Name() string { return "full_defense" }

func (d Defensive) Resolve(ctx *Context) (Outcome, error) {
	if err := ctx.Actor.GoFullDefense(); err != nil {
		return Outcome{}, err
	}
	return newOutcome(d, ctx), nil
}

func (Defensive) Describe(o Outcome) Message {
	return Message{Key: "defense.full", Actor: o.Actor}
}
