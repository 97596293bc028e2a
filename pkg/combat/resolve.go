package combat

// Resolve runs a committed queue for ctx.Actor. A sprint takes the whole phase:
// it resolves alone and the rest of the queue is dropped. Otherwise a queue
// whose moves add up to more than the walking distance makes the actor run
// before anything resolves, and the actions run in queue order.
//
// An action that fails has no effect; its error is logged, returned on its
// Outcome and reported to the actor, and the remaining actions still run.
func Resolve(ctx *Context, queue []Action) []Outcome {
	for _, a := range queue {
		if _, ok := a.(Sprint); ok {
			return []Outcome{resolveOne(ctx, a)}
		}
	}

	info := ctx.Actor
	path := 0.0
	from := info.c.Pos
	for _, a := range queue {
		if m, ok := a.(Move); ok {
			path += from.Dist(m.To)
			from = m.To
		}
	}
	if path > info.WalkMax() && !info.Has(Running) && !info.Has(Sprinting) {
		info.set(Running)
	}

	outcomes := make([]Outcome, 0, len(queue))
	for _, a := range queue {
		outcomes = append(outcomes, resolveOne(ctx, a))
	}
	return outcomes
}

func resolveOne(ctx *Context, a Action) Outcome {
	out, err := a.Resolve(ctx)
	if err == nil {
		ctx.notify("", a.Describe(out))
		return out
	}

	actor := ctx.Actor.c.ID
	log := ctx.logger().With("session", ctx.Session, "combatant", actor, "action", a.Name())
	if IsRuleViolation(err) {
		log.Warn("action rejected", "error", err)
	} else {
		log.Error("action failed", "error", err)
	}
	ctx.notify(actor, Message{
		Key:   "action.rejected",
		Actor: actor,
		Args:  map[string]any{"action": a.Name(), "error": err.Error()},
	})
	return Outcome{Action: a.Name(), Kind: a.Kind(), Actor: actor, Err: err}
}
