package combat

// Gait is how a combatant covered a distance.
type Gait string

const (
	GaitWalk   Gait = "walk"
	GaitRun    Gait = "run"
	GaitSprint Gait = "sprint"
)

// MoveResult is the outcome of a Move. AtMaximum is set when the combatant
// could not move at all, ToMaximum when it stopped short of the destination.
type MoveResult struct {
	From      Vec     `json:"from"`
	To        Vec     `json:"to"`
	Requested Vec     `json:"requested"`
	Distance  float64 `json:"distance"`
	Gait      Gait    `json:"gait"`
	AtMaximum bool    `json:"at_maximum"`
	ToMaximum bool    `json:"to_maximum"`
}

// Move walks, or runs when needed, toward a destination.
type Move struct {
	To Vec
}

func (Move) Kind() Kind   { return MoveAction }
func (Move) Name() string { return "move" }

// Resolve moves the actor as far toward To as the turn's movement allows. A
// move past the walking distance starts running when the free action is still
// available, otherwise the actor stops at the walking distance. Running stops
// at the movement maximum, partway along the straight line.
func (m Move) Resolve(ctx *Context) (Outcome, error) {
	info := ctx.Actor
	c := info.c
	out := newOutcome(m, ctx)
	res := &MoveResult{From: c.Pos, To: c.Pos, Requested: m.To}
	out.Move = res

	distance := c.Pos.Dist(m.To)
	moved := ctx.Moved
	walkMax := info.WalkMax()
	movementMax := info.MovementMax()

	var travelled float64
	switch {
	case distance == 0:
	case distance+moved <= walkMax:
		res.To = m.To
		travelled = distance
	case !info.Has(Running) && info.Has(FreeActionDone):
		travelled = max(0, walkMax-moved)
		res.To = c.Pos.Lerp(m.To, travelled/distance)
		res.ToMaximum = true
	case moved >= movementMax:
		res.AtMaximum = true
	default:
		if !info.Has(Running) {
			info.set(Running)
			info.set(FreeActionDone)
		}
		left := movementMax - moved
		travelled = distance
		res.To = m.To
		if distance > left {
			travelled = left
			res.To = c.Pos.Lerp(m.To, left/distance)
			res.ToMaximum = true
		}
	}

	c.Pos = res.To
	ctx.Moved += travelled
	res.Distance = travelled
	res.Gait = gaitOf(info)
	return out, nil
}

func (m Move) Describe(o Outcome) Message {
	msg := Message{Key: "move", Actor: o.Actor}
	if o.Move == nil {
		return msg
	}
	switch {
	case o.Move.AtMaximum:
		msg.Key = "move.at_maximum"
	case o.Move.ToMaximum:
		msg.Key = "move.to_maximum"
	}
	msg.Args = map[string]any{
		"gait":     string(o.Move.Gait),
		"x":        o.Move.To.X,
		"y":        o.Move.To.Y,
		"distance": o.Move.Distance,
	}
	return msg
}

func gaitOf(info *Info) Gait {
	switch {
	case info.Has(Sprinting):
		return GaitSprint
	case info.Has(Running):
		return GaitRun
	default:
		return GaitWalk
	}
}
