package combat

import "time"

// maxRollovers bounds the turn rollovers of one scheduling call, for combats
// where every initiative keeps rolling below 1.
const maxRollovers = 4

// Event is what drives one scheduling step.
type Event int

const (
	// EventTimeout is the plain interval tick. Only it spends commit time.
	EventTimeout Event = iota
	EventStart
	EventContinue
	EventCommit
)

func (e Event) String() string {
	switch e {
	case EventTimeout:
		return "timeout"
	case EventStart:
		return "start"
	case EventContinue:
		return "continue"
	case EventCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// Phase is the scheduler state.
type Phase int

const (
	AwaitingFirstInformations Phase = iota
	TurnStart
	PassStart
	Acting
	PassEnd
	TurnEnd
	Stopped
)

func (p Phase) String() string {
	switch p {
	case AwaitingFirstInformations:
		return "AWAITING_FIRST_INFORMATIONS"
	case TurnStart:
		return "TURN_START"
	case PassStart:
		return "PASS_START"
	case Acting:
		return "ACTING"
	case PassEnd:
		return "PASS_END"
	case TurnEnd:
		return "TURN_END"
	case Stopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// schedule advances the combat as far as it can without player input. It
// returns when the acting combatant has to be waited for or the combat stops.
func (s *Session) schedule(ev Event) {
	switch s.phase {
	case Stopped:
		return
	case AwaitingFirstInformations:
		if len(s.participants) == 0 {
			return
		}
		s.newTurn()
		s.newPass()
		ev = EventStart
	}

	rollovers := 0
	for {
		if len(s.participants) == 0 {
			s.stop("empty")
			return
		}
		if s.allIncapacitated() {
			s.stop("incapacitated")
			return
		}
		if !s.opposingSides() {
			s.stop("no opposing sides")
			return
		}

		p := s.next()
		if p.info.Initiative() < 1 {
			if rollovers == maxRollovers {
				s.log.Warn("initiative keeps rolling below 1", "turn", s.turn)
				return
			}
			rollovers++
			s.endPass()
			s.endTurn()
			s.newTurn()
			s.newPass()
			ev = EventStart
			continue
		}
		if p.info.Has(ActionPhaseDone) || p.combatant.Incapacitated() {
			s.endPass()
			s.newPass()
			ev = EventStart
			continue
		}

		s.phase = Acting
		id := p.combatant.ID
		if ev == EventTimeout && !p.committed && p.remaining > 0 {
			p.remaining -= s.timing.Interval
			if p.remaining < s.timing.LowTime && !p.warned {
				p.warned = true
				s.notify(id, Message{Key: "turn.low_time", Actor: id, Args: map[string]any{"remaining": seconds(p.remaining)}})
			}
			return
		}
		if ev != EventTimeout && !p.notified {
			p.notified = true
			s.notify(id, Message{Key: "turn.yours", Actor: id, Args: map[string]any{"remaining": seconds(p.remaining)}})
		}

		forced := !p.committed
		if forced && ev != EventTimeout {
			return
		}
		overdrawn := p.remaining < 0
		if overdrawn {
			p.remaining = 0
		}
		if forced || overdrawn {
			s.log.Info("forcing action phase", "combatant", id, "queued", len(p.queue), "committed", p.committed)
			s.notify(id, Message{Key: "turn.forced", Actor: id})
		}
		s.resolve(p, forced)
		ev = EventContinue
	}
}

func (s *Session) resolve(p *participant, forced bool) {
	p.info.NewActionPhase()
	ctx := &Context{
		Session: s.id,
		Dice:    s.dice,
		Actor:   p.info,
		Targets: make(map[string]*Info, len(s.participants)),
		Moved:   p.moved,
		Logger:  s.log,
		Sink:    s.sink,
	}
	for id, other := range s.participants {
		ctx.Targets[id] = other.info
	}
	Resolve(ctx, p.queue)
	p.moved = ctx.Moved
	p.info.EndActionPhase()

	p.remaining += s.timing.CommitBonus
	p.queue = nil
	p.committed = false
	p.warned = false
	p.notified = false
	if s.observer != nil {
		s.observer.PhaseResolved(s.id, p.combatant.ID, forced)
	}
}

// next picks the able combatant first in the pass order that has not acted
// this pass. The order is fixed when the pass starts, so damage taken during
// the pass never moves a combatant down. When there is none it returns the highest live initiative
// overall so the caller can end the pass or turn.
func (s *Session) next() *participant {
	var best, fallback *participant
	for _, id := range s.ids() {
		p := s.participants[id]
		if fallback == nil || p.info.Initiative() > fallback.info.Initiative() {
			fallback = p
		}
		if p.info.Has(ActionPhaseDone) || p.combatant.Incapacitated() {
			continue
		}
		if best == nil || p.order > best.order {
			best = p
		}
	}
	if best != nil {
		return best
	}
	return fallback
}

func (s *Session) allIncapacitated() bool {
	for _, p := range s.participants {
		if !p.combatant.Incapacitated() {
			return false
		}
	}
	return true
}

// opposingSides reports whether two able combatants are still enemies.
func (s *Session) opposingSides() bool {
	var able []*Combatant
	for _, id := range s.ids() {
		if c := s.participants[id].combatant; !c.Incapacitated() {
			able = append(able, c)
		}
	}
	for i, a := range able {
		for _, b := range able[i+1:] {
			if a.Opposes(b) {
				return true
			}
		}
	}
	return false
}

func (s *Session) newTurn() {
	s.phase = TurnStart
	s.turn++
	s.pass = 0
	for _, id := range s.ids() {
		p := s.participants[id]
		p.info.NewCombatTurn(s.dice)
		p.moved = 0
	}
	s.log.Debug("combat turn begins", "turn", s.turn)
	s.notify("", Message{Key: "turn.start", Args: map[string]any{"turn": s.turn}})
}

func (s *Session) endTurn() {
	s.phase = TurnEnd
	for _, p := range s.participants {
		p.info.EndCombatTurn()
	}
}

func (s *Session) newPass() {
	s.phase = PassStart
	s.pass++
	for _, p := range s.participants {
		p.info.NewInitiativePass()
		p.order = p.info.Initiative()
	}
	s.log.Debug("initiative pass begins", "turn", s.turn, "pass", s.pass)
	s.notify("", Message{Key: "pass.start", Args: map[string]any{"turn": s.turn, "pass": s.pass}})
}

func (s *Session) endPass() {
	s.phase = PassEnd
	for _, p := range s.participants {
		p.info.EndInitiativePass()
	}
}

// stop ends the combat and releases every participant.
func (s *Session) stop(reason string) {
	if s.phase == Stopped {
		return
	}
	s.phase = Stopped
	s.log.Info("combat stopped", "reason", reason, "turn", s.turn)
	s.notify("", Message{Key: "combat.stopped", Args: map[string]any{"reason": reason}})
	clear(s.participants)
	if s.observer != nil {
		s.observer.Stopped(s.id)
	}
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
