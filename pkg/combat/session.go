package combat

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jwebster45206/combat-engine/pkg/dice"
)

// AtEnd appends a queued action.
const AtEnd = -1

// Timing holds the commit clock settings of a session.
type Timing struct {
	Interval    time.Duration // between timeout ticks
	BaseTime    time.Duration // commit budget on joining
	CommitBonus time.Duration // added after every resolved phase
	LowTime     time.Duration // warn once the budget drops below this
	ArenaSize   int           // side of the square joiners are placed in
}

func DefaultTiming() Timing {
	return Timing{
		Interval:    6 * time.Second,
		BaseTime:    120 * time.Second,
		CommitBonus: 12 * time.Second,
		LowTime:     24 * time.Second,
		ArenaSize:   40,
	}
}

// Observer is told about scheduler milestones. Calls happen with the session
// lock held.
type Observer interface {
	PhaseResolved(session, combatant string, forced bool)
	Stopped(session string)
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithSink(sink Sink) Option {
	return func(s *Session) { s.sink = sink }
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// participant is everything the session tracks for one combatant. Joining
// and leaving are a single map insert or delete.
type participant struct {
	combatant *Combatant
	info      *Info
	queue     []Action
	committed bool
	remaining time.Duration
	moved     float64
	warned    bool
	notified  bool
	order     float64 // initiative at the start of the pass
}

// Session is one running combat. All methods are safe for concurrent use;
// only one action phase resolves at a time.
type Session struct {
	mu           sync.Mutex
	id           string
	timing       Timing
	dice         *dice.Roller
	log          *slog.Logger
	sink         Sink
	observer     Observer
	participants map[string]*participant
	phase        Phase
	turn         int
	pass         int
}

func NewSession(id string, timing Timing, roller *dice.Roller, opts ...Option) *Session {
	s := &Session{
		id:           id,
		timing:       timing,
		dice:         roller,
		log:          slog.Default(),
		sink:         NopSink{},
		participants: make(map[string]*participant),
		phase:        AwaitingFirstInformations,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", id)
	return s
}

func (s *Session) ID() string { return s.id }

// Join places c at a random point of the arena.
func (s *Session) Join(c *Combatant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := s.timing.ArenaSize + 1
	pos := Vec{X: float64(s.dice.Intn(size)), Y: float64(s.dice.Intn(size))}
	return s.join(c, pos)
}

// JoinAt places c at pos.
func (s *Session) JoinAt(c *Combatant, pos Vec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.join(c, pos)
}

// join resets any previous bookkeeping of c. A combatant joining a running
// combat rolls its initiative right away.
func (s *Session) join(c *Combatant, pos Vec) error {
	if s.phase == Stopped {
		return ErrSessionStopped
	}
	c.Pos = pos
	p := &participant{
		combatant: c,
		info:      NewInfo(c),
		remaining: s.timing.BaseTime,
	}
	if s.phase != AwaitingFirstInformations {
		p.info.NewCombatTurn(s.dice)
		p.order = p.info.Initiative()
	}
	s.participants[c.ID] = p
	s.log.Info("combatant joined", "combatant", c.ID, "pos", pos.String())
	s.notify("", Message{Key: "combat.joined", Actor: c.ID, Args: map[string]any{"x": pos.X, "y": pos.Y}})
	return nil
}

// Leave removes a combatant at once, dropping whatever it had queued. The
// session stops when nobody is left.
func (s *Session) Leave(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCombatant, id)
	}
	s.notify("", Message{Key: "combat.retreat", Actor: id})
	delete(s.participants, id)
	s.log.Info("combatant left", "combatant", id)
	if len(s.participants) == 0 {
		s.stop("empty")
	}
	return nil
}

// QueueAction adds a to the plan of combatant id at position pos (AtEnd or
// out of range appends). It reports false without changing anything when the
// combatant is unknown, has already committed or a would break the action
// economy.
func (s *Session) QueueAction(id string, a Action, pos int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok || p.committed || a == nil {
		return false
	}
	if !Admit(p.queue, a) {
		return false
	}
	if pos < 0 || pos >= len(p.queue) {
		p.queue = append(p.queue, a)
	} else {
		p.queue = slices.Insert(p.queue, pos, a)
	}
	return true
}

// Commit declares the plan of combatant id final and lets the scheduler
// advance right away.
func (s *Session) Commit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Stopped {
		return ErrSessionStopped
	}
	p, ok := s.participants[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCombatant, id)
	}
	p.committed = true
	s.schedule(EventCommit)
	return nil
}

// ClearQueue drops the uncommitted plan of combatant id.
func (s *Session) ClearQueue(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCombatant, id)
	}
	if p.committed {
		return ErrCommitted
	}
	p.queue = nil
	return nil
}

// Planned lists the names of the queued actions of combatant id.
func (s *Session) Planned(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCombatant, id)
	}
	names := make([]string, len(p.queue))
	for i, a := range p.queue {
		names[i] = a.Name()
	}
	return names, nil
}

// Tick advances the scheduler. The external timer sends EventTimeout every
// Timing.Interval.
func (s *Session) Tick(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule(ev)
}

func (s *Session) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == Stopped
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

func (s *Session) Pass() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pass
}

// Len is the number of participants.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants)
}

// RosterEntry is the restorable state of one participant.
type RosterEntry struct {
	ID       string `json:"id"`
	Pos      Vec    `json:"pos"`
	Stun     int    `json:"stun"`
	Physical int    `json:"physical"`
}

// Roster returns the participants sorted by id.
func (s *Session) Roster() []RosterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RosterEntry, 0, len(s.participants))
	for _, id := range s.ids() {
		c := s.participants[id].combatant
		out = append(out, RosterEntry{ID: id, Pos: c.Pos, Stun: c.stun, Physical: c.physical})
	}
	return out
}

func (s *Session) ids() []string {
	ids := make([]string, 0, len(s.participants))
	for id := range s.participants {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Session) notify(to string, msg Message) {
	s.sink.Notify(Notice{Session: s.id, To: to, Message: msg})
}
