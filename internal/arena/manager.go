// Package arena keeps the running combat sessions of one process, persists
// their rosters and drives their timers.
package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/combat-engine/internal/storage"
	"github.com/jwebster45206/combat-engine/pkg/combat"
	"github.com/jwebster45206/combat-engine/pkg/dice"
	"github.com/jwebster45206/combat-engine/pkg/queue"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	// ErrNoOpposition is returned when an initiated combat has nobody to fight.
	ErrNoOpposition = errors.New("no opposing combatants")
)

// SummaryPublisher receives the status summary of a session after every
// resolved action phase.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, sessionID string, summary []combat.Snapshot) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithSink routes session notices to sink.
func WithSink(sink combat.Sink) Option {
	return func(m *Manager) { m.sink = sink }
}

func WithPublisher(p SummaryPublisher) Option {
	return func(m *Manager) { m.publisher = p }
}

// WithRollerFactory replaces the crypto-seeded roller every new session gets.
func WithRollerFactory(f func() (*dice.Roller, error)) Option {
	return func(m *Manager) { m.newRoller = f }
}

// Manager owns every session of the process. It implements combat.Observer.
type Manager struct {
	store     storage.Storage
	timing    combat.Timing
	sink      combat.Sink
	publisher SummaryPublisher
	newRoller func() (*dice.Roller, error)
	log       *slog.Logger
	metrics   *metrics

	mu       sync.RWMutex
	sessions map[uuid.UUID]*combat.Session

	// written by observer callbacks, which run under a session lock
	pendingMu sync.Mutex
	resolved  map[string]bool
	stopped   map[string]bool
}

var _ combat.Observer = (*Manager)(nil)

func NewManager(store storage.Storage, timing combat.Timing, logger *slog.Logger, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:     store,
		timing:    timing,
		sink:      combat.NopSink{},
		newRoller: dice.NewRandom,
		log:       logger,
		sessions:  make(map[uuid.UUID]*combat.Session),
		resolved:  make(map[string]bool),
		stopped:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}

	var err error
	m.metrics, err = newMetrics(m.Len)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Len is the number of running sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Session returns the running session id.
func (m *Manager) Session(id uuid.UUID) (*combat.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Initiate starts a combat between the sheets named in participants. A nil
// id picks a fresh one. The first turn starts immediately.
func (m *Manager) Initiate(ctx context.Context, id uuid.UUID, participants []string) (uuid.UUID, error) {
	if len(participants) == 0 {
		return uuid.Nil, errors.New("no participants")
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	combatants := make([]*combat.Combatant, 0, len(participants))
	for _, sheetID := range participants {
		c, err := m.combatant(ctx, sheetID)
		if err != nil {
			return uuid.Nil, err
		}
		combatants = append(combatants, c)
	}

	s, err := m.add(id)
	if err != nil {
		return uuid.Nil, err
	}
	for _, c := range combatants {
		if err := s.Join(c); err != nil {
			m.drop(ctx, id)
			return uuid.Nil, fmt.Errorf("failed to join %s: %w", c.ID, err)
		}
	}
	m.log.Info("Combat initiated", "session", id, "participants", participants)

	s.Tick(combat.EventStart)
	if m.settle(ctx, id, s) {
		return id, ErrNoOpposition
	}
	return id, nil
}

// Join adds the sheet sheetID to a running session.
func (m *Manager) Join(ctx context.Context, id uuid.UUID, sheetID string) error {
	s, err := m.Session(id)
	if err != nil {
		return err
	}
	c, err := m.combatant(ctx, sheetID)
	if err != nil {
		return err
	}
	if err := s.Join(c); err != nil {
		return err
	}
	m.settle(ctx, id, s)
	return nil
}

func (m *Manager) Leave(ctx context.Context, id uuid.UUID, combatantID string) error {
	s, err := m.Session(id)
	if err != nil {
		return err
	}
	if err := s.Leave(combatantID); err != nil {
		return err
	}
	m.settle(ctx, id, s)
	return nil
}

// QueueAction builds the action of spec and queues it at pos (combat.AtEnd
// appends). A false result means the action economy rejected it.
func (m *Manager) QueueAction(ctx context.Context, id uuid.UUID, combatantID string, spec queue.ActionSpec, pos int) (bool, error) {
	s, err := m.Session(id)
	if err != nil {
		return false, err
	}
	a, err := BuildAction(spec)
	if err != nil {
		return false, err
	}
	return s.QueueAction(combatantID, a, pos), nil
}

func (m *Manager) Commit(ctx context.Context, id uuid.UUID, combatantID string) error {
	s, err := m.Session(id)
	if err != nil {
		return err
	}
	if err := s.Commit(combatantID); err != nil {
		return err
	}
	m.settle(ctx, id, s)
	return nil
}

func (m *Manager) ClearQueue(ctx context.Context, id uuid.UUID, combatantID string) error {
	s, err := m.Session(id)
	if err != nil {
		return err
	}
	return s.ClearQueue(combatantID)
}

func (m *Manager) Summary(id uuid.UUID) ([]combat.Snapshot, error) {
	s, err := m.Session(id)
	if err != nil {
		return nil, err
	}
	return s.Summary(), nil
}

func (m *Manager) Detail(id uuid.UUID, combatantID string) (combat.Detail, error) {
	s, err := m.Session(id)
	if err != nil {
		return combat.Detail{}, err
	}
	return s.Detail(combatantID)
}

// Tick delivers one scheduler event to session id.
func (m *Manager) Tick(ctx context.Context, id uuid.UUID, ev combat.Event) error {
	s, err := m.Session(id)
	if err != nil {
		return err
	}
	s.Tick(ev)
	m.metrics.ticks.Add(ctx, 1, sessionAttr(id.String()))
	m.settle(ctx, id, s)
	return nil
}

// TickAll sends a timeout tick to every running session.
func (m *Manager) TickAll(ctx context.Context) {
	m.mu.RLock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		if err := m.Tick(ctx, id, combat.EventTimeout); err != nil && !errors.Is(err, ErrSessionNotFound) {
			m.log.Error("Failed to tick session", "session", id, "error", err)
		}
	}
}

// Run ticks every session at the configured interval until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.timing.Interval)
	defer ticker.Stop()

	m.log.Info("Combat ticker started", "interval", m.timing.Interval)
	for {
		select {
		case <-ctx.Done():
			m.log.Info("Combat ticker stopped")
			return nil
		case <-ticker.C:
			m.TickAll(ctx)
		}
	}
}

// Restore rebuilds the sessions of every persisted roster. Combatants whose
// sheet can no longer be loaded are left out. It returns the number of
// sessions restored.
func (m *Manager) Restore(ctx context.Context) (int, error) {
	ids, err := m.store.ListRosters(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list rosters: %w", err)
	}

	restored := 0
	for _, id := range ids {
		roster, err := m.store.LoadRoster(ctx, id)
		if err != nil {
			m.log.Error("Failed to load roster", "session", id, "error", err)
			continue
		}
		if roster == nil {
			continue
		}

		s, err := m.add(id)
		if err != nil {
			m.log.Warn("Skipping roster", "session", id, "error", err)
			continue
		}
		for _, e := range roster.Entries {
			c, err := m.combatant(ctx, e.ID)
			if err != nil {
				m.log.Warn("Dropping combatant from restored roster", "session", id, "combatant", e.ID, "error", err)
				continue
			}
			c.Restore(e.Stun, e.Physical)
			if err := s.JoinAt(c, e.Pos); err != nil {
				m.log.Warn("Failed to rejoin combatant", "session", id, "combatant", e.ID, "error", err)
			}
		}

		if s.Len() == 0 {
			m.drop(ctx, id)
			continue
		}
		m.log.Info("Session restored", "session", id, "combatants", s.Len(), "turn", roster.Turn)
		restored++
	}
	return restored, nil
}

// PhaseResolved implements combat.Observer.
func (m *Manager) PhaseResolved(session, combatant string, forced bool) {
	ctx := context.Background()
	m.metrics.phases.Add(ctx, 1, sessionAttr(session))
	if forced {
		m.metrics.forced.Add(ctx, 1, sessionAttr(session))
	}

	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.resolved[session] = true
}

// Stopped implements combat.Observer.
func (m *Manager) Stopped(session string) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.stopped[session] = true
}

func (m *Manager) add(id uuid.UUID) (*combat.Session, error) {
	roller, err := m.newRoller()
	if err != nil {
		return nil, fmt.Errorf("failed to create dice roller: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionExists, id)
	}
	s := combat.NewSession(id.String(), m.timing, roller,
		combat.WithLogger(m.log),
		combat.WithSink(m.sink),
		combat.WithObserver(m),
	)
	m.sessions[id] = s
	return s, nil
}

func (m *Manager) combatant(ctx context.Context, sheetID string) (*combat.Combatant, error) {
	spec, err := m.store.GetSheetSpec(ctx, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheet %s: %w", sheetID, err)
	}
	sh, err := sheet.NewSheetFromSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet %s: %w", sheetID, err)
	}
	return combat.NewCombatant(sh), nil
}

// settle persists the roster of s after a change and drops s once it has
// stopped. It reports whether the session was dropped.
func (m *Manager) settle(ctx context.Context, id uuid.UUID, s *combat.Session) bool {
	key := id.String()
	m.pendingMu.Lock()
	resolved := m.resolved[key]
	stopped := m.stopped[key]
	delete(m.resolved, key)
	delete(m.stopped, key)
	m.pendingMu.Unlock()

	if stopped || s.Stopped() {
		m.drop(ctx, id)
		return true
	}

	roster := &storage.Roster{SessionID: id, Turn: s.Turn(), Entries: s.Roster()}
	if err := m.store.SaveRoster(ctx, roster); err != nil {
		m.log.Error("Failed to save roster", "session", id, "error", err)
	}
	if resolved && m.publisher != nil {
		if err := m.publisher.PublishSummary(ctx, key, s.Summary()); err != nil {
			m.log.Error("Failed to publish summary", "session", id, "error", err)
		}
	}
	return false
}

func (m *Manager) drop(ctx context.Context, id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if err := m.store.DeleteRoster(ctx, id); err != nil {
		m.log.Error("Failed to delete roster", "session", id, "error", err)
	}
	m.log.Info("Session closed", "session", id)
}
