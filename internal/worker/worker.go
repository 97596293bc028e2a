// Package worker applies queued player intents to the arena.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/combat-engine/internal/arena"
	"github.com/jwebster45206/combat-engine/internal/logger"
	"github.com/jwebster45206/combat-engine/pkg/combat"
	"github.com/jwebster45206/combat-engine/pkg/queue"
	"github.com/redis/go-redis/v9"
)

const (
	workerTimeout = 5 * time.Second
	lockTTL       = 30 * time.Second
)

// ErrRejected is reported when the action economy refuses a queued action.
var ErrRejected = errors.New("action rejected")

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// IntentSource is the queue the worker drains.
type IntentSource interface {
	BlockingDequeue(ctx context.Context, timeout time.Duration) (*queue.Intent, error)
	Enqueue(ctx context.Context, intent *queue.Intent) error
}

// Publisher tells requesters how their intents went.
type Publisher interface {
	PublishSessionStarted(ctx context.Context, sessionID, requestID string) error
	PublishRequestFailed(ctx context.Context, sessionID, requestID, errorMsg string) error
}

// Worker processes intents from the queue
type Worker struct {
	id          string
	intents     IntentSource
	manager     *arena.Manager
	publisher   Publisher
	redisClient *redis.Client
	log         *slog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

func New(intents IntentSource, manager *arena.Manager, publisher Publisher, redisClient *redis.Client, log *slog.Logger, workerID string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if workerID == "" {
		workerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}

	return &Worker{
		id:          workerID,
		intents:     intents,
		manager:     manager,
		publisher:   publisher,
		redisClient: redisClient,
		log:         log.With("worker_id", workerID),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *Worker) ID() string { return w.id }

// Start processes intents until Stop is called.
func (w *Worker) Start() error {
	w.log.Info("Worker starting")

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info("Worker shutting down")
			return nil
		default:
			if err := w.processNextIntent(); err != nil {
				w.log.Error("Error processing intent", "error", err)
				// Continue processing even on error
				time.Sleep(1 * time.Second)
			}
		}
	}
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.log.Info("Worker stop requested")
	w.cancel()
}

// processNextIntent pulls the next intent and applies it. Only queue and
// lock failures are returned; a rejected intent is reported to its sender.
func (w *Worker) processNextIntent() error {
	intent, err := w.intents.BlockingDequeue(w.ctx, workerTimeout)
	if err != nil {
		return fmt.Errorf("failed to dequeue intent: %w", err)
	}
	if intent == nil {
		return nil
	}

	if intent.Type == queue.IntentInitiate && intent.SessionID == uuid.Nil {
		intent.SessionID = uuid.New()
	}
	log := logger.WithRequestID(logger.WithSession(w.log, intent.SessionID.String()), intent.RequestID).
		With("type", intent.Type)
	log.Info("Received intent from queue")

	locked, err := w.acquireSessionLock(intent.SessionID)
	if err != nil {
		return fmt.Errorf("failed to acquire session lock: %w", err)
	}
	if !locked {
		// Another worker is applying an intent to this session
		log.Info("Session locked, re-queueing intent")
		if err := w.intents.Enqueue(w.ctx, intent); err != nil {
			return fmt.Errorf("failed to re-queue intent: %w", err)
		}
		return nil
	}
	defer w.releaseSessionLock(intent.SessionID)

	start := time.Now()
	if err := w.apply(intent); err != nil {
		logger.WithError(log, err).Warn("Intent failed")
		if pubErr := w.publisher.PublishRequestFailed(w.ctx, intent.SessionID.String(), intent.RequestID, err.Error()); pubErr != nil {
			log.Error("Failed to publish failure event", "error", pubErr)
		}
		return nil
	}
	log.Info("Intent applied", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *Worker) apply(intent *queue.Intent) error {
	ctx := w.ctx
	id := intent.SessionID

	switch intent.Type {
	case queue.IntentInitiate:
		if _, err := w.manager.Initiate(ctx, id, intent.Participants); err != nil {
			return err
		}
		if err := w.publisher.PublishSessionStarted(ctx, id.String(), intent.RequestID); err != nil {
			w.log.Error("Failed to publish session start", "error", err)
		}
		return nil
	case queue.IntentJoin:
		return w.manager.Join(ctx, id, intent.CombatantID)
	case queue.IntentLeave:
		return w.manager.Leave(ctx, id, intent.CombatantID)
	case queue.IntentQueue:
		if intent.Action == nil {
			return errors.New("queue intent has no action")
		}
		pos := combat.AtEnd
		if intent.Position != nil {
			pos = *intent.Position
		}
		ok, err := w.manager.QueueAction(ctx, id, intent.CombatantID, *intent.Action, pos)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrRejected, intent.Action.Name)
		}
		return nil
	case queue.IntentCommit:
		return w.manager.Commit(ctx, id, intent.CombatantID)
	case queue.IntentClear:
		return w.manager.ClearQueue(ctx, id, intent.CombatantID)
	default:
		return fmt.Errorf("unknown intent type: %s", intent.Type)
	}
}

func lockKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("combat-lock:%s", sessionID.String())
}

// acquireSessionLock reports false when another worker holds the lock.
func (w *Worker) acquireSessionLock(sessionID uuid.UUID) (bool, error) {
	return w.redisClient.SetNX(w.ctx, lockKey(sessionID), w.id, lockTTL).Result()
}

// releaseSessionLock deletes the lock only if this worker still owns it.
func (w *Worker) releaseSessionLock(sessionID uuid.UUID) {
	if err := releaseScript.Run(context.Background(), w.redisClient, []string{lockKey(sessionID)}, w.id).Err(); err != nil {
		w.log.Error("Failed to release session lock", "error", err, "session", sessionID.String())
	}
}
