package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	rosterPrefix = "combat-roster:"
	rosterSet    = "combat-rosters"
	rosterTTL    = 24 * time.Hour
)

func rosterKey(id uuid.UUID) string {
	return rosterPrefix + id.String()
}

func (r *RedisStorage) SaveRoster(ctx context.Context, roster *Roster) error {
	if roster == nil {
		return errors.New("roster cannot be nil")
	}
	roster.UpdatedAt = time.Now()

	data, err := json.Marshal(roster)
	if err != nil {
		r.logger.Error("Failed to marshal roster", "session", roster.SessionID, "error", err)
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, rosterKey(roster.SessionID), data, rosterTTL)
	pipe.SAdd(ctx, rosterSet, roster.SessionID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to save roster", "session", roster.SessionID, "error", err)
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadRoster(ctx context.Context, id uuid.UUID) (*Roster, error) {
	data, err := r.client.Get(ctx, rosterKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Roster not found", "session", id)
			return nil, nil
		}
		r.logger.Error("Failed to load roster", "session", id, "error", err)
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	var roster Roster
	if err := json.Unmarshal(data, &roster); err != nil {
		r.logger.Error("Failed to unmarshal roster", "session", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}
	return &roster, nil
}

func (r *RedisStorage) DeleteRoster(ctx context.Context, id uuid.UUID) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, rosterKey(id))
	pipe.SRem(ctx, rosterSet, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to delete roster", "session", id, "error", err)
		return fmt.Errorf("failed to delete roster: %w", err)
	}
	return nil
}

// ListRosters returns the ids of every stored roster. Ids whose roster has
// expired are pruned from the index.
func (r *RedisStorage) ListRosters(ctx context.Context) ([]uuid.UUID, error) {
	members, err := r.client.SMembers(ctx, rosterSet).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			r.logger.Warn("Invalid roster id in index", "id", m, "error", err)
			r.client.SRem(ctx, rosterSet, m)
			continue
		}
		n, err := r.client.Exists(ctx, rosterKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check roster %s: %w", id, err)
		}
		if n == 0 {
			r.logger.Debug("Pruning expired roster", "session", id)
			r.client.SRem(ctx, rosterSet, m)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
