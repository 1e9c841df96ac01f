package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
)

const versionKeyPrefix = "blogspace:credentials:"

// VersionCache stores the role and credentials version of recently seen
// users so the authentication gate does not hit Postgres on every request.
type VersionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVersionCache creates a cache whose entries live for ttl.
func NewVersionCache(client *redis.Client, ttl time.Duration) *VersionCache {
	if ttl <= 0 {
		ttl = constants.DefaultVersionTTL
	}
	return &VersionCache{
		client: client,
		ttl:    ttl,
	}
}

func versionKey(userID int64) string {
	return versionKeyPrefix + strconv.FormatInt(userID, 10)
}

// Get returns the cached state. ok is false on a miss.
func (c *VersionCache) Get(ctx context.Context, userID int64) (models.CredentialsState, bool, error) {
	raw, err := c.client.Get(ctx, versionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.CredentialsState{}, false, nil
	}
	if err != nil {
		return models.CredentialsState{}, false, fmt.Errorf("redis get: %w", err)
	}

	var state models.CredentialsState
	if err := json.Unmarshal(raw, &state); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		return models.CredentialsState{}, false, nil
	}

	return state, true, nil
}

// Set stores the state for userID.
func (c *VersionCache) Set(ctx context.Context, userID int64, state models.CredentialsState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode credentials state: %w", err)
	}

	if err := c.client.Set(ctx, versionKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate removes the entry for userID.
func (c *VersionCache) Invalidate(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, versionKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable. The health endpoint uses it.
func (c *VersionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
