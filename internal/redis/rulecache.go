package redis

import (
	"context"
	"encoding/json"
	"time"

	"smartoffice/internal/db"
	"smartoffice/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	activeRulesKey = "rules:active"
	activeRulesTTL = 60 * time.Second
)

// RuleCache serves the engine's active-rule lookups from Redis with a
// short TTL, falling back to the database on miss or on any cache
// error. Rule CRUD handlers invalidate it so edits take effect on the
// next evaluation.
type RuleCache struct {
	client *redis.Client
	db     *db.DB
}

// NewRuleCache creates a rule cache backed by the given database
func NewRuleCache(client *redis.Client, dbConn *db.DB) *RuleCache {
	return &RuleCache{client: client, db: dbConn}
}

// ListActiveRules returns the active rules, from cache when possible
func (c *RuleCache) ListActiveRules(ctx context.Context) ([]models.Rule, error) {
	if c.client != nil {
		cached, err := c.client.Get(ctx, activeRulesKey).Bytes()
		if err == nil {
			var rules []models.Rule
			if err := json.Unmarshal(cached, &rules); err == nil {
				return rules, nil
			} else {
				log.Warn().Err(err).Msg("discarding undecodable rule cache entry")
			}
		}
	}

	rules, err := c.db.ListActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		if encoded, err := json.Marshal(rules); err == nil {
			if err := c.client.Set(ctx, activeRulesKey, encoded, activeRulesTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to populate rule cache")
			}
		}
	}
	return rules, nil
}

// Invalidate drops the cached rule set
func (c *RuleCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, activeRulesKey).Err()
}
